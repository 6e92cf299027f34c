package confirm

import (
	"errors"
	"strings"
)

// Deletion is the Idle -> Pending(id) -> Idle state machine guarding
// destructive actions. There is no timeout: a pending request stays until it
// is confirmed or cancelled.
type Deletion struct {
	pending bool
	target  int
}

// Request enters Pending for id, replacing any earlier pending target.
func (d *Deletion) Request(id int) {
	d.pending = true
	d.target = id
}

func (d *Deletion) Pending() (int, bool) { return d.target, d.pending }

// Confirm returns the pending target and goes back to Idle, whatever the
// caller then does with it.
func (d *Deletion) Confirm() (int, bool) {
	id, ok := d.target, d.pending
	d.pending = false
	d.target = 0
	return id, ok
}

func (d *Deletion) Cancel() {
	d.pending = false
	d.target = 0
}

// Dialog is the content of a confirm modal. Every field is required.
type Dialog struct {
	Title        string
	Message      string
	ConfirmLabel string
	CancelLabel  string
}

var ErrIncompleteDialog = errors.New("confirm dialog needs a title, message and both labels")

func (d Dialog) Validate() error {
	for _, s := range []string{d.Title, d.Message, d.ConfirmLabel, d.CancelLabel} {
		if strings.TrimSpace(s) == "" {
			return ErrIncompleteDialog
		}
	}
	return nil
}

// DeleteDialog is the dialog shown before deleting one entity of kind.
func DeleteDialog(kind string) Dialog {
	return Dialog{
		Title:        "Delete " + kind,
		Message:      "Are you sure you want to delete this " + kind + "?",
		ConfirmLabel: "Delete",
		CancelLabel:  "Cancel",
	}
}
