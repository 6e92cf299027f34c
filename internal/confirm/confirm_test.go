package confirm

import (
	"errors"
	"testing"
)

func TestDeletion_ConfirmReturnsTargetAndGoesIdle(t *testing.T) {
	t.Parallel()

	var d Deletion
	if _, ok := d.Pending(); ok {
		t.Fatalf("zero value should be idle")
	}
	if _, ok := d.Confirm(); ok {
		t.Fatalf("confirm while idle should report nothing pending")
	}

	d.Request(7)
	if id, ok := d.Pending(); !ok || id != 7 {
		t.Fatalf("expected pending 7; got %d %v", id, ok)
	}
	d.Request(8)
	id, ok := d.Confirm()
	if !ok || id != 8 {
		t.Fatalf("confirm: expected latest target 8; got %d %v", id, ok)
	}
	if _, ok := d.Pending(); ok {
		t.Fatalf("confirm should return to idle")
	}
}

func TestDeletion_Cancel(t *testing.T) {
	t.Parallel()

	var d Deletion
	d.Request(3)
	d.Cancel()
	if _, ok := d.Pending(); ok {
		t.Fatalf("cancel should return to idle")
	}
}

func TestDialog_Validate(t *testing.T) {
	t.Parallel()

	if err := DeleteDialog("post").Validate(); err != nil {
		t.Fatalf("delete dialog should be complete: %v", err)
	}
	d := DeleteDialog("user")
	d.CancelLabel = " "
	if err := d.Validate(); !errors.Is(err, ErrIncompleteDialog) {
		t.Fatalf("expected ErrIncompleteDialog; got %v", err)
	}
}

func TestNotifier_OneVisibleAndStaleDismissIgnored(t *testing.T) {
	t.Parallel()

	var n Notifier
	first := n.Notify(SeveritySuccess, "Post added successfully!")
	second := n.Notify(SeverityError, "Failed to delete post")

	cur, ok := n.Current()
	if !ok || cur.Seq != second.Seq || cur.Severity != SeverityError {
		t.Fatalf("expected the newest notice; got %#v", cur)
	}

	n.Dismiss(first.Seq)
	if _, ok := n.Current(); !ok {
		t.Fatalf("dismissing a replaced notice must not hide the current one")
	}
	n.Dismiss(second.Seq)
	if _, ok := n.Current(); ok {
		t.Fatalf("expected no visible notice")
	}
}
