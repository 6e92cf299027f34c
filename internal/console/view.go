package console

import (
	"errors"
	"fmt"
	"log/slog"

	"crudconsole/internal/collection"
	"crudconsole/internal/confirm"
	"crudconsole/internal/form"
	"crudconsole/internal/logging"
	"crudconsole/internal/store"
)

// Action is the kind of remote mutation a view performs.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

var (
	// ErrNothingToCommit is returned when no form is open or no delete is
	// pending.
	ErrNothingToCommit = errors.New("nothing to commit")
	// ErrNotFound is returned when a row vanished between being selected
	// and being acted on.
	ErrNotFound = errors.New("not found in the current view")
)

// Draft is the in-progress form value of an entity T.
type Draft[T any] interface {
	ApplyTo(T) T
}

// Mutation is a validated request to change the remote collection. It holds
// everything Execute needs, so it can run away from the view's goroutine.
type Mutation[D any] struct {
	Action Action
	// ID is the target of an update or delete.
	ID int
	// Local targets exist only in memory; Execute skips the remote call.
	Local bool
	Draft D
}

// Outcome is the result of executing a Mutation.
type Outcome[T, D any] struct {
	Mutation Mutation[D]
	// Result is the server's response to a create or update.
	Result T
	Err    error
}

// base holds what the users and posts views share: the collection, the one
// open form, the delete confirmation, the notice and the fetch generation.
type base[T collection.Entity[T], D Draft[T]] struct {
	resource string // "users"
	singular string // "user"
	label    string // "User"
	log      *slog.Logger

	items    collection.Collection[T]
	form     form.Controller[D]
	deletion confirm.Deletion
	notices  confirm.Notifier
	gen      collection.Generation

	loading bool
	loaded  bool
	loadErr string
	search  string
}

func newBase[T collection.Entity[T], D Draft[T]](resource, singular, label string, log *slog.Logger) base[T, D] {
	if log == nil {
		log = logging.Discard()
	}
	return base[T, D]{
		resource: resource,
		singular: singular,
		label:    label,
		log:      log.With("view", resource),
	}
}

// Loading reports whether a fetch is in flight.
func (b *base[T, D]) Loading() bool { return b.loading }

// Loaded reports whether at least one fetch succeeded.
func (b *base[T, D]) Loaded() bool { return b.loaded }

// LoadError is the fixed message of the last failed fetch, or "".
func (b *base[T, D]) LoadError() string { return b.loadErr }

func (b *base[T, D]) Items() []T { return b.items.Items() }

func (b *base[T, D]) Find(id int) (T, bool) { return b.items.Find(id) }

func (b *base[T, D]) Form() *form.Controller[D] { return &b.form }

func (b *base[T, D]) Notices() *confirm.Notifier { return &b.notices }

func (b *base[T, D]) Search() string { return b.search }

// SetSearch changes the client-side search term. No request is made.
func (b *base[T, D]) SetSearch(term string) { b.search = term }

// StartAdd opens the add form, cancelling any open edit.
func (b *base[T, D]) StartAdd() { b.form.StartAdd() }

// Cancel discards the open form.
func (b *base[T, D]) Cancel() { b.form.Cancel() }

// UpdateDraft applies fn to the open form's draft.
func (b *base[T, D]) UpdateDraft(fn func(D) D) { b.form.Update(fn) }

// DeleteDialog is the confirm dialog for the pending delete.
func (b *base[T, D]) DeleteDialog() confirm.Dialog { return confirm.DeleteDialog(b.singular) }

// RequestDelete asks for confirmation before deleting id. It reports false
// when id is not in the view.
func (b *base[T, D]) RequestDelete(id int) bool {
	if _, ok := b.items.Find(id); !ok {
		return false
	}
	b.deletion.Request(id)
	return true
}

func (b *base[T, D]) CancelDelete() { b.deletion.Cancel() }

// PendingDelete is the id awaiting confirmation, if any.
func (b *base[T, D]) PendingDelete() (int, bool) { return b.deletion.Pending() }

// PlanDelete confirms the pending delete. The view is back to Idle once it
// returns, whatever happens to the mutation afterwards.
func (b *base[T, D]) PlanDelete() (Mutation[D], error) {
	id, ok := b.deletion.Confirm()
	if !ok {
		return Mutation[D]{}, ErrNothingToCommit
	}
	it, found := b.items.Find(id)
	if !found {
		return Mutation[D]{}, fmt.Errorf("delete %s %d: %w", b.singular, id, ErrNotFound)
	}
	return Mutation[D]{Action: ActionDelete, ID: id, Local: it.Local()}, nil
}

// planEdit builds an update mutation for the row in edit mode.
func (b *base[T, D]) planEdit(draft D) (Mutation[D], error) {
	id := b.form.Target()
	it, found := b.items.Find(id)
	if !found {
		return Mutation[D]{}, fmt.Errorf("update %s %d: %w", b.singular, id, ErrNotFound)
	}
	return Mutation[D]{Action: ActionUpdate, ID: id, Local: it.Local(), Draft: draft}, nil
}

// rejectRequired reports a missing required field as a notice.
func (b *base[T, D]) rejectRequired(err error) error {
	b.notices.Notify(confirm.SeverityError, form.MsgRequiredFields)
	return err
}

// rejectField shows a field error inline next to its input.
func (b *base[T, D]) rejectField(fe *form.FieldError) error {
	b.form.SetFieldError(fe.Field, fe.Message)
	return fe
}

// beginLoad marks the view loading and issues the generation of the fetch.
func (b *base[T, D]) beginLoad() uint64 {
	b.loading = true
	return b.gen.Next()
}

// acceptLoad reports whether the response of fetch gen may be applied.
func (b *base[T, D]) acceptLoad(gen uint64) bool {
	if !b.gen.Current(gen) {
		b.log.Debug("dropping stale fetch", "gen", gen, "latest", b.gen.Last())
		return false
	}
	b.loading = false
	return true
}

// AbandonLoad ends fetch gen without a result, e.g. after it was cancelled.
// The collection and any earlier error stay as they were. It reports false
// when gen is no longer the latest fetch.
func (b *base[T, D]) AbandonLoad(gen uint64) bool {
	if !b.gen.Current(gen) {
		return false
	}
	b.loading = false
	return true
}

// failLoad keeps the previous collection and shows msg.
func (b *base[T, D]) failLoad(msg string, err error) {
	b.loadErr = msg
	b.log.Error("fetch failed", "err", err)
}

func (b *base[T, D]) finishLoad(items []T) {
	b.items.Replace(items)
	b.loadErr = ""
	b.loaded = true
}

// ApplyOutcome reconciles the collection with the result of a mutation,
// shows the notice and returns the activity record describing it. Failed
// mutations leave the collection unchanged.
func (b *base[T, D]) ApplyOutcome(out Outcome[T, D]) store.Activity {
	m := out.Mutation
	if out.Err != nil {
		return b.report(m, m.ID, confirm.SeverityError, b.failureMessage(m.Action), out.Err)
	}
	switch m.Action {
	case ActionCreate:
		stored := b.items.AddLocal(m.Draft.ApplyTo(out.Result))
		b.form.Cancel()
		m.Local = true
		return b.report(m, stored.EntityID(), confirm.SeveritySuccess, b.label+" added successfully!", nil)
	case ActionUpdate:
		draft := m.Draft
		if _, ok := b.items.Update(m.ID, draft.ApplyTo); !ok {
			return b.report(m, m.ID, confirm.SeverityError, b.failureMessage(m.Action), ErrNotFound)
		}
		b.form.Cancel()
		return b.report(m, m.ID, confirm.SeveritySuccess, b.label+" updated successfully!", nil)
	case ActionDelete:
		b.items.Remove(m.ID)
		return b.report(m, m.ID, confirm.SeveritySuccess, b.label+" deleted successfully!", nil)
	default:
		return b.report(m, m.ID, confirm.SeverityError, b.failureMessage(m.Action), fmt.Errorf("unknown action %q", m.Action))
	}
}

func (b *base[T, D]) failureMessage(a Action) string {
	switch a {
	case ActionCreate:
		return "Failed to add " + b.singular
	case ActionUpdate:
		return "Failed to update " + b.singular
	default:
		return "Failed to delete " + b.singular
	}
}

// report shows msg as the current notice and logs the outcome. The error
// detail only reaches the log and the activity record.
func (b *base[T, D]) report(m Mutation[D], id int, sev confirm.Severity, msg string, err error) store.Activity {
	b.notices.Notify(sev, msg)
	a := store.Activity{
		Resource: b.resource,
		Action:   string(m.Action),
		EntityID: id,
		Local:    m.Local,
		Severity: string(sev),
		Message:  msg,
	}
	if err != nil {
		a.Detail = err.Error()
		b.log.Error(msg, "action", m.Action, "id", id, "err", err)
	} else {
		b.log.Info(msg, "action", m.Action, "id", id, "local", m.Local)
	}
	return a
}
