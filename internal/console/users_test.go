package console

import (
	"context"
	"errors"
	"testing"

	"crudconsole/internal/confirm"
	"crudconsole/internal/form"
	"crudconsole/internal/projection"
)

func loadedUsers(t *testing.T) (*UsersView, *fakeAPI) {
	t.Helper()
	api := newFakeAPI()
	v := NewUsersView(nil)
	if err := v.Load(context.Background(), api); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return v, api
}

func fillUser(t *testing.T, v *UsersView, name, username, email string) {
	t.Helper()
	for field, value := range map[string]string{form.FieldName: name, form.FieldUsername: username, form.FieldEmail: email} {
		if err := v.SetField(field, value); err != nil {
			t.Fatalf("SetField(%s): %v", field, err)
		}
	}
}

func noticeOf(t *testing.T, n *confirm.Notifier) confirm.Notice {
	t.Helper()
	nt, ok := n.Current()
	if !ok {
		t.Fatalf("expected a visible notice")
	}
	return nt
}

func TestUsersView_LoadFetchesUsersAndPostCounts(t *testing.T) {
	t.Parallel()

	v, api := loadedUsers(t)
	if got := len(v.Items()); got != 3 {
		t.Fatalf("users: got %d want 3", got)
	}
	if api.count("ListUsers") != 1 || api.count("ListPosts") != 1 {
		t.Fatalf("expected one joint fetch; calls=%v", api.calls)
	}
	for id, want := range map[int]int{1: 1, 2: 2, 3: 3, 9: 0} {
		if got := v.PostCount(id); got != want {
			t.Fatalf("PostCount(%d): got %d want %d", id, got, want)
		}
	}
	if v.Loading() || !v.Loaded() || v.LoadError() != "" {
		t.Fatalf("unexpected load state: loading=%v loaded=%v err=%q", v.Loading(), v.Loaded(), v.LoadError())
	}
}

func TestUsersView_FetchFailureKeepsPreviousRows(t *testing.T) {
	t.Parallel()

	v, api := loadedUsers(t)
	api.failOn("ListPosts", errBoom)

	if err := v.Load(context.Background(), api); !errors.Is(err, errBoom) {
		t.Fatalf("expected errBoom; got %v", err)
	}
	if v.LoadError() != MsgFetchUsersFailed {
		t.Fatalf("LoadError: got %q", v.LoadError())
	}
	if got := len(v.Items()); got != 3 {
		t.Fatalf("previous rows must survive a failed fetch; got %d", got)
	}
}

func TestUsersView_AddSynthesizesLocalID(t *testing.T) {
	t.Parallel()

	v, api := loadedUsers(t)
	v.StartAdd()
	fillUser(t, v, " Ada ", "ada", "ada@example.com")

	a, err := v.Commit(context.Background(), api)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	u, ok := v.Find(4)
	if !ok || !u.IsLocal || u.Name != "Ada" {
		t.Fatalf("expected local user 4 named Ada; got %#v ok=%v", u, ok)
	}
	if _, dup := v.Find(11); dup {
		t.Fatalf("server-echoed id must not be used")
	}
	if v.Form().Mode() != form.Idle {
		t.Fatalf("form should close after a successful add")
	}
	if nt := noticeOf(t, v.Notices()); nt.Message != "User added successfully!" || nt.Severity != confirm.SeveritySuccess {
		t.Fatalf("notice: %#v", nt)
	}
	if a.Action != "create" || a.EntityID != 4 || !a.Local || a.Resource != "users" {
		t.Fatalf("activity: %#v", a)
	}
}

func TestUsersView_LocalEntitiesNeverReachTheRemote(t *testing.T) {
	t.Parallel()

	v, api := loadedUsers(t)
	v.StartAdd()
	fillUser(t, v, "Ada", "ada", "ada@example.com")
	if _, err := v.Commit(context.Background(), api); err != nil {
		t.Fatalf("Commit add: %v", err)
	}

	if !v.StartEdit(4) {
		t.Fatalf("StartEdit(4) failed")
	}
	if err := v.SetField(form.FieldName, "Ada L."); err != nil {
		t.Fatalf("SetField: %v", err)
	}
	if _, err := v.Commit(context.Background(), api); err != nil {
		t.Fatalf("Commit update: %v", err)
	}
	if u, _ := v.Find(4); u.Name != "Ada L." {
		t.Fatalf("local update not applied: %#v", u)
	}

	if !v.RequestDelete(4) {
		t.Fatalf("RequestDelete(4) failed")
	}
	if _, err := v.ConfirmDelete(context.Background(), api); err != nil {
		t.Fatalf("ConfirmDelete: %v", err)
	}
	if _, ok := v.Find(4); ok {
		t.Fatalf("local user should be gone")
	}
	if api.count("UpdateUser") != 0 || api.count("DeleteUser") != 0 {
		t.Fatalf("local entity reached the remote: %v", api.calls)
	}
}

func TestUsersView_InvalidEmailIsRejectedInline(t *testing.T) {
	t.Parallel()

	v, api := loadedUsers(t)
	v.StartAdd()
	fillUser(t, v, "Ada", "ada", "a@b")

	_, err := v.Commit(context.Background(), api)
	var fe *form.FieldError
	if !errors.As(err, &fe) || fe.Field != form.FieldEmail {
		t.Fatalf("expected an email field error; got %v", err)
	}
	if got := v.Form().FieldError(form.FieldEmail); got != form.MsgInvalidEmail {
		t.Fatalf("inline error: got %q", got)
	}
	if api.count("CreateUser") != 0 {
		t.Fatalf("no request may be sent for an invalid email")
	}
	if v.Form().Mode() != form.Adding {
		t.Fatalf("form should stay open")
	}

	// Editing the field clears the inline error.
	if err := v.SetField(form.FieldEmail, "a@b.co"); err != nil {
		t.Fatalf("SetField: %v", err)
	}
	if got := v.Form().FieldError(form.FieldEmail); got != "" {
		t.Fatalf("inline error should clear; got %q", got)
	}
}

func TestUsersView_EditValidatesEmailOnly(t *testing.T) {
	t.Parallel()

	v, api := loadedUsers(t)
	v.StartEdit(1)
	if err := v.SetField(form.FieldUsername, ""); err != nil {
		t.Fatalf("SetField: %v", err)
	}
	if _, err := v.Commit(context.Background(), api); err != nil {
		t.Fatalf("edit with an empty username should be sent: %v", err)
	}
	if api.count("UpdateUser") != 1 {
		t.Fatalf("UpdateUser calls: %d", api.count("UpdateUser"))
	}

	v.StartEdit(2)
	_ = v.SetField(form.FieldEmail, "nope")
	if _, err := v.Commit(context.Background(), api); err == nil {
		t.Fatalf("expected email error on edit")
	}
	if api.count("UpdateUser") != 1 {
		t.Fatalf("invalid edit must not be sent")
	}
}

func TestUsersView_MissingRequiredFields(t *testing.T) {
	t.Parallel()

	v, api := loadedUsers(t)
	v.StartAdd()
	fillUser(t, v, "Ada", "   ", "ada@example.com")

	if _, err := v.Commit(context.Background(), api); !errors.Is(err, form.ErrRequiredFields) {
		t.Fatalf("expected ErrRequiredFields; got %v", err)
	}
	if nt := noticeOf(t, v.Notices()); nt.Message != form.MsgRequiredFields || nt.Severity != confirm.SeverityError {
		t.Fatalf("notice: %#v", nt)
	}
	if api.count("CreateUser") != 0 {
		t.Fatalf("no request may be sent")
	}
}

func TestUsersView_RemoteUpdateFailureLeavesStateUnchanged(t *testing.T) {
	t.Parallel()

	v, api := loadedUsers(t)
	api.failOn("UpdateUser", errBoom)
	before, _ := v.Find(2)

	v.StartEdit(2)
	_ = v.SetField(form.FieldName, "changed")
	a, err := v.Commit(context.Background(), api)
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected errBoom; got %v", err)
	}
	if after, _ := v.Find(2); after != before {
		t.Fatalf("failed update changed the row: %#v", after)
	}
	if !v.Form().IsEditing(2) {
		t.Fatalf("form should stay in edit mode after a failure")
	}
	if nt := noticeOf(t, v.Notices()); nt.Message != "Failed to update user" {
		t.Fatalf("notice: %#v", nt)
	}
	if a.Detail == "" || a.Severity != string(confirm.SeverityError) {
		t.Fatalf("activity should carry the failure detail: %#v", a)
	}
}

func TestUsersView_DeleteConfirmation(t *testing.T) {
	t.Parallel()

	v, api := loadedUsers(t)

	v.RequestDelete(2)
	v.CancelDelete()
	if _, ok := v.PendingDelete(); ok {
		t.Fatalf("cancel should return to idle")
	}
	if _, err := v.ConfirmDelete(context.Background(), api); !errors.Is(err, ErrNothingToCommit) {
		t.Fatalf("confirm without a request: got %v", err)
	}
	if api.count("DeleteUser") != 0 {
		t.Fatalf("cancelled delete reached the remote")
	}

	api.failOn("DeleteUser", errBoom)
	v.RequestDelete(2)
	if _, err := v.ConfirmDelete(context.Background(), api); !errors.Is(err, errBoom) {
		t.Fatalf("expected errBoom; got %v", err)
	}
	if _, ok := v.PendingDelete(); ok {
		t.Fatalf("a failed delete still returns to idle")
	}
	if _, ok := v.Find(2); !ok {
		t.Fatalf("failed delete must keep the row")
	}

	api.failOn("DeleteUser", nil)
	v.RequestDelete(2)
	if _, err := v.ConfirmDelete(context.Background(), api); err != nil {
		t.Fatalf("ConfirmDelete: %v", err)
	}
	if _, ok := v.Find(2); ok {
		t.Fatalf("row 2 should be gone")
	}
	if api.count("DeleteUser") != 2 {
		t.Fatalf("DeleteUser calls: %d", api.count("DeleteUser"))
	}
	if v.RequestDelete(2) {
		t.Fatalf("deleting an unknown row should be refused")
	}
}

func TestUsersView_OnlyOneRowEditable(t *testing.T) {
	t.Parallel()

	v, _ := loadedUsers(t)
	v.StartEdit(1)
	v.StartEdit(2)
	if v.Form().IsEditing(1) || !v.Form().IsEditing(2) {
		t.Fatalf("only the latest edit may be open")
	}
	v.StartAdd()
	if v.Form().Mode() != form.Adding || v.Form().IsEditing(2) {
		t.Fatalf("add should cancel the edit")
	}
	v.Cancel()
	if v.Form().Mode() != form.Idle {
		t.Fatalf("cancel should close the form")
	}
	if v.StartEdit(99) {
		t.Fatalf("editing an unknown row should be refused")
	}
}

func TestUsersView_Search(t *testing.T) {
	t.Parallel()

	v, _ := loadedUsers(t)
	v.SetSearch("UB")
	r := v.Rows()
	if len(r.Rows) != 1 || r.Rows[0].ID != 2 {
		t.Fatalf("search by username: %#v", r.Rows)
	}
	v.SetSearch("nobody")
	if r := v.Rows(); len(r.Rows) != 0 || r.Empty != projection.NoMatch {
		t.Fatalf("expected NoMatch; got %#v", r)
	}
}

func TestUsersView_StaleLoadIsDropped(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	v := NewUsersView(nil)
	older := v.BeginLoad()
	newer := v.BeginLoad()

	if !v.ApplyLoad(FetchUsers(context.Background(), api, newer)) {
		t.Fatalf("latest fetch should apply")
	}
	api.users = api.users[:1]
	if v.ApplyLoad(FetchUsers(context.Background(), api, older)) {
		t.Fatalf("older fetch should be dropped")
	}
	if got := len(v.Items()); got != 3 {
		t.Fatalf("stale result leaked into the view: %d rows", got)
	}
}

func TestUsersView_EditCanClearOptionalFields(t *testing.T) {
	t.Parallel()

	v, api := loadedUsers(t)
	if !v.StartEdit(1) {
		t.Fatalf("StartEdit(1) failed")
	}
	_ = v.SetField(form.FieldPhone, "555-0100")
	if _, err := v.Commit(context.Background(), api); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if u, _ := v.Find(1); u.Phone != "555-0100" {
		t.Fatalf("phone not set: %#v", u)
	}

	v.StartEdit(1)
	_ = v.SetField(form.FieldPhone, "")
	if _, err := v.Commit(context.Background(), api); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if u, _ := v.Find(1); u.Phone != "" {
		t.Fatalf("cleared phone should stay cleared: %#v", u)
	}
}
