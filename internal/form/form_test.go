package form

import (
	"errors"
	"testing"

	"crudconsole/internal/model"
)

func TestController_AtMostOneRowEditing(t *testing.T) {
	t.Parallel()

	var c Controller[model.PostDraft]
	c.StartEdit(1, model.PostDraft{Title: "one"})
	c.StartEdit(2, model.PostDraft{Title: "two"})

	if c.IsEditing(1) {
		t.Fatalf("row 1 should no longer be in edit mode")
	}
	if !c.IsEditing(2) || c.Target() != 2 {
		t.Fatalf("row 2 should be in edit mode; target=%d", c.Target())
	}
	if c.Draft().Title != "two" {
		t.Fatalf("draft should belong to row 2; got %#v", c.Draft())
	}

	c.StartAdd()
	if c.Mode() != Adding || c.Target() != 0 || c.IsEditing(2) {
		t.Fatalf("starting an add must cancel the edit; mode=%v target=%d", c.Mode(), c.Target())
	}
	if c.Draft() != (model.PostDraft{}) {
		t.Fatalf("add should start from an empty draft; got %#v", c.Draft())
	}

	c.StartEdit(3, model.PostDraft{})
	if c.Mode() != Editing {
		t.Fatalf("starting an edit must cancel the add; mode=%v", c.Mode())
	}
}

func TestController_CancelDiscardsEverything(t *testing.T) {
	t.Parallel()

	var c Controller[model.UserDraft]
	c.StartEdit(4, model.UserDraft{Name: "x"})
	c.Update(func(d model.UserDraft) model.UserDraft { d.Email = "changed"; return d })
	c.SetFieldError(FieldEmail, MsgInvalidEmail)
	c.Cancel()

	if c.Mode() != Idle || c.Target() != 0 {
		t.Fatalf("expected idle; mode=%v target=%d", c.Mode(), c.Target())
	}
	if c.Draft() != (model.UserDraft{}) {
		t.Fatalf("draft not discarded: %#v", c.Draft())
	}
	if c.FieldError(FieldEmail) != "" {
		t.Fatalf("field error not discarded")
	}
}

func TestController_UpdateIgnoredWhenIdleAndClearsErrors(t *testing.T) {
	t.Parallel()

	var c Controller[model.PostDraft]
	c.Update(func(d model.PostDraft) model.PostDraft { d.Title = "x"; return d })
	if c.Draft().Title != "" {
		t.Fatalf("idle controller should not accept input")
	}

	c.StartAdd()
	c.SetFieldError(FieldTitle, "bad")
	c.Update(func(d model.PostDraft) model.PostDraft { d.Title = "x"; return d })
	if c.FieldError(FieldTitle) != "" {
		t.Fatalf("editing should clear stale field errors")
	}
	if c.Draft().Title != "x" {
		t.Fatalf("update not applied")
	}
}

func TestValidEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"a@b.co", true},
		{"first.last@sub.example.org", true},
		{"a@b", false},
		{"ab.co", false},
		{"a b@c.de", false},
		{"a@@b.co", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidEmail(tt.in); got != tt.want {
			t.Fatalf("ValidEmail(%q): got %v want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidateUser(t *testing.T) {
	t.Parallel()

	if err := ValidateUser(model.UserDraft{Name: "n", Username: "u"}); !errors.Is(err, ErrRequiredFields) {
		t.Fatalf("missing email: got %v", err)
	}
	err := ValidateUser(model.UserDraft{Name: "n", Username: "u", Email: "a@b"})
	var fe *FieldError
	if !errors.As(err, &fe) || fe.Field != FieldEmail || fe.Message != MsgInvalidEmail {
		t.Fatalf("bad email: got %v", err)
	}
	if err := ValidateUser(model.UserDraft{Name: "n", Username: "u", Email: "a@b.io"}); err != nil {
		t.Fatalf("valid draft: %v", err)
	}
}

func TestValidatePost(t *testing.T) {
	t.Parallel()

	if err := ValidatePost(model.PostDraft{Title: "t"}); !errors.Is(err, ErrRequiredFields) {
		t.Fatalf("missing userId: got %v", err)
	}
	if err := ValidatePost(model.PostDraft{UserID: 1}); !errors.Is(err, ErrRequiredFields) {
		t.Fatalf("missing title: got %v", err)
	}
	if err := ValidatePost(model.PostDraft{UserID: 1, Title: "t"}); err != nil {
		t.Fatalf("valid draft: %v", err)
	}
}
