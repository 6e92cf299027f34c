package form

import (
	"errors"
	"fmt"
	"regexp"

	"crudconsole/internal/model"
)

// ErrRequiredFields is returned when a draft misses a required field. It is
// reported as a notification (MsgRequiredFields), not inline.
var ErrRequiredFields = errors.New("missing required fields")

// FieldError is an inline validation failure tied to one form field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

const (
	FieldName     = "name"
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldWebsite  = "website"
	FieldUserID   = "userId"
	FieldTitle    = "title"
	FieldBody     = "body"
)

const (
	MsgRequiredFields = "Please fill all required fields"
	// MsgInvalidEmail is shown next to the email field.
	MsgInvalidEmail = "Invalid email address"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail checks the basic local-part@domain.tld shape.
func ValidEmail(s string) bool { return emailPattern.MatchString(s) }

// ValidateUser checks a normalized user draft before any request is sent.
func ValidateUser(d model.UserDraft) error {
	if d.Name == "" || d.Username == "" || d.Email == "" {
		return ErrRequiredFields
	}
	return ValidateUserEmail(d)
}

// ValidateUserEmail is the only check applied to user edits.
func ValidateUserEmail(d model.UserDraft) error {
	if !ValidEmail(d.Email) {
		return &FieldError{Field: FieldEmail, Message: MsgInvalidEmail}
	}
	return nil
}

// ValidatePost checks a normalized post draft before any request is sent.
func ValidatePost(d model.PostDraft) error {
	if d.Title == "" || d.UserID == 0 {
		return ErrRequiredFields
	}
	return nil
}
