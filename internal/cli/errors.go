package cli

import (
	"errors"
	"fmt"
	"strconv"

	"crudconsole/internal/confirm"
	"crudconsole/internal/form"
)

type notFoundError struct {
	kind string
	id   int
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %d", e.kind, e.id)
}

func errNotFound(kind string, id int) error {
	return notFoundError{kind: kind, id: id}
}

func parseID(kind, s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id: %q", kind, s)
	}
	return id, nil
}

// commitError turns a rejected commit into what the user reads: the inline
// field message, or the notice the view raised.
func commitError(err error, notices *confirm.Notifier) error {
	var fe *form.FieldError
	if errors.As(err, &fe) {
		return err
	}
	if n, ok := notices.Current(); ok {
		return fmt.Errorf("%s: %w", n.Message, err)
	}
	return err
}
