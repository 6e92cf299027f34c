package form

// Mode is what the form of a view is currently doing.
type Mode int

const (
	Idle Mode = iota
	Editing
	Adding
)

func (m Mode) String() string {
	switch m {
	case Editing:
		return "editing"
	case Adding:
		return "adding"
	default:
		return "idle"
	}
}

// Controller holds the single in-progress edit or add of a view. Starting
// either one discards whatever was in progress before, so at most one row is
// ever in edit mode.
type Controller[D any] struct {
	mode   Mode
	target int
	draft  D
	errs   map[string]string
}

func (c *Controller[D]) Mode() Mode { return c.mode }

// Target is the id of the row being edited, or 0.
func (c *Controller[D]) Target() int {
	if c.mode != Editing {
		return 0
	}
	return c.target
}

// IsEditing reports whether row id is the one in edit mode.
func (c *Controller[D]) IsEditing(id int) bool {
	return c.mode == Editing && c.target == id
}

func (c *Controller[D]) Draft() D { return c.draft }

// StartEdit puts row id into edit mode, seeded with draft.
func (c *Controller[D]) StartEdit(id int, draft D) {
	c.reset()
	c.mode = Editing
	c.target = id
	c.draft = draft
}

// StartAdd opens the add form with an empty draft.
func (c *Controller[D]) StartAdd() {
	c.reset()
	c.mode = Adding
}

// Update applies fn to the draft. Field errors from a previous commit attempt
// are cleared, since the input they referred to changed.
func (c *Controller[D]) Update(fn func(D) D) {
	if c.mode == Idle {
		return
	}
	c.draft = fn(c.draft)
	c.errs = nil
}

// Cancel discards pending state unconditionally.
func (c *Controller[D]) Cancel() { c.reset() }

// SetFieldError records an inline error shown next to field.
func (c *Controller[D]) SetFieldError(field, msg string) {
	if c.errs == nil {
		c.errs = map[string]string{}
	}
	c.errs[field] = msg
}

func (c *Controller[D]) FieldError(field string) string { return c.errs[field] }

func (c *Controller[D]) reset() {
	var zero D
	c.mode = Idle
	c.target = 0
	c.draft = zero
	c.errs = nil
}
