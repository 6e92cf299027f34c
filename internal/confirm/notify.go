package confirm

import "time"

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// DismissAfter is how long a notice stays up unless dismissed earlier.
const DismissAfter = 3 * time.Second

// Notice is a transient, display-only message about an operation outcome.
type Notice struct {
	Seq      int
	Message  string
	Severity Severity
}

// Notifier keeps the one visible notice. A newer notice replaces the older
// one; there is no queue.
type Notifier struct {
	seq     int
	current *Notice
}

// Notify shows a new notice and returns it.
func (n *Notifier) Notify(sev Severity, msg string) Notice {
	n.seq++
	nt := Notice{Seq: n.seq, Message: msg, Severity: sev}
	n.current = &nt
	return nt
}

func (n *Notifier) Current() (Notice, bool) {
	if n.current == nil {
		return Notice{}, false
	}
	return *n.current, true
}

// Dismiss hides the notice with the given seq. A timer for a notice that has
// already been replaced does nothing.
func (n *Notifier) Dismiss(seq int) {
	if n.current != nil && n.current.Seq == seq {
		n.current = nil
	}
}

// DismissCurrent hides whatever is visible.
func (n *Notifier) DismissCurrent() { n.current = nil }
