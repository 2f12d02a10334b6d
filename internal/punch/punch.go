// Package punch holds the time-clock core: command parsing, report range
// resolution and worked-hours report computation. Everything here is a pure
// function of its inputs so the webhook layer, the CLI and the tests can
// share one pipeline.
package punch

import "time"

// Kind is the direction of a punch event.
type Kind string

const (
	Entry Kind = "entrada"
	Exit  Kind = "saída"
)

// Event is a single clock-in or clock-out record for one user.
type Event struct {
	UserID     string
	Kind       Kind
	OccurredAt time.Time
}

// ParseKind maps stored kind text back to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case Entry, Exit:
		return Kind(s), true
	}
	return "", false
}

// dateOf truncates an instant to its calendar day in the reference timezone.
func dateOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
