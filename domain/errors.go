package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a missing Session/Case/Availability/Notification row.
// Handlers map it to 404.
var ErrNotFound = errors.New("record not found")

// ErrForbidden marks an operation on a session or case the caller does not
// own. Handlers map it to 403.
var ErrForbidden = errors.New("not allowed for this user")

// ErrInvalidInput marks a payload that passed binding but breaks a
// business rule. Handlers map it to 400.
var ErrInvalidInput = errors.New("invalid input")

// TransitionError is returned when an operation is not legal from the
// entity's current status. Handlers map it to 400; the current status is
// always included so the caller can see why it lost.
type TransitionError struct {
	Entity    string // "session" | "case"
	Current   string
	Attempted string
	Step      string // which step of a multi-step workflow failed, if any
}

func (e *TransitionError) Error() string {
	msg := fmt.Sprintf("%s cannot move from %q to %q", e.Entity, e.Current, e.Attempted)
	if SessionTerminal(e.Current) {
		msg = fmt.Sprintf("%s is in terminal state %q", e.Entity, e.Current)
	}
	if e.Step != "" {
		msg = e.Step + ": " + msg
	}
	return msg
}

// AtStep annotates the error with the workflow step it happened in,
// e.g. "session closed, but case update failed".
func (e *TransitionError) AtStep(step string) *TransitionError {
	e.Step = step
	return e
}

func IsInvalidTransition(err error) bool {
	var te *TransitionError
	return errors.As(err, &te)
}
