package applications

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyApplied is returned when an applicant already holds an
	// application for the event.
	ErrAlreadyApplied = errors.New("already applied to this event")

	ErrNotFound  = errors.New("application not found")
	ErrInvalidID = errors.New("invalid application id")
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
