package events

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("event not found")
	ErrInvalidID = errors.New("invalid event id")
)

// ValidationError reports a rejected input field.
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
