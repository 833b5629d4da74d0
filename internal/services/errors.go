package services

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every service. Handlers translate these into HTTP
// status codes; the wrapped message is what clients see.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidState = errors.New("invalid state")
	ErrConflict     = errors.New("conflict")
)

func notFound(entity string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, entity)
}

func invalidInput(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}

func invalidState(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, msg)
}

func conflict(msg string) error {
	return fmt.Errorf("%w: %s", ErrConflict, msg)
}
