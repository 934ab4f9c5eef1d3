package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation: caller-supplied input violates a precondition.
	// Always raised before any network call is issued.
	ErrValidation = errors.New("validation failed")
	// ErrConflict: the action violates current entity state.
	ErrConflict = errors.New("conflicting entity state")
	// ErrNotFound: the entity no longer exists.
	ErrNotFound = errors.New("not found")
	// ErrTransport: network or server failure, including timeouts.
	ErrTransport = errors.New("transport failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
