package studio

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation indicates the action was rejected before any network
	// call was made.
	ErrValidation = errors.New("validation failed")
	// ErrDraftNotFound indicates the draft or edit session has expired or
	// never existed.
	ErrDraftNotFound = errors.New("draft not found")
)

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
