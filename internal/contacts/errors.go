package contacts

import "errors"

var (
	// ErrNotFound indicates the requested contact does not exist.
	ErrNotFound = errors.New("contact not found")
	// ErrInvalidInput indicates the request failed validation.
	ErrInvalidInput = errors.New("invalid contact input")
)
