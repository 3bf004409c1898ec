package settings

import "errors"

var (
	// ErrNotFound indicates the settings row has not been seeded yet.
	ErrNotFound = errors.New("settings not found")
	// ErrInvalidInput indicates the request failed validation.
	ErrInvalidInput = errors.New("invalid settings input")
)
