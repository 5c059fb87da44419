// Package apperr defines the sentinel errors shared across MyNotes layers.
// The HTTP layer maps them to status codes; everything below returns them
// wrapped so errors.Is keeps working.
package apperr

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNoProvider   = errors.New("no AI provider configured")
)
