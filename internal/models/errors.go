package models

import "errors"

var (
	// ErrNotFound is returned when a requested identity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument covers malformed ids, bad paging and rejected input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidTransition is returned for a disallowed status change.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNoLineItems is returned when placing an order without lines.
	ErrNoLineItems = errors.New("order must have at least one line item")

	// ErrConflict is returned when a unique attribute is already taken.
	ErrConflict = errors.New("conflict")
)
