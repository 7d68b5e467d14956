package repository

import "errors"

var (
	// ErrNotFound is returned when no record matches the lookup key.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateTicketID is returned when a complaint's ticket ID is already stored.
	ErrDuplicateTicketID = errors.New("duplicate ticket id")
)
