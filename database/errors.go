package database

import "errors"

var (
	// ErrNotFound is returned when a lookup or update matches no document.
	ErrNotFound = errors.New("document not found")
	// ErrConflict is returned when a conditional update lost to a concurrent writer.
	ErrConflict = errors.New("conditional update did not match")
	// ErrDuplicate is returned when a unique index rejects an insert.
	ErrDuplicate = errors.New("duplicate document")
)

// ErrSlotTaken is returned by a reservation commit whose slot was no longer open.
var ErrSlotTaken = errors.New("slot no longer open")
