package database

import "errors"

var (
	// ErrSchema wraps failures to create the store's tables. The store is
	// unusable for the rest of the session.
	ErrSchema = errors.New("schema error")

	// ErrInvalidDirection is returned when a neighbour lookup gets a
	// direction other than next or previous.
	ErrInvalidDirection = errors.New("invalid direction")

	// ErrInvalidCoordinate is returned for canto, chapter or verse
	// numbers that are not positive.
	ErrInvalidCoordinate = errors.New("invalid coordinate")
)
