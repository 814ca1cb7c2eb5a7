package services

import "errors"

var (
	// ErrChapterNotFound is returned by coordinate search when the canto
	// has no chapter with the requested number.
	ErrChapterNotFound = errors.New("chapter not found")

	// ErrMissingCoordinate is returned when a search field is empty.
	ErrMissingCoordinate = errors.New("missing coordinate")
)
