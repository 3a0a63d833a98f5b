package repository

import "errors"

// Sentinel kinds for content store errors.
var (
	ErrNotFound    = errors.New("record not found")
	ErrInvalidPage = errors.New("invalid page parameters")
)
