package recommend

import "errors"

// Sentinel kinds for recommendation errors. These surface caller bugs;
// store failures never reach the caller.
var (
	ErrInvalidUser  = errors.New("invalid user id")
	ErrInvalidCount = errors.New("invalid recommendation count")
)
