package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrMissingSeats    = errors.New("seat count not set")
	ErrMissingMaxScore = errors.New("max score not set")
)
