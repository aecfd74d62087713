package scenario

import "errors"

// Sentinel kinds for scenario errors.
var (
	ErrInvalidElection = errors.New("invalid election")
	ErrUnsupportedFile = errors.New("unsupported election file")
)
