package allocation

import "errors"

// Sentinel kinds for allocation errors.
var (
	ErrInvalidConfiguration = errors.New("invalid allocation configuration")
)
