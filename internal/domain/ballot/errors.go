package ballot

import "errors"

// Sentinel kinds for score matrix errors.
var (
	ErrInvalidMatrix = errors.New("invalid score matrix")
)
