package allocation

import (
	"fmt"
	"strings"
)

// SplitBasis selects the per-ballot value used to locate the split point.
type SplitBasis int

const (
	// SplitByScore orders ballots by their normalized score for the winner.
	SplitByScore SplitBasis = iota
	// SplitByWeightedScore orders ballots by normalized score times current
	// weight, the ordering used by the electowiki reference tabulator.
	SplitByWeightedScore
)

// String returns the config name of the basis.
func (b SplitBasis) String() string {
	switch b {
	case SplitByWeightedScore:
		return "weighted"
	default:
		return "score"
	}
}

// ParseSplitBasis accepts "score" (or empty) and "weighted".
func ParseSplitBasis(s string) (SplitBasis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "score":
		return SplitByScore, nil
	case "weighted", "weighted_score":
		return SplitByWeightedScore, nil
	default:
		return SplitByScore, fmt.Errorf("%w: unknown split basis %q", ErrInvalidConfiguration, s)
	}
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithTolerance sets how far below the quota the cumulative weight must stay
// for a ballot to join the fully spent prefix. Zero means a strict comparison.
func WithTolerance(tolerance float64) Option {
	return func(e *Engine) {
		if tolerance >= 0 {
			e.tolerance = tolerance
		}
	}
}

// WithSplitBasis sets the ordering used to find the split point.
func WithSplitBasis(basis SplitBasis) Option {
	return func(e *Engine) {
		e.basis = basis
	}
}
