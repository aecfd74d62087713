// Package ballot contains the score matrix passed to the allocation engine.
package ballot

import (
	"fmt"
	"math"
)

// Matrix holds one row of scores per ballot and one column per candidate.
// Row order carries no meaning; column order is the candidate order used
// for tie-breaking.
type Matrix struct {
	Candidates []string
	Scores     [][]float64
}

// NewMatrix copies candidates and scores into a new Matrix so later changes
// by the caller do not leak into a tabulation.
func NewMatrix(candidates []string, scores [][]float64) Matrix {
	m := Matrix{
		Candidates: append([]string(nil), candidates...),
		Scores:     make([][]float64, len(scores)),
	}
	for i, row := range scores {
		m.Scores[i] = append([]float64(nil), row...)
	}
	return m
}

// Ballots returns the number of ballots (rows).
func (m Matrix) Ballots() int { return len(m.Scores) }

// Len returns the number of candidates (columns).
func (m Matrix) Len() int { return len(m.Candidates) }

// Index returns the column of the named candidate.
func (m Matrix) Index(candidate string) (int, bool) {
	for i, c := range m.Candidates {
		if c == candidate {
			return i, true
		}
	}
	return -1, false
}

// Column returns a copy of the scores every ballot gave the candidate at col.
func (m Matrix) Column(col int) []float64 {
	out := make([]float64, len(m.Scores))
	for i, row := range m.Scores {
		out[i] = row[col]
	}
	return out
}

// Scale returns a copy of m with every score multiplied by factor.
func (m Matrix) Scale(factor float64) Matrix {
	out := NewMatrix(m.Candidates, m.Scores)
	for _, row := range out.Scores {
		for j := range row {
			row[j] *= factor
		}
	}
	return out
}

// Validate checks the matrix shape and that every score lies in [0, maxScore].
func (m Matrix) Validate(maxScore float64) error {
	if len(m.Candidates) == 0 {
		return fmt.Errorf("%w: no candidates", ErrInvalidMatrix)
	}
	if len(m.Scores) == 0 {
		return fmt.Errorf("%w: no ballots", ErrInvalidMatrix)
	}

	seen := make(map[string]struct{}, len(m.Candidates))
	for i, c := range m.Candidates {
		if c == "" {
			return fmt.Errorf("%w: candidate %d has an empty name", ErrInvalidMatrix, i)
		}
		if _, dup := seen[c]; dup {
			return fmt.Errorf("%w: duplicate candidate %q", ErrInvalidMatrix, c)
		}
		seen[c] = struct{}{}
	}

	for i, row := range m.Scores {
		if len(row) != len(m.Candidates) {
			return fmt.Errorf("%w: ballot %d has %d scores, want %d", ErrInvalidMatrix, i, len(row), len(m.Candidates))
		}
		for j, s := range row {
			if math.IsNaN(s) || s < 0 || s > maxScore {
				return fmt.Errorf("%w: ballot %d scores %q %v, outside [0, %v]", ErrInvalidMatrix, i, m.Candidates[j], s, maxScore)
			}
		}
	}
	return nil
}
