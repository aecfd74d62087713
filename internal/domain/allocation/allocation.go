// Package allocation implements Allocated Score, a multi-winner proportional
// score voting method.
//
// Winners are elected one per round. After each round the ballots that
// elected the winner spend a quota of V/W ballot weight: ballots scoring the
// winner above the split point are spent entirely and ballots exactly on it
// are spent fractionally, so later rounds favour voters who are not yet
// represented.
//
// The engine is a pure computation. Round state is threaded explicitly
// through Step and elected candidates are excluded by an eligibility flag
// rather than removed from the matrix.
package allocation

import (
	"fmt"
	"math"

	"github.com/okian/allocscore/internal/domain/ballot"
)

// Default engine configuration constants.
const (
	// DefaultTolerance absorbs float drift when cumulative weight lands on the quota.
	DefaultTolerance = 1e-9
)

// Engine tabulates Allocated Score elections.
type Engine struct {
	tolerance float64
	basis     SplitBasis
}

// New creates an Engine with configuration options.
func New(opts ...Option) *Engine {
	e := &Engine{
		tolerance: DefaultTolerance,
		basis:     SplitByScore,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Tolerance returns the quota comparison tolerance.
func (e *Engine) Tolerance() float64 { return e.tolerance }

// Basis returns the split point ordering.
func (e *Engine) Basis() SplitBasis { return e.basis }

// Result is the outcome of a tabulation.
type Result struct {
	RunID   string   `json:"run_id,omitempty"`
	Winners []string `json:"winners"`
	Quota   float64  `json:"quota"`
	Rounds  []Round  `json:"rounds"`
}

// Allocate returns the seats winners of the election in the order they were
// elected. maxScore is the top of the score scale.
func (e *Engine) Allocate(maxScore float64, seats int, m ballot.Matrix) ([]string, error) {
	res, err := e.Tabulate(maxScore, seats, m)
	if err != nil {
		return nil, err
	}
	return res.Winners, nil
}

// Tabulate runs the election and returns the winners together with a trace
// of every round.
func (e *Engine) Tabulate(maxScore float64, seats int, m ballot.Matrix) (Result, error) {
	if err := Validate(maxScore, seats, m); err != nil {
		return Result{}, err
	}

	t := NewTally(m, maxScore, seats)
	st := NewState(m.Ballots(), m.Len())
	res := Result{
		Winners: make([]string, 0, seats),
		Quota:   t.Quota,
		Rounds:  make([]Round, 0, seats),
	}

	for len(res.Winners) < seats {
		r, next, ok := e.Step(t, st)
		if !ok {
			break
		}
		r.Number = len(res.Winners) + 1
		res.Winners = append(res.Winners, r.Winner)
		res.Rounds = append(res.Rounds, r)
		st = next
	}
	return res, nil
}

// Validate rejects configurations the engine cannot tabulate.
func Validate(maxScore float64, seats int, m ballot.Matrix) error {
	if math.IsNaN(maxScore) || math.IsInf(maxScore, 0) || maxScore <= 0 {
		return fmt.Errorf("%w: max score must be positive, got %v", ErrInvalidConfiguration, maxScore)
	}
	if seats <= 0 {
		return fmt.Errorf("%w: seats must be positive, got %d", ErrInvalidConfiguration, seats)
	}
	if err := m.Validate(maxScore); err != nil {
		return err
	}
	if seats > m.Len() {
		return fmt.Errorf("%w: %d seats exceed %d candidates", ErrInvalidConfiguration, seats, m.Len())
	}
	return nil
}

// Tally is the round-independent input of a tabulation.
type Tally struct {
	Candidates []string
	// Scores are normalized to [0,1], one row per ballot.
	Scores [][]float64
	Quota  float64
}

// NewTally normalizes m and computes the quota from the full ballot count.
func NewTally(m ballot.Matrix, maxScore float64, seats int) Tally {
	return Tally{
		Candidates: append([]string(nil), m.Candidates...),
		Scores:     Normalize(m, maxScore),
		Quota:      float64(m.Ballots()) / float64(seats),
	}
}

// Normalize divides every score by maxScore.
func Normalize(m ballot.Matrix, maxScore float64) [][]float64 {
	out := make([][]float64, len(m.Scores))
	for i, row := range m.Scores {
		out[i] = make([]float64, len(row))
		for j, s := range row {
			out[i][j] = s / maxScore
		}
	}
	return out
}
