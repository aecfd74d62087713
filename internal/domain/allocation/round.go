package allocation

import (
	"cmp"
	"math"
	"slices"
)

// Weights holds the unspent voting power of every ballot, each in [0,1].
type Weights []float64

// Sum returns the total weight.
func (w Weights) Sum() float64 {
	var total float64
	for _, v := range w {
		total += v
	}
	return total
}

// Clone returns a copy of w.
func (w Weights) Clone() Weights {
	return append(Weights(nil), w...)
}

// State is the value threaded from one round to the next.
type State struct {
	Weights  Weights
	Eligible []bool
}

// NewState returns the state entering round one: every ballot at full
// weight and every candidate eligible.
func NewState(ballots, candidates int) State {
	st := State{
		Weights:  make(Weights, ballots),
		Eligible: make([]bool, candidates),
	}
	for i := range st.Weights {
		st.Weights[i] = 1
	}
	for i := range st.Eligible {
		st.Eligible[i] = true
	}
	return st
}

// Clone returns a deep copy of st.
func (st State) Clone() State {
	return State{
		Weights:  st.Weights.Clone(),
		Eligible: append([]bool(nil), st.Eligible...),
	}
}

// Remaining returns the number of eligible candidates.
func (st State) Remaining() int {
	n := 0
	for _, ok := range st.Eligible {
		if ok {
			n++
		}
	}
	return n
}

// CandidateScore pairs a candidate with its weighted score in a round.
type CandidateScore struct {
	Candidate string  `json:"candidate"`
	Score     float64 `json:"score"`
}

// Round records what happened in one round.
type Round struct {
	Number int    `json:"round"`
	Winner string `json:"winner"`
	// Scores lists every candidate eligible at the start of the round in
	// column order.
	Scores        []CandidateScore `json:"scores"`
	SplitPoint    float64          `json:"split_point"`
	SpentAbove    float64          `json:"spent_above"`
	WeightOnSplit float64          `json:"weight_on_split"`
	SpentValue    float64          `json:"spent_value"`
	// Degenerate is set when the round spent no weight.
	Degenerate bool `json:"degenerate"`
	// Weights leaving the round.
	Weights Weights `json:"-"`
}

// Spent returns the weight removed from the ballots in this round.
func (r Round) Spent(before Weights) float64 {
	return before.Sum() - r.Weights.Sum()
}

// Step runs one round: it elects the eligible candidate with the highest
// weighted score and spends a quota of the weight behind it. The input state
// is not modified. ok is false when no candidate is eligible.
func (e *Engine) Step(t Tally, in State) (r Round, out State, ok bool) {
	scores := WeightedScores(t.Scores, in)
	winner, ok := SelectWinner(scores, in.Eligible)
	if !ok {
		return Round{}, in, false
	}

	out = in.Clone()
	out.Eligible[winner] = false

	r = Round{Winner: t.Candidates[winner]}
	for c, eligible := range in.Eligible {
		if eligible {
			r.Scores = append(r.Scores, CandidateScore{Candidate: t.Candidates[c], Score: scores[c]})
		}
	}

	keys := e.splitKeys(t.Scores, in.Weights, winner)
	split, found := SplitPoint(keys, in.Weights, t.Quota, e.tolerance)
	if !found {
		r.Degenerate = true
		r.Weights = out.Weights.Clone()
		return r, out, true
	}
	r.SplitPoint = split

	for i, k := range keys {
		switch {
		case k > split:
			r.SpentAbove += in.Weights[i]
		case k == split:
			r.WeightOnSplit += in.Weights[i]
		}
	}
	if r.SpentAbove == 0 && r.WeightOnSplit == 0 {
		r.Degenerate = true
		r.Weights = out.Weights.Clone()
		return r, out, true
	}

	for i, k := range keys {
		if k > split {
			out.Weights[i] = 0
		}
	}
	if r.WeightOnSplit > 0 {
		r.SpentValue = (t.Quota - r.SpentAbove) / r.WeightOnSplit
		for i, k := range keys {
			if k == split {
				out.Weights[i] *= 1 - r.SpentValue
			}
		}
	}
	for i, w := range out.Weights {
		out.Weights[i] = clip(w)
	}

	r.Weights = out.Weights.Clone()
	return r, out, true
}

// splitKeys returns the value each ballot is ordered by when locating the
// split point for the winner.
func (e *Engine) splitKeys(scores [][]float64, weights Weights, winner int) []float64 {
	keys := make([]float64, len(scores))
	for i, row := range scores {
		keys[i] = row[winner]
		if e.basis == SplitByWeightedScore {
			keys[i] *= weights[i]
		}
	}
	return keys
}

// WeightedScores returns, for each candidate, the sum over ballots of
// normalized score times ballot weight. Ineligible candidates score zero.
func WeightedScores(scores [][]float64, st State) []float64 {
	out := make([]float64, len(st.Eligible))
	for i, row := range scores {
		w := st.Weights[i]
		if w == 0 {
			continue
		}
		for c, s := range row {
			if st.Eligible[c] {
				out[c] += s * w
			}
		}
	}
	return out
}

// SelectWinner returns the eligible candidate with the highest score. Ties go
// to the earliest column.
func SelectWinner(scores []float64, eligible []bool) (int, bool) {
	best, bestScore := -1, math.Inf(-1)
	for c, s := range scores {
		if !eligible[c] {
			continue
		}
		if best < 0 || s > bestScore {
			best, bestScore = c, s
		}
	}
	return best, best >= 0
}

// SplitPoint orders ballots by key, highest first, and accumulates their
// weight. It returns the lowest key among the leading ballots whose
// cumulative weight stays below quota-tolerance. found is false when even
// the first ballot reaches the quota.
func SplitPoint(keys []float64, weights Weights, quota, tolerance float64) (split float64, found bool) {
	order := make([]int, len(keys))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(keys[b], keys[a])
	})

	var cumulative float64
	for _, i := range order {
		cumulative += weights[i]
		if cumulative >= quota-tolerance {
			break
		}
		split, found = keys[i], true
	}
	return split, found
}

func clip(w float64) float64 {
	return math.Max(0, math.Min(1, w))
}
