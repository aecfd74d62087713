package scenario

import "strconv"

// DupFactions expands every faction into seats identical candidates named
// after the faction and a 1-based index: DupFactions([A B], 3) returns
// [A1 A2 A3 B1 B2 B3].
func DupFactions(factions []string, seats int) []string {
	out := make([]string, 0, len(factions)*seats)
	for _, f := range factions {
		for n := 1; n <= seats; n++ {
			out = append(out, f+strconv.Itoa(n))
		}
	}
	return out
}

// DupScores repeats every faction score once per candidate of that faction,
// lining a profile up with the columns produced by DupFactions:
// DupScores([0 5], 3) returns [0 0 0 5 5 5].
func DupScores(scores []float64, seats int) []float64 {
	out := make([]float64, 0, len(scores)*seats)
	for _, s := range scores {
		for n := 0; n < seats; n++ {
			out = append(out, s)
		}
	}
	return out
}
