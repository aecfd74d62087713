package scenario

import "fmt"

// Demos returns the sample elections from the Allocated Score write-up on
// electowiki: two faction studies with five seats and the star-core
// election tabulated for one to five seats.
func Demos() []Election {
	const (
		maxScore = 5
		seats    = 5
	)
	factions := []string{"A", "B", "C"}
	red := []float64{5, 0, 0}
	green := []float64{0, 4, 5}

	out := []Election{
		{
			Name:     "factions",
			MaxScore: maxScore,
			Seats:    seats,
			Factions: factions,
			Ballots: []BallotGroup{
				{Scores: red, Count: 21},
				{Scores: green, Count: 41},
				{Scores: []float64{0, 3, 0}, Count: 38},
			},
		},
		{
			Name:     "factions-blue5",
			MaxScore: maxScore,
			Seats:    seats,
			Factions: factions,
			Ballots: []BallotGroup{
				{Scores: red, Count: 21},
				{Scores: green, Count: 41},
				{Scores: []float64{0, 5, 0}, Count: 38},
			},
		},
	}

	for n := 1; n <= 5; n++ {
		out = append(out, Election{
			Name:       fmt.Sprintf("star-core/seats=%d", n),
			MaxScore:   maxScore,
			Seats:      n,
			Candidates: []string{"Adam", "Becky", "Cindy", "Dylan", "Eliza"},
			Ballots: []BallotGroup{
				{Scores: []float64{0, 0, 5, 3, 2}, Count: 1},
				{Scores: []float64{4, 0, 3, 3, 2}, Count: 1},
				{Scores: []float64{0, 0, 0, 3, 1}, Count: 1},
				{Scores: []float64{2, 0, 0, 3, 4}, Count: 1},
				{Scores: []float64{0, 0, 0, 0, 0}, Count: 1},
				{Scores: []float64{1, 5, 0, 3, 5}, Count: 1},
				{Scores: []float64{0, 0, 0, 0, 0}, Count: 1},
			},
		})
	}
	return out
}
