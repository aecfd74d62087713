// Package scenario builds score matrices from election documents, faction
// studies and CSV ballot files.
package scenario

import (
	"fmt"

	"github.com/okian/allocscore/internal/domain/ballot"
	"gopkg.in/yaml.v3"
)

// Election describes one election to tabulate.
//
// Either Candidates lists the columns directly, or Factions lists faction
// labels that are expanded into Seats identical candidates each. In the
// faction form every ballot group gives one score per faction.
type Election struct {
	Name       string        `yaml:"name" json:"name"`
	MaxScore   float64       `yaml:"max_score" json:"max_score"`
	Seats      int           `yaml:"seats" json:"seats"`
	Candidates []string      `yaml:"candidates,omitempty" json:"candidates,omitempty"`
	Factions   []string      `yaml:"factions,omitempty" json:"factions,omitempty"`
	Ballots    []BallotGroup `yaml:"ballots" json:"ballots"`
}

// BallotGroup is Count identical ballots. In YAML a bare score list is a
// group of one.
type BallotGroup struct {
	Scores []float64 `yaml:"scores" json:"scores"`
	Count  int       `yaml:"count" json:"count"`
}

// UnmarshalYAML accepts either `[5, 4, 0]` or `{scores: [5, 4, 0], count: 10}`.
// An omitted count means one ballot; an explicit `count: 0` means none.
func (g *BallotGroup) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		g.Count = 1
		return node.Decode(&g.Scores)
	}

	var p struct {
		Scores []float64 `yaml:"scores"`
		Count  *int      `yaml:"count"`
	}
	if err := node.Decode(&p); err != nil {
		return err
	}
	g.Scores = p.Scores
	g.Count = 1
	if p.Count != nil {
		g.Count = *p.Count
	}
	return nil
}

// Voters returns the number of ballots across all groups.
func (e Election) Voters() int {
	n := 0
	for _, g := range e.Ballots {
		n += g.Count
	}
	return n
}

// Columns returns the candidate names, expanding factions when set.
func (e Election) Columns() []string {
	if len(e.Factions) > 0 {
		return DupFactions(e.Factions, e.Seats)
	}
	return append([]string(nil), e.Candidates...)
}

// Validate checks the document structure. Score ranges and the seat count
// are checked by the allocation engine, and a faction study only needs its
// seats once Matrix expands it.
func (e Election) Validate() error {
	switch {
	case len(e.Candidates) > 0 && len(e.Factions) > 0:
		return fmt.Errorf("%w: %q sets both candidates and factions", ErrInvalidElection, e.Name)
	case len(e.Candidates) == 0 && len(e.Factions) == 0:
		return fmt.Errorf("%w: %q has no candidates or factions", ErrInvalidElection, e.Name)
	case len(e.Ballots) == 0:
		return fmt.Errorf("%w: %q has no ballots", ErrInvalidElection, e.Name)
	}

	width := len(e.Candidates)
	if len(e.Factions) > 0 {
		width = len(e.Factions)
	}
	for i, g := range e.Ballots {
		if g.Count < 0 {
			return fmt.Errorf("%w: %q ballot group %d has negative count %d", ErrInvalidElection, e.Name, i, g.Count)
		}
		if len(g.Scores) != width {
			return fmt.Errorf("%w: %q ballot group %d has %d scores, want %d", ErrInvalidElection, e.Name, i, len(g.Scores), width)
		}
	}
	return nil
}

// Matrix expands the ballot groups into a score matrix.
func (e Election) Matrix() (ballot.Matrix, error) {
	if err := e.Validate(); err != nil {
		return ballot.Matrix{}, err
	}
	if len(e.Factions) > 0 && e.Seats <= 0 {
		return ballot.Matrix{}, fmt.Errorf("%w: %q needs seats to expand factions", ErrInvalidElection, e.Name)
	}

	rows := make([][]float64, 0, e.Voters())
	for _, g := range e.Ballots {
		row := g.Scores
		if len(e.Factions) > 0 {
			row = DupScores(g.Scores, e.Seats)
		}
		for n := 0; n < g.Count; n++ {
			rows = append(rows, row)
		}
	}
	return ballot.NewMatrix(e.Columns(), rows), nil
}
