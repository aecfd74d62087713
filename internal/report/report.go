// Package report renders tabulation results for people and for machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/okian/allocscore/internal/domain/allocation"
	"github.com/okian/allocscore/internal/scenario"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Report pairs an election with its result.
type Report struct {
	Election   scenario.Election
	Result     allocation.Result
	ShowRounds bool
}

// Write renders r in the given format.
func Write(w io.Writer, format string, r Report) error {
	switch strings.ToLower(format) {
	case "", FormatText:
		return Text(w, r)
	case FormatJSON:
		return JSON(w, r)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Text prints the election, its ballot profiles and the winners.
func Text(w io.Writer, r Report) error {
	e := r.Election
	p := &printer{w: w}

	p.printf("Election %s: seats=%d max_score=%s", e.Name, e.Seats, num(e.MaxScore))
	if len(e.Factions) > 0 {
		p.printf(" factions=%s", strings.Join(e.Factions, ","))
	} else {
		p.printf(" candidates=%s", strings.Join(e.Candidates, ","))
	}
	p.printf("\nProfiles:\n")
	for _, g := range e.Ballots {
		p.printf("  %d: %s\n", g.Count, nums(g.Scores))
	}

	if r.ShowRounds {
		p.printf("Quota: %s\n", num(r.Result.Quota))
		for _, rd := range r.Result.Rounds {
			p.printf("Round %d: elected %s", rd.Number, rd.Winner)
			if rd.Degenerate {
				p.printf(" (no weight spent)\n")
			} else {
				p.printf(" split=%s spent_above=%s on_split=%s spent_value=%s\n",
					num(rd.SplitPoint), num(rd.SpentAbove), num(rd.WeightOnSplit), num(rd.SpentValue))
			}
			for _, cs := range rd.Scores {
				p.printf("    %-12s %s\n", cs.Candidate, num(cs.Score))
			}
		}
	}

	p.printf("Winners: %s\n", strings.Join(r.Result.Winners, ", "))
	return p.err
}

type jsonReport struct {
	RunID    string             `json:"run_id,omitempty"`
	Election scenario.Election  `json:"election"`
	Winners  []string           `json:"winners"`
	Quota    float64            `json:"quota"`
	Rounds   []allocation.Round `json:"rounds,omitempty"`
}

// JSON writes r as an indented JSON document.
func JSON(w io.Writer, r Report) error {
	out := jsonReport{
		RunID:    r.Result.RunID,
		Election: r.Election,
		Winners:  r.Result.Winners,
		Quota:    r.Result.Quota,
	}
	if r.ShowRounds {
		out.Rounds = r.Result.Rounds
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// printer remembers the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func nums(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = num(v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
