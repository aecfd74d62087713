package scenario

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads an election from a YAML document or a CSV ballot file,
// chosen by extension.
func LoadFile(path string) (Election, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return Load(path)
	case ".csv":
		return LoadCSV(path)
	default:
		return Election{}, fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}
}

// Load reads a YAML election document.
func Load(path string) (Election, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Election{}, fmt.Errorf("read election: %w", err)
	}
	e, err := Parse(data)
	if err != nil {
		return Election{}, err
	}
	if e.Name == "" {
		e.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return e, nil
}

// Parse decodes a YAML election document.
func Parse(data []byte) (Election, error) {
	var e Election
	if err := yaml.Unmarshal(data, &e); err != nil {
		return Election{}, fmt.Errorf("parse election: %w", err)
	}
	if err := e.Validate(); err != nil {
		return Election{}, err
	}
	return e, nil
}

// LoadCSV reads a CSV ballot file. Max score and seats are left for the
// caller to fill in.
func LoadCSV(path string) (Election, error) {
	f, err := os.Open(path)
	if err != nil {
		return Election{}, fmt.Errorf("read election: %w", err)
	}
	defer func() { _ = f.Close() }()

	e, err := ParseCSV(f)
	if err != nil {
		return Election{}, err
	}
	e.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return e, nil
}

// ParseCSV reads a header row of candidate names followed by one row of
// scores per ballot. Empty cells score zero.
func ParseCSV(r io.Reader) (Election, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Election{}, fmt.Errorf("%w: empty ballot file", ErrInvalidElection)
	}
	if err != nil {
		return Election{}, fmt.Errorf("parse ballots: %w", err)
	}

	e := Election{Candidates: make([]string, len(header))}
	for i, h := range header {
		e.Candidates[i] = strings.TrimSpace(h)
	}

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Election{}, fmt.Errorf("parse ballots: %w", err)
		}
		scores := make([]float64, len(rec))
		for i, cell := range rec {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return Election{}, fmt.Errorf("%w: line %d column %d: %v", ErrInvalidElection, line, i+1, err)
			}
			scores[i] = v
		}
		e.Ballots = append(e.Ballots, BallotGroup{Scores: scores, Count: 1})
	}

	if err := e.Validate(); err != nil {
		return Election{}, err
	}
	return e, nil
}
