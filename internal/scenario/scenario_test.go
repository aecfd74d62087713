package scenario_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/allocscore/internal/scenario"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDupFactions(t *testing.T) {
	Convey("Given faction labels", t, func() {
		Convey("When expanded for three seats", func() {
			got := scenario.DupFactions([]string{"A", "B"}, 3)

			Convey("Then every faction gets three numbered candidates", func() {
				So(got, ShouldResemble, []string{"A1", "A2", "A3", "B1", "B2", "B3"})
			})
		})

		Convey("When a profile is expanded for three seats", func() {
			got := scenario.DupScores([]float64{0, 5}, 3)

			Convey("Then every score is repeated once per candidate", func() {
				So(got, ShouldResemble, []float64{0, 0, 0, 5, 5, 5})
			})
		})
	})
}

func TestParse(t *testing.T) {
	Convey("Given a YAML election with explicit candidates", t, func() {
		doc := `
name: three factions
max_score: 5
seats: 2
candidates: [A, B, C]
ballots:
  - scores: [5, 4, 0]
    count: 10
  - {scores: [4, 5, 0], count: 10}
  - [0, 2, 5]
`
		e, err := scenario.Parse([]byte(doc))

		Convey("Then bare lists count once and groups keep their count", func() {
			So(err, ShouldBeNil)
			So(e.Name, ShouldEqual, "three factions")
			So(e.Voters(), ShouldEqual, 21)
			So(e.Ballots[2].Count, ShouldEqual, 1)
		})

		Convey("Then the matrix has one row per voter", func() {
			m, err := e.Matrix()
			So(err, ShouldBeNil)
			So(m.Ballots(), ShouldEqual, 21)
			So(m.Candidates, ShouldResemble, []string{"A", "B", "C"})
			So(m.Scores[20], ShouldResemble, []float64{0, 2, 5})
		})
	})

	Convey("Given a YAML faction study", t, func() {
		doc := `
max_score: 5
seats: 2
factions: [A, B]
ballots:
  - scores: [5, 0]
    count: 3
`
		e, err := scenario.Parse([]byte(doc))
		So(err, ShouldBeNil)

		Convey("Then factions are expanded into duplicated candidates", func() {
			m, err := e.Matrix()
			So(err, ShouldBeNil)
			So(m.Candidates, ShouldResemble, []string{"A1", "A2", "B1", "B2"})
			So(m.Scores[0], ShouldResemble, []float64{5, 5, 0, 0})
			So(m.Ballots(), ShouldEqual, 3)
		})
	})

	Convey("Given a group with an explicit zero count", t, func() {
		doc := `
max_score: 5
seats: 1
candidates: [A, B]
ballots:
  - {scores: [5, 0], count: 0}
  - {scores: [0, 5], count: 2}
  - {scores: [3, 3]}
`
		e, err := scenario.Parse([]byte(doc))

		Convey("Then the group contributes no ballots", func() {
			So(err, ShouldBeNil)
			So(e.Ballots[0].Count, ShouldEqual, 0)
			So(e.Ballots[2].Count, ShouldEqual, 1)
			So(e.Voters(), ShouldEqual, 3)

			m, err := e.Matrix()
			So(err, ShouldBeNil)
			So(m.Ballots(), ShouldEqual, 3)
			So(m.Scores[0], ShouldResemble, []float64{0, 5})
		})
	})

	Convey("Given a faction study without seats", t, func() {
		e, err := scenario.Parse([]byte("max_score: 5\nfactions: [A, B]\nballots: [{scores: [5, 0], count: 3}]"))

		Convey("Then it parses so the seat count can be supplied later", func() {
			So(err, ShouldBeNil)
			So(e.Seats, ShouldEqual, 0)
		})

		Convey("Then expanding it without seats is rejected", func() {
			_, err := e.Matrix()
			So(errors.Is(err, scenario.ErrInvalidElection), ShouldBeTrue)
		})

		Convey("Then expanding it once seats are set succeeds", func() {
			e.Seats = 2
			m, err := e.Matrix()
			So(err, ShouldBeNil)
			So(m.Candidates, ShouldResemble, []string{"A1", "A2", "B1", "B2"})
		})
	})

	Convey("Given invalid documents", t, func() {
		docs := []string{
			"candidates: [A]\nfactions: [B]\nballots: [[1]]",
			"ballots: [[1]]",
			"candidates: [A, B]\nballots: [[1]]",
			"candidates: [A]\nballots: [{scores: [1], count: -2}]",
			"candidates: [A]",
		}

		Convey("Then each is rejected as an invalid election", func() {
			for _, doc := range docs {
				_, err := scenario.Parse([]byte(doc))
				So(errors.Is(err, scenario.ErrInvalidElection), ShouldBeTrue)
			}
		})

		Convey("Then malformed YAML is reported", func() {
			_, err := scenario.Parse([]byte("ballots: [[1"))
			So(err, ShouldNotBeNil)
		})
	})
}

func TestParseCSV(t *testing.T) {
	Convey("Given a CSV ballot file", t, func() {
		data := "Adam, Becky, Cindy\n# comment\n5,0,3\n,4,\n"

		e, err := scenario.ParseCSV(strings.NewReader(data))

		Convey("Then the header becomes the candidates and blanks score zero", func() {
			So(err, ShouldBeNil)
			So(e.Candidates, ShouldResemble, []string{"Adam", "Becky", "Cindy"})
			So(e.Ballots, ShouldHaveLength, 2)
			So(e.Ballots[1].Scores, ShouldResemble, []float64{0, 4, 0})
		})
	})

	Convey("Given broken CSV input", t, func() {
		Convey("When the file is empty", func() {
			_, err := scenario.ParseCSV(strings.NewReader(""))
			So(errors.Is(err, scenario.ErrInvalidElection), ShouldBeTrue)
		})

		Convey("When a cell is not a number", func() {
			_, err := scenario.ParseCSV(strings.NewReader("A,B\n1,x\n"))
			So(errors.Is(err, scenario.ErrInvalidElection), ShouldBeTrue)
		})

		Convey("When a row is short", func() {
			_, err := scenario.ParseCSV(strings.NewReader("A,B\n1\n"))
			So(err, ShouldNotBeNil)
		})
	})
}

func TestLoadFile(t *testing.T) {
	Convey("Given election files on disk", t, func() {
		dir := t.TempDir()
		yamlPath := filepath.Join(dir, "council.yaml")
		csvPath := filepath.Join(dir, "ballots.csv")
		So(os.WriteFile(yamlPath, []byte("candidates: [A, B]\nballots: [[1, 2]]\n"), 0o600), ShouldBeNil)
		So(os.WriteFile(csvPath, []byte("A,B\n1,2\n"), 0o600), ShouldBeNil)

		Convey("When loading YAML without a name", func() {
			e, err := scenario.LoadFile(yamlPath)

			Convey("Then the file name is used", func() {
				So(err, ShouldBeNil)
				So(e.Name, ShouldEqual, "council")
			})
		})

		Convey("When loading CSV", func() {
			e, err := scenario.LoadFile(csvPath)

			Convey("Then the ballots are read", func() {
				So(err, ShouldBeNil)
				So(e.Name, ShouldEqual, "ballots")
				So(e.Voters(), ShouldEqual, 1)
			})
		})

		Convey("When the extension is unknown", func() {
			_, err := scenario.LoadFile(filepath.Join(dir, "ballots.txt"))
			So(errors.Is(err, scenario.ErrUnsupportedFile), ShouldBeTrue)
		})

		Convey("When the file is missing", func() {
			_, err := scenario.LoadFile(filepath.Join(dir, "missing.yaml"))
			So(err, ShouldNotBeNil)
		})
	})
}

func TestDemos(t *testing.T) {
	Convey("Given the built-in demo elections", t, func() {
		demos := scenario.Demos()

		Convey("Then every demo builds a matrix", func() {
			So(demos, ShouldHaveLength, 7)
			for _, d := range demos {
				m, err := d.Matrix()
				So(err, ShouldBeNil)
				So(m.Len(), ShouldBeGreaterThanOrEqualTo, d.Seats)
			}
		})

		Convey("Then the faction study has one hundred voters and fifteen candidates", func() {
			m, err := demos[0].Matrix()
			So(err, ShouldBeNil)
			So(m.Ballots(), ShouldEqual, 100)
			So(m.Len(), ShouldEqual, 15)
		})
	})
}
