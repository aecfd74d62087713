package ballot_test

import (
	"errors"
	"math"
	"testing"

	"github.com/okian/allocscore/internal/domain/ballot"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMatrixValidate(t *testing.T) {
	Convey("Given score matrices", t, func() {
		Convey("When the matrix is well formed", func() {
			m := ballot.NewMatrix([]string{"A", "B"}, [][]float64{{5, 0}, {2, 3}})

			Convey("Then it should validate", func() {
				So(m.Validate(5), ShouldBeNil)
				So(m.Ballots(), ShouldEqual, 2)
				So(m.Len(), ShouldEqual, 2)
			})
		})

		Convey("When the matrix is malformed", func() {
			cases := map[string]ballot.Matrix{
				"no candidates":  ballot.NewMatrix(nil, [][]float64{{}}),
				"no ballots":     ballot.NewMatrix([]string{"A"}, nil),
				"empty name":     ballot.NewMatrix([]string{""}, [][]float64{{1}}),
				"duplicate name": ballot.NewMatrix([]string{"A", "A"}, [][]float64{{1, 2}}),
				"ragged row":     ballot.NewMatrix([]string{"A", "B"}, [][]float64{{1, 2}, {1}}),
				"negative score": ballot.NewMatrix([]string{"A"}, [][]float64{{-1}}),
				"score too high": ballot.NewMatrix([]string{"A"}, [][]float64{{6}}),
				"NaN score":      ballot.NewMatrix([]string{"A"}, [][]float64{{math.NaN()}}),
			}

			Convey("Then every case should fail with ErrInvalidMatrix", func() {
				for _, m := range cases {
					err := m.Validate(5)
					So(err, ShouldNotBeNil)
					So(errors.Is(err, ballot.ErrInvalidMatrix), ShouldBeTrue)
				}
			})
		})
	})
}

func TestMatrixCopies(t *testing.T) {
	Convey("Given caller owned slices", t, func() {
		names := []string{"A", "B"}
		scores := [][]float64{{1, 2}}
		m := ballot.NewMatrix(names, scores)

		Convey("When the caller changes them", func() {
			names[0] = "Z"
			scores[0][0] = 5

			Convey("Then the matrix keeps its own copy", func() {
				So(m.Candidates[0], ShouldEqual, "A")
				So(m.Scores[0][0], ShouldEqual, 1)
			})
		})

		Convey("When the matrix is scaled", func() {
			scaled := m.Scale(3)

			Convey("Then only the copy changes", func() {
				So(scaled.Scores[0], ShouldResemble, []float64{3, 6})
				So(m.Scores[0], ShouldResemble, []float64{1, 2})
			})
		})

		Convey("When looking up columns", func() {
			idx, ok := m.Index("B")
			_, missing := m.Index("C")

			Convey("Then the index and column are returned", func() {
				So(ok, ShouldBeTrue)
				So(idx, ShouldEqual, 1)
				So(missing, ShouldBeFalse)
				So(m.Column(1), ShouldResemble, []float64{2})
			})
		})
	})
}
