package scoring_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/tabellone/internal/domain/scoring"
	"github.com/okian/tabellone/internal/domain/sport"
	. "github.com/smartystreets/goconvey/convey"
)

func sets(home, away int) *scoring.SetScore {
	return &scoring.SetScore{Home: home, Away: away}
}

func TestSystemFor(t *testing.T) {
	Convey("Given the rule table", t, func() {
		Convey("Then every supported sport has a system", func() {
			for _, s := range sport.All() {
				sys, err := scoring.SystemFor(s)
				So(err, ShouldBeNil)
				So(sys.WinPoints, ShouldBeGreaterThan, 0)
				So(sys.DrawPoints, ShouldBeGreaterThanOrEqualTo, 0)
				So(sys.LossPoints, ShouldBeGreaterThanOrEqualTo, 0)
			}
		})

		Convey("Then the point values match the league rules", func() {
			calcio, _ := scoring.SystemFor(sport.Calcio)
			So(calcio.WinPoints, ShouldEqual, 3)
			So(calcio.DrawPoints, ShouldEqual, 1)
			So(calcio.Bonuses, ShouldBeEmpty)

			basket, _ := scoring.SystemFor(sport.Basket)
			So(basket.WinPoints, ShouldEqual, 2)
			So(basket.DrawPoints, ShouldEqual, 0)

			padel, _ := scoring.SystemFor(sport.Padel)
			So(padel.WinPoints, ShouldEqual, 1)

			volley, _ := scoring.SystemFor(sport.Volley)
			So(volley.WinPoints, ShouldEqual, 3)
			So(volley.Bonuses, ShouldResemble, []scoring.Bonus{
				{Condition: "Vittoria 3-0 o 3-1", Points: 3},
				{Condition: "Vittoria 3-2", Points: 2},
				{Condition: "Sconfitta 2-3", Points: 1},
			})
		})

		Convey("When the caller mutates a returned system", func() {
			volley, _ := scoring.SystemFor(sport.Volley)
			volley.Bonuses[0].Points = 99

			Convey("Then the table is unchanged", func() {
				again, _ := scoring.SystemFor(sport.Volley)
				So(again.Bonuses[0].Points, ShouldEqual, 3)
			})
		})

		Convey("When asking for an unknown sport", func() {
			_, err := scoring.SystemFor(sport.Sport("curling"))

			Convey("Then it fails with the invalid sport kind", func() {
				So(errors.Is(err, sport.ErrInvalidSport), ShouldBeTrue)
			})
		})
	})
}

func TestMatchPoints(t *testing.T) {
	Convey("Given the scoring rules", t, func() {
		Convey("Calcio awards 3, 1 and 0", func() {
			win, _ := scoring.MatchPoints(sport.Calcio, true, false, nil)
			draw, _ := scoring.MatchPoints(sport.Calcio, false, true, nil)
			loss, _ := scoring.MatchPoints(sport.Calcio, false, false, nil)
			So([]int{win, draw, loss}, ShouldResemble, []int{3, 1, 0})
		})

		Convey("Basket awards 2 for a win and nothing otherwise", func() {
			win, _ := scoring.MatchPoints(sport.Basket, true, false, nil)
			draw, _ := scoring.MatchPoints(sport.Basket, false, true, nil)
			loss, _ := scoring.MatchPoints(sport.Basket, false, false, nil)
			So([]int{win, draw, loss}, ShouldResemble, []int{2, 0, 0})
		})

		Convey("Padel awards 1 for a win and ignores sets", func() {
			win, err := scoring.MatchPoints(sport.Padel, true, false, sets(2, 1))
			So(err, ShouldBeNil)
			So(win, ShouldEqual, 1)
			loss, err := scoring.MatchPoints(sport.Padel, false, false, sets(1, 2))
			So(err, ShouldBeNil)
			So(loss, ShouldEqual, 0)
		})

		Convey("Volley depends on the set score", func() {
			cases := []struct {
				won  bool
				sets *scoring.SetScore
				want int
			}{
				{true, sets(3, 0), 3},
				{true, sets(3, 1), 3},
				{true, sets(3, 2), 2},
				{false, sets(2, 3), 1},
				{false, sets(1, 3), 0},
				{false, sets(0, 3), 0},
				{true, nil, 3},
				{false, nil, 0},
			}
			for _, c := range cases {
				got, err := scoring.MatchPoints(sport.Volley, c.won, false, c.sets)
				So(err, ShouldBeNil)
				So(got, ShouldEqual, c.want)
			}
		})

		Convey("A match cannot be both won and drawn", func() {
			for _, s := range sport.All() {
				_, err := scoring.MatchPoints(s, true, true, nil)
				So(errors.Is(err, scoring.ErrConflictingOutcome), ShouldBeTrue)
			}
		})

		Convey("Volley sets must agree with the outcome", func() {
			_, err := scoring.MatchPoints(sport.Volley, true, false, sets(2, 3))
			So(errors.Is(err, scoring.ErrInvalidSetScore), ShouldBeTrue)
			_, err = scoring.MatchPoints(sport.Volley, false, false, sets(3, 1))
			So(errors.Is(err, scoring.ErrInvalidSetScore), ShouldBeTrue)
			_, err = scoring.MatchPoints(sport.Volley, true, false, sets(-1, -3))
			So(errors.Is(err, scoring.ErrInvalidSetScore), ShouldBeTrue)
			_, err = scoring.MatchPoints(sport.Volley, false, true, sets(3, 0))
			So(errors.Is(err, scoring.ErrInvalidSetScore), ShouldBeTrue)

			draw, err := scoring.MatchPoints(sport.Volley, false, true, sets(2, 2))
			So(err, ShouldBeNil)
			So(draw, ShouldEqual, 0)
		})

		Convey("A win is never worth less than a draw or a loss", func() {
			for _, s := range sport.All() {
				win, _ := scoring.MatchPoints(s, true, false, nil)
				draw, _ := scoring.MatchPoints(s, false, true, nil)
				loss, _ := scoring.MatchPoints(s, false, false, nil)
				So(win, ShouldBeGreaterThanOrEqualTo, draw)
				So(draw, ShouldBeGreaterThanOrEqualTo, loss)
			}
		})

		Convey("An unknown sport is rejected", func() {
			_, err := scoring.MatchPoints(sport.Sport("golf"), true, false, nil)
			So(errors.Is(err, sport.ErrInvalidSport), ShouldBeTrue)
		})
	})
}

func TestDescribe(t *testing.T) {
	Convey("Given the description renderer", t, func() {
		Convey("Calcio uses the singular for one point", func() {
			text, err := scoring.Describe(sport.Calcio)
			So(err, ShouldBeNil)
			So(text, ShouldEqual, "Vittoria: 3 punti\nPareggio: 1 punto")
		})

		Convey("Basket shows zero points for a draw", func() {
			text, err := scoring.Describe(sport.Basket)
			So(err, ShouldBeNil)
			So(text, ShouldEqual, "Vittoria: 2 punti\nPareggio: 0 punti")
		})

		Convey("Padel shows a singular win", func() {
			text, err := scoring.Describe(sport.Padel)
			So(err, ShouldBeNil)
			So(text, ShouldEqual, "Vittoria: 1 punto\nPareggio: 0 punti")
		})

		Convey("Volley lists its bonuses", func() {
			text, err := scoring.Describe(sport.Volley)
			So(err, ShouldBeNil)
			So(text, ShouldEqual, "Vittoria: 3 punti\nPareggio: 0 punti\nBonus:\n"+
				"- Vittoria 3-0 o 3-1: 3 punti\n"+
				"- Vittoria 3-2: 2 punti\n"+
				"- Sconfitta 2-3: 1 punto")
		})

		Convey("An unknown sport is rejected", func() {
			_, err := scoring.Describe(sport.Sport("cricket"))
			So(err, ShouldNotBeNil)
		})
	})
}

func TestTableScorer(t *testing.T) {
	Convey("Given a table scorer", t, func() {
		scorer := scoring.NewTableScorer()

		Convey("When scoring a volley tie break win", func() {
			res, err := scorer.Score(context.Background(), scoring.Outcome{
				Sport: sport.Volley, Won: true, Sets: sets(3, 2),
			})

			Convey("Then it returns the tie break award", func() {
				So(err, ShouldBeNil)
				So(res.Points, ShouldEqual, 2)
				So(res.Sport, ShouldEqual, sport.Volley)
			})
		})

		Convey("When the context is already cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := scorer.Score(ctx, scoring.Outcome{Sport: sport.Calcio, Won: true})

			Convey("Then it returns the context error", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})
}

// outcomeGrid is every sport crossed with every outcome flag pair and a
// spread of set scores, including nil and invalid ones.
func outcomeGrid() []scoring.Outcome {
	setScores := []*scoring.SetScore{nil}
	for home := 0; home <= 3; home++ {
		for away := 0; away <= 3; away++ {
			setScores = append(setScores, sets(home, away))
		}
	}
	flags := [][2]bool{{true, false}, {false, true}, {false, false}, {true, true}}

	var grid []scoring.Outcome
	for _, s := range append(sport.All(), sport.Sport("rugby")) {
		for _, f := range flags {
			for _, ss := range setScores {
				grid = append(grid, scoring.Outcome{Sport: s, Won: f[0], Drawn: f[1], Sets: ss})
			}
		}
	}
	return grid
}

// evaluation flattens a result so runs can be compared.
func evaluation(points int, err error) string {
	return fmt.Sprintf("%d/%v", points, err)
}

func TestScoringIsRepeatable(t *testing.T) {
	Convey("Given every outcome and sport", t, func() {
		grid := outcomeGrid()
		first := make([]string, len(grid))
		for i, o := range grid {
			first[i] = evaluation(scoring.MatchPoints(o.Sport, o.Won, o.Drawn, o.Sets))
		}

		Convey("When points are computed again", func() {
			Convey("Then every call returns the same result", func() {
				for round := 0; round < 3; round++ {
					for i, o := range grid {
						So(evaluation(scoring.MatchPoints(o.Sport, o.Won, o.Drawn, o.Sets)), ShouldEqual, first[i])
					}
				}
			})
		})

		Convey("When descriptions are rendered again", func() {
			Convey("Then the text never changes", func() {
				for _, s := range append(sport.All(), sport.Sport("rugby")) {
					want, wantErr := scoring.Describe(s)
					for round := 0; round < 3; round++ {
						got, err := scoring.Describe(s)
						So(got, ShouldEqual, want)
						So(fmt.Sprint(err), ShouldEqual, fmt.Sprint(wantErr))
					}
				}
			})
		})
	})
}

func TestTableScorerConcurrentCallers(t *testing.T) {
	Convey("Given results computed one call at a time", t, func() {
		ctx := context.Background()
		scorer := scoring.NewTableScorer()
		grid := outcomeGrid()
		want := make([]string, len(grid))
		for i, o := range grid {
			res, err := scorer.Score(ctx, o)
			want[i] = evaluation(res.Points, err)
		}

		Convey("When many goroutines score the same outcomes", func() {
			const callers = 16
			got := make([][]string, callers)
			var wg sync.WaitGroup
			for c := 0; c < callers; c++ {
				wg.Add(1)
				go func(c int) {
					defer wg.Done()
					out := make([]string, len(grid))
					for i, o := range grid {
						res, err := scorer.Score(ctx, o)
						out[i] = evaluation(res.Points, err)
					}
					got[c] = out
				}(c)
			}
			wg.Wait()

			Convey("Then each caller sees the sequential results", func() {
				for c := 0; c < callers; c++ {
					So(got[c], ShouldResemble, want)
				}
			})
		})
	})
}
