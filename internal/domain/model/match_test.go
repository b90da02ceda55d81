package model_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/tabellone/internal/domain/model"
	"github.com/okian/tabellone/internal/domain/sport"
	"github.com/okian/tabellone/internal/domain/standings"
	"github.com/smartystreets/goconvey/convey"
)

func validMatch() model.Match {
	return model.Match{
		EventID:      "m-1",
		TournamentID: "serie-a",
		Sport:        sport.Calcio,
		HomeTeam:     "Aquile",
		AwayTeam:     "Bisonti",
		HomeScore:    2,
		AwayScore:    1,
		TS:           time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC),
	}
}

func TestMatchValidate(t *testing.T) {
	convey.Convey("Given a match", t, func() {
		convey.Convey("When every field is set", func() {
			convey.So(validMatch().Validate(), convey.ShouldBeNil)
		})

		convey.Convey("When a field is missing or inconsistent", func() {
			cases := []func(*model.Match){
				func(m *model.Match) { m.EventID = "" },
				func(m *model.Match) { m.TournamentID = "" },
				func(m *model.Match) { m.AwayTeam = "" },
				func(m *model.Match) { m.AwayTeam = m.HomeTeam },
				func(m *model.Match) { m.HomeScore = -1 },
			}
			for _, mutate := range cases {
				m := validMatch()
				mutate(&m)
				convey.So(errors.Is(m.Validate(), model.ErrInvalidMatch), convey.ShouldBeTrue)
			}
		})

		convey.Convey("When the sport is unknown", func() {
			m := validMatch()
			m.Sport = "rugby"
			err := m.Validate()

			convey.Convey("Then it reports an invalid sport", func() {
				convey.So(errors.Is(err, sport.ErrInvalidSport), convey.ShouldBeTrue)
				var ise *sport.InvalidSportError
				convey.So(errors.As(err, &ise), convey.ShouldBeTrue)
				convey.So(ise.Value, convey.ShouldEqual, "rugby")
			})
		})
	})
}

func TestMatchNormalize(t *testing.T) {
	convey.Convey("Given a match with loose input", t, func() {
		m := validMatch()
		m.Sport = " Volley "
		m.HomeTeam = "  Aquile "

		m.Normalize()

		convey.So(m.Sport, convey.ShouldEqual, sport.Volley)
		convey.So(m.HomeTeam, convey.ShouldEqual, "Aquile")
	})
}

func TestMatchOutcome(t *testing.T) {
	convey.Convey("Given a calcio home win", t, func() {
		m := validMatch()

		convey.Convey("Then each side sees its own result", func() {
			home, away := m.Outcome(true), m.Outcome(false)
			convey.So(home.Won, convey.ShouldBeTrue)
			convey.So(away.Won, convey.ShouldBeFalse)
			convey.So(away.Drawn, convey.ShouldBeFalse)
			convey.So(home.Sets, convey.ShouldBeNil)
		})
	})

	convey.Convey("Given a volley match lost 2-3 at home", t, func() {
		m := validMatch()
		m.Sport = sport.Volley
		m.HomeScore, m.AwayScore = 2, 3

		convey.Convey("Then the set score is seen from each side", func() {
			home, away := m.Outcome(true), m.Outcome(false)
			convey.So(home.Sets.Home, convey.ShouldEqual, 2)
			convey.So(home.Sets.Away, convey.ShouldEqual, 3)
			convey.So(away.Sets.Home, convey.ShouldEqual, 3)
			convey.So(away.Sets.Away, convey.ShouldEqual, 2)
			convey.So(away.Won, convey.ShouldBeTrue)
		})
	})

	convey.Convey("Given a draw", t, func() {
		m := validMatch()
		m.AwayScore = 2
		home, away := m.Sides()

		convey.So(home.Result, convey.ShouldEqual, standings.Draw)
		convey.So(away.Result, convey.ShouldEqual, standings.Draw)
		convey.So(away.Scored, convey.ShouldEqual, 2)
		convey.So(away.Conceded, convey.ShouldEqual, 2)
	})
}
