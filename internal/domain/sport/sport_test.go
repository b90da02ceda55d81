package sport_test

import (
	"errors"
	"testing"

	"github.com/okian/tabellone/internal/domain/sport"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	Convey("Given user supplied sport names", t, func() {
		Convey("When the name is supported", func() {
			s, err := sport.Parse("  Volley ")

			Convey("Then it is normalised", func() {
				So(err, ShouldBeNil)
				So(s, ShouldEqual, sport.Volley)
			})
		})

		Convey("When the name is unknown", func() {
			_, err := sport.Parse("rugby")

			Convey("Then it fails with InvalidSportError", func() {
				So(err, ShouldNotBeNil)
				var invalid *sport.InvalidSportError
				So(errors.As(err, &invalid), ShouldBeTrue)
				So(invalid.Value, ShouldEqual, "rugby")
				So(errors.Is(err, sport.ErrInvalidSport), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "rugby")
			})
		})

		Convey("When the name is empty", func() {
			_, err := sport.Parse("")
			So(errors.Is(err, sport.ErrInvalidSport), ShouldBeTrue)
		})
	})
}

func TestAll(t *testing.T) {
	Convey("Given the supported set", t, func() {
		all := sport.All()

		Convey("Then it has the four sports, all valid", func() {
			So(all, ShouldResemble, []sport.Sport{sport.Calcio, sport.Basket, sport.Volley, sport.Padel})
			for _, s := range all {
				So(s.Valid(), ShouldBeTrue)
			}
		})

		Convey("Then callers cannot mutate the package list", func() {
			all[0] = "rugby"
			So(sport.All()[0], ShouldEqual, sport.Calcio)
		})

		Convey("Then only volley and padel are set based", func() {
			So(sport.Volley.SetBased(), ShouldBeTrue)
			So(sport.Padel.SetBased(), ShouldBeTrue)
			So(sport.Calcio.SetBased(), ShouldBeFalse)
			So(sport.Basket.SetBased(), ShouldBeFalse)
		})
	})
}
