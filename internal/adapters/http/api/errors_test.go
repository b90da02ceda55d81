package api

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestErrorKinds(t *testing.T) {
	Convey("Given a wrapped error", t, func() {
		cause := errors.New("boom")
		err := WrapKind("api.op", ErrBackpressure, cause)

		Convey("Then it matches both kind and cause", func() {
			So(errors.Is(err, ErrBackpressure), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.op: backpressure: boom")
		})
	})

	Convey("Given the constructors", t, func() {
		So(NewKind("op", ErrNotFound).Error(), ShouldEqual, "op: not found")
		So(Wrap("op", nil), ShouldBeNil)
		So(errors.Is(Wrap("op", ErrBadRequest), ErrBadRequest), ShouldBeTrue)
	})
}
