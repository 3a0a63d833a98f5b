package model_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/spr311/pinboard/internal/domain/model"
)

func TestSearchText(t *testing.T) {
	Convey("Given a pin", t, func() {
		Convey("When it has a description", func() {
			desc := "дика природа"
			pin := model.Pin{Title: "Гірські вершини", Description: &desc}

			Convey("Then title and description join with a space", func() {
				So(pin.SearchText(), ShouldEqual, "Гірські вершини дика природа")
			})
		})

		Convey("When the description is nil", func() {
			pin := model.Pin{Title: "Морський берег"}

			Convey("Then only the title carries over", func() {
				So(pin.SearchText(), ShouldEqual, "Морський берег ")
			})
		})

		Convey("When the pin is empty", func() {
			So(model.Pin{}.SearchText(), ShouldEqual, " ")
		})
	})
}
