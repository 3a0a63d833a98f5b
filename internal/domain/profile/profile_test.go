package profile

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/spr311/pinboard/internal/domain/model"
)

func pin(title string, description *string) model.Pin {
	return model.Pin{Title: title, Description: description}
}

func strp(s string) *string { return &s }

func TestBuild(t *testing.T) {
	Convey("Given viewed pins", t, func() {
		Convey("When the history is empty", func() {
			So(Build(nil), ShouldBeEmpty)
			So(Build([]model.Pin{}), ShouldBeEmpty)
		})

		Convey("When a pin matches one category", func() {
			p := Build([]model.Pin{pin("Морський берег", nil)})

			Convey("Then only that category accumulates", func() {
				So(p["nature"], ShouldEqual, 2) // морськ, берег
				So(len(p), ShouldEqual, 1)
			})
		})

		Convey("When the description matches too", func() {
			p := Build([]model.Pin{pin("Гірські вершини", strp("дика природа"))})

			Convey("Then title and description count together", func() {
				So(p["nature"], ShouldEqual, 2) // гір, природа
				// "природа" is also an animals stem.
				So(p["animals"], ShouldEqual, 1)
			})
		})

		Convey("When several pins accumulate", func() {
			p := Build([]model.Pin{
				pin("Смачна страва", nil),
				pin("Домашня кухня", nil),
				pin("Морський берег", nil),
			})

			Convey("Then scores add up per category", func() {
				So(p["food"], ShouldEqual, 3)  // смачн, страва, кухня
				So(p["nature"], ShouldEqual, 2)
				// "домашн" is an animals stem.
				So(p["animals"], ShouldEqual, 1)
			})
		})

		Convey("When a stem repeats within one pin", func() {
			p := Build([]model.Pin{pin("пляж пляж", strp("пляжний відпочинок"))})

			Convey("Then it still counts once for that pin", func() {
				So(p["travel"], ShouldEqual, 1)
			})
		})

		Convey("When no pin text matches anything", func() {
			p := Build([]model.Pin{pin("Звичайний запис", nil)})

			Convey("Then the profile stays empty, no zero entries", func() {
				So(p, ShouldBeEmpty)
			})
		})
	})
}

func TestTop(t *testing.T) {
	Convey("Given a populated profile", t, func() {
		p := Profile{"nature": 5, "food": 3, "travel": 3, "music": 1}

		Convey("When the top three are requested", func() {
			top := p.Top(3)

			Convey("Then scores order first, then declaration order breaks ties", func() {
				So(top, ShouldResemble, []string{"nature", "food", "travel"})
			})
		})

		Convey("When more are requested than exist", func() {
			So(len(p.Top(10)), ShouldEqual, 4)
		})

		Convey("When n is zero or negative", func() {
			So(p.Top(0), ShouldBeNil)
			So(p.Top(-1), ShouldBeNil)
		})

		Convey("When repeated calls run over the same profile", func() {
			first := p.Top(3)
			for i := 0; i < 10; i++ {
				So(p.Top(3), ShouldResemble, first)
			}
		})
	})

	Convey("Given an empty profile", t, func() {
		So(Profile{}.Top(3), ShouldBeNil)
	})
}
