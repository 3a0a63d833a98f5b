package lexicon

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCategories(t *testing.T) {
	Convey("Given the category table", t, func() {
		categories := Categories()

		Convey("Then all twelve categories appear in declaration order", func() {
			So(categories, ShouldResemble, []string{
				"nature", "food", "travel", "fashion", "art", "architecture",
				"animals", "sport", "technology", "design", "beauty", "music",
			})
		})

		Convey("And every category has keyword stems", func() {
			for _, c := range categories {
				So(len(Keywords(c)), ShouldBeGreaterThan, 0)
			}
		})
	})
}

func TestKeywords(t *testing.T) {
	Convey("Given a known category", t, func() {
		kws := Keywords("nature")

		Convey("Then its stems are returned", func() {
			So(kws, ShouldContain, "пейзаж")
			So(kws, ShouldContain, "морськ")
		})

		Convey("And mutating the copy does not touch the table", func() {
			kws[0] = "mutated"
			So(Keywords("nature")[0], ShouldEqual, "пейзаж")
		})
	})

	Convey("Given an unknown category", t, func() {
		So(Keywords("gardening"), ShouldBeNil)
	})
}

func TestOrder(t *testing.T) {
	Convey("Given declaration order lookups", t, func() {
		So(Order("nature"), ShouldEqual, 0)
		So(Order("music"), ShouldEqual, 11)

		Convey("Then unknown categories sort last", func() {
			So(Order("gardening"), ShouldEqual, 12)
		})
	})
}

func TestMatchCount(t *testing.T) {
	Convey("Given normalized pin text", t, func() {
		Convey("Then stems match by substring containment", func() {
			text := Normalize("Гірські вершини та морський берег")
			// гір, морськ, берег
			So(MatchCount(text, "nature"), ShouldEqual, 3)
		})

		Convey("And a stem counts once no matter how often it repeats", func() {
			text := Normalize("пляж пляж пляж")
			So(MatchCount(text, "travel"), ShouldEqual, 1)
		})

		Convey("And matching is case-insensitive through Normalize", func() {
			So(MatchCount(Normalize("ПОДОРОЖ ДО МРІЇ"), "travel"), ShouldEqual, 1)
		})

		Convey("And text can hit several categories at once", func() {
			// "природа" is a stem of both nature and animals.
			text := Normalize("дика природа")
			So(MatchCount(text, "nature"), ShouldEqual, 1)
			So(MatchCount(text, "animals"), ShouldEqual, 1)
		})

		Convey("And unrelated text matches nothing", func() {
			text := Normalize("просто запис без тем")
			for _, c := range Categories() {
				So(MatchCount(text, c), ShouldEqual, 0)
			}
		})

		Convey("And an unknown category matches nothing", func() {
			So(MatchCount(Normalize("пейзаж"), "gardening"), ShouldEqual, 0)
		})
	})
}
