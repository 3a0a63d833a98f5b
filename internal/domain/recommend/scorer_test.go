package recommend

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/spr311/pinboard/internal/domain/model"
	"github.com/spr311/pinboard/internal/domain/profile"
)

func titled(id int64, title string) model.Pin {
	return model.Pin{ID: id, Title: title}
}

func TestRank(t *testing.T) {
	Convey("Given a scorer and a nature-heavy profile", t, func() {
		scorer := NewScorer()
		prof := profile.Profile{"nature": 5, "food": 2}

		Convey("When candidates vary in relevance", func() {
			candidates := []model.Pin{
				titled(1, "Звичайний запис"),            // no matches
				titled(2, "Смачний десерт"),             // food: 2 stems x 2
				titled(3, "Гірське озеро серед лісу"),   // nature: 3 stems x 5
				titled(4, "Морський берег"),             // nature: 2 stems x 5
			}

			ranked := scorer.Rank(candidates, prof, 10)

			Convey("Then scores order descending and zero scores drop", func() {
				So(len(ranked), ShouldEqual, 3)
				So(ranked[0].Pin.ID, ShouldEqual, 3)
				So(ranked[0].Score, ShouldEqual, 15)
				So(ranked[1].Pin.ID, ShouldEqual, 4)
				So(ranked[1].Score, ShouldEqual, 10)
				So(ranked[2].Pin.ID, ShouldEqual, 2)
				So(ranked[2].Score, ShouldEqual, 4)
			})

			Convey("And scores never increase along the result", func() {
				for i := 1; i < len(ranked); i++ {
					So(ranked[i].Score, ShouldBeLessThanOrEqualTo, ranked[i-1].Score)
				}
			})

			Convey("And count truncates the tail", func() {
				So(len(scorer.Rank(candidates, prof, 2)), ShouldEqual, 2)
				So(scorer.Rank(candidates, prof, 2)[0].Pin.ID, ShouldEqual, 3)
			})
		})

		Convey("When candidates tie on score", func() {
			candidates := []model.Pin{
				titled(10, "Морський берег"),
				titled(11, "Озеро в лісі"),
			}

			ranked := scorer.Rank(candidates, prof, 10)

			Convey("Then the pool's original order is kept", func() {
				So(len(ranked), ShouldEqual, 2)
				So(ranked[0].Score, ShouldEqual, ranked[1].Score)
				So(ranked[0].Pin.ID, ShouldEqual, 10)
				So(ranked[1].Pin.ID, ShouldEqual, 11)
			})
		})

		Convey("When inputs are empty or count is zero", func() {
			candidates := []model.Pin{titled(1, "Морський берег")}

			So(scorer.Rank(nil, prof, 10), ShouldBeNil)
			So(scorer.Rank(candidates, profile.Profile{}, 10), ShouldBeNil)
			So(scorer.Rank(candidates, prof, 0), ShouldBeNil)
		})

		Convey("When ranking runs twice over the same inputs", func() {
			candidates := []model.Pin{
				titled(1, "Морський берег"),
				titled(2, "Гірська долина"),
				titled(3, "Смачний обід"),
			}

			first := scorer.Rank(candidates, prof, 10)
			second := scorer.Rank(candidates, prof, 10)

			Convey("Then the results agree", func() {
				So(second, ShouldResemble, first)
			})
		})
	})

	Convey("Given a profile wider than the category window", t, func() {
		prof := profile.Profile{"nature": 5, "food": 4, "travel": 3, "music": 2}

		Convey("When only the top category participates", func() {
			scorer := NewScorer(WithTopCategoryCount(1))
			candidates := []model.Pin{
				titled(1, "Смачний обід"), // food only
				titled(2, "Пляжний відпочинок"), // travel only
				titled(3, "Морський берег"), // nature
			}

			ranked := scorer.Rank(candidates, prof, 10)

			Convey("Then pins outside that category score nothing", func() {
				So(len(ranked), ShouldEqual, 1)
				So(ranked[0].Pin.ID, ShouldEqual, 3)
			})
		})

		Convey("When the default window of three applies", func() {
			scorer := NewScorer()
			candidates := []model.Pin{
				titled(4, "Музичний момент"), // music, outside top three
			}

			So(scorer.Rank(candidates, prof, 10), ShouldBeEmpty)
		})
	})
}
