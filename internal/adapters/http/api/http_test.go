package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/spr311/pinboard/internal/adapters/repository"
	"github.com/spr311/pinboard/internal/domain/model"
	"github.com/spr311/pinboard/internal/domain/types"
)

// mockDeps implements Dependencies and StatsProvider for handler tests.
type mockDeps struct {
	seen        map[string]bool
	enqueued    []model.ViewEvent
	enqueueOK   bool
	recommended []types.RecommendedPin
	feed        types.NotificationFeed
	feedErr     error
	unread      int
	markReadErr error
	markedAll   int64

	lastFeedPage     int
	lastFeedPageSize int
	lastRecCount     int
}

func newMockDeps() *mockDeps {
	return &mockDeps{seen: make(map[string]bool), enqueueOK: true}
}

func (m *mockDeps) SeenAndRecord(_ context.Context, id string) bool {
	if m.seen[id] {
		return true
	}
	m.seen[id] = true
	return false
}

func (m *mockDeps) Unrecord(_ context.Context, id string) {
	delete(m.seen, id)
}

func (m *mockDeps) EnqueueView(_ context.Context, e model.ViewEvent) bool {
	if !m.enqueueOK {
		return false
	}
	m.enqueued = append(m.enqueued, e)
	return true
}

func (m *mockDeps) Recommend(_ context.Context, userID int64, count int) ([]types.RecommendedPin, error) {
	m.lastRecCount = count
	return m.recommended, nil
}

func (m *mockDeps) NotificationsFeed(_ context.Context, _ int64, page, pageSize int) (types.NotificationFeed, error) {
	m.lastFeedPage = page
	m.lastFeedPageSize = pageSize
	return m.feed, m.feedErr
}

func (m *mockDeps) UnreadCount(_ context.Context, _ int64) (int, error) {
	return m.unread, nil
}

func (m *mockDeps) MarkRead(_ context.Context, _, _ int64) error {
	return m.markReadErr
}

func (m *mockDeps) MarkAllRead(_ context.Context, _ int64) (int64, error) {
	return m.markedAll, nil
}

func (m *mockDeps) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true}
}

func newTestServer(deps *mockDeps) *http.ServeMux {
	mux := http.NewServeMux()
	srv := NewServer(deps, deps, ServerConfig{
		DefaultRecommendCount: 5,
		MaxRecommendCount:     10,
		DefaultPageSize:       20,
		MaxPageSize:           100,
	})
	srv.Register(context.Background(), mux)
	return mux
}

func doRequest(mux *http.ServeMux, method, target, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestPostView(t *testing.T) {
	Convey("Given the views endpoint", t, func() {
		deps := newMockDeps()
		mux := newTestServer(deps)

		Convey("When a valid view is posted", func() {
			rec := doRequest(mux, http.MethodPost, "/views",
				`{"event_id":"evt-1","user_id":1,"pin_id":2,"ts":"2026-08-28T10:00:00Z"}`)

			Convey("Then it is accepted and enqueued", func() {
				So(rec.Code, ShouldEqual, http.StatusAccepted)
				So(len(deps.enqueued), ShouldEqual, 1)
				So(deps.enqueued[0].EventID, ShouldEqual, "evt-1")
				So(deps.enqueued[0].UserID, ShouldEqual, 1)
				So(rec.Header().Get("X-Request-ID"), ShouldNotBeEmpty)
			})

			Convey("And posting the same event id again is a duplicate", func() {
				rec2 := doRequest(mux, http.MethodPost, "/views",
					`{"event_id":"evt-1","user_id":1,"pin_id":2}`)
				So(rec2.Code, ShouldEqual, http.StatusOK)

				var ack ackResponse
				So(json.Unmarshal(rec2.Body.Bytes(), &ack), ShouldBeNil)
				So(ack.Duplicate, ShouldBeTrue)
				So(len(deps.enqueued), ShouldEqual, 1)
			})
		})

		Convey("When the event id is omitted", func() {
			rec := doRequest(mux, http.MethodPost, "/views", `{"user_id":3,"pin_id":4}`)

			Convey("Then the user/pin pair becomes the idempotency key", func() {
				So(rec.Code, ShouldEqual, http.StatusAccepted)
				So(deps.enqueued[0].EventID, ShouldEqual, "3:4")

				rec2 := doRequest(mux, http.MethodPost, "/views", `{"user_id":3,"pin_id":4}`)
				So(rec2.Code, ShouldEqual, http.StatusOK)
			})
		})

		Convey("When the payload is invalid", func() {
			for _, body := range []string{
				`not json`,
				`{"user_id":0,"pin_id":1}`,
				`{"user_id":1,"pin_id":0}`,
				`{"user_id":1,"pin_id":2,"ts":"yesterday"}`,
			} {
				rec := doRequest(mux, http.MethodPost, "/views", body)
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			}
		})

		Convey("When the queue rejects the event", func() {
			deps.enqueueOK = false
			rec := doRequest(mux, http.MethodPost, "/views", `{"event_id":"evt-9","user_id":1,"pin_id":2}`)

			Convey("Then the client gets backpressure and may retry", func() {
				So(rec.Code, ShouldEqual, http.StatusTooManyRequests)
				So(deps.seen["evt-9"], ShouldBeFalse)
			})
		})

		Convey("When the method is wrong", func() {
			rec := doRequest(mux, http.MethodGet, "/views", "")
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestGetRecommendations(t *testing.T) {
	Convey("Given the recommendations endpoint", t, func() {
		deps := newMockDeps()
		deps.recommended = []types.RecommendedPin{{ID: 2, Title: "Гірське озеро", Score: 6}}
		mux := newTestServer(deps)

		Convey("When recommendations are requested", func() {
			rec := doRequest(mux, http.MethodGet, "/recommendations?user_id=1&count=4", "")

			Convey("Then scored pins come back", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(deps.lastRecCount, ShouldEqual, 4)

				var pins []types.RecommendedPin
				So(json.Unmarshal(rec.Body.Bytes(), &pins), ShouldBeNil)
				So(len(pins), ShouldEqual, 1)
				So(pins[0].Score, ShouldEqual, 6)
			})
		})

		Convey("When count exceeds the cap", func() {
			rec := doRequest(mux, http.MethodGet, "/recommendations?user_id=1&count=500", "")

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(deps.lastRecCount, ShouldEqual, 10)
		})

		Convey("When count is omitted the configured default applies", func() {
			rec := doRequest(mux, http.MethodGet, "/recommendations?user_id=1", "")

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(deps.lastRecCount, ShouldEqual, 5)
		})

		Convey("When there is nothing to recommend", func() {
			deps.recommended = nil
			rec := doRequest(mux, http.MethodGet, "/recommendations?user_id=1", "")

			Convey("Then the body is an empty array, not null", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(strings.TrimSpace(rec.Body.String()), ShouldEqual, "[]")
			})
		})

		Convey("When user_id is missing or invalid", func() {
			for _, target := range []string{
				"/recommendations",
				"/recommendations?user_id=0",
				"/recommendations?user_id=abc",
				"/recommendations?user_id=1&count=-1",
			} {
				rec := doRequest(mux, http.MethodGet, target, "")
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			}
		})
	})
}

func TestNotificationsEndpoints(t *testing.T) {
	Convey("Given the notifications endpoints", t, func() {
		deps := newMockDeps()
		deps.feed = types.NotificationFeed{
			Notifications: []types.NotificationView{{ID: 1, Message: "olena вподобав ваш пін"}},
			TotalCount:    1,
			Page:          1,
			PageSize:      20,
			TotalPages:    1,
		}
		deps.unread = 3
		deps.markedAll = 2
		mux := newTestServer(deps)

		Convey("When the feed is requested with defaults", func() {
			rec := doRequest(mux, http.MethodGet, "/notifications?user_id=1", "")

			Convey("Then page and size default and the feed renders", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(deps.lastFeedPage, ShouldEqual, 1)
				So(deps.lastFeedPageSize, ShouldEqual, 20)

				var feed types.NotificationFeed
				So(json.Unmarshal(rec.Body.Bytes(), &feed), ShouldBeNil)
				So(feed.TotalCount, ShouldEqual, 1)
			})
		})

		Convey("When paging parameters are clamped", func() {
			doRequest(mux, http.MethodGet, "/notifications?user_id=1&page=-5&page_size=500", "")
			So(deps.lastFeedPage, ShouldEqual, 1)
			So(deps.lastFeedPageSize, ShouldEqual, 100)

			doRequest(mux, http.MethodGet, "/notifications?user_id=1&page=3&page_size=0", "")
			So(deps.lastFeedPage, ShouldEqual, 3)
			So(deps.lastFeedPageSize, ShouldEqual, 20)
		})

		Convey("When the unread count is requested", func() {
			rec := doRequest(mux, http.MethodGet, "/notifications/unread-count?user_id=1", "")

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, `"unread_count":3`)
		})

		Convey("When one notification is marked read", func() {
			rec := doRequest(mux, http.MethodPut, "/notifications/7/read?user_id=1", "")
			So(rec.Code, ShouldEqual, http.StatusOK)

			Convey("And a missing one yields 404", func() {
				deps.markReadErr = repository.ErrNotFound
				rec2 := doRequest(mux, http.MethodPut, "/notifications/8/read?user_id=1", "")
				So(rec2.Code, ShouldEqual, http.StatusNotFound)
			})

			Convey("And a bad id yields 400", func() {
				rec2 := doRequest(mux, http.MethodPut, "/notifications/abc/read?user_id=1", "")
				So(rec2.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When all notifications are marked read", func() {
			rec := doRequest(mux, http.MethodPut, "/notifications/read-all?user_id=1", "")

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, `"updated":2`)
		})

		Convey("When methods do not match the routes", func() {
			So(doRequest(mux, http.MethodPut, "/notifications?user_id=1", "").Code, ShouldEqual, http.StatusNotFound)
			So(doRequest(mux, http.MethodPut, "/notifications/unread-count?user_id=1", "").Code, ShouldEqual, http.StatusNotFound)
			So(doRequest(mux, http.MethodGet, "/notifications/read-all?user_id=1", "").Code, ShouldEqual, http.StatusNotFound)
			So(doRequest(mux, http.MethodGet, "/notifications/7/read?user_id=1", "").Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestStatsAndHealth(t *testing.T) {
	Convey("Given the operational endpoints", t, func() {
		deps := newMockDeps()
		mux := newTestServer(deps)

		Convey("When stats are requested", func() {
			rec := doRequest(mux, http.MethodGet, "/stats", "")

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, `"started":true`)
		})

		Convey("When health is scraped", func() {
			rec := doRequest(mux, http.MethodGet, "/healthz", "")

			So(rec.Code, ShouldEqual, http.StatusOK)
		})
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	Convey("Given a request carrying its own correlation id", t, func() {
		deps := newMockDeps()
		mux := newTestServer(deps)

		req := httptest.NewRequest(http.MethodGet, "/recommendations?user_id=1", nil)
		req.Header.Set("X-Request-ID", "trace-42")
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		Convey("Then the id is echoed back unchanged", func() {
			So(rec.Header().Get("X-Request-ID"), ShouldEqual, "trace-42")
		})
	})
}
