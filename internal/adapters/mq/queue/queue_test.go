package queue

import (
	"context"
	"fmt"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestEnqueueDequeue(t *testing.T) {
	Convey("Given an in-memory queue", t, func() {
		q := NewInMemoryQueue(WithCapacity(8))
		ctx := context.Background()

		Convey("When events are enqueued", func() {
			for i := 0; i < 3; i++ {
				So(q.Enqueue(ctx, Event{EventID: fmt.Sprintf("evt-%d", i), UserID: 1, PinID: int64(i)}), ShouldBeTrue)
			}

			Convey("Then the length reflects them", func() {
				So(q.Len(ctx), ShouldEqual, 3)
			})

			Convey("And dequeue yields them in order", func() {
				out := q.Dequeue(ctx)
				for i := 0; i < 3; i++ {
					e := <-out
					So(e.EventID, ShouldEqual, fmt.Sprintf("evt-%d", i))
				}
			})
		})
	})
}

func TestBackpressure(t *testing.T) {
	Convey("Given a queue at capacity", t, func() {
		q := NewInMemoryQueue(WithCapacity(2))
		ctx := context.Background()

		So(q.Enqueue(ctx, Event{EventID: "a"}), ShouldBeTrue)
		So(q.Enqueue(ctx, Event{EventID: "b"}), ShouldBeTrue)

		Convey("When one more event arrives", func() {
			Convey("Then it is rejected instead of blocking", func() {
				So(q.Enqueue(ctx, Event{EventID: "c"}), ShouldBeFalse)
				So(q.Len(ctx), ShouldEqual, 2)
			})
		})

		Convey("When space frees up", func() {
			out := q.Dequeue(ctx)
			<-out

			Convey("Then enqueue succeeds again", func() {
				// The consumer goroutine may still hold one event in flight.
				So(q.Enqueue(ctx, Event{EventID: "c"}), ShouldBeTrue)
			})
		})
	})
}

func TestClose(t *testing.T) {
	Convey("Given a queue holding events", t, func() {
		q := NewInMemoryQueue(WithCapacity(4))
		ctx := context.Background()
		q.Enqueue(ctx, Event{EventID: "a"})
		q.Enqueue(ctx, Event{EventID: "b"})

		Convey("When the queue is closed", func() {
			So(q.Close(), ShouldBeNil)

			Convey("Then it reports closed and rejects new events", func() {
				So(q.IsClosed(), ShouldBeTrue)
				So(q.Enqueue(ctx, Event{EventID: "c"}), ShouldBeFalse)
			})

			Convey("And queued events drain before the channel closes", func() {
				out := q.Dequeue(ctx)
				var drained []string
				for e := range out {
					drained = append(drained, e.EventID)
				}
				So(drained, ShouldResemble, []string{"a", "b"})
			})

			Convey("And closing again is harmless", func() {
				So(q.Close(), ShouldBeNil)
			})
		})
	})
}

func TestDequeueCancellation(t *testing.T) {
	Convey("Given a consumer with a cancellable context and no receiver", t, func() {
		q := NewInMemoryQueue(WithCapacity(4))
		ctx, cancel := context.WithCancel(context.Background())

		q.Enqueue(context.Background(), Event{EventID: "a"})
		out := q.Dequeue(ctx)

		Convey("When the context is cancelled before anyone receives", func() {
			cancel()
			// Give the consumer goroutine time to observe the cancellation.
			time.Sleep(100 * time.Millisecond)

			Convey("Then the consumer channel closes", func() {
				select {
				case _, ok := <-out:
					So(ok, ShouldBeFalse)
				case <-time.After(2 * time.Second):
					t.Fatal("dequeue channel did not close after cancellation")
				}
			})
		})
	})
}
