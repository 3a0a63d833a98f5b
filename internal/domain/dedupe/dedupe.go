// Package dedupe provides idempotency tracking for view events.
//
// A user refreshing a pin page fires the same view repeatedly; recording it
// once is enough for profile building, so the ingestion path drops repeats
// before they reach the queue.
package dedupe

import (
	"context"
	"sync"
)

// Deduper records seen view-event IDs to ensure at-most-once recording.
type Deduper interface {
	// SeenAndRecord atomically checks whether id was seen and records it if
	// not. Returns true if id was already seen, false if newly recorded.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord removes an ID from the seen set. Used to roll back when an
	// event was marked seen but could not be enqueued.
	Unrecord(ctx context.Context, id string)

	// Size returns the number of tracked IDs.
	Size() int64
}

// defaultMaxSize bounds the cache when no option is given.
const defaultMaxSize = 50000

// inMemoryDeduper implements Deduper with a bounded map plus a FIFO ring of
// insertion order. When the bound is reached the oldest entry is evicted.
// maxSize <= 0 disables eviction.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	order   []string // insertion order ring
	head    int      // next slot to overwrite once the ring is full
	maxSize int
}

// NewInMemoryDeduper creates a deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		maxSize: defaultMaxSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]struct{})
	if d.maxSize > 0 {
		d.order = make([]string, 0, d.maxSize)
	}
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return true
	}

	if d.maxSize <= 0 {
		d.seen[id] = struct{}{}
		return false
	}

	if len(d.order) < d.maxSize {
		d.order = append(d.order, id)
	} else {
		// Full: evict the oldest slot and reuse it.
		if old := d.order[d.head]; old != "" {
			delete(d.seen, old)
		}
		d.order[d.head] = id
		d.head = (d.head + 1) % d.maxSize
	}
	d.seen[id] = struct{}{}
	return false
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; !ok {
		return
	}
	delete(d.seen, id)
	// Blank the ring slot; evicting a blank slot later is a no-op.
	for i, v := range d.order {
		if v == id {
			d.order[i] = ""
			break
		}
	}
}

func (d *inMemoryDeduper) Size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(len(d.seen))
}
