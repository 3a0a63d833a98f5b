// Package worker defines the view recorder workers that drain the ingestion
// queue and persist views through the content store.
package worker

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/spr311/pinboard/internal/domain/model"
	"github.com/spr311/pinboard/pkg/logger"
	"github.com/spr311/pinboard/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultShutdownTimeout = 5 * time.Second
)

// Event is what workers read off the queue.
type Event = model.ViewEvent

// Recorder persists a view. The repository adapter satisfies this.
type Recorder interface {
	RecordView(ctx context.Context, view model.ViewEvent) error
}

// Queue defines how workers receive events.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Event
}

// Worker processes view events until stopped.
type Worker struct {
	queue    Queue
	recorder Recorder
	name     string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewWorker creates a worker with configuration options.
func NewWorker(queue Queue, recorder Recorder, opts ...Option) *Worker {
	w := &Worker{
		queue:    queue,
		recorder: recorder,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.Get().Named(w.name)
	}
	return w
}

// Run starts the worker loop. It returns when ctx is cancelled, Shutdown is
// called, or the queue closes.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	events := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := w.process(ctx, event); err != nil {
				metrics.RecordWorkerError()
				w.logger.Error(ctx, "failed to record view",
					logger.String("eventID", event.EventID),
					logger.Int64("userID", event.UserID),
					logger.Int64("pinID", event.PinID),
					logger.Error(err),
				)
			}
		}
	}
}

// Shutdown stops the worker and waits for the in-flight event to finish.
func (w *Worker) Shutdown(ctx context.Context) error {
	close(w.shutdown)
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("worker %s shutdown: %w", w.name, ctx.Err())
	}
}

func (w *Worker) process(ctx context.Context, event Event) error {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	if err := w.recorder.RecordView(ctx, event); err != nil {
		metrics.RecordViewRecordError()
		return fmt.Errorf("record view %s: %w", event.EventID, err)
	}
	metrics.RecordViewProcessed()
	return nil
}

// Pool runs a fixed set of workers over a shared queue.
type Pool struct {
	workers []*Worker
	wg      sync.WaitGroup
}

// NewPool creates count workers reading from queue and writing through
// recorder.
func NewPool(count int, queue Queue, recorder Recorder) *Pool {
	if count < 1 {
		count = 1
	}
	p := &Pool{workers: make([]*Worker, count)}
	for i := range p.workers {
		p.workers[i] = NewWorker(queue, recorder, WithName("worker-"+strconv.Itoa(i)))
	}
	return p
}

// Start launches all workers.
func (p *Pool) Start(ctx context.Context) {
	metrics.UpdateWorkerCount(len(p.workers))
	for _, w := range p.workers {
		p.wg.Add(1)
		go func(w *Worker) {
			defer p.wg.Done()
			w.Run(ctx)
		}(w)
	}
}

// Stop shuts down all workers, bounded by the default shutdown timeout.
func (p *Pool) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	for _, w := range p.workers {
		_ = w.Shutdown(ctx)
	}
	p.wg.Wait()
	metrics.UpdateWorkerCount(0)
}
