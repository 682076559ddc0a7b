package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

const defaultBufferSize = 1024

// Recorder writes audit events through a buffered queue so a slow sink never
// holds a request open. When the buffer is full the event is dropped and
// counted; the trail is advisory, request latency is not negotiable.
type Recorder struct {
	sink Sink
	log  *slog.Logger

	ch      chan Event
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
	dropped int64
	mu      sync.Mutex

	storeTimeout time.Duration
}

// RecorderOption customizes a Recorder.
type RecorderOption func(*Recorder)

// WithBufferSize sets the queue capacity.
func WithBufferSize(n int) RecorderOption {
	return func(r *Recorder) {
		if n > 0 {
			r.ch = make(chan Event, n)
		}
	}
}

// WithRecorderLogger sets the logger for drops and sink failures.
func WithRecorderLogger(log *slog.Logger) RecorderOption {
	return func(r *Recorder) {
		if log != nil {
			r.log = log
		}
	}
}

// WithStoreTimeout bounds each sink write.
func WithStoreTimeout(d time.Duration) RecorderOption {
	return func(r *Recorder) {
		if d > 0 {
			r.storeTimeout = d
		}
	}
}

// NewRecorder starts a recorder over the sink. Call Close to flush.
func NewRecorder(sink Sink, opts ...RecorderOption) *Recorder {
	if sink == nil {
		panic("audit: sink cannot be nil")
	}
	r := &Recorder{
		sink:         sink,
		log:          slog.New(slog.DiscardHandler),
		ch:           make(chan Event, defaultBufferSize),
		done:         make(chan struct{}),
		storeTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.wg.Add(1)
	go r.worker()
	return r
}

// Record queues an event. It fills in the id and timestamp and returns
// immediately; the only error is a malformed event.
func (r *Recorder) Record(ctx context.Context, event Event) error {
	event.ID = uuid.New()
	event.CreatedAt = time.Now()
	if err := event.Validate(); err != nil {
		return err
	}

	select {
	case r.ch <- event:
		return nil
	case <-r.done:
		return ErrRecorderClosed
	default:
		r.mu.Lock()
		r.dropped++
		n := r.dropped
		r.mu.Unlock()
		r.log.WarnContext(ctx, "audit buffer full, event dropped",
			slog.String("kind", string(event.Kind)),
			slog.Int64("dropped_total", n),
		)
		return nil
	}
}

// Dropped reports how many events were discarded because the buffer was full.
func (r *Recorder) Dropped() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

// Close stops intake, drains the queue, and waits for the worker. The event
// channel is never closed so a racing Record cannot panic; it observes done
// and returns ErrRecorderClosed instead.
func (r *Recorder) Close() {
	r.once.Do(func() {
		close(r.done)
		r.wg.Wait()
	})
}

func (r *Recorder) worker() {
	defer r.wg.Done()
	for {
		select {
		case event := <-r.ch:
			r.store(event)
		case <-r.done:
			for {
				select {
				case event := <-r.ch:
					r.store(event)
				default:
					return
				}
			}
		}
	}
}

func (r *Recorder) store(event Event) {
	ctx, cancel := context.WithTimeout(context.Background(), r.storeTimeout)
	defer cancel()
	if err := r.sink.Store(ctx, event); err != nil {
		r.log.Error("audit sink write failed",
			slog.String("kind", string(event.Kind)),
			slog.Any("error", err),
		)
	}
}
