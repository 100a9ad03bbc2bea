// Package changefeed is the in-process change notification bus.
//
// Stores publish an Event after every successful write. One consumer
// loop owns dispatch: subscribers (the dashboard websocket, tests)
// receive every entity's changes over a single multiplexed
// subscription instead of one channel per collection. Publishing never
// blocks a request handler — when the buffer is full the event is
// dropped and counted, because a stalled dashboard must not stall a
// content save.
package changefeed

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Op is the kind of change an Event describes.
type Op string

const (
	OpCreated Op = "created"
	OpUpdated Op = "updated"
	OpDeleted Op = "deleted"
)

// Event describes one change to one record.
type Event struct {
	Entity string    `json:"entity"` // collection name, e.g. "projects"
	Op     Op        `json:"op"`
	ID     string    `json:"id"`
	Slug   string    `json:"slug,omitempty"`
	At     time.Time `json:"at"`
}

// Subscription is one consumer's view of the feed.
type Subscription struct {
	C      <-chan Event
	ch     chan Event
	cancel func()
	once   sync.Once
}

// Cancel detaches the subscription. Safe to call more than once.
func (s *Subscription) Cancel() {
	s.once.Do(s.cancel)
}

// Feed is the broker. A single goroutine consumes the inbound queue
// and fans events out to subscribers.
type Feed struct {
	in    chan Event
	sub   chan chan Event
	unsub chan chan Event
	quit  chan struct{}
	done  chan struct{}

	mu      sync.Mutex
	stopped bool
	dropped int64

	log *zap.Logger
}

// New builds a Feed and starts its consumer loop.
func New(buffer int, logger *zap.Logger) *Feed {
	if buffer <= 0 {
		buffer = 256
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &Feed{
		in:    make(chan Event, buffer),
		sub:   make(chan chan Event),
		unsub: make(chan chan Event),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
		log:   logger,
	}
	go f.loop()
	return f
}

func (f *Feed) loop() {
	defer close(f.done)
	subscribers := map[chan Event]struct{}{}

	for {
		select {
		case ev := <-f.in:
			for ch := range subscribers {
				select {
				case ch <- ev:
				default:
					// Slow subscriber: skip it for this event.
				}
			}
		case ch := <-f.sub:
			subscribers[ch] = struct{}{}
		case ch := <-f.unsub:
			delete(subscribers, ch)
			close(ch)
		case <-f.quit:
			for ch := range subscribers {
				close(ch)
			}
			return
		}
	}
}

// Publish queues an event for dispatch. It never blocks; on a full
// buffer the event is dropped and the drop is logged.
// Publish on a nil Feed is a no-op so handlers can run without a feed
// in tests.
func (f *Feed) Publish(ev Event) {
	if f == nil {
		return
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	select {
	case f.in <- ev:
	default:
		f.mu.Lock()
		f.dropped++
		n := f.dropped
		f.mu.Unlock()
		f.log.Warn("change feed buffer full, event dropped",
			zap.String("entity", ev.Entity),
			zap.String("op", string(ev.Op)),
			zap.Int64("dropped_total", n))
	}
}

// Subscribe attaches a new consumer. Events published after this call
// are delivered on the returned subscription's channel until Cancel.
func (f *Feed) Subscribe() *Subscription {
	ch := make(chan Event, 32)
	select {
	case f.sub <- ch:
	case <-f.done:
		close(ch)
		return &Subscription{C: ch, ch: ch, cancel: func() {}}
	}
	return &Subscription{
		C:  ch,
		ch: ch,
		cancel: func() {
			select {
			case f.unsub <- ch:
			case <-f.done:
			}
		},
	}
}

// Dropped returns how many events were discarded due to a full buffer.
func (f *Feed) Dropped() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dropped
}

// Close stops the consumer loop and closes subscriber channels.
func (f *Feed) Close() {
	f.mu.Lock()
	if f.stopped {
		f.mu.Unlock()
		return
	}
	f.stopped = true
	f.mu.Unlock()
	close(f.quit)
	<-f.done
}

/* ------------------------- process-wide default ------------------------- */

var (
	defaultMu   sync.Mutex
	defaultFeed *Feed
)

// Init creates the process-wide feed. Called once from bootstrap.
func Init(buffer int, logger *zap.Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultFeed != nil {
		defaultFeed.Close()
	}
	defaultFeed = New(buffer, logger)
}

// Default returns the process-wide feed, creating a quiet one if Init
// was never called (tests).
func Default() *Feed {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultFeed == nil {
		defaultFeed = New(0, nil)
	}
	return defaultFeed
}

// Stop closes the process-wide feed. Called from shutdown.
func Stop() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultFeed != nil {
		defaultFeed.Close()
		defaultFeed = nil
	}
}
