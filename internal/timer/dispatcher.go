// Package timer implements the one-shot timer dispatcher. Due callbacks
// are not run on the dispatcher goroutine; they are delivered on a
// channel so the event loop that owns the view runs them.
package timer

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hammamikhairi/ottocart/internal/domain"
	"github.com/hammamikhairi/ottocart/internal/logger"
)

// Compile-time interface check.
var _ domain.Scheduler = (*Dispatcher)(nil)

// deliveryBuffer is the capacity of the channel due callbacks wait on.
const deliveryBuffer = 16

// Option configures the dispatcher.
type Option func(*Dispatcher)

// WithTickInterval sets how often the dispatcher checks for due timers.
func WithTickInterval(d time.Duration) Option {
	return func(s *Dispatcher) {
		s.tickInterval = d
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Dispatcher) {
		s.now = now
	}
}

type pending struct {
	due time.Time
	seq uint64
	fn  func()
}

// Dispatcher schedules one-shot callbacks.
type Dispatcher struct {
	log          *logger.Logger
	tickInterval time.Duration
	now          func() time.Time

	out chan func()

	mu      sync.Mutex
	queue   []pending
	seq     uint64
	running bool
	cancel  context.CancelFunc
}

// New creates a dispatcher with the given options.
func New(log *logger.Logger, opts ...Option) *Dispatcher {
	s := &Dispatcher{
		log:          log,
		tickInterval: 50 * time.Millisecond,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.out = make(chan func(), deliveryBuffer)
	return s
}

// C delivers due callbacks. The receiver must call each one.
func (s *Dispatcher) C() <-chan func() { return s.out }

// AfterFunc schedules fn to be delivered once d has elapsed.
func (s *Dispatcher) AfterFunc(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.queue = append(s.queue, pending{due: s.now().Add(d), seq: s.seq, fn: fn})
	s.log.Debug("scheduled #%d in %s", s.seq, d)
}

// Pending returns how many callbacks have not been delivered yet.
func (s *Dispatcher) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Start begins the background loop. Non-blocking.
func (s *Dispatcher) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.log.Warn("timer dispatcher already running")
		return
	}

	childCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true

	go s.loop(childCtx)

	s.log.Debug("timer dispatcher started (tick=%s)", s.tickInterval)
}

// Stop shuts down the loop. Undelivered callbacks are dropped.
func (s *Dispatcher) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.cancel()
	s.running = false
	if n := len(s.queue); n > 0 {
		s.log.Debug("timer dispatcher stopped, dropping %d pending", n)
	}
	s.queue = nil
}

func (s *Dispatcher) loop(ctx context.Context) {
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, fn := range s.due() {
				select {
				case s.out <- fn:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

// due pops every callback whose deadline has passed, in deadline order.
func (s *Dispatcher) due() []func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var ready []pending
	rest := s.queue[:0]
	for _, p := range s.queue {
		if !p.due.After(now) {
			ready = append(ready, p)
		} else {
			rest = append(rest, p)
		}
	}
	s.queue = rest

	sort.Slice(ready, func(i, j int) bool {
		if ready[i].due.Equal(ready[j].due) {
			return ready[i].seq < ready[j].seq
		}
		return ready[i].due.Before(ready[j].due)
	})
	fns := make([]func(), len(ready))
	for i, p := range ready {
		fns[i] = p.fn
	}
	return fns
}
