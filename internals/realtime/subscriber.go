// file: internals/realtime/subscriber.go
package realtime

import (
	"context"
	"log"
	"sync"
	"time"
)

// OpenFn opens one subscription attempt. The returned channel closes when
// the subscription drops; the func tears it down.
type OpenFn func(ctx context.Context) (<-chan Event, func(), error)

// FetchFn reloads the caller's mirror of the table.
type FetchFn func(ctx context.Context) error

type Options struct {
	// Refetch requests inside this window coalesce into one fetch.
	Debounce time.Duration
	// First reconnect delay; doubles each attempt.
	BaseRetryDelay time.Duration
	// Cap for the doubling.
	MaxRetryDelay time.Duration
	// Attempts before giving up until the health check resets them.
	MaxRetries int
	// Period of the health check that revives an exhausted subscriber.
	HealthCheckEvery time.Duration
}

func (o *Options) withDefaults() {
	if o.Debounce <= 0 {
		o.Debounce = 200 * time.Millisecond
	}
	if o.BaseRetryDelay <= 0 {
		o.BaseRetryDelay = 1 * time.Second
	}
	if o.MaxRetryDelay <= 0 {
		o.MaxRetryDelay = 30 * time.Second
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = 5
	}
	if o.HealthCheckEvery <= 0 {
		o.HealthCheckEvery = 30 * time.Second
	}
}

// Subscriber keeps a table mirror fresh: immediate fetch on start, then a
// debounced refetch per change event, with backoff reconnects and a
// periodic health check when retries run out.
type Subscriber struct {
	table string
	open  OpenFn
	fetch FetchFn
	match func(Event) bool
	opt   Options

	mu        sync.Mutex
	alive     bool
	connected bool
	attempts  int
	pending   bool

	retryKick chan struct{}
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// NewSubscriber builds a subscriber for one table. match is an optional
// equality predicate; nil means every event triggers a refetch.
func NewSubscriber(table string, open OpenFn, fetch FetchFn, match func(Event) bool, opt Options) *Subscriber {
	opt.withDefaults()
	return &Subscriber{
		table:     table,
		open:      open,
		fetch:     fetch,
		match:     match,
		opt:       opt,
		retryKick: make(chan struct{}, 1),
	}
}

// Start performs the initial fetch (bypassing the debounce) and launches
// the subscription and health-check loops.
func (s *Subscriber) Start(parent context.Context) {
	ctx, cancel := context.WithCancel(parent)

	s.mu.Lock()
	s.alive = true
	s.cancel = cancel
	s.mu.Unlock()

	if err := s.fetch(ctx); err != nil {
		log.Printf("[WARN] initial fetch %s: %v", s.table, err)
	}

	s.wg.Add(2)
	go s.run(ctx)
	go s.healthLoop(ctx)
}

// Stop tears down the subscription. The liveness flag stops any fetch
// still queued behind the debounce timer.
func (s *Subscriber) Stop() {
	s.mu.Lock()
	s.alive = false
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
}

// Connected reports whether a subscription is currently open.
func (s *Subscriber) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

func (s *Subscriber) run(ctx context.Context) {
	defer s.wg.Done()

	for {
		if ctx.Err() != nil {
			return
		}

		ch, teardown, err := s.open(ctx)
		if err != nil {
			s.setConnected(false)
			if !s.backoffWait(ctx) {
				// retries exhausted, wait for the health check (or Stop)
				select {
				case <-ctx.Done():
					return
				case <-s.retryKick:
				}
			}
			continue
		}

		s.setConnected(true)
		s.resetAttempts()

		for ev := range ch {
			if s.match == nil || s.match(ev) {
				s.requestFetch(ctx)
			}
		}
		teardown()
		s.setConnected(false)
		// channel closed: subscription dropped, reconnect with backoff
	}
}

// backoffWait sleeps base*2^(attempt-1) capped at MaxRetryDelay. Returns
// false once MaxRetries attempts are spent.
func (s *Subscriber) backoffWait(ctx context.Context) bool {
	s.mu.Lock()
	s.attempts++
	attempt := s.attempts
	s.mu.Unlock()

	if attempt > s.opt.MaxRetries {
		log.Printf("[WARN] %s subscription: gave up after %d attempts", s.table, s.opt.MaxRetries)
		return false
	}

	delay := s.opt.BaseRetryDelay << (attempt - 1)
	if delay > s.opt.MaxRetryDelay {
		delay = s.opt.MaxRetryDelay
	}

	select {
	case <-ctx.Done():
		return false
	case <-time.After(delay):
		return true
	}
}

func (s *Subscriber) healthLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.opt.HealthCheckEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			down := !s.connected && s.attempts > s.opt.MaxRetries
			if down {
				s.attempts = 0
			}
			s.mu.Unlock()
			if down {
				select {
				case s.retryKick <- struct{}{}:
				default:
				}
			}
		}
	}
}

// requestFetch coalesces bursts: the first request arms a timer, requests
// landing inside the window ride along with it.
func (s *Subscriber) requestFetch(ctx context.Context) {
	s.mu.Lock()
	if !s.alive || s.pending {
		s.mu.Unlock()
		return
	}
	s.pending = true
	s.mu.Unlock()

	time.AfterFunc(s.opt.Debounce, func() {
		s.mu.Lock()
		s.pending = false
		alive := s.alive
		s.mu.Unlock()

		if !alive || ctx.Err() != nil {
			return
		}
		if err := s.fetch(ctx); err != nil {
			log.Printf("[WARN] refetch %s: %v", s.table, err)
		}
	})
}

func (s *Subscriber) setConnected(v bool) {
	s.mu.Lock()
	s.connected = v
	s.mu.Unlock()
}

func (s *Subscriber) resetAttempts() {
	s.mu.Lock()
	s.attempts = 0
	s.mu.Unlock()
}
