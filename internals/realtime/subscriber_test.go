package realtime

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pump mirrors events into a fresh channel that closes when ctx ends,
// the same contract the redis opener gives the subscriber.
func pump(ctx context.Context, events <-chan Event) <-chan Event {
	out := make(chan Event)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

func fakeSource() (OpenFn, chan Event) {
	events := make(chan Event)
	open := func(ctx context.Context) (<-chan Event, func(), error) {
		return pump(ctx, events), func() {}, nil
	}
	return open, events
}

func countingFetch(n *int64) FetchFn {
	return func(ctx context.Context) error {
		atomic.AddInt64(n, 1)
		return nil
	}
}

func TestSubscriberFetchesOnceOnStart(t *testing.T) {
	open, _ := fakeSource()
	var fetches int64

	s := NewSubscriber("sports", open, countingFetch(&fetches), nil, Options{
		Debounce: 10 * time.Millisecond,
	})
	s.Start(context.Background())
	defer s.Stop()

	require.Eventually(t, s.Connected, time.Second, 5*time.Millisecond)
	assert.Equal(t, int64(1), atomic.LoadInt64(&fetches))
}

func TestSubscriberDebouncesBursts(t *testing.T) {
	open, events := fakeSource()
	var fetches int64

	s := NewSubscriber("bookings", open, countingFetch(&fetches), nil, Options{
		Debounce: 50 * time.Millisecond,
	})
	s.Start(context.Background())
	defer s.Stop()

	require.Eventually(t, s.Connected, time.Second, 5*time.Millisecond)

	// a burst of changes inside one debounce window
	for i := 0; i < 10; i++ {
		events <- Event{Table: "bookings", Action: ActionInsert}
	}

	// 1 initial + exactly 1 coalesced refetch
	require.Eventually(t, func() bool {
		return atomic.LoadInt64(&fetches) == 2
	}, time.Second, 10*time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int64(2), atomic.LoadInt64(&fetches))
}

func TestSubscriberIgnoresOtherTables(t *testing.T) {
	open, events := fakeSource()
	var fetches int64

	match := func(ev Event) bool { return ev.Table == "slots" }
	s := NewSubscriber("slots", open, countingFetch(&fetches), match, Options{
		Debounce: 10 * time.Millisecond,
	})
	s.Start(context.Background())
	defer s.Stop()

	require.Eventually(t, s.Connected, time.Second, 5*time.Millisecond)

	events <- Event{Table: "sports", Action: ActionUpdate}
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, int64(1), atomic.LoadInt64(&fetches), "only the initial fetch")
}

func TestSubscriberStopsRetryingAfterMaxAttempts(t *testing.T) {
	var opens int64
	open := func(ctx context.Context) (<-chan Event, func(), error) {
		atomic.AddInt64(&opens, 1)
		return nil, nil, errors.New("connection refused")
	}

	s := NewSubscriber("sports", open, countingFetch(new(int64)), nil, Options{
		Debounce:         time.Millisecond,
		BaseRetryDelay:   time.Millisecond,
		MaxRetryDelay:    4 * time.Millisecond,
		MaxRetries:       3,
		HealthCheckEvery: time.Hour, // never revives during the test
	})
	s.Start(context.Background())
	defer s.Stop()

	require.Eventually(t, func() bool {
		return atomic.LoadInt64(&opens) >= 4 // first try + 3 retries
	}, time.Second, 5*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int64(4), atomic.LoadInt64(&opens), "no attempts past the cap")
	assert.False(t, s.Connected())
}

func TestSubscriberHealthCheckRevivesExhaustedRetries(t *testing.T) {
	var opens int64
	fail := int64(4) // first try + 3 retries all fail, then recover
	events := make(chan Event)
	open := func(ctx context.Context) (<-chan Event, func(), error) {
		if atomic.AddInt64(&opens, 1) <= fail {
			return nil, nil, errors.New("connection refused")
		}
		return pump(ctx, events), func() {}, nil
	}

	s := NewSubscriber("sports", open, countingFetch(new(int64)), nil, Options{
		Debounce:         time.Millisecond,
		BaseRetryDelay:   time.Millisecond,
		MaxRetryDelay:    4 * time.Millisecond,
		MaxRetries:       3,
		HealthCheckEvery: 20 * time.Millisecond,
	})
	s.Start(context.Background())
	defer s.Stop()

	require.Eventually(t, s.Connected, 2*time.Second, 10*time.Millisecond,
		"health check should reset attempts and reconnect")
}

func TestSubscriberNoFetchAfterStop(t *testing.T) {
	open, events := fakeSource()
	var fetches int64

	s := NewSubscriber("bookings", open, countingFetch(&fetches), nil, Options{
		Debounce: 50 * time.Millisecond,
	})
	s.Start(context.Background())
	require.Eventually(t, s.Connected, time.Second, 5*time.Millisecond)

	events <- Event{Table: "bookings", Action: ActionDelete}
	s.Stop() // debounce timer still armed

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int64(1), atomic.LoadInt64(&fetches), "queued fetch must not fire after Stop")
}
