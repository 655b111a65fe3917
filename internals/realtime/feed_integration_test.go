package realtime

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func integrationFeed(t *testing.T) *Feed {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set; skipping integration test")
	}
	feed, err := NewFeed(addr, os.Getenv("TEST_REDIS_PASSWORD"), 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = feed.Close() })
	return feed
}

func TestOpenerDeliversPublishedEvents(t *testing.T) {
	feed := integrationFeed(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events, closeFn, err := feed.Opener("slots")(ctx)
	require.NoError(t, err)
	defer closeFn()

	feed.Publish(ctx, Event{Table: "slots", Action: ActionUpdate, RowID: "abc"})

	select {
	case ev := <-events:
		assert.Equal(t, "slots", ev.Table)
		assert.Equal(t, ActionUpdate, ev.Action)
		assert.Equal(t, "abc", ev.RowID)
	case <-ctx.Done():
		t.Fatal("event never arrived")
	}
}

// Cancelling the context must close the event channel even when no
// message ever arrives; otherwise Subscriber.Stop wedges on an idle
// subscription.
func TestOpenerClosesOnCancelWhileIdle(t *testing.T) {
	feed := integrationFeed(t)

	ctx, cancel := context.WithCancel(context.Background())
	events, closeFn, err := feed.Opener("slots")(ctx)
	require.NoError(t, err)
	defer closeFn()

	cancel()

	select {
	case _, open := <-events:
		assert.False(t, open, "channel should be closed, not delivering")
	case <-time.After(3 * time.Second):
		t.Fatal("event channel never closed after cancel")
	}
}
