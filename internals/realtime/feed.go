// file: internals/realtime/feed.go
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Actions mirror the row events the store emits.
const (
	ActionInsert = "INSERT"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// Event is one row change on a table.
type Event struct {
	Table  string `json:"table"`
	Action string `json:"action"`
	RowID  string `json:"row_id,omitempty"`
}

// Feed publishes and subscribes table change events over Redis pub/sub.
// One channel per table: feed:<table>.
type Feed struct {
	rdb *goredis.Client
}

func NewFeed(addr, password string, db int) (*Feed, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connect failed: %w", err)
	}
	log.Printf("✅ Realtime feed connected (redis %s)", addr)

	return &Feed{rdb: rdb}, nil
}

func channelFor(table string) string { return "feed:" + table }

// Publish fans the event out to every subscriber of the table channel.
// Best effort: a publish failure is logged, never surfaced to the caller,
// because the row mutation itself already committed.
func (f *Feed) Publish(ctx context.Context, ev Event) {
	if f == nil || f.rdb == nil {
		return
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[ERROR] feed marshal: %v", err)
		return
	}
	if err := f.rdb.Publish(ctx, channelFor(ev.Table), payload).Err(); err != nil {
		log.Printf("[ERROR] feed publish %s: %v", ev.Table, err)
	}
}

// Opener returns an OpenFn for the table, plugging the Redis channel into
// a Subscriber.
func (f *Feed) Opener(table string) OpenFn {
	return func(ctx context.Context) (<-chan Event, func(), error) {
		sub := f.rdb.Subscribe(ctx, channelFor(table))
		// force the SUBSCRIBE round-trip so failures surface here
		if _, err := sub.Receive(ctx); err != nil {
			_ = sub.Close()
			return nil, nil, err
		}

		raw := sub.Channel()
		out := make(chan Event)

		// go-redis only closes Channel() on sub.Close(), so an idle
		// subscription would never notice a cancelled ctx; close it
		// from the side to unblock the pump below.
		go func() {
			<-ctx.Done()
			_ = sub.Close()
		}()

		go func() {
			defer close(out)
			for msg := range raw {
				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					log.Printf("[WARN] feed payload on %s: %v", msg.Channel, err)
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}()

		return out, func() { _ = sub.Close() }, nil
	}
}

func (f *Feed) Close() error {
	if f == nil || f.rdb == nil {
		return nil
	}
	return f.rdb.Close()
}
