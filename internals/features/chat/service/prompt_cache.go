package service

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"sportku_backend/internals/realtime"
)

// PromptCache keeps the facility snapshot warm so every chat request does
// not hit the sports and slots tables. Change events on either table
// trigger a debounced rebuild through the feed subscribers.
type PromptCache struct {
	db *gorm.DB

	mu     sync.RWMutex
	prompt string
	warm   bool

	subs []*realtime.Subscriber
}

func NewPromptCache(db *gorm.DB) *PromptCache {
	return &PromptCache{db: db}
}

// Start subscribes to sports and slots changes. With a nil feed the cache
// degrades to building the prompt on demand.
func (p *PromptCache) Start(ctx context.Context, feed *realtime.Feed) {
	if feed == nil {
		return
	}
	for _, table := range []string{"sports", "slots"} {
		sub := realtime.NewSubscriber(table, feed.Opener(table), p.refresh, nil, realtime.Options{})
		sub.Start(ctx)
		p.subs = append(p.subs, sub)
	}
}

func (p *PromptCache) Stop() {
	for _, sub := range p.subs {
		sub.Stop()
	}
}

func (p *PromptCache) refresh(ctx context.Context) error {
	prompt, err := BuildSystemPrompt(p.db)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.prompt = prompt
	p.warm = true
	p.mu.Unlock()
	return nil
}

// Get returns the cached snapshot, building one directly when the cache
// has never been filled (no feed, or the initial fetch failed).
func (p *PromptCache) Get(ctx context.Context) (string, error) {
	p.mu.RLock()
	prompt, warm := p.prompt, p.warm
	p.mu.RUnlock()
	if warm {
		return prompt, nil
	}
	return BuildSystemPrompt(p.db)
}
