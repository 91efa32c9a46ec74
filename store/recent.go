//go:generate go run go.uber.org/mock/mockgen -source=recent.go -destination=../mocks/mock_recent.go -package=mocks
package store

import (
	"sort"
	"sync"
	"time"

	"github.com/samber/lo"

	"chatlink/domain"
)

// DefaultRecentCapacity bounds the cache; the stalest partner is evicted
// once the bound is reached.
const DefaultRecentCapacity = 256

type IRecentCache interface {
	Upsert(partnerID, partnerName, lastMessage string, at time.Time)
	List() []domain.ConversationSummary
	Len() int
}

// RecentCache keeps exactly one summary per partner, replaced on every
// message sent or received.
type RecentCache struct {
	mu       sync.RWMutex
	capacity int
	entries  map[string]domain.ConversationSummary
}

func NewRecentCache(capacity int) *RecentCache {
	if capacity <= 0 {
		capacity = DefaultRecentCapacity
	}
	return &RecentCache{
		capacity: capacity,
		entries:  make(map[string]domain.ConversationSummary),
	}
}

func (c *RecentCache) Upsert(partnerID, partnerName, lastMessage string, at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[partnerID]; !exists && len(c.entries) >= c.capacity {
		c.evictStalest()
	}
	c.entries[partnerID] = domain.ConversationSummary{
		PartnerID:     partnerID,
		PartnerName:   partnerName,
		LastMessage:   lastMessage,
		LastTimestamp: at,
	}
}

// List returns all summaries sorted by last activity, newest first.
func (c *RecentCache) List() []domain.ConversationSummary {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := lo.Values(c.entries)
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastTimestamp.After(out[j].LastTimestamp)
	})
	return out
}

func (c *RecentCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// evictStalest drops the entry with the oldest activity. Caller holds the lock.
func (c *RecentCache) evictStalest() {
	var stalest string
	var oldest time.Time
	first := true
	for id, e := range c.entries {
		if first || e.LastTimestamp.Before(oldest) {
			stalest, oldest = id, e.LastTimestamp
			first = false
		}
	}
	delete(c.entries, stalest)
}
