// In-memory dedup store for billing webhook deliveries. Stripe retries
// aggressively; remembering event ids for a day keeps replays idempotent
// without a dedicated table.
package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	eventTTL        = 24 * time.Hour
	cleanupInterval = 1 * time.Hour
)

type ProcessedEventCache struct {
	store *cache.Cache
}

func NewProcessedEventCache() *ProcessedEventCache {
	return &ProcessedEventCache{
		store: cache.New(eventTTL, cleanupInterval),
	}
}

// FirstSeen records the event id and reports whether this is its first
// delivery. Add fails when the key exists, which makes the check atomic.
func (c *ProcessedEventCache) FirstSeen(eventId string) bool {
	return c.store.Add(eventId, struct{}{}, cache.DefaultExpiration) == nil
}

// Forget drops an event id so a retry can be processed again. Used when
// handling failed after the id was already claimed.
func (c *ProcessedEventCache) Forget(eventId string) {
	c.store.Delete(eventId)
}
