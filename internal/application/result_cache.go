package application

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/example/hearing-board/internal/hearing"
)

// resultCache stores recent filter results so repeated queries against the
// same snapshot skip the pipeline. Entries are keyed by snapshot ID, so a
// reload makes old entries unreachable; Invalidate drops them eagerly.
type resultCache struct {
	mu         sync.RWMutex
	now        func() time.Time
	ttl        time.Duration
	maxEntries int
	entries    map[string]resultCacheEntry
}

type resultCacheEntry struct {
	records   []hearing.Record
	expiresAt time.Time
}

func newResultCache(ttl time.Duration, maxEntries int, now func() time.Time) *resultCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if maxEntries <= 0 {
		maxEntries = 128
	}
	if now == nil {
		now = time.Now
	}
	return &resultCache{
		now:        now,
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[string]resultCacheEntry),
	}
}

func (c *resultCache) Get(key string) ([]hearing.Record, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return cloneRecords(entry.records), true
}

func (c *resultCache) Store(key string, records []hearing.Record) {
	if c == nil {
		return
	}
	cloned := cloneRecords(records)
	expiry := c.now().Add(c.ttl)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.cleanupLocked()
	if len(c.entries) >= c.maxEntries {
		c.evictOneLocked()
	}
	c.entries[key] = resultCacheEntry{records: cloned, expiresAt: expiry}
}

func (c *resultCache) Invalidate() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.entries = make(map[string]resultCacheEntry)
	c.mu.Unlock()
}

func (c *resultCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *resultCache) cleanupLocked() {
	now := c.now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}

func (c *resultCache) evictOneLocked() {
	var oldestKey string
	var oldest time.Time
	for key, entry := range c.entries {
		if oldestKey == "" || entry.expiresAt.Before(oldest) {
			oldestKey, oldest = key, entry.expiresAt
		}
	}
	delete(c.entries, oldestKey)
}

func cloneRecords(records []hearing.Record) []hearing.Record {
	out := make([]hearing.Record, len(records))
	copy(out, records)
	return out
}

func buildResultCacheKey(snapshotID string, c hearing.Criteria) string {
	room := "all"
	if c.Room != nil {
		room = strconv.Itoa(*c.Room)
	}

	builder := strings.Builder{}
	builder.WriteString(snapshotID)
	builder.WriteString("|")
	builder.WriteString(c.DateFrom.String())
	builder.WriteString("|")
	builder.WriteString(c.DateTo.String())
	builder.WriteString("|")
	builder.WriteString(c.TimeFrom.String())
	builder.WriteString("|")
	builder.WriteString(c.UpperTime().String())
	builder.WriteString("|")
	builder.WriteString(room)
	builder.WriteString("|")
	builder.WriteString(strings.TrimSpace(c.Judge))
	builder.WriteString("|")
	builder.WriteString(strings.ToLower(c.CaseNumber))
	builder.WriteString("|")
	builder.WriteString(strings.ToLower(c.Party))
	return builder.String()
}
