package enrich

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jonathan/referral-matcher/internal/types"
)

// Default cache lifetimes. Not-found entries expire sooner so an
// unresolvable candidate gets another chance without hammering providers in
// the meantime.
const (
	DefaultTTL         = 24 * time.Hour
	DefaultNotFoundTTL = 6 * time.Hour
)

// CandidateKey derives the candidate-tier cache key from a candidate's
// identity. Same person at the same company hashes to the same key across
// matching calls.
func CandidateKey(cand *types.CandidateRecord) string {
	return hashKey("candidate", strings.ToLower(cand.Name), strings.ToLower(cand.Company))
}

// RoleKey derives the role-tier cache key from the detected role and the
// desired-location query shape.
func RoleKey(role, desiredLocation string) string {
	return hashKey("role", strings.ToLower(role), strings.ToLower(desiredLocation))
}

func hashKey(parts ...string) string {
	h := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(h[:16])
}

type cacheEntry struct {
	resolution *types.LocationResolution
	expires    time.Time
}

// Cache is an in-memory TTL cache of location resolutions, safe for
// concurrent matching calls. Lookups for the same key are collapsed through
// singleflight so at most one external lookup per key is ever in flight.
// Entries are immutable once stored and replaced, never mutated, on refresh.
type Cache struct {
	mu          sync.RWMutex
	entries     map[string]cacheEntry
	ttl         time.Duration
	notFoundTTL time.Duration
	group       singleflight.Group

	// now is replaceable for expiry tests.
	now func() time.Time
}

// NewCache creates a cache with the given lifetimes. Zero durations fall
// back to the defaults.
func NewCache(ttl, notFoundTTL time.Duration) *Cache {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	if notFoundTTL == 0 {
		notFoundTTL = DefaultNotFoundTTL
	}
	return &Cache{
		entries:     make(map[string]cacheEntry),
		ttl:         ttl,
		notFoundTTL: notFoundTTL,
		now:         time.Now,
	}
}

// Get returns the fresh resolution for key, if any. Expired entries are
// treated as absent.
func (c *Cache) Get(key string) (*types.LocationResolution, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.now().After(entry.expires) {
		return nil, false
	}
	return entry.resolution, true
}

// Put stores a resolution under key with the TTL appropriate to its outcome.
func (c *Cache) Put(key string, res *types.LocationResolution) {
	ttl := c.ttl
	if res.NotFound {
		ttl = c.notFoundTTL
	}
	c.mu.Lock()
	c.entries[key] = cacheEntry{resolution: res, expires: c.now().Add(ttl)}
	c.mu.Unlock()
}

// Resolve returns the cached resolution for key or runs lookup to produce
// and store one. Concurrent callers for the same key share a single lookup.
func (c *Cache) Resolve(key string, lookup func() *types.LocationResolution) *types.LocationResolution {
	if res, ok := c.Get(key); ok {
		return res
	}
	v, _, _ := c.group.Do(key, func() (any, error) {
		// Re-check under the flight: another caller may have stored the
		// value between our Get and Do.
		if res, ok := c.Get(key); ok {
			return res, nil
		}
		res := lookup()
		c.Put(key, res)
		return res, nil
	})
	return v.(*types.LocationResolution)
}

// Len returns the number of stored entries, fresh or expired.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
