package repo

import (
	"context"
	"sync"
	"time"

	"cloud.google.com/go/spanner"
	"golang.org/x/sync/singleflight"

	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/registry-pricing-service/internal/pkg/clock"
)

// DefaultPremiumCacheEntries bounds the cache when no explicit size is set.
const DefaultPremiumCacheEntries = 100_000

// PremiumListCache is a read-through TTL cache in front of a PremiumListRepository.
// Concurrent misses for the same label share one backend lookup.
// Negative results (not premium) are cached too, so the map is swept of expired
// entries once per TTL and never holds more than maxEntries labels.
type PremiumListCache struct {
	next       contracts.PremiumListRepository
	ttl        time.Duration
	maxEntries int
	clock      clock.Clock
	observe    func(hit bool)

	group     singleflight.Group
	mu        sync.RWMutex
	entries   map[string]cachedPrice
	lastSweep time.Time
}

type cachedPrice struct {
	price     *domain.Money
	expiresAt time.Time
}

var _ contracts.PremiumListRepository = (*PremiumListCache)(nil)

// NewPremiumListCache wraps next. A non-positive ttl disables caching.
func NewPremiumListCache(next contracts.PremiumListRepository, ttl time.Duration, clk clock.Clock) *PremiumListCache {
	return &PremiumListCache{
		next:       next,
		ttl:        ttl,
		maxEntries: DefaultPremiumCacheEntries,
		clock:      clk,
		observe:    func(bool) {},
		entries:    make(map[string]cachedPrice),
		lastSweep:  clk.Now(),
	}
}

// WithObserver sets a callback invoked with the result of every cached lookup.
func (c *PremiumListCache) WithObserver(observe func(hit bool)) *PremiumListCache {
	c.observe = observe
	return c
}

// WithMaxEntries caps the number of cached labels. Non-positive values are ignored.
func (c *PremiumListCache) WithMaxEntries(n int) *PremiumListCache {
	if n > 0 {
		c.maxEntries = n
	}
	return c
}

// GetPremiumPrice returns the cached price or loads it from the backing repository.
func (c *PremiumListCache) GetPremiumPrice(ctx context.Context, listName, label string) (*domain.Money, error) {
	if c.ttl <= 0 {
		return c.next.GetPremiumPrice(ctx, listName, label)
	}

	key := listName + "\x00" + label

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		if c.clock.Now().Before(entry.expiresAt) {
			c.observe(true)
			return entry.price, nil
		}
		c.evictExpired(key)
	}
	c.observe(false)

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// waiters share this lookup, so one caller's cancellation must not fail the rest
		price, err := c.next.GetPremiumPrice(context.WithoutCancel(ctx), listName, label)
		if err != nil {
			return nil, err
		}
		c.store(key, price, c.clock.Now())
		return price, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Money), nil
}

// evictExpired drops key if it is still expired under the write lock.
func (c *PremiumListCache) evictExpired(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.entries[key]; ok && !c.clock.Now().Before(entry.expiresAt) {
		delete(c.entries, key)
	}
}

func (c *PremiumListCache) store(key string, price *domain.Money, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if now.Sub(c.lastSweep) >= c.ttl {
		c.sweepLocked(now)
	}
	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.maxEntries {
		c.sweepLocked(now)
		for victim := range c.entries {
			if len(c.entries) < c.maxEntries {
				break
			}
			delete(c.entries, victim)
		}
	}
	c.entries[key] = cachedPrice{price: price, expiresAt: now.Add(c.ttl)}
}

func (c *PremiumListCache) sweepLocked(now time.Time) {
	for key, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
	c.lastSweep = now
}

// InsertEntryMut delegates to the backing repository and drops the cached entry.
func (c *PremiumListCache) InsertEntryMut(listName, label string, price domain.Money) *spanner.Mutation {
	c.Invalidate(listName, label)
	return c.next.InsertEntryMut(listName, label, price)
}

// Invalidate drops one cached label.
func (c *PremiumListCache) Invalidate(listName, label string) {
	c.mu.Lock()
	delete(c.entries, listName+"\x00"+label)
	c.mu.Unlock()
}

// Len returns the number of cached labels, including expired ones not yet swept.
func (c *PremiumListCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
