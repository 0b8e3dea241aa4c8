package videos

import (
	"context"
	"sync"
	"time"
)

type cacheEntry struct {
	info    VideoInfo
	expires time.Time
}

// CachingProvider wraps another Provider with a TTL-based in-memory cache.
type CachingProvider struct {
	base Provider
	ttl  time.Duration
	now  func() time.Time

	mu    sync.RWMutex
	items map[string]cacheEntry
}

// NewCachingProvider returns a Provider that caches lookups for the provided TTL.
func NewCachingProvider(base Provider, ttl time.Duration) *CachingProvider {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CachingProvider{
		base:  base,
		ttl:   ttl,
		now:   time.Now,
		items: make(map[string]cacheEntry),
	}
}

// Lookup returns cached metadata when available, otherwise it delegates to the
// underlying provider and stores the result. Failures are never cached.
func (c *CachingProvider) Lookup(ctx context.Context, url string, platform Platform) (VideoInfo, error) {
	if c == nil || c.base == nil {
		return VideoInfo{}, ErrProviderUnavailable
	}

	now := c.now()

	c.mu.RLock()
	entry, ok := c.items[url]
	c.mu.RUnlock()
	if ok && now.Before(entry.expires) {
		return cloneInfo(entry.info), nil
	}

	info, err := c.base.Lookup(ctx, url, platform)
	if err != nil {
		return VideoInfo{}, err
	}

	c.mu.Lock()
	c.items[url] = cacheEntry{info: cloneInfo(info), expires: now.Add(c.ttl)}
	c.evictExpiredLocked(now)
	c.mu.Unlock()

	return info, nil
}

// Len reports the number of cached entries, expired ones included.
func (c *CachingProvider) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *CachingProvider) evictExpiredLocked(now time.Time) {
	for key, entry := range c.items {
		if !now.Before(entry.expires) {
			delete(c.items, key)
		}
	}
}

func cloneInfo(info VideoInfo) VideoInfo {
	out := info
	out.Qualities = append([]Quality(nil), info.Qualities...)
	return out
}
