package advisor

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/arthneeti/game-engine/arthneeti/config"
)

type cachedAdvice struct {
	result    AdviceResult
	timestamp time.Time
}

// adviceCache keeps recent answers behind an LRU with a TTL, so a table
// of players asking the same question in the same situation share one
// model call.
type adviceCache struct {
	cache  *lru.Cache
	expiry time.Duration
}

func newAdviceCache() *adviceCache {
	cache, _ := lru.New(config.AdviceCacheSize)
	return &adviceCache{cache: cache, expiry: config.AdviceCacheTTL}
}

// cacheKey buckets wealth and happiness so near-identical situations
// hit the same entry. Exact values would make every key unique.
func cacheKey(topic string, wealth int64, happiness int, lang string) string {
	return fmt.Sprintf("%s:%d:%d:%s", topic, wealth/10000, happiness/10, lang)
}

func (c *adviceCache) get(key string) (AdviceResult, bool) {
	entry, ok := c.cache.Get(key)
	if !ok {
		return AdviceResult{}, false
	}
	cached := entry.(cachedAdvice)
	if time.Since(cached.timestamp) > c.expiry {
		c.cache.Remove(key)
		return AdviceResult{}, false
	}
	result := cached.result
	result.Source = SourceCached
	return result, true
}

func (c *adviceCache) put(key string, result AdviceResult) {
	c.cache.Add(key, cachedAdvice{result: result, timestamp: time.Now()})
}
