package ocr

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// Cache keeps analyses keyed by upload hash.
type Cache struct {
	c *cache.Cache
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{c: cache.New(ttl, ttl/2+time.Minute)}
}

func (c *Cache) Get(hash string) (*Analysis, bool) {
	if x, found := c.c.Get(hash); found {
		return x.(*Analysis), true
	}
	return nil, false
}

func (c *Cache) Set(a *Analysis) {
	c.c.Set(a.Hash, a, cache.DefaultExpiration)
}

func (c *Cache) ItemCount() int {
	return c.c.ItemCount()
}

// Analyzer fronts an Engine with the hash cache.
type Analyzer struct {
	engine Engine
	cache  *Cache
	calls  singleflight.Group
}

func NewAnalyzer(engine Engine, c *Cache) *Analyzer {
	return &Analyzer{engine: engine, cache: c}
}

// Analyze returns the cached analysis for identical bytes without calling the engine.
// Concurrent misses on the same bytes share one engine call; only the caller
// that made it reports a miss. Failures are not cached.
func (a *Analyzer) Analyze(ctx context.Context, filename string, data []byte) (*Analysis, bool, error) {
	hash := HashKey(data)
	if hit, ok := a.cache.Get(hash); ok {
		return hit, true, nil
	}

	led := false
	v, err, _ := a.calls.Do(hash, func() (interface{}, error) {
		if hit, ok := a.cache.Get(hash); ok {
			return hit, nil
		}
		led = true
		// The call outlives any single waiter.
		res, err := a.engine.Analyze(context.WithoutCancel(ctx), filename, data)
		if err != nil {
			return nil, err
		}
		res.Hash = hash
		a.cache.Set(res)
		return res, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.(*Analysis), !led, nil
}

// Lookup returns a cached analysis by hash.
func (a *Analyzer) Lookup(hash string) (*Analysis, bool) {
	return a.cache.Get(hash)
}

// Remember seeds the cache, e.g. with an analysis loaded from the database.
func (a *Analyzer) Remember(res *Analysis) {
	a.cache.Set(res)
}
