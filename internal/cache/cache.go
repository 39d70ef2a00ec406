package cache

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/kinetic-alphabet/pictograph/internal/classify"
	"github.com/kinetic-alphabet/pictograph/pkg/core"
)

// ResultCache caches classification results for repeated pictographs so the
// dataset is not scanned again for a beat that was already classified.
// Letter and beat number are not part of the key.
type ResultCache struct {
	mu      sync.RWMutex
	results map[string]classify.Result
	hits    SafeCounter
	misses  SafeCounter
}

func NewResultCache() *ResultCache {
	return &ResultCache{
		results: make(map[string]classify.Result),
	}
}

type cacheKey struct {
	Pictograph core.Pictograph           `json:"p"`
	Context    classify.ComparisonContext `json:"c"`
}

// Key builds the cache key for classifying p under ctx.
func Key(p core.Pictograph, ctx classify.ComparisonContext) (string, error) {
	p.Letter = ""
	p.BeatNumber = 0
	if p.Direction == "" {
		p.Direction = core.Same
	}
	b, err := json.Marshal(cacheKey{Pictograph: p, Context: ctx})
	if err != nil {
		return "", fmt.Errorf("error building cache key: %w", err)
	}
	return string(b), nil
}

func (c *ResultCache) Get(key string) (classify.Result, bool) {
	c.mu.RLock()
	r, ok := c.results[key]
	c.mu.RUnlock()
	if ok {
		c.hits.Inc()
	} else {
		c.misses.Inc()
	}
	return r, ok
}

func (c *ResultCache) Set(key string, r classify.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[key] = r
}

func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.results)
}

// Stats returns the lookup hit and miss counts since the last Reset.
func (c *ResultCache) Stats() (hits, misses int) {
	return c.hits.Value(), c.misses.Value()
}

func (c *ResultCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = make(map[string]classify.Result)
	c.hits.Set(0)
	c.misses.Set(0)
}

// SafeCounter is a thread-safe counter
type SafeCounter struct {
	mu sync.Mutex
	v  int
}

func (c *SafeCounter) Value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.v
}

func (c *SafeCounter) Set(v int) {
	c.mu.Lock()
	c.v = v
	c.mu.Unlock()
}

func (c *SafeCounter) Inc() {
	c.mu.Lock()
	c.v++
	c.mu.Unlock()
}
