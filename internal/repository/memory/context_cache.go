package memory

import (
	"crypto/md5"
	"fmt"
	"strings"
	"time"

	"campus-assistant-be/pkg/pipeline/search"

	"github.com/patrickmn/go-cache"
)

// ContextCache keeps recently aggregated retrieval context in memory so
// repeated queries skip the embedding and database round trips.
type ContextCache struct {
	cache *cache.Cache
}

func NewContextCache(ttl time.Duration) *ContextCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	// Purge expired entries every 10 minutes
	c := cache.New(ttl, 10*time.Minute)
	return &ContextCache{
		cache: c,
	}
}

// Key derives the cache key from the normalized query and its scope.
func Key(message, userType, department string) string {
	raw := strings.ToLower(strings.TrimSpace(message)) + "|" + userType + "|" + department
	return fmt.Sprintf("%x", md5.Sum([]byte(raw)))
}

func (r *ContextCache) Save(key string, items []search.ContextItem) {
	r.cache.Set(key, items, cache.DefaultExpiration)
}

func (r *ContextCache) Get(key string) ([]search.ContextItem, bool) {
	if x, found := r.cache.Get(key); found {
		return x.([]search.ContextItem), true
	}
	return nil, false
}

func (r *ContextCache) Delete(key string) {
	r.cache.Delete(key)
}
