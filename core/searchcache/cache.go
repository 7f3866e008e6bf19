// ABOUTME: Time-windowed result cache keyed by normalized query plus intent
// ABOUTME: Wraps a Cache backend with hashing, lazy expiry and best-effort hit counting

package searchcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"devpulse-search-api/core/domain"
	"devpulse-search-api/core/interfaces"
)

// DefaultTTL is how long cached search results stay valid.
const DefaultTTL = 24 * time.Hour

// keyPrefix namespaces search entries in the shared cache backend.
const keyPrefix = "search:results:"

// SearchCache stores orchestrated search results under a hash of the
// normalized query and intent. A backend outage degrades to "always miss";
// it never fails the surrounding search.
type SearchCache struct {
	backend interfaces.Cache
	logger  interfaces.Logger
	ttl     time.Duration
	hits    atomic.Int64
	misses  atomic.Int64
}

// NewSearchCache creates a search cache over the given backend. A nil
// backend is allowed and behaves as a cache that always misses.
func NewSearchCache(backend interfaces.Cache, logger interfaces.Logger, ttl time.Duration) *SearchCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SearchCache{
		backend: backend,
		logger:  logger,
		ttl:     ttl,
	}
}

// Key derives the deterministic cache key for one query+intent pair:
// a SHA-256 over the normalized query text, the sorted source set, the
// sorted keywords and the primary language entity.
func (s *SearchCache) Key(query string, in domain.Intent) string {
	normalized := strings.ToLower(strings.TrimSpace(query))

	sources := append([]string(nil), in.Sources...)
	sort.Strings(sources)

	keywords := append([]string(nil), in.Keywords...)
	sort.Strings(keywords)

	raw := normalized + "|" + strings.Join(sources, ",") + "|" +
		strings.Join(keywords, ",") + "|" + in.Language()

	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached entry for key, or nil on a miss. Expired entries
// are treated as misses even if the backend still holds them. A hit
// increments the entry's hit counter best-effort.
func (s *SearchCache) Get(ctx context.Context, key string) *domain.CachedSearch {
	if s.backend == nil {
		s.misses.Add(1)
		return nil
	}

	data, err := s.backend.Get(ctx, keyPrefix+key)
	if err != nil || data == nil {
		s.misses.Add(1)
		return nil
	}

	var entry domain.CachedSearch
	if err := json.Unmarshal(data, &entry); err != nil {
		s.logWarn("discarding undecodable cache entry", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		_ = s.backend.Delete(ctx, keyPrefix+key)
		s.misses.Add(1)
		return nil
	}

	if entry.Expired(time.Now()) {
		_ = s.backend.Delete(ctx, keyPrefix+key)
		s.misses.Add(1)
		return nil
	}

	s.hits.Add(1)
	s.incrementHit(ctx, &entry)

	return &entry
}

// Put stores the result set under key with the configured TTL. Failures
// are logged and swallowed; caching is never load-bearing.
func (s *SearchCache) Put(ctx context.Context, key string, results []domain.SearchResult) {
	if s.backend == nil {
		return
	}

	now := time.Now()
	entry := domain.CachedSearch{
		Key:       key,
		Results:   results,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		s.logWarn("failed to encode cache entry", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return
	}

	if err := s.backend.Set(ctx, keyPrefix+key, data, s.ttl); err != nil {
		s.logWarn("failed to write cache entry", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

// Stats returns the hit and miss counts since process start.
func (s *SearchCache) Stats() (hits, misses int64) {
	return s.hits.Load(), s.misses.Load()
}

// incrementHit rewrites the entry with its hit counter bumped, keeping the
// original expiry. Best-effort: a failure must not fail the search.
func (s *SearchCache) incrementHit(ctx context.Context, entry *domain.CachedSearch) {
	entry.HitCount++

	remaining := time.Until(entry.ExpiresAt)
	if remaining <= 0 {
		return
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := s.backend.Set(ctx, keyPrefix+entry.Key, data, remaining); err != nil {
		s.logWarn("failed to update hit count", map[string]interface{}{
			"key":   entry.Key,
			"error": err.Error(),
		})
	}
}

func (s *SearchCache) logWarn(msg string, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.Warn(msg, fields)
	}
}
