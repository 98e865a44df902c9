package cache

import (
	"encoding/json"
	"time"

	"github.com/Ag-Linings/requirement-specifications/internal/model"
)

// ResultCache stores extraction results in an underlying byte cache.
type ResultCache struct {
	cache Cache
	ttl   time.Duration
}

// NewResultCache wraps a byte cache with result serialization.
func NewResultCache(c Cache, ttl time.Duration) *ResultCache {
	return &ResultCache{cache: c, ttl: ttl}
}

// Get returns the cached result for the input text, if any.
func (r *ResultCache) Get(input string) (model.ExtractionResult, bool) {
	data, found := r.cache.Get(Key(input))
	if !found {
		return model.ExtractionResult{}, false
	}

	var result model.ExtractionResult
	if err := json.Unmarshal(data, &result); err != nil {
		// Corrupt entry; drop it rather than serve garbage.
		_ = r.cache.Delete(Key(input))
		return model.ExtractionResult{}, false
	}
	return result, true
}

// Set stores the result for the input text.
func (r *ResultCache) Set(input string, result model.ExtractionResult) {
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	_ = r.cache.Set(Key(input), data, r.ttl)
}
