package relevance

import (
	"context"
	"encoding/json"
	"time"

	"github.com/classpulse/classpulse/internal/cache"
)

// CachedEmbedder wraps an Embedder with a vector cache. Session recordings
// repeat short utterances constantly, and the reference document rarely
// changes between runs, so both sides of the scoring benefit.
type CachedEmbedder struct {
	inner Embedder
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedEmbedder wraps inner with the given cache.
func NewCachedEmbedder(inner Embedder, c cache.Cache, ttl time.Duration) *CachedEmbedder {
	return &CachedEmbedder{inner: inner, cache: c, ttl: ttl}
}

// Name returns the wrapped provider name.
func (e *CachedEmbedder) Name() string {
	return e.inner.Name()
}

// Model returns the wrapped embedding model identifier.
func (e *CachedEmbedder) Model() string {
	return e.inner.Model()
}

// Embed returns the cached vector for text when present, otherwise embeds
// through the wrapped provider and stores the result. Cache write failures
// are ignored: the vector is still correct, only the next run pays again.
func (e *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	key := cache.EmbeddingKey(e.inner.Model(), text)

	if payload, found := e.cache.Get(key); found {
		var vector []float32
		if err := json.Unmarshal(payload, &vector); err == nil {
			return vector, nil
		}
		// Corrupt entry: drop it and re-embed.
		_ = e.cache.Delete(key)
	}

	vector, err := e.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(vector); err == nil {
		_ = e.cache.Set(key, payload, e.ttl)
	}

	return vector, nil
}
