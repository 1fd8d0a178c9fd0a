package relevance

import (
	"fmt"
	"strings"

	"github.com/classpulse/classpulse/internal/cache"
	"github.com/classpulse/classpulse/internal/model"
	"github.com/classpulse/classpulse/internal/worker"
)

// NewEmbedder creates an embedding provider based on configuration. An empty
// provider name returns nil (relevancy scoring disabled). When caching is
// enabled the provider is wrapped with a memory cache, or a layered
// memory+disk cache when a cache directory is configured.
func NewEmbedder(cfg model.RelevanceConfig, cacheCfg model.CacheConfig) (Embedder, error) {
	provider := strings.ToLower(cfg.Provider)
	limiter := worker.NewLimiter(cfg.RateLimit, cfg.Burst)

	var embedder Embedder
	var err error

	switch provider {
	case "openai":
		embedder, err = NewOpenAIEmbedder("openai", cfg, limiter)

	case "ollama":
		if cfg.BaseURL == "" {
			cfg.BaseURL = "http://localhost:11434/v1"
		}
		if cfg.APIKey == "" {
			cfg.APIKey = "ollama" // The endpoint ignores it but the client requires one.
		}
		embedder, err = NewOpenAIEmbedder("ollama", cfg, limiter)

	case "":
		// No provider configured - relevancy scoring disabled
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown embedding provider: %s (supported: openai, ollama)", cfg.Provider)
	}

	if err != nil {
		return nil, err
	}

	if cacheCfg.Enabled {
		var store cache.Cache
		if cacheCfg.Dir != "" {
			store = cache.NewLayeredCache(cacheCfg.MemoryTTL, cacheCfg.Dir, cacheCfg.DiskTTL)
		} else {
			store = cache.NewMemoryCache(cacheCfg.MemoryTTL, cacheCfg.MemoryTTL)
		}
		embedder = NewCachedEmbedder(embedder, store, cacheCfg.DiskTTL)
	}

	return embedder, nil
}
