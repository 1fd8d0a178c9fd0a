package model

import "time"

// Config holds the complete classpulse configuration
type Config struct {
	Relevance   RelevanceConfig   `yaml:"relevance"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Server      ServerConfig      `yaml:"server"`
	Output      OutputConfig      `yaml:"output"`
}

// RelevanceConfig configures the embedding provider used for relevancy scoring
type RelevanceConfig struct {
	// Provider name: "openai", "ollama", "" (disabled)
	Provider string `yaml:"provider"`

	// Model is the embedding model name (provider-specific)
	Model string `yaml:"model"`

	// APIKey for OpenAI (usually via OPENAI_API_KEY)
	APIKey string `yaml:"api_key,omitempty"`

	// BaseURL for OpenAI-compatible endpoints (e.g., Ollama)
	BaseURL string `yaml:"base_url,omitempty"`

	// Timeout for a single embedding request
	Timeout time.Duration `yaml:"timeout"`

	// RateLimit is the maximum embedding calls per second
	RateLimit float64 `yaml:"rate_limit"`

	// Burst allowance for the rate limiter
	Burst int `yaml:"burst"`

	// Proxy settings
	HTTPProxy  string `yaml:"http_proxy,omitempty"`
	HTTPSProxy string `yaml:"https_proxy,omitempty"`
}

// CacheConfig configures the embedding vector cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// ConcurrencyConfig controls parallelism of the annotation stage
type ConcurrencyConfig struct {
	AnnotationWorkers int `yaml:"annotation_workers"`
}

// ServerConfig configures the HTTP service layer
type ServerConfig struct {
	Port int `yaml:"port"`
}

// OutputConfig controls run output behavior
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Relevance: RelevanceConfig{
			Provider:  "openai",
			Model:     "text-embedding-3-small",
			Timeout:   30 * time.Second,
			RateLimit: 5.0,
			Burst:     5,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: time.Hour,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			AnnotationWorkers: 4,
		},
		Server: ServerConfig{
			Port: 8080,
		},
		Output: OutputConfig{
			Verbose: false,
		},
	}
}
