package relevance

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/classpulse/classpulse/internal/model"
	"github.com/classpulse/classpulse/internal/util"
	"github.com/classpulse/classpulse/internal/worker"
)

// OpenAIEmbedder implements Embedder against the OpenAI embeddings API, or
// any OpenAI-compatible endpoint (Ollama exposes one) via BaseURL.
type OpenAIEmbedder struct {
	client  *openai.Client
	name    string
	model   string
	limiter *worker.Limiter
	timeout time.Duration
}

// NewOpenAIEmbedder creates an embedder from the relevance configuration.
func NewOpenAIEmbedder(name string, cfg model.RelevanceConfig, limiter *worker.Limiter) (*OpenAIEmbedder, error) {
	if cfg.APIKey == "" && cfg.BaseURL == "" {
		return nil, fmt.Errorf("%s embedder: API key is required", name)
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy),
		},
	}

	embeddingModel := cfg.Model
	if embeddingModel == "" {
		embeddingModel = string(openai.SmallEmbedding3)
	}

	return &OpenAIEmbedder{
		client:  openai.NewClientWithConfig(clientConfig),
		name:    name,
		model:   embeddingModel,
		limiter: limiter,
		timeout: cfg.Timeout,
	}, nil
}

// Name returns the provider name.
func (e *OpenAIEmbedder) Name() string {
	return e.name
}

// Model returns the embedding model identifier.
func (e *OpenAIEmbedder) Model() string {
	return e.model
}

// Embed requests an embedding vector for text, honoring the provider rate
// limit and per-request timeout.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx, e.name+"/"+e.model); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	timeout := e.timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := e.client.CreateEmbeddings(ctxWithTimeout, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, fmt.Errorf("%s embeddings API: %w", e.name, err)
	}

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("%s embeddings API: empty response", e.name)
	}

	return resp.Data[0].Embedding, nil
}
