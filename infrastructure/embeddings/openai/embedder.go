// ABOUTME: OpenAI-compatible embedding client used for semantic relevance scoring
// ABOUTME: Wraps langchaingo embeddings with an LRU cache of recent vectors

package openai

import (
	"context"
	"errors"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"

	"devpulse-search-api/core/interfaces"
)

// cacheSize bounds the in-process vector cache. Queries repeat far more
// often than result snippets, so a small cache still earns its keep.
const cacheSize = 512

// Embedder generates vector embeddings through an OpenAI-compatible API.
type Embedder struct {
	embedder embeddings.Embedder
	cache    *lru.Cache[string, []float32]
	logger   interfaces.Logger
}

// Config holds the connection settings for the embeddings endpoint.
type Config struct {
	// BaseURL is the OpenAI-compatible API endpoint
	BaseURL string

	// APIKey authenticates against the endpoint; empty works for
	// local services that skip auth
	APIKey string

	// Model names the embedding model
	Model string
}

// NewEmbedder creates an embedder against an OpenAI-compatible endpoint.
func NewEmbedder(cfg Config, logger interfaces.Logger) (*Embedder, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("embedding base URL cannot be empty")
	}

	token := cfg.APIKey
	if token == "" {
		// langchaingo rejects an empty token even when the backend
		// ignores it
		token = "none"
	}

	client, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(token),
		openai.WithEmbeddingModel(cfg.Model),
	)
	if err != nil {
		return nil, err
	}

	wrapped, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, err
	}

	cache, err := lru.New[string, []float32](cacheSize)
	if err != nil {
		return nil, err
	}

	return &Embedder{
		embedder: wrapped,
		cache:    cache,
		logger:   logger,
	}, nil
}

// EmbedText generates a vector embedding for a single text string.
// Repeated texts are served from the cache without a network call.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	if vec, ok := e.cache.Get(text); ok {
		return vec, nil
	}

	vectors, err := e.embedder.EmbedDocuments(ctx, []string{text})
	if err != nil {
		e.logWarn("embedding request failed", map[string]interface{}{
			"length": len(text),
			"error":  err.Error(),
		})
		return nil, err
	}

	if len(vectors) == 0 {
		return nil, errors.New("embedding backend returned no vectors")
	}

	e.cache.Add(text, vectors[0])
	return vectors[0], nil
}

func (e *Embedder) logWarn(msg string, fields map[string]interface{}) {
	if e.logger != nil {
		e.logger.Warn(msg, fields)
	}
}
