package llm

import (
	"context"
	"fmt"
	"time"

	ollamaEmbed "github.com/cloudwego/eino-ext/components/embedding/ollama"
	openaiEmbed "github.com/cloudwego/eino-ext/components/embedding/openai"
	"github.com/cloudwego/eino/components/embedding"
	"github.com/huangsam/clio/internal/contract"
	"github.com/huangsam/clio/schema"
	"go.uber.org/zap"
)

// NewEmbeddingModel creates an Eino Embedder for the configured provider.
// Anthropic has no embedding endpoint and is rejected.
func NewEmbeddingModel(ctx context.Context, cfg Config) (embedding.Embedder, error) {
	switch cfg.Provider {
	case schema.OpenAIProvider:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		modelName := cfg.EmbeddingModel
		if modelName == "" {
			modelName = contract.DefaultOpenAIEmbeddingModel
		}
		return openaiEmbed.NewEmbedder(ctx, &openaiEmbed.EmbeddingConfig{
			Model:   modelName,
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
		})
	case schema.OllamaProvider:
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = contract.DefaultOllamaURL
		}
		modelName := cfg.EmbeddingModel
		if modelName == "" {
			modelName = contract.DefaultOllamaEmbeddingModel
		}
		return ollamaEmbed.NewEmbedder(ctx, &ollamaEmbed.EmbeddingConfig{
			BaseURL: baseURL,
			Model:   modelName,
		})
	default:
		return nil, fmt.Errorf("provider %s has no embedding support (supported: openai, ollama)", cfg.Provider)
	}
}

// Embedder implements contract.Embedder on top of an Eino embedder.
type Embedder struct {
	embedder embedding.Embedder
	timeout  time.Duration
	logger   *zap.Logger
}

var _ contract.Embedder = &Embedder{} // Compile-time check

// NewEmbedder wraps an embedding model. A nil logger disables logging.
func NewEmbedder(embedder embedding.Embedder, cfg Config, logger *zap.Logger) *Embedder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Embedder{embedder: embedder, timeout: cfg.Timeout, logger: logger}
}

// Embed returns one vector per text in input order.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	start := time.Now()
	vectors, err := e.embedder.EmbedStrings(ctx, texts)
	if err != nil {
		e.logger.Warn("embedding failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return nil, fmt.Errorf("failed to embed %d texts: %w", len(texts), err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedding returned %d vectors for %d texts", len(vectors), len(texts))
	}
	e.logger.Debug("embedding succeeded", zap.Int("texts", len(texts)), zap.Duration("elapsed", time.Since(start)))
	return vectors, nil
}
