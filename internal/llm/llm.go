// Package llm adapts Eino chat models to clio's text-generation boundary.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/ollama"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	einoschema "github.com/cloudwego/eino/schema"
	"github.com/huangsam/clio/internal/contract"
	"github.com/huangsam/clio/schema"
	"go.uber.org/zap"
)

// Config holds configuration for creating a chat or embedding model.
type Config struct {
	Provider       schema.LLMProvider
	Model          string
	EmbeddingModel string // Optional, provider default when empty
	APIKey         string // Required for OpenAI and Anthropic
	BaseURL        string // Optional for OpenAI, defaults for Ollama
	Temperature    float32
	MaxTokens      int
	Timeout        time.Duration
}

// ConfigFrom extracts the text-generation settings of the runtime config.
func ConfigFrom(cfg *contract.Config) Config {
	return Config{
		Provider:       cfg.LLMProvider,
		Model:          cfg.LLMModel,
		EmbeddingModel: cfg.EmbeddingModel,
		APIKey:         cfg.LLMAPIKey,
		BaseURL:        cfg.LLMBaseURL,
		Temperature:    cfg.Temperature,
		MaxTokens:      cfg.MaxTokens,
		Timeout:        cfg.LLMTimeout,
	}
}

// NewChatModel creates an Eino BaseChatModel for the configured provider.
func NewChatModel(ctx context.Context, cfg Config) (model.BaseChatModel, error) {
	switch cfg.Provider {
	case schema.OpenAIProvider:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return openai.NewChatModel(ctx, &openai.ChatModelConfig{
			Model:   cfg.Model,
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Timeout: cfg.Timeout,
		})

	case schema.OllamaProvider:
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = contract.DefaultOllamaURL
		}
		return ollama.NewChatModel(ctx, &ollama.ChatModelConfig{
			BaseURL: baseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		})

	case schema.AnthropicProvider:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("anthropic API key is required")
		}
		claudeCfg := &claude.Config{
			APIKey:    cfg.APIKey,
			Model:     cfg.Model,
			MaxTokens: cfg.MaxTokens,
		}
		if cfg.BaseURL != "" {
			claudeCfg.BaseURL = &cfg.BaseURL
		}
		return claude.NewChatModel(ctx, claudeCfg)

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s (supported: openai, ollama, anthropic)", cfg.Provider)
	}
}

// Completer implements contract.Completer on top of an Eino chat model.
type Completer struct {
	chat        model.BaseChatModel
	temperature float32
	maxTokens   int
	timeout     time.Duration
	logger      *zap.Logger
}

var _ contract.Completer = &Completer{} // Compile-time check

// NewCompleter wraps a chat model. A nil logger disables logging.
func NewCompleter(chat model.BaseChatModel, cfg Config, logger *zap.Logger) *Completer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Completer{
		chat:        chat,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		timeout:     cfg.Timeout,
		logger:      logger,
	}
}

// Complete sends the system prompt and turns to the model.
// Provider errors and blank replies come back as a failed Completion.
func (c *Completer) Complete(ctx context.Context, systemPrompt string, messages []schema.ChatTurn) schema.Completion {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var opts []model.Option
	if c.temperature > 0 {
		opts = append(opts, model.WithTemperature(c.temperature))
	}
	if c.maxTokens > 0 {
		opts = append(opts, model.WithMaxTokens(c.maxTokens))
	}

	start := time.Now()
	resp, err := c.chat.Generate(ctx, toMessages(systemPrompt, messages), opts...)
	if err != nil {
		c.logger.Warn("completion failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return schema.CompletionFailure(err.Error())
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		c.logger.Warn("completion returned no text", zap.Duration("elapsed", time.Since(start)))
		return schema.CompletionFailure("empty response")
	}

	c.logger.Debug("completion succeeded",
		zap.Int("turns", len(messages)),
		zap.Int("chars", len(resp.Content)),
		zap.Duration("elapsed", time.Since(start)))
	return schema.Completed(strings.TrimSpace(resp.Content))
}

// toMessages maps clio turns to Eino messages, system prompt first.
func toMessages(systemPrompt string, turns []schema.ChatTurn) []*einoschema.Message {
	out := make([]*einoschema.Message, 0, len(turns)+1)
	if systemPrompt != "" {
		out = append(out, einoschema.SystemMessage(systemPrompt))
	}
	for _, t := range turns {
		switch t.Role {
		case schema.AssistantRole:
			out = append(out, einoschema.AssistantMessage(t.Text, nil))
		default:
			out = append(out, einoschema.UserMessage(t.Text))
		}
	}
	return out
}
