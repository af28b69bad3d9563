package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agenthands/zomra/internal/config"
)

// ErrNotConfigured means no provider or credentials were supplied. Callers
// treat it as "run without AI", not as a startup failure.
var ErrNotConfigured = errors.New("llm provider not configured")

func NewClient(ctx context.Context, cfg config.LLMConfig) (LLMClient, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	settings := Settings{Model: cfg.Model, MaxTokens: cfg.MaxTokens}

	switch provider {
	case "":
		return nil, ErrNotConfigured

	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: openai requires an api key", ErrNotConfigured)
		}
		return NewOpenAIClient(cfg.APIKey, cfg.BaseURL, settings), nil

	case "gemini":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: gemini requires an api key", ErrNotConfigured)
		}
		client, err := NewGeminiClient(ctx, cfg.APIKey, settings)
		if err != nil {
			return nil, err
		}
		return client, nil

	case "claude":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: claude requires an api key", ErrNotConfigured)
		}
		return NewClaudeClient(cfg.APIKey, cfg.BaseURL, settings), nil

	case "ollama":
		// Ollama is reached through its OpenAI-compatible endpoint.
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL = fmt.Sprintf("%s/v1", strings.TrimRight(baseURL, "/"))
		}
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama" // ignored by Ollama but required by the client
		}
		return NewOpenAIClient(apiKey, baseURL, settings), nil

	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}
}
