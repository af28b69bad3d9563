package llm

import (
	"context"
	"errors"
	"io"
)

var ErrNoContent = errors.New("model returned no content")

// LLMClient turns a prompt into a single text completion.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Settings are shared by every provider. Answers are short and factual, so
// the defaults favour a low temperature and a small token budget.
type Settings struct {
	Model       string
	MaxTokens   int
	Temperature float32
}

const (
	defaultMaxTokens   = 1000
	defaultTemperature = 0.2
)

func (s Settings) withDefaults(model string) Settings {
	if s.Model == "" {
		s.Model = model
	}
	if s.MaxTokens <= 0 {
		s.MaxTokens = defaultMaxTokens
	}
	if s.Temperature <= 0 {
		s.Temperature = defaultTemperature
	}
	return s
}

// Close releases the client's resources when the provider holds any (the
// Gemini client keeps a connection open). Other clients are left alone.
func Close(client LLMClient) error {
	if c, ok := client.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
