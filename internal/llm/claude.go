package llm

import (
	"context"
	"strings"

	"github.com/liushuangls/go-anthropic/v2"
)

const defaultClaudeModel = "claude-3-5-haiku-latest"

type ClaudeClient struct {
	client   *anthropic.Client
	settings Settings
}

func NewClaudeClient(apiKey, baseURL string, settings Settings) *ClaudeClient {
	var opts []anthropic.ClientOption
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(baseURL))
	}
	return &ClaudeClient{
		client:   anthropic.NewClient(apiKey, opts...),
		settings: settings.withDefaults(defaultClaudeModel),
	}
}

func (c *ClaudeClient) Generate(ctx context.Context, prompt string) (string, error) {
	temperature := c.settings.Temperature
	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:       anthropic.Model(c.settings.Model),
		MaxTokens:   c.settings.MaxTokens,
		Temperature: &temperature,
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(prompt),
		},
	})
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, content := range resp.Content {
		if content.Text != nil {
			sb.WriteString(*content.Text)
		}
	}
	if text := strings.TrimSpace(sb.String()); text != "" {
		return text, nil
	}
	return "", ErrNoContent
}
