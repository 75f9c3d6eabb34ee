// Package llm wraps the OpenAI chat-completions API behind the plain
// prompt-in/text-out contract the ask path consumes.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

type Client struct {
	client *openai.Client
	model  string
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("missing OpenAI API key")
	}

	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	)

	return &Client{
		client: client,
		model:  cfg.Model,
	}, nil
}

// Complete sends a single-message chat completion and returns the raw text.
func (c *Client) Complete(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error) {
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		}),
		Model:       openai.F(openai.ChatModel(c.model)),
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(int64(maxTokens)),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}

	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}
