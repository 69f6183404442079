package advisor

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Client sends system+user prompt pairs to the hosted chat-completion API.
type Client struct {
	api   openai.Client
	model string
}

func NewClient(apiKey, model string) *Client {
	return &Client{
		api:   openai.NewClient(option.WithAPIKey(apiKey)),
		model: model,
	}
}

// NewClientWithBaseURL points the client at an alternate completion
// endpoint.
func NewClientWithBaseURL(apiKey, model, baseURL string) *Client {
	return &Client{
		api:   openai.NewClient(option.WithAPIKey(apiKey), option.WithBaseURL(baseURL)),
		model: model,
	}
}

// Complete returns the first choice's text for the given exchange. A single
// best-effort call: no retry, no streaming.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	completion, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return completion.Choices[0].Message.Content, nil
}
