// Package openai is the OpenAI chat-completion text driver.
package openai

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ehunter/skycast/internal/constants"
)

const name = "openai"

// Driver generates text through the chat completions API.
type Driver struct {
	client *openai.Client
	model  string
}

// New builds a driver for the given key.
func New(apiKey string) *Driver {
	return &Driver{
		client: openai.NewClient(apiKey),
		model:  constants.OpenAIModel,
	}
}

func (d *Driver) Name() string { return name }

// Generate runs one prompt as a single-turn chat.
func (d *Driver) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := d.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: d.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai generation failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
