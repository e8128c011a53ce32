// Package gemini is the Google Gemini text driver.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/ehunter/skycast/internal/constants"
)

const name = "gemini"

// Driver generates text through the Gemini API.
type Driver struct {
	client *genai.Client
	model  string
}

// New dials the API with the given key.
func New(ctx context.Context, apiKey string) (*Driver, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Driver{client: client, model: constants.GeminiModel}, nil
}

func (d *Driver) Name() string { return name }

// Generate runs one prompt and concatenates the text parts of the answer.
func (d *Driver) Generate(ctx context.Context, prompt string) (string, error) {
	model := d.client.GenerativeModel(d.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("gemini returned no text parts")
	}
	return b.String(), nil
}

func (d *Driver) Close() error { return d.client.Close() }
