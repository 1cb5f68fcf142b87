// Package llm adapts the OpenAI chat completion API to the TextGenerator
// contract used by the extraction pipeline.
package llm

import (
	"context"
	"fmt"

	"github.com/huangsam/maintscore/internal/contract"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Config holds the connection settings for the OpenAI client.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// OpenAIGenerator implements TextGenerator against the OpenAI chat API.
// Temperature is pinned to zero so repeated reviews of the same file stay
// comparable across sessions.
type OpenAIGenerator struct {
	client openai.Client
	model  string
}

var _ contract.TextGenerator = &OpenAIGenerator{} // Compile-time check

// NewOpenAIGenerator creates a generator from the given config.
func NewOpenAIGenerator(cfg Config) (*OpenAIGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required. Set MAINTSCORE_OPENAI_KEY or pass --openai-key")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = contract.DefaultModel
	}

	return &OpenAIGenerator{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

// Model returns the configured model identifier.
func (g *OpenAIGenerator) Model() string {
	return g.model
}

// Generate implements the TextGenerator interface.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(0),
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}
