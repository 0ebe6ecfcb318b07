package llm

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type AnthropicClient struct {
	client *anthropic.Client
}

func NewAnthropicClient(apiKey string) (*AnthropicClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicClient{client: &client}, nil
}

func (c *AnthropicClient) Complete(ctx context.Context, prompt string) (string, error) {
	log.Printf("[INFO] Calling Anthropic completion with prompt of %d characters", len(prompt))

	response, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.ModelClaude4Sonnet20250514,
		MaxTokens: 4096,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		log.Printf("[ERROR] Anthropic completion failed: %v", err)
		return "", fmt.Errorf("completion request failed: %w", err)
	}

	var text string
	for _, block := range response.Content {
		switch block := block.AsAny().(type) {
		case anthropic.TextBlock:
			text += block.Text
		}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return NoTextOutput, nil
	}
	return text, nil
}
