package llm

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

type OpenAIClient struct {
	llm llms.Model
}

func NewOpenAIClient(apiKey, model string) (*OpenAIClient, error) {
	llm, err := openai.New(
		openai.WithModel(model),
		openai.WithToken(apiKey),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	return &OpenAIClient{llm: llm}, nil
}

func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	log.Printf("[INFO] Calling OpenAI completion with prompt of %d characters", len(prompt))

	completion, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt, llms.WithTemperature(0.7))
	if err != nil {
		log.Printf("[ERROR] OpenAI completion failed: %v", err)
		return "", fmt.Errorf("completion request failed: %w", err)
	}

	completion = strings.TrimSpace(completion)
	if completion == "" {
		return NoTextOutput, nil
	}
	return completion, nil
}
