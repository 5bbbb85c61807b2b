package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/pennywise/pennywise-backend/internal/config"
	"github.com/sashabaranov/go-openai"
)

// ErrEmptyCompletion is returned when the model answers with no content
var ErrEmptyCompletion = errors.New("llm returned an empty completion")

// Completer turns a system and a user prompt into a single text answer
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// OpenAIClient talks to any OpenAI-compatible chat completion endpoint
type OpenAIClient struct {
	model  string
	client *openai.Client
}

// NewOpenAIClient builds a client from the assistant config; BaseURL may be empty
func NewOpenAIClient(cfg config.AssistantConfig) *OpenAIClient {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &OpenAIClient{
		model:  cfg.Model,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

// Complete sends one non-streaming chat completion request
func (c *OpenAIClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyCompletion
	}
	return content, nil
}
