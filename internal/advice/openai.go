package advice

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const defaultModel = "gpt-4o-mini"

type OpenAIOracle struct {
	client *openai.Client
	model  string
	log    *slog.Logger
}

// NewOpenAIOracle builds an oracle; baseURL may be empty for the public API.
func NewOpenAIOracle(apiKey, model, baseURL string, log *slog.Logger) *OpenAIOracle {
	if log == nil {
		log = slog.Default()
	}
	if model == "" {
		model = defaultModel
		log.Warn("advice model not set, using default", "model", model)
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIOracle{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		log:    log,
	}
}

func (o *OpenAIOracle) Advise(ctx context.Context, req Request) (string, error) {
	o.log.Debug("requesting advice", "model", o.model, "poolSize", req.PoolSize)
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(req)},
		},
		MaxCompletionTokens: 300,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return Fallback, nil
	}
	return text, nil
}
