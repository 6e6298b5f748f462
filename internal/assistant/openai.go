package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/xaenox/nico-bot/internal/models"
)

var ErrEmptyResponse = errors.New("completion returned no choices")

// chatClient is the subset of *openai.Client the completer uses.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Config struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
}

// GPTCompleter answers one user message under a system prompt. No
// conversation history is kept between calls.
type GPTCompleter struct {
	client    chatClient
	model     string
	maxTokens int
	logger    *zap.Logger
}

func NewGPTCompleter(cfg Config, logger *zap.Logger) *GPTCompleter {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return newGPTCompleter(openai.NewClientWithConfig(clientCfg), cfg, logger)
}

func newGPTCompleter(client chatClient, cfg Config, logger *zap.Logger) *GPTCompleter {
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	return &GPTCompleter{
		client:    client,
		model:     model,
		maxTokens: cfg.MaxTokens,
		logger:    logger,
	}
}

func (c *GPTCompleter) Complete(ctx context.Context, req models.CompletionRequest) (string, error) {
	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: req.SystemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: req.UserText,
				},
			},
			MaxTokens:   c.maxTokens,
			Temperature: float32(req.Temperature),
		},
	)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	c.logger.Debug("Completion received",
		zap.String("model", resp.Model),
		zap.Int("total_tokens", resp.Usage.TotalTokens))

	return content, nil
}
