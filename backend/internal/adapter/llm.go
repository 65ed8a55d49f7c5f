package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	apperrors "aiotoolsuite/backend/pkg/errors"
	"aiotoolsuite/backend/pkg/logger"
)

// TextGenerator produces a single completion for a system and user prompt
type TextGenerator interface {
	Complete(ctx context.Context, systemPrompt, userMsg string) (string, error)
}

// LLMAdapter talks to any OpenAI-compatible chat completion endpoint
type LLMAdapter struct {
	client     *openai.Client
	model      string
	maxRetries int
	backoff    time.Duration
	logger     *zap.Logger
}

// NewLLMAdapter creates a new LLM adapter. baseURL is the API root without the /v1 suffix.
func NewLLMAdapter(baseURL, apiKey, modelID string, httpClient *http.Client) *LLMAdapter {
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = strings.TrimRight(baseURL, "/") + "/v1"
	if httpClient != nil {
		config.HTTPClient = httpClient
	}

	return &LLMAdapter{
		client:     openai.NewClientWithConfig(config),
		model:      modelID,
		maxRetries: 3,
		backoff:    time.Second,
		logger:     logger.Named("llm"),
	}
}

// Complete sends one chat completion request and returns the first choice's content
func (a *LLMAdapter) Complete(ctx context.Context, systemPrompt, userMsg string) (string, error) {
	currentModel := a.model
	req := openai.ChatCompletionRequest{
		Model: currentModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userMsg},
		},
		Temperature: 0.7,
	}

	// Retry with linear backoff; client errors are not retried
	var resp openai.ChatCompletionResponse
	var err error
	for attempt := 0; attempt < a.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * a.backoff
			a.logger.Warn("Retrying LLM request",
				zap.Int("attempt", attempt+1),
				zap.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		resp, err = a.client.CreateChatCompletion(ctx, req)
		if err == nil {
			break
		}

		a.logger.Error("LLM request failed",
			zap.Error(err),
			zap.Int("attempt", attempt+1),
			zap.String("model", currentModel),
		)
		if ctx.Err() != nil || !retryable(err) {
			break
		}
	}

	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", apperrors.NewUpstreamFailed("LLM", statusOf(err), err)
	}
	if len(resp.Choices) == 0 {
		return "", apperrors.NewUpstreamFailed("LLM", 0, fmt.Errorf("no choices in LLM response"))
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	a.logger.Debug("LLM response generated",
		zap.String("model", currentModel),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
	)
	return content, nil
}

func retryable(err error) bool {
	status := statusOf(err)
	return status == 0 || status == http.StatusTooManyRequests || status >= 500
}

func statusOf(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
