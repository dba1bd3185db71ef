package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/stylecast/wardrobe/internal/metrics"
)

var (
	ErrCompletionFailed = errors.New("llm completion failed")
)

// CompletionParseError reports a completion that is not a JSON object. It is not retried.
type CompletionParseError struct {
	Content string
	Err     error
}

func (e *CompletionParseError) Error() string {
	return fmt.Sprintf("llm returned invalid JSON: %v", e.Err)
}

func (e *CompletionParseError) Unwrap() error {
	return e.Err
}

// Completer sends one prompt to a language model and returns the raw reply,
// which was requested in JSON mode.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// OpenAICompleter implements Completer with the chat completions API.
type OpenAICompleter struct {
	client *openai.Client
	model  string
}

// NewOpenAICompleter creates a completer for model. baseURL is optional and
// points the client at an OpenAI-compatible server.
func NewOpenAICompleter(apiKey, model, baseURL string) *OpenAICompleter {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAICompleter{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (c *OpenAICompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion has no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// LLMService charges the daily quota and then asks the model for a JSON object.
type LLMService struct {
	completer   Completer
	rateLimiter *RateLimitService
	metrics     metrics.Recorder
}

func NewLLMService(completer Completer, rateLimiter *RateLimitService, recorder metrics.Recorder) *LLMService {
	return &LLMService{
		completer:   completer,
		rateLimiter: rateLimiter,
		metrics:     recorder,
	}
}

// Complete returns the model's reply to prompt decoded as a JSON object.
// ErrRateLimitExceeded is returned without calling the model.
func (s *LLMService) Complete(ctx context.Context, prompt, userID string) (map[string]any, error) {
	if err := s.rateLimiter.CheckAndIncrement(ctx, userID); err != nil {
		return nil, err
	}

	start := time.Now()
	content, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		s.metrics.RecordCompletion(metrics.CompletionFailure, time.Since(start))
		slog.Error("llm completion failed", "error", err, "user_id", userID)
		return nil, fmt.Errorf("%w: %w", ErrCompletionFailed, err)
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(content), &result); err != nil || result == nil {
		s.metrics.RecordCompletion(metrics.CompletionParseFailed, time.Since(start))
		if err == nil {
			err = errors.New("top-level value is not an object")
		}
		slog.Error("llm returned invalid JSON", "error", err, "user_id", userID, "content_length", len(content))
		return nil, &CompletionParseError{Content: content, Err: err}
	}

	s.metrics.RecordCompletion(metrics.CompletionSuccess, time.Since(start))
	return result, nil
}
