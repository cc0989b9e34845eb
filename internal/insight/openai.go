package insight

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"taskboard.app/server/core/config"
)

type openaiProvider struct {
	client openai.Client
	model  string
	apiKey string
}

// newOpenAIProvider creates a Provider backed by the OpenAI chat completions
// API. With no API key configured, Generate is a silent no-op.
func newOpenAIProvider(cfg config.OpenAIConfig) Provider {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o"
	}

	return &openaiProvider{
		client: openai.NewClient(opts...),
		model:  model,
		apiKey: cfg.APIKey,
	}
}

func (p *openaiProvider) Generate(ctx context.Context, systemPrompt, userPrompt string, timeout time.Duration) (string, error) {
	if p.apiKey == "" {
		return "", nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Model: p.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		Temperature: openai.Float(0.2),
		MaxTokens:   openai.Int(2000),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		},
	}

	start := time.Now()
	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", p.classify(ctx, err)
	}

	slog.DebugContext(ctx, "openai chat completed",
		"model", p.model,
		"duration_ms", time.Since(start).Milliseconds(),
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens)

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in openai response", ErrMalformed)
	}

	return resp.Choices[0].Message.Content, nil
}

// classify maps SDK failures onto the provider error taxonomy.
func (p *openaiProvider) classify(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		// Caller cancellation, not ours
		return err
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == 429 {
			return fmt.Errorf("%w: openai status 429", ErrRateLimited)
		}
		return fmt.Errorf("%w: openai status %d", ErrNetwork, apiErr.StatusCode)
	}

	return fmt.Errorf("%w: %v", ErrNetwork, err)
}
