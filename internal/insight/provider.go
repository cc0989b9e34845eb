package insight

import (
	"context"
	"time"

	"taskboard.app/server/core/config"
)

// Provider names for insight provider selection.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Provider generates raw model output (expected to be JSON) from a
// system/user prompt pair.
//
// The call is bounded by timeout; cancellation from ctx propagates into the
// underlying HTTP request. An unconfigured provider (no API key) returns
// ("", nil): a valid silent no-op, not a failure. Failures are classified into
// the sentinel errors in errors.go via errors.Is.
type Provider interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string, timeout time.Duration) (string, error)
}

// NewProvider selects a provider implementation from configuration.
// Unknown or empty provider names fall back to OpenAI. Selection happens once
// at startup; the insight service depends only on the Provider interface.
func NewProvider(cfg config.AIConfig) Provider {
	switch cfg.Provider {
	case ProviderGemini:
		return newGeminiProvider(cfg.Gemini)
	default:
		return newOpenAIProvider(cfg.OpenAI)
	}
}
