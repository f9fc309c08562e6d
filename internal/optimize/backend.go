// Package optimize tailors the resume to a job posting through a single
// generative AI call: fetch the posting, build the prompt, call the
// provider, and write the optimized resume, cover letter, and changelog.
package optimize

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/tnguyen/resume-engine/internal/config"
	"github.com/tnguyen/resume-engine/internal/secrets"
)

// Backend abstracts the generative AI provider so tests can supply a mock.
// Generate sends one system/user prompt pair and returns the raw response
// text.
type Backend interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// Provider names accepted by NewBackend.
const (
	ProviderClaude = "claude"
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

// NewBackend builds the provider selected by cfg.Provider. API keys come
// from cfg.APIKey when set, otherwise from the loaded .secrets/ map (with
// environment fallback). A nil client gets a provider-appropriate timeout.
func NewBackend(cfg config.AI, secs map[string]string, client *http.Client) (Backend, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = ProviderClaude
	}

	switch provider {
	case ProviderClaude:
		key := cfg.APIKey
		if key == "" {
			key = secrets.Get(secs, "anthropic-api-key")
		}
		if key == "" {
			return nil, fmt.Errorf("claude provider: no API key: add .secrets/anthropic-api-key or set RESUME_ENGINE_ANTHROPIC_API_KEY")
		}
		if client == nil {
			client = &http.Client{Timeout: 2 * time.Minute}
		}
		return &ClaudeBackend{
			APIKey:      key,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			Client:      client,
		}, nil

	case ProviderGemini:
		key := cfg.APIKey
		if key == "" {
			key = secrets.Get(secs, "gemini-api-key")
		}
		if key == "" {
			return nil, fmt.Errorf("gemini provider: no API key: add .secrets/gemini-api-key or set RESUME_ENGINE_GEMINI_API_KEY")
		}
		if client == nil {
			client = &http.Client{Timeout: 2 * time.Minute}
		}
		return &GeminiBackend{
			APIKey:      key,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			Client:      client,
		}, nil

	case ProviderOllama:
		if client == nil {
			// Local models can take minutes on long prompts.
			client = &http.Client{Timeout: 5 * time.Minute}
		}
		return &OllamaBackend{
			BaseURL:     cfg.OllamaBaseURL,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			Client:      client,
		}, nil

	default:
		return nil, fmt.Errorf("unknown provider %q: use claude, gemini, or ollama", cfg.Provider)
	}
}

// backoffBase controls the base duration for exponential backoff between
// failed provider calls. Tests override this to avoid real sleeps.
var backoffBase = time.Second

// callWithRetry calls the backend with exponential backoff on error.
func callWithRetry(ctx context.Context, backend Backend, system, user string, maxRetries int) (string, error) {
	if maxRetries <= 0 {
		maxRetries = 3
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		content, err := backend.Generate(ctx, system, user)
		if err == nil {
			return content, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("after %d retries: %w", maxRetries, lastErr)
}
