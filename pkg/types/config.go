package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests. Job
	// boards routinely reject requests without a browser User-Agent.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// AIConfig holds shared settings for calling a generative AI provider.
type AIConfig struct {
	// Provider selects the backend: claude, gemini, or ollama.
	Provider string `json:"provider" yaml:"provider" mapstructure:"provider"`

	// Model is the model identifier for the selected provider.
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// APIKey is the authentication key. Usually left empty here and
	// supplied through the .secrets/ directory instead.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// Temperature is the sampling temperature (default 0.7).
	Temperature float64 `json:"temperature" yaml:"temperature" mapstructure:"temperature"`

	// MaxTokens caps the response length (default 8000).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens" mapstructure:"max_tokens"`

	// MaxRetries is the number of retry attempts for failed API calls
	// (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`

	// OllamaBaseURL is the local Ollama server address.
	OllamaBaseURL string `json:"ollama_base_url" yaml:"ollama_base_url" mapstructure:"ollama_base_url"`
}

// OutputFormat selects a build output format.
type OutputFormat string

const (
	FormatDOCX OutputFormat = "docx"
	FormatPDF  OutputFormat = "pdf"
	FormatHTML OutputFormat = "html"
	FormatDOX  OutputFormat = "dox"
)
