package optimize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	defaultOllamaBaseURL = "http://localhost:11434"
	defaultOllamaModel   = "llama3.2"
)

// OllamaBackend calls a local Ollama server. No API key needed; the model
// must already be pulled (`ollama pull llama3.2`).
type OllamaBackend struct {
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	Client      *http.Client
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

// Generate sends one non-streaming generate request to the local server.
func (o *OllamaBackend) Generate(ctx context.Context, system, user string) (string, error) {
	base := strings.TrimRight(o.BaseURL, "/")
	if base == "" {
		base = defaultOllamaBaseURL
	}
	model := o.Model
	if model == "" {
		model = defaultOllamaModel
	}
	maxTokens := o.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 8000
	}

	reqBody := ollamaRequest{
		Model:  model,
		Prompt: system + "\n\n" + user,
		Stream: false,
		Options: ollamaOptions{
			Temperature: o.Temperature,
			NumPredict:  maxTokens,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/api/generate", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := o.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling Ollama at %s (is `ollama serve` running?): %w", base, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Ollama returned %d: %s", resp.StatusCode, string(body))
	}

	var oResp ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&oResp); err != nil {
		return "", fmt.Errorf("decoding Ollama response: %w", err)
	}
	return oResp.Response, nil
}
