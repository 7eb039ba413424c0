// Package llm wraps the locally served language models behind a small
// generate-text interface.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrUnavailable marks any failure to obtain model output: timeouts,
// transport errors, HTTP errors, or an unparsable response body. Callers
// degrade to a default answer instead of aborting the run.
var ErrUnavailable = errors.New("language model unavailable")

// Client generates free-form text from a prompt, bounded by a wall-clock
// timeout.
type Client interface {
	Generate(ctx context.Context, model, prompt string, timeout time.Duration) (string, error)
}

// OllamaClient talks to the Ollama HTTP API.
type OllamaClient struct {
	client *resty.Client
}

// NewOllamaClient creates a client for the given Ollama base URL.
func NewOllamaClient(baseURL string) *OllamaClient {
	client := resty.New()
	client.SetBaseURL(baseURL)

	return &OllamaClient{client: client}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Generate runs a single non-streaming completion. Reasoning models may take
// minutes to answer, so the timeout is per call rather than per client.
func (oc *OllamaClient) Generate(ctx context.Context, model, prompt string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := oc.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(generateRequest{Model: model, Prompt: prompt, Stream: false}).
		Post("/api/generate")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("%w: API error %d: %s", ErrUnavailable, resp.StatusCode(), resp.String())
	}

	var result generateResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("%w: malformed response: %v", ErrUnavailable, err)
	}
	return result.Response, nil
}
