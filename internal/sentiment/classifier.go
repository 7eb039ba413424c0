// Package sentiment scores news headlines with an external FinBERT-style
// classifier and aggregates the per-headline results into a single summary.
package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Labels the classifier distinguishes, in the order the service reports
// probabilities.
var Labels = []string{"negative", "neutral", "positive"}

// Classification is the classifier verdict for one piece of text: the
// arg-max label, the full probability distribution, and the winning
// probability as confidence.
type Classification struct {
	Sentiment  string             `json:"sentiment"`
	Scores     map[string]float64 `json:"scores"`
	Confidence float64            `json:"confidence"`
}

// Classifier scores a piece of text. Implementations are expected to be
// deterministic for identical input.
type Classifier interface {
	Classify(ctx context.Context, text string) (*Classification, error)
}

// HTTPClassifier talks to a FinBERT inference service over HTTP.
type HTTPClassifier struct {
	client *resty.Client
}

// NewHTTPClassifier creates a classifier client for the given service URL.
func NewHTTPClassifier(baseURL string) *HTTPClassifier {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(30 * time.Second)

	return &HTTPClassifier{client: client}
}

type classifyRequest struct {
	Text string `json:"text"`
}

// Classify sends the text to the inference service.
func (hc *HTTPClassifier) Classify(ctx context.Context, text string) (*Classification, error) {
	resp, err := hc.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(classifyRequest{Text: text}).
		Post("/classify")
	if err != nil {
		return nil, fmt.Errorf("failed to reach classifier: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("classifier error %d: %s", resp.StatusCode(), resp.String())
	}

	var result Classification
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse classifier response: %w", err)
	}
	return &result, nil
}
