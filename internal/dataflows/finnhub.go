package dataflows

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/Navneeth18/trading-agent/internal/models"
)

// QuoteRecorder receives a copy of every successfully fetched quote.
type QuoteRecorder interface {
	InsertMarketQuote(ctx context.Context, quote *models.Quote) error
}

// FinnhubClient fetches real-time quotes and company news from the Finnhub
// REST API.
type FinnhubClient struct {
	client   *resty.Client
	recorder QuoteRecorder
	apiKey   string
}

// NewFinnhubClient creates a Finnhub client. The recorder may be nil, in
// which case quotes are not persisted.
func NewFinnhubClient(apiKey string, recorder QuoteRecorder) *FinnhubClient {
	client := resty.New()
	client.SetBaseURL("https://finnhub.io/api/v1")
	client.SetTimeout(10 * time.Second)

	return &FinnhubClient{
		client:   client,
		recorder: recorder,
		apiKey:   apiKey,
	}
}

// finnhubQuote mirrors the /quote response: c (current), d (change),
// dp (percent change), h (high), l (low), o (open), pc (previous close).
type finnhubQuote struct {
	Current       float64 `json:"c"`
	Change        float64 `json:"d"`
	PercentChange float64 `json:"dp"`
	High          float64 `json:"h"`
	Low           float64 `json:"l"`
	Open          float64 `json:"o"`
	PreviousClose float64 `json:"pc"`
}

// GetQuote fetches the real-time quote for a ticker. A zero current price
// means Finnhub has no trade data for the symbol, which fails the call.
func (fc *FinnhubClient) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	if fc.apiKey == "" {
		return nil, fmt.Errorf("finnhub API key not configured")
	}

	resp, err := fc.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"symbol": symbol,
			"token":  fc.apiKey,
		}).
		Get("/quote")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quote for %s: %w", symbol, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode(), resp.String())
	}

	var raw finnhubQuote
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse quote response: %w", err)
	}
	if raw.Current == 0 {
		return nil, fmt.Errorf("no trade data for %s", symbol)
	}

	quote := &models.Quote{
		Ticker:        symbol,
		CurrentPrice:  raw.Current,
		Change:        raw.Change,
		PercentChange: raw.PercentChange,
		High:          raw.High,
		Low:           raw.Low,
		Open:          raw.Open,
		PreviousClose: raw.PreviousClose,
	}

	if fc.recorder != nil {
		if err := fc.recorder.InsertMarketQuote(ctx, quote); err != nil {
			logrus.WithField("ticker", symbol).WithError(err).Warn("Failed to persist market quote")
		}
	}

	return quote, nil
}

// finnhubNews mirrors the relevant fields of a /company-news item.
type finnhubNews struct {
	DateTime int64  `json:"datetime"`
	Headline string `json:"headline"`
	Source   string `json:"source"`
}

// GetHeadlines fetches up to limit recent company news headlines, newest
// first, covering the trailing week.
func (fc *FinnhubClient) GetHeadlines(ctx context.Context, symbol string, limit int) ([]string, error) {
	if fc.apiKey == "" {
		return nil, fmt.Errorf("finnhub API key not configured")
	}

	to := time.Now()
	from := to.AddDate(0, 0, -7)

	resp, err := fc.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"symbol": symbol,
			"from":   from.Format("2006-01-02"),
			"to":     to.Format("2006-01-02"),
			"token":  fc.apiKey,
		}).
		Get("/company-news")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news for %s: %w", symbol, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode(), resp.String())
	}

	var items []finnhubNews
	if err := json.Unmarshal(resp.Body(), &items); err != nil {
		return nil, fmt.Errorf("failed to parse news response: %w", err)
	}

	headlines := make([]string, 0, limit)
	for _, item := range items {
		if item.Headline == "" {
			continue
		}
		headlines = append(headlines, item.Headline)
		if len(headlines) >= limit {
			break
		}
	}
	return headlines, nil
}
