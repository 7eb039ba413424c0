package agents

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Navneeth18/trading-agent/internal/llm"
	"github.com/Navneeth18/trading-agent/internal/models"
)

type fakeLLM struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeLLM) Generate(_ context.Context, _, prompt string, _ time.Duration) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func testQuote() *models.Quote {
	return &models.Quote{
		Ticker:        "AAPL",
		CurrentPrice:  150.0,
		Change:        1.5,
		PercentChange: 1.0,
		High:          151,
		Low:           148,
		PreviousClose: 148.5,
	}
}

func testSentiment() *models.SentimentSummary {
	return &models.SentimentSummary{
		Ticker:         "AAPL",
		AvgSentiment:   models.SentimentPositive,
		AvgScore:       0.67,
		PositiveRatio:  0.67,
		NeutralRatio:   0.33,
		TotalHeadlines: 3,
	}
}

func risingCloses(n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	return closes
}

func TestTechnicalSpecialistAnalyze(t *testing.T) {
	model := &fakeLLM{response: "RSI shows overbought conditions; momentum remains bullish."}
	ts := NewTechnicalSpecialist(model, "llama3.2")

	summary, err := ts.Analyze(context.Background(), "AAPL", testQuote(), risingCloses(30))
	require.NoError(t, err)

	assert.Equal(t, 100.0, summary.Indicators.RSI)
	assert.Equal(t, model.response, summary.Analysis)

	require.Len(t, model.prompts, 1)
	assert.Contains(t, model.prompts[0], "AAPL")
	assert.Contains(t, model.prompts[0], "RSI (14): 100.00")
}

func TestTechnicalSpecialistModelFailureIsNonFatal(t *testing.T) {
	ts := NewTechnicalSpecialist(&fakeLLM{err: llm.ErrUnavailable}, "llama3.2")

	summary, err := ts.Analyze(context.Background(), "AAPL", testQuote(), risingCloses(30))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(summary.Analysis, "Technical analysis unavailable:"))
	assert.Equal(t, 100.0, summary.Indicators.RSI, "indicators survive a model failure")
}

func TestPortfolioManagerMakeDecision(t *testing.T) {
	model := &fakeLLM{response: "<think>signals align, risk acceptable</think>\nDECISION: BUY\nCONFIDENCE: HIGH\nREASONING: Sentiment and momentum agree."}
	pm := NewPortfolioManager(model, "deepseek-r1:7b")

	tech := &models.TechnicalSummary{Ticker: "AAPL", Analysis: "bullish"}
	decision := pm.MakeDecision(context.Background(), "AAPL", testSentiment(), tech, testQuote(), nil)

	assert.Equal(t, models.ActionBuy, decision.Action)
	assert.Equal(t, models.ConfidenceHigh, decision.Confidence)
	assert.Equal(t, "Sentiment and momentum agree.", decision.Reasoning)
	assert.Equal(t, "signals align, risk acceptable", decision.Thinking)
	assert.True(t, decision.Approved)
	assert.Equal(t, model.response, decision.RawResponse)
}

func TestPortfolioManagerHoldIsNotApproved(t *testing.T) {
	model := &fakeLLM{response: "DECISION: HOLD\nCONFIDENCE: MEDIUM\nREASONING: Mixed signals."}
	pm := NewPortfolioManager(model, "deepseek-r1:7b")

	tech := &models.TechnicalSummary{Ticker: "AAPL"}
	decision := pm.MakeDecision(context.Background(), "AAPL", testSentiment(), tech, testQuote(), nil)

	assert.Equal(t, models.ActionHold, decision.Action)
	assert.False(t, decision.Approved)
}

func TestPortfolioManagerModelFailureDegradesToHold(t *testing.T) {
	pm := NewPortfolioManager(&fakeLLM{err: llm.ErrUnavailable}, "deepseek-r1:7b")

	tech := &models.TechnicalSummary{Ticker: "AAPL"}
	decision := pm.MakeDecision(context.Background(), "AAPL", testSentiment(), tech, testQuote(), nil)

	assert.Equal(t, models.ActionHold, decision.Action)
	assert.Equal(t, models.ConfidenceLow, decision.Confidence)
	assert.True(t, strings.HasPrefix(decision.Reasoning, "Error in decision making:"))
	assert.False(t, decision.Approved)
	assert.Empty(t, decision.Thinking)
	assert.Empty(t, decision.RawResponse)
}

func TestDecisionPromptEmbedsHistory(t *testing.T) {
	model := &fakeLLM{response: "DECISION: HOLD"}
	pm := NewPortfolioManager(model, "deepseek-r1:7b")

	history := []models.TradeRecord{
		{Ticker: "AAPL", Action: "BUY", Price: 145.2, Approved: true, Reasoning: "breakout",
			Timestamp: time.Date(2026, 8, 20, 15, 30, 0, 0, time.UTC)},
	}
	tech := &models.TechnicalSummary{Ticker: "AAPL"}
	pm.MakeDecision(context.Background(), "AAPL", testSentiment(), tech, testQuote(), history)

	require.Len(t, model.prompts, 1)
	assert.Contains(t, model.prompts[0], "2026-08-20: BUY @ $145.20 (approved=true): breakout")
}

func TestDecisionPromptWithoutHistory(t *testing.T) {
	model := &fakeLLM{response: "DECISION: HOLD"}
	pm := NewPortfolioManager(model, "deepseek-r1:7b")

	tech := &models.TechnicalSummary{Ticker: "AAPL"}
	pm.MakeDecision(context.Background(), "AAPL", testSentiment(), tech, testQuote(), nil)

	require.Len(t, model.prompts, 1)
	assert.Contains(t, model.prompts[0], "No prior decisions recorded.")
}
