package workflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Navneeth18/trading-agent/internal/models"
)

type fakeQuotes struct {
	quote *models.Quote
	err   error
}

func (f *fakeQuotes) GetQuote(_ context.Context, _ string) (*models.Quote, error) {
	return f.quote, f.err
}

type fakeNews struct {
	headlines []string
	err       error
}

func (f *fakeNews) GetHeadlines(_ context.Context, _ string, _ int) ([]string, error) {
	return f.headlines, f.err
}

type fakeHistory struct {
	bars []models.Bar
	err  error
}

func (f *fakeHistory) GetPriceHistory(_ string, _ int) ([]models.Bar, error) {
	return f.bars, f.err
}

type fakeSentiment struct {
	summary *models.SentimentSummary
	err     error
	calls   int
}

func (f *fakeSentiment) AnalyzeNews(_ context.Context, _ string, _ []string) (*models.SentimentSummary, error) {
	f.calls++
	return f.summary, f.err
}

type fakeTechnical struct {
	summary *models.TechnicalSummary
	err     error
}

func (f *fakeTechnical) Analyze(_ context.Context, _ string, _ *models.Quote, _ []float64) (*models.TechnicalSummary, error) {
	return f.summary, f.err
}

type fakeManager struct {
	decision *models.Decision
	history  []models.TradeRecord
}

func (f *fakeManager) MakeDecision(_ context.Context, _ string, _ *models.SentimentSummary, _ *models.TechnicalSummary, _ *models.Quote, history []models.TradeRecord) *models.Decision {
	f.history = history
	return f.decision
}

type fakeLedger struct {
	recent    []models.TradeRecord
	recentErr error
	inserted  []*models.TradeRecord
	insertErr error
}

func (f *fakeLedger) RecentTrades(_ context.Context, _ string, _ int) ([]models.TradeRecord, error) {
	return f.recent, f.recentErr
}

func (f *fakeLedger) InsertTrade(_ context.Context, trade *models.TradeRecord) (int64, error) {
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	f.inserted = append(f.inserted, trade)
	return int64(len(f.inserted)), nil
}

func bars(closes ...float64) []models.Bar {
	out := make([]models.Bar, len(closes))
	for i, c := range closes {
		out[i] = models.Bar{
			Date:  time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Close: decimal.NewFromFloat(c),
		}
	}
	return out
}

func happyDeps() (Deps, *fakeLedger, *fakeManager) {
	ledger := &fakeLedger{}
	manager := &fakeManager{decision: &models.Decision{
		Ticker:     "AAPL",
		Action:     models.ActionBuy,
		Confidence: models.ConfidenceHigh,
		Reasoning:  "Signals align.",
		Approved:   true,
	}}

	deps := Deps{
		Quotes: &fakeQuotes{quote: &models.Quote{
			Ticker: "AAPL", CurrentPrice: 150.0, Change: 1.5, PercentChange: 1.0,
			High: 151, Low: 148, PreviousClose: 148.5,
		}},
		News:    &fakeNews{headlines: []string{"a", "b", "c"}},
		History: &fakeHistory{bars: bars(148, 149, 150, 151, 150, 152)},
		Sentiment: &fakeSentiment{summary: &models.SentimentSummary{
			Ticker: "AAPL", AvgSentiment: models.SentimentPositive, AvgScore: 2.0 / 3.0,
			PositiveRatio: 2.0 / 3.0, NeutralRatio: 1.0 / 3.0, TotalHeadlines: 3,
		}},
		Technical: &fakeTechnical{summary: &models.TechnicalSummary{
			Ticker:     "AAPL",
			Indicators: models.Indicators{RSI: 62.5},
			Analysis:   "bullish",
		}},
		Manager: manager,
		Ledger:  ledger,
	}
	return deps, ledger, manager
}

func TestRunHappyPath(t *testing.T) {
	deps, ledger, _ := happyDeps()
	w := New(deps)

	state := w.Run(context.Background(), "AAPL")

	require.False(t, state.Failed())
	require.NotNil(t, state.Decision)
	assert.Equal(t, models.ActionBuy, state.Decision.Action)
	assert.InDelta(t, 2.0/3.0, state.Sentiment.AvgScore, 1e-9)

	require.Len(t, ledger.inserted, 1)
	trade := ledger.inserted[0]
	assert.Equal(t, "AAPL", trade.Ticker)
	assert.Equal(t, "BUY", trade.Action)
	assert.Equal(t, 150.0, trade.Price)
	assert.Equal(t, 0, trade.Quantity, "position sizing is unimplemented")
	assert.True(t, trade.Approved)
}

func TestRunQuoteFailureFailsRun(t *testing.T) {
	deps, ledger, _ := happyDeps()
	deps.Quotes = &fakeQuotes{err: errors.New("no trade data")}
	sentiment := deps.Sentiment.(*fakeSentiment)
	w := New(deps)

	state := w.Run(context.Background(), "AAPL")

	assert.True(t, state.Failed())
	assert.Contains(t, state.Err, "Data ingestion error")
	assert.Nil(t, state.Decision)
	assert.Zero(t, sentiment.calls, "downstream stages must be skipped")
	assert.Empty(t, ledger.inserted)
}

func TestRunHeadlineFailureIsBestEffort(t *testing.T) {
	deps, _, _ := happyDeps()
	deps.News = &fakeNews{err: errors.New("rate limited")}
	w := New(deps)

	state := w.Run(context.Background(), "AAPL")

	require.False(t, state.Failed())
	assert.Empty(t, state.Headlines)
	assert.NotNil(t, state.Decision)
}

func TestRunEmptyHistoryFailsTechnicalStage(t *testing.T) {
	deps, ledger, _ := happyDeps()
	deps.History = &fakeHistory{}
	w := New(deps)

	state := w.Run(context.Background(), "AAPL")

	assert.True(t, state.Failed())
	assert.Equal(t, "No price history available for technical analysis", state.Err)
	assert.Empty(t, ledger.inserted)
}

func TestSentimentStageShortCircuitsOnError(t *testing.T) {
	deps, _, _ := happyDeps()
	sentiment := deps.Sentiment.(*fakeSentiment)
	w := New(deps)

	state := models.NewAnalysisState("AAPL")
	state.Err = "Data ingestion error: boom"
	before := *state

	after := w.AnalyzeSentiment(context.Background(), state)

	assert.Equal(t, before, *after, "state must pass through unchanged")
	assert.Zero(t, sentiment.calls)
}

func TestDecideFeedsLedgerHistoryIntoPrompt(t *testing.T) {
	deps, ledger, manager := happyDeps()
	ledger.recent = []models.TradeRecord{
		{Ticker: "AAPL", Action: "HOLD", Price: 149.0},
		{Ticker: "AAPL", Action: "BUY", Price: 145.0},
	}
	w := New(deps)

	state := w.Run(context.Background(), "AAPL")

	require.False(t, state.Failed())
	assert.Equal(t, ledger.recent, manager.history)
}

func TestDecideLedgerWriteFailureFailsRun(t *testing.T) {
	deps, ledger, _ := happyDeps()
	ledger.insertErr = errors.New("connection reset")
	w := New(deps)

	state := w.Run(context.Background(), "AAPL")

	assert.True(t, state.Failed())
	assert.Contains(t, state.Err, "Portfolio manager error")
	assert.Nil(t, state.Decision, "decision must not land when the ledger write fails")
}

func TestRunBatchIsolatesFailures(t *testing.T) {
	deps, _, _ := happyDeps()
	quotes := &fakeQuotes{}
	deps.Quotes = quotes
	w := New(deps)

	quotes.err = errors.New("provider down")
	states := w.RunBatch(context.Background(), []string{"AAPL", "MSFT"})

	require.Len(t, states, 2)
	assert.Equal(t, "AAPL", states[0].Ticker)
	assert.Equal(t, "MSFT", states[1].Ticker)
	assert.True(t, states[0].Failed())
	assert.True(t, states[1].Failed())
	assert.NotSame(t, states[0], states[1])
}

func TestTerminalStateIsDecisionXorError(t *testing.T) {
	deps, _, _ := happyDeps()
	w := New(deps)

	ok := w.Run(context.Background(), "AAPL")
	assert.NotNil(t, ok.Decision)
	assert.False(t, ok.Failed())

	deps.History = &fakeHistory{}
	w = New(deps)
	failed := w.Run(context.Background(), "AAPL")
	assert.Nil(t, failed.Decision)
	assert.True(t, failed.Failed())
}
