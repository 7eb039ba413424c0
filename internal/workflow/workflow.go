// Package workflow runs the four-stage analysis pipeline for each ticker:
// data ingestion, sentiment scoring, technical analysis, and the final
// portfolio decision. Stages execute strictly in order; the first error
// recorded on the state turns every later stage into a no-op.
package workflow

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Navneeth18/trading-agent/internal/models"
)

// ledgerContextSize is how many prior ledger rows feed back into the
// decision prompt.
const ledgerContextSize = 5

// QuoteFetcher provides real-time market snapshots.
type QuoteFetcher interface {
	GetQuote(ctx context.Context, symbol string) (*models.Quote, error)
}

// HeadlineFetcher provides recent news headlines. Best-effort: callers treat
// failures as "no news".
type HeadlineFetcher interface {
	GetHeadlines(ctx context.Context, symbol string, limit int) ([]string, error)
}

// HistoryFetcher provides the trailing daily price history.
type HistoryFetcher interface {
	GetPriceHistory(symbol string, days int) ([]models.Bar, error)
}

// SentimentAnalyst aggregates classifier output over a headline list.
type SentimentAnalyst interface {
	AnalyzeNews(ctx context.Context, ticker string, headlines []string) (*models.SentimentSummary, error)
}

// TechnicalAnalyst computes indicators and narrates them.
type TechnicalAnalyst interface {
	Analyze(ctx context.Context, ticker string, quote *models.Quote, closes []float64) (*models.TechnicalSummary, error)
}

// DecisionMaker renders the final call. It never fails: model errors degrade
// to a default HOLD decision.
type DecisionMaker interface {
	MakeDecision(ctx context.Context, ticker string, sent *models.SentimentSummary, tech *models.TechnicalSummary, quote *models.Quote, history []models.TradeRecord) *models.Decision
}

// Ledger is the trade-ledger surface the pipeline needs: read recent rows
// for decision context, append one row per completed run.
type Ledger interface {
	RecentTrades(ctx context.Context, ticker string, limit int) ([]models.TradeRecord, error)
	InsertTrade(ctx context.Context, trade *models.TradeRecord) (int64, error)
}

// Deps bundles the pipeline collaborators.
type Deps struct {
	Quotes    QuoteFetcher
	News      HeadlineFetcher
	History   HistoryFetcher
	Sentiment SentimentAnalyst
	Technical TechnicalAnalyst
	Manager   DecisionMaker
	Ledger    Ledger

	HeadlineLimit int
	HistoryDays   int
}

// Workflow executes the analysis pipeline.
type Workflow struct {
	deps Deps
}

// New creates a workflow from its collaborators.
func New(deps Deps) *Workflow {
	if deps.HeadlineLimit <= 0 {
		deps.HeadlineLimit = 10
	}
	if deps.HistoryDays <= 0 {
		deps.HistoryDays = 30
	}
	return &Workflow{deps: deps}
}

// Run executes the full pipeline for a single ticker. The returned state is
// terminal: either Decision or Err is populated, never both.
func (w *Workflow) Run(ctx context.Context, ticker string) *models.AnalysisState {
	state := models.NewAnalysisState(ticker)
	state = w.Ingest(ctx, state)
	state = w.AnalyzeSentiment(ctx, state)
	state = w.AnalyzeTechnical(ctx, state)
	state = w.Decide(ctx, state)

	if state.Failed() {
		logrus.WithField("ticker", ticker).WithField("error", state.Err).Warn("Analysis run failed")
	} else {
		logrus.WithFields(logrus.Fields{
			"ticker":   ticker,
			"decision": state.Decision.Action,
		}).Info("Analysis run complete")
	}
	return state
}

// RunBatch runs the pipeline for each ticker strictly sequentially, one run
// to completion before the next begins. A failed ticker never affects the
// others. Results preserve the input order.
func (w *Workflow) RunBatch(ctx context.Context, tickers []string) []*models.AnalysisState {
	states := make([]*models.AnalysisState, 0, len(tickers))
	for _, ticker := range tickers {
		logrus.WithField("ticker", ticker).Info("Processing")
		states = append(states, w.Run(ctx, ticker))
	}
	return states
}

// Ingest fetches the quote, headlines, and price history. A missing quote
// fails the run; headline and history failures are best-effort because later
// stages handle their absence.
func (w *Workflow) Ingest(ctx context.Context, state *models.AnalysisState) *models.AnalysisState {
	if state.Failed() {
		return state
	}

	quote, err := w.deps.Quotes.GetQuote(ctx, state.Ticker)
	if err != nil {
		state.Err = fmt.Sprintf("Data ingestion error: failed to fetch market data for %s: %v", state.Ticker, err)
		return state
	}
	state.Quote = quote

	headlines, err := w.deps.News.GetHeadlines(ctx, state.Ticker, w.deps.HeadlineLimit)
	if err != nil {
		logrus.WithField("ticker", state.Ticker).WithError(err).Warn("Headline fetch failed, continuing without news")
		headlines = nil
	}
	state.Headlines = headlines

	history, err := w.deps.History.GetPriceHistory(state.Ticker, w.deps.HistoryDays)
	if err != nil {
		logrus.WithField("ticker", state.Ticker).WithError(err).Warn("Price history fetch failed")
		history = nil
	}
	state.History = history

	return state
}

// AnalyzeSentiment scores the ingested headlines.
func (w *Workflow) AnalyzeSentiment(ctx context.Context, state *models.AnalysisState) *models.AnalysisState {
	if state.Failed() {
		return state
	}

	summary, err := w.deps.Sentiment.AnalyzeNews(ctx, state.Ticker, state.Headlines)
	if err != nil {
		state.Err = fmt.Sprintf("Sentiment analysis error: %v", err)
		return state
	}
	state.Sentiment = summary
	return state
}

// AnalyzeTechnical computes indicators and the narrative. An empty price
// history is a hard error for the run.
func (w *Workflow) AnalyzeTechnical(ctx context.Context, state *models.AnalysisState) *models.AnalysisState {
	if state.Failed() {
		return state
	}

	if len(state.History) == 0 {
		state.Err = "No price history available for technical analysis"
		return state
	}

	summary, err := w.deps.Technical.Analyze(ctx, state.Ticker, state.Quote, models.Closes(state.History))
	if err != nil {
		state.Err = fmt.Sprintf("Technical analysis error: %v", err)
		return state
	}
	state.Technical = summary
	return state
}

// Decide reads recent ledger rows for context, renders the final decision,
// and appends one ledger row. The decision only lands on the state once the
// ledger write succeeds.
func (w *Workflow) Decide(ctx context.Context, state *models.AnalysisState) *models.AnalysisState {
	if state.Failed() {
		return state
	}

	if state.Quote == nil || state.Sentiment == nil || state.Technical == nil {
		state.Err = "Portfolio manager error: missing market, sentiment, or technical data"
		return state
	}

	history, err := w.deps.Ledger.RecentTrades(ctx, state.Ticker, ledgerContextSize)
	if err != nil {
		state.Err = fmt.Sprintf("Portfolio manager error: %v", err)
		return state
	}

	decision := w.deps.Manager.MakeDecision(ctx, state.Ticker, state.Sentiment, state.Technical, state.Quote, history)

	// Position sizing does not exist; every ledger row records quantity 0.
	trade := &models.TradeRecord{
		Ticker:           state.Ticker,
		Action:           string(decision.Action),
		Price:            state.Quote.CurrentPrice,
		Quantity:         0,
		Reasoning:        decision.Reasoning,
		SentimentAvg:     state.Sentiment.AvgScore,
		RSI:              state.Technical.Indicators.RSI,
		MACD:             state.Technical.Indicators.MACD.MACD,
		Approved:         decision.Approved,
		ManagerReasoning: decision.Thinking,
	}
	if _, err := w.deps.Ledger.InsertTrade(ctx, trade); err != nil {
		state.Err = fmt.Sprintf("Portfolio manager error: %v", err)
		return state
	}

	state.Decision = decision
	return state
}
