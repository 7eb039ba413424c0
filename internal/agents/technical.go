// Package agents holds the two model-backed specialists of the pipeline: the
// technical analyst that narrates indicator values and the portfolio manager
// that renders the final trade decision.
package agents

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Navneeth18/trading-agent/internal/indicators"
	"github.com/Navneeth18/trading-agent/internal/llm"
	"github.com/Navneeth18/trading-agent/internal/models"
)

// Indicator parameters, matching the textbook defaults.
const (
	rsiPeriod  = 14
	macdFast   = 12
	macdSlow   = 26
	macdSignal = 9
)

// TechnicalSpecialist computes RSI and MACD from the price history and asks
// a quick model for a short narrative interpretation.
type TechnicalSpecialist struct {
	llm     llm.Client
	model   string
	timeout time.Duration
}

// NewTechnicalSpecialist creates a specialist using the given model.
func NewTechnicalSpecialist(client llm.Client, model string) *TechnicalSpecialist {
	return &TechnicalSpecialist{
		llm:     client,
		model:   model,
		timeout: time.Minute,
	}
}

// Analyze computes the indicators and produces the narrative. A model
// failure is not fatal: the narrative degrades to a placeholder error string
// while the indicator values stay intact.
func (ts *TechnicalSpecialist) Analyze(ctx context.Context, ticker string, quote *models.Quote, closes []float64) (*models.TechnicalSummary, error) {
	ind := models.Indicators{
		RSI:  indicators.ComputeRSI(closes, rsiPeriod),
		MACD: indicators.ComputeMACD(closes, macdFast, macdSlow, macdSignal),
	}

	prompt := buildTechnicalPrompt(ticker, quote, ind)

	analysis, err := ts.llm.Generate(ctx, ts.model, prompt, ts.timeout)
	if err != nil {
		analysis = fmt.Sprintf("Technical analysis unavailable: %v", err)
		logrus.WithField("ticker", ticker).WithError(err).Warn("Technical narrative degraded to placeholder")
	}

	return &models.TechnicalSummary{
		Ticker:     ticker,
		Indicators: ind,
		Analysis:   analysis,
	}, nil
}

func buildTechnicalPrompt(ticker string, quote *models.Quote, ind models.Indicators) string {
	return fmt.Sprintf(`You are a technical analysis specialist. Analyze the following market data and technical indicators for %s:

Market Data:
- Current Price: $%.2f
- Change: $%.2f (%.2f%%)
- High: $%.2f
- Low: $%.2f
- Previous Close: $%.2f

Technical Indicators:
- RSI (14): %.2f
- MACD: %.4f
- MACD Signal: %.4f
- MACD Histogram: %.4f

Provide a concise technical analysis (2-3 sentences) focusing on:
1. RSI interpretation (overbought >70, oversold <30)
2. MACD trend and momentum
3. Overall technical signal (bullish/bearish/neutral)`,
		ticker,
		quote.CurrentPrice, quote.Change, quote.PercentChange,
		quote.High, quote.Low, quote.PreviousClose,
		ind.RSI, ind.MACD.MACD, ind.MACD.Signal, ind.MACD.Histogram,
	)
}
