package models

import "github.com/Navneeth18/trading-agent/internal/indicators"

// Indicators bundles the computed technical indicator values for a run.
type Indicators struct {
	RSI  float64               `json:"rsi"`
	MACD indicators.MACDResult `json:"macd"`
}

// TechnicalSummary is the output of the technical analysis stage: indicator
// values plus the specialist model's free-form narrative.
type TechnicalSummary struct {
	Ticker     string     `json:"ticker"`
	Indicators Indicators `json:"indicators"`
	Analysis   string     `json:"analysis"`
}

// AnalysisState carries one ticker through the pipeline. It is created empty
// at run start, populated stage by stage, and discarded after persistence and
// display. A non-empty Err terminates the run: every later stage is a no-op.
type AnalysisState struct {
	Ticker    string            `json:"ticker"`
	Quote     *Quote            `json:"market_data,omitempty"`
	History   []Bar             `json:"price_history,omitempty"`
	Headlines []string          `json:"headlines,omitempty"`
	Sentiment *SentimentSummary `json:"sentiment_data,omitempty"`
	Technical *TechnicalSummary `json:"technical_data,omitempty"`
	Decision  *Decision         `json:"decision,omitempty"`
	Err       string            `json:"error,omitempty"`
}

// NewAnalysisState returns an empty state for the given ticker.
func NewAnalysisState(ticker string) *AnalysisState {
	return &AnalysisState{Ticker: ticker}
}

// Failed reports whether the run has hit a terminal error.
func (s *AnalysisState) Failed() bool {
	return s.Err != ""
}
