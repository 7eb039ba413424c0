package models

import "time"

// Action is the final trade call rendered by the portfolio manager.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// Confidence is the portfolio manager's stated conviction in its call.
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// Decision is the portfolio manager's verdict for a single run. It is created
// once by the decision stage and never mutated afterward. Approved is true
// iff the action is BUY or SELL.
type Decision struct {
	Ticker      string     `json:"ticker"`
	Action      Action     `json:"action"`
	Confidence  Confidence `json:"confidence"`
	Reasoning   string     `json:"reasoning"`
	Thinking    string     `json:"thinking,omitempty"`
	Approved    bool       `json:"approved"`
	RawResponse string     `json:"raw_response,omitempty"`
}

// TradeRecord is a denormalized trade-ledger row. Rows are append-only and
// immutable after insertion; the Timestamp is assigned by the database.
type TradeRecord struct {
	ID               int64     `json:"id"`
	Ticker           string    `json:"ticker"`
	Action           string    `json:"action"`
	Price            float64   `json:"price"`
	Quantity         int       `json:"quantity"`
	Reasoning        string    `json:"reasoning"`
	SentimentAvg     float64   `json:"sentiment_avg"`
	RSI              float64   `json:"rsi"`
	MACD             float64   `json:"macd"`
	Approved         bool      `json:"approved"`
	ManagerReasoning string    `json:"portfolio_manager_reasoning"`
	Timestamp        time.Time `json:"timestamp"`
}
