package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is a real-time market snapshot for a single ticker.
type Quote struct {
	Ticker        string  `json:"ticker"`
	CurrentPrice  float64 `json:"current_price"`
	Change        float64 `json:"change"`
	PercentChange float64 `json:"percent_change"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Open          float64 `json:"open"`
	PreviousClose float64 `json:"previous_close"`
}

// Bar is a single daily OHLC bar. Prices are kept as decimals the way the
// upstream feed reports them; indicator math converts to float64.
type Bar struct {
	Date   time.Time       `json:"date"`
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Volume int64           `json:"volume"`
}

// Closes extracts the closing prices of a bar series in chronological order.
func Closes(history []Bar) []float64 {
	closes := make([]float64, len(history))
	for i, bar := range history {
		closes[i] = bar.Close.InexactFloat64()
	}
	return closes
}
