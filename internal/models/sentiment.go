package models

import "time"

// Sentiment labels produced by the classifier.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// HeadlineScore is the classifier verdict for a single headline.
type HeadlineScore struct {
	Headline   string             `json:"headline"`
	Sentiment  string             `json:"sentiment"`
	Scores     map[string]float64 `json:"scores"`
	Confidence float64            `json:"confidence"`
}

// SentimentSummary aggregates per-headline classifier results for a ticker.
// AvgScore is in [-1, 1]; the three ratios sum to 1 whenever TotalHeadlines > 0.
type SentimentSummary struct {
	Ticker         string          `json:"ticker"`
	AvgSentiment   string          `json:"avg_sentiment"`
	AvgScore       float64         `json:"avg_score"`
	PositiveRatio  float64         `json:"positive_ratio"`
	NegativeRatio  float64         `json:"negative_ratio"`
	NeutralRatio   float64         `json:"neutral_ratio"`
	TotalHeadlines int             `json:"total_headlines"`
	Details        []HeadlineScore `json:"details,omitempty"`
}

// SentimentRecord is a persisted per-headline sentiment row.
type SentimentRecord struct {
	ID        int64     `json:"id"`
	Ticker    string    `json:"ticker"`
	Headline  string    `json:"headline"`
	Sentiment string    `json:"sentiment"`
	Score     float64   `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}
