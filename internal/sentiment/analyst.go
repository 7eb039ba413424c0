package sentiment

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Navneeth18/trading-agent/internal/models"
)

// Score thresholds for mapping the aggregate score onto a label.
const (
	positiveThreshold = 0.2
	negativeThreshold = -0.2
)

// ScoreRecorder receives every per-headline classifier result.
type ScoreRecorder interface {
	InsertSentimentScore(ctx context.Context, ticker, headline, sentiment string, score float64) error
}

// Analyst classifies headlines one by one and aggregates the results.
type Analyst struct {
	classifier Classifier
	recorder   ScoreRecorder
}

// NewAnalyst creates a sentiment analyst. The recorder may be nil, in which
// case per-headline results are not persisted.
func NewAnalyst(classifier Classifier, recorder ScoreRecorder) *Analyst {
	return &Analyst{classifier: classifier, recorder: recorder}
}

// AnalyzeNews scores each headline and derives the aggregate summary:
// score = (positive - negative) / total, mapped to a label with the fixed
// thresholds. With no headlines the classifier is never invoked and a
// neutral zero summary is returned. Each per-headline result is persisted
// individually; a persistence failure is logged and does not abort the
// remaining headlines.
func (a *Analyst) AnalyzeNews(ctx context.Context, ticker string, headlines []string) (*models.SentimentSummary, error) {
	if len(headlines) == 0 {
		return &models.SentimentSummary{
			Ticker:       ticker,
			AvgSentiment: models.SentimentNeutral,
		}, nil
	}

	details := make([]models.HeadlineScore, 0, len(headlines))
	for _, headline := range headlines {
		result, err := a.classifier.Classify(ctx, headline)
		if err != nil {
			return nil, fmt.Errorf("failed to classify headline: %w", err)
		}

		details = append(details, models.HeadlineScore{
			Headline:   headline,
			Sentiment:  result.Sentiment,
			Scores:     result.Scores,
			Confidence: result.Confidence,
		})

		if a.recorder != nil {
			if err := a.recorder.InsertSentimentScore(ctx, ticker, headline, result.Sentiment, result.Confidence); err != nil {
				logrus.WithField("ticker", ticker).WithError(err).Warn("Failed to persist sentiment score")
			}
		}
	}

	var positive, negative, neutral int
	for _, d := range details {
		switch d.Sentiment {
		case models.SentimentPositive:
			positive++
		case models.SentimentNegative:
			negative++
		default:
			neutral++
		}
	}

	total := len(details)
	score := float64(positive-negative) / float64(total)

	label := models.SentimentNeutral
	switch {
	case score > positiveThreshold:
		label = models.SentimentPositive
	case score < negativeThreshold:
		label = models.SentimentNegative
	}

	return &models.SentimentSummary{
		Ticker:         ticker,
		AvgSentiment:   label,
		AvgScore:       score,
		PositiveRatio:  float64(positive) / float64(total),
		NegativeRatio:  float64(negative) / float64(total),
		NeutralRatio:   float64(neutral) / float64(total),
		TotalHeadlines: total,
		Details:        details,
	}, nil
}
