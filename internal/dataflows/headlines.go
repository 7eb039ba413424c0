package dataflows

import (
	"context"

	"github.com/sirupsen/logrus"
)

// HeadlineSource combines the Finnhub company-news feed with the Yahoo
// Finance page scrape. Finnhub is authoritative; the scrape only runs when
// Finnhub fails or comes back empty.
type HeadlineSource struct {
	finnhub *FinnhubClient
	yahoo   *YahooClient
}

// NewHeadlineSource wires the two headline providers together.
func NewHeadlineSource(finnhub *FinnhubClient, yahoo *YahooClient) *HeadlineSource {
	return &HeadlineSource{finnhub: finnhub, yahoo: yahoo}
}

// GetHeadlines returns up to limit recent headlines for a symbol.
func (hs *HeadlineSource) GetHeadlines(ctx context.Context, symbol string, limit int) ([]string, error) {
	headlines, err := hs.finnhub.GetHeadlines(ctx, symbol, limit)
	if err == nil && len(headlines) > 0 {
		return headlines, nil
	}
	if err != nil {
		logrus.WithField("ticker", symbol).WithError(err).Warn("Finnhub news unavailable, falling back to Yahoo scrape")
	}
	return hs.yahoo.ScrapeHeadlines(ctx, symbol, limit)
}
