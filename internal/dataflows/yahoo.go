package dataflows

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"

	"github.com/Navneeth18/trading-agent/internal/models"
)

// YahooClient fetches historical price data through the Yahoo Finance chart
// API and, as a fallback headline source, scrapes the quote news page.
type YahooClient struct {
	scraper *resty.Client
}

// NewYahooClient creates a Yahoo Finance client.
func NewYahooClient() *YahooClient {
	scraper := resty.New()
	scraper.SetBaseURL("https://finance.yahoo.com")
	scraper.SetTimeout(30 * time.Second)
	scraper.SetHeader("User-Agent", "Mozilla/5.0 (compatible; trading-agent/1.0)")

	return &YahooClient{scraper: scraper}
}

// GetPriceHistory fetches daily OHLC bars for the trailing number of days,
// oldest first.
func (yc *YahooClient) GetPriceHistory(symbol string, days int) ([]models.Bar, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -days)

	params := &chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}

	iter := chart.Get(params)
	bars := make([]models.Bar, 0)
	for iter.Next() {
		bar := iter.Bar()
		bars = append(bars, models.Bar{
			Date:   time.Unix(int64(bar.Timestamp), 0),
			Open:   bar.Open,
			High:   bar.High,
			Low:    bar.Low,
			Close:  bar.Close,
			Volume: int64(bar.Volume),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to get price history for %s: %w", symbol, err)
	}

	return bars, nil
}

// ScrapeHeadlines pulls headlines off the Yahoo Finance news page for a
// symbol. Best-effort HTML scraping; callers treat an empty result as "no
// news".
func (yc *YahooClient) ScrapeHeadlines(ctx context.Context, symbol string, limit int) ([]string, error) {
	pageURL := fmt.Sprintf("/quote/%s/news", url.PathEscape(symbol))

	resp, err := yc.scraper.R().SetContext(ctx).Get(pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news page for %s: %w", symbol, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("HTTP error %d when fetching news page for %s", resp.StatusCode(), symbol)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse news page: %w", err)
	}

	seen := make(map[string]bool)
	headlines := make([]string, 0, limit)
	doc.Find("h3").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		title := strings.TrimSpace(sel.Text())
		if len(title) < 20 || seen[title] {
			return true
		}
		seen[title] = true
		headlines = append(headlines, title)
		return len(headlines) < limit
	})

	return headlines, nil
}
