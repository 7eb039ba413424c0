package dataflows

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Navneeth18/trading-agent/internal/models"
)

type recordedQuotes struct {
	quotes []*models.Quote
}

func (r *recordedQuotes) InsertMarketQuote(_ context.Context, q *models.Quote) error {
	r.quotes = append(r.quotes, q)
	return nil
}

func newTestFinnhub(t *testing.T, handler http.HandlerFunc, recorder QuoteRecorder) *FinnhubClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	fc := NewFinnhubClient("test-key", recorder)
	fc.client.SetBaseURL(server.URL)
	return fc
}

func TestGetQuote(t *testing.T) {
	recorder := &recordedQuotes{}
	fc := newTestFinnhub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/quote", r.URL.Path)
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
		w.Write([]byte(`{"c":150.0,"d":1.5,"dp":1.0,"h":151,"l":148,"o":149,"pc":148.5}`))
	}, recorder)

	quote, err := fc.GetQuote(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, 150.0, quote.CurrentPrice)
	assert.Equal(t, 148.5, quote.PreviousClose)

	// The fetched quote is persisted as a side effect.
	require.Len(t, recorder.quotes, 1)
	assert.Equal(t, "AAPL", recorder.quotes[0].Ticker)
}

func TestGetQuoteNoTradeData(t *testing.T) {
	fc := newTestFinnhub(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"c":0,"d":0,"dp":0,"h":0,"l":0,"o":0,"pc":0}`))
	}, nil)

	_, err := fc.GetQuote(context.Background(), "BOGUS")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no trade data")
}

func TestGetQuoteMissingAPIKey(t *testing.T) {
	fc := NewFinnhubClient("", nil)
	_, err := fc.GetQuote(context.Background(), "AAPL")
	assert.Error(t, err)
}

func TestGetHeadlinesRespectsLimit(t *testing.T) {
	fc := newTestFinnhub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/company-news", r.URL.Path)
		w.Write([]byte(`[
			{"datetime":1,"headline":"Apple launches new product","source":"a"},
			{"datetime":2,"headline":"","source":"b"},
			{"datetime":3,"headline":"Apple beats earnings","source":"c"},
			{"datetime":4,"headline":"Analysts weigh in on Apple","source":"d"}
		]`))
	}, nil)

	headlines, err := fc.GetHeadlines(context.Background(), "AAPL", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Apple launches new product", "Apple beats earnings"}, headlines)
}

func TestGetHeadlinesServerError(t *testing.T) {
	fc := newTestFinnhub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}, nil)

	_, err := fc.GetHeadlines(context.Background(), "AAPL", 10)
	assert.Error(t, err)
}
