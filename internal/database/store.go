package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Navneeth18/trading-agent/internal/models"
)

// DBPool is the subset of pgxpool.Pool the store needs. pgxmock stands in
// for it in tests.
type DBPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store persists pipeline output: market quotes, per-headline sentiment rows,
// and the trade ledger. All tables are append-only.
type Store struct {
	db DBPool
}

// NewStore wraps a database pool.
func NewStore(db DBPool) *Store {
	return &Store{db: db}
}

const schema = `
CREATE TABLE IF NOT EXISTS market_quotes (
	id             BIGSERIAL PRIMARY KEY,
	ticker         TEXT NOT NULL,
	current_price  DOUBLE PRECISION NOT NULL,
	change         DOUBLE PRECISION NOT NULL,
	percent_change DOUBLE PRECISION NOT NULL,
	high           DOUBLE PRECISION NOT NULL,
	low            DOUBLE PRECISION NOT NULL,
	open           DOUBLE PRECISION NOT NULL,
	previous_close DOUBLE PRECISION NOT NULL,
	timestamp      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS sentiment_scores (
	id        BIGSERIAL PRIMARY KEY,
	ticker    TEXT NOT NULL,
	headline  TEXT NOT NULL,
	sentiment TEXT NOT NULL,
	score     DOUBLE PRECISION NOT NULL,
	timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS trade_ledger (
	id                          BIGSERIAL PRIMARY KEY,
	ticker                      TEXT NOT NULL,
	action                      TEXT NOT NULL,
	price                       DOUBLE PRECISION NOT NULL,
	quantity                    INTEGER NOT NULL DEFAULT 0,
	reasoning                   TEXT NOT NULL DEFAULT '',
	sentiment_avg               DOUBLE PRECISION NOT NULL DEFAULT 0,
	rsi                         DOUBLE PRECISION NOT NULL DEFAULT 0,
	macd                        DOUBLE PRECISION NOT NULL DEFAULT 0,
	approved                    BOOLEAN NOT NULL DEFAULT FALSE,
	portfolio_manager_reasoning TEXT NOT NULL DEFAULT '',
	timestamp                   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_sentiment_scores_ticker_ts ON sentiment_scores (ticker, timestamp DESC);
CREATE INDEX IF NOT EXISTS idx_trade_ledger_ticker_ts ON trade_ledger (ticker, timestamp DESC);
`

// InitSchema applies the schema. The DDL is idempotent and safe to re-run.
func (s *Store) InitSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// InsertMarketQuote appends a market snapshot row.
func (s *Store) InsertMarketQuote(ctx context.Context, quote *models.Quote) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO market_quotes
			(ticker, current_price, change, percent_change, high, low, open, previous_close)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		quote.Ticker, quote.CurrentPrice, quote.Change, quote.PercentChange,
		quote.High, quote.Low, quote.Open, quote.PreviousClose,
	)
	if err != nil {
		return fmt.Errorf("failed to insert market quote: %w", err)
	}
	return nil
}

// InsertSentimentScore appends a per-headline classifier result.
func (s *Store) InsertSentimentScore(ctx context.Context, ticker, headline, sentiment string, score float64) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO sentiment_scores (ticker, headline, sentiment, score)
		VALUES ($1, $2, $3, $4)`,
		ticker, headline, sentiment, score,
	)
	if err != nil {
		return fmt.Errorf("failed to insert sentiment score: %w", err)
	}
	return nil
}

// InsertTrade appends a trade-ledger row and returns its id. The timestamp
// is assigned by the server.
func (s *Store) InsertTrade(ctx context.Context, trade *models.TradeRecord) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx, `
		INSERT INTO trade_ledger
			(ticker, action, price, quantity, reasoning, sentiment_avg,
			 rsi, macd, approved, portfolio_manager_reasoning)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		trade.Ticker, trade.Action, trade.Price, trade.Quantity, trade.Reasoning,
		trade.SentimentAvg, trade.RSI, trade.MACD, trade.Approved, trade.ManagerReasoning,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert trade: %w", err)
	}
	return id, nil
}

// RecentTrades returns the most recent ledger rows, newest first. An empty
// ticker returns rows across all tickers.
func (s *Store) RecentTrades(ctx context.Context, ticker string, limit int) ([]models.TradeRecord, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if ticker != "" {
		rows, err = s.db.Query(ctx, `
			SELECT id, ticker, action, price, quantity, reasoning, sentiment_avg,
			       rsi, macd, approved, portfolio_manager_reasoning, timestamp
			FROM trade_ledger
			WHERE ticker = $1
			ORDER BY timestamp DESC
			LIMIT $2`, ticker, limit)
	} else {
		rows, err = s.db.Query(ctx, `
			SELECT id, ticker, action, price, quantity, reasoning, sentiment_avg,
			       rsi, macd, approved, portfolio_manager_reasoning, timestamp
			FROM trade_ledger
			ORDER BY timestamp DESC
			LIMIT $1`, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query recent trades: %w", err)
	}
	defer rows.Close()

	var trades []models.TradeRecord
	for rows.Next() {
		var t models.TradeRecord
		if err := rows.Scan(
			&t.ID, &t.Ticker, &t.Action, &t.Price, &t.Quantity, &t.Reasoning,
			&t.SentimentAvg, &t.RSI, &t.MACD, &t.Approved, &t.ManagerReasoning,
			&t.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan trade row: %w", err)
		}
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

// RecentSentiments returns the most recent sentiment rows for a ticker,
// newest first.
func (s *Store) RecentSentiments(ctx context.Context, ticker string, limit int) ([]models.SentimentRecord, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, ticker, headline, sentiment, score, timestamp
		FROM sentiment_scores
		WHERE ticker = $1
		ORDER BY timestamp DESC
		LIMIT $2`, ticker, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent sentiments: %w", err)
	}
	defer rows.Close()

	var records []models.SentimentRecord
	for rows.Next() {
		var r models.SentimentRecord
		if err := rows.Scan(&r.ID, &r.Ticker, &r.Headline, &r.Sentiment, &r.Score, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan sentiment row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
