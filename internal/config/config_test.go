package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Len(t, cfg.Tickers, 10)
	assert.True(t, cfg.Allows("AAPL"))
	assert.False(t, cfg.Allows("GME"))
	assert.Equal(t, 10, cfg.HeadlineLimit)
	assert.Equal(t, 15*time.Minute, cfg.MonitorInterval)
	assert.Equal(t, "llama3.2", cfg.SpecialistModel)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TICKERS", "aapl, msft")
	t.Setenv("MONITOR_INTERVAL_MINUTES", "5")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6432")
	t.Setenv("FINNHUB_API_KEY", "test-key")

	cfg := DefaultConfig()

	assert.Equal(t, []string{"AAPL", "MSFT"}, cfg.Tickers)
	assert.Equal(t, 5*time.Minute, cfg.MonitorInterval)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6432, cfg.Database.Port)
	assert.Equal(t, "test-key", cfg.FinnhubAPIKey)
}

func TestDatabaseDSN(t *testing.T) {
	dc := DatabaseConfig{
		Host: "localhost", Port: 5432, Name: "trading_agents",
		User: "postgres", Password: "secret", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=secret dbname=trading_agents sslmode=disable",
		dc.DSN())
}
