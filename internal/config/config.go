package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings. Values come from defaults, a .env file,
// and process environment variables, in increasing order of precedence.
type Config struct {
	Tickers []string `json:"tickers"`

	FinnhubAPIKey string `json:"finnhub_api_key"`
	ClassifierURL string `json:"classifier_url"`

	OllamaBaseURL   string `json:"ollama_base_url"`
	SpecialistModel string `json:"specialist_model"`
	ManagerModel    string `json:"manager_model"`

	HeadlineLimit int `json:"headline_limit"`
	HistoryDays   int `json:"history_days"`

	MonitorInterval time.Duration `json:"monitor_interval"`

	Database DatabaseConfig `json:"database"`

	Debug bool `json:"debug"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Name     string `json:"name"`
	User     string `json:"user"`
	Password string `json:"-"`
	SSLMode  string `json:"ssl_mode"`
}

// DSN renders the config as a pgx connection string.
func (dc DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dc.Host, dc.Port, dc.User, dc.Password, dc.Name, dc.SSLMode,
	)
}

// DefaultConfig builds the configuration: baked-in defaults, then .env,
// then environment overrides.
func DefaultConfig() *Config {
	cfg := &Config{
		Tickers: []string{
			"AAPL", "MSFT", "NVDA", "TSLA", "GOOGL",
			"AMZN", "META", "NFLX", "AMD", "INTC",
		},

		ClassifierURL: "http://localhost:8085",

		OllamaBaseURL:   "http://localhost:11434",
		SpecialistModel: "llama3.2",
		ManagerModel:    "deepseek-r1:7b",

		HeadlineLimit: 10,
		HistoryDays:   30,

		MonitorInterval: 15 * time.Minute,

		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			Name:    "trading_agents",
			User:    "postgres",
			SSLMode: "disable",
		},
	}

	_ = godotenv.Load()
	cfg.loadFromEnv()

	return cfg
}

// Allows reports whether the ticker is in the configured allow-list.
func (c *Config) Allows(ticker string) bool {
	return slices.Contains(c.Tickers, ticker)
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv("TICKERS"); val != "" {
		tickers := make([]string, 0)
		for _, t := range strings.Split(val, ",") {
			if t = strings.ToUpper(strings.TrimSpace(t)); t != "" {
				tickers = append(tickers, t)
			}
		}
		if len(tickers) > 0 {
			c.Tickers = tickers
		}
	}

	setString(&c.FinnhubAPIKey, "FINNHUB_API_KEY")
	setString(&c.ClassifierURL, "CLASSIFIER_URL")
	setString(&c.OllamaBaseURL, "OLLAMA_BASE_URL")
	setString(&c.SpecialistModel, "SPECIALIST_MODEL")
	setString(&c.ManagerModel, "MANAGER_MODEL")
	setInt(&c.HeadlineLimit, "HEADLINE_LIMIT")
	setInt(&c.HistoryDays, "HISTORY_DAYS")

	if val := os.Getenv("MONITOR_INTERVAL_MINUTES"); val != "" {
		if minutes, err := strconv.Atoi(val); err == nil && minutes > 0 {
			c.MonitorInterval = time.Duration(minutes) * time.Minute
		}
	}

	setString(&c.Database.Host, "DB_HOST")
	setInt(&c.Database.Port, "DB_PORT")
	setString(&c.Database.Name, "DB_NAME")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.SSLMode, "DB_SSLMODE")

	if val := os.Getenv("DEBUG"); val != "" {
		if debug, err := strconv.ParseBool(val); err == nil {
			c.Debug = debug
		}
	}
}

func setString(dst *string, key string) {
	if val := os.Getenv(key); val != "" {
		*dst = val
	}
}

func setInt(dst *int, key string) {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			*dst = parsed
		}
	}
}
