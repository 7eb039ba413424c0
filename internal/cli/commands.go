package cli

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Navneeth18/trading-agent/internal/agents"
	"github.com/Navneeth18/trading-agent/internal/config"
	"github.com/Navneeth18/trading-agent/internal/database"
	"github.com/Navneeth18/trading-agent/internal/dataflows"
	"github.com/Navneeth18/trading-agent/internal/display"
	"github.com/Navneeth18/trading-agent/internal/llm"
	"github.com/Navneeth18/trading-agent/internal/sentiment"
	"github.com/Navneeth18/trading-agent/internal/workflow"
)

const version = "1.0.0"

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg := config.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "trading-agent",
		Short: "Autonomous AI trading analysis for US equities",
		Long: `trading-agent runs a sequential analysis pipeline for a fixed set of US
equity tickers: live market data, FinBERT news sentiment, RSI and MACD
technicals, and a final LLM portfolio decision appended to a PostgreSQL
trade ledger.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				cfg.Debug = true
			}
			if cfg.Debug {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalysis(cmd.Context(), cfg, cfg.Tickers)
		},
	}

	rootCmd.AddCommand(newAnalyzeCmd(cfg))
	rootCmd.AddCommand(newMonitorCmd(cfg))
	rootCmd.AddCommand(newInitDBCmd(cfg))
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	return rootCmd
}

// newAnalyzeCmd creates the analyze command
func newAnalyzeCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [TICKER]",
		Short: "Run one analysis pass for a ticker, or all configured tickers",
		Long: `Run one full analysis pass. With a TICKER argument only that symbol is
analyzed; without one every configured ticker runs in sequence.
Example: trading-agent analyze NVDA`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tickers := cfg.Tickers
			if len(args) == 1 {
				ticker := strings.ToUpper(strings.TrimSpace(args[0]))
				if !cfg.Allows(ticker) {
					cmd.Printf("❌ %s is not a supported ticker.\n", ticker)
					cmd.Printf("Supported tickers: %s\n", strings.Join(cfg.Tickers, " "))
					return nil
				}
				tickers = []string{ticker}
			}
			return runAnalysis(cmd.Context(), cfg, tickers)
		},
	}
}

// newMonitorCmd creates the continuous monitoring command
func newMonitorCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Re-run the full analysis on a fixed interval until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			interval, _ := cmd.Flags().GetDuration("interval")
			if interval <= 0 {
				interval = cfg.MonitorInterval
			}
			return runMonitor(cmd.Context(), cfg, interval)
		},
	}

	cmd.Flags().Duration("interval", 0, "Refresh interval (default from MONITOR_INTERVAL_MINUTES)")

	return cmd
}

// newInitDBCmd creates the schema initialization command
func newInitDBCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Create the PostgreSQL tables and indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := database.NewPostgres(ctx, cfg.Database)
			if err != nil {
				return fmt.Errorf("database connection failed: %w", err)
			}
			defer db.Close()

			if err := database.NewStore(db.Pool).InitSchema(ctx); err != nil {
				return fmt.Errorf("schema initialization failed: %w", err)
			}
			cmd.Println("✅ Database schema initialized")
			return nil
		},
	}
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("trading-agent v%s\n", version)
		},
	}
}

// runAnalysis executes one full pass over the given tickers and renders the
// dashboard.
func runAnalysis(ctx context.Context, cfg *config.Config, tickers []string) error {
	w, db, err := buildWorkflow(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	dashboard := display.NewDashboard()
	dashboard.ShowRunHeader(tickers)

	states := w.RunBatch(ctx, tickers)
	dashboard.ShowResults(states)
	return nil
}

// runMonitor loops runAnalysis on a fixed interval until the context is
// canceled by SIGINT or SIGTERM.
func runMonitor(ctx context.Context, cfg *config.Config, interval time.Duration) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w, db, err := buildWorkflow(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	dashboard := display.NewDashboard()

	for {
		dashboard.ShowMonitorHeader(interval)
		dashboard.ShowRunHeader(cfg.Tickers)
		states := w.RunBatch(ctx, cfg.Tickers)
		dashboard.ShowResults(states)

		logrus.WithField("interval", interval).Info("Sleeping until next analysis cycle")
		select {
		case <-ctx.Done():
			logrus.Info("Monitoring stopped")
			return nil
		case <-time.After(interval):
		}
	}
}

// buildWorkflow wires the full dependency graph: database, market data
// clients, sentiment analyst, LLM agents, and the pipeline itself. The
// returned Postgres handle must be closed by the caller.
func buildWorkflow(ctx context.Context, cfg *config.Config) (*workflow.Workflow, *database.Postgres, error) {
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	store := database.NewStore(db.Pool)
	if err := store.InitSchema(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("schema initialization failed: %w", err)
	}

	finnhub := dataflows.NewFinnhubClient(cfg.FinnhubAPIKey, store)
	yahoo := dataflows.NewYahooClient()
	ollama := llm.NewOllamaClient(cfg.OllamaBaseURL)

	w := workflow.New(workflow.Deps{
		Quotes:        finnhub,
		News:          dataflows.NewHeadlineSource(finnhub, yahoo),
		History:       yahoo,
		Sentiment:     sentiment.NewAnalyst(sentiment.NewHTTPClassifier(cfg.ClassifierURL), store),
		Technical:     agents.NewTechnicalSpecialist(ollama, cfg.SpecialistModel),
		Manager:       agents.NewPortfolioManager(ollama, cfg.ManagerModel),
		Ledger:        store,
		HeadlineLimit: cfg.HeadlineLimit,
		HistoryDays:   cfg.HistoryDays,
	})
	return w, db, nil
}
