package display

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Navneeth18/trading-agent/internal/models"
)

// UI styles
var (
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7C3AED")).
		Background(lipgloss.Color("#1F2937")).
		Padding(0, 1).
		MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#3B82F6")).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#3B82F6")).
		Padding(0, 2).
		Width(96)

	tableStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#10B981")).
		Padding(1, 2).
		Width(96)

	detailStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#F59E0B")).
		Padding(1, 2).
		Width(96)

	errorPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#EF4444")).
		Padding(1, 2).
		Width(96)

	tableHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#9CA3AF"))

	buyStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981")).
		Bold(true)

	sellStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#EF4444")).
		Bold(true)

	holdStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280"))

	gainStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981"))

	lossStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#EF4444"))

	errorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#EF4444")).
		Bold(true)
)

// Dashboard renders analysis results to a terminal.
type Dashboard struct {
	out io.Writer
}

func NewDashboard() *Dashboard {
	return &Dashboard{out: os.Stdout}
}

// NewDashboardWriter renders to the given writer instead of stdout.
func NewDashboardWriter(out io.Writer) *Dashboard {
	return &Dashboard{out: out}
}

// ShowRunHeader prints the banner that opens one full analysis pass.
func (d *Dashboard) ShowRunHeader(tickers []string) {
	header := fmt.Sprintf("📊 Trading Analysis | %s | Tickers: %s",
		time.Now().Format("2006-01-02 15:04:05"),
		strings.Join(tickers, " "),
	)
	fmt.Fprintln(d.out, headerStyle.Render(header))
}

// ShowMonitorHeader prints the banner for continuous monitoring mode.
func (d *Dashboard) ShowMonitorHeader(interval time.Duration) {
	header := fmt.Sprintf("🔄 Monitoring Mode | refresh every %s | Ctrl+C to stop", interval)
	fmt.Fprintln(d.out, titleStyle.Render(header))
}

// ShowResults prints the summary table, per ticker detail panels, and the
// error panel for one batch of analysis states.
func (d *Dashboard) ShowResults(states []*models.AnalysisState) {
	d.showSummaryTable(states)
	for _, state := range states {
		if state.Failed() {
			continue
		}
		d.showDetailPanel(state)
	}
	d.showErrorPanel(states)
}

func (d *Dashboard) showSummaryTable(states []*models.AnalysisState) {
	var content strings.Builder

	content.WriteString(tableHeaderStyle.Render(fmt.Sprintf("%-8s %10s %9s %10s %7s %9s %-6s %-10s",
		"TICKER", "PRICE", "CHANGE%", "SENTIMENT", "RSI", "MACD", "ACTION", "CONFIDENCE")))
	content.WriteString("\n")

	for _, state := range states {
		if state.Failed() {
			line := fmt.Sprintf("%-8s %s", state.Ticker, truncate("ERROR: "+state.Err, 84))
			content.WriteString(errorStyle.Render(line))
			content.WriteString("\n")
			continue
		}
		content.WriteString(d.summaryRow(state))
		content.WriteString("\n")
	}

	fmt.Fprintln(d.out, tableStyle.Render(strings.TrimRight(content.String(), "\n")))
}

func (d *Dashboard) summaryRow(state *models.AnalysisState) string {
	price, change := "-", "-"
	if state.Quote != nil {
		price = fmt.Sprintf("$%.2f", state.Quote.CurrentPrice)
		change = fmt.Sprintf("%+.2f%%", state.Quote.PercentChange)
	}

	sentiment := "-"
	if state.Sentiment != nil {
		sentiment = fmt.Sprintf("%s %.2f", state.Sentiment.AvgSentiment, state.Sentiment.AvgScore)
	}

	rsi, macd := "-", "-"
	if state.Technical != nil {
		rsi = formatFloat(state.Technical.Indicators.RSI, "%.1f")
		macd = formatFloat(state.Technical.Indicators.MACD.MACD, "%.3f")
	}

	action, confidence := "-", "-"
	var actionStyled string
	if state.Decision != nil {
		action = string(state.Decision.Action)
		confidence = string(state.Decision.Confidence)
	}
	actionStyled = actionStyle(action).Render(fmt.Sprintf("%-6s", action))

	changeStyled := change
	if state.Quote != nil {
		changeStyled = changeStyle(state.Quote.PercentChange).Render(fmt.Sprintf("%9s", change))
	} else {
		changeStyled = fmt.Sprintf("%9s", change)
	}

	return fmt.Sprintf("%-8s %10s %s %10s %7s %9s %s %-10s",
		state.Ticker, price, changeStyled, sentiment, rsi, macd, actionStyled, confidence)
}

func (d *Dashboard) showDetailPanel(state *models.AnalysisState) {
	var content strings.Builder

	content.WriteString(fmt.Sprintf("📋 %s\n\n", state.Ticker))

	if state.Quote != nil {
		content.WriteString(fmt.Sprintf("Price: $%.2f (%+.2f%%)  O $%.2f  H $%.2f  L $%.2f  Prev $%.2f\n",
			state.Quote.CurrentPrice, state.Quote.PercentChange,
			state.Quote.Open, state.Quote.High, state.Quote.Low, state.Quote.PreviousClose))
	}

	if state.Sentiment != nil {
		content.WriteString(fmt.Sprintf("Sentiment: %s (score %.3f, %d headlines, pos %.0f%% / neg %.0f%% / neu %.0f%%)\n",
			state.Sentiment.AvgSentiment, state.Sentiment.AvgScore, state.Sentiment.TotalHeadlines,
			state.Sentiment.PositiveRatio*100, state.Sentiment.NegativeRatio*100, state.Sentiment.NeutralRatio*100))
	}

	if state.Technical != nil {
		content.WriteString(fmt.Sprintf("Indicators: RSI(14) %s  MACD %s  Signal %s  Hist %s\n",
			formatFloat(state.Technical.Indicators.RSI, "%.2f"),
			formatFloat(state.Technical.Indicators.MACD.MACD, "%.4f"),
			formatFloat(state.Technical.Indicators.MACD.Signal, "%.4f"),
			formatFloat(state.Technical.Indicators.MACD.Histogram, "%.4f")))
		if state.Technical.Analysis != "" {
			content.WriteString("\n🔬 Technical View:\n")
			content.WriteString(wrap(state.Technical.Analysis, 88))
			content.WriteString("\n")
		}
	}

	if state.Decision != nil {
		content.WriteString(fmt.Sprintf("\n%s %s (confidence %s, approved %t)\n",
			decisionIcon(state.Decision.Action),
			actionStyle(string(state.Decision.Action)).Render(string(state.Decision.Action)),
			state.Decision.Confidence, state.Decision.Approved))
		content.WriteString("💭 " + wrap(state.Decision.Reasoning, 88))
		content.WriteString("\n")
	}

	fmt.Fprintln(d.out, detailStyle.Render(strings.TrimRight(content.String(), "\n")))
}

func (d *Dashboard) showErrorPanel(states []*models.AnalysisState) {
	var failed []*models.AnalysisState
	for _, state := range states {
		if state.Failed() {
			failed = append(failed, state)
		}
	}
	if len(failed) == 0 {
		return
	}

	var content strings.Builder
	content.WriteString("❌ Failed Analyses\n\n")
	for _, state := range failed {
		content.WriteString(errorStyle.Render(fmt.Sprintf("%s: %s", state.Ticker, state.Err)))
		content.WriteString("\n")
	}

	fmt.Fprintln(d.out, errorPanelStyle.Render(strings.TrimRight(content.String(), "\n")))
}

// Helper functions

func actionStyle(action string) lipgloss.Style {
	switch action {
	case string(models.ActionBuy):
		return buyStyle
	case string(models.ActionSell):
		return sellStyle
	default:
		return holdStyle
	}
}

func changeStyle(pct float64) lipgloss.Style {
	if pct < 0 {
		return lossStyle
	}
	return gainStyle
}

func decisionIcon(action models.Action) string {
	switch action {
	case models.ActionBuy:
		return "🟢"
	case models.ActionSell:
		return "🔴"
	default:
		return "⚪"
	}
}

func formatFloat(v float64, format string) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf(format, v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func wrap(s string, width int) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return s
	}
	var b strings.Builder
	lineLen := 0
	for i, word := range words {
		if i > 0 {
			if lineLen+1+len(word) > width {
				b.WriteString("\n")
				lineLen = 0
			} else {
				b.WriteString(" ")
				lineLen++
			}
		}
		b.WriteString(word)
		lineLen += len(word)
	}
	return b.String()
}
