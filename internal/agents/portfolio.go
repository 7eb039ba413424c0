package agents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Navneeth18/trading-agent/internal/llm"
	"github.com/Navneeth18/trading-agent/internal/models"
)

// PortfolioManager renders the final BUY/SELL/HOLD call using a reasoning
// model. The generous timeout accommodates the model's internal thinking
// trace before the final answer.
type PortfolioManager struct {
	llm     llm.Client
	model   string
	timeout time.Duration
}

// NewPortfolioManager creates a portfolio manager using the given model.
func NewPortfolioManager(client llm.Client, model string) *PortfolioManager {
	return &PortfolioManager{
		llm:     client,
		model:   model,
		timeout: 3 * time.Minute,
	}
}

// MakeDecision prompts the reasoning model and parses its answer. This never
// fails past its boundary: any model error degrades to a HOLD/LOW decision
// carrying the error as its reasoning.
func (pm *PortfolioManager) MakeDecision(
	ctx context.Context,
	ticker string,
	sent *models.SentimentSummary,
	tech *models.TechnicalSummary,
	quote *models.Quote,
	history []models.TradeRecord,
) *models.Decision {
	prompt := buildDecisionPrompt(ticker, sent, tech, quote, history)

	response, err := pm.llm.Generate(ctx, pm.model, prompt, pm.timeout)
	if err != nil {
		return &models.Decision{
			Ticker:     ticker,
			Action:     models.ActionHold,
			Confidence: models.ConfidenceLow,
			Reasoning:  fmt.Sprintf("Error in decision making: %v", err),
		}
	}

	thinking, answer := llm.ExtractThinking(response)
	action, confidence, reasoning := ParseDecision(answer)

	return &models.Decision{
		Ticker:      ticker,
		Action:      action,
		Confidence:  confidence,
		Reasoning:   reasoning,
		Thinking:    thinking,
		Approved:    action != models.ActionHold,
		RawResponse: response,
	}
}

func buildDecisionPrompt(
	ticker string,
	sent *models.SentimentSummary,
	tech *models.TechnicalSummary,
	quote *models.Quote,
	history []models.TradeRecord,
) string {
	return fmt.Sprintf(`You are a Portfolio Manager making critical trading decisions. Use your reasoning capabilities to validate this trade signal.

TICKER: %s

SENTIMENT ANALYSIS:
- Overall Sentiment: %s
- Sentiment Score: %.2f (-1 to 1 scale)
- Positive: %.1f%%
- Negative: %.1f%%
- Neutral: %.1f%%
- Headlines Analyzed: %d

TECHNICAL ANALYSIS:
- RSI: %.2f
- MACD: %.4f
- MACD Signal: %.4f
- MACD Histogram: %.4f
- Specialist Analysis: %s

MARKET DATA:
- Current Price: $%.2f
- Change: $%.2f (%.2f%%)

RECENT TRADE HISTORY:
%s

INSTRUCTIONS:
1. Use <think> tags to show your Chain of Thought reasoning
2. In your <think> block, analyze:
   - Alignment between sentiment and technical signals
   - Risk factors and potential conflicts
   - Market conditions and price action
   - How this signal compares with your recent decisions
   - Why you accept or reject this signal
3. After </think>, provide your final decision in this exact format:

DECISION: [BUY/SELL/HOLD]
CONFIDENCE: [HIGH/MEDIUM/LOW]
REASONING: [One sentence explanation]

Be decisive and clear. Your reasoning in <think> must justify your final decision.`,
		ticker,
		sent.AvgSentiment, sent.AvgScore,
		sent.PositiveRatio*100, sent.NegativeRatio*100, sent.NeutralRatio*100,
		sent.TotalHeadlines,
		tech.Indicators.RSI,
		tech.Indicators.MACD.MACD, tech.Indicators.MACD.Signal, tech.Indicators.MACD.Histogram,
		tech.Analysis,
		quote.CurrentPrice, quote.Change, quote.PercentChange,
		renderHistory(history),
	)
}

// renderHistory formats prior ledger rows as dated one-line summaries,
// newest first, for the decision prompt.
func renderHistory(history []models.TradeRecord) string {
	if len(history) == 0 {
		return "- No prior decisions recorded."
	}

	lines := make([]string, 0, len(history))
	for _, trade := range history {
		lines = append(lines, fmt.Sprintf("- %s: %s @ $%.2f (approved=%t): %s",
			trade.Timestamp.Format("2006-01-02"),
			trade.Action, trade.Price, trade.Approved, trade.Reasoning))
	}
	return strings.Join(lines, "\n")
}
