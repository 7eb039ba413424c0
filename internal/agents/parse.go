package agents

import (
	"regexp"
	"strings"

	"github.com/Navneeth18/trading-agent/internal/models"
)

// FallbackReasoning is used verbatim when the model output carries no
// recognizable REASONING line.
const FallbackReasoning = "No reasoning provided"

// Decision output grammar: three line-oriented fields, matched
// case-insensitively anywhere in the text.
//
//	DECISION:   one of BUY | SELL | HOLD
//	CONFIDENCE: one of HIGH | MEDIUM | LOW
//	REASONING:  the rest of the line
//
// Missing or malformed fields fall back to HOLD, LOW, and
// FallbackReasoning respectively.
var (
	decisionRe   = regexp.MustCompile(`(?i)DECISION:\s*(BUY|SELL|HOLD)`)
	confidenceRe = regexp.MustCompile(`(?i)CONFIDENCE:\s*(HIGH|MEDIUM|LOW)`)
	reasoningRe  = regexp.MustCompile(`(?i)REASONING:\s*(.+)`)
)

// ParseDecision extracts the structured decision fields from free-form model
// output, applying the documented fallbacks.
func ParseDecision(text string) (models.Action, models.Confidence, string) {
	action := models.ActionHold
	if m := decisionRe.FindStringSubmatch(text); m != nil {
		action = models.Action(strings.ToUpper(m[1]))
	}

	confidence := models.ConfidenceLow
	if m := confidenceRe.FindStringSubmatch(text); m != nil {
		confidence = models.Confidence(strings.ToUpper(m[1]))
	}

	reasoning := FallbackReasoning
	if m := reasoningRe.FindStringSubmatch(text); m != nil {
		reasoning = strings.TrimSpace(m[1])
	}

	return action, confidence, reasoning
}
