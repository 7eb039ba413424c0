package llm

import (
	"regexp"
	"strings"
)

var thinkRe = regexp.MustCompile(`(?s)<think>(.*?)</think>`)

// ExtractThinking splits a reasoning model's response into its <think>
// trace and the remaining final answer. Responses without a trace come back
// with an empty thinking string.
func ExtractThinking(response string) (thinking, answer string) {
	if m := thinkRe.FindStringSubmatch(response); m != nil {
		thinking = strings.TrimSpace(m[1])
	}
	answer = strings.TrimSpace(thinkRe.ReplaceAllString(response, ""))
	return thinking, answer
}
