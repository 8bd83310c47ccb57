package domain

import (
	"encoding/json"
	"strings"
)

// Verdict classification values the model is instructed to choose from.
const (
	VerdictLikelyTrue   = "Likely True"
	VerdictLikelyFake   = "Likely Fake"
	VerdictUnverifiable = "Unverifiable"
)

// Verdict is the structured classification result. The model is asked for
// `verdict` and `explanation` keys but is not guaranteed to comply; whatever
// object it returns passes through to the caller untouched.
type Verdict map[string]any

// ParseVerdict interprets raw model output as a Verdict in three stages,
// stopping at the first success:
//  1. parse the trimmed text as a JSON object,
//  2. strip surrounding ``` / ```json fences and parse the remainder,
//  3. wrap the text as {"raw": text}.
//
// The staged fallback is observable behavior: models are not guaranteed to
// emit pure JSON, and an unparseable reply degrades instead of failing.
func ParseVerdict(text string) Verdict {
	trimmed := strings.TrimSpace(text)

	var v Verdict
	if err := json.Unmarshal([]byte(trimmed), &v); err == nil && v != nil {
		return v
	}

	inner := strings.TrimPrefix(trimmed, "```json")
	inner = strings.TrimPrefix(inner, "```")
	inner = strings.TrimSuffix(inner, "```")
	inner = strings.TrimSpace(inner)

	v = nil
	if err := json.Unmarshal([]byte(inner), &v); err == nil && v != nil {
		return v
	}

	return Verdict{"raw": text}
}

// SetDefault stores value under key only if the key is not already present.
func (v Verdict) SetDefault(key string, value any) {
	if _, ok := v[key]; !ok {
		v[key] = value
	}
}
