package aiusage

import "errors"

// ErrInsufficientTokens is returned when a session has no fallback
// classifications remaining for the current day.
var ErrInsufficientTokens = errors.New("insufficient tokens")

// DefaultTokens is the number of LLM fallback classifications granted per
// session per day. Rule-based classification is never metered.
const DefaultTokens = 50
