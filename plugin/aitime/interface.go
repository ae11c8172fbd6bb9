// Package aitime extracts a booking date and time from free-text Chinese and
// English chat messages.
package aitime

import (
	"context"
	"time"
)

// TimeService defines the message time resolution service interface.
// Consumers: the HTTP API and the apptime CLI.
type TimeService interface {
	// Analyze resolves the single most plausible date/time of a whole message.
	// Supports: "明天3点", "11/15 16:00 或 11/13 15:00", "next Monday", "in 3 days"
	// A message without any date or time is not an error: Found is false.
	Analyze(ctx context.Context, input string, now time.Time, g Granularity) (*Analysis, error)

	// AnalyzeClause resolves a single clause without segmentation or selection.
	// Returns a NOT_FOUND error when the clause mentions neither a date nor a time.
	AnalyzeClause(ctx context.Context, input string, now time.Time, g Granularity) (*Candidate, error)
}

// Analysis is the outcome of Analyze.
type Analysis struct {
	Found  bool    `json:"found"`
	Result *Result `json:"result,omitempty"`

	// TimeCleared is set when a roster query dropped the resolved time.
	TimeCleared bool `json:"time_cleared"`
	// Tentative is set when the speaker defers the decision.
	Tentative bool `json:"tentative"`
	// BareReply is set when the message is only a day reference.
	BareReply bool `json:"bare_reply"`
}
