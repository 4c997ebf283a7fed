package domain

import "time"

// RateLimitDecision is the outcome of a single inbound rate-limit check.
type RateLimitDecision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}
