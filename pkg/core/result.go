package core

import (
	"time"
)

// Mode identifies which retrieval mode produced a result
type Mode string

const (
	ModePhone    Mode = "phone"    // Filtered by phone number in the subject
	ModeFallback Mode = "fallback" // Any SMS message, no phone filtering
)

// AttemptResult captures the outcome of a single retrieval attempt
type AttemptResult struct {
	// Identity
	Attempt     int  `json:"attempt"`     // 1-based attempt number
	MaxAttempts int  `json:"maxAttempts"` // Configured attempt budget
	Mode        Mode `json:"mode"`

	// Status
	Status RetrievalStatus `json:"status"`

	// Timing
	StartTime time.Time     `json:"startTime"`
	Duration  time.Duration `json:"duration"`

	// Output
	MessagesSeen int    `json:"messagesSeen"`      // Messages returned by the fetch
	Matched      bool   `json:"matched"`           // An SMS subject matched the filter
	Code         string `json:"code,omitempty"`    // Extracted code, if found
	Subject      string `json:"subject,omitempty"` // Subject of the matched message

	// Error details (fetch failures only; "no code" is not an error)
	Error string `json:"error,omitempty"`
}

// RetrievalResult captures the complete outcome of a retrieval call
type RetrievalResult struct {
	// Identity
	Mode        Mode   `json:"mode"`
	PhoneNumber string `json:"phoneNumber,omitempty"` // Empty in fallback mode

	// Status (aggregated from attempts)
	Status RetrievalStatus `json:"status"`
	Code   string          `json:"code,omitempty"`

	// Timing
	StartTime time.Time     `json:"startTime"`
	Duration  time.Duration `json:"duration"`

	// Attempts in order; the last one is terminal
	Attempts []AttemptResult `json:"attempts"`

	// Summary (computed)
	TotalAttempts int `json:"totalAttempts"`
	FailedFetches int `json:"failedFetches"`
	EmptyAttempts int `json:"emptyAttempts"` // Attempts that found no matching code
}

// ComputeSummary calculates attempt counts from the Attempts slice
func (r *RetrievalResult) ComputeSummary() {
	r.TotalAttempts = len(r.Attempts)
	r.FailedFetches = 0
	r.EmptyAttempts = 0

	for _, a := range r.Attempts {
		switch a.Status {
		case StatusFailed:
			r.FailedFetches++
		case StatusScanning, StatusExhausted:
			r.EmptyAttempts++
		}
	}
}

// Success returns true if a code was extracted
func (r *RetrievalResult) Success() bool {
	return r.Status == StatusFound && r.Code != ""
}

// LastAttempt returns the final attempt, or nil if none were made
func (r *RetrievalResult) LastAttempt() *AttemptResult {
	if len(r.Attempts) == 0 {
		return nil
	}
	return &r.Attempts[len(r.Attempts)-1]
}
