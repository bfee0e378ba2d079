package otp

import (
	"regexp"
)

var (
	sixDigitsRe   = regexp.MustCompile(`\b\d{6}\b`)
	fiveToSevenRe = regexp.MustCompile(`\b\d{5,7}\b`)
	contextCodeRe = regexp.MustCompile(`(?i)(?:verification\s+code|code)\s*:?\s*(\d{4,8})`)
	anyDigitRunRe = regexp.MustCompile(`\d{4,8}`)
)

// Match is a successful code extraction.
type Match struct {
	Code     string // The verification code
	Strategy string // Which strategy produced it
}

// strategy is one extraction heuristic. Absence of a match is a normal
// outcome, not an error: many mailbox messages are not OTP messages.
type strategy struct {
	name    string
	extract func(body string) (string, bool)
}

// Extractor finds verification codes using an ordered cascade of
// strategies; the first match wins. The cascade trades precision for
// recall: later strategies are deliberately forgiving of non-standard
// carrier message wording.
type Extractor struct {
	strategies []strategy
}

// NewExtractor creates an extractor with the default strategy cascade.
func NewExtractor() *Extractor {
	return &Extractor{
		strategies: []strategy{
			{"six_digits", extractSixDigits},
			{"five_to_seven_digits", extractFiveToSeven},
			{"context_keyword", extractContextCode},
			{"any_digit_run", extractAnyDigitRun},
		},
	}
}

// Extract runs the cascade against a cleaned body and returns the first
// match. A body with no extractable code returns ok=false, never an error.
func (e *Extractor) Extract(cleanedBody string) (Match, bool) {
	if cleanedBody == "" {
		return Match{}, false
	}

	for _, s := range e.strategies {
		if code, ok := s.extract(cleanedBody); ok {
			return Match{Code: code, Strategy: s.name}, true
		}
	}

	return Match{}, false
}

// extractSixDigits matches a standalone run of exactly 6 digits.
func extractSixDigits(body string) (string, bool) {
	code := sixDigitsRe.FindString(body)
	return code, code != ""
}

// extractFiveToSeven matches a standalone run of 5-7 digits. A 7-digit
// match is truncated to its first 6 characters; a 5-digit match is
// accepted as-is. Permissive by intent, not a validation step.
func extractFiveToSeven(body string) (string, bool) {
	code := fiveToSevenRe.FindString(body)
	if code == "" {
		return "", false
	}
	if len(code) > 6 {
		code = code[:6]
	}
	return code, true
}

// extractContextCode captures 4-8 digits following "verification code"
// or the bare word "code", with an optional colon.
func extractContextCode(body string) (string, bool) {
	m := contextCodeRe.FindStringSubmatch(body)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// extractAnyDigitRun matches any run of 4-8 digits anywhere in the body.
// Last resort: accepts the false-positive risk for robustness against
// unusual carrier formats.
func extractAnyDigitRun(body string) (string, bool) {
	code := anyDigitRunRe.FindString(body)
	return code, code != ""
}
