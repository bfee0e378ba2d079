// Package otp extracts SMS verification codes from mailbox messages.
package otp

import (
	"regexp"
	"strings"
)

var (
	// Quoted-printable soft line break: "=" followed by one whitespace char.
	// These fragment a numeric code across lines when messages arrive
	// quoted-printable encoded.
	qpSoftBreakRe = regexp.MustCompile(`=\s`)

	whitespaceRe = regexp.MustCompile(`\s+`)
)

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// CleanBody normalizes a raw SMS body for pattern matching.
// The steps run in a fixed order: line breaks become spaces, then
// quoted-printable soft break artifacts are deleted, then whitespace
// runs collapse to a single space. Empty input yields an empty string.
// The result is stable: cleaning already-clean text changes nothing.
func CleanBody(body string) string {
	if body == "" {
		return ""
	}

	cleaned := lineBreaks.Replace(body)
	cleaned = qpSoftBreakRe.ReplaceAllString(cleaned, "")
	cleaned = whitespaceRe.ReplaceAllString(cleaned, " ")

	return strings.TrimSpace(cleaned)
}
