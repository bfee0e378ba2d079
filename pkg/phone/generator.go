// Package phone generates and formats test phone numbers for signup runs.
package phone

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Style controls Format output.
type Style string

const (
	StyleRaw           Style = "raw"           // 5551234567
	StyleDashes        Style = "dashes"        // 555-123-4567
	StyleParentheses   Style = "parentheses"   // (555) 123-4567
	StyleInternational Style = "international" // +1-555-123-4567
)

// Generate returns a random 10-digit phone number.
// The first digit is 1-9 so the number never starts with zero.
func Generate() string {
	var b strings.Builder
	b.WriteByte(byte('1' + rand.IntN(9)))
	for i := 0; i < 9; i++ {
		b.WriteByte(byte('0' + rand.IntN(10)))
	}
	return b.String()
}

// WithAreaCode returns a random phone number with a fixed 3-digit area code.
func WithAreaCode(areaCode string) (string, error) {
	if len(areaCode) != 3 {
		return "", fmt.Errorf("area code must be 3 digits, got %q", areaCode)
	}
	for _, ch := range areaCode {
		if ch < '0' || ch > '9' {
			return "", fmt.Errorf("area code must be 3 digits, got %q", areaCode)
		}
	}

	var b strings.Builder
	b.WriteString(areaCode)
	for i := 0; i < 7; i++ {
		b.WriteByte(byte('0' + rand.IntN(10)))
	}
	return b.String(), nil
}

// Format renders a 10-digit phone number in the given style.
func Format(phone string, style Style) (string, error) {
	if len(phone) != 10 {
		return "", fmt.Errorf("phone number must be 10 digits, got %d", len(phone))
	}

	switch style {
	case StyleRaw, "":
		return phone, nil
	case StyleDashes:
		return fmt.Sprintf("%s-%s-%s", phone[:3], phone[3:6], phone[6:]), nil
	case StyleParentheses:
		return fmt.Sprintf("(%s) %s-%s", phone[:3], phone[3:6], phone[6:]), nil
	case StyleInternational:
		return fmt.Sprintf("+1-%s-%s-%s", phone[:3], phone[3:6], phone[6:]), nil
	default:
		return "", fmt.Errorf("unsupported format style: %q", style)
	}
}

// Valid reports whether phone contains a usable 10-digit number.
// Non-digit characters are stripped before checking, so formatted
// numbers validate too. Numbers starting with 0 are rejected.
func Valid(phone string) bool {
	digits := digitsOnly(phone)
	return len(digits) == 10 && digits[0] != '0'
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if ch >= '0' && ch <= '9' {
			b.WriteRune(ch)
		}
	}
	return b.String()
}
