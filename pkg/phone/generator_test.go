package phone

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	for i := 0; i < 100; i++ {
		phone := Generate()
		if len(phone) != 10 {
			t.Fatalf("Generate() = %q, want 10 digits", phone)
		}
		if phone[0] == '0' {
			t.Fatalf("Generate() = %q, first digit must not be 0", phone)
		}
		for _, ch := range phone {
			if ch < '0' || ch > '9' {
				t.Fatalf("Generate() = %q, contains non-digit", phone)
			}
		}
	}
}

func TestWithAreaCode(t *testing.T) {
	phone, err := WithAreaCode("555")
	if err != nil {
		t.Fatalf("WithAreaCode failed: %v", err)
	}
	if len(phone) != 10 {
		t.Errorf("WithAreaCode() = %q, want 10 digits", phone)
	}
	if !strings.HasPrefix(phone, "555") {
		t.Errorf("WithAreaCode() = %q, want 555 prefix", phone)
	}
}

func TestWithAreaCode_Invalid(t *testing.T) {
	for _, code := range []string{"", "55", "5555", "5a5"} {
		if _, err := WithAreaCode(code); err == nil {
			t.Errorf("WithAreaCode(%q) should fail", code)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		style    Style
		expected string
	}{
		{StyleRaw, "5551234567"},
		{Style(""), "5551234567"},
		{StyleDashes, "555-123-4567"},
		{StyleParentheses, "(555) 123-4567"},
		{StyleInternational, "+1-555-123-4567"},
	}

	for _, tt := range tests {
		got, err := Format("5551234567", tt.style)
		if err != nil {
			t.Errorf("Format(%q) failed: %v", tt.style, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("Format(%q) = %q, want %q", tt.style, got, tt.expected)
		}
	}
}

func TestFormat_Errors(t *testing.T) {
	if _, err := Format("123", StyleRaw); err == nil {
		t.Error("Format should reject numbers that are not 10 digits")
	}
	if _, err := Format("5551234567", Style("morse")); err == nil {
		t.Error("Format should reject unknown styles")
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"5551234567", true},
		{"555-123-4567", true},
		{"(555) 123-4567", true},
		{"+1-555-123-4567", false}, // 11 digits with country code
		{"0551234567", false},      // leading zero
		{"555123456", false},       // too short
		{"", false},
	}

	for _, tt := range tests {
		if got := Valid(tt.phone); got != tt.valid {
			t.Errorf("Valid(%q) = %v, want %v", tt.phone, got, tt.valid)
		}
	}
}
