package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/devicelab-dev/otpkit/pkg/core"
	"github.com/devicelab-dev/otpkit/pkg/mailbox"
	"github.com/devicelab-dev/otpkit/pkg/otp"
	"github.com/devicelab-dev/otpkit/pkg/phone"
)

func TestParseStyle_Valid(t *testing.T) {
	tests := []struct {
		format string
		want   phone.Style
	}{
		{"raw", phone.StyleRaw},
		{"", phone.StyleRaw},
		{"dashes", phone.StyleDashes},
		{"parentheses", phone.StyleParentheses},
		{"international", phone.StyleInternational},
	}

	for _, tt := range tests {
		style, err := parseStyle(tt.format)
		if err != nil {
			t.Errorf("parseStyle(%q) unexpected error: %v", tt.format, err)
			continue
		}
		if style != tt.want {
			t.Errorf("parseStyle(%q) = %v, want %v", tt.format, style, tt.want)
		}
	}
}

func TestParseStyle_Unknown(t *testing.T) {
	_, err := parseStyle("e164")
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
	if !strings.Contains(err.Error(), "e164") {
		t.Errorf("expected error to name the format, got: %v", err)
	}
}

func TestIsExhausted(t *testing.T) {
	exhausted := core.ErrAttemptsExhausted.WithMessage("no verification code found")
	if !isExhausted(exhausted) {
		t.Error("expected exhausted error to be detected")
	}

	wrapped := fmt.Errorf("fetch: %w", exhausted)
	if !isExhausted(wrapped) {
		t.Error("expected wrapped exhausted error to be detected")
	}

	if isExhausted(core.ErrFetchFailed) {
		t.Error("fetch error misclassified as exhausted")
	}
	if isExhausted(errors.New("plain")) {
		t.Error("plain error misclassified as exhausted")
	}
	if isExhausted(nil) {
		t.Error("nil misclassified as exhausted")
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func smsServer(t *testing.T, messages []mailbox.Message) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"total": len(messages),
			"count": len(messages),
			"items": messages,
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}))
}

func smsMessage(id, subject, body string) mailbox.Message {
	return mailbox.Message{
		ID: id,
		Content: mailbox.Content{
			Headers: mailbox.Headers{Subject: []string{subject}},
			Body:    body,
		},
	}
}

func TestFetchForPhone_FallsBackToLatest(t *testing.T) {
	// Only message is an SMS for a different number, so the phone pass
	// exhausts and the fallback scan picks it up.
	server := smsServer(t, []mailbox.Message{
		smsMessage("1", "SMS from 9998887777", "Your code is 654321"),
	})
	defer server.Close()

	retriever := otp.NewRetriever(mailbox.NewClient(server.URL),
		otp.WithLogger(discardLogger()),
		otp.WithMaxAttempts(2),
		otp.WithFallbackAttempts(2),
		otp.WithRetryDelay(0),
	)

	code, err := fetchForPhone(context.Background(), retriever, discardLogger(), "5551234567", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != "654321" {
		t.Errorf("expected code 654321 from fallback, got %q", code)
	}
}

func TestFetchForPhone_NoFallback(t *testing.T) {
	server := smsServer(t, []mailbox.Message{
		smsMessage("1", "SMS from 9998887777", "Your code is 654321"),
	})
	defer server.Close()

	retriever := otp.NewRetriever(mailbox.NewClient(server.URL),
		otp.WithLogger(discardLogger()),
		otp.WithMaxAttempts(2),
		otp.WithFallbackAttempts(2),
		otp.WithRetryDelay(0),
	)

	_, err := fetchForPhone(context.Background(), retriever, discardLogger(), "5551234567", true)
	if err == nil {
		t.Fatal("expected exhaustion error with fallback disabled")
	}
	if !isExhausted(err) {
		t.Errorf("expected exhausted error, got: %v", err)
	}
}

func TestFetchForPhone_PhoneMatchWins(t *testing.T) {
	server := smsServer(t, []mailbox.Message{
		smsMessage("1", "SMS from 9998887777", "Your code is 111111"),
		smsMessage("2", "SMS from 5551234567", "Your code is 222222"),
	})
	defer server.Close()

	retriever := otp.NewRetriever(mailbox.NewClient(server.URL),
		otp.WithLogger(discardLogger()),
		otp.WithMaxAttempts(2),
		otp.WithRetryDelay(0),
	)

	code, err := fetchForPhone(context.Background(), retriever, discardLogger(), "5551234567", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != "222222" {
		t.Errorf("expected code 222222 for matching phone, got %q", code)
	}
}
