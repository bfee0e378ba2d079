package otp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/devicelab-dev/otpkit/pkg/core"
	"github.com/devicelab-dev/otpkit/pkg/mailbox"
)

// smsSubjectMarker identifies SMS gateway messages in the subject line.
const smsSubjectMarker = "SMS"

// Defaults for the retry loop.
const (
	DefaultMaxAttempts      = 10
	DefaultFallbackAttempts = 5
	DefaultRetryDelay       = 3 * time.Second
)

// MessageSource supplies mailbox messages in received order.
// *mailbox.Client satisfies it.
type MessageSource interface {
	Messages(ctx context.Context, limit int, subjectFilter string) ([]mailbox.Message, error)
}

// Retriever polls the mailbox for an SMS verification code.
// One retrieval call blocks until a code is found, the attempt budget is
// spent, or a final-attempt fetch fails. Every attempt rescans the
// current message list from scratch; nothing is cached between calls.
// Not safe for concurrent use.
type Retriever struct {
	source    MessageSource
	extractor *Extractor
	log       *slog.Logger

	maxAttempts      int
	fallbackAttempts int
	retryDelay       time.Duration
	fetchLimit       int
}

// Option configures a Retriever.
type Option func(*Retriever)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(r *Retriever) { r.log = log }
}

// WithMaxAttempts sets the attempt budget for phone-filtered retrieval.
func WithMaxAttempts(n int) Option {
	return func(r *Retriever) { r.maxAttempts = n }
}

// WithFallbackAttempts sets the attempt budget for fallback retrieval.
func WithFallbackAttempts(n int) Option {
	return func(r *Retriever) { r.fallbackAttempts = n }
}

// WithRetryDelay sets the wait between attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(r *Retriever) { r.retryDelay = d }
}

// WithFetchLimit sets how many messages each attempt fetches.
func WithFetchLimit(n int) Option {
	return func(r *Retriever) { r.fetchLimit = n }
}

// NewRetriever creates a Retriever backed by the given message source.
func NewRetriever(source MessageSource, opts ...Option) *Retriever {
	r := &Retriever{
		source:           source,
		extractor:        NewExtractor(),
		log:              slog.Default(),
		maxAttempts:      DefaultMaxAttempts,
		fallbackAttempts: DefaultFallbackAttempts,
		retryDelay:       DefaultRetryDelay,
		fetchLimit:       mailbox.DefaultLimit,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CodeForPhone retrieves the verification code sent to the given phone
// number. Only messages whose subject contains both the SMS marker and
// the phone number qualify.
func (r *Retriever) CodeForPhone(ctx context.Context, phoneNumber string) (string, error) {
	result, err := r.RetrieveForPhone(ctx, phoneNumber)
	if err != nil {
		return "", err
	}
	return result.Code, nil
}

// LatestCode retrieves a verification code from the most recent SMS
// message without phone number filtering. Used as a fallback when the
// gateway did not embed the phone number in the subject.
func (r *Retriever) LatestCode(ctx context.Context) (string, error) {
	result, err := r.RetrieveLatest(ctx)
	if err != nil {
		return "", err
	}
	return result.Code, nil
}

// RetrieveForPhone is CodeForPhone with the full per-attempt record.
func (r *Retriever) RetrieveForPhone(ctx context.Context, phoneNumber string) (*core.RetrievalResult, error) {
	if phoneNumber == "" {
		return nil, core.ErrMissingRequired.WithMessage("phone number is required for filtered retrieval")
	}
	return r.run(ctx, core.ModePhone, phoneNumber, r.maxAttempts)
}

// RetrieveLatest is LatestCode with the full per-attempt record.
func (r *Retriever) RetrieveLatest(ctx context.Context) (*core.RetrievalResult, error) {
	return r.run(ctx, core.ModeFallback, "", r.fallbackAttempts)
}

func (r *Retriever) run(ctx context.Context, mode core.Mode, phoneNumber string, maxAttempts int) (*core.RetrievalResult, error) {
	if maxAttempts < 1 {
		return nil, core.ErrInvalidConfig.WithMessage(fmt.Sprintf("max attempts must be positive, got %d", maxAttempts))
	}

	log := r.log.With("mode", string(mode))
	if phoneNumber != "" {
		log = log.With("phoneNumber", phoneNumber)
	}
	log.Info("starting verification code retrieval",
		"maxAttempts", maxAttempts, "retryDelay", r.retryDelay)

	result := &core.RetrievalResult{
		Mode:        mode,
		PhoneNumber: phoneNumber,
		StartTime:   time.Now(),
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		ar := core.AttemptResult{
			Attempt:     attempt,
			MaxAttempts: maxAttempts,
			Mode:        mode,
			Status:      core.StatusFetching,
			StartTime:   time.Now(),
		}
		log.Debug("fetching messages", "attempt", attempt)

		messages, err := r.source.Messages(ctx, r.fetchLimit, "")
		if err != nil {
			ar.Status = core.StatusFailed
			ar.Error = err.Error()
			ar.Duration = time.Since(ar.StartTime)
			result.Attempts = append(result.Attempts, ar)

			if attempt == maxAttempts {
				r.finish(result, core.StatusFailed)
				log.Error("fetch failed on final attempt", "attempt", attempt, "error", err)
				return result, core.ErrFetchFailed.WithCause(err).WithDetails(map[string]interface{}{
					"attempt": attempt,
				})
			}

			log.Warn("fetch failed, will retry", "attempt", attempt, "error", err)
			if werr := r.wait(ctx); werr != nil {
				r.finish(result, core.StatusFailed)
				return result, werr
			}
			continue
		}

		ar.Status = core.StatusScanning
		ar.MessagesSeen = len(messages)
		log.Debug("scanning messages", "attempt", attempt, "count", len(messages))

		if match, subject, ok := r.scan(log, messages, phoneNumber); ok {
			ar.Status = core.StatusFound
			ar.Matched = true
			ar.Code = match.Code
			ar.Subject = subject
			ar.Duration = time.Since(ar.StartTime)
			result.Attempts = append(result.Attempts, ar)
			result.Code = match.Code
			r.finish(result, core.StatusFound)

			log.Info("verification code extracted",
				"attempt", attempt, "code", match.Code, "strategy", match.Strategy)
			return result, nil
		}

		ar.Duration = time.Since(ar.StartTime)
		if attempt == maxAttempts {
			ar.Status = core.StatusExhausted
		}
		result.Attempts = append(result.Attempts, ar)

		if attempt < maxAttempts {
			log.Info("no matching code yet, waiting before retry",
				"attempt", attempt, "delay", r.retryDelay)
			if werr := r.wait(ctx); werr != nil {
				r.finish(result, core.StatusFailed)
				return result, werr
			}
		}
	}

	r.finish(result, core.StatusExhausted)
	log.Error("attempt budget exhausted without a code", "attempts", maxAttempts)

	msg := fmt.Sprintf("no verification code found in any recent SMS messages after %d attempts", maxAttempts)
	details := map[string]interface{}{"attempts": maxAttempts}
	if mode == core.ModePhone {
		msg = fmt.Sprintf("no verification code found for phone number %s after %d attempts", phoneNumber, maxAttempts)
		details["phoneNumber"] = phoneNumber
	}
	return result, core.ErrAttemptsExhausted.WithMessage(msg).WithDetails(details)
}

// scan walks messages in received order and returns the first extracted
// code. An empty phoneNumber matches any SMS subject (fallback mode).
func (r *Retriever) scan(log *slog.Logger, messages []mailbox.Message, phoneNumber string) (Match, string, bool) {
	for i := range messages {
		m := &messages[i]
		subject := m.Subject()
		if !strings.Contains(subject, smsSubjectMarker) {
			continue
		}
		if phoneNumber != "" && !strings.Contains(subject, phoneNumber) {
			continue
		}

		log.Debug("matched SMS message", "subject", subject)

		cleaned := CleanBody(m.Body())
		log.Debug("cleaned message body", "rawLength", len(m.Body()), "cleaned", cleaned)

		if match, ok := r.extractor.Extract(cleaned); ok {
			return match, subject, true
		}
		log.Debug("no code in matched message, continuing scan", "subject", subject)
	}
	return Match{}, "", false
}

// wait sleeps for the retry delay, honoring context cancellation.
func (r *Retriever) wait(ctx context.Context) error {
	timer := time.NewTimer(r.retryDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("retrieval cancelled: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}

func (r *Retriever) finish(result *core.RetrievalResult, status core.RetrievalStatus) {
	result.Status = status
	result.Duration = time.Since(result.StartTime)
	result.ComputeSummary()
}
