package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/otpkit/pkg/config"
	"github.com/devicelab-dev/otpkit/pkg/core"
	"github.com/devicelab-dev/otpkit/pkg/mailbox"
	"github.com/devicelab-dev/otpkit/pkg/otp"
)

var fetchCommand = &cli.Command{
	Name:  "fetch",
	Usage: "Retrieve a verification code from the mailbox",
	Description: `Poll the mailbox for an SMS verification code and print it to stdout.

With --phone, messages are matched against the phone number first; if no
code turns up within the attempt budget, retrieval falls back to scanning
all recent SMS messages. With --latest, only the unfiltered scan runs.

Examples:
  otpkit fetch --phone 5551234567
  otpkit fetch --phone "(555) 123-4567" --max-attempts 20
  otpkit fetch --latest
  otpkit fetch --phone 5551234567 --no-fallback`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "phone",
			Aliases: []string{"n"},
			Usage:   "Phone number the code was sent to",
		},
		&cli.BoolFlag{
			Name:  "latest",
			Usage: "Skip phone matching and take the latest code found",
		},
		&cli.StringFlag{
			Name:    "mailbox-url",
			Usage:   "Mailbox API base URL",
			EnvVars: []string{"OTPKIT_MAILBOX_URL"},
		},
		&cli.IntFlag{
			Name:    "max-attempts",
			Aliases: []string{"attempts"},
			Usage:   "Polling attempts before giving up (phone-matched pass)",
		},
		&cli.IntFlag{
			Name:  "fallback-attempts",
			Usage: "Polling attempts for the unfiltered fallback pass",
		},
		&cli.DurationFlag{
			Name:    "retry-delay",
			Aliases: []string{"delay"},
			Usage:   "Pause between polling attempts",
		},
		&cli.IntFlag{
			Name:  "limit",
			Usage: "Messages fetched per poll",
		},
		&cli.BoolFlag{
			Name:  "no-fallback",
			Usage: "Fail instead of falling back to an unfiltered scan",
		},
	},
	Action: runFetch,
}

func runFetch(c *cli.Context) error {
	phone := c.String("phone")
	latest := c.Bool("latest")

	if phone == "" && !latest {
		return fmt.Errorf("either --phone or --latest is required")
	}
	if phone != "" && latest {
		return fmt.Errorf("--phone and --latest are mutually exclusive")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	applyFetchFlags(cfg, c)

	log := newLogger(cfg)
	client := mailbox.NewClient(cfg.MailboxURL)
	retriever := otp.NewRetriever(client,
		otp.WithLogger(log),
		otp.WithMaxAttempts(cfg.MaxAttempts),
		otp.WithFallbackAttempts(cfg.FallbackAttempts),
		otp.WithRetryDelay(cfg.RetryDelay),
		otp.WithFetchLimit(cfg.FetchLimit),
	)

	var code string
	if latest {
		code, err = retriever.LatestCode(c.Context)
	} else {
		code, err = fetchForPhone(c.Context, retriever, log, phone, c.Bool("no-fallback"))
	}
	if err != nil {
		return err
	}

	fmt.Println(code)
	return nil
}

// fetchForPhone runs the phone-matched pass and, unless disabled, falls
// back to an unfiltered scan when the phone pass exhausts its attempts.
func fetchForPhone(ctx context.Context, retriever *otp.Retriever, log *slog.Logger, phone string, noFallback bool) (string, error) {
	code, err := retriever.CodeForPhone(ctx, phone)
	if err == nil {
		return code, nil
	}

	if noFallback || !isExhausted(err) {
		return "", err
	}

	log.Warn("no code matched phone number, scanning all recent messages", "phone", phone)
	return retriever.LatestCode(ctx)
}

func isExhausted(err error) bool {
	var rerr *core.RetrievalError
	return errors.As(err, &rerr) && rerr.Category == core.ErrCategoryExhausted
}

// applyFetchFlags overrides config values with explicitly set flags.
func applyFetchFlags(cfg *config.Config, c *cli.Context) {
	if c.String("mailbox-url") != "" {
		cfg.MailboxURL = c.String("mailbox-url")
	}
	if c.IsSet("max-attempts") {
		cfg.MaxAttempts = c.Int("max-attempts")
	}
	if c.IsSet("fallback-attempts") {
		cfg.FallbackAttempts = c.Int("fallback-attempts")
	}
	if c.IsSet("retry-delay") {
		cfg.RetryDelay = c.Duration("retry-delay")
	}
	if c.IsSet("limit") {
		cfg.FetchLimit = c.Int("limit")
	}
}
