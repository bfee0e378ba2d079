// Package cli provides the command-line interface for otpkit.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/otpkit/pkg/config"
	"github.com/devicelab-dev/otpkit/pkg/logger"
)

// Version is set at build time.
var Version = "dev"

// GlobalFlags are available to all commands.
var GlobalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to otpkit.yaml (defaults to ./otpkit.yaml if present)",
		EnvVars: []string{"OTPKIT_CONFIG"},
	},
	&cli.StringFlag{
		Name:    "log-level",
		Usage:   "Log level (debug, info, warn, error)",
		EnvVars: []string{"OTPKIT_LOG_LEVEL"},
	},
	&cli.StringFlag{
		Name:    "log-format",
		Usage:   "Log format (text, json)",
		EnvVars: []string{"OTPKIT_LOG_FORMAT"},
	},
	&cli.StringFlag{
		Name:  "env-file",
		Usage: "Extra .env file to load before reading configuration",
	},
	&cli.BoolFlag{
		Name:    "verbose",
		Usage:   "Enable verbose logging (same as --log-level debug)",
		EnvVars: []string{"OTPKIT_VERBOSE"},
	},
}

// Execute runs the CLI.
func Execute() {
	app := &cli.App{
		Name:    "otpkit",
		Usage:   "Verification code retrieval for wallet signup testing",
		Version: Version,
		Description: `otpkit polls an SMS-to-email mailbox and extracts one-time
verification codes for automated signup flows.

Examples:
  otpkit fetch --phone 5551234567
  otpkit fetch --latest
  otpkit phone --format dashes
  otpkit devices --platform android
  otpkit validate flows/`,
		Flags: GlobalFlags,
		Commands: []*cli.Command{
			fetchCommand,
			phoneCommand,
			devicesCommand,
			validateCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration for a command:
// the --config file (or ./otpkit.yaml), then flag overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	if envFile := c.String("env-file"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	var cfg *config.Config
	var err error

	if path := c.String("config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadFromDir(".")
	}
	if err != nil {
		return nil, err
	}

	if c.String("log-level") != "" {
		cfg.LogLevel = c.String("log-level")
	}
	if c.Bool("verbose") {
		cfg.LogLevel = "debug"
	}
	if c.String("log-format") != "" {
		cfg.LogFormat = c.String("log-format")
	}

	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logger.New(cfg.LogLevel, cfg.LogFormat)
}
