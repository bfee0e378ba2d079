package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/otpkit/pkg/validator"
)

var validateCommand = &cli.Command{
	Name:      "validate",
	Usage:     "Validate tags in flow YAML files",
	ArgsUsage: "<file-or-directory>",
	Description: `Check that flow files carry the required tags with valid values.

Examples:
  otpkit validate flows/
  otpkit validate flows/signup.yaml --strict`,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "Treat warnings as errors",
		},
	},
	Action: runValidate,
}

func runValidate(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one file or directory argument")
	}

	result := validator.New().Validate(c.Args().First())

	for _, warn := range result.Warnings {
		fmt.Printf("WARN: %v\n", warn)
	}
	for _, err := range result.Errors {
		fmt.Printf("ERROR: %v\n", err)
	}

	failures := len(result.Errors)
	if c.Bool("strict") {
		failures += len(result.Warnings)
	}

	if failures > 0 {
		return fmt.Errorf("%d problem(s) in %d file(s)", failures, len(result.Files))
	}

	fmt.Printf("OK: %d file(s) validated\n", len(result.Files))
	return nil
}
