package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/otpkit/pkg/phone"
)

var phoneCommand = &cli.Command{
	Name:  "phone",
	Usage: "Generate test phone numbers",
	Description: `Generate random US-style phone numbers for signup flows.

Examples:
  otpkit phone
  otpkit phone --area-code 555
  otpkit phone --format parentheses --count 5`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "area-code",
			Usage: "Fixed 3-digit area code",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (raw, dashes, parentheses, international)",
			Value:   "raw",
		},
		&cli.IntFlag{
			Name:  "count",
			Usage: "Number of phone numbers to generate",
			Value: 1,
		},
	},
	Action: runPhone,
}

func runPhone(c *cli.Context) error {
	style, err := parseStyle(c.String("format"))
	if err != nil {
		return err
	}

	count := c.Int("count")
	if count < 1 {
		return fmt.Errorf("--count must be at least 1, got %d", count)
	}

	areaCode := c.String("area-code")
	for i := 0; i < count; i++ {
		var number string
		if areaCode != "" {
			number, err = phone.WithAreaCode(areaCode)
			if err != nil {
				return err
			}
		} else {
			number = phone.Generate()
		}

		formatted, err := phone.Format(number, style)
		if err != nil {
			return err
		}
		fmt.Println(formatted)
	}

	return nil
}

func parseStyle(format string) (phone.Style, error) {
	switch format {
	case "raw", "":
		return phone.StyleRaw, nil
	case "dashes":
		return phone.StyleDashes, nil
	case "parentheses":
		return phone.StyleParentheses, nil
	case "international":
		return phone.StyleInternational, nil
	default:
		return "", fmt.Errorf("unknown format %q (raw, dashes, parentheses, international)", format)
	}
}
