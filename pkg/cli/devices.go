package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/otpkit/pkg/device"
	"github.com/devicelab-dev/otpkit/pkg/simulator"
)

var devicesCommand = &cli.Command{
	Name:  "devices",
	Usage: "List connected devices and simulators",
	Description: `List Android devices/emulators via adb and iOS simulators and
physical devices via simctl and libimobiledevice.

Examples:
  otpkit devices
  otpkit devices --platform android
  otpkit devices --platform ios --booted`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "platform",
			Aliases: []string{"p"},
			Usage:   "Platform to list (ios, android, all)",
			Value:   "all",
		},
		&cli.BoolFlag{
			Name:  "booted",
			Usage: "Only show booted iOS simulators",
		},
	},
	Action: runDevices,
}

func runDevices(c *cli.Context) error {
	platform := c.String("platform")
	if platform != "ios" && platform != "android" && platform != "all" {
		return fmt.Errorf("invalid platform %q (ios, android, all)", platform)
	}

	if platform == "android" || platform == "all" {
		if err := printAndroidDevices(); err != nil && platform == "android" {
			return err
		}
	}
	if platform == "ios" || platform == "all" {
		if err := printIOSDevices(c.Bool("booted")); err != nil && platform == "ios" {
			return err
		}
	}

	return nil
}

func printAndroidDevices() error {
	devices, err := device.List()
	if err != nil {
		fmt.Printf("Android: unavailable (%v)\n", err)
		return err
	}

	fmt.Printf("Android devices (%d):\n", len(devices))
	for _, d := range devices {
		kind := "device"
		if d.IsEmulator {
			kind = "emulator"
		}
		fmt.Printf("  %s  %s  Android %s  [%s]\n", d.Serial, d.Model, d.OSVersion, kind)
	}

	return nil
}

func printIOSDevices(bootedOnly bool) error {
	var sims []simulator.Device
	var err error
	if bootedOnly {
		sims, err = simulator.ListBooted()
	} else {
		sims, err = simulator.List()
	}
	if err != nil {
		fmt.Printf("iOS simulators: unavailable (%v)\n", err)
		return err
	}

	fmt.Printf("iOS simulators (%d):\n", len(sims))
	for _, s := range sims {
		fmt.Printf("  %s  %s  iOS %s  [%s]\n", s.UDID, s.Name, s.OSVersion, s.State)
	}

	// Physical devices are optional; listing fails without libimobiledevice.
	physical, err := simulator.ListPhysicalDevices()
	if err == nil && len(physical) > 0 {
		fmt.Printf("iOS devices (%d):\n", len(physical))
		for _, p := range physical {
			fmt.Printf("  %s  %s  iOS %s\n", p.UDID, p.Name, p.OSVersion)
		}
	}

	return nil
}
