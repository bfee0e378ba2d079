// Package device enumerates connected Android devices via ADB.
package device

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// Info describes a connected Android device.
type Info struct {
	Serial     string // ADB serial, e.g. "emulator-5554"
	Model      string // ro.product.model
	OSVersion  string // ro.build.version.release
	IsEmulator bool
}

// List returns all connected Android devices with model and OS version.
// A missing property leaves the field empty rather than failing the
// whole enumeration.
func List() ([]Info, error) {
	adbPath, err := findADB()
	if err != nil {
		return nil, err
	}

	out, err := runADB(adbPath, "devices")
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}

	var devices []Info
	for _, serial := range ParseDeviceList(out) {
		info := Info{Serial: serial}
		if model, err := runADB(adbPath, "-s", serial, "shell", "getprop", "ro.product.model"); err == nil {
			info.Model = strings.TrimSpace(model)
		}
		if version, err := runADB(adbPath, "-s", serial, "shell", "getprop", "ro.build.version.release"); err == nil {
			info.OSVersion = strings.TrimSpace(version)
		}
		if qemu, err := runADB(adbPath, "-s", serial, "shell", "getprop", "ro.kernel.qemu"); err == nil {
			info.IsEmulator = strings.TrimSpace(qemu) == "1"
		}
		devices = append(devices, info)
	}

	return devices, nil
}

// FirstSerial returns the serial of the first connected device.
func FirstSerial() (string, error) {
	adbPath, err := findADB()
	if err != nil {
		return "", err
	}

	out, err := runADB(adbPath, "devices")
	if err != nil {
		return "", err
	}

	serials := ParseDeviceList(out)
	if len(serials) == 0 {
		return "", fmt.Errorf("no connected devices found")
	}
	return serials[0], nil
}

// ParseDeviceList extracts serials in "device" state from adb devices output.
// Offline and unauthorized entries are skipped.
func ParseDeviceList(out string) []string {
	var serials []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "List of") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) >= 2 && parts[1] == "device" {
			serials = append(serials, parts[0])
		}
	}
	return serials
}

// runADB executes an ADB command.
func runADB(adbPath string, args ...string) (string, error) {
	cmd := exec.Command(adbPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		errMsg := stderr.String()
		if errMsg == "" {
			errMsg = stdout.String()
		}
		return "", fmt.Errorf("adb %s: %w: %s", strings.Join(args, " "), err, errMsg)
	}

	return stdout.String(), nil
}

// findADB locates the ADB binary.
func findADB() (string, error) {
	if path, err := exec.LookPath("adb"); err == nil {
		return path, nil
	}
	return "", fmt.Errorf("adb not found in PATH; ensure Android SDK is installed")
}
