// Package simulator enumerates iOS simulators and connected iOS devices.
package simulator

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

// FindSimctlBinary verifies that xcrun/simctl is available.
func FindSimctlBinary() (string, error) {
	path, err := exec.LookPath("xcrun")
	if err != nil {
		return "", fmt.Errorf("xcrun not found; install Xcode Command Line Tools: xcode-select --install")
	}
	return path, nil
}

// simctlDevicesOutput represents the JSON output from xcrun simctl list devices.
type simctlDevicesOutput struct {
	Devices map[string][]simctlDevice `json:"devices"`
}

type simctlDevice struct {
	Name        string `json:"name"`
	UDID        string `json:"udid"`
	State       string `json:"state"`
	IsAvailable bool   `json:"isAvailable"`
}

// List returns all available iOS simulators.
func List() ([]Device, error) {
	if _, err := FindSimctlBinary(); err != nil {
		return nil, err
	}

	cmd := exec.Command("xcrun", "simctl", "list", "devices", "available", "-j")
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to list simulators: %w", err)
	}

	return ParseSimctlOutput(output)
}

// ParseSimctlOutput decodes simctl JSON into simulator devices.
func ParseSimctlOutput(output []byte) ([]Device, error) {
	var data simctlDevicesOutput
	if err := json.Unmarshal(output, &data); err != nil {
		return nil, fmt.Errorf("failed to parse simctl output: %w", err)
	}

	var sims []Device
	for runtime, devices := range data.Devices {
		osVersion := extractOSVersion(runtime)
		for _, dev := range devices {
			if !dev.IsAvailable {
				continue
			}
			sims = append(sims, Device{
				Name:        dev.Name,
				UDID:        dev.UDID,
				Runtime:     runtime,
				OSVersion:   osVersion,
				State:       dev.State,
				IsAvailable: dev.IsAvailable,
			})
		}
	}
	return sims, nil
}

// extractOSVersion converts a runtime identifier to a dotted version.
// "com.apple.CoreSimulator.SimRuntime.iOS-17-2" -> "17.2"
func extractOSVersion(runtime string) string {
	const prefix = "com.apple.CoreSimulator.SimRuntime.iOS-"
	if !strings.HasPrefix(runtime, prefix) {
		return ""
	}
	return strings.ReplaceAll(strings.TrimPrefix(runtime, prefix), "-", ".")
}

// ListBooted returns available simulators that are currently booted.
func ListBooted() ([]Device, error) {
	sims, err := List()
	if err != nil {
		return nil, err
	}

	var booted []Device
	for _, sim := range sims {
		if sim.State == "Booted" {
			booted = append(booted, sim)
		}
	}
	return booted, nil
}

// ListPhysicalDevices returns connected physical iOS devices via
// libimobiledevice. Devices whose info cannot be read are still listed
// with just the UDID.
func ListPhysicalDevices() ([]PhysicalDevice, error) {
	path, err := exec.LookPath("idevice_id")
	if err != nil {
		return nil, fmt.Errorf("idevice_id not found; install libimobiledevice for device detection")
	}

	output, err := exec.Command(path, "-l").Output()
	if err != nil {
		return nil, fmt.Errorf("failed to list iOS devices: %w", err)
	}

	var devices []PhysicalDevice
	for _, udid := range strings.Fields(string(output)) {
		dev := PhysicalDevice{UDID: udid}
		if name, err := ideviceProperty(udid, "DeviceName"); err == nil {
			dev.Name = name
		}
		if version, err := ideviceProperty(udid, "ProductVersion"); err == nil {
			dev.OSVersion = version
		}
		devices = append(devices, dev)
	}
	return devices, nil
}

func ideviceProperty(udid, key string) (string, error) {
	output, err := exec.Command("ideviceinfo", "-u", udid, "-k", key).Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}
