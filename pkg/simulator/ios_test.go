package simulator

import (
	"os/exec"
	"runtime"
	"testing"
)

func TestParseSimctlOutput(t *testing.T) {
	output := []byte(`{
		"devices": {
			"com.apple.CoreSimulator.SimRuntime.iOS-17-2": [
				{
					"name": "iPhone 15 Pro",
					"udid": "AAAA-1111",
					"state": "Shutdown",
					"isAvailable": true
				},
				{
					"name": "iPhone 15",
					"udid": "BBBB-2222",
					"state": "Booted",
					"isAvailable": true
				},
				{
					"name": "Broken Sim",
					"udid": "CCCC-3333",
					"state": "Shutdown",
					"isAvailable": false
				}
			]
		}
	}`)

	sims, err := ParseSimctlOutput(output)
	if err != nil {
		t.Fatalf("ParseSimctlOutput failed: %v", err)
	}

	if len(sims) != 2 {
		t.Fatalf("expected 2 available simulators, got %d", len(sims))
	}

	byUDID := make(map[string]Device)
	for _, s := range sims {
		byUDID[s.UDID] = s
	}

	pro, ok := byUDID["AAAA-1111"]
	if !ok {
		t.Fatal("missing simulator AAAA-1111")
	}
	if pro.Name != "iPhone 15 Pro" {
		t.Errorf("Name = %q, want 'iPhone 15 Pro'", pro.Name)
	}
	if pro.OSVersion != "17.2" {
		t.Errorf("OSVersion = %q, want '17.2'", pro.OSVersion)
	}

	if _, ok := byUDID["CCCC-3333"]; ok {
		t.Error("unavailable simulator should be excluded")
	}
}

func TestParseSimctlOutput_BadJSON(t *testing.T) {
	if _, err := ParseSimctlOutput([]byte("not json")); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestExtractOSVersion(t *testing.T) {
	tests := []struct {
		runtime  string
		expected string
	}{
		{"com.apple.CoreSimulator.SimRuntime.iOS-17-2", "17.2"},
		{"com.apple.CoreSimulator.SimRuntime.iOS-16-4", "16.4"},
		{"com.apple.CoreSimulator.SimRuntime.watchOS-10-0", ""},
		{"garbage", ""},
	}

	for _, tt := range tests {
		if got := extractOSVersion(tt.runtime); got != tt.expected {
			t.Errorf("extractOSVersion(%q) = %q, want %q", tt.runtime, got, tt.expected)
		}
	}
}

func TestList_Real(t *testing.T) {
	if runtime.GOOS != "darwin" {
		t.Skip("simctl requires macOS")
	}
	if _, err := exec.LookPath("xcrun"); err != nil {
		t.Skip("xcrun not available")
	}

	sims, err := List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	for _, s := range sims {
		if s.UDID == "" {
			t.Error("simulator UDID is empty")
		}
	}
}
