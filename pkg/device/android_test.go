package device

import (
	"os/exec"
	"testing"
)

func TestParseDeviceList(t *testing.T) {
	out := `List of devices attached
emulator-5554	device
R58M123ABC	device
0A1B2C3D	unauthorized
emulator-5556	offline

`
	serials := ParseDeviceList(out)

	if len(serials) != 2 {
		t.Fatalf("expected 2 devices, got %d: %v", len(serials), serials)
	}
	if serials[0] != "emulator-5554" {
		t.Errorf("serials[0] = %q, want emulator-5554", serials[0])
	}
	if serials[1] != "R58M123ABC" {
		t.Errorf("serials[1] = %q, want R58M123ABC", serials[1])
	}
}

func TestParseDeviceList_Empty(t *testing.T) {
	out := "List of devices attached\n\n"
	if serials := ParseDeviceList(out); len(serials) != 0 {
		t.Errorf("expected no devices, got %v", serials)
	}
}

// skipIfNoADB skips the test if adb is not installed.
func skipIfNoADB(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("adb"); err != nil {
		t.Skip("adb not available")
	}
}

func TestList_Real(t *testing.T) {
	skipIfNoADB(t)

	devices, err := List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	for _, d := range devices {
		if d.Serial == "" {
			t.Error("device serial is empty")
		}
	}
}
