package simulator

// Device represents an available iOS simulator from simctl list.
type Device struct {
	Name        string // e.g., "iPhone 15 Pro"
	UDID        string // e.g., "A1B2C3D4-E5F6-..."
	Runtime     string // e.g., "com.apple.CoreSimulator.SimRuntime.iOS-17-2"
	OSVersion   string // e.g., "17.2" (extracted from Runtime)
	State       string // "Shutdown", "Booted", etc.
	IsAvailable bool
}

// PhysicalDevice represents a connected physical iOS device.
type PhysicalDevice struct {
	UDID      string
	Name      string // DeviceName from ideviceinfo
	OSVersion string // ProductVersion from ideviceinfo
}
