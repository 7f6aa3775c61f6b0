package wpekit

// A Driver is responsible for running an individual test against a browser
// process. Ports pick a driver implementation; the harness asks the driver
// whether its own dependencies are satisfied before running anything.
type Driver interface {
	// Name identifies the driver implementation.
	Name() string

	// NeedsDisplayServer reports whether a display server must be running
	// for the driver to work.
	NeedsDisplayServer() bool

	// CheckDriver reports whether the driver can run tests for the port.
	CheckDriver(port Port) bool
}

// HeadlessDriver runs tests without a display server. It is the driver for
// embedded targets, where no windowing system is assumed to exist.
type HeadlessDriver struct{}

// Name satisfies the Driver interface.
func (HeadlessDriver) Name() string {
	return "headless"
}

// NeedsDisplayServer satisfies the Driver interface.
func (HeadlessDriver) NeedsDisplayServer() bool {
	return false
}

// CheckDriver satisfies the Driver interface. The headless driver only needs
// the built test runner binary to exist.
func (HeadlessDriver) CheckDriver(port Port) bool {
	driverPath := port.DriverPath()
	if !port.FileSystem().IsFile(driverPath) {
		warnf("driver %s not found, did you run build-webkit?", driverPath)
		return false
	}
	return true
}
