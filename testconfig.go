package wpekit

// AllBuildTypes lists the build types every port is expected to have
// pre-built configurations for.
var AllBuildTypes = []string{"debug", "release"}

// TestConfiguration identifies one pre-built configuration that is valid to
// test: a version label, a CPU architecture and a build type.
type TestConfiguration struct {
	Version      string
	Architecture string
	BuildType    string
}
