package wpekit

import (
	"github.com/spf13/pflag"
)

// Options is the subset of the harness option set that ports consume. The
// zero value is usable; unset fields fall back to defaults at construction.
type Options struct {
	// Configuration is the build type to test, "Release" or "Debug".
	Configuration string

	// CheckoutRoot is the top of the WebKit checkout. Defaults to the
	// current working directory.
	CheckoutRoot string

	// BuildDirectory overrides the build products directory. Defaults to
	// <CheckoutRoot>/WebKitBuild/WPE/<Configuration>.
	BuildDirectory string

	// DisplayServer names the windowing backend requested by the caller.
	// The main scripts default this to "xvfb".
	DisplayServer string

	// WPELegacyAPI selects the older platform integration mode, affecting
	// the script invocation flag and the search-path ordering.
	WPELegacyAPI bool

	// AdditionalPlatformDirectories are extra baseline directory fragments
	// appended after the built-in search paths, most-specific last.
	AdditionalPlatformDirectories []string
}

// RegisterFlags binds the options to a flag set, so embedding harnesses and
// the command line tools expose the same surface.
func (o *Options) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Configuration, "configuration", "Release", "build configuration to test (Release or Debug)")
	fs.StringVar(&o.CheckoutRoot, "checkout-root", "", "top of the WebKit checkout (defaults to the working directory)")
	fs.StringVar(&o.BuildDirectory, "build-directory", "", "build products directory override")
	fs.StringVar(&o.DisplayServer, "display-server", "xvfb", "windowing backend to run tests under")
	fs.BoolVar(&o.WPELegacyAPI, "wpe-legacy-api", false, "use the legacy WPE API")
	fs.StringSliceVar(&o.AdditionalPlatformDirectories, "additional-platform-directory", nil, "additional baseline search path entries")
}
