package wpekit

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/wpekit/wpekit/runner"
)

// A Port answers the fixed set of queries the generic harness needs to
// behave correctly for one target platform, and provides a manual
// browser-launch utility. Ports are built once per harness invocation and
// hold no mutable state beyond construction-time configuration.
type Port interface {
	// Name is the symbolic port name, used in search paths and flags.
	Name() string

	// VersionName is the port's version label, used to tag test
	// configurations. May be empty.
	VersionName() string

	// FileSystem exposes the port's filesystem seam, so drivers can check
	// for the binaries they need.
	FileSystem() FileSystem

	// FlagForScripts is the port token the outer script layer passes to
	// child processes.
	FlagForScripts() string

	// DriverClass selects the driver implementation used to run tests.
	DriverClass() Driver

	// DriverPath is the path to the built test runner binary.
	DriverPath() string

	// ImageDiffPath is the path to the built image comparison binary.
	ImageDiffPath() string

	// ServerEnviron builds the environment overlay for a helper server.
	// serverName may be empty.
	ServerEnviron(serverName string) Environ

	// MiniBrowserEnviron builds the environment overlay for launching the
	// browser manually.
	MiniBrowserEnviron() Environ

	// WebDriverEnviron builds the environment overlay for the automation
	// driver process.
	WebDriverEnviron() Environ

	// BaselineSearchPath lists baseline directories, most-specific first.
	BaselineSearchPath() []string

	// ExpectationsFiles lists expectations files in load order: the
	// reverse of the baseline order, so more specific files override.
	ExpectationsFiles() []string

	// AllTestConfigurations enumerates the pre-built configurations that
	// are valid to test on this port.
	AllTestConfigurations() []TestConfiguration

	// UploadConfiguration describes this port to the results server.
	UploadConfiguration() map[string]string

	// BrowserName is the lower case name of the browser to launch.
	BrowserName() string

	// BrowserPath resolves a logical browser name to its built binary.
	BrowserPath(name string) string

	// CheckSysDeps reports whether the system can run tests for this port.
	CheckSysDeps() bool

	// RunMiniBrowser launches the selected browser with the given
	// arguments and blocks until it exits.
	RunMiniBrowser(ctx context.Context, args []string) (int, error)

	// ShowResultsHTML opens a results page in the selected browser.
	ShowResultsHTML(ctx context.Context, resultsPath string) (int, error)
}

// FileSystem is the filesystem seam ports use for existence checks.
type FileSystem interface {
	IsFile(path string) bool
	IsDir(path string) bool
}

type osFileSystem struct{}

func (osFileSystem) IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func (osFileSystem) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// driverBinaryName is the test runner binary every modern port builds.
const driverBinaryName = "WebKitTestRunner"

// serverEnvironPassthrough lists host variables copied into helper server
// environments when present.
var serverEnvironPassthrough = []string{
	"PATH",
	"HOME",
	"LANG",
	"LANGUAGE",
	"LC_ALL",
	"LD_LIBRARY_PATH",
	"DBUS_SESSION_BUS_ADDRESS",
	"XDG_DATA_DIRS",
	"XDG_RUNTIME_DIR",
	"WAYLAND_DISPLAY",
	"G_DEBUG",
	"GST_PLUGIN_PATH",
	"WEBKIT_SKIA_ENABLE_CPU_RENDERING",
}

// BasePort carries the generic, Linux-like defaults shared by ports:
// checkout and build directory resolution, baseline path layout, base
// environment construction, and the optional build-environment wrapper.
// Target ports embed it and override only the platform-specific queries.
type BasePort struct {
	name         string
	version      string
	opts         Options
	checkoutRoot string
	buildDir     string
	hostEnv      Environ
	fs           FileSystem
	exec         runner.Executor
	passFiles    []*os.File
}

// PortOption is a port construction option, used to replace the host seams.
type PortOption func(*BasePort)

// WithExecutor sets the process executor the port delegates launches to.
func WithExecutor(e runner.Executor) PortOption {
	return func(p *BasePort) {
		p.exec = e
	}
}

// WithFileSystem sets the filesystem used for existence checks.
func WithFileSystem(fs FileSystem) PortOption {
	return func(p *BasePort) {
		p.fs = fs
	}
}

// WithHostEnviron replaces the ambient environment the port reads from.
func WithHostEnviron(env Environ) PortOption {
	return func(p *BasePort) {
		p.hostEnv = env.Clone()
	}
}

// WithVersionName sets the port's version label.
func WithVersionName(version string) PortOption {
	return func(p *BasePort) {
		p.version = version
	}
}

// WithPassFiles sets extra files browser launches should inherit, such as a
// profiler capture socket.
func WithPassFiles(files ...*os.File) PortOption {
	return func(p *BasePort) {
		p.passFiles = files
	}
}

func newBasePort(name string, opts Options, extra ...PortOption) *BasePort {
	if opts.Configuration == "" {
		opts.Configuration = "Release"
	}
	if opts.CheckoutRoot == "" {
		if wd, err := os.Getwd(); err == nil {
			opts.CheckoutRoot = wd
		} else {
			opts.CheckoutRoot = "."
		}
	}

	p := &BasePort{
		name:         name,
		opts:         opts,
		checkoutRoot: opts.CheckoutRoot,
		buildDir:     opts.BuildDirectory,
		hostEnv:      EnvironFromList(os.Environ()),
		fs:           osFileSystem{},
		exec:         runner.NewHost(),
	}
	for _, o := range extra {
		o(p)
	}
	if p.buildDir == "" {
		p.buildDir = filepath.Join(p.checkoutRoot, "WebKitBuild", strings.ToUpper(name), p.opts.Configuration)
	}
	return p
}

// Name satisfies the Port interface.
func (p *BasePort) Name() string {
	return p.name
}

// VersionName satisfies the Port interface.
func (p *BasePort) VersionName() string {
	return p.version
}

// FileSystem satisfies the Port interface.
func (p *BasePort) FileSystem() FileSystem {
	return p.fs
}

// CheckoutRoot is the top of the WebKit checkout.
func (p *BasePort) CheckoutRoot() string {
	return p.checkoutRoot
}

// DisplayServer is the windowing backend tests will run under.
func (p *BasePort) DisplayServer() string {
	return p.opts.DisplayServer
}

// BuildPath joins components under the build products directory.
func (p *BasePort) BuildPath(components ...string) string {
	return filepath.Join(append([]string{p.buildDir}, components...)...)
}

// BuiltExecutablesPath resolves a built helper binary by name.
func (p *BasePort) BuiltExecutablesPath(name string) string {
	return p.BuildPath("bin", name)
}

// BaselinePath resolves a search-path fragment to its platform baseline
// directory in the checkout.
func (p *BasePort) BaselinePath(fragment string) string {
	return filepath.Join(p.checkoutRoot, "LayoutTests", "platform", fragment)
}

// DriverPath satisfies the Port interface. Computed fresh on every call.
func (p *BasePort) DriverPath() string {
	return p.BuiltExecutablesPath(driverBinaryName)
}

// ServerEnviron builds the generic helper-server environment: a fresh
// overlay holding only the allow-listed host variables that are set.
func (p *BasePort) ServerEnviron(serverName string) Environ {
	env := make(Environ, len(serverEnvironPassthrough))
	for _, key := range serverEnvironPassthrough {
		p.CopyFromHostIfSet(env, key)
	}
	return env
}

// MiniBrowserEnviron builds the generic browser-launch environment: the full
// host environment plus the built executables directory.
func (p *BasePort) MiniBrowserEnviron() Environ {
	env := p.hostEnv.Clone()
	env.Set("WEBKIT_EXEC_PATH", p.BuildPath("bin"))
	return env
}

// UploadConfiguration describes this port to the results server. Target
// ports overwrite entries as needed.
func (p *BasePort) UploadConfiguration() map[string]string {
	return map[string]string{
		"platform":     p.name,
		"version_name": p.version,
		"style":        strings.ToLower(p.opts.Configuration),
	}
}

// CheckSysDeps runs the generic system checks. The base has none beyond what
// construction already validated.
func (p *BasePort) CheckSysDeps() bool {
	return true
}

// WrapperCommand is the build-environment wrapper prepended to launches when
// the checkout was built against jhbuild-managed dependencies. Empty when no
// wrapper is required.
func (p *BasePort) WrapperCommand() []string {
	wrapper := filepath.Join(p.checkoutRoot, "Tools", "jhbuild", "jhbuild-wrapper")
	deps := filepath.Join(p.checkoutRoot, "WebKitBuild", "Dependencies"+strings.ToUpper(p.name))
	if !p.fs.IsDir(deps) || !p.fs.IsFile(wrapper) {
		return nil
	}
	return []string{wrapper, "--" + p.name, "run"}
}

// CopyFromHostIfSet copies one variable from the ambient environment into
// the overlay, when present.
func (p *BasePort) CopyFromHostIfSet(env Environ, key string) {
	if value, ok := p.hostEnv.Lookup(key); ok {
		env.Set(key, value)
	}
}

// lookupHostEnv reads one variable from the ambient environment.
func (p *BasePort) lookupHostEnv(key string) (string, bool) {
	return p.hostEnv.Lookup(key)
}

// fileURI converts a local path to a file: URI suitable for a browser.
func fileURI(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	u := url.URL{Scheme: "file", Path: abs}
	return u.String()
}
