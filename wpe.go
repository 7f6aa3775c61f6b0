package wpekit

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/shlex"
	"golang.org/x/exp/slices"

	"github.com/wpekit/wpekit/runner"
)

// Port identity constants.
const (
	// PortName is the symbolic name of the WPE port.
	PortName = "wpe"

	// WebDriverName is the companion automation driver binary.
	WebDriverName = "WPEWebDriver"

	// SupportsLocalhostAliases reports that the target resolves aliased
	// localhost names.
	SupportsLocalhostAliases = true
)

// Recognized browser names for manual launches.
const (
	browserCog         = "cog"
	browserMiniBrowser = "minibrowser"
)

// Environment variables the port consumes.
const (
	envBrowser      = "WPE_BROWSER"
	envLaunchPrefix = "WEBKIT_MINI_BROWSER_PREFIX"
	envCogPlatform  = "COG_PLATFORM_NAME"
	envCogModuleDir = "COG_MODULEDIR"
)

// WPEPort specializes the generic port for the WPE embedded target.
type WPEPort struct {
	*BasePort

	legacyAPI bool

	// Lazily assigned caches. The driver choice is constant and the image
	// diff path is queried far more often than it could ever change, so
	// both are computed once; the driver binary path deliberately is not.
	driver        Driver
	imageDiffPath string
}

var _ Port = (*WPEPort)(nil)

// NewWPEPort creates a WPE port from the harness options.
func NewWPEPort(opts Options, extra ...PortOption) *WPEPort {
	p := &WPEPort{
		BasePort:  newBasePort(PortName, opts, extra...),
		legacyAPI: opts.WPELegacyAPI,
	}
	if p.opts.DisplayServer == "xvfb" {
		// While not supported by WPE, xvfb is the default value in the
		// main scripts.
		p.opts.DisplayServer = "headless"
	}
	return p
}

// FlagForScripts satisfies the Port interface.
func (p *WPEPort) FlagForScripts() string {
	flag := "--wpe"
	if p.legacyAPI {
		flag += " --wpe-legacy-api"
	}
	return flag
}

// DriverClass satisfies the Port interface. The choice is constant, so the
// first call stores it.
func (p *WPEPort) DriverClass() Driver {
	if p.driver == nil {
		p.driver = HeadlessDriver{}
	}
	return p.driver
}

// ServerEnviron satisfies the Port interface.
func (p *WPEPort) ServerEnviron(serverName string) Environ {
	env := p.BasePort.ServerEnviron(serverName)
	env.Set("LIBGL_ALWAYS_SOFTWARE", "1")
	// Run WPE tests with Skia CPU rendering (the usual configuration on
	// embedded) to help catch issues and crashes <https://webkit.org/b/287632>
	if _, ok := env.Lookup("WEBKIT_SKIA_ENABLE_CPU_RENDERING"); ok {
		warnf(`ignoring "WEBKIT_SKIA_ENABLE_CPU_RENDERING" variable from environment. Defaulting to value "1".`)
	}
	env.Set("WEBKIT_SKIA_ENABLE_CPU_RENDERING", "1")
	p.CopyFromHostIfSet(env, "XR_RUNTIME_JSON")
	p.CopyFromHostIfSet(env, "BREAKPAD_MINIDUMP_DIR")
	return env
}

// CheckSysDeps satisfies the Port interface.
func (p *WPEPort) CheckSysDeps() bool {
	return p.BasePort.CheckSysDeps() && p.DriverClass().CheckDriver(p)
}

// AllTestConfigurations satisfies the Port interface.
func (p *WPEPort) AllTestConfigurations() []TestConfiguration {
	configurations := make([]TestConfiguration, 0, len(AllBuildTypes))
	for _, buildType := range AllBuildTypes {
		configurations = append(configurations, TestConfiguration{
			Version:      p.VersionName(),
			Architecture: "x86",
			BuildType:    buildType,
		})
	}
	return configurations
}

// ImageDiffPath satisfies the Port interface, memoizing the lookup after the
// first call.
func (p *WPEPort) ImageDiffPath() string {
	if p.imageDiffPath == "" {
		p.imageDiffPath = p.BuiltExecutablesPath("ImageDiff")
	}
	return p.imageDiffPath
}

// searchPaths lists baseline directory fragments, most-specific first.
func (p *WPEPort) searchPaths() []string {
	var paths []string
	if p.legacyAPI {
		paths = append(paths, "wpe-legacy-api")
	}
	paths = append(paths, PortName, "glib", "wk2")
	paths = append(paths, p.opts.AdditionalPlatformDirectories...)
	return paths
}

// BaselineSearchPath satisfies the Port interface.
func (p *WPEPort) BaselineSearchPath() []string {
	fragments := p.searchPaths()
	paths := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		paths = append(paths, p.BaselinePath(fragment))
	}
	return paths
}

// ExpectationsFiles satisfies the Port interface. The order is the reverse
// of the baseline search path: least-specific expectations load first so the
// more specific ones override them.
func (p *WPEPort) ExpectationsFiles() []string {
	fragments := p.searchPaths()
	slices.Reverse(fragments)
	files := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		files = append(files, filepath.Join(p.BaselinePath(fragment), "TestExpectations"))
	}
	return files
}

// UploadConfiguration satisfies the Port interface.
func (p *WPEPort) UploadConfiguration() map[string]string {
	configuration := p.BasePort.UploadConfiguration()
	configuration["platform"] = "WPE"
	return configuration
}

// WebDriverPath is the path to the built companion automation driver.
func (p *WPEPort) WebDriverPath() string {
	return p.BuiltExecutablesPath(WebDriverName)
}

// CogPath joins components under Cog's nested build output directory.
func (p *WPEPort) CogPath(components ...string) string {
	return p.BuildPath(append([]string{"Tools", "cog-prefix", "src", "cog-build"}, components...)...)
}

// BrowserPath satisfies the Port interface.
func (p *WPEPort) BrowserPath(name string) string {
	if name == browserCog {
		return p.CogPath("launcher", name)
	}
	return p.BuildPath("bin", name)
}

// BrowserName satisfies the Port interface. Users select between Cog and
// MiniBrowser with the WPE_BROWSER environment variable; anything else falls
// back to MiniBrowser.
func (p *WPEPort) BrowserName() string {
	browser, _ := p.lookupHostEnv(envBrowser)
	browser = strings.ToLower(browser)
	if browser == browserCog || browser == browserMiniBrowser {
		return browser
	}

	if browser != "" {
		warnf("Unknown browser %s. Defaulting to MiniBrowser", browser)
	}
	return browserMiniBrowser
}

// MiniBrowserEnviron satisfies the Port interface.
func (p *WPEPort) MiniBrowserEnviron() Environ {
	env := p.BasePort.MiniBrowserEnviron()
	if p.BrowserName() == browserCog {
		env.Set(envCogModuleDir, p.CogPath("platform"))
	}
	return env
}

// WebDriverEnviron satisfies the Port interface.
func (p *WPEPort) WebDriverEnviron() Environ {
	env := p.BasePort.MiniBrowserEnviron()
	// The browser is started from the webdriver process and inherits its
	// environment, so the environment has to work for either browser.
	env.Set(envCogModuleDir, p.CogPath("platform"))
	return env
}

// LaunchEnviron builds the environment and inherited files for a manual
// browser launch. Profiler capture sockets, when configured, ride along as
// inherited files.
func (p *WPEPort) LaunchEnviron() (Environ, []*os.File) {
	return p.MiniBrowserEnviron(), p.passFiles
}

// ShowResultsHTML satisfies the Port interface.
func (p *WPEPort) ShowResultsHTML(ctx context.Context, resultsPath string) (int, error) {
	return p.RunMiniBrowser(ctx, []string{fileURI(resultsPath)})
}

// hasPlatformArg reports whether a Cog platform is already selected, via the
// short or long flag form or the dedicated environment variable.
func (p *WPEPort) hasPlatformArg(args []string) bool {
	for _, a := range args {
		if a == "-P" || strings.HasPrefix(a, "--platform=") {
			return true
		}
	}
	_, ok := p.lookupHostEnv(envCogPlatform)
	return ok
}

// RunMiniBrowser satisfies the Port interface. Cog is preferred when
// selected and built; otherwise MiniBrowser is used. A missing binary is a
// terminal, reported failure for the call, never a retry.
func (p *WPEPort) RunMiniBrowser(ctx context.Context, args []string) (int, error) {
	var browser string

	if p.BrowserName() == browserCog {
		browser = p.BrowserPath(browserCog)
		if !p.FileSystem().IsFile(browser) {
			warnf("Cog not found. If you wish to enable it, rebuild with `-DENABLE_COG=ON`. Falling back to MiniBrowser")
			browser = ""
		} else {
			infof("Using Cog as MiniBrowser")
			if !p.hasPlatformArg(args) {
				args = append([]string{"--platform=gtk4"}, args...)
			}
		}
	}

	if browser == "" {
		infof("Using default MiniBrowser")
		browser = p.BrowserPath("MiniBrowser")
		if !p.FileSystem().IsFile(browser) {
			warnf("%s not found... Did you run build-webkit?", browser)
			return 1, ErrBrowserNotFound
		}
	}

	command := []string{browser}
	if prefix, ok := p.lookupHostEnv(envLaunchPrefix); ok && prefix != "" {
		words, err := shlex.Split(prefix)
		if err != nil {
			warnf("ignoring unparsable %s: %v", envLaunchPrefix, err)
		} else {
			command = append(words, command...)
		}
	}

	if wrapper := p.WrapperCommand(); len(wrapper) > 0 {
		command = append(wrapper, command...)
	}

	env, files := p.LaunchEnviron()
	return p.exec.Run(ctx, runner.Command{
		Args:  append(command, args...),
		Dir:   p.CheckoutRoot(),
		Env:   env.List(),
		Files: files,
	})
}
