package wpekit

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/wpekit/wpekit/runner"
)

// fakeFS answers existence checks from in-memory sets.
type fakeFS struct {
	files map[string]bool
	dirs  map[string]bool
}

func newFakeFS() *fakeFS {
	return &fakeFS{
		files: make(map[string]bool),
		dirs:  make(map[string]bool),
	}
}

func (f *fakeFS) IsFile(path string) bool { return f.files[path] }
func (f *fakeFS) IsDir(path string) bool  { return f.dirs[path] }

// fakeExecutor records launched commands and returns a canned status.
type fakeExecutor struct {
	status   int
	err      error
	commands []runner.Command
}

func (e *fakeExecutor) Run(ctx context.Context, cmd runner.Command) (int, error) {
	e.commands = append(e.commands, cmd)
	return e.status, e.err
}

// captureLog redirects the package logger for one test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	Logger.SetOutput(&buf)
	t.Cleanup(func() {
		Logger.SetOutput(os.Stderr)
	})
	return &buf
}

// newTestPort builds a WPE port rooted at /checkout with fake seams.
func newTestPort(t *testing.T, opts Options, env Environ, mods ...PortOption) (*WPEPort, *fakeExecutor, *fakeFS) {
	t.Helper()
	if opts.CheckoutRoot == "" {
		opts.CheckoutRoot = "/checkout"
	}
	fs := newFakeFS()
	exec := &fakeExecutor{}
	if env == nil {
		env = Environ{}
	}
	all := append([]PortOption{
		WithFileSystem(fs),
		WithExecutor(exec),
		WithHostEnviron(env),
	}, mods...)
	return NewWPEPort(opts, all...), exec, fs
}
