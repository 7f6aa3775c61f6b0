// Package runner runs browser and helper processes for the harness.
package runner

import (
	"context"
	"os"
	"os/exec"
)

// Error is a runner error.
type Error string

// Error satisfies the error interface.
func (err Error) Error() string {
	return string(err)
}

// Error values.
const (
	// ErrEmptyCommand is the empty command error.
	ErrEmptyCommand Error = "empty command"
)

// Command describes one child process: the full argument vector (Args[0] is
// the executable), an optional working directory, an optional environment in
// "key=value" form (nil inherits the parent's), and any extra files the child
// should inherit beyond the standard streams.
type Command struct {
	Args  []string
	Dir   string
	Env   []string
	Files []*os.File
}

// An Executor runs a command to completion and reports its exit status.
//
// This interface abstracts away how child processes are actually run, so
// launch decisions can be tested without spawning anything.
type Executor interface {
	// Run blocks until the command exits, returning its exit status. A
	// non-zero status is not an error; the error is reserved for failures
	// to run the command at all.
	Run(ctx context.Context, cmd Command) (int, error)
}

// Host is an Executor that runs commands on the host machine via os/exec,
// with stdout and stderr passed through to the parent's.
type Host struct{}

// NewHost creates a host executor.
func NewHost() Host {
	return Host{}
}

// Run satisfies the Executor interface.
func (Host) Run(ctx context.Context, cmd Command) (int, error) {
	if len(cmd.Args) == 0 {
		return 1, ErrEmptyCommand
	}

	c := exec.CommandContext(ctx, cmd.Args[0], cmd.Args[1:]...)
	c.Dir = cmd.Dir
	c.Env = cmd.Env
	c.ExtraFiles = cmd.Files
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr

	err := c.Run()
	if err == nil {
		return 0, nil
	}
	if exit, ok := err.(*exec.ExitError); ok {
		return exit.ExitCode(), nil
	}
	return 1, err
}
