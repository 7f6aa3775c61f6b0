package wpekit

import (
	"errors"
)

// Error values.
var (
	// ErrBrowserNotFound is the error returned when neither of the
	// recognized browser binaries exists in the build directory.
	ErrBrowserNotFound = errors.New("browser not found")
)
