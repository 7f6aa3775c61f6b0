package runner

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostRunStatus(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		status int
	}{
		{"success", []string{"/bin/sh", "-c", "exit 0"}, 0},
		{"failure", []string{"/bin/sh", "-c", "exit 3"}, 3},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			status, err := NewHost().Run(context.Background(), Command{Args: test.args})
			require.NoError(t, err)
			assert.Equal(t, test.status, status)
		})
	}
}

func TestHostRunEnv(t *testing.T) {
	status, err := NewHost().Run(context.Background(), Command{
		Args: []string{"/bin/sh", "-c", `test "$WPE_TEST_VAR" = expected`},
		Env:  []string{"WPE_TEST_VAR=expected"},
	})
	require.NoError(t, err)
	assert.Zero(t, status)
}

func TestHostRunDir(t *testing.T) {
	dir := t.TempDir()
	status, err := NewHost().Run(context.Background(), Command{
		Args: []string{"/bin/sh", "-c", `test "$(pwd)" = "$WANT"`},
		Dir:  dir,
		Env:  []string{"WANT=" + dir},
	})
	require.NoError(t, err)
	assert.Zero(t, status)
}

func TestHostRunInheritedFiles(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()

	_, err = w.WriteString("hello\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	// The first inherited file lands on descriptor 3 in the child.
	status, err := NewHost().Run(context.Background(), Command{
		Args:  []string{"/bin/sh", "-c", `read line <&3 && test "$line" = hello`},
		Files: []*os.File{r},
	})
	require.NoError(t, err)
	assert.Zero(t, status)
}

func TestHostRunEmptyCommand(t *testing.T) {
	status, err := NewHost().Run(context.Background(), Command{})
	assert.ErrorIs(t, err, ErrEmptyCommand)
	assert.Equal(t, 1, status)
}

func TestHostRunMissingBinary(t *testing.T) {
	_, err := NewHost().Run(context.Background(), Command{
		Args: []string{"/nonexistent/binary"},
	})
	assert.Error(t, err)
}
