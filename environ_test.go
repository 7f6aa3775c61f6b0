package wpekit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvironFromList(t *testing.T) {
	env := EnvironFromList([]string{"A=1", "B=x=y", "MALFORMED", "=nokey"})
	assert.Equal(t, Environ{"A": "1", "B": "x=y"}, env)
}

func TestEnvironCloneIsIndependent(t *testing.T) {
	env := Environ{"A": "1"}
	clone := env.Clone()
	clone.Set("A", "2")
	clone.Set("B", "3")
	assert.Equal(t, "1", env["A"])
	_, ok := env.Lookup("B")
	assert.False(t, ok)
}

func TestEnvironListSorted(t *testing.T) {
	env := Environ{"Z": "26", "A": "1", "M": "13"}
	assert.Equal(t, []string{"A=1", "M=13", "Z=26"}, env.List())
}
