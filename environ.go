package wpekit

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Environ is an environment overlay: a set of variables built up for one
// child process. Overlays are copied on construction and never shared, so
// mutating one cannot leak into the process's real environment.
type Environ map[string]string

// EnvironFromList parses "key=value" pairs in the format of os.Environ.
// Malformed entries are skipped.
func EnvironFromList(list []string) Environ {
	env := make(Environ, len(list))
	for _, kv := range list {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		env[k] = v
	}
	return env
}

// Clone returns an independent copy of the overlay.
func (e Environ) Clone() Environ {
	return maps.Clone(e)
}

// Set assigns a variable in the overlay.
func (e Environ) Set(key, value string) {
	e[key] = value
}

// Lookup reports the value of a variable and whether it is present.
func (e Environ) Lookup(key string) (string, bool) {
	v, ok := e[key]
	return v, ok
}

// List renders the overlay in the "key=value" format expected by os/exec,
// sorted by key so output is deterministic.
func (e Environ) List() []string {
	keys := maps.Keys(e)
	slices.Sort(keys)
	list := make([]string, 0, len(keys))
	for _, k := range keys {
		list = append(list, fmt.Sprintf("%s=%s", k, e[k]))
	}
	return list
}
