// Package flags gates optional editor features behind config switches.
// A registry is read-only once built; unknown flags are off.
package flags

import (
	"maps"
	"slices"

	"github.com/zjrosen/ezwrite/internal/log"
)

const (
	// FlagHTMLImport allows opening .html and .htm files.
	FlagHTMLImport = "html-import"

	// FlagMouseSelect turns mouse drags into range selections. When off, a
	// drag only moves the cursor to the release point.
	FlagMouseSelect = "mouse-select"
)

// Registry holds feature flag state loaded from configuration.
type Registry struct {
	flags map[string]bool
}

// New creates a Registry from a config map. The map is copied.
func New(flags map[string]bool) *Registry {
	r := &Registry{flags: maps.Clone(flags)}
	if r.flags == nil {
		r.flags = make(map[string]bool)
	}
	log.Debug(log.CatConfig, "feature flags", "enabled", r.EnabledNames())
	return r
}

// Enabled reports whether the named flag is on. Nil-safe.
func (r *Registry) Enabled(name string) bool {
	if r == nil {
		return false
	}
	value, ok := r.flags[name]
	if !ok {
		log.Debug(log.CatConfig, "unknown flag", "flag", name)
	}
	return value
}

// EnabledNames returns the names of every enabled flag, sorted.
func (r *Registry) EnabledNames() []string {
	if r == nil {
		return nil
	}
	var names []string
	for name, on := range r.flags {
		if on {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// All returns a copy of all flags.
func (r *Registry) All() map[string]bool {
	if r == nil {
		return make(map[string]bool)
	}
	return maps.Clone(r.flags)
}
