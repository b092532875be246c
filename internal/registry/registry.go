// Package registry holds the read-only table of utilities a multi-call
// binary can dispatch to.
//
// A utility is a pair of capabilities: an entry function that receives the
// argument vector (argument zero is the name the utility was invoked as) and
// returns an exit code, and a describe function that returns the utility's
// CLI schema as a cobra command tree. The table is built once before the
// first resolution and never mutated afterwards.
package registry

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// MainFunc is a utility entry point. args[0] is the invocation name.
type MainFunc func(args []string) int

// DescribeFunc returns a fresh CLI schema for a utility.
type DescribeFunc func() *cobra.Command

// Utility is one entry of the lookup table.
type Utility struct {
	Main     MainFunc
	Describe DescribeFunc
}

// Registry is the lookup table consulted by the resolver and the completion
// emitter.
type Registry interface {
	// Keys returns every utility name in lexicographic order.
	Keys() []string
	// Get returns the utility registered under name.
	Get(name string) (Utility, bool)
}

// Map is an immutable in-memory Registry.
type Map struct {
	utils map[string]Utility
	keys  []string
}

// New copies utils into an immutable Map.
// Empty names and utilities missing either capability are rejected.
func New(utils map[string]Utility) (*Map, error) {
	m := &Map{
		utils: make(map[string]Utility, len(utils)),
		keys:  make([]string, 0, len(utils)),
	}

	for name, u := range utils {
		if name == "" {
			return nil, fmt.Errorf("utility name cannot be empty")
		}
		if u.Main == nil {
			return nil, fmt.Errorf("utility %q has no entry function", name)
		}
		if u.Describe == nil {
			return nil, fmt.Errorf("utility %q has no describe function", name)
		}
		m.utils[name] = u
		m.keys = append(m.keys, name)
	}

	sort.Strings(m.keys)
	return m, nil
}

// MustNew is like New but panics on an invalid table. It is meant for
// compiled-in tables where an error is a programming mistake.
func MustNew(utils map[string]Utility) *Map {
	m, err := New(utils)
	if err != nil {
		panic(fmt.Sprintf("registry: %v", err))
	}
	return m
}

// Keys returns the registered names in lexicographic order.
// The returned slice is a copy and may be modified by the caller.
func (m *Map) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Get returns the utility registered under name.
func (m *Map) Get(name string) (Utility, bool) {
	u, ok := m.utils[name]
	return u, ok
}

// Len returns the number of registered utilities.
func (m *Map) Len() int {
	return len(m.keys)
}
