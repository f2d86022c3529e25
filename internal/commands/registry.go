package commands

import (
	"fmt"
	"slices"
	"sync"
)

// Registry maps command names and aliases to commands.
type Registry struct {
	mu      sync.RWMutex
	cmds    map[string]Command // name and aliases map to command
	primary []string           // primary names in sorted order
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{
		cmds: make(map[string]Command),
	}
}

// Register adds a command to the registry.
// Returns an error if the name or any alias is already taken, or if the
// command lists the same alias twice.
func (r *Registry) Register(c Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := append([]string{c.Name()}, c.Aliases()...)
	for i, name := range names {
		if name == "" {
			return fmt.Errorf("command %q has an empty name or alias", c.Name())
		}
		if _, exists := r.cmds[name]; exists || slices.Contains(names[:i], name) {
			return fmt.Errorf("command name already registered: %s", name)
		}
	}

	for _, name := range names {
		r.cmds[name] = c
	}
	i, _ := slices.BinarySearch(r.primary, c.Name())
	r.primary = slices.Insert(r.primary, i, c.Name())
	return nil
}

// Find looks up a command by name or alias.
func (r *Registry) Find(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.cmds[name]
	return cmd, ok
}

// All returns all unique commands sorted by primary name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Command, len(r.primary))
	for i, name := range r.primary {
		result[i] = r.cmds[name]
	}
	return result
}

// DefaultRegistry is the global command registry.
var DefaultRegistry = NewRegistry()

// Register adds a command to the default registry.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}
