package lines

import (
	"errors"
	"fmt"
	"strings"
)

var ErrNotFound = errors.New("line not found")

// Entry pairs a human readable line name with the path segment the API uses for it.
type Entry struct {
	Name string
	ID   string
}

// Registry is an ordered, immutable set of line entries.
type Registry struct {
	entries []Entry
	byName  map[string]string
}

func New(entries []Entry) (*Registry, error) {
	registry := &Registry{
		entries: make([]Entry, 0, len(entries)),
		byName:  make(map[string]string, len(entries)),
	}

	for i, entry := range entries {
		if entry.Name == "" {
			return nil, fmt.Errorf("line %d: empty name", i)
		}
		if _, ok := registry.byName[entry.Name]; ok {
			return nil, fmt.Errorf("line %q: duplicate name", entry.Name)
		}
		if err := validateID(entry.ID); err != nil {
			return nil, fmt.Errorf("line %q: %w", entry.Name, err)
		}

		registry.entries = append(registry.entries, entry)
		registry.byName[entry.Name] = entry.ID
	}

	return registry, nil
}

// validateID accepts single segments ("central") and mode paths ("mode/elizabeth-line").
func validateID(id string) error {
	if id == "" {
		return fmt.Errorf("empty id")
	}
	for _, segment := range strings.Split(id, "/") {
		if segment == "" {
			return fmt.Errorf("id %q has an empty path segment", id)
		}
	}
	return nil
}

// Lookup resolves a display name to its API id. Matching is exact and case-sensitive.
func (registry *Registry) Lookup(name string) (string, error) {
	id, ok := registry.byName[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return id, nil
}

func (registry *Registry) Names() []string {
	names := make([]string, len(registry.entries))
	for i, entry := range registry.entries {
		names[i] = entry.Name
	}
	return names
}

func (registry *Registry) Entries() []Entry {
	out := make([]Entry, len(registry.entries))
	copy(out, registry.entries)
	return out
}

func (registry *Registry) Len() int {
	return len(registry.entries)
}
