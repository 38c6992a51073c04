package config

import "fmt"

// Model is the unified, format-agnostic representation of the application
// configuration.
type Model struct {
	// PreferredModule names the source searched before the core source.
	PreferredModule string
	// Modules lists the bundled sources to load, in search order.
	Modules []string
	// Aliases maps a type name to the name it should resolve as.
	Aliases map[string]string
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{Aliases: make(map[string]string)}
}

// Merge folds other into m. Modules are appended without duplicates, a
// non-empty preferred module replaces the current one, and an alias that is
// already defined with a different target is an error.
func (m *Model) Merge(other *Model) error {
	if other == nil {
		return nil
	}
	if other.PreferredModule != "" {
		m.PreferredModule = other.PreferredModule
	}
	for _, name := range other.Modules {
		if !m.HasModule(name) {
			m.Modules = append(m.Modules, name)
		}
	}
	if m.Aliases == nil {
		m.Aliases = make(map[string]string)
	}
	for from, to := range other.Aliases {
		if existing, ok := m.Aliases[from]; ok && existing != to {
			return fmt.Errorf("alias '%s' defined twice with targets '%s' and '%s'", from, existing, to)
		}
		m.Aliases[from] = to
	}
	return nil
}

// HasModule reports whether name is listed in Modules.
func (m *Model) HasModule(name string) bool {
	for _, n := range m.Modules {
		if n == name {
			return true
		}
	}
	return false
}
