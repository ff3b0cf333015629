// Package section derives occupancy and congestion status for track
// sections from a train snapshot.
package section

import (
	"github.com/zulandar/trackside/internal/config"
)

// Section is one configured track segment.
type Section struct {
	Name      string
	Capacity  int
	Alternate string
}

// Registry is the fixed set of configured sections, in configured order.
// It is immutable after construction and injected into every component
// that needs section lookups.
type Registry struct {
	sections []Section
	byName   map[string]int
}

// NewRegistry builds a Registry from validated configuration.
func NewRegistry(cfgs []config.SectionConfig) *Registry {
	r := &Registry{
		sections: make([]Section, len(cfgs)),
		byName:   make(map[string]int, len(cfgs)),
	}
	for i, c := range cfgs {
		r.sections[i] = Section{Name: c.Name, Capacity: c.Capacity, Alternate: c.Alternate}
		r.byName[c.Name] = i
	}
	return r
}

// Sections returns all sections in configured order.
func (r *Registry) Sections() []Section {
	out := make([]Section, len(r.sections))
	copy(out, r.sections)
	return out
}

// Has reports whether name is a configured section.
func (r *Registry) Has(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Get returns the section with the given name.
func (r *Registry) Get(name string) (Section, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Section{}, false
	}
	return r.sections[i], true
}

// Alternate returns the configured reroute target for a section.
func (r *Registry) Alternate(name string) (string, bool) {
	i, ok := r.byName[name]
	if !ok {
		return "", false
	}
	return r.sections[i].Alternate, true
}
