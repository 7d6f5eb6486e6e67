// Package population maps individuals to the population group (label) they
// were assigned to.
package population

import (
	"sort"
)

// Unknown is the label of every individual absent from a Registry.
const Unknown = "???"

// Registry is an individual -> label map, plus the reverse index. Build it
// with Add or Parse, then treat it as read-only; lookups are then safe from
// concurrent goroutines.
type Registry struct {
	groups  map[string]string
	members map[string][]string
	order   []string
}

func NewRegistry() *Registry {
	return &Registry{
		groups:  make(map[string]string),
		members: make(map[string][]string),
	}
}

// Add assigns an individual to a group. An individual belongs to a single
// group, so re-adding it moves it.
func (r *Registry) Add(individual, group string) {
	if old, exists := r.groups[individual]; exists {
		if old == group {
			return
		}
		r.members[old] = remove(r.members[old], individual)
		if len(r.members[old]) == 0 {
			delete(r.members, old)
		}
	} else {
		r.order = append(r.order, individual)
	}

	r.groups[individual] = group
	r.members[group] = append(r.members[group], individual)
}

// Group returns the label of an individual, or Unknown.
func (r *Registry) Group(individual string) string {
	if g, ok := r.groups[individual]; ok {
		return g
	}
	return Unknown
}

func (r *Registry) Has(individual string) bool {
	_, ok := r.groups[individual]
	return ok
}

// Labels maps each individual to its label, keeping the order of the input.
func (r *Registry) Labels(individuals []string) []string {
	out := make([]string, len(individuals))
	for i, id := range individuals {
		out[i] = r.Group(id)
	}
	return out
}

// Individuals lists the registered individuals in the order they were added.
func (r *Registry) Individuals() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Groups lists the distinct labels, sorted.
func (r *Registry) Groups() []string {
	out := make([]string, 0, len(r.members))
	for g := range r.members {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

// Members lists the individuals of a group in the order they were added.
func (r *Registry) Members(group string) []string {
	m := r.members[group]
	out := make([]string, len(m))
	copy(out, m)
	return out
}

func (r *Registry) Len() int {
	return len(r.groups)
}

func remove(list []string, s string) []string {
	for i, v := range list {
		if v == s {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
