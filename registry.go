package virtuals

import (
	"fmt"
	"sort"
)

// Getter computes a virtual value. It is bound to the owning model at call
// time and receives any caller-supplied trailing arguments.
type Getter func(m *Model, args ...any) (any, error)

// Setter applies a virtual write. Persisted effects must arrive through
// explicit writes to real attribute names via m.Set / m.SetAll.
type Setter func(m *Model, value any) error

// Accessor declares a virtual property. Get is required; a nil Set marks the
// virtual read-only.
type Accessor struct {
	Get Getter
	Set Setter
}

// VirtualDescriptor describes a declared virtual for introspection.
type VirtualDescriptor struct {
	Name     string `json:"name"`
	Writable bool   `json:"writable"`
}

// Registry holds the virtual declarations for one model class. It is built
// once from the model definition and shared by every instance of that class;
// there is no mutation API after construction.
type Registry struct {
	virtuals map[string]Accessor
	names    []string
}

// NewRegistry constructs a Registry from declarations. The map is copied so
// the resulting Registry stays immutable even if the caller mutates their
// reference. Every declared virtual must carry a getter.
func NewRegistry(decls map[string]Accessor) (*Registry, error) {
	virtuals := make(map[string]Accessor, len(decls))
	names := make([]string, 0, len(decls))
	for name, acc := range decls {
		if name == "" {
			return nil, fmt.Errorf("virtuals: virtual name must not be empty")
		}
		if acc.Get == nil {
			return nil, fmt.Errorf("virtuals: virtual %q has no getter", name)
		}
		virtuals[name] = acc
		names = append(names, name)
	}
	sort.Strings(names)
	return &Registry{virtuals: virtuals, names: names}, nil
}

// MustRegistry is NewRegistry that panics on invalid declarations. Intended
// for package-level model definitions.
func MustRegistry(decls map[string]Accessor) *Registry {
	registry, err := NewRegistry(decls)
	if err != nil {
		panic(err)
	}
	return registry
}

// Has reports whether name is a declared virtual.
func (r *Registry) Has(name string) bool {
	if r == nil {
		return false
	}
	_, ok := r.virtuals[name]
	return ok
}

// Writable reports whether name is a declared virtual with a setter.
func (r *Registry) Writable(name string) bool {
	if r == nil {
		return false
	}
	acc, ok := r.virtuals[name]
	return ok && acc.Set != nil
}

// Names returns declared virtual names sorted alphabetically.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.names...)
}

// Describe returns descriptors for every declared virtual, sorted by name.
func (r *Registry) Describe() []VirtualDescriptor {
	if r == nil {
		return nil
	}
	descriptors := make([]VirtualDescriptor, 0, len(r.names))
	for _, name := range r.names {
		descriptors = append(descriptors, VirtualDescriptor{
			Name:     name,
			Writable: r.virtuals[name].Set != nil,
		})
	}
	return descriptors
}

func (r *Registry) accessor(name string) (Accessor, bool) {
	if r == nil {
		return Accessor{}, false
	}
	acc, ok := r.virtuals[name]
	return acc, ok
}
