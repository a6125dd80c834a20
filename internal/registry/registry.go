package registry

import (
	"fmt"
	"log/slog"
	"reflect"
	"sort"

	"github.com/specialistvlad/flowkit/internal/component"
)

// Constructor builds a fresh component definition.
type Constructor func() *component.Component

// UnknownComponentError reports a lookup for a name nothing registered.
type UnknownComponentError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownComponentError) Error() string {
	return fmt.Sprintf("unknown component %q", e.Name)
}

// Module is the interface every extension implements to contribute its
// components to a registry.
type Module interface {
	Register(r *Registry) error
}

// Registry holds the registered component constructors for a single
// application instance.
type Registry struct {
	components map[string]Constructor
}

// New creates and initializes an empty Registry.
func New() *Registry {
	return &Registry{components: make(map[string]Constructor)}
}

// Register adds a constructor under name. Re-registering the same
// constructor under the same name is a no-op; a different constructor
// under an existing name is a conflict. The produced definition is
// validated here so a malformed component can never be resolved later.
func (r *Registry) Register(name string, ctor Constructor) error {
	if ctor == nil {
		return fmt.Errorf("component %q: nil constructor", name)
	}
	if existing, ok := r.components[name]; ok {
		if reflect.ValueOf(existing).Pointer() == reflect.ValueOf(ctor).Pointer() {
			slog.Debug("Component already registered, skipping.", "name", name)
			return nil
		}
		return fmt.Errorf("component %q already registered with a different constructor", name)
	}

	def := ctor()
	if def == nil {
		return fmt.Errorf("component %q: constructor returned nil", name)
	}
	if def.Name != name {
		return fmt.Errorf("component registered as %q but declares name %q", name, def.Name)
	}
	if err := def.Validate(); err != nil {
		return err
	}

	slog.Debug("Registering component.", "name", name, "kind", def.Contract.Kind.String())
	r.components[name] = ctor
	return nil
}

// RegisterModules runs each module's registration step in order. Order
// does not affect correctness: registration is idempotent and keyed by
// name.
func (r *Registry) RegisterModules(modules ...Module) error {
	for _, mod := range modules {
		if err := mod.Register(r); err != nil {
			return err
		}
	}
	return nil
}

// Lookup resolves a component name to its constructor.
func (r *Registry) Lookup(name string) (Constructor, error) {
	ctor, ok := r.components[name]
	if !ok {
		return nil, &UnknownComponentError{Name: name}
	}
	return ctor, nil
}

// Names returns every registered component name in sorted order, for
// introspection by pipeline resolvers.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
