package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/vk/tomeview/internal/schema"
)

var (
	// ErrUnknownType is returned when a topic type name is not registered.
	ErrUnknownType = errors.New("unknown topic type")
	// ErrDuplicateType is returned when a topic type name is registered twice.
	ErrDuplicateType = errors.New("topic type already registered")
)

// Module is implemented by Go packages that contribute topic types or Go
// type bindings.
type Module interface {
	Register(r *Registry) error
}

// Registry holds the topic types and Go type bindings of one application
// instance.
type Registry struct {
	types   map[string]*schema.Type
	order   []string
	goTypes map[reflect.Type]string
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		types:   make(map[string]*schema.Type),
		goTypes: make(map[reflect.Type]string),
	}
}

// Register adds a topic type.
func (r *Registry) Register(t *schema.Type) error {
	if t == nil || t.Name == "" {
		return errors.New("topic type must have a name")
	}
	if existing, ok := r.types[t.Name]; ok {
		return fmt.Errorf("%w: '%s' (first declared in %q)", ErrDuplicateType, t.Name, existing.Source)
	}
	slog.Debug("Registering topic type.", "name", t.Name, "fields", len(t.Fields()))
	r.types[t.Name] = t
	r.order = append(r.order, t.Name)
	return nil
}

// RegisterModules lets each module register its types.
func (r *Registry) RegisterModules(modules ...Module) error {
	for _, m := range modules {
		if err := m.Register(r); err != nil {
			return err
		}
	}
	return nil
}

// RegisterGoType binds the Go type of sample (pointers are dereferenced) to
// the topic type called typeName. The topic type may be registered later.
func (r *Registry) RegisterGoType(sample any, typeName string) {
	rt := indirectType(reflect.TypeOf(sample))
	if rt == nil {
		panic("cannot bind the nil type")
	}
	if existing, exists := r.goTypes[rt]; exists {
		panic(fmt.Sprintf("Go type '%s' already bound to topic type '%s'", rt, existing))
	}
	slog.Debug("Binding Go type.", "go_type", rt.String(), "topic", typeName)
	r.goTypes[rt] = typeName
}

// Lookup returns the topic type called name.
func (r *Registry) Lookup(name string) (*schema.Type, error) {
	t, ok := r.types[name]
	if !ok {
		if near := r.closest(name); near != "" {
			return nil, fmt.Errorf("%w: '%s' (did you mean '%s'?)", ErrUnknownType, name, near)
		}
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownType, name)
	}
	return t, nil
}

// closest returns the registered name nearest to name by edit distance, or
// "" when none is within a third of its length (at least two edits).
func (r *Registry) closest(name string) string {
	limit := max(2, len(name)/3)
	best, bestDist := "", limit+1
	for _, candidate := range r.order {
		d := levenshtein.ComputeDistance(strings.ToLower(name), strings.ToLower(candidate))
		if d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}

// Types returns the registered types in registration order.
func (r *Registry) Types() []*schema.Type {
	out := make([]*schema.Type, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.types[name])
	}
	return out
}

func indirectType(rt reflect.Type) reflect.Type {
	for rt != nil && rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	return rt
}
