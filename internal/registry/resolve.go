package registry

import (
	"reflect"

	"github.com/vk/tomeview/internal/schema"
)

// Typed is implemented by values that already know their topic type, such
// as views and topics.
type Typed interface {
	Type() *schema.Type
}

// FieldType returns the type compound values of field are bound to inside
// container. The bool is false when the field is undeclared, carries no
// ref, or refers to an unregistered type.
func (r *Registry) FieldType(container *schema.Type, field string) (*schema.Type, bool) {
	f, ok := container.Lookup(field)
	if !ok || f.Ref == "" {
		return nil, false
	}
	t, ok := r.types[f.Ref]
	return t, ok
}

// TypeOf returns the topic type of value, if the registry knows it.
func (r *Registry) TypeOf(value any) (*schema.Type, bool) {
	if value == nil {
		return nil, false
	}
	if typed, ok := value.(Typed); ok {
		t := typed.Type()
		if t.IsGeneric() {
			return nil, false
		}
		return t, true
	}

	name, ok := r.goTypes[indirectType(reflect.TypeOf(value))]
	if !ok {
		return nil, false
	}
	t, ok := r.types[name]
	return t, ok
}
