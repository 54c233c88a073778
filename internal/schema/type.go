// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package schema

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// GenericName is the name reported by the untyped binding.
const GenericName = "Object"

// Generic is the binding used when nothing more specific is known about a
// compound value. It declares no fields.
var Generic = &Type{Name: GenericName, byName: map[string]*Field{}}

// Field is one declared field of a topic type.
type Field struct {
	Name        string
	Type        cty.Type
	Description string
	// Ref names the topic type compound values of this field are bound to.
	// For list-typed fields it is the element type.
	Ref string
	// Default is nil when the field has no default.
	Default *cty.Value
}

// DefaultValue converts the field's default into plain Go values.
// A field without a default yields nil.
func (f *Field) DefaultValue() (any, error) {
	if f.Default == nil {
		return nil, nil
	}
	v, err := ToNative(*f.Default)
	if err != nil {
		return nil, fmt.Errorf("default of field '%s': %w", f.Name, err)
	}
	return v, nil
}

// Type is a named topic type.
type Type struct {
	Name        string
	Description string
	// Index lists the fields that identify one instance of the topic.
	Index []string
	// Source is the manifest file the type was parsed from, if any.
	Source string

	fields []*Field
	byName map[string]*Field
}

// NewType returns an empty type with the given name.
func NewType(name string) *Type {
	return &Type{Name: name, byName: make(map[string]*Field)}
}

// Field declares a field and returns the type for chaining. Redeclaring a
// name replaces the earlier declaration in place.
func (t *Type) Field(f *Field) *Type {
	if old, ok := t.byName[f.Name]; ok {
		for i := range t.fields {
			if t.fields[i] == old {
				t.fields[i] = f
			}
		}
	} else {
		t.fields = append(t.fields, f)
	}
	t.byName[f.Name] = f
	return t
}

// Lookup returns the declared field called name.
func (t *Type) Lookup(name string) (*Field, bool) {
	if t == nil {
		return nil, false
	}
	f, ok := t.byName[name]
	return f, ok
}

// Fields returns the declared fields in declaration order.
func (t *Type) Fields() []*Field {
	if t == nil {
		return nil
	}
	out := make([]*Field, len(t.fields))
	copy(out, t.fields)
	return out
}

// IsGeneric reports whether t is the untyped binding.
func (t *Type) IsGeneric() bool {
	return t == nil || t == Generic
}

// TypeName returns the name to report for t, falling back to GenericName.
func (t *Type) TypeName() string {
	if t.IsGeneric() {
		return GenericName
	}
	return t.Name
}

// Defaults returns every declared field's default converted to Go values,
// keyed by field name. Fields without a default map to nil.
func (t *Type) Defaults() (map[string]any, error) {
	out := make(map[string]any, len(t.fields))
	for _, f := range t.fields {
		v, err := f.DefaultValue()
		if err != nil {
			return nil, fmt.Errorf("topic '%s': %w", t.Name, err)
		}
		out[f.Name] = v
	}
	return out, nil
}

func (t *Type) String() string { return t.TypeName() }
