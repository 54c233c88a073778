package view

import (
	"iter"

	"github.com/vk/tomeview/internal/schema"
	"github.com/vk/tomeview/internal/tome"
)

// Object is a view over an object node.
type Object struct {
	binding
	node *tome.Object
}

// Get reads key. Bookkeeping keys return the node's state, compound
// children come back as views, leaves as their raw value and absent keys
// as nil.
func (o *Object) Get(key string) any {
	if v, ok := Bookkeeping(o.node, key); ok {
		return v
	}
	child, ok := o.node.Child(key)
	if !ok {
		return nil
	}
	return Convert(child, o.ChildType(key), o.resolver)
}

// ChildType returns the type compound values under key are bound to:
// declared metadata first, then the type last written through this view,
// then schema.Generic.
func (o *Object) ChildType(key string) *schema.Type {
	if t, ok := o.resolver.FieldType(o.typ, key); ok {
		return t
	}
	if t, ok := o.cache.lookup(key); ok {
		return t
	}
	return schema.Generic
}

// All yields every key with its converted value, in key order.
func (o *Object) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range o.node.Keys() {
			if !yield(k, o.Get(k)) {
				return
			}
		}
	}
}

// Len returns the number of keys, excluding bookkeeping keys.
func (o *Object) Len() int { return o.node.Len() }
