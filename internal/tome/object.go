package tome

import "slices"

// Leaf holds a single raw value.
type Leaf struct {
	meta
	value any
}

func newLeaf(v any) *Leaf {
	l := &Leaf{value: v}
	l.self = l
	l.log = &diffLog{}
	return l
}

func (l *Leaf) Kind() Kind { return KindLeaf }

// Value returns the raw value held by the leaf.
func (l *Leaf) Value() any { return l.value }

func (l *Leaf) Snapshot() any { return l.value }

// Object is a container of insertion-ordered keyed children.
type Object struct {
	meta
	keys     []string
	children map[string]Node
}

// NewObject returns an empty root object.
func NewObject() *Object {
	o := &Object{children: make(map[string]Node)}
	o.self = o
	o.log = &diffLog{}
	return o
}

func (o *Object) Kind() Kind { return KindObject }

func (o *Object) Child(key string) (Node, bool) {
	n, ok := o.children[key]
	return n, ok
}

func (o *Object) Has(key string) bool {
	_, ok := o.children[key]
	return ok
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string { return slices.Clone(o.keys) }

func (o *Object) Len() int { return len(o.keys) }

// Set stores a copy of value under key, replacing any previous child.
func (o *Object) Set(key string, value any) error {
	n, err := Conjure(value)
	if err != nil {
		return err
	}
	o.put(key, n)
	touch(o)
	o.log.record(o, Diff{Op: OpSet, Key: key, Value: n.Snapshot()})
	return nil
}

func (o *Object) put(key string, n Node) {
	if old, ok := o.children[key]; ok {
		detach(old)
	} else {
		o.keys = append(o.keys, key)
	}
	o.children[key] = n
	attach(o, n, key)
}

// Delete removes key. Deleting an absent key does nothing.
func (o *Object) Delete(key string) error {
	old, ok := o.children[key]
	if !ok {
		return nil
	}
	delete(o.children, key)
	o.keys = slices.DeleteFunc(o.keys, func(k string) bool { return k == key })
	detach(old)
	touch(o)
	o.log.record(o, Diff{Op: OpDelete, Key: key})
	return nil
}

func (o *Object) Snapshot() any {
	out := make(map[string]any, len(o.keys))
	for _, k := range o.keys {
		out[k] = o.children[k].Snapshot()
	}
	return out
}

// EnableDiff switches diff recording on or off for the whole tree.
func (o *Object) EnableDiff(enabled bool) { o.log.enabled = enabled }

// ReadDiff returns the pending diff entries under o and drops them.
func (o *Object) ReadDiff() []Diff { return o.log.drain(path(o)) }

// MarkClean clears the dirty flags of o and its whole subtree.
func (o *Object) MarkClean() { markClean(o) }
