package tome

import (
	"errors"
	"strconv"
)

var (
	// ErrNotContainer is returned when a keyed operation targets a leaf.
	ErrNotContainer = errors.New("tome: node is not a container")
	// ErrInvalidIndex is returned when an array is written with a key that is
	// not a decimal index in [0, len].
	ErrInvalidIndex = errors.New("tome: invalid array index")
	// ErrUnsupportedValue is returned when a Go value has no tree representation.
	ErrUnsupportedValue = errors.New("tome: unsupported value")
)

// Kind discriminates the three node shapes.
type Kind int

const (
	// KindLeaf is a node holding a single raw value.
	KindLeaf Kind = iota
	// KindObject is a node holding keyed children.
	KindObject
	// KindArray is a node holding ordered children.
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Snapshotter is anything that can flatten itself into raw Go values.
// Writing a Snapshotter into a container stores a copy of its snapshot.
type Snapshotter interface {
	Snapshot() any
}

// Node is the common surface of leaves, objects and arrays.
type Node interface {
	Snapshotter

	Kind() Kind
	// Parent is nil for a root.
	Parent() Node
	// Key is the position in the parent; "" for a root.
	Key() string
	Root() Node
	Dirty() bool
	Version() int
	DiffEnabled() bool
	// Diff returns the pending diff entries recorded under this node, with
	// paths relative to it.
	Diff() []Diff

	base() *meta
}

// Container is implemented by *Object and *Array.
type Container interface {
	Node

	Child(key string) (Node, bool)
	Has(key string) bool
	Keys() []string
	Len() int
	Set(key string, value any) error
	Delete(key string) error
	EnableDiff(enabled bool)
	ReadDiff() []Diff
	MarkClean()
}

// IsContainer reports whether n is an object or an array.
func IsContainer(n Node) bool {
	if n == nil {
		return false
	}
	k := n.Kind()
	return k == KindObject || k == KindArray
}

// meta is the bookkeeping shared by every node kind.
type meta struct {
	self    Node
	parent  Node
	key     string
	dirty   bool
	version int
	log     *diffLog
}

func (m *meta) base() *meta { return m }

func (m *meta) Parent() Node { return m.parent }

func (m *meta) Key() string { return m.key }

func (m *meta) Dirty() bool { return m.dirty }

func (m *meta) Version() int { return m.version }

func (m *meta) DiffEnabled() bool { return m.log.enabled }

func (m *meta) Root() Node {
	n := m.self
	for n.Parent() != nil {
		n = n.Parent()
	}
	return n
}

func (m *meta) Diff() []Diff {
	return m.log.under(path(m.self))
}

// path returns the keys leading from the root to n.
func path(n Node) []string {
	var keys []string
	for cur := n; cur.Parent() != nil; cur = cur.Parent() {
		keys = append(keys, cur.Key())
	}
	for i, j := 0, len(keys)-1; i < j; i, j = i+1, j-1 {
		keys[i], keys[j] = keys[j], keys[i]
	}
	return keys
}

// touch marks n and all of its ancestors dirty and bumps their versions.
func touch(n Node) {
	for cur := n; cur != nil; cur = cur.Parent() {
		m := cur.base()
		m.dirty = true
		m.version++
	}
}

// attach makes child a child of parent under key and moves it onto the
// parent's diff log.
func attach(parent Node, child Node, key string) {
	m := child.base()
	m.parent = parent
	m.key = key
	setLog(child, parent.base().log)
}

// detach turns child into a standalone root with its own disabled log.
func detach(child Node) {
	m := child.base()
	m.parent = nil
	m.key = ""
	setLog(child, &diffLog{})
}

func setLog(n Node, log *diffLog) {
	n.base().log = log
	switch c := n.(type) {
	case *Object:
		for _, k := range c.keys {
			setLog(c.children[k], log)
		}
	case *Array:
		for _, e := range c.elems {
			setLog(e, log)
		}
	}
}

func markClean(n Node) {
	n.base().dirty = false
	switch c := n.(type) {
	case *Object:
		for _, k := range c.keys {
			markClean(c.children[k])
		}
	case *Array:
		c.changed.Clear()
		for _, e := range c.elems {
			markClean(e)
		}
	}
}
