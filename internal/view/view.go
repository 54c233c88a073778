package view

import (
	"fmt"
	"slices"

	"github.com/vk/tomeview/internal/schema"
	"github.com/vk/tomeview/internal/tome"
)

// Bookkeeping keys expose the tree engine's per-node state through Get.
const (
	KeyDirty       = "__dirty__"
	KeyRoot        = "__root__"
	KeyDiff        = "__diff__"
	KeyDiffEnabled = "__diffEnabled__"
	KeyVersion     = "__version__"
	KeyParent      = "__parent__"
	KeyKey         = "__key__"
)

// BookkeepingKeys lists the bookkeeping keys in the order Keys reports them.
var BookkeepingKeys = []string{
	KeyDirty, KeyRoot, KeyDiff, KeyDiffEnabled, KeyVersion, KeyParent, KeyKey,
}

// Resolver answers the type questions a view asks. *registry.Registry
// implements it.
type Resolver interface {
	// FieldType returns the declared type of compound values stored under
	// field in container.
	FieldType(container *schema.Type, field string) (*schema.Type, bool)
	// TypeOf returns the type of a value being written.
	TypeOf(value any) (*schema.Type, bool)
}

// View is a typed accessor over one object or array node.
type View interface {
	fmt.Stringer
	fmt.Formatter
	tome.Snapshotter

	Kind() tome.Kind
	// TypeName is "Array" for arrays and the bound type's name otherwise.
	TypeName() string
	Type() *schema.Type
	IsArray() bool

	// Keys returns the node's keys followed by BookkeepingKeys.
	Keys() []string
	Has(key string) bool
	Get(key string) any
	Set(key string, value any) error
	Delete(key string) error

	Node() tome.Container
	Inspect(depth int) string
}

var (
	_ View = (*Object)(nil)
	_ View = (*Array)(nil)
)

// Wrap binds node to t. Leaves and nil nodes yield nil; use Convert to get
// a leaf's value. A nil t binds to schema.Generic and a nil r resolves
// nothing.
func Wrap(node tome.Node, t *schema.Type, r Resolver) View {
	if t == nil {
		t = schema.Generic
	}
	if r == nil {
		r = noResolver{}
	}
	switch n := node.(type) {
	case *tome.Object:
		return &Object{binding: binding{container: n, typ: t, resolver: r}, node: n}
	case *tome.Array:
		return &Array{binding: binding{container: n, typ: t, resolver: r}, node: n}
	default:
		return nil
	}
}

// Convert returns what a read of node yields: a View for compounds, the raw
// value for leaves, nil for a nil node.
func Convert(node tome.Node, t *schema.Type, r Resolver) any {
	switch n := node.(type) {
	case nil:
		return nil
	case *tome.Leaf:
		return n.Value()
	default:
		return Wrap(n, t, r)
	}
}

type noResolver struct{}

func (noResolver) FieldType(*schema.Type, string) (*schema.Type, bool) { return nil, false }

func (noResolver) TypeOf(any) (*schema.Type, bool) { return nil, false }

// binding holds what objects and arrays have in common.
type binding struct {
	container tome.Container
	typ       *schema.Type
	resolver  Resolver
	cache     typeCache
}

func (b *binding) Kind() tome.Kind { return b.container.Kind() }

func (b *binding) IsArray() bool { return b.container.Kind() == tome.KindArray }

func (b *binding) Type() *schema.Type { return b.typ }

func (b *binding) TypeName() string {
	if b.IsArray() {
		return "Array"
	}
	return b.typ.TypeName()
}

func (b *binding) Node() tome.Container { return b.container }

func (b *binding) Snapshot() any { return b.container.Snapshot() }

func (b *binding) Has(key string) bool { return b.container.Has(key) }

func (b *binding) Keys() []string {
	return append(b.container.Keys(), BookkeepingKeys...)
}

// Set writes value under key and remembers value's type for later reads
// through this view.
func (b *binding) Set(key string, value any) error {
	if err := b.container.Set(key, value); err != nil {
		return err
	}
	t, ok := b.resolver.TypeOf(value)
	if !ok {
		t = schema.Generic
	}
	b.cache.record(key, t)
	return nil
}

// Delete removes key. Absent keys are ignored.
func (b *binding) Delete(key string) error {
	return b.container.Delete(key)
}

func (b *binding) String() string { return stringify(b.container) }

func (b *binding) Inspect(depth int) string {
	return inspect(b.TypeName(), b.container, depth)
}

func (b *binding) Format(f fmt.State, verb rune) {
	format(f, verb, b.String, b.Inspect)
}

// Bookkeeping returns the value of a bookkeeping key on node.
func Bookkeeping(node tome.Node, key string) (any, bool) {
	switch key {
	case KeyDirty:
		return node.Dirty(), true
	case KeyRoot:
		return node.Root(), true
	case KeyDiff:
		return node.Diff(), true
	case KeyDiffEnabled:
		return node.DiffEnabled(), true
	case KeyVersion:
		return node.Version(), true
	case KeyParent:
		return node.Parent(), true
	case KeyKey:
		return node.Key(), true
	default:
		return nil, false
	}
}

// IsBookkeeping reports whether key is one of BookkeepingKeys.
func IsBookkeeping(key string) bool {
	return slices.Contains(BookkeepingKeys, key)
}
