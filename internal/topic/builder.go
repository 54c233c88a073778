package topic

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/vk/tomeview/internal/ctxlog"
	"github.com/vk/tomeview/internal/registry"
	"github.com/vk/tomeview/internal/tome"
	"github.com/vk/tomeview/internal/view"
)

// ErrInvalidData is returned when topic data is not object-shaped.
var ErrInvalidData = errors.New("topic data must be an object")

// Builder creates topic instances of the types held by a registry.
type Builder struct {
	reg      *registry.Registry
	resolver IndexResolver
}

// NewBuilder returns a Builder. A nil resolver defaults to
// DeclaredResolver.
func NewBuilder(reg *registry.Registry, resolver IndexResolver) *Builder {
	if resolver == nil {
		resolver = DeclaredResolver{}
	}
	return &Builder{reg: reg, resolver: resolver}
}

// Create builds a live instance of the topic type called typeName.
//
// data may be nil, an existing *tome.Object (adopted, not copied) or any
// value tome.Conjure accepts that yields an object. Defaults are seeded only
// when there is no data: nil, or a nil pointer, map or slice. On error no
// Topic is returned.
func (b *Builder) Create(ctx context.Context, typeName string, state *State, index Index, data any) (*Topic, error) {
	ctx = ctxlog.With(ctx, "topic", typeName)
	logger := ctxlog.FromContext(ctx)

	t, err := b.reg.Lookup(typeName)
	if err != nil {
		return nil, err
	}

	if absent(data) {
		data = nil
	}
	tree, err := adoptTree(data)
	if err != nil {
		return nil, fmt.Errorf("topic '%s': %w", typeName, err)
	}

	instance, err := newInstance(t)
	if err != nil {
		return nil, err
	}

	if data == nil {
		for _, f := range t.Fields() {
			if err := tree.Set(f.Name, instance.fields[f.Name]); err != nil {
				return nil, fmt.Errorf("topic '%s': seeding field '%s': %w", typeName, f.Name, err)
			}
			instance.Delete(f.Name)
		}
		logger.Debug("Seeded topic defaults.", "fields", len(t.Fields()))
	}

	instance.topic = t.Name
	instance.state = state

	logger.Debug("Resolving topic index.", "index", index.String())
	identity, err := b.resolver.Resolve(ctx, t, index)
	if err != nil {
		logger.Debug("Topic index resolution failed.", "error", err)
		return nil, err
	}
	instance.identity = identity

	root, ok := view.Wrap(tree, t, b.reg).(*view.Object)
	if !ok {
		return nil, fmt.Errorf("topic '%s': %w", typeName, ErrInvalidData)
	}

	logger.Debug("Topic instance created.", "key", identity.Key)
	return &Topic{root: root, tree: tree, instance: instance}, nil
}

func absent(data any) bool {
	if data == nil {
		return true
	}
	switch rv := reflect.ValueOf(data); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func adoptTree(data any) (*tome.Object, error) {
	switch d := data.(type) {
	case nil:
		return tome.NewObject(), nil
	case *tome.Object:
		return d, nil
	case tome.Node:
		return nil, fmt.Errorf("%w, got %s node", ErrInvalidData, d.Kind())
	}

	n, err := tome.Conjure(data)
	if err != nil {
		return nil, err
	}
	obj, ok := n.(*tome.Object)
	if !ok {
		return nil, fmt.Errorf("%w, got %s", ErrInvalidData, n.Kind())
	}
	return obj, nil
}
