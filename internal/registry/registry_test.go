package registry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/tomeview/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

type player struct {
	Name string
}

type typedValue struct{ t *schema.Type }

func (v typedValue) Type() *schema.Type { return v.t }

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r := New()
	item := schema.NewType("Item").Field(&schema.Field{Name: "label", Type: cty.String})
	p := schema.NewType("Player").
		Field(&schema.Field{Name: "name", Type: cty.String}).
		Field(&schema.Field{Name: "inventory", Type: cty.List(cty.EmptyObject), Ref: "Item"}).
		Field(&schema.Field{Name: "profile", Type: cty.EmptyObject})
	require.NoError(t, r.Register(item))
	require.NoError(t, r.Register(p))
	return r
}

func TestRegister_Duplicate(t *testing.T) {
	r := newTestRegistry(t)
	err := r.Register(schema.NewType("Item"))
	assert.ErrorIs(t, err, ErrDuplicateType)

	assert.Error(t, r.Register(&schema.Type{}))
}

func TestLookup(t *testing.T) {
	r := newTestRegistry(t)

	p, err := r.Lookup("Player")
	require.NoError(t, err)
	assert.Equal(t, "Player", p.Name)

	_, err = r.Lookup("Ghost")
	assert.ErrorIs(t, err, ErrUnknownType)
	assert.NotContains(t, err.Error(), "did you mean")

	_, err = r.Lookup("player")
	assert.ErrorIs(t, err, ErrUnknownType)
	assert.Contains(t, err.Error(), "did you mean 'Player'?")

	_, err = r.Lookup("Playr")
	assert.Contains(t, err.Error(), "did you mean 'Player'?")

	var names []string
	for _, ty := range r.Types() {
		names = append(names, ty.Name)
	}
	assert.Equal(t, []string{"Item", "Player"}, names)
}

func TestFieldType(t *testing.T) {
	r := newTestRegistry(t)
	p, _ := r.Lookup("Player")

	item, ok := r.FieldType(p, "inventory")
	require.True(t, ok)
	assert.Equal(t, "Item", item.Name)

	_, ok = r.FieldType(p, "profile")
	assert.False(t, ok, "field without ref")

	_, ok = r.FieldType(p, "undeclared")
	assert.False(t, ok)

	_, ok = r.FieldType(nil, "inventory")
	assert.False(t, ok)
}

func TestTypeOf(t *testing.T) {
	r := newTestRegistry(t)
	r.RegisterGoType(player{}, "Player")

	got, ok := r.TypeOf(&player{Name: "x"})
	require.True(t, ok)
	assert.Equal(t, "Player", got.Name)

	got, ok = r.TypeOf(player{})
	require.True(t, ok)
	assert.Equal(t, "Player", got.Name)

	item, _ := r.Lookup("Item")
	got, ok = r.TypeOf(typedValue{t: item})
	require.True(t, ok)
	assert.Same(t, item, got)

	_, ok = r.TypeOf(typedValue{t: schema.Generic})
	assert.False(t, ok)

	_, ok = r.TypeOf(map[string]any{})
	assert.False(t, ok)

	_, ok = r.TypeOf(nil)
	assert.False(t, ok)
}

func TestRegisterGoType_DuplicatePanics(t *testing.T) {
	r := New()
	r.RegisterGoType(player{}, "Player")
	assert.Panics(t, func() { r.RegisterGoType(&player{}, "Other") })
}

type testModule struct{}

func (testModule) Register(r *Registry) error {
	r.RegisterGoType(player{}, "Player")
	return r.Register(schema.NewType("Player"))
}

func TestRegisterModules(t *testing.T) {
	r := New()
	require.NoError(t, r.RegisterModules(testModule{}))
	_, ok := r.TypeOf(player{})
	assert.True(t, ok)
}

func TestValidate(t *testing.T) {
	r := newTestRegistry(t)
	require.NoError(t, r.Validate(context.Background()))

	bad := schema.NewType("Broken").
		Field(&schema.Field{Name: "child", Type: cty.EmptyObject, Ref: "Missing"}).
		Field(&schema.Field{Name: "n", Type: cty.Number, Ref: "Item"})
	bad.Index = []string{"id"}
	require.NoError(t, r.Register(bad))
	r.RegisterGoType(player{}, "Nowhere")

	err := r.Validate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ref names unknown topic type 'Missing'")
	assert.Contains(t, err.Error(), "ref requires a compound type")
	assert.Contains(t, err.Error(), "index field 'id' is not declared")
	assert.Contains(t, err.Error(), "bound to unknown topic type 'Nowhere'")
}

func TestLoadManifestsRecursively(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "player.hcl"), []byte(`
topic "Player" {
  index = ["id"]
  field "id" { type = string }
  field "inventory" {
    type = list(object)
    ref  = "Item"
  }
}
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "item.hcl"), []byte(`
topic "Item" {
  field "label" {
    type    = string
    default = "unnamed"
  }
}
`), 0o644))

	r := New()
	require.NoError(t, r.LoadManifestsRecursively(context.Background(), dir))
	require.NoError(t, r.Validate(context.Background()))

	p, err := r.Lookup("Player")
	require.NoError(t, err)
	item, ok := r.FieldType(p, "inventory")
	require.True(t, ok)
	assert.Equal(t, "Item", item.Name)
}

func TestLoadManifestsRecursively_Errors(t *testing.T) {
	t.Run("parse error", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.hcl"), []byte(`topic "A" {`), 0o644))
		assert.Error(t, New().LoadManifestsRecursively(context.Background(), dir))
	})

	t.Run("duplicate across files", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{"a.hcl", "b.hcl"} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(`topic "A" {}`), 0o644))
		}
		err := New().LoadManifestsRecursively(context.Background(), dir)
		assert.ErrorIs(t, err, ErrDuplicateType)
	})

	t.Run("missing path", func(t *testing.T) {
		err := New().LoadManifestsRecursively(context.Background(), filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})

	t.Run("empty dir", func(t *testing.T) {
		assert.NoError(t, New().LoadManifestsRecursively(context.Background(), t.TempDir()))
	})
}
