package topic

import (
	"fmt"

	"github.com/ohler55/ojg/jp"
	"github.com/vk/tomeview/internal/schema"
	"github.com/vk/tomeview/internal/tome"
	"github.com/vk/tomeview/internal/view"
)

// Topic is the live root view of a topic instance.
type Topic struct {
	root     *view.Object
	tree     *tome.Object
	instance *Instance
}

// Keys returns the tree's keys. Bookkeeping keys and fields held only by
// the bare instance are not listed.
func (t *Topic) Keys() []string { return t.tree.Keys() }

// Has reports whether the tree holds key.
func (t *Topic) Has(key string) bool { return t.tree.Has(key) }

// Get reads key from the tree, converting compounds to views, and falls
// back to the bare instance for keys the tree does not hold.
func (t *Topic) Get(key string) any {
	if view.IsBookkeeping(key) || t.tree.Has(key) {
		return t.root.Get(key)
	}
	return t.instance.Get(key)
}

// Set writes value into the tree.
func (t *Topic) Set(key string, value any) error {
	return t.root.Set(key, value)
}

// Delete removes key from the tree when present there, and always from the
// bare instance.
func (t *Topic) Delete(key string) error {
	if t.tree.Has(key) {
		if err := t.root.Delete(key); err != nil {
			return err
		}
	}
	t.instance.Delete(key)
	return nil
}

// Query evaluates a JSONPath expression against the tree's snapshot.
func (t *Topic) Query(path string) ([]any, error) {
	x, err := jp.ParseString(path)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", path, err)
	}
	return x.Get(t.tree.Snapshot()), nil
}

func (t *Topic) Type() *schema.Type { return t.instance.typ }

func (t *Topic) TypeName() string { return t.instance.typ.TypeName() }

func (t *Topic) Instance() *Instance { return t.instance }

// Tree returns the tracked tree.
func (t *Topic) Tree() *tome.Object { return t.tree }

// Data is an alias of Tree.
func (t *Topic) Data() *tome.Object { return t.tree }

// View returns the root view. Writes through it share the topic's type
// cache.
func (t *Topic) View() *view.Object { return t.root }

func (t *Topic) Topic() string { return t.instance.topic }

func (t *Topic) State() *State { return t.instance.state }

func (t *Topic) Identity() Identity { return t.instance.identity }

func (t *Topic) Snapshot() any { return t.tree.Snapshot() }

func (t *Topic) String() string { return t.root.String() }

// Inspect renders the tree labelled with the topic type name.
func (t *Topic) Inspect(depth int) string { return t.root.Inspect(depth) }

func (t *Topic) Format(f fmt.State, verb rune) { t.root.Format(f, verb) }
