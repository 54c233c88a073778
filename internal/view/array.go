package view

import (
	"iter"
	"math"
	"reflect"

	"github.com/vk/tomeview/internal/tome"
)

// LengthKey is answered by (*Array).Get with the element count.
const LengthKey = "length"

// Array is a view over an array node. Every element is bound to the
// array's own type.
//
// Methods that hand elements to the caller, either as results or as
// callback arguments, convert them first: compound elements arrive as
// views, leaves as raw values. Len, Join, IndexOf, Push, Unshift and Reverse
// go straight to the node.
type Array struct {
	binding
	node *tome.Array
}

func (a *Array) convert(n tome.Node) any {
	return Convert(n, a.typ, a.resolver)
}

func (a *Array) convertAll(nodes []tome.Node) []any {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = a.convert(n)
	}
	return out
}

// Get reads key: bookkeeping keys, LengthKey, or a decimal index.
func (a *Array) Get(key string) any {
	if v, ok := Bookkeeping(a.node, key); ok {
		return v
	}
	if key == LengthKey {
		return a.node.Len()
	}
	child, ok := a.node.Child(key)
	if !ok {
		return nil
	}
	return a.convert(child)
}

// At returns the converted element at i, or nil when out of range.
func (a *Array) At(i int) any {
	n, ok := a.node.At(i)
	if !ok {
		return nil
	}
	return a.convert(n)
}

func (a *Array) Len() int { return a.node.Len() }

// Values yields the converted elements in order.
func (a *Array) Values() iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, n := range a.node.Elements() {
			if !yield(a.convert(n)) {
				return
			}
		}
	}
}

// Entries yields (index, converted element) pairs in order.
func (a *Array) Entries() iter.Seq2[int, any] {
	return func(yield func(int, any) bool) {
		for i, n := range a.node.Elements() {
			if !yield(i, a.convert(n)) {
				return
			}
		}
	}
}

// Pop removes and returns the last element, or nil when empty.
func (a *Array) Pop() any { return a.convert(a.node.Pop()) }

// Shift removes and returns the first element, or nil when empty.
func (a *Array) Shift() any { return a.convert(a.node.Shift()) }

// Slice returns the elements in [start, end). Negative positions count from
// the end.
func (a *Array) Slice(start, end int) []any {
	return a.convertAll(a.node.Slice(start, end))
}

// Splice removes deleteCount elements at start, inserts items and returns
// the removed elements.
func (a *Array) Splice(start, deleteCount int, items ...any) ([]any, error) {
	removed, err := a.node.Splice(start, deleteCount, items...)
	if err != nil {
		return nil, err
	}
	return a.convertAll(removed), nil
}

// Push appends values and returns the new length.
func (a *Array) Push(values ...any) (int, error) { return a.node.Push(values...) }

// Unshift prepends values and returns the new length.
func (a *Array) Unshift(values ...any) (int, error) { return a.node.Unshift(values...) }

// Reverse reverses the array in place.
func (a *Array) Reverse() *Array {
	a.node.Reverse()
	return a
}

// Join renders the elements separated by sep.
func (a *Array) Join(sep string) string { return a.node.Join(sep) }

// IndexOf returns the position of value, or -1. Views match the element
// they view.
func (a *Array) IndexOf(value any) int {
	if v, ok := value.(View); ok {
		return a.node.IndexOf(v.Node())
	}
	return a.node.IndexOf(value)
}

// Sort orders the array in place. A nil cmp compares string renderings.
func (a *Array) Sort(cmp func(x, y any) int) *Array {
	if cmp == nil {
		a.node.Sort(nil)
		return a
	}
	a.node.Sort(func(x, y tome.Node) int {
		return cmp(a.convert(x), a.convert(y))
	})
	return a
}

// Includes reports whether any element equals value. Leaves compare by
// value (NaN matches NaN), views by the node they view, and raw maps or
// slices by deep equality with the element's snapshot.
func (a *Array) Includes(value any) bool {
	return a.Some(func(v any, _ int) bool { return sameValue(v, value) })
}

func (a *Array) ForEach(fn func(v any, i int)) {
	a.node.ForEach(func(n tome.Node, i int) { fn(a.convert(n), i) })
}

// Filter returns the elements for which fn holds.
func (a *Array) Filter(fn func(v any, i int) bool) []any {
	return a.convertAll(a.node.Filter(a.predicate(fn)))
}

// Map returns fn's results. The array is not modified.
func (a *Array) Map(fn func(v any, i int) any) []any {
	return a.node.Map(func(n tome.Node, i int) any { return fn(a.convert(n), i) })
}

func (a *Array) Every(fn func(v any, i int) bool) bool {
	return a.node.Every(a.predicate(fn))
}

func (a *Array) Some(fn func(v any, i int) bool) bool {
	return a.node.Some(a.predicate(fn))
}

func (a *Array) Reduce(fn func(acc, v any, i int) any, initial any) any {
	return a.node.Reduce(a.reducer(fn), initial)
}

func (a *Array) ReduceRight(fn func(acc, v any, i int) any, initial any) any {
	return a.node.ReduceRight(a.reducer(fn), initial)
}

// Find returns the first element for which fn holds.
func (a *Array) Find(fn func(v any, i int) bool) (any, bool) {
	n, ok := a.node.Find(a.predicate(fn))
	if !ok {
		return nil, false
	}
	return a.convert(n), true
}

func (a *Array) FindIndex(fn func(v any, i int) bool) int {
	return a.node.FindIndex(a.predicate(fn))
}

func (a *Array) predicate(fn func(v any, i int) bool) func(tome.Node, int) bool {
	return func(n tome.Node, i int) bool { return fn(a.convert(n), i) }
}

func (a *Array) reducer(fn func(acc, v any, i int) any) func(any, tome.Node, int) any {
	return func(acc any, n tome.Node, i int) any { return fn(acc, a.convert(n), i) }
}

func sameValue(x, y any) bool {
	xv, xView := x.(View)
	yv, yView := y.(View)
	switch {
	case xView && yView:
		return xv.Node() == yv.Node()
	case xView:
		return isCompound(y) && reflect.DeepEqual(xv.Snapshot(), y)
	case yView:
		return isCompound(x) && reflect.DeepEqual(x, yv.Snapshot())
	}
	if xf, ok := x.(float64); ok && math.IsNaN(xf) {
		yf, ok := y.(float64)
		return ok && math.IsNaN(yf)
	}
	return tome.LeafEqual(x, y)
}

func isCompound(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return true
	default:
		return false
	}
}
