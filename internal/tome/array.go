package tome

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring"
	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"
)

// Array is a container of ordered children keyed by decimal index.
type Array struct {
	meta
	elems   []Node
	changed *roaring.Bitmap
}

// NewArray returns an empty root array.
func NewArray() *Array {
	a := &Array{changed: roaring.New()}
	a.self = a
	a.log = &diffLog{}
	return a
}

func (a *Array) Kind() Kind { return KindArray }

func (a *Array) Len() int { return len(a.elems) }

// At returns the element at index i.
func (a *Array) At(i int) (Node, bool) {
	if i < 0 || i >= len(a.elems) {
		return nil, false
	}
	return a.elems[i], true
}

func (a *Array) Child(key string) (Node, bool) {
	i, ok := parseIndex(key)
	if !ok {
		return nil, false
	}
	return a.At(i)
}

func (a *Array) Has(key string) bool {
	_, ok := a.Child(key)
	return ok
}

func (a *Array) Keys() []string {
	keys := make([]string, len(a.elems))
	for i := range a.elems {
		keys[i] = strconv.Itoa(i)
	}
	return keys
}

// Elements returns the current children. The slice is a copy; the nodes
// are not.
func (a *Array) Elements() []Node { return slices.Clone(a.elems) }

// Set replaces the element at key. A key equal to Len appends.
func (a *Array) Set(key string, value any) error {
	i, ok := parseIndex(key)
	if !ok || i > len(a.elems) {
		return fmt.Errorf("%w: %q (length %d)", ErrInvalidIndex, key, len(a.elems))
	}
	n, err := Conjure(value)
	if err != nil {
		return err
	}
	if i == len(a.elems) {
		a.elems = append(a.elems, n)
	} else {
		detach(a.elems[i])
		a.elems[i] = n
	}
	attach(a, n, strconv.Itoa(i))
	a.changed.Add(uint32(i))
	touch(a)
	a.log.record(a, Diff{Op: OpSet, Key: strconv.Itoa(i), Value: n.Snapshot()})
	return nil
}

// Delete removes the element at key, shifting later elements down. Keys
// that are not an existing index are ignored.
func (a *Array) Delete(key string) error {
	i, ok := parseIndex(key)
	if !ok || i >= len(a.elems) {
		return nil
	}
	a.splice(i, 1, nil)
	touch(a)
	a.log.record(a, Diff{Op: OpDelete, Key: key})
	return nil
}

// Push appends values and returns the new length.
func (a *Array) Push(values ...any) (int, error) {
	if _, err := a.Splice(len(a.elems), 0, values...); err != nil {
		return len(a.elems), err
	}
	return len(a.elems), nil
}

// Unshift prepends values and returns the new length.
func (a *Array) Unshift(values ...any) (int, error) {
	if _, err := a.Splice(0, 0, values...); err != nil {
		return len(a.elems), err
	}
	return len(a.elems), nil
}

// Pop removes and returns the last element, or nil when empty.
func (a *Array) Pop() Node {
	if len(a.elems) == 0 {
		return nil
	}
	removed, _ := a.Splice(len(a.elems)-1, 1)
	return removed[0]
}

// Shift removes and returns the first element, or nil when empty.
func (a *Array) Shift() Node {
	if len(a.elems) == 0 {
		return nil
	}
	removed, _ := a.Splice(0, 1)
	return removed[0]
}

// Slice returns the elements in [start, end) without detaching them.
// Negative positions count from the end; both bounds are clamped.
func (a *Array) Slice(start, end int) []Node {
	s, e := clampIndex(start, len(a.elems)), clampIndex(end, len(a.elems))
	if s >= e {
		return []Node{}
	}
	return slices.Clone(a.elems[s:e])
}

// Splice removes count elements at start, inserts items in their place and
// returns the removed elements, now detached roots. A negative start counts
// from the end.
func (a *Array) Splice(start, count int, items ...any) ([]Node, error) {
	nodes := make([]Node, 0, len(items))
	for _, it := range items {
		n, err := Conjure(it)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	start = clampIndex(start, len(a.elems))
	count = max(0, min(count, len(a.elems)-start))

	removed := a.splice(start, count, nodes)
	touch(a)
	snaps := make([]any, len(nodes))
	for i, n := range nodes {
		snaps[i] = n.Snapshot()
	}
	a.log.record(a, Diff{Op: OpSplice, Index: start, Count: count, Items: snaps})
	return removed, nil
}

func (a *Array) splice(start, count int, nodes []Node) []Node {
	removed := slices.Clone(a.elems[start : start+count])
	for _, n := range removed {
		detach(n)
	}
	oldLen := len(a.elems)
	a.elems = slices.Replace(a.elems, start, start+count, nodes...)
	a.reindex(start)
	a.changed.AddRange(uint64(start), uint64(max(oldLen, len(a.elems))))
	return removed
}

// reindex re-keys elements from position `from` onwards.
func (a *Array) reindex(from int) {
	for i := from; i < len(a.elems); i++ {
		attach(a, a.elems[i], strconv.Itoa(i))
	}
}

// Sort orders the elements in place with cmp. A nil cmp compares the string
// renderings of the element snapshots.
func (a *Array) Sort(cmp func(x, y Node) int) {
	if cmp == nil {
		cmp = func(x, y Node) int {
			return strings.Compare(render(x), render(y))
		}
	}
	slices.SortStableFunc(a.elems, cmp)
	a.reindex(0)
	a.changed.AddRange(0, uint64(len(a.elems)))
	touch(a)
	a.log.record(a, Diff{Op: OpSort})
}

// Reverse reverses the elements in place.
func (a *Array) Reverse() {
	slices.Reverse(a.elems)
	a.reindex(0)
	a.changed.AddRange(0, uint64(len(a.elems)))
	touch(a)
	a.log.record(a, Diff{Op: OpReverse})
}

// ForEach calls fn for every element in order.
func (a *Array) ForEach(fn func(n Node, i int)) {
	for i, n := range slices.Clone(a.elems) {
		fn(n, i)
	}
}

// Map returns the results of fn for every element.
func (a *Array) Map(fn func(n Node, i int) any) []any {
	out := make([]any, 0, len(a.elems))
	for i, n := range slices.Clone(a.elems) {
		out = append(out, fn(n, i))
	}
	return out
}

// Filter returns the elements for which fn holds.
func (a *Array) Filter(fn func(n Node, i int) bool) []Node {
	out := []Node{}
	for i, n := range slices.Clone(a.elems) {
		if fn(n, i) {
			out = append(out, n)
		}
	}
	return out
}

// Every reports whether fn holds for all elements; true when empty.
func (a *Array) Every(fn func(n Node, i int) bool) bool {
	for i, n := range slices.Clone(a.elems) {
		if !fn(n, i) {
			return false
		}
	}
	return true
}

// Some reports whether fn holds for at least one element.
func (a *Array) Some(fn func(n Node, i int) bool) bool {
	return a.FindIndex(fn) >= 0
}

// Reduce folds the elements left to right starting from initial.
func (a *Array) Reduce(fn func(acc any, n Node, i int) any, initial any) any {
	acc := initial
	for i, n := range slices.Clone(a.elems) {
		acc = fn(acc, n, i)
	}
	return acc
}

// ReduceRight folds the elements right to left starting from initial.
func (a *Array) ReduceRight(fn func(acc any, n Node, i int) any, initial any) any {
	acc := initial
	elems := slices.Clone(a.elems)
	for i := len(elems) - 1; i >= 0; i-- {
		acc = fn(acc, elems[i], i)
	}
	return acc
}

// Find returns the first element for which fn holds.
func (a *Array) Find(fn func(n Node, i int) bool) (Node, bool) {
	for i, n := range slices.Clone(a.elems) {
		if fn(n, i) {
			return n, true
		}
	}
	return nil, false
}

// FindIndex returns the index of the first element for which fn holds, or -1.
func (a *Array) FindIndex(fn func(n Node, i int) bool) int {
	for i, n := range slices.Clone(a.elems) {
		if fn(n, i) {
			return i
		}
	}
	return -1
}

// IndexOf returns the index of the first leaf equal to value, or of the
// element that is value itself, or -1.
func (a *Array) IndexOf(value any) int {
	return a.FindIndex(func(n Node, _ int) bool {
		if vn, ok := value.(Node); ok {
			return vn == n
		}
		l, ok := n.(*Leaf)
		return ok && LeafEqual(l.value, value)
	})
}

// Join renders every element and joins them with sep. Nil leaves render
// as empty strings.
func (a *Array) Join(sep string) string {
	parts := make([]string, len(a.elems))
	for i, n := range a.elems {
		parts[i] = render(n)
	}
	return strings.Join(parts, sep)
}

func (a *Array) Snapshot() any {
	out := make([]any, len(a.elems))
	for i, n := range a.elems {
		out[i] = n.Snapshot()
	}
	return out
}

// ChangedIndexes returns the indexes written since the last MarkClean.
func (a *Array) ChangedIndexes() []uint32 { return a.changed.ToArray() }

// EnableDiff switches diff recording on or off for the whole tree.
func (a *Array) EnableDiff(enabled bool) { a.log.enabled = enabled }

// ReadDiff returns the pending diff entries under a and drops them.
func (a *Array) ReadDiff() []Diff { return a.log.drain(path(a)) }

// MarkClean clears the dirty flags of a and its whole subtree.
func (a *Array) MarkClean() { markClean(a) }

// LeafEqual compares two raw values without panicking on uncomparable types.
func LeafEqual(x, y any) bool {
	if x == nil || y == nil {
		return x == nil && y == nil
	}
	tx, ty := reflect.TypeOf(x), reflect.TypeOf(y)
	if tx != ty || !tx.Comparable() {
		return false
	}
	return x == y
}

func render(n Node) string {
	switch c := n.(type) {
	case *Leaf:
		if c.value == nil {
			return ""
		}
		return fmt.Sprint(c.value)
	case *Array:
		return c.Join(",")
	default:
		return oj.JSON(n.Snapshot(), &ojg.Options{Sort: true})
	}
}

func parseIndex(key string) (int, bool) {
	i, err := strconv.Atoi(key)
	if err != nil || i < 0 || strconv.Itoa(i) != key {
		return 0, false
	}
	return i, true
}

func clampIndex(i, n int) int {
	if i < 0 {
		i += n
	}
	return max(0, min(i, n))
}
