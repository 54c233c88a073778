package view

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/tomeview/internal/schema"
)

func (f fixture) inventory(t *testing.T, labels ...string) *Array {
	t.Helper()
	items := make([]any, len(labels))
	for i, l := range labels {
		items[i] = map[string]any{"label": l}
	}
	v := Wrap(mustConjure(t, items), f.item, f.reg)
	require.IsType(t, &Array{}, v)
	return v.(*Array)
}

func numbers(t *testing.T, values ...any) *Array {
	t.Helper()
	return Wrap(mustConjure(t, values), nil, nil).(*Array)
}

func labelOf(t *testing.T, v any) string {
	t.Helper()
	obj, ok := v.(*Object)
	require.True(t, ok, "expected *Object, got %T", v)
	s, _ := obj.Get("label").(string)
	return s
}

func TestArray_Get(t *testing.T) {
	f := newFixture(t)
	inv := f.inventory(t, "a", "b")

	assert.Equal(t, 2, inv.Get(LengthKey))
	assert.Equal(t, "b", labelOf(t, inv.Get("1")))
	assert.Nil(t, inv.Get("2"))
	assert.Nil(t, inv.Get("-1"))
	assert.Nil(t, inv.At(5))

	assert.Equal(t, []string{"0", "1"}, inv.Keys()[:2])
	assert.Equal(t, "Item", inv.Get("0").(View).TypeName())
}

func TestArray_ElementsShareContainerType(t *testing.T) {
	f := newFixture(t)
	inv := f.inventory(t, "a")
	_, err := inv.Push(dog{Name: "Rex"})
	require.NoError(t, err)

	for v := range inv.Values() {
		assert.Same(t, f.item, v.(View).Type())
	}
}

func TestArray_PopShift(t *testing.T) {
	f := newFixture(t)
	inv := f.inventory(t, "a", "b", "c")

	assert.Equal(t, "c", labelOf(t, inv.Pop()))
	assert.Equal(t, "a", labelOf(t, inv.Shift()))
	assert.Equal(t, 1, inv.Len())
	assert.Equal(t, "b", labelOf(t, inv.At(0)))

	inv.Pop()
	assert.Nil(t, inv.Pop())
	assert.Nil(t, inv.Shift())
	assert.Equal(t, 0, inv.Len())
}

func TestArray_PushThenPop(t *testing.T) {
	items := numbers(t, 1, 2, 3)

	n, err := items.Push(4)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	assert.Equal(t, 4, items.Pop())
	assert.Equal(t, 3, items.Len())
	assert.Equal(t, []any{1, 2, 3}, items.Snapshot())
}

func TestArray_SliceSplice(t *testing.T) {
	f := newFixture(t)
	inv := f.inventory(t, "a", "b", "c", "d")

	got := inv.Slice(1, -1)
	require.Len(t, got, 2)
	assert.Equal(t, "b", labelOf(t, got[0]))
	assert.Equal(t, "c", labelOf(t, got[1]))
	assert.Equal(t, 4, inv.Len(), "slice does not mutate")

	removed, err := inv.Splice(1, 2, map[string]any{"label": "x"})
	require.NoError(t, err)
	require.Len(t, removed, 2)
	assert.Equal(t, "b", labelOf(t, removed[0]))
	assert.Equal(t, "Item", removed[0].(View).TypeName())

	var labels []string
	for v := range inv.Values() {
		labels = append(labels, labelOf(t, v))
	}
	assert.Equal(t, []string{"a", "x", "d"}, labels)

	_, err = inv.Splice(0, 0, make(chan int))
	assert.Error(t, err)
	assert.Equal(t, 3, inv.Len())
}

func TestArray_MapIsNonMutating(t *testing.T) {
	items := numbers(t, 1, 2, 3)

	got := items.Map(func(v any, _ int) any { return v.(int) + 1 })
	assert.Equal(t, []any{2, 3, 4}, got)
	assert.Equal(t, []any{1, 2, 3}, items.Snapshot())
}

func TestArray_CallbacksSeeConvertedValues(t *testing.T) {
	f := newFixture(t)
	inv := f.inventory(t, "a", "b", "c")

	check := func(v any) {
		_, ok := v.(*Object)
		assert.True(t, ok, "callback got %T", v)
	}

	inv.ForEach(func(v any, i int) { check(v) })
	inv.Map(func(v any, _ int) any { check(v); return nil })
	inv.Every(func(v any, _ int) bool { check(v); return true })
	inv.Some(func(v any, _ int) bool { check(v); return false })
	inv.FindIndex(func(v any, _ int) bool { check(v); return false })
	inv.Reduce(func(acc, v any, _ int) any { check(v); return acc }, nil)
	inv.ReduceRight(func(acc, v any, _ int) any { check(v); return acc }, nil)
	inv.Sort(func(x, y any) int { check(x); check(y); return 0 })
	inv.Filter(func(v any, _ int) bool { check(v); return true })
	inv.Find(func(v any, _ int) bool { check(v); return false })
}

func TestArray_HigherOrder(t *testing.T) {
	f := newFixture(t)
	inv := f.inventory(t, "a", "bb", "ccc")

	long := inv.Filter(func(v any, _ int) bool { return len(labelOf(t, v)) > 1 })
	require.Len(t, long, 2)
	assert.Equal(t, "bb", labelOf(t, long[0]))

	found, ok := inv.Find(func(v any, _ int) bool { return labelOf(t, v) == "ccc" })
	require.True(t, ok)
	assert.Equal(t, "Item", found.(View).TypeName())

	_, ok = inv.Find(func(v any, _ int) bool { return false })
	assert.False(t, ok)

	assert.Equal(t, 1, inv.FindIndex(func(v any, _ int) bool { return labelOf(t, v) == "bb" }))
	assert.True(t, inv.Every(func(v any, _ int) bool { return labelOf(t, v) != "" }))
	assert.False(t, inv.Some(func(v any, _ int) bool { return labelOf(t, v) == "zz" }))

	joined := inv.Reduce(func(acc, v any, _ int) any { return acc.(string) + labelOf(t, v) }, "")
	assert.Equal(t, "abbccc", joined)
	joined = inv.ReduceRight(func(acc, v any, _ int) any { return acc.(string) + labelOf(t, v) }, "")
	assert.Equal(t, "cccbba", joined)

	var indexes []int
	inv.ForEach(func(_ any, i int) { indexes = append(indexes, i) })
	assert.Equal(t, []int{0, 1, 2}, indexes)
}

func TestArray_Sort(t *testing.T) {
	f := newFixture(t)
	inv := f.inventory(t, "b", "c", "a")

	inv.Sort(func(x, y any) int {
		return strings.Compare(labelOf(t, x), labelOf(t, y))
	})
	assert.Equal(t, "a", labelOf(t, inv.At(0)))
	assert.Equal(t, "c", labelOf(t, inv.At(2)))

	nums := numbers(t, 10, 9, 1).Sort(nil)
	assert.Equal(t, []any{1, 10, 9}, nums.Snapshot())

	assert.Equal(t, []any{9, 10, 1}, nums.Reverse().Snapshot())
}

func TestArray_Includes(t *testing.T) {
	f := newFixture(t)
	inv := f.inventory(t, "a", "b")
	first := inv.At(0)

	assert.True(t, inv.Includes(first))
	assert.True(t, inv.Includes(map[string]any{"label": "b"}))
	assert.False(t, inv.Includes(map[string]any{"label": "z"}))
	assert.False(t, inv.Includes("a"))

	other := f.inventory(t, "a").At(0)
	assert.False(t, inv.Includes(other), "views match by node, not content")

	nums := numbers(t, 1, "x", math.NaN(), nil)
	assert.True(t, nums.Includes(1))
	assert.True(t, nums.Includes("x"))
	assert.True(t, nums.Includes(math.NaN()))
	assert.True(t, nums.Includes(nil))
	assert.False(t, nums.Includes(2))
	assert.False(t, nums.Includes([]any{1}))
}

func TestArray_DirectOperations(t *testing.T) {
	f := newFixture(t)
	inv := f.inventory(t, "a", "b")

	assert.Equal(t, 1, inv.IndexOf(inv.At(1)))
	assert.Equal(t, -1, inv.IndexOf(f.inventory(t, "b").At(0)))

	nums := numbers(t, 1, 2)
	n, err := nums.Unshift(0)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "0-1-2", nums.Join("-"))
	assert.Equal(t, 2, nums.IndexOf(2))
	assert.Equal(t, -1, nums.IndexOf(7))
}

func TestArray_SetDelete(t *testing.T) {
	nums := numbers(t, 1, 2, 3)

	require.NoError(t, nums.Set("1", 20))
	assert.Equal(t, 20, nums.Get("1"))
	require.NoError(t, nums.Set("3", 4))
	assert.Equal(t, 4, nums.Len())
	assert.Error(t, nums.Set("9", 1))
	assert.Error(t, nums.Set("x", 1))

	require.NoError(t, nums.Delete("0"))
	assert.Equal(t, []any{20, 3, 4}, nums.Snapshot())
	assert.NoError(t, nums.Delete("99"))
}

func TestArray_Entries(t *testing.T) {
	nums := numbers(t, "a", []any{1}, map[string]any{})

	var idx []int
	var kinds []string
	for i, v := range nums.Entries() {
		idx = append(idx, i)
		switch tv := v.(type) {
		case View:
			kinds = append(kinds, tv.TypeName())
		default:
			kinds = append(kinds, "leaf")
		}
	}
	assert.Equal(t, []int{0, 1, 2}, idx)
	assert.Equal(t, []string{"leaf", "Array", schema.GenericName}, kinds)

	count := 0
	for range nums.Values() {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestArray_FindWhileCallbackShrinksArray(t *testing.T) {
	a := numbers(t, 1, 2, 3)

	got, ok := a.Find(func(v any, i int) bool {
		if i == 0 {
			a.Pop()
			a.Pop()
		}
		return i == 2
	})
	require.True(t, ok)
	assert.Equal(t, 3, got)
	assert.Equal(t, 1, a.Len())
}
