package tome

import "slices"

// Op names the kind of mutation a Diff entry records.
type Op string

const (
	OpSet     Op = "set"
	OpDelete  Op = "del"
	OpSplice  Op = "splice"
	OpSort    Op = "sort"
	OpReverse Op = "reverse"
)

// Diff is one recorded mutation. Path addresses the mutated container.
type Diff struct {
	Op   Op
	Path []string
	// Key is the written or deleted key for OpSet and OpDelete.
	Key string
	// Value is the snapshot written by OpSet.
	Value any
	// Index, Count and Items describe an OpSplice.
	Index int
	Count int
	Items []any
}

// diffLog is shared by every node of one tree.
type diffLog struct {
	enabled bool
	entries []Diff
}

func (l *diffLog) record(container Node, d Diff) {
	if !l.enabled {
		return
	}
	d.Path = path(container)
	l.entries = append(l.entries, d)
}

// under returns copies of the entries recorded at or below prefix, with the
// prefix stripped from their paths.
func (l *diffLog) under(prefix []string) []Diff {
	var out []Diff
	for _, d := range l.entries {
		if !hasPrefix(d.Path, prefix) {
			continue
		}
		d.Path = slices.Clone(d.Path[len(prefix):])
		out = append(out, d)
	}
	return out
}

func (l *diffLog) drain(prefix []string) []Diff {
	out := l.under(prefix)
	l.entries = slices.DeleteFunc(l.entries, func(d Diff) bool {
		return hasPrefix(d.Path, prefix)
	})
	return out
}

func hasPrefix(p, prefix []string) bool {
	return len(p) >= len(prefix) && slices.Equal(p[:len(prefix)], prefix)
}
