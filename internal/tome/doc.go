// Package tome implements the tracked tree that topic views are layered on.
//
// # Node Kinds
//
// A tree is made of three node kinds, discriminated by Kind:
//
//   - Leaf: holds one raw Go value (string, bool, number, nil, ...).
//   - Object: an insertion-ordered set of string keys mapping to child nodes.
//   - Array: an ordered sequence of child nodes, keyed by decimal index.
//
// Every non-root node has exactly one parent and a key identifying its
// position in that parent. Values are never shared between trees: writing a
// node (or anything exposing Snapshot) into a container copies its snapshot.
//
// # Bookkeeping
//
// The engine owns all change-tracking state:
//
//   - Dirty: set on the mutated container and every ancestor; cleared by MarkClean.
//   - Version: incremented on the mutated container and every ancestor.
//   - Diff: when diffing is enabled on a tree, each mutation is appended to a
//     log shared by all nodes of that tree. Diff returns the entries under a
//     node, ReadDiff returns and drops them.
//
// Arrays additionally remember which indexes changed since the last
// MarkClean in a roaring bitmap (ChangedIndexes).
//
// # Concurrency
//
// A tree has a single logical owner. Nothing in this package locks; callers
// that share a tree between goroutines must serialize access themselves.
package tome
