// Package view provides typed, read/write views over tracked trees.
//
// A View binds one compound tome node (an object or an array) to one topic
// type. Reading a field through a view converts whatever is stored there
// into something the caller can use directly:
//
//   - leaves come back as their raw Go value,
//   - objects and arrays come back as new views bound to the child's type,
//   - absent keys come back as nil.
//
// The child type of an object field is resolved in a fixed order: the
// Resolver's declared metadata for (container type, field), then the type
// last written to that field through the same view, then schema.Generic.
// Array elements always share the array's own bound type.
//
// The write-time type cache belongs to a single View value. Reading the same
// field again returns a fresh view with an empty cache, so a type that was
// only ever inferred from a write is forgotten at that point. Treat it as a
// convenience for the code that performed the write, never as schema.
//
// Views are cheap, hold no resources, and are not safe for concurrent use;
// neither is the tree underneath them.
package view
