// Package topic builds live topic instances: a tracked tree wrapped in a
// root view bound to a declared topic type.
//
// Construction runs in a fixed order. The input data becomes the tree (an
// existing *tome.Object is adopted as-is, anything else is conjured into a
// new tree). When no data is given at all, every declared field default is
// moved from a fresh bare Instance into the tree. The topic name and
// execution State are attached, and finally the index is resolved through an
// IndexResolver. Resolution is the only step that may block; if it fails or
// the context is cancelled, Create returns the error and no Topic.
//
// Reads on a Topic prefer the tree. Keys the tree does not hold fall back to
// the bare Instance, which also answers "topic", "state" and "index".
package topic
