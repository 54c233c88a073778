package topic

import (
	"maps"
	"slices"

	"github.com/vk/tomeview/internal/schema"
)

// Reserved keys the bare instance answers from its attached metadata.
const (
	KeyTopic = "topic"
	KeyState = "state"
	KeyIndex = "index"
)

// Instance is the bare object behind a Topic. It starts out holding every
// declared field default; fields moved into the tree are removed from it.
type Instance struct {
	typ      *schema.Type
	topic    string
	state    *State
	identity Identity
	fields   map[string]any
}

func newInstance(t *schema.Type) (*Instance, error) {
	defaults, err := t.Defaults()
	if err != nil {
		return nil, err
	}
	return &Instance{typ: t, fields: defaults}, nil
}

// Get returns the value held for key. KeyTopic, KeyState and KeyIndex
// return the attached topic name, *State and Index.
func (in *Instance) Get(key string) any {
	switch key {
	case KeyTopic:
		return in.topic
	case KeyState:
		return in.state
	case KeyIndex:
		return in.identity.Index
	}
	return in.fields[key]
}

// Has reports whether the instance holds a field value for key.
func (in *Instance) Has(key string) bool {
	_, ok := in.fields[key]
	return ok
}

func (in *Instance) Set(key string, value any) {
	in.fields[key] = value
}

// Delete removes key. Absent keys are ignored.
func (in *Instance) Delete(key string) {
	delete(in.fields, key)
}

// Keys returns the held field names, sorted.
func (in *Instance) Keys() []string {
	return slices.Sorted(maps.Keys(in.fields))
}

// Fields returns a copy of the held field values.
func (in *Instance) Fields() map[string]any {
	return maps.Clone(in.fields)
}

func (in *Instance) Type() *schema.Type { return in.typ }

func (in *Instance) Topic() string { return in.topic }

func (in *Instance) State() *State { return in.state }

func (in *Instance) Identity() Identity { return in.identity }
