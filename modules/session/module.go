// Package session contributes the built-in "Session" topic type: one record
// per client session, with the Go struct Session bound to it so sessions
// written into other topics keep their type.
package session

import (
	"github.com/vk/tomeview/internal/registry"
	"github.com/vk/tomeview/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

// TypeName is the topic type this module registers.
const TypeName = "Session"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Session is the Go form of a Session topic.
type Session struct {
	SessionID string   `json:"sessionId"`
	Actor     string   `json:"actor"`
	Language  string   `json:"language"`
	Tags      []string `json:"tags"`
}

func ptr(v cty.Value) *cty.Value { return &v }

// Type returns a fresh declaration of the Session topic type.
func Type() *schema.Type {
	t := schema.NewType(TypeName).
		Field(&schema.Field{Name: "sessionId", Type: cty.String, Description: "Opaque session identifier."}).
		Field(&schema.Field{Name: "actor", Type: cty.String, Default: ptr(cty.StringVal("anonymous"))}).
		Field(&schema.Field{Name: "language", Type: cty.String, Default: ptr(cty.StringVal("en"))}).
		Field(&schema.Field{Name: "tags", Type: cty.List(cty.String), Default: ptr(cty.ListValEmpty(cty.String))})
	t.Description = "A client session."
	t.Index = []string{"sessionId"}
	t.Source = "modules/session"
	return t
}

// Register registers the Session type and its Go binding.
func (m *Module) Register(r *registry.Registry) error {
	r.RegisterGoType(Session{}, TypeName)
	return r.Register(Type())
}
