package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/tomeview/internal/ctxlog"
	"github.com/vk/tomeview/internal/schema"
)

// Validate checks that every type reference in the registry resolves and
// that index fields are declared.
func (r *Registry) Validate(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, t := range r.Types() {
		for _, f := range t.Fields() {
			if f.Ref != "" {
				if _, ok := r.types[f.Ref]; !ok {
					errs = append(errs, fmt.Sprintf("topic '%s', field '%s': ref names unknown topic type '%s'", t.Name, f.Name, f.Ref))
				}
				if schema.ShapeOf(f.Type) == schema.ShapeLeaf {
					errs = append(errs, fmt.Sprintf("topic '%s', field '%s': ref requires a compound type, got '%s'", t.Name, f.Name, f.Type.FriendlyName()))
				}
			}
			if schema.ShapeOf(f.Type) == schema.ShapeAny {
				logger.Warn("Topic has field with 'type = any', which disables default type checking. Consider using a specific type.", "topic", t.Name, "field", f.Name)
			}
		}

		for _, idx := range t.Index {
			f, ok := t.Lookup(idx)
			if !ok {
				errs = append(errs, fmt.Sprintf("topic '%s': index field '%s' is not declared", t.Name, idx))
				continue
			}
			if schema.ShapeOf(f.Type) != schema.ShapeLeaf && schema.ShapeOf(f.Type) != schema.ShapeAny {
				errs = append(errs, fmt.Sprintf("topic '%s': index field '%s' must be a primitive, got '%s'", t.Name, idx, f.Type.FriendlyName()))
			}
		}
	}

	for goType, name := range r.goTypes {
		if _, ok := r.types[name]; !ok {
			errs = append(errs, fmt.Sprintf("Go type '%s' is bound to unknown topic type '%s'", goType, name))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Registry validated.", "topic_types", len(r.types), "go_types", len(r.goTypes))
	return nil
}
