package topic

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"

	"github.com/vk/tomeview/internal/ctxlog"
	"github.com/vk/tomeview/internal/schema"
)

// ErrInvalidIndex is returned when an index does not match the fields the
// topic type declares as its index.
var ErrInvalidIndex = errors.New("invalid topic index")

// Index holds the values identifying one topic instance, keyed by field name.
type Index map[string]string

// String renders the index as sorted, URL-escaped key=value pairs.
func (idx Index) String() string {
	keys := slices.Sorted(maps.Keys(idx))
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = url.QueryEscape(k) + "=" + url.QueryEscape(idx[k])
	}
	return strings.Join(parts, "&")
}

// Identity is a resolved index.
type Identity struct {
	Topic string
	Index Index
	// Key is stable for a given (topic, index) pair.
	Key string
}

// IsZero reports whether the identity was never resolved.
func (id Identity) IsZero() bool {
	return id.Topic == "" && id.Key == "" && len(id.Index) == 0
}

// IndexResolver turns a supplied index into an Identity. It may block and
// must honour ctx.
type IndexResolver interface {
	Resolve(ctx context.Context, t *schema.Type, index Index) (Identity, error)
}

// IndexResolverFunc adapts a function to IndexResolver.
type IndexResolverFunc func(ctx context.Context, t *schema.Type, index Index) (Identity, error)

func (f IndexResolverFunc) Resolve(ctx context.Context, t *schema.Type, index Index) (Identity, error) {
	return f(ctx, t, index)
}

// DeclaredResolver resolves an index by checking it against the type's
// declared index fields. Its keys are "<topic>/<index>".
type DeclaredResolver struct{}

func (DeclaredResolver) Resolve(ctx context.Context, t *schema.Type, index Index) (Identity, error) {
	if err := ctx.Err(); err != nil {
		return Identity{}, err
	}
	if err := CheckIndex(t, index); err != nil {
		return Identity{}, err
	}
	idx := maps.Clone(index)
	if idx == nil {
		idx = Index{}
	}
	id := Identity{Topic: t.Name, Index: idx, Key: t.Name + "/" + idx.String()}
	ctxlog.FromContext(ctx).Debug("Resolved topic index.", "topic", t.Name, "key", id.Key)
	return id, nil
}

// CheckIndex verifies that index sets exactly the declared index fields of
// t, each to a non-empty value.
func CheckIndex(t *schema.Type, index Index) error {
	var problems []string
	for _, name := range t.Index {
		if v, ok := index[name]; !ok || v == "" {
			problems = append(problems, fmt.Sprintf("missing value for '%s'", name))
		}
	}
	for _, k := range slices.Sorted(maps.Keys(index)) {
		if !slices.Contains(t.Index, k) {
			problems = append(problems, fmt.Sprintf("'%s' is not an index field", k))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w for topic '%s': %s", ErrInvalidIndex, t.Name, strings.Join(problems, "; "))
	}
	return nil
}
