package view

import (
	"fmt"
	"io"

	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"
	"github.com/ohler55/ojg/pretty"
	"github.com/vk/tomeview/internal/tome"
)

// DefaultInspectDepth is the depth %+v renders with.
const DefaultInspectDepth = 1

const (
	objectPlaceholder = "[Object]"
	arrayPlaceholder  = "[Array]"
)

var (
	jsonOptions   = ojg.Options{Sort: true}
	prettyOptions = ojg.Options{Sort: true, Indent: 2}
)

func stringify(s tome.Snapshotter) string {
	return oj.JSON(s.Snapshot(), &jsonOptions)
}

// inspect renders s as "<label> -> <pretty JSON>". Compounds nested deeper
// than depth are replaced by placeholders; a negative depth renders
// everything.
func inspect(label string, s tome.Snapshotter, depth int) string {
	return label + " -> " + pretty.JSON(truncate(s.Snapshot(), 0, depth), &prettyOptions)
}

func truncate(v any, level, depth int) any {
	switch tv := v.(type) {
	case map[string]any:
		if depth >= 0 && level > depth {
			return objectPlaceholder
		}
		out := make(map[string]any, len(tv))
		for k, e := range tv {
			out[k] = truncate(e, level+1, depth)
		}
		return out
	case []any:
		if depth >= 0 && level > depth {
			return arrayPlaceholder
		}
		out := make([]any, len(tv))
		for i, e := range tv {
			out[i] = truncate(e, level+1, depth)
		}
		return out
	default:
		return v
	}
}

// format backs the fmt.Formatter implementations: %v and %s print the JSON
// form, %+v the inspect form.
func format(f fmt.State, verb rune, str func() string, insp func(int) string) {
	switch verb {
	case 'v':
		if f.Flag('+') {
			_, _ = io.WriteString(f, insp(DefaultInspectDepth))
			return
		}
		_, _ = io.WriteString(f, str())
	case 's':
		_, _ = io.WriteString(f, str())
	case 'q':
		_, _ = fmt.Fprintf(f, "%q", str())
	default:
		_, _ = fmt.Fprintf(f, "%%!%c(view=%s)", verb, str())
	}
}
