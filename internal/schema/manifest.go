// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file decodes topic manifests: HCL files made of one or more `topic`
// blocks, each declaring fields with a type, an optional literal default
// and an optional `ref` naming the topic type nested values are bound to.

package schema

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/tomeview/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// manifestRootSchema is the top-level structure of a manifest file.
type manifestRootSchema struct {
	Topics []*hclTopic `hcl:"topic,block"`
}

// hclTopic is a single `topic` block, decoded in two passes.
type hclTopic struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

var topicBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "description"},
		{Name: "index"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "field", LabelNames: []string{"name"}},
	},
}

var fieldBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		// `type` is checked by hand for a clearer message.
		{Name: "type"},
		{Name: "description"},
		{Name: "default"},
		{Name: "ref"},
	},
}

// ParseManifestSource parses manifest source held in memory.
func ParseManifestSource(ctx context.Context, src []byte, filename string) ([]*Type, hcl.Diagnostics) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}
	return ParseManifest(ctx, file, filename)
}

// ParseManifest decodes every topic block of an already parsed HCL file.
func ParseManifest(ctx context.Context, file *hcl.File, filePath string) ([]*Type, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing topic manifest.", "file_path", filePath)

	var allDiags hcl.Diagnostics
	if file == nil {
		allDiags = append(allDiags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "HCL file is nil",
		})
		return nil, allDiags
	}

	root := &manifestRootSchema{}
	diags := gohcl.DecodeBody(file.Body, nil, root)
	allDiags = append(allDiags, diags...)
	if diags.HasErrors() {
		return nil, allDiags
	}

	types := make([]*Type, 0, len(root.Topics))
	for _, parsed := range root.Topics {
		content, contentDiags := parsed.Body.Content(topicBodySchema)
		allDiags = append(allDiags, contentDiags...)
		if contentDiags.HasErrors() {
			continue
		}

		t := NewType(parsed.Name)
		t.Source = filePath

		if attr, ok := content.Attributes["description"]; ok {
			allDiags = append(allDiags, gohcl.DecodeExpression(attr.Expr, nil, &t.Description)...)
		}
		if attr, ok := content.Attributes["index"]; ok {
			allDiags = append(allDiags, gohcl.DecodeExpression(attr.Expr, nil, &t.Index)...)
		}

		fields, fieldDiags := parseFields(content.Blocks)
		allDiags = append(allDiags, fieldDiags...)
		for _, f := range fields {
			t.Field(f)
		}

		logger.Debug("Parsed topic type.", "topic", t.Name, "fields", len(fields))
		types = append(types, t)
	}

	if allDiags.HasErrors() {
		return nil, allDiags
	}
	return types, allDiags
}

// parseFields decodes the `field` blocks of one topic, in declaration order.
func parseFields(blocks hcl.Blocks) ([]*Field, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	var fields []*Field
	seen := make(map[string]struct{})

	for _, block := range blocks.OfType("field") {
		name := block.Labels[0]
		if _, dup := seen[name]; dup {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate field definition",
				Detail:   fmt.Sprintf("A field named '%s' has already been defined.", name),
				Subject:  &block.DefRange,
			})
			continue
		}
		seen[name] = struct{}{}

		content, contentDiags := block.Body.Content(fieldBodySchema)
		diags = append(diags, contentDiags...)
		if contentDiags.HasErrors() {
			continue
		}

		typeAttr, ok := content.Attributes["type"]
		if !ok {
			missing := block.Body.MissingItemRange()
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Missing 'type' attribute",
				Detail:   "The 'type' attribute is required for all field blocks.",
				Subject:  &missing,
			})
			continue
		}

		ty, err := typeExprToCtyType(typeAttr.Expr)
		if err != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid field type",
				Detail:   err.Error(),
				Subject:  typeAttr.Expr.Range().Ptr(),
			})
			continue
		}

		f := &Field{Name: name, Type: ty}
		if attr, ok := content.Attributes["description"]; ok {
			diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &f.Description)...)
		}
		if attr, ok := content.Attributes["ref"]; ok {
			diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &f.Ref)...)
		}

		if attr, ok := content.Attributes["default"]; ok {
			// Defaults must be literals, hence the nil eval context.
			val, valDiags := attr.Expr.Value(nil)
			diags = append(diags, valDiags...)
			if valDiags.HasErrors() {
				continue
			}
			conformed, ok := conformDefault(val, ty)
			if !ok {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Invalid default value type",
					Detail:   fmt.Sprintf("The default value for '%s' is not compatible with its type, '%s'.", name, ty.FriendlyName()),
					Subject:  attr.Expr.Range().Ptr(),
				})
				continue
			}
			f.Default = &conformed
		}

		fields = append(fields, f)
	}

	return fields, diags
}

// conformDefault checks a literal default against the declared type.
// Primitives are converted; compound literals only need a matching shape
// because `object` and `list(object)` leave attribute types open.
func conformDefault(val cty.Value, ty cty.Type) (cty.Value, bool) {
	if val.IsNull() {
		return val, true
	}
	switch ShapeOf(ty) {
	case ShapeAny:
		return val, true
	case ShapeLeaf:
		converted, err := convert.Convert(val, ty)
		return converted, err == nil
	default:
		return val, ShapeOf(val.Type()) == ShapeOf(ty)
	}
}

// typeExprToCtyType converts a type expression such as `string`, `object`
// or `list(object)` into its cty.Type.
func typeExprToCtyType(expr hcl.Expression) (cty.Type, error) {
	switch v := expr.(type) {
	case *hclsyntax.FunctionCallExpr:
		if len(v.Args) != 1 {
			return cty.DynamicPseudoType, fmt.Errorf("type constructors (list, map, set) require exactly one argument, got %d", len(v.Args))
		}
		elem, err := typeExprToCtyType(v.Args[0])
		if err != nil {
			return cty.DynamicPseudoType, err
		}
		switch v.Name {
		case "list":
			return cty.List(elem), nil
		case "map":
			return cty.Map(elem), nil
		case "set":
			return cty.Set(elem), nil
		default:
			return cty.DynamicPseudoType, fmt.Errorf("unknown type constructor function %q", v.Name)
		}

	case *hclsyntax.ScopeTraversalExpr:
		if len(v.Traversal) != 1 {
			return cty.DynamicPseudoType, fmt.Errorf("invalid type keyword: traversal path is not a single identifier")
		}
		switch name := v.Traversal.RootName(); name {
		case "string":
			return cty.String, nil
		case "number":
			return cty.Number, nil
		case "bool":
			return cty.Bool, nil
		case "any":
			return cty.DynamicPseudoType, nil
		case "object":
			return cty.EmptyObject, nil
		case "list":
			return cty.List(cty.DynamicPseudoType), nil
		case "map":
			return cty.Map(cty.DynamicPseudoType), nil
		default:
			return cty.DynamicPseudoType, fmt.Errorf("unknown type keyword %q", name)
		}

	default:
		return cty.DynamicPseudoType, fmt.Errorf("unsupported expression for type definition: %T", v)
	}
}
