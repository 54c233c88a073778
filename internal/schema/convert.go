// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package schema

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ToNative converts a cty.Value into the plain Go values the tree stores:
// string, float64, bool, []any, map[string]any and nil.
func ToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, fmt.Errorf("number out of range: %w", err)
		}
		return f, nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		out := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			native, err := ToNative(ev)
			if err != nil {
				return nil, err
			}
			out = append(out, native)
		}
		return out, nil

	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any)
		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			native, err := ToNative(ev)
			if err != nil {
				return nil, fmt.Errorf("in attribute '%s': %w", k.AsString(), err)
			}
			out[k.AsString()] = native
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unsupported cty type %s", ty.FriendlyName())
	}
}

// Shape classifies a cty type the way the tree does.
type Shape int

const (
	ShapeAny Shape = iota
	ShapeLeaf
	ShapeObject
	ShapeArray
)

// ShapeOf returns the tree shape values of ty take.
func ShapeOf(ty cty.Type) Shape {
	switch {
	case ty == cty.DynamicPseudoType || ty == cty.NilType:
		return ShapeAny
	case ty.IsObjectType() || ty.IsMapType():
		return ShapeObject
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		return ShapeArray
	default:
		return ShapeLeaf
	}
}
