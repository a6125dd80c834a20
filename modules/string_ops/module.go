// Package string_ops provides the string transformation operations:
// case conversion, concatenation, and collection join.
package string_ops

import (
	"context"
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/flowkit/internal/component"
	"github.com/specialistvlad/flowkit/internal/data"
	"github.com/specialistvlad/flowkit/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the operations with the host registry.
func (m *Module) Register(r *registry.Registry) error {
	for name, ctor := range map[string]registry.Constructor{
		"string.uppercase": NewUppercase,
		"string.lowercase": NewLowercase,
		"string.concat":    NewConcat,
		"string.join":      NewJoin,
	} {
		if err := r.Register(name, ctor); err != nil {
			return err
		}
	}
	return nil
}

// mapString lifts a pure string function into an element-wise operation
// handler. Output type is identical to input type and the handler is
// deterministic with no side effects.
func mapString(fn func(string) string) component.OperationFunc {
	return func(ctx context.Context, in data.Datum, p component.Params) (data.Datum, error) {
		v, ok := in.(data.Value)
		if !ok {
			return nil, fmt.Errorf("expected a single value, got %T", in)
		}
		s, err := v.AsString()
		if err != nil {
			return nil, err
		}
		return data.NewString(fn(s)), nil
	}
}

// NewUppercase builds the 'string.uppercase' operation.
func NewUppercase() *component.Component {
	return &component.Component{
		Name: "string.uppercase",
		Contract: component.Contract{
			Kind:       component.KindOperation,
			InputType:  component.TypeOf(cty.String),
			OutputType: component.TypeOf(cty.String),
		},
		Operation: mapString(strings.ToUpper),
	}
}

// NewLowercase builds the 'string.lowercase' operation.
func NewLowercase() *component.Component {
	return &component.Component{
		Name: "string.lowercase",
		Contract: component.Contract{
			Kind:       component.KindOperation,
			InputType:  component.TypeOf(cty.String),
			OutputType: component.TypeOf(cty.String),
		},
		Operation: mapString(strings.ToLower),
	}
}

// NewConcat builds the 'string.concat' operation, which appends the
// 'suffix' parameter to its input.
func NewConcat() *component.Component {
	return &component.Component{
		Name: "string.concat",
		Contract: component.Contract{
			Kind:       component.KindOperation,
			InputType:  component.TypeOf(cty.String),
			OutputType: component.TypeOf(cty.String),
		},
		Operation: func(ctx context.Context, in data.Datum, p component.Params) (data.Datum, error) {
			v, ok := in.(data.Value)
			if !ok {
				return nil, fmt.Errorf("expected a single value, got %T", in)
			}
			s, err := v.AsString()
			if err != nil {
				return nil, err
			}
			suffix, err := p.String("suffix", "")
			if err != nil {
				return nil, err
			}
			return data.NewString(s + suffix), nil
		},
	}
}

// NewJoin builds the 'string.join' operation: a collection reduction that
// folds a string collection in insertion order with the 'separator'
// parameter (default a single space). An empty collection reduces to the
// empty string.
func NewJoin() *component.Component {
	return &component.Component{
		Name: "string.join",
		Contract: component.Contract{
			Kind:       component.KindOperation,
			InputType:  component.TypeOf(cty.List(cty.String)),
			OutputType: component.TypeOf(cty.String),
		},
		Operation: func(ctx context.Context, in data.Datum, p component.Params) (data.Datum, error) {
			coll, ok := in.(*data.Collection)
			if !ok {
				return nil, fmt.Errorf("expected a collection, got %T", in)
			}
			sep, err := p.String("separator", " ")
			if err != nil {
				return nil, err
			}
			parts := make([]string, 0, coll.Len())
			for _, item := range coll.Items() {
				s, err := item.AsString()
				if err != nil {
					return nil, err
				}
				parts = append(parts, s)
			}
			return data.NewString(strings.Join(parts, sep)), nil
		},
	}
}
