// Package string_probe provides read-only probes over string data. Probes
// compute plain values — a metrics object or a scalar — and never replace
// the data flowing past them.
package string_probe

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/flowkit/internal/component"
	"github.com/specialistvlad/flowkit/internal/data"
	"github.com/specialistvlad/flowkit/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the probes with the host registry.
func (m *Module) Register(r *registry.Registry) error {
	for name, ctor := range map[string]registry.Constructor{
		"string.analyze": NewAnalyze,
		"string.length":  NewLength,
	} {
		if err := r.Register(name, ctor); err != nil {
			return err
		}
	}
	return nil
}

func inputString(in data.Datum) (string, error) {
	v, ok := in.(data.Value)
	if !ok {
		return "", fmt.Errorf("expected a single value, got %T", in)
	}
	return v.AsString()
}

// NewAnalyze builds the 'string.analyze' probe, which reports detailed
// metrics about its input: length, word and character counts, per-class
// character counts, and content flags.
func NewAnalyze() *component.Component {
	return &component.Component{
		Name: "string.analyze",
		Contract: component.Contract{
			Kind:      component.KindProbe,
			InputType: component.TypeOf(cty.String),
		},
		Probe: func(ctx context.Context, in data.Datum, p component.Params) (cty.Value, error) {
			text, err := inputString(in)
			if err != nil {
				return cty.NilVal, err
			}
			return Analyze(text), nil
		},
	}
}

// NewLength builds the 'string.length' probe, which reports just the
// character count of its input.
func NewLength() *component.Component {
	return &component.Component{
		Name: "string.length",
		Contract: component.Contract{
			Kind:      component.KindProbe,
			InputType: component.TypeOf(cty.String),
		},
		Probe: func(ctx context.Context, in data.Datum, p component.Params) (cty.Value, error) {
			text, err := inputString(in)
			if err != nil {
				return cty.NilVal, err
			}
			return cty.NumberIntVal(int64(utf8.RuneCountInString(text))), nil
		},
	}
}

// Analyze computes the metrics object for text. Lengths and counts are in
// characters, not bytes.
func Analyze(text string) cty.Value {
	var upper, lower, digit, space int
	letters, digitsOnly := true, true
	for _, r := range text {
		switch {
		case unicode.IsUpper(r):
			upper++
		case unicode.IsLower(r):
			lower++
		}
		if unicode.IsDigit(r) {
			digit++
		} else {
			digitsOnly = false
		}
		if unicode.IsSpace(r) {
			space++
		}
		if !unicode.IsLetter(r) {
			letters = false
		}
	}
	n := utf8.RuneCountInString(text)
	return cty.ObjectVal(map[string]cty.Value{
		"value":            cty.StringVal(text),
		"length":           cty.NumberIntVal(int64(n)),
		"word_count":       cty.NumberIntVal(int64(len(strings.Fields(text)))),
		"character_count":  cty.NumberIntVal(int64(n)),
		"uppercase_count":  cty.NumberIntVal(int64(upper)),
		"lowercase_count":  cty.NumberIntVal(int64(lower)),
		"digit_count":      cty.NumberIntVal(int64(digit)),
		"whitespace_count": cty.NumberIntVal(int64(space)),
		"is_empty":         cty.BoolVal(n == 0),
		"is_numeric":       cty.BoolVal(n > 0 && digitsOnly),
		"is_alphabetic":    cty.BoolVal(n > 0 && letters),
		"has_uppercase":    cty.BoolVal(upper > 0),
		"has_lowercase":    cty.BoolVal(lower > 0),
	})
}
