package component

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Params are the named parameters bound to one invocation. Values arrive
// as cty values straight from the configuration loader; the typed getters
// coerce them and fall back to the component's documented defaults when a
// parameter is absent.
type Params map[string]cty.Value

// String returns the named parameter as a string, or def when unset.
func (p Params) String(name, def string) (string, error) {
	v, ok := p[name]
	if !ok || v.IsNull() {
		return def, nil
	}
	conv, err := convert.Convert(v, cty.String)
	if err != nil {
		return "", fmt.Errorf("parameter %q: %w", name, err)
	}
	return conv.AsString(), nil
}

// Bool returns the named parameter as a bool, or def when unset.
func (p Params) Bool(name string, def bool) (bool, error) {
	v, ok := p[name]
	if !ok || v.IsNull() {
		return def, nil
	}
	conv, err := convert.Convert(v, cty.Bool)
	if err != nil {
		return false, fmt.Errorf("parameter %q: %w", name, err)
	}
	return conv.True(), nil
}

// Value returns the raw cty value of the named parameter, if set.
func (p Params) Value(name string) (cty.Value, bool) {
	v, ok := p[name]
	if !ok || v.IsNull() {
		return cty.NilVal, false
	}
	return v, true
}
