package data

import "github.com/zclconf/go-cty/cty"

// Collection is an ordered, homogeneous sequence of Values. The element
// type is fixed at construction and enforced on every Append; iteration
// order is insertion order. A collection is created empty, grown by
// append, and discarded with its owner — it is never shared for mutation
// across nodes.
type Collection struct {
	elem  cty.Type
	items []Value
}

// NewCollection returns an empty collection whose elements must conform
// to elem.
func NewCollection(elem cty.Type) *Collection {
	return &Collection{elem: elem}
}

// Type reports the collection as a list of its element type.
func (c *Collection) Type() cty.Type { return cty.List(c.elem) }

// ElementType reports the declared per-element type.
func (c *Collection) ElementType() cty.Type { return c.elem }

// Append validates item against the element type before storing it. Only
// the element contract is checked here; the rest of the collection is
// already known to conform.
func (c *Collection) Append(item Value) error {
	if !item.Type().Equals(c.elem) {
		return &TypeMismatchError{Want: c.elem, Got: item.Type().FriendlyName()}
	}
	c.items = append(c.items, item)
	return nil
}

// Cty returns the collection as a cty list value.
func (c *Collection) Cty() cty.Value {
	if len(c.items) == 0 {
		return cty.ListValEmpty(c.elem)
	}
	vals := make([]cty.Value, len(c.items))
	for i, item := range c.items {
		vals[i] = item.Cty()
	}
	return cty.ListVal(vals)
}

// Len returns the number of stored elements.
func (c *Collection) Len() int { return len(c.items) }

// Items returns the elements in insertion order. The slice is a copy; the
// backing sequence stays private to the collection.
func (c *Collection) Items() []Value {
	out := make([]Value, len(c.items))
	copy(out, c.items)
	return out
}
