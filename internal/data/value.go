package data

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Datum is the shape shared by a single Value and a Collection: anything
// that can report the cty type it is guaranteed to conform to.
type Datum interface {
	Type() cty.Type
}

// TypeMismatchError reports a value that failed its declared type
// invariant, either at construction or on insertion into a collection.
type TypeMismatchError struct {
	Want cty.Type
	Got  string
	Err  error
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: want %s, got %s", e.Want.FriendlyName(), e.Got)
}

// Unwrap exposes the underlying conversion error, if any.
func (e *TypeMismatchError) Unwrap() error { return e.Err }

// Value holds one value validated against its declared type. Validation
// runs at construction; a candidate that fails never becomes an instance.
// Values are immutable: new values replace old ones, nothing mutates in
// place.
type Value struct {
	ty  cty.Type
	val cty.Value
}

// NewValue converts raw into a Value of the declared type ty. A raw value
// that cannot be represented as ty fails with a TypeMismatchError.
func NewValue(ty cty.Type, raw any) (Value, error) {
	v, err := gocty.ToCtyValue(raw, ty)
	if err != nil {
		return Value{}, &TypeMismatchError{
			Want: ty,
			Got:  fmt.Sprintf("%T (%v)", raw, raw),
			Err:  err,
		}
	}
	return Value{ty: ty, val: v}, nil
}

// NewString wraps s as a string-typed Value. A Go string always satisfies
// the string invariant, so construction cannot fail.
func NewString(s string) Value {
	return Value{ty: cty.String, val: cty.StringVal(s)}
}

// Type reports the declared type of the value.
func (v Value) Type() cty.Type { return v.ty }

// Cty returns the underlying cty representation.
func (v Value) Cty() cty.Value { return v.val }

// AsString unwraps a string-typed value.
func (v Value) AsString() (string, error) {
	if !v.ty.Equals(cty.String) {
		return "", &TypeMismatchError{Want: cty.String, Got: v.ty.FriendlyName()}
	}
	return v.val.AsString(), nil
}
