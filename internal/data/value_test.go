package data

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestNewValue(t *testing.T) {
	t.Run("valid value round-trips", func(t *testing.T) {
		v, err := NewValue(cty.String, "test string")
		require.NoError(t, err)

		assert.True(t, v.Type().Equals(cty.String))
		s, err := v.AsString()
		require.NoError(t, err)
		assert.Equal(t, "test string", s)
	})

	t.Run("empty string is a valid string", func(t *testing.T) {
		v, err := NewValue(cty.String, "")
		require.NoError(t, err)
		s, err := v.AsString()
		require.NoError(t, err)
		assert.Equal(t, "", s)
	})

	t.Run("mismatched value never becomes an instance", func(t *testing.T) {
		_, err := NewValue(cty.Number, true)
		require.Error(t, err)

		var tm *TypeMismatchError
		require.True(t, errors.As(err, &tm), "error should classify as TypeMismatchError")
		assert.True(t, tm.Want.Equals(cty.Number))
		assert.Contains(t, err.Error(), "type mismatch")
	})

	t.Run("number value accepted for number type", func(t *testing.T) {
		v, err := NewValue(cty.Number, 42)
		require.NoError(t, err)
		assert.True(t, v.Type().Equals(cty.Number))
	})
}

func TestNewString(t *testing.T) {
	v := NewString("hello")
	assert.True(t, v.Type().Equals(cty.String))
	s, err := v.AsString()
	require.NoError(t, err)
	assert.Equal(t, "hello", s)
}

func TestValueAsString_WrongType(t *testing.T) {
	v, err := NewValue(cty.Number, 7)
	require.NoError(t, err)

	_, err = v.AsString()
	var tm *TypeMismatchError
	require.True(t, errors.As(err, &tm))
	assert.True(t, tm.Want.Equals(cty.String))
}

func TestCollection(t *testing.T) {
	t.Run("starts empty", func(t *testing.T) {
		c := NewCollection(cty.String)
		assert.Equal(t, 0, c.Len())
		assert.True(t, c.Type().Equals(cty.List(cty.String)))
		assert.True(t, c.Cty().RawEquals(cty.ListValEmpty(cty.String)))
	})

	t.Run("append preserves insertion order", func(t *testing.T) {
		c := NewCollection(cty.String)
		for _, s := range []string{"apple", "banana", "cherry"} {
			require.NoError(t, c.Append(NewString(s)))
		}

		require.Equal(t, 3, c.Len())
		items := c.Items()
		got := make([]string, 0, len(items))
		for _, item := range items {
			s, err := item.AsString()
			require.NoError(t, err)
			got = append(got, s)
		}
		assert.Equal(t, []string{"apple", "banana", "cherry"}, got)
	})

	t.Run("append rejects a mismatched element", func(t *testing.T) {
		c := NewCollection(cty.String)
		n, err := NewValue(cty.Number, 1)
		require.NoError(t, err)

		err = c.Append(n)
		var tm *TypeMismatchError
		require.True(t, errors.As(err, &tm))
		assert.True(t, tm.Want.Equals(cty.String))
		assert.Equal(t, 0, c.Len(), "failed append must not grow the collection")
	})

	t.Run("items returns a copy", func(t *testing.T) {
		c := NewCollection(cty.String)
		require.NoError(t, c.Append(NewString("a")))

		items := c.Items()
		items[0] = NewString("mutated")

		s, err := c.Items()[0].AsString()
		require.NoError(t, err)
		assert.Equal(t, "a", s)
	})
}
