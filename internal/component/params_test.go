package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestParams(t *testing.T) {
	p := Params{
		"separator": cty.StringVal(","),
		"count":     cty.NumberIntVal(3),
		"enabled":   cty.False,
		"empty":     cty.NullVal(cty.String),
	}

	t.Run("string present", func(t *testing.T) {
		s, err := p.String("separator", " ")
		require.NoError(t, err)
		assert.Equal(t, ",", s)
	})

	t.Run("string default when absent", func(t *testing.T) {
		s, err := p.String("missing", " ")
		require.NoError(t, err)
		assert.Equal(t, " ", s)
	})

	t.Run("null counts as absent", func(t *testing.T) {
		s, err := p.String("empty", "fallback")
		require.NoError(t, err)
		assert.Equal(t, "fallback", s)
	})

	t.Run("number coerces to string", func(t *testing.T) {
		s, err := p.String("count", "")
		require.NoError(t, err)
		assert.Equal(t, "3", s)
	})

	t.Run("bool present", func(t *testing.T) {
		b, err := p.Bool("enabled", true)
		require.NoError(t, err)
		assert.False(t, b)
	})

	t.Run("bool default when absent", func(t *testing.T) {
		b, err := p.Bool("missing", true)
		require.NoError(t, err)
		assert.True(t, b)
	})

	t.Run("bool rejects unconvertible value", func(t *testing.T) {
		_, err := p.Bool("separator", false)
		assert.ErrorContains(t, err, `parameter "separator"`)
	})

	t.Run("raw value lookup", func(t *testing.T) {
		v, ok := p.Value("count")
		require.True(t, ok)
		assert.True(t, v.RawEquals(cty.NumberIntVal(3)))

		_, ok = p.Value("missing")
		assert.False(t, ok)
		_, ok = p.Value("empty")
		assert.False(t, ok, "null values count as unset")
	})
}
