package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/flowkit/internal/component"
	"github.com/specialistvlad/flowkit/internal/data"
)

func newEchoOp() *component.Component {
	return &component.Component{
		Name: "test.echo",
		Contract: component.Contract{
			Kind:       component.KindOperation,
			InputType:  component.TypeOf(cty.String),
			OutputType: component.TypeOf(cty.String),
		},
		Operation: func(ctx context.Context, in data.Datum, p component.Params) (data.Datum, error) {
			return in, nil
		},
	}
}

func newOtherOp() *component.Component {
	c := newEchoOp()
	return c
}

func TestRegister(t *testing.T) {
	t.Run("register and lookup", func(t *testing.T) {
		r := New()
		require.NoError(t, r.Register("test.echo", newEchoOp))

		ctor, err := r.Lookup("test.echo")
		require.NoError(t, err)
		assert.Equal(t, "test.echo", ctor().Name)
	})

	t.Run("identical re-registration is a no-op", func(t *testing.T) {
		r := New()
		require.NoError(t, r.Register("test.echo", newEchoOp))
		before := r.Names()

		require.NoError(t, r.Register("test.echo", newEchoOp))
		assert.Empty(t, cmp.Diff(before, r.Names()))
	})

	t.Run("different constructor under an existing name conflicts", func(t *testing.T) {
		r := New()
		require.NoError(t, r.Register("test.echo", newEchoOp))

		err := r.Register("test.echo", newOtherOp)
		assert.ErrorContains(t, err, "different constructor")
	})

	t.Run("nil constructor rejected", func(t *testing.T) {
		r := New()
		assert.Error(t, r.Register("test.nil", nil))
	})

	t.Run("name mismatch rejected", func(t *testing.T) {
		r := New()
		err := r.Register("test.alias", newEchoOp)
		assert.ErrorContains(t, err, "declares name")
	})

	t.Run("malformed definition rejected at registration", func(t *testing.T) {
		r := New()
		err := r.Register("test.broken", func() *component.Component {
			return &component.Component{
				Name:     "test.broken",
				Contract: component.Contract{Kind: component.KindOperation},
			}
		})
		assert.Error(t, err)
	})
}

func TestLookup_Unknown(t *testing.T) {
	r := New()

	_, err := r.Lookup("never.registered")
	var unknown *UnknownComponentError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "never.registered", unknown.Name)
}

func TestNames(t *testing.T) {
	r := New()
	require.NoError(t, r.Register("test.echo", newEchoOp))

	assert.Empty(t, cmp.Diff([]string{"test.echo"}, r.Names()))
}

// listModule registers a fixed set of components, standing in for an
// extension package.
type listModule struct {
	entries map[string]Constructor
}

func (m *listModule) Register(r *Registry) error {
	for name, ctor := range m.entries {
		if err := r.Register(name, ctor); err != nil {
			return err
		}
	}
	return nil
}

func TestRegisterModules(t *testing.T) {
	mod := &listModule{entries: map[string]Constructor{"test.echo": newEchoOp}}
	r := New()

	require.NoError(t, r.RegisterModules(mod))
	// Independent load attempts of the same module set must be harmless.
	require.NoError(t, r.RegisterModules(mod, mod))

	assert.Equal(t, []string{"test.echo"}, r.Names())
}
