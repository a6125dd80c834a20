package text_io

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/flowkit/internal/component"
	"github.com/specialistvlad/flowkit/internal/data"
	"github.com/specialistvlad/flowkit/internal/registry"
)

func pathParams(path string) component.Params {
	return component.Params{"path": cty.StringVal(path)}
}

func TestRegister(t *testing.T) {
	r := registry.New()
	m := &Module{}
	require.NoError(t, m.Register(r))
	// Repeated loads of the same module must be harmless.
	require.NoError(t, m.Register(r))
	assert.Len(t, r.Names(), 5)
}

func TestSource(t *testing.T) {
	m := &Module{}
	c := m.NewSource()
	require.NoError(t, c.Validate())

	t.Run("configured value", func(t *testing.T) {
		res, err := c.Run(context.Background(), nil, component.Params{"value": cty.StringVal("custom value")})
		require.NoError(t, err)
		s, err := res.Data.(data.Value).AsString()
		require.NoError(t, err)
		assert.Equal(t, "custom value", s)
		assert.Empty(t, res.Mutations, "a plain source injects no context")
	})

	t.Run("default value", func(t *testing.T) {
		res, err := c.Run(context.Background(), nil, nil)
		require.NoError(t, err)
		s, err := res.Data.(data.Value).AsString()
		require.NoError(t, err)
		assert.Equal(t, "Hello, World!", s)
	})
}

func TestFileRoundTrip(t *testing.T) {
	m := &Module{}
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "test.txt")
	content := "Test file content\nWith multiple lines"

	sink := m.NewFileSink()
	res, err := sink.Run(context.Background(), data.NewString(content), pathParams(path))
	require.NoError(t, err)
	assert.Nil(t, res.Data, "a sink produces no data")

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err, "sink must create parent directories")
	assert.Equal(t, content, string(onDisk))

	source := m.NewFileSource()
	res, err = source.Run(context.Background(), nil, pathParams(path))
	require.NoError(t, err)
	s, err := res.Data.(data.Value).AsString()
	require.NoError(t, err)
	assert.Equal(t, content, s)
}

func TestFileSource_Missing(t *testing.T) {
	m := &Module{}
	c := m.NewFileSource()

	_, err := c.Run(context.Background(), nil, pathParams(filepath.Join(t.TempDir(), "absent.txt")))
	assert.ErrorIs(t, err, fs.ErrNotExist, "collaborator I/O errors propagate unwrapped")
}

func TestFileComponents_RequirePath(t *testing.T) {
	m := &Module{}

	_, err := m.NewFileSource().Run(context.Background(), nil, nil)
	assert.ErrorContains(t, err, `parameter "path" is required`)

	_, err = m.NewFileSink().Run(context.Background(), data.NewString("x"), nil)
	assert.ErrorContains(t, err, `parameter "path" is required`)
}

func TestPayloadSource(t *testing.T) {
	m := &Module{}
	c := m.NewPayloadSource()
	require.NoError(t, c.Validate())

	t.Run("injects provenance metadata", func(t *testing.T) {
		res, err := c.Run(context.Background(), nil, component.Params{"value": cty.StringVal("payload test")})
		require.NoError(t, err)

		s, err := res.Data.(data.Value).AsString()
		require.NoError(t, err)
		assert.Equal(t, "payload test", s)

		require.Len(t, res.Mutations, 1)
		assert.Equal(t, SourceContextKey, res.Mutations[0].Key)
		meta := res.Mutations[0].Value
		assert.True(t, meta.GetAttr("source").RawEquals(cty.StringVal("string.payload_source")))
		assert.True(t, meta.GetAttr("content_length").RawEquals(cty.NumberIntVal(12)))
		assert.False(t, meta.GetAttr("timestamp").AsString() == "")
	})

	t.Run("context key override", func(t *testing.T) {
		res, err := c.Run(context.Background(), nil, component.Params{
			"value":       cty.StringVal("v"),
			"context_key": cty.StringVal("custom.key"),
		})
		require.NoError(t, err)
		require.Len(t, res.Mutations, 1)
		assert.Equal(t, "custom.key", res.Mutations[0].Key)
	})
}

func TestPayloadSink(t *testing.T) {
	m := &Module{}
	c := m.NewPayloadSink()
	require.NoError(t, c.Validate())

	_, err := c.Run(context.Background(), data.NewString("test content"), nil)
	assert.NoError(t, err)
}

// failingStorage forces collaborator errors for sink tests.
type failingStorage struct{ err error }

func (f failingStorage) ReadText(string) (string, error) { return "", f.err }
func (f failingStorage) WriteText(string, string) error  { return f.err }

func TestFileSink_WriteFailurePropagates(t *testing.T) {
	wantErr := os.ErrPermission
	m := &Module{Storage: failingStorage{err: wantErr}}

	_, err := m.NewFileSink().Run(context.Background(), data.NewString("x"), pathParams("/any"))
	assert.ErrorIs(t, err, wantErr)
}
