// Package text_io provides the data entry and exit points for string
// pipelines: configured and file-backed sources, file sinks, and the
// payload variants that additionally carry context metadata.
//
// File components call into a Storage collaborator rather than the
// filesystem directly; I/O errors from the collaborator propagate to the
// pipeline driver unwrapped.
package text_io

import (
	"context"
	"fmt"
	"time"

	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/flowkit/internal/component"
	"github.com/specialistvlad/flowkit/internal/ctxlog"
	"github.com/specialistvlad/flowkit/internal/data"
	"github.com/specialistvlad/flowkit/internal/flowctx"
	"github.com/specialistvlad/flowkit/internal/fsutil"
	"github.com/specialistvlad/flowkit/internal/registry"
)

// SourceContextKey is the context key the payload source injects its
// metadata under unless overridden by the 'context_key' parameter.
const SourceContextKey = "text_io.source"

// Storage is the text persistence collaborator the file components call
// into.
type Storage interface {
	ReadText(path string) (string, error)
	WriteText(path string, content string) error
}

// Module implements the registry.Module interface for this package.
// Storage defaults to the local filesystem when left nil.
type Module struct {
	Storage Storage
}

func (m *Module) storage() Storage {
	if m.Storage != nil {
		return m.Storage
	}
	return fsutil.OS{}
}

// Register registers the sources and sinks with the host registry.
func (m *Module) Register(r *registry.Registry) error {
	for name, ctor := range map[string]registry.Constructor{
		"string.source":         m.NewSource,
		"string.file_source":    m.NewFileSource,
		"string.file_sink":      m.NewFileSink,
		"string.payload_source": m.NewPayloadSource,
		"string.payload_sink":   m.NewPayloadSink,
	} {
		if err := r.Register(name, ctor); err != nil {
			return err
		}
	}
	return nil
}

// requiredPath extracts the mandatory 'path' parameter.
func requiredPath(p component.Params) (string, error) {
	path, err := p.String("path", "")
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", fmt.Errorf("parameter %q is required", "path")
	}
	return path, nil
}

// NewSource builds the 'string.source' component, which originates a
// configured string value.
func (m *Module) NewSource() *component.Component {
	return &component.Component{
		Name: "string.source",
		Contract: component.Contract{
			Kind:       component.KindSource,
			OutputType: component.TypeOf(cty.String),
		},
		Source: func(ctx context.Context, p component.Params) (data.Datum, []flowctx.Mutation, error) {
			value, err := p.String("value", "Hello, World!")
			if err != nil {
				return nil, nil, err
			}
			return data.NewString(value), nil, nil
		},
	}
}

// NewFileSource builds the 'string.file_source' component, which reads
// UTF-8 text from the storage collaborator.
func (m *Module) NewFileSource() *component.Component {
	return &component.Component{
		Name: "string.file_source",
		Contract: component.Contract{
			Kind:       component.KindSource,
			OutputType: component.TypeOf(cty.String),
		},
		Source: func(ctx context.Context, p component.Params) (data.Datum, []flowctx.Mutation, error) {
			path, err := requiredPath(p)
			if err != nil {
				return nil, nil, err
			}
			content, err := m.storage().ReadText(path)
			if err != nil {
				return nil, nil, err
			}
			return data.NewString(content), nil, nil
		},
	}
}

// NewFileSink builds the 'string.file_sink' component, which hands its
// input to the storage collaborator.
func (m *Module) NewFileSink() *component.Component {
	return &component.Component{
		Name: "string.file_sink",
		Contract: component.Contract{
			Kind:      component.KindSink,
			InputType: component.TypeOf(cty.String),
		},
		Sink: func(ctx context.Context, in data.Datum, p component.Params) error {
			path, err := requiredPath(p)
			if err != nil {
				return err
			}
			v, ok := in.(data.Value)
			if !ok {
				return fmt.Errorf("expected a single value, got %T", in)
			}
			content, err := v.AsString()
			if err != nil {
				return err
			}
			return m.storage().WriteText(path, content)
		},
	}
}

// NewPayloadSource builds the 'string.payload_source' component. Besides
// the configured value it injects provenance metadata — source name,
// timestamp, content length — into the run's context.
func (m *Module) NewPayloadSource() *component.Component {
	return &component.Component{
		Name: "string.payload_source",
		Contract: component.Contract{
			Kind:        component.KindSource,
			OutputType:  component.TypeOf(cty.String),
			ContextKeys: []string{SourceContextKey},
		},
		Source: func(ctx context.Context, p component.Params) (data.Datum, []flowctx.Mutation, error) {
			value, err := p.String("value", "Payload Content")
			if err != nil {
				return nil, nil, err
			}
			key, err := p.String("context_key", SourceContextKey)
			if err != nil {
				return nil, nil, err
			}
			meta := cty.ObjectVal(map[string]cty.Value{
				"source":         cty.StringVal("string.payload_source"),
				"timestamp":      cty.StringVal(time.Now().UTC().Format(time.RFC3339)),
				"content_length": cty.NumberIntVal(int64(len(value))),
			})
			return data.NewString(value), []flowctx.Mutation{{Key: key, Value: meta}}, nil
		},
	}
}

// NewPayloadSink builds the 'string.payload_sink' component, the terminal
// hand-off for payload flows. It is stateless: the contract check is the
// validation, the handler just acknowledges receipt.
func (m *Module) NewPayloadSink() *component.Component {
	return &component.Component{
		Name: "string.payload_sink",
		Contract: component.Contract{
			Kind:      component.KindSink,
			InputType: component.TypeOf(cty.String),
		},
		Sink: func(ctx context.Context, in data.Datum, p component.Params) error {
			v, ok := in.(data.Value)
			if !ok {
				return fmt.Errorf("expected a single value, got %T", in)
			}
			s, err := v.AsString()
			if err != nil {
				return err
			}
			ctxlog.FromContext(ctx).Debug("Payload sink received data.", "content_length", len(s))
			return nil
		},
	}
}
