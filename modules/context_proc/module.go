// Package context_proc provides the context processors: nodes with no
// data input or output that communicate exclusively through mutation
// batches for the context keys they declare up front.
package context_proc

import (
	"context"
	"fmt"
	"time"

	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/flowkit/internal/component"
	"github.com/specialistvlad/flowkit/internal/flowctx"
	"github.com/specialistvlad/flowkit/internal/registry"
)

// Context keys owned by this extension, prefixed per the key namespace
// convention.
const (
	EchoContextKey     = "context.echo"
	MetadataContextKey = "context.metadata"
)

// Version reported by the metadata processor.
const processorVersion = "1.0.0"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the context processors with the host registry.
func (m *Module) Register(r *registry.Registry) error {
	for name, ctor := range map[string]registry.Constructor{
		"context.echo":     NewEcho,
		"context.metadata": NewMetadata,
	} {
		if err := r.Register(name, ctor); err != nil {
			return err
		}
	}
	return nil
}

// NewEcho builds the 'context.echo' processor, which stores its 'message'
// parameter under the echo key. Minimal example of the mutation hand-off.
func NewEcho() *component.Component {
	return &component.Component{
		Name: "context.echo",
		Contract: component.Contract{
			Kind:        component.KindContextProcessor,
			ContextKeys: []string{EchoContextKey},
		},
		Process: func(ctx context.Context, p component.Params) ([]flowctx.Mutation, error) {
			message, err := p.String("message", "")
			if err != nil {
				return nil, err
			}
			if _, ok := p.Value("message"); !ok {
				return nil, fmt.Errorf("parameter %q is required", "message")
			}
			return []flowctx.Mutation{{
				Key: EchoContextKey,
				Value: cty.ObjectVal(map[string]cty.Value{
					"message": cty.StringVal(message),
				}),
			}}, nil
		},
	}
}

// NewMetadata builds the 'context.metadata' processor, which enriches the
// context with computational metadata. With every optional flag enabled
// the written key set equals the declared set.
func NewMetadata() *component.Component {
	return &component.Component{
		Name: "context.metadata",
		Contract: component.Contract{
			Kind:        component.KindContextProcessor,
			ContextKeys: []string{MetadataContextKey},
		},
		Process: func(ctx context.Context, p component.Params) ([]flowctx.Mutation, error) {
			includeTimestamp, err := p.Bool("include_timestamp", true)
			if err != nil {
				return nil, err
			}
			includeStats, err := p.Bool("include_stats", true)
			if err != nil {
				return nil, err
			}

			attrs := map[string]cty.Value{
				"processor": cty.ObjectVal(map[string]cty.Value{
					"name":    cty.StringVal("context.metadata"),
					"version": cty.StringVal(processorVersion),
				}),
			}
			if includeTimestamp {
				attrs["timestamp"] = cty.StringVal(time.Now().UTC().Format(time.RFC3339))
			}
			if includeStats {
				attrs["context_stats"] = cty.ObjectVal(map[string]cty.Value{
					"processor_active": cty.True,
				})
			}
			if custom, ok := p.Value("custom_metadata"); ok {
				attrs["custom"] = custom
			}

			return []flowctx.Mutation{{
				Key:   MetadataContextKey,
				Value: cty.ObjectVal(attrs),
			}}, nil
		},
	}
}
