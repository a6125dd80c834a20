// Package flowfile loads pipeline definitions from .hcl files.
//
// A flow file is a flat sequence of step blocks:
//
//	step "string.uppercase" "shout" {}
//
//	step "string.analyze" "inspect" {
//	  context_key = "text.metrics"
//	  arguments {}
//	}
//
// Arguments are literal attributes decoded into the step's parameter map.
// Component names are resolved later, against the registry, when the
// pipeline is assembled.
package flowfile

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/flowkit/internal/component"
	"github.com/specialistvlad/flowkit/internal/ctxlog"
	"github.com/specialistvlad/flowkit/internal/fsutil"
	"github.com/specialistvlad/flowkit/internal/pipeline"
)

// stepArgs represents the content of the 'arguments' block within a step.
type stepArgs struct {
	Body hcl.Body `hcl:",remain"`
}

// stepBlock represents a `step` block from a user's flow file.
type stepBlock struct {
	Component  string    `hcl:"component,label"`
	Name       string    `hcl:"instance_name,label"`
	ContextKey string    `hcl:"context_key,optional"`
	Arguments  *stepArgs `hcl:"arguments,block"`
}

// flowConfig represents the top-level structure of a flow file.
type flowConfig struct {
	Steps []*stepBlock `hcl:"step,block"`
	Body  hcl.Body     `hcl:",remain"`
}

// Load reads the flow definition at path — a single .hcl file or a
// directory of them — and returns the pipeline steps in file order, then
// declaration order.
func Load(ctx context.Context, path string) ([]pipeline.Step, error) {
	logger := ctxlog.FromContext(ctx)

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	var filePaths []string
	if info.IsDir() {
		filePaths, err = fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			logger.Error("Failed to walk flow directory", "path", path, "error", err)
			return nil, err
		}
		if len(filePaths) == 0 {
			logger.Warn("No .hcl flow files found in path", "path", path)
			return nil, nil
		}
	} else {
		filePaths = []string{path}
	}
	logger.Debug("Found flow files to load.", "files", filePaths)

	parser := hclparse.NewParser()

	var steps []pipeline.Step
	for _, filePath := range filePaths {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse flow file %s: %w", filePath, diags)
		}

		var cfg flowConfig
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &cfg); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode flow file %s: %w", filePath, diags)
		}

		for _, blk := range cfg.Steps {
			params, err := decodeArguments(blk.Arguments)
			if err != nil {
				return nil, fmt.Errorf("step %q %q in %s: %w", blk.Component, blk.Name, filePath, err)
			}
			steps = append(steps, pipeline.Step{
				Component:  blk.Component,
				Name:       blk.Name,
				Params:     params,
				ContextKey: blk.ContextKey,
			})
		}
		logger.Debug("Loaded steps from flow file.", "file", filePath, "steps", len(cfg.Steps))
	}

	logger.Info("Flow definition loaded.", "steps", len(steps))
	return steps, nil
}

// decodeArguments evaluates the literal attributes of an arguments block
// into a parameter map. Expressions are evaluated without variables:
// arguments carry values, not references.
func decodeArguments(args *stepArgs) (component.Params, error) {
	if args == nil {
		return nil, nil
	}
	attrs, diags := args.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid arguments block: %w", diags)
	}
	params := make(component.Params, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("argument %q: %w", name, diags)
		}
		if val == cty.NilVal {
			continue
		}
		params[name] = val
	}
	return params, nil
}
