package component

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/flowkit/internal/data"
	"github.com/specialistvlad/flowkit/internal/flowctx"
)

// Kind enumerates the component families the host can execute.
type Kind int

const (
	// KindSource originates data from configuration or an external
	// collaborator. No input type; declares an output type and optionally
	// the context keys it injects.
	KindSource Kind = iota + 1
	// KindSink terminates a flow by handing data to an external
	// collaborator. Input type only.
	KindSink
	// KindOperation transforms data: input type and output type.
	KindOperation
	// KindProbe computes a plain value from data without mutating or
	// replacing it. Input type only.
	KindProbe
	// KindContextProcessor has no data input or output; it communicates
	// exclusively through context mutations for its declared keys.
	KindContextProcessor
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindSource:
		return "source"
	case KindSink:
		return "sink"
	case KindOperation:
		return "operation"
	case KindProbe:
		return "probe"
	case KindContextProcessor:
		return "context processor"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Contract is the declared capability set of a component. It is static
// metadata, fixed at definition time and independent of runtime
// parameters.
type Contract struct {
	Kind Kind

	// InputType is the data type the component accepts. Nil for sources
	// and context processors, which take no data input.
	InputType *cty.Type

	// OutputType is the data type the component produces. Nil for sinks,
	// probes, and context processors.
	OutputType *cty.Type

	// ContextKeys is the complete set of context keys the component may
	// write. For context processors the written set of any invocation
	// must be a subset of this declaration; for payload sources it is
	// advisory metadata consumed by static pipeline checkers.
	ContextKeys []string
}

// ContractViolationError reports data that does not honor a component's
// declared contract: an input or output of the wrong type, or a context
// write outside the declared key set.
type ContractViolationError struct {
	Component string
	Stage     string // "input", "output", or "context"
	Want      string
	Got       string
}

// Error implements the error interface.
func (e *ContractViolationError) Error() string {
	return fmt.Sprintf("component %q: %s contract violated: want %s, got %s",
		e.Component, e.Stage, e.Want, e.Got)
}

// Handler signatures, one per component family. Sources return the
// context mutations they inject alongside the produced datum; plain
// sources return none.
type (
	SourceFunc    func(ctx context.Context, p Params) (data.Datum, []flowctx.Mutation, error)
	SinkFunc      func(ctx context.Context, in data.Datum, p Params) error
	OperationFunc func(ctx context.Context, in data.Datum, p Params) (data.Datum, error)
	ProbeFunc     func(ctx context.Context, in data.Datum, p Params) (cty.Value, error)
	ProcessFunc   func(ctx context.Context, p Params) ([]flowctx.Mutation, error)
)

// Component pairs a contract with the single handler implementing it.
// Exactly one handler field must be set, matching Contract.Kind.
type Component struct {
	Name     string
	Contract Contract

	Source    SourceFunc
	Sink      SinkFunc
	Operation OperationFunc
	Probe     ProbeFunc
	Process   ProcessFunc
}

// Validate checks that the definition is internally coherent: the handler
// present matches the declared kind and the contract declares exactly the
// types that kind requires. The registry calls this once per definition;
// nothing is re-checked per invocation.
func (c *Component) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("component has no name")
	}
	set := 0
	for _, ok := range []bool{c.Source != nil, c.Sink != nil, c.Operation != nil, c.Probe != nil, c.Process != nil} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("component %q: exactly one handler must be set, found %d", c.Name, set)
	}

	switch c.Contract.Kind {
	case KindSource:
		if c.Source == nil {
			return fmt.Errorf("component %q: declared as source but no source handler set", c.Name)
		}
		if c.Contract.InputType != nil || c.Contract.OutputType == nil {
			return fmt.Errorf("component %q: a source declares an output type and no input type", c.Name)
		}
	case KindSink:
		if c.Sink == nil {
			return fmt.Errorf("component %q: declared as sink but no sink handler set", c.Name)
		}
		if c.Contract.InputType == nil || c.Contract.OutputType != nil {
			return fmt.Errorf("component %q: a sink declares an input type and no output type", c.Name)
		}
	case KindOperation:
		if c.Operation == nil {
			return fmt.Errorf("component %q: declared as operation but no operation handler set", c.Name)
		}
		if c.Contract.InputType == nil || c.Contract.OutputType == nil {
			return fmt.Errorf("component %q: an operation declares both input and output types", c.Name)
		}
	case KindProbe:
		if c.Probe == nil {
			return fmt.Errorf("component %q: declared as probe but no probe handler set", c.Name)
		}
		if c.Contract.InputType == nil || c.Contract.OutputType != nil {
			return fmt.Errorf("component %q: a probe declares an input type and no output type", c.Name)
		}
	case KindContextProcessor:
		if c.Process == nil {
			return fmt.Errorf("component %q: declared as context processor but no process handler set", c.Name)
		}
		if c.Contract.InputType != nil || c.Contract.OutputType != nil {
			return fmt.Errorf("component %q: a context processor declares no data types", c.Name)
		}
		if len(c.Contract.ContextKeys) == 0 {
			return fmt.Errorf("component %q: a context processor must declare its context keys", c.Name)
		}
	default:
		return fmt.Errorf("component %q: unknown kind %v", c.Name, c.Contract.Kind)
	}
	return nil
}

// Result is the outcome of one invocation. Only the fields relevant to
// the component's kind are set: Data for sources and operations, Value
// for probes, Mutations for context processors and payload sources.
type Result struct {
	Data      data.Datum
	Value     cty.Value
	Mutations []flowctx.Mutation
}

// Run is the validating entry point shared by every component family. It
// verifies the input against the declared input type, invokes the
// handler, verifies the produced data against the declared output type,
// and for context processors verifies the written key set against the
// declaration. Handler errors propagate unwrapped.
func (c *Component) Run(ctx context.Context, in data.Datum, p Params) (*Result, error) {
	if c.Contract.InputType != nil {
		if in == nil {
			return nil, &ContractViolationError{
				Component: c.Name, Stage: "input",
				Want: c.Contract.InputType.FriendlyName(), Got: "no data",
			}
		}
		if !in.Type().Equals(*c.Contract.InputType) {
			return nil, &ContractViolationError{
				Component: c.Name, Stage: "input",
				Want: c.Contract.InputType.FriendlyName(), Got: in.Type().FriendlyName(),
			}
		}
	}

	switch c.Contract.Kind {
	case KindSource:
		out, ms, err := c.Source(ctx, p)
		if err != nil {
			return nil, err
		}
		if err := c.checkOutput(out); err != nil {
			return nil, err
		}
		return &Result{Data: out, Mutations: ms}, nil
	case KindSink:
		if err := c.Sink(ctx, in, p); err != nil {
			return nil, err
		}
		return &Result{}, nil
	case KindOperation:
		out, err := c.Operation(ctx, in, p)
		if err != nil {
			return nil, err
		}
		if err := c.checkOutput(out); err != nil {
			return nil, err
		}
		return &Result{Data: out}, nil
	case KindProbe:
		v, err := c.Probe(ctx, in, p)
		if err != nil {
			return nil, err
		}
		return &Result{Value: v}, nil
	case KindContextProcessor:
		ms, err := c.Process(ctx, p)
		if err != nil {
			return nil, err
		}
		if err := c.checkKeys(ms); err != nil {
			return nil, err
		}
		return &Result{Mutations: ms}, nil
	default:
		return nil, fmt.Errorf("component %q: unknown kind %v", c.Name, c.Contract.Kind)
	}
}

func (c *Component) checkOutput(out data.Datum) error {
	if out == nil {
		return &ContractViolationError{
			Component: c.Name, Stage: "output",
			Want: c.Contract.OutputType.FriendlyName(), Got: "no data",
		}
	}
	if !out.Type().Equals(*c.Contract.OutputType) {
		return &ContractViolationError{
			Component: c.Name, Stage: "output",
			Want: c.Contract.OutputType.FriendlyName(), Got: out.Type().FriendlyName(),
		}
	}
	return nil
}

// checkKeys enforces the context-processor invariant: every written key
// is one the component declared.
func (c *Component) checkKeys(ms []flowctx.Mutation) error {
	declared := make(map[string]struct{}, len(c.Contract.ContextKeys))
	for _, k := range c.Contract.ContextKeys {
		declared[k] = struct{}{}
	}
	for _, m := range ms {
		if _, ok := declared[m.Key]; !ok {
			return &ContractViolationError{
				Component: c.Name, Stage: "context",
				Want: fmt.Sprintf("one of %v", c.Contract.ContextKeys), Got: m.Key,
			}
		}
	}
	return nil
}

// TypeOf is a convenience for building contract declarations from a
// literal cty type.
func TypeOf(ty cty.Type) *cty.Type { return &ty }
