package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/specialistvlad/flowkit/internal/component"
	"github.com/specialistvlad/flowkit/internal/ctxlog"
	"github.com/specialistvlad/flowkit/internal/data"
	"github.com/specialistvlad/flowkit/internal/flowctx"
	"github.com/specialistvlad/flowkit/internal/registry"
)

// Step is one node slot in a pipeline definition: the component to run,
// its named parameters, and — for probes — the context key under which
// the probe's result is stored.
type Step struct {
	Component  string
	Name       string
	Params     component.Params
	ContextKey string
}

// Payload pairs the datum moving along a pipeline with the context of the
// run that owns it. The pipeline execution owns the payload; it does not
// outlive the run except as the run's return value.
type Payload struct {
	Data    data.Datum
	Context *flowctx.Context
}

type boundStep struct {
	spec Step
	comp *component.Component
}

func (b *boundStep) id(index int) string {
	if b.spec.Name != "" {
		return fmt.Sprintf("%s.%s", b.spec.Component, b.spec.Name)
	}
	return fmt.Sprintf("%s[%d]", b.spec.Component, index)
}

// Pipeline is a resolved, validated sequence of steps ready to run.
type Pipeline struct {
	steps []boundStep
}

// New resolves each step's component through the registry and validates
// step shape against the resolved contracts. All resolution errors
// surface here, before anything executes.
func New(ctx context.Context, reg *registry.Registry, steps []Step) (*Pipeline, error) {
	logger := ctxlog.FromContext(ctx)

	bound := make([]boundStep, 0, len(steps))
	keyOwners := make(map[string]string)
	for i, s := range steps {
		ctor, err := reg.Lookup(s.Component)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		comp := ctor()

		if s.ContextKey != "" && comp.Contract.Kind != component.KindProbe {
			return nil, fmt.Errorf("step %d (%s): context_key is only valid for probe steps", i, s.Component)
		}

		// Two steps claiming authorship of the same key is legal but
		// suspect, per the key namespace convention.
		for _, k := range claimedKeys(s, comp) {
			if owner, ok := keyOwners[k]; ok {
				logger.Warn("Context key claimed by more than one step.",
					"key", k, "first_owner", owner, "step", s.Component)
			}
			keyOwners[k] = s.Component
		}

		bound = append(bound, boundStep{spec: s, comp: comp})
	}

	return &Pipeline{steps: bound}, nil
}

// claimedKeys lists the context keys a step declares authorship of.
func claimedKeys(s Step, comp *component.Component) []string {
	if comp.Contract.Kind == component.KindProbe {
		if s.ContextKey != "" {
			return []string{s.ContextKey}
		}
		return nil
	}
	return comp.Contract.ContextKeys
}

// Len returns the number of steps.
func (p *Pipeline) Len() int { return len(p.steps) }

// Run executes the steps strictly in declaration order, threading the
// payload from node to node. Probe results land in the context under the
// step's context key; context mutations from a node are applied as one
// batch after the node succeeds. The first failure aborts the run.
func (p *Pipeline) Run(ctx context.Context, in data.Datum) (*Payload, error) {
	runID := uuid.NewString()
	logger := ctxlog.FromContext(ctx).With("run_id", runID)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Info("🚀 Starting pipeline run.", "steps", len(p.steps))

	payload := &Payload{Data: in, Context: flowctx.New()}
	for i := range p.steps {
		st := &p.steps[i]
		stepLogger := logger.With("step", st.id(i))
		stepLogger.Info("▶️ Starting step")

		res, err := st.comp.Run(ctx, payload.Data, st.spec.Params)
		if err != nil {
			stepLogger.Error("Step failed.", "error", err)
			return nil, fmt.Errorf("step %s: %w", st.id(i), err)
		}

		if res.Data != nil {
			payload.Data = res.Data
		}
		if len(res.Mutations) > 0 {
			payload.Context.Apply(res.Mutations)
		}
		if st.comp.Contract.Kind == component.KindProbe {
			if st.spec.ContextKey != "" {
				payload.Context.Apply([]flowctx.Mutation{{Key: st.spec.ContextKey, Value: res.Value}})
			} else {
				stepLogger.Debug("Probe result discarded: no context_key configured.")
			}
		}

		stepLogger.Info("✅ Finished step")
	}

	logger.Info("🏁 Pipeline run finished.", "context_keys", payload.Context.Keys())
	return payload, nil
}
