// Package registry provides the process-wide lookup from a component's
// declared name to its constructor.
//
// The registry is populated once, at extension-load time, through
// explicit registration calls — there is no registration by import side
// effect. Registration is idempotent for identical re-registration, so
// independent load attempts of the same module set are harmless, and the
// registry is never mutated during pipeline execution: loading and
// execution are temporally disjoint phases. Teardown is process exit.
package registry
