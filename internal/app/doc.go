// Package app wires the host together: logger, registry, core modules,
// flow loading, and the pipeline run. It owns no domain logic of its own.
package app
