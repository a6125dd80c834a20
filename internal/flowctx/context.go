// Package flowctx provides the string-keyed side-channel store threaded
// through a single pipeline run.
//
// Any node may read the context, but writes only happen through Mutation
// batches the pipeline driver applies after a node returns successfully.
// Nodes never hold a writable reference to the store, so key authorship
// stays visible in the node declarations rather than buried in call sites.
package flowctx

import (
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// Mutation is a single pending context write: one key and the value it
// should hold.
type Mutation struct {
	Key   string
	Value cty.Value
}

// Context is created once per pipeline execution and flows by reference
// through all nodes in sequence. It is not safe for concurrent use; the
// driver guarantees exactly one node triggers mutation at any instant.
type Context struct {
	values map[string]cty.Value
}

// New returns an empty context.
func New() *Context {
	return &Context{values: make(map[string]cty.Value)}
}

// Value returns the entry stored under key, if present.
func (c *Context) Value(key string) (cty.Value, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Keys returns the stored keys in sorted order.
func (c *Context) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of stored entries.
func (c *Context) Len() int { return len(c.values) }

// Apply commits a mutation batch. A batch lands as a whole; the driver
// never applies a prefix of a failed invocation.
func (c *Context) Apply(ms []Mutation) {
	for _, m := range ms {
		c.values[m.Key] = m.Value
	}
}
