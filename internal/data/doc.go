// Package data provides the typed values that move along a pipeline.
//
// Every piece of pipeline data is either a Value (one value validated
// against a declared cty type at construction) or a Collection (an
// ordered, homogeneous sequence of Values validated per element on
// append). Components declare the types they accept and produce in terms
// of this package, which lets the host check contracts without knowing
// anything about a component's domain.
package data
