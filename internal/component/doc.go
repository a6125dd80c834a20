// Package component defines the contract every pipeline node implements.
//
// A component declares its capability set up front — which family it
// belongs to, the data type it accepts, the data type it produces, and
// the context keys it may write — as an explicit Contract struct rather
// than as attributes discovered at run time. The host validates a
// definition once, when it is registered, and then funnels every
// invocation through Run, which checks the input against the declared
// type, dispatches to the handler, and checks whatever comes back.
package component
