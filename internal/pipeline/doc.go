// Package pipeline assembles and drives a sequence of components.
//
// Assembly resolves every step against the registry and checks step shape
// against the component contracts, so a pipeline that constructs at all
// has no unknown names and no misdeclared steps. Execution is strictly
// sequential: nodes run one at a time in declaration order, each
// completing fully before the next begins, and the first failure aborts
// the run carrying the failing step's identity.
package pipeline
