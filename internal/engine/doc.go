// Package engine executes filter graphs through the external media engine.
//
// The invoker owns everything process-shaped: materializing extracted cover
// bytes into a scoped workspace, serializing the graph, assembling the
// single engine invocation, and classifying the result. Outcomes separate
// a missing engine binary from an execution failure so callers can give an
// actionable diagnostic, and success is only claimed after the declared
// artifacts exist with non-zero size.
package engine
