// Package filtergraph builds the structured processing-graph description a
// conversion hands to the engine.
//
// Build is pure data transformation: it selects the background source,
// emits render stages for the requested visualizations, composes them over
// the background, and appends the optional trim plus the thumbnail tap. No
// filesystem or process work happens here, so graphs are unit-testable and
// deterministic. Serialization into the engine's filter syntax stays behind
// Spec.Serialize and is only consumed at the invoker boundary.
package filtergraph
