// Package render drives the per-file conversion pipeline.
//
// A Renderer wires the metadata extractor, palette catalog, layout
// resolver, graph builder, and engine invoker together for one input file.
// Configuration problems (unknown scheme, impossible placement) fail before
// any cover extraction or process spawn; a metadata read failure downgrades
// to a warning and the solid-background fallback. Renderers hold no per-file
// state, so a batch may run them concurrently.
package render
