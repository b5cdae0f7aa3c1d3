// Package diagram lays out the documentation diagram variants.
//
// Every variant is a pure function from a small description type to a
// [scene.Scene]: it computes a canvas size from the number and size of its
// elements, positions each element, and emits rectangles, lines, polygons
// and text. Variants never return errors. Empty or degenerate descriptions
// produce an empty or degenerate scene, never a panic.
//
// # Variants
//
//   - [Flow]: a linear sequence of labelled boxes joined by arrows
//   - [Architecture]: free-form boxes at caller coordinates with connectors
//   - [Pipeline]: stages with optional bullet items, colored by index
//   - [LayerDiagram]: a vertical stack of bands, optionally reversed
//   - [Signal]: telemetry lines between a source and a destination
//   - [ConnectionDiagram]: nodes in sequence or as a hub with radial spokes
//   - [Comparison]: two item lists with a center arrow
//   - [Process], [Tree], [Cards], [Stack] and [Table]
//
// # Colors
//
// Colors follow one resolution order everywhere: an explicit color on the
// element, then the variant's palette indexed by position, then the
// variant's fallback. See [palette.Resolve].
//
// # Documents
//
// [Document] names a variant and carries its description. It is the unit
// read from description files and rendered by the pipeline.
package diagram
