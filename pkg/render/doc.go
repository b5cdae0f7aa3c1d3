// Package render provides output conversion shared by the diagram sinks.
//
// # Overview
//
// Diagrams are laid out by package diagram into a [scene.Scene]. The
// subpackages turn scenes (or the graph structure behind them) into files:
//
//   - [sink]: SVG, JSON, PNG, PDF and HTML output for scenes
//   - [nodelink]: Graphviz layout for box-and-connection diagrams
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). Both sinks and nodelink use
// them.
//
//	svg := sink.RenderSVG(sc)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [scene.Scene]: github.com/matzehuels/otelviz/pkg/scene.Scene
// [sink]: github.com/matzehuels/otelviz/pkg/render/sink
// [nodelink]: github.com/matzehuels/otelviz/pkg/render/nodelink
package render
