// Package sink provides output format renderers for diagram scenes.
//
// # Overview
//
// A "sink" transforms a laid-out [scene.Scene] into a final output format.
// This package provides renderers for:
//
//   - SVG: the inline vector markup embedded in documentation pages
//   - JSON: the positioned shape list for external tools
//   - PDF: Print-ready output (requires rsvg-convert)
//   - PNG: Raster image output (requires rsvg-convert)
//   - HTML: a standalone preview page around SVG or widget markup
//
// # SVG Output
//
// [RenderSVG] emits one root element whose viewBox is the scene canvas.
// Lines that request an arrowhead reference a marker defined once in
// <defs>. Marker ids are global within an HTML document, so pages that
// inline several diagrams give each one its own prefix:
//
//	svg := sink.RenderSVG(sc,
//	    sink.WithIDPrefix("flow-1-"),
//	    sink.WithTitle("Collector pipeline"),
//	    sink.WithResponsive(),
//	)
//
// # PDF and PNG Output
//
// [RenderPDF] and [RenderPNG] render the scene as SVG first, then convert via
// [render.ToPDF] and [render.ToPNG]. These require librsvg to be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [scene.Scene]: github.com/matzehuels/otelviz/pkg/scene.Scene
// [render.ToPDF]: github.com/matzehuels/otelviz/pkg/render.ToPDF
// [render.ToPNG]: github.com/matzehuels/otelviz/pkg/render.ToPNG
package sink
