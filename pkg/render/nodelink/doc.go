// Package nodelink lays out box-and-connection diagrams with Graphviz.
//
// # Overview
//
// The native variants in package diagram place nodes with fixed formulas.
// This package is the alternative engine: it turns the same boxes and
// connections into DOT and lets Graphviz choose positions, which suits
// architecture diagrams whose authors do not want to pick coordinates.
//
// # Usage
//
//	dot, err := nodelink.FromDocument(doc, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # DOT Format
//
// [ToDOT] emits filled rounded boxes in each box's color with white labels.
// Dashed connections become dashed edges and labels become edge labels.
// Connections whose endpoints name no box are dropped, matching the native
// architecture renderer.
package nodelink
