// Package widget renders the presentational composables used around
// diagrams: boxes, arrows, rows, columns, titled groups and containers.
//
// Composables produce HTML fragments with inline styles, so a page can embed
// them without a stylesheet. Style computation is split into pure functions
// ([BoxStyle], [GapSize]) that tests can check without parsing markup.
//
// [Node] is the declarative form read from description files: a tree of
// typed nodes whose Render method calls the composables.
package widget
