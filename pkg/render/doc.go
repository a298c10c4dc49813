// Package render groups the drawing code behind psg's outputs.
//
// # Overview
//
// A printed sheet goes through three stages:
//
//	FEN
//	 ↓
//	[diagram] renders one board as SVG and parses it into a [vector] graphic
//	 ↓
//	[sheet/layout] places up to twelve diagrams on an A4 grid
//	 ↓
//	[sheet/sink] draws header, diagrams, side-to-move markers and footer as PDF
//
// The [lineage] subpackage is separate: it draws how puzzle stores were
// derived from each other with Graphviz.
//
//	dot := lineage.ToDOT(nodes, lineage.Options{Detailed: true})
//	svg, err := lineage.RenderSVG(ctx, dot)
//
// [diagram]: github.com/matzehuels/puzzlesheet/pkg/render/diagram
// [vector]: github.com/matzehuels/puzzlesheet/pkg/render/vector
// [sheet/layout]: github.com/matzehuels/puzzlesheet/pkg/render/sheet/layout
// [sheet/sink]: github.com/matzehuels/puzzlesheet/pkg/render/sheet/sink
// [lineage]: github.com/matzehuels/puzzlesheet/pkg/render/lineage
package render
