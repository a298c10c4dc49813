// Package diagram draws chess board diagrams as SVG.
//
// [Board] renders one position with github.com/ajstarks/svgo: an 8×8 board
// with a coordinate margin, seen from the side to move unless an
// orientation is forced. [Build] renders many positions concurrently and
// parses each into a [sink.Diagram] ready for page composition.
//
//	svg, err := diagram.Board(fen, diagram.WithSize(480))
//	diagrams, err := diagram.Build(ctx, fens, diagram.WithColors(colors))
//
// Board colours follow the keys used by common chess board renderers
// ("square light", "square dark", "margin", "coord", "inner border",
// "outer border"), so existing colour files can be reused with
// [LoadColors].
//
// [sink.Diagram]: github.com/matzehuels/puzzlesheet/pkg/render/sheet/sink.Diagram
package diagram
