package diagram

import (
	"fmt"

	svg "github.com/ajstarks/svgo"
	"github.com/notnil/chess"
)

// pieceBox is the side of the square the piece outlines are drawn in.
const pieceBox = 90

type dot struct{ x, y, r int }

// glyph is a piece silhouette: filled outlines plus small round details.
// Eyes are drawn in the contrasting colour.
type glyph struct {
	paths []string
	balls []dot
	eyes  []dot
}

var glyphs = map[chess.PieceType]glyph{
	chess.Pawn: {
		paths: []string{"M28 76 L62 76 L56 60 L50 44 L40 44 L34 60 Z"},
		balls: []dot{{45, 31, 12}},
	},
	chess.Rook: {
		paths: []string{"M22 76 L68 76 L68 68 L62 68 L60 34 L66 34 L66 20 L58 20 L58 26 L50 26 L50 20 L40 20 L40 26 L32 26 L32 20 L24 20 L24 34 L30 34 L28 68 L22 68 Z"},
	},
	chess.Knight: {
		paths: []string{"M24 76 L68 76 L66 60 C66 40 58 24 44 18 L40 12 L36 20 C28 24 20 36 20 44 L26 48 L34 42 L40 42 C34 52 28 60 24 76 Z"},
		eyes:  []dot{{36, 28, 2}},
	},
	chess.Bishop: {
		paths: []string{"M24 76 L66 76 L62 68 L54 66 C60 56 60 44 45 28 C30 44 30 56 36 66 L28 68 Z"},
		balls: []dot{{45, 20, 6}},
	},
	chess.Queen: {
		paths: []string{"M20 76 L70 76 L66 62 L74 28 L60 48 L56 22 L45 46 L34 22 L30 48 L16 28 L24 62 Z"},
		balls: []dot{{16, 26, 4}, {34, 20, 4}, {56, 20, 4}, {74, 26, 4}},
	},
	chess.King: {
		paths: []string{
			"M22 76 L68 76 L66 62 C76 50 72 36 58 36 C52 36 47 42 45 48 C43 42 38 36 32 36 C18 36 14 50 24 62 Z",
			"M42 12 L48 12 L48 18 L54 18 L54 24 L48 24 L48 34 L42 34 L42 24 L36 24 L36 18 L42 18 Z",
		},
	},
}

func drawPiece(canvas *svg.SVG, p chess.Piece, x, y, sq int) {
	g, ok := glyphs[p.Type()]
	if !ok {
		return
	}
	body, contrast := "#ffffff", "#000000"
	if p.Color() == chess.Black {
		body, contrast = "#000000", "#ffffff"
	}
	style := fmt.Sprintf("fill:%s;stroke:#000000;stroke-width:3", body)

	canvas.Gtransform(fmt.Sprintf("translate(%d,%d) scale(%.4f)", x, y, float64(sq)/pieceBox))
	for _, d := range g.paths {
		canvas.Path(d, style)
	}
	for _, b := range g.balls {
		canvas.Circle(b.x, b.y, b.r, style)
	}
	for _, e := range g.eyes {
		canvas.Circle(e.x, e.y, e.r, "fill:"+contrast)
	}
	canvas.Gend()
}
