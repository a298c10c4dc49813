package sink

import "github.com/matzehuels/puzzlesheet/pkg/render/vector"

// Canvas is the drawing surface of one page. Coordinates are PDF points
// with the origin at the bottom-left corner.
type Canvas interface {
	SetFont(family, style string, size float64)
	TextWidth(s string) float64
	// Text draws s with its baseline starting at (x, y).
	Text(x, y float64, s string)
	Line(x1, y1, x2, y2 float64)
	Circle(x, y, r float64, filled bool)
	// Graphic draws g scaled into the box whose top-left corner is (x, y).
	Graphic(g *vector.Graphic, x, y, w, h float64)
}
