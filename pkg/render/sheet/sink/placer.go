package sink

import (
	"github.com/matzehuels/puzzlesheet/pkg/render/sheet/layout"
	"github.com/matzehuels/puzzlesheet/pkg/render/vector"
)

// Diagram is one render-ready board image.
type Diagram struct {
	Graphic *vector.Graphic
	// SecondToMove is true when the second player (black) moves next.
	// The marker next to the diagram is filled in that case.
	SecondToMove bool
}

// PlaceDiagram draws d into the cell p and marks the side to move.
//
// Both axes are scaled independently to the cell width, so a non-square
// graphic is stretched. Board diagrams are square.
func PlaceDiagram(c Canvas, d Diagram, p layout.Placement) {
	c.Graphic(d.Graphic, p.X, p.Y, p.Width, p.Width)
	cx, cy := p.Marker()
	c.Circle(cx, cy, p.MarkerRadius, d.SecondToMove)
}
