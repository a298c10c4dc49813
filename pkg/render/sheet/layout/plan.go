package layout

import "fmt"

// Placement is one cell of a plan. X is the left edge and Y the top edge;
// the diagram occupies [X, X+Width] × [Y-Width, Y].
type Placement struct {
	Index        int
	X, Y         float64
	Width        float64
	MarkerRadius float64
}

// Marker returns the centre of the side-to-move marker, to the right of the
// diagram and a tenth of the cell below its top edge.
func (p Placement) Marker() (cx, cy float64) {
	return p.X + p.Width + p.MarkerRadius + MarkerOffset, p.Y - 0.1*p.Width
}

// Diagram returns the rectangle covered by the diagram image.
func (p Placement) Diagram() Rect {
	return Rect{Left: p.X, Right: p.X + p.Width, Bottom: p.Y - p.Width, Top: p.Y}
}

// Bounds returns the rectangle covered by the diagram and its marker.
func (p Placement) Bounds() Rect {
	r := p.Diagram()
	cx, cy := p.Marker()
	r.Right = cx + p.MarkerRadius
	if top := cy + p.MarkerRadius; top > r.Top {
		r.Top = top
	}
	return r
}

// Plan is the computed layout of one page.
type Plan struct {
	Variant    Variant
	Geometry   Geometry
	CellWidth  float64
	Placements []Placement
	// Dropped counts the items beyond capacity that were not placed.
	Dropped int
}

// NewPlan lays out n items with variant v on the base page. The base
// geometry is not modified; the plan carries the variant's own copy. v must
// be a concrete variant (see [Select]).
func NewPlan(v Variant, base Geometry, n int) Plan {
	if !v.Valid() {
		panic(fmt.Sprintf("layout: NewPlan with unresolved variant %v", v))
	}
	g := v.Geometry(base)
	plan := Plan{
		Variant:   v,
		Geometry:  g,
		CellWidth: v.CellWidth(g),
	}

	n = max(n, 0)
	if c := v.Capacity(); n > c {
		plan.Dropped = n - c
		n = c
	}

	hgap, vgap := v.Gaps()
	cols, rows := v.Columns(), v.Rows()
	top := g.ContentTop()
	plan.Placements = make([]Placement, n)
	for i := range n {
		plan.Placements[i] = Placement{
			Index:        i,
			X:            g.MarginLeft + float64(i%cols)*(plan.CellWidth+hgap),
			Y:            top - float64((i/cols)%rows)*(plan.CellWidth+vgap),
			Width:        plan.CellWidth,
			MarkerRadius: v.MarkerRadius(),
		}
	}
	return plan
}

// Place lays out items with variant v and calls draw for every placed item
// in order. Items beyond capacity are dropped silently. The first draw error
// stops placement and is returned.
func Place[D any](v Variant, base Geometry, items []D, draw func(Placement, D) error) (Plan, error) {
	plan := NewPlan(v, base, len(items))
	if len(plan.Placements) > v.Capacity() {
		// Rows wrap modulo the page, so more placements than cells would overlap.
		panic(fmt.Sprintf("layout: %d placements exceed capacity %d", len(plan.Placements), v.Capacity()))
	}
	for _, p := range plan.Placements {
		if err := draw(p, items[p.Index]); err != nil {
			return plan, err
		}
	}
	return plan, nil
}
