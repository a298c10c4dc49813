// Package layout computes where chess diagrams go on a printed puzzle sheet.
//
// # Overview
//
// Layout is pure geometry. Given a page [Geometry] and a diagram count it
// produces a [Plan]: the ordered (x, y, cell width) triples for one A4 page.
// Nothing here draws; the sink package replays a plan onto a PDF canvas.
//
// All coordinates are PDF points (1/72 inch) with the origin at the
// bottom-left corner of the page. A placement's Y is the top edge of its
// cell, and the diagram extends downward to Y - Width.
//
// # Variants
//
// Two grid shapes are supported:
//
//   - [SixCell]: 2 columns × 3 rows, 2cm side margins, sized so the three
//     rows fill the height between header and footer
//   - [TwelveCell]: 3 columns × 4 rows, 1.5cm side margins, sized so the
//     three columns fill the width between the margins
//
// [Select] picks SixCell for up to six diagrams and TwelveCell otherwise
// unless the caller names a variant explicitly. Each variant derives its own
// geometry from the base page via [Variant.Geometry]; the base value is never
// modified.
//
// # Capacity
//
// Items beyond a variant's capacity are dropped. [NewPlan] clamps before any
// position math, and [Place] re-checks the placed count so a wrapped row can
// never overlap an earlier one.
//
//	err := layout.Place(layout.TwelveCell, layout.DefaultGeometry(), diagrams,
//	    func(p layout.Placement, d Diagram) error {
//	        return drawAt(d, p.X, p.Y, p.Width)
//	    })
package layout
