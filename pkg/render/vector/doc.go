// Package vector holds parsed vector graphics that can be replayed onto any
// drawing surface.
//
// [Parse] reads the SVG subset produced by the diagram renderer: rect,
// circle, ellipse, line, polyline, polygon, path and text elements inside
// nested groups with translate/scale/rotate/matrix transforms and
// presentation attributes or inline styles. Transforms are flattened at
// parse time, so a [Graphic] is a flat list of [Shape] values in the
// graphic's intrinsic coordinate space (origin top-left, y down).
//
// [Graphic.Draw] maps those shapes through a [Matrix] onto a [Painter]. The
// PDF sink implements Painter on top of fpdf.
//
//	g, err := vector.Parse(svgBytes)
//	if err != nil {
//	    return err // errors.ErrCodeInvalidDiagram
//	}
//	g.Draw(painter, vector.Translate(x, y).Mul(vector.Scale(sx, sy)))
//
// Radii, stroke widths and font sizes scale by the square root of the
// transform's determinant, which is exact for uniform scaling.
package vector
