package vector

import "math"

// Point is a 2D coordinate.
type Point struct{ X, Y float64 }

// Matrix is a 2D affine transform in SVG order:
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
type Matrix struct{ A, B, C, D, E, F float64 }

// Identity returns the identity transform.
func Identity() Matrix { return Matrix{A: 1, D: 1} }

// Translate returns a translation by (x, y).
func Translate(x, y float64) Matrix { return Matrix{A: 1, D: 1, E: x, F: y} }

// Scale returns a scaling by (sx, sy).
func Scale(sx, sy float64) Matrix { return Matrix{A: sx, D: sy} }

// Rotate returns a rotation by deg degrees around the origin.
func Rotate(deg float64) Matrix {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Matrix{A: c, B: s, C: -s, D: c}
}

// Mul returns m·n, the transform that applies n first and then m.
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Apply transforms p.
func (m Matrix) Apply(p Point) Point {
	return Point{X: m.A*p.X + m.C*p.Y + m.E, Y: m.B*p.X + m.D*p.Y + m.F}
}

// ScaleFactor is the isotropic scale of m.
func (m Matrix) ScaleFactor() float64 {
	return math.Sqrt(math.Abs(m.A*m.D - m.B*m.C))
}
