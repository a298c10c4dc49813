package vector

// Op is a path segment operation.
type Op uint8

const (
	MoveTo Op = iota
	LineTo
	CubicTo
	Close
)

// Segment is one path operation. MoveTo and LineTo use Pts[0]; CubicTo uses
// two control points and the end point.
type Segment struct {
	Op  Op
	Pts [3]Point
}

// Anchor is the horizontal alignment of text relative to its position.
type Anchor uint8

const (
	AnchorStart Anchor = iota
	AnchorMiddle
	AnchorEnd
)

// Style holds the resolved paint of one shape.
type Style struct {
	Fill        Color
	HasFill     bool
	Stroke      Color
	HasStroke   bool
	StrokeWidth float64
}

// Kind distinguishes shape payloads.
type Kind uint8

const (
	KindPath Kind = iota
	KindCircle
	KindText
)

// Shape is one drawable element with its transform already applied.
type Shape struct {
	Kind  Kind
	Style Style

	Path []Segment // KindPath

	Center Point   // KindCircle
	Radius float64 // KindCircle

	Text     string  // KindText
	At       Point   // KindText baseline position
	FontSize float64 // KindText
	Bold     bool    // KindText
	Anchor   Anchor  // KindText
}

// Graphic is a parsed vector image.
type Graphic struct {
	Width, Height float64
	Shapes        []Shape
}

// Painter receives shapes in device coordinates.
type Painter interface {
	Path(segs []Segment, s Style)
	Circle(c Point, r float64, s Style)
	Text(at Point, text string, size float64, bold bool, anchor Anchor, s Style)
}

// Draw replays g onto p through m.
func (g *Graphic) Draw(p Painter, m Matrix) {
	k := m.ScaleFactor()
	for _, sh := range g.Shapes {
		st := sh.Style
		st.StrokeWidth *= k
		switch sh.Kind {
		case KindPath:
			segs := make([]Segment, len(sh.Path))
			for i, s := range sh.Path {
				segs[i].Op = s.Op
				for j := range s.Pts {
					segs[i].Pts[j] = m.Apply(s.Pts[j])
				}
			}
			p.Path(segs, st)
		case KindCircle:
			p.Circle(m.Apply(sh.Center), sh.Radius*k, st)
		case KindText:
			p.Text(m.Apply(sh.At), sh.Text, sh.FontSize*k, sh.Bold, sh.Anchor, st)
		}
	}
}
