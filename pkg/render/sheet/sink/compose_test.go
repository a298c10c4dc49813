package sink

import (
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/puzzlesheet/pkg/errors"
	"github.com/matzehuels/puzzlesheet/pkg/render/sheet/layout"
	"github.com/matzehuels/puzzlesheet/pkg/render/vector"
)

// op is one recorded canvas call.
type op struct {
	Kind    string
	X, Y    float64
	W, H    float64
	Text    string
	Filled  bool
	Graphic *vector.Graphic
}

type recorder struct {
	ops  []op
	font string
}

func (r *recorder) SetFont(family, style string, size float64) {
	r.font = fmt.Sprintf("%s/%s/%g", family, style, size)
	r.ops = append(r.ops, op{Kind: "font", Text: r.font})
}

// TextWidth pretends every rune is 10 points wide.
func (r *recorder) TextWidth(s string) float64 { return float64(len([]rune(s))) * 10 }

func (r *recorder) Text(x, y float64, s string) {
	r.ops = append(r.ops, op{Kind: "text", X: x, Y: y, Text: s})
}

func (r *recorder) Line(x1, y1, x2, y2 float64) {
	r.ops = append(r.ops, op{Kind: "line", X: x1, Y: y1, W: x2 - x1, H: y2 - y1})
}

func (r *recorder) Circle(x, y, rad float64, filled bool) {
	r.ops = append(r.ops, op{Kind: "circle", X: x, Y: y, W: rad, Filled: filled})
}

func (r *recorder) Graphic(g *vector.Graphic, x, y, w, h float64) {
	r.ops = append(r.ops, op{Kind: "graphic", X: x, Y: y, W: w, H: h, Graphic: g})
}

func (r *recorder) kinds(kind string) []op {
	var out []op
	for _, o := range r.ops {
		if o.Kind == kind {
			out = append(out, o)
		}
	}
	return out
}

func board() *vector.Graphic {
	return &vector.Graphic{Width: 480, Height: 480}
}

func diagrams(n int) []Diagram {
	out := make([]Diagram, n)
	for i := range out {
		out[i] = Diagram{Graphic: board(), SecondToMove: i%2 == 1}
	}
	return out
}

func TestComposeEightDiagrams(t *testing.T) {
	var rec recorder
	in := diagrams(8)
	plan, err := Compose(&rec, Page{Diagrams: in, HeaderLeft: "White", HeaderRight: "Black"})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if plan.Variant != layout.TwelveCell {
		t.Errorf("variant = %v, want %v", plan.Variant, layout.TwelveCell)
	}

	g := layout.TwelveCell.Geometry(layout.DefaultGeometry())
	texts := rec.kinds("text")
	wantTexts := []op{
		{Kind: "text", X: g.MarginLeft, Y: g.HeaderBaseline(), Text: "White"},
		{Kind: "text", X: g.PageWidth - g.MarginRight - 50, Y: g.HeaderBaseline(), Text: "Black"},
	}
	if diff := cmp.Diff(wantTexts, texts, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("header text mismatch (-want +got):\n%s", diff)
	}

	if lines := rec.kinds("line"); len(lines) != 1 {
		t.Errorf("lines = %d, want 1 (header rule only)", len(lines))
	}

	graphics := rec.kinds("graphic")
	if len(graphics) != 8 {
		t.Fatalf("graphics = %d, want 8", len(graphics))
	}
	want := layout.NewPlan(layout.TwelveCell, layout.DefaultGeometry(), 8)
	for i, gr := range graphics {
		p := want.Placements[i]
		if gr.X != p.X || gr.Y != p.Y || gr.W != p.Width || gr.H != p.Width {
			t.Errorf("graphic %d at (%v,%v %vx%v), want (%v,%v %vx%v)", i, gr.X, gr.Y, gr.W, gr.H, p.X, p.Y, p.Width, p.Width)
		}
		if gr.Graphic != in[i].Graphic {
			t.Errorf("graphic %d drew a different diagram", i)
		}
	}
}

func TestComposeMarkerFill(t *testing.T) {
	var rec recorder
	in := []Diagram{
		{Graphic: board(), SecondToMove: false},
		{Graphic: board(), SecondToMove: true},
		{Graphic: board(), SecondToMove: true},
	}
	plan, err := Compose(&rec, Page{Diagrams: in})
	if err != nil {
		t.Fatal(err)
	}

	circles := rec.kinds("circle")
	if len(circles) != len(in) {
		t.Fatalf("markers = %d, want %d", len(circles), len(in))
	}
	for i, c := range circles {
		if c.Filled != in[i].SecondToMove {
			t.Errorf("marker %d filled = %v, want %v", i, c.Filled, in[i].SecondToMove)
		}
		p := plan.Placements[i]
		cx, cy := p.Marker()
		if c.X != cx || c.Y != cy || c.W != layout.SixCell.MarkerRadius() {
			t.Errorf("marker %d at (%v,%v r=%v), want (%v,%v r=%v)", i, c.X, c.Y, c.W, cx, cy, layout.SixCell.MarkerRadius())
		}
		if c.Y != p.Y-0.1*p.Width {
			t.Errorf("marker %d y = %v, want %v", i, c.Y, p.Y-0.1*p.Width)
		}
	}
}

func TestComposeEmpty(t *testing.T) {
	tests := []struct {
		name      string
		footer    string
		wantLines int
		wantTexts int
	}{
		{"no footer", "", 1, 2},
		{"with footer", "Solutions on the back", 2, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec recorder
			plan, err := Compose(&rec, Page{HeaderLeft: "L", HeaderRight: "R", Footer: tt.footer})
			if err != nil {
				t.Fatalf("Compose() error = %v", err)
			}
			if len(plan.Placements) != 0 {
				t.Errorf("placements = %d, want 0", len(plan.Placements))
			}
			if n := len(rec.kinds("graphic")) + len(rec.kinds("circle")); n != 0 {
				t.Errorf("cell draws = %d, want 0", n)
			}
			if n := len(rec.kinds("line")); n != tt.wantLines {
				t.Errorf("lines = %d, want %d", n, tt.wantLines)
			}
			if n := len(rec.kinds("text")); n != tt.wantTexts {
				t.Errorf("texts = %d, want %d", n, tt.wantTexts)
			}
		})
	}
}

func TestComposeFooter(t *testing.T) {
	var rec recorder
	if _, err := Compose(&rec, Page{Diagrams: diagrams(2), Footer: "page 1"}); err != nil {
		t.Fatal(err)
	}
	g := layout.SixCell.Geometry(layout.DefaultGeometry())

	last := rec.ops[len(rec.ops)-1]
	if last.Kind != "text" || last.Text != "page 1" || last.X != g.MarginLeft || last.Y != g.FooterBaseline() {
		t.Errorf("last op = %+v, want footer text at (%v,%v)", last, g.MarginLeft, g.FooterBaseline())
	}
	lines := rec.kinds("line")
	if footer := lines[len(lines)-1]; footer.Y != g.FooterRuleY() || footer.X != layout.RuleInset {
		t.Errorf("footer rule = %+v, want y=%v from x=%v", footer, g.FooterRuleY(), layout.RuleInset)
	}
	if last.Y >= g.FooterRuleY() {
		t.Errorf("footer text baseline %v not below rule %v", last.Y, g.FooterRuleY())
	}
}

func TestComposeTruncatesBeyondTwelve(t *testing.T) {
	var twelve, thirteen recorder
	in := diagrams(12)
	if _, err := Compose(&twelve, Page{Diagrams: in}); err != nil {
		t.Fatal(err)
	}

	// The 13th diagram is never looked at, even though it is unusable.
	extra := append(append([]Diagram{}, in...), Diagram{})
	plan, err := Compose(&thirteen, Page{Diagrams: extra})
	if err != nil {
		t.Fatalf("Compose(13) error = %v", err)
	}
	if plan.Dropped != 1 {
		t.Errorf("Dropped = %d, want 1", plan.Dropped)
	}
	if diff := cmp.Diff(twelve.ops, thirteen.ops); diff != "" {
		t.Errorf("13th diagram changed the page (-12 +13):\n%s", diff)
	}
}

func TestComposeExplicitLayout(t *testing.T) {
	var rec recorder
	plan, err := Compose(&rec, Page{Diagrams: diagrams(10), Layout: layout.SixCell})
	if err != nil {
		t.Fatal(err)
	}
	if plan.Variant != layout.SixCell || len(rec.kinds("graphic")) != 6 {
		t.Errorf("got %v with %d graphics, want 6 with 6", plan.Variant, len(rec.kinds("graphic")))
	}
	if rec.kinds("graphic")[0].X != 2*layout.Cm {
		t.Errorf("first cell x = %v, want the widened margin %v", rec.kinds("graphic")[0].X, 2*layout.Cm)
	}
}

func TestComposeFailsBeforeDrawing(t *testing.T) {
	tests := []struct {
		name string
		page Page
		code errors.Code
	}{
		{"unknown layout", Page{Diagrams: diagrams(3), Layout: layout.Variant(42)}, errors.ErrCodeUnknownLayout},
		{"nil graphic", Page{Diagrams: []Diagram{{Graphic: board()}, {}}}, errors.ErrCodeInvalidDiagram},
		{"empty graphic", Page{Diagrams: []Diagram{{Graphic: &vector.Graphic{}}}}, errors.ErrCodeInvalidDiagram},
		{"nan size", Page{Diagrams: []Diagram{{Graphic: &vector.Graphic{Width: math.NaN(), Height: 1}}}}, errors.ErrCodeInvalidDiagram},
		{"header fills page", Page{Diagrams: diagrams(12), Geometry: headerGeometry(800)}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec recorder
			_, err := Compose(&rec, tt.page)
			if !errors.Is(err, tt.code) {
				t.Errorf("Compose() error = %v, want %s", err, tt.code)
			}
			if len(rec.ops) != 0 {
				t.Errorf("canvas received %d ops before failing", len(rec.ops))
			}
		})
	}
}

func headerGeometry(size float64) *layout.Geometry {
	g := layout.NewGeometry(size)
	return &g
}

func TestComposeLargeHeaderKeepsGridAboveFooter(t *testing.T) {
	for _, size := range []float64{36, 72} {
		t.Run(fmt.Sprint(size), func(t *testing.T) {
			var rec recorder
			page := Page{Diagrams: diagrams(12), Footer: "f", Geometry: headerGeometry(size)}
			if _, err := Compose(&rec, page); err != nil {
				t.Fatalf("Compose() error = %v", err)
			}
			g := page.Geometry
			for i, o := range rec.kinds("graphic") {
				if bottom := o.Y - o.H; bottom < g.FooterRuleY()-1e-9 {
					t.Errorf("diagram %d bottom = %v, below footer rule %v", i, bottom, g.FooterRuleY())
				}
				if o.Y > g.ContentTop()+1e-9 {
					t.Errorf("diagram %d top = %v, above content top %v", i, o.Y, g.ContentTop())
				}
			}
		})
	}
}
