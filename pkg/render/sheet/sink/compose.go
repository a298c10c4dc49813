package sink

import (
	"math"

	"github.com/matzehuels/puzzlesheet/pkg/errors"
	"github.com/matzehuels/puzzlesheet/pkg/render/sheet/layout"
)

// Page is everything needed to compose one sheet page.
//
// Header and footer texts are set in the PDF core fonts, which only cover
// Windows-1252. Other characters print as '.'; see [Encodable].
type Page struct {
	Diagrams    []Diagram
	HeaderLeft  string
	HeaderRight string
	Footer      string

	// Layout forces a grid; layout.Auto picks one from the diagram count.
	Layout layout.Variant

	// Geometry overrides the default A4 page when set.
	Geometry *layout.Geometry
}

func (p Page) geometry() layout.Geometry {
	if p.Geometry != nil {
		return *p.Geometry
	}
	return layout.DefaultGeometry()
}

// Compose draws p onto c and returns the plan that was used. Diagrams
// beyond the grid's capacity are ignored. Nothing is drawn when the layout
// is unknown or a placed diagram is unusable.
func Compose(c Canvas, p Page) (layout.Plan, error) {
	v, err := layout.Select(p.Layout, len(p.Diagrams))
	if err != nil {
		return layout.Plan{}, err
	}
	base := p.geometry()
	if err := v.Fits(base); err != nil {
		return layout.Plan{}, err
	}
	for i, d := range p.Diagrams[:min(len(p.Diagrams), v.Capacity())] {
		if err := checkDiagram(d); err != nil {
			return layout.Plan{}, errors.Wrap(errors.ErrCodeInvalidDiagram, err, "diagram %d", i+1)
		}
	}

	g := v.Geometry(base)
	drawHeader(c, g, p.HeaderLeft, p.HeaderRight)

	plan, err := layout.Place(v, base, p.Diagrams, func(pl layout.Placement, d Diagram) error {
		PlaceDiagram(c, d, pl)
		return nil
	})
	if err != nil {
		return plan, err
	}

	if p.Footer != "" {
		drawFooter(c, g, p.Footer)
	}
	return plan, nil
}

func checkDiagram(d Diagram) error {
	if d.Graphic == nil {
		return errors.New(errors.ErrCodeInvalidDiagram, "missing graphic")
	}
	w, h := d.Graphic.Width, d.Graphic.Height
	if !(w > 0 && h > 0) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return errors.New(errors.ErrCodeInvalidDiagram, "graphic has no usable size (%gx%g)", w, h)
	}
	return nil
}

func drawHeader(c Canvas, g layout.Geometry, left, right string) {
	c.SetFont(g.HeaderFont, g.HeaderFontStyle, g.HeaderFontSize)
	y := g.HeaderBaseline()
	if left != "" {
		c.Text(g.MarginLeft, y, left)
	}
	if right != "" {
		c.Text(g.PageWidth-g.MarginRight-c.TextWidth(right), y, right)
	}
	rule := g.HeaderRuleY()
	c.Line(layout.RuleInset, rule, g.PageWidth-layout.RuleInset, rule)
}

func drawFooter(c Canvas, g layout.Geometry, text string) {
	rule := g.FooterRuleY()
	c.Line(layout.RuleInset, rule, g.PageWidth-layout.RuleInset, rule)
	c.SetFont(g.FooterFont, g.FooterFontStyle, g.FooterFontSize)
	c.Text(g.MarginLeft, g.FooterBaseline(), text)
}
