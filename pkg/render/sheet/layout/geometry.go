package layout

// Cm is one centimetre in PDF points.
const Cm = 72.0 / 2.54

// ISO A4 portrait in points.
const (
	A4Width  = 595.28
	A4Height = 841.89
)

const (
	// HeaderToContent separates the header rule from the first grid row.
	HeaderToContent = 1 * Cm

	// RuleInset is the distance of header and footer rules from the page edges.
	RuleInset = 1 * Cm

	headerInset = 1.5 * Cm

	// Helvetica cap height per point of font size.
	capHeightRatio = 0.718
)

// Geometry describes one page: size, margins and the header and footer
// bands. It is a value; variants return modified copies.
type Geometry struct {
	PageWidth, PageHeight float64

	MarginLeft, MarginRight float64
	MarginBottom            float64

	// Fonts are PDF core font families with an fpdf style string ("B" for bold).
	HeaderFont      string
	HeaderFontStyle string
	HeaderFontSize  float64
	HeaderHeight    float64

	FooterFont      string
	FooterFontStyle string
	FooterFontSize  float64
	FooterHeight    float64
}

// DefaultGeometry returns the A4 page used for puzzle sheets with an 18pt
// Helvetica-Bold header.
func DefaultGeometry() Geometry {
	return NewGeometry(18)
}

// NewGeometry returns the default page with a custom header font size. The
// header band grows with the font.
func NewGeometry(headerFontSize float64) Geometry {
	return Geometry{
		PageWidth:      A4Width,
		PageHeight:     A4Height,
		MarginLeft:     1.5 * Cm,
		MarginRight:    1.5 * Cm,
		MarginBottom:   1 * Cm,
		HeaderFont:      "Helvetica",
		HeaderFontStyle: "B",
		HeaderFontSize:  headerFontSize,
		HeaderHeight:    headerInset + headerFontSize,
		FooterFont:      "Helvetica",
		FooterFontSize:  10,
		FooterHeight:    1 * Cm,
	}
}

// UsableWidthMargins is the horizontal space taken by the side margins.
func (g Geometry) UsableWidthMargins() float64 { return g.MarginLeft + g.MarginRight }

// UsableHeightMargins is the vertical space taken by the header and footer bands.
func (g Geometry) UsableHeightMargins() float64 { return g.HeaderHeight + g.FooterHeight }

// WithSideMargins returns a copy with both side margins set to m.
func (g Geometry) WithSideMargins(m float64) Geometry {
	g.MarginLeft, g.MarginRight = m, m
	return g
}

// ContentTop is the y coordinate of the top edge of the first grid row.
func (g Geometry) ContentTop() float64 {
	return g.PageHeight - g.HeaderHeight - HeaderToContent
}

// ContentBottom is the lowest y coordinate a cell may reach.
func (g Geometry) ContentBottom() float64 { return g.FooterHeight }

// HeaderRuleY is the y coordinate of the rule below the header band.
func (g Geometry) HeaderRuleY() float64 { return g.PageHeight - g.HeaderHeight }

// HeaderBaseline centres header text vertically in the header band.
func (g Geometry) HeaderBaseline() float64 {
	return g.PageHeight - (g.HeaderHeight+capHeightRatio*g.HeaderFontSize)/2
}

// FooterRuleY is the y coordinate of the rule above the footer text.
func (g Geometry) FooterRuleY() float64 { return g.FooterHeight }

// FooterBaseline centres footer text vertically below the footer rule.
func (g Geometry) FooterBaseline() float64 {
	return (g.FooterHeight - capHeightRatio*g.FooterFontSize) / 2
}

// Bounds returns the full page rectangle.
func (g Geometry) Bounds() Rect {
	return Rect{Left: 0, Right: g.PageWidth, Bottom: 0, Top: g.PageHeight}
}
