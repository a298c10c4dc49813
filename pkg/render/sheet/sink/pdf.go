package sink

import (
	"bytes"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/matzehuels/puzzlesheet/pkg/errors"
	"github.com/matzehuels/puzzlesheet/pkg/fsutil"
	"github.com/matzehuels/puzzlesheet/pkg/render/sheet/layout"
	"github.com/matzehuels/puzzlesheet/pkg/render/vector"
)

const producer = "puzzlesheet"

// epoch is stamped into every document so identical input gives identical bytes.
var epoch = time.Unix(0, 0).UTC()

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	title    string
	compress bool
	created  time.Time
}

// WithTitle sets the document title metadata.
func WithTitle(title string) PDFOption { return func(r *pdfRenderer) { r.title = title } }

// WithCompression toggles stream compression (on by default).
func WithCompression(on bool) PDFOption { return func(r *pdfRenderer) { r.compress = on } }

// WithCreationTime stamps t instead of the fixed epoch. Output is then no
// longer reproducible across runs.
func WithCreationTime(t time.Time) PDFOption { return func(r *pdfRenderer) { r.created = t } }

func newPDFRenderer(opts ...PDFOption) pdfRenderer {
	r := pdfRenderer{compress: true, created: epoch}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// PDFDocument is a single-page fpdf document implementing [Canvas].
// It is finished exactly once.
type PDFDocument struct {
	pdf      *fpdf.Fpdf
	height   float64
	tr       func(string) string
	finished bool
}

// NewPDFDocument starts a document with one page of g's size.
func NewPDFDocument(g layout.Geometry, opts ...PDFOption) *PDFDocument {
	r := newPDFRenderer(opts...)

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: g.PageWidth, Ht: g.PageHeight},
	})
	pdf.SetCreationDate(r.created)
	pdf.SetModificationDate(r.created)
	pdf.SetCatalogSort(true)
	pdf.SetProducer(producer, false)
	pdf.SetCreator(producer, false)
	if r.title != "" {
		pdf.SetTitle(r.title, true)
	}
	pdf.SetCompression(r.compress)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.AddPage()
	pdf.SetLineCapStyle("round")
	pdf.SetLineJoinStyle("round")

	return &PDFDocument{
		pdf:    pdf,
		height: g.PageHeight,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

func (d *PDFDocument) y(y float64) float64 { return d.height - y }

func (d *PDFDocument) SetFont(family, style string, size float64) {
	d.pdf.SetFont(family, style, size)
}

func (d *PDFDocument) TextWidth(s string) float64 {
	return d.pdf.GetStringWidth(d.tr(s))
}

func (d *PDFDocument) Text(x, y float64, s string) {
	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.Text(x, d.y(y), d.tr(s))
}

func (d *PDFDocument) Line(x1, y1, x2, y2 float64) {
	d.pdf.SetDrawColor(0, 0, 0)
	d.pdf.SetLineWidth(1)
	d.pdf.Line(x1, d.y(y1), x2, d.y(y2))
}

func (d *PDFDocument) Circle(x, y, r float64, filled bool) {
	d.pdf.SetDrawColor(0, 0, 0)
	d.pdf.SetFillColor(0, 0, 0)
	d.pdf.SetLineWidth(1)
	style := "D"
	if filled {
		style = "FD"
	}
	d.pdf.Circle(x, d.y(y), r, style)
}

func (d *PDFDocument) Graphic(g *vector.Graphic, x, y, w, h float64) {
	m := vector.Translate(x, d.y(y)).Mul(vector.Scale(w/g.Width, h/g.Height))
	g.Draw(pdfPainter{d}, m)
}

// Finish writes the finished document to w. The document cannot be drawn
// into or finished again afterwards.
func (d *PDFDocument) Finish(w io.Writer) error {
	if d.finished {
		return errors.New(errors.ErrCodeInternal, "pdf document already finished")
	}
	d.finished = true
	if err := d.pdf.Error(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "draw page")
	}
	if err := d.pdf.Output(w); err != nil {
		return errors.Wrap(errors.ErrCodeOutputWrite, err, "write pdf")
	}
	return nil
}

// pdfPainter replays vector shapes in fpdf page coordinates, which share
// SVG's top-left origin.
type pdfPainter struct{ d *PDFDocument }

func (p pdfPainter) paint(s vector.Style) string {
	pdf := p.d.pdf
	switch {
	case s.HasFill && s.HasStroke:
		pdf.SetFillColor(int(s.Fill.R), int(s.Fill.G), int(s.Fill.B))
		pdf.SetDrawColor(int(s.Stroke.R), int(s.Stroke.G), int(s.Stroke.B))
		pdf.SetLineWidth(s.StrokeWidth)
		return "FD"
	case s.HasFill:
		pdf.SetFillColor(int(s.Fill.R), int(s.Fill.G), int(s.Fill.B))
		return "F"
	case s.HasStroke:
		pdf.SetDrawColor(int(s.Stroke.R), int(s.Stroke.G), int(s.Stroke.B))
		pdf.SetLineWidth(s.StrokeWidth)
		return "D"
	}
	return ""
}

func (p pdfPainter) Path(segs []vector.Segment, s vector.Style) {
	style := p.paint(s)
	if style == "" || len(segs) == 0 {
		return
	}
	pdf := p.d.pdf
	for _, sg := range segs {
		switch sg.Op {
		case vector.MoveTo:
			pdf.MoveTo(sg.Pts[0].X, sg.Pts[0].Y)
		case vector.LineTo:
			pdf.LineTo(sg.Pts[0].X, sg.Pts[0].Y)
		case vector.CubicTo:
			pdf.CurveBezierCubicTo(sg.Pts[0].X, sg.Pts[0].Y, sg.Pts[1].X, sg.Pts[1].Y, sg.Pts[2].X, sg.Pts[2].Y)
		case vector.Close:
			pdf.ClosePath()
		}
	}
	pdf.DrawPath(style)
}

func (p pdfPainter) Circle(c vector.Point, r float64, s vector.Style) {
	if style := p.paint(s); style != "" {
		p.d.pdf.Circle(c.X, c.Y, r, style)
	}
}

func (p pdfPainter) Text(at vector.Point, text string, size float64, bold bool, anchor vector.Anchor, s vector.Style) {
	if !s.HasFill {
		return
	}
	pdf := p.d.pdf
	style := ""
	if bold {
		style = "B"
	}
	pdf.SetFont("Helvetica", style, size)
	pdf.SetTextColor(int(s.Fill.R), int(s.Fill.G), int(s.Fill.B))
	text = p.d.tr(text)
	x := at.X
	switch anchor {
	case vector.AnchorMiddle:
		x -= pdf.GetStringWidth(text) / 2
	case vector.AnchorEnd:
		x -= pdf.GetStringWidth(text)
	}
	pdf.Text(x, at.Y, text)
}

// ComposePDF composes p into a new PDF document. It returns the document
// bytes and the layout plan the page was drawn with.
func ComposePDF(p Page, opts ...PDFOption) ([]byte, layout.Plan, error) {
	doc := NewPDFDocument(p.geometry(), opts...)
	plan, err := Compose(doc, p)
	if err != nil {
		return nil, plan, err
	}
	var buf bytes.Buffer
	if err := doc.Finish(&buf); err != nil {
		return nil, plan, err
	}
	return buf.Bytes(), plan, nil
}

// RenderPDF composes p into a new PDF document and returns its bytes.
func RenderPDF(p Page, opts ...PDFOption) ([]byte, error) {
	data, _, err := ComposePDF(p, opts...)
	return data, err
}

// WritePDF renders p and writes it to path atomically. On any failure the
// destination is left untouched.
func WritePDF(path string, p Page, opts ...PDFOption) error {
	data, err := RenderPDF(p, opts...)
	if err != nil {
		return err
	}
	if err := fsutil.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeOutputWrite, err, "write %s", path)
	}
	return nil
}

var _ Canvas = (*PDFDocument)(nil)
