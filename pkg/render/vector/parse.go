package vector

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/puzzlesheet/pkg/errors"
)

// inherited is the state passed from a group to its children.
type inherited struct {
	m           Matrix
	fill        Color
	hasFill     bool
	stroke      Color
	hasStroke   bool
	strokeWidth float64
	fontSize    float64
	bold        bool
	anchor      Anchor
}

func defaultInherited() inherited {
	return inherited{m: Identity(), hasFill: true, strokeWidth: 1, fontSize: 16}
}

// ignored elements carry no geometry; their subtrees are skipped.
var ignored = map[string]bool{
	"title": true, "desc": true, "metadata": true, "defs": true, "style": true,
}

// Parse reads an SVG document into a Graphic. Unsupported elements such as
// images, references and arcs make the whole diagram invalid.
func Parse(data []byte) (*Graphic, error) {
	g, err := parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDiagram, err, "parse diagram")
	}
	return g, nil
}

func parse(data []byte) (*Graphic, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = true

	var (
		g     *Graphic
		stack []inherited
		text  *Shape
		skip  int
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if skip > 0 {
				skip++
				continue
			}
			name := t.Name.Local
			if g == nil {
				if name != "svg" {
					return nil, fmt.Errorf("root element is <%s>, want <svg>", name)
				}
				root, m, err := parseRoot(t)
				if err != nil {
					return nil, err
				}
				g = root
				st := defaultInherited()
				st.m = m
				if err := st.apply(t.Attr); err != nil {
					return nil, err
				}
				stack = append(stack, st)
				continue
			}
			if ignored[name] {
				skip = 1
				continue
			}
			if text != nil && name != "tspan" {
				return nil, fmt.Errorf("unsupported <%s> inside <text>", name)
			}

			st := stack[len(stack)-1]
			if err := st.apply(t.Attr); err != nil {
				return nil, fmt.Errorf("<%s>: %w", name, err)
			}
			stack = append(stack, st)

			switch name {
			case "g", "svg", "tspan":
			case "text":
				sh, err := textShape(t, st)
				if err != nil {
					return nil, err
				}
				text = &sh
			default:
				shapes, err := element(name, t, st)
				if err != nil {
					return nil, err
				}
				g.Shapes = append(g.Shapes, shapes...)
			}

		case xml.EndElement:
			if skip > 0 {
				skip--
				continue
			}
			if t.Name.Local == "text" && text != nil {
				text.Text = strings.Join(strings.Fields(text.Text), " ")
				if text.Text != "" {
					g.Shapes = append(g.Shapes, *text)
				}
				text = nil
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}

		case xml.CharData:
			if text != nil && skip == 0 {
				text.Text += string(t)
			}
		}
	}

	if g == nil {
		return nil, fmt.Errorf("no <svg> element")
	}
	return g, nil
}

func parseRoot(t xml.StartElement) (*Graphic, Matrix, error) {
	var (
		w, h    float64
		hasW    bool
		hasH    bool
		vb      [4]float64
		hasView bool
		err     error
	)
	for _, a := range t.Attr {
		switch a.Name.Local {
		case "width":
			if w, err = parseLength(a.Value); err != nil {
				return nil, Matrix{}, err
			}
			hasW = true
		case "height":
			if h, err = parseLength(a.Value); err != nil {
				return nil, Matrix{}, err
			}
			hasH = true
		case "viewBox":
			nums, err := parseNumbers(a.Value)
			if err != nil || len(nums) != 4 {
				return nil, Matrix{}, fmt.Errorf("bad viewBox %q", a.Value)
			}
			copy(vb[:], nums)
			hasView = true
		}
	}

	if !hasW && hasView {
		w, hasW = vb[2], true
	}
	if !hasH && hasView {
		h, hasH = vb[3], true
	}
	if !hasW || !hasH || w <= 0 || h <= 0 {
		return nil, Matrix{}, fmt.Errorf("svg has no usable size")
	}

	m := Identity()
	if hasView {
		if vb[2] <= 0 || vb[3] <= 0 {
			return nil, Matrix{}, fmt.Errorf("bad viewBox size")
		}
		m = Scale(w/vb[2], h/vb[3]).Mul(Translate(-vb[0], -vb[1]))
	}
	return &Graphic{Width: w, Height: h}, m, nil
}

func (st *inherited) apply(attrs []xml.Attr) error {
	var transform string
	for _, a := range attrs {
		if a.Name.Local == "style" {
			for _, decl := range strings.Split(a.Value, ";") {
				k, v, ok := strings.Cut(decl, ":")
				if !ok {
					continue
				}
				if err := st.set(strings.TrimSpace(k), strings.TrimSpace(v)); err != nil {
					return err
				}
			}
			continue
		}
		if a.Name.Local == "transform" {
			transform = a.Value
			continue
		}
		if err := st.set(a.Name.Local, a.Value); err != nil {
			return err
		}
	}
	if transform != "" {
		m, err := parseTransform(transform)
		if err != nil {
			return err
		}
		st.m = st.m.Mul(m)
	}
	return nil
}

func (st *inherited) set(key, value string) error {
	var err error
	switch key {
	case "fill":
		if strings.HasPrefix(value, "url(") {
			return fmt.Errorf("paint servers are not supported: %s", value)
		}
		st.fill, st.hasFill, err = ParseColor(value)
	case "stroke":
		if strings.HasPrefix(value, "url(") {
			return fmt.Errorf("paint servers are not supported: %s", value)
		}
		st.stroke, st.hasStroke, err = ParseColor(value)
	case "stroke-width":
		st.strokeWidth, err = parseLength(value)
	case "font-size":
		st.fontSize, err = parseLength(value)
	case "font-weight":
		st.bold = value == "bold" || value == "bolder" || value == "700" || value == "800" || value == "900"
	case "text-anchor":
		switch value {
		case "middle":
			st.anchor = AnchorMiddle
		case "end":
			st.anchor = AnchorEnd
		default:
			st.anchor = AnchorStart
		}
	}
	return err
}

func (st inherited) style() Style {
	return Style{
		Fill: st.fill, HasFill: st.hasFill,
		Stroke: st.stroke, HasStroke: st.hasStroke,
		StrokeWidth: st.strokeWidth * st.m.ScaleFactor(),
	}
}

func attrs(t xml.StartElement, names ...string) (map[string]float64, error) {
	out := make(map[string]float64, len(names))
	for _, a := range t.Attr {
		for _, n := range names {
			if a.Name.Local == n {
				v, err := parseLength(a.Value)
				if err != nil {
					return nil, fmt.Errorf("<%s %s>: %w", t.Name.Local, n, err)
				}
				out[n] = v
			}
		}
	}
	return out, nil
}

func attr(t xml.StartElement, name string) string {
	for _, a := range t.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func element(name string, t xml.StartElement, st inherited) ([]Shape, error) {
	path := func(segs []Segment) []Shape {
		for i := range segs {
			for j := range segs[i].Pts {
				segs[i].Pts[j] = st.m.Apply(segs[i].Pts[j])
			}
		}
		return []Shape{{Kind: KindPath, Style: st.style(), Path: segs}}
	}

	switch name {
	case "rect":
		a, err := attrs(t, "x", "y", "width", "height")
		if err != nil {
			return nil, err
		}
		x, y, w, h := a["x"], a["y"], a["width"], a["height"]
		if w <= 0 || h <= 0 {
			return nil, nil
		}
		return path([]Segment{
			{Op: MoveTo, Pts: [3]Point{{x, y}}},
			{Op: LineTo, Pts: [3]Point{{x + w, y}}},
			{Op: LineTo, Pts: [3]Point{{x + w, y + h}}},
			{Op: LineTo, Pts: [3]Point{{x, y + h}}},
			{Op: Close},
		}), nil

	case "circle":
		a, err := attrs(t, "cx", "cy", "r")
		if err != nil {
			return nil, err
		}
		if a["r"] <= 0 {
			return nil, nil
		}
		return []Shape{{
			Kind:   KindCircle,
			Style:  st.style(),
			Center: st.m.Apply(Point{a["cx"], a["cy"]}),
			Radius: a["r"] * st.m.ScaleFactor(),
		}}, nil

	case "ellipse":
		a, err := attrs(t, "cx", "cy", "rx", "ry")
		if err != nil {
			return nil, err
		}
		return path(ellipse(a["cx"], a["cy"], a["rx"], a["ry"])), nil

	case "line":
		a, err := attrs(t, "x1", "y1", "x2", "y2")
		if err != nil {
			return nil, err
		}
		shapes := path([]Segment{
			{Op: MoveTo, Pts: [3]Point{{a["x1"], a["y1"]}}},
			{Op: LineTo, Pts: [3]Point{{a["x2"], a["y2"]}}},
		})
		shapes[0].Style.HasFill = false
		return shapes, nil

	case "polygon", "polyline":
		nums, err := parseNumbers(attr(t, "points"))
		if err != nil || len(nums)%2 != 0 || len(nums) < 4 {
			return nil, fmt.Errorf("<%s> has bad points", name)
		}
		segs := []Segment{{Op: MoveTo, Pts: [3]Point{{nums[0], nums[1]}}}}
		for i := 2; i < len(nums); i += 2 {
			segs = append(segs, Segment{Op: LineTo, Pts: [3]Point{{nums[i], nums[i+1]}}})
		}
		if name == "polygon" {
			segs = append(segs, Segment{Op: Close})
		}
		return path(segs), nil

	case "path":
		segs, err := parsePath(attr(t, "d"))
		if err != nil {
			return nil, err
		}
		if len(segs) == 0 {
			return nil, nil
		}
		return path(segs), nil
	}
	return nil, fmt.Errorf("unsupported element <%s>", name)
}

func textShape(t xml.StartElement, st inherited) (Shape, error) {
	a, err := attrs(t, "x", "y")
	if err != nil {
		return Shape{}, err
	}
	return Shape{
		Kind:     KindText,
		Style:    st.style(),
		At:       st.m.Apply(Point{a["x"], a["y"]}),
		FontSize: st.fontSize * st.m.ScaleFactor(),
		Bold:     st.bold,
		Anchor:   st.anchor,
	}, nil
}

// ellipse approximates an ellipse with four cubic arcs.
func ellipse(cx, cy, rx, ry float64) []Segment {
	const k = 0.5522847498
	ox, oy := rx*k, ry*k
	return []Segment{
		{Op: MoveTo, Pts: [3]Point{{cx + rx, cy}}},
		{Op: CubicTo, Pts: [3]Point{{cx + rx, cy + oy}, {cx + ox, cy + ry}, {cx, cy + ry}}},
		{Op: CubicTo, Pts: [3]Point{{cx - ox, cy + ry}, {cx - rx, cy + oy}, {cx - rx, cy}}},
		{Op: CubicTo, Pts: [3]Point{{cx - rx, cy - oy}, {cx - ox, cy - ry}, {cx, cy - ry}}},
		{Op: CubicTo, Pts: [3]Point{{cx + ox, cy - ry}, {cx + rx, cy - oy}, {cx + rx, cy}}},
		{Op: Close},
	}
}

func parseLength(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		return 0, fmt.Errorf("percentage lengths are not supported: %q", s)
	}
	s = strings.TrimSuffix(strings.TrimSuffix(s, "px"), "pt")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bad length %q", s)
	}
	return v, nil
}

func parseNumbers(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n' || r == '\r'
	})
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", f)
		}
		out = append(out, v)
	}
	return out, nil
}

// parseTransform parses a transform list such as "translate(10,20) scale(2)".
func parseTransform(s string) (Matrix, error) {
	m := Identity()
	rest := strings.TrimSpace(s)
	for rest != "" {
		open := strings.IndexByte(rest, '(')
		end := strings.IndexByte(rest, ')')
		if open < 0 || end < open {
			return Matrix{}, fmt.Errorf("bad transform %q", s)
		}
		fn := strings.TrimSpace(rest[:open])
		args, err := parseNumbers(rest[open+1 : end])
		if err != nil {
			return Matrix{}, fmt.Errorf("bad transform %q: %w", s, err)
		}
		rest = strings.TrimLeft(rest[end+1:], " ,\t\n")

		var t Matrix
		switch {
		case fn == "translate" && len(args) == 1:
			t = Translate(args[0], 0)
		case fn == "translate" && len(args) == 2:
			t = Translate(args[0], args[1])
		case fn == "scale" && len(args) == 1:
			t = Scale(args[0], args[0])
		case fn == "scale" && len(args) == 2:
			t = Scale(args[0], args[1])
		case fn == "rotate" && len(args) == 1:
			t = Rotate(args[0])
		case fn == "rotate" && len(args) == 3:
			t = Translate(args[1], args[2]).Mul(Rotate(args[0])).Mul(Translate(-args[1], -args[2]))
		case fn == "matrix" && len(args) == 6:
			t = Matrix{args[0], args[1], args[2], args[3], args[4], args[5]}
		default:
			return Matrix{}, fmt.Errorf("unsupported transform %s with %d args", fn, len(args))
		}
		m = m.Mul(t)
	}
	return m, nil
}
