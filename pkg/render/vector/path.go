package vector

import (
	"fmt"
	"strconv"
)

// pathScanner tokenises SVG path data.
type pathScanner struct {
	s   string
	pos int
}

func (sc *pathScanner) skipSeparators() {
	for sc.pos < len(sc.s) {
		switch sc.s[sc.pos] {
		case ' ', '\t', '\n', '\r', ',':
			sc.pos++
		default:
			return
		}
	}
}

// command returns the next command letter, or 0 when a number follows.
func (sc *pathScanner) command() (byte, bool) {
	sc.skipSeparators()
	if sc.pos >= len(sc.s) {
		return 0, false
	}
	c := sc.s[sc.pos]
	if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') {
		if c == 'e' || c == 'E' {
			return 0, true
		}
		sc.pos++
		return c, true
	}
	return 0, true
}

func (sc *pathScanner) hasNumber() bool {
	sc.skipSeparators()
	if sc.pos >= len(sc.s) {
		return false
	}
	c := sc.s[sc.pos]
	return c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9')
}

func (sc *pathScanner) number() (float64, error) {
	sc.skipSeparators()
	start := sc.pos
	if sc.pos < len(sc.s) && (sc.s[sc.pos] == '-' || sc.s[sc.pos] == '+') {
		sc.pos++
	}
	dot, digits := false, false
	for sc.pos < len(sc.s) {
		c := sc.s[sc.pos]
		switch {
		case c >= '0' && c <= '9':
			digits = true
		case c == '.' && !dot:
			dot = true
		case (c == 'e' || c == 'E') && digits:
			sc.pos++
			if sc.pos < len(sc.s) && (sc.s[sc.pos] == '-' || sc.s[sc.pos] == '+') {
				sc.pos++
			}
			for sc.pos < len(sc.s) && sc.s[sc.pos] >= '0' && sc.s[sc.pos] <= '9' {
				sc.pos++
			}
			return strconv.ParseFloat(sc.s[start:sc.pos], 64)
		default:
			if !digits {
				return 0, fmt.Errorf("expected number at offset %d in path", start)
			}
			return strconv.ParseFloat(sc.s[start:sc.pos], 64)
		}
		sc.pos++
	}
	if !digits {
		return 0, fmt.Errorf("expected number at offset %d in path", start)
	}
	return strconv.ParseFloat(sc.s[start:sc.pos], 64)
}

func (sc *pathScanner) numbers(n int) ([]float64, error) {
	out := make([]float64, n)
	for i := range out {
		v, err := sc.number()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// parsePath converts SVG path data into absolute segments. Arcs are not
// supported. Quadratic curves are raised to cubics.
func parsePath(d string) ([]Segment, error) {
	sc := &pathScanner{s: d}
	var (
		segs       []Segment
		cur, start Point
		lastCtrl   Point
		lastOp     byte
		cmd        byte
	)

	for {
		c, ok := sc.command()
		if !ok {
			break
		}
		if c != 0 {
			cmd = c
		} else if cmd == 0 {
			return nil, fmt.Errorf("path data must start with a command")
		}

		rel := cmd >= 'a'
		base := Point{}
		if rel {
			base = cur
		}
		abs := func(x, y float64) Point { return Point{X: base.X + x, Y: base.Y + y} }
		upper := cmd &^ 0x20

		switch upper {
		case 'Z':
			segs = append(segs, Segment{Op: Close})
			cur = start
			lastOp = 'Z'
			cmd = 0
			continue
		case 'M':
			v, err := sc.numbers(2)
			if err != nil {
				return nil, err
			}
			cur = abs(v[0], v[1])
			start = cur
			segs = append(segs, Segment{Op: MoveTo, Pts: [3]Point{cur}})
			// Further pairs after a moveto are implicit linetos.
			if rel {
				cmd = 'l'
			} else {
				cmd = 'L'
			}
		case 'L':
			v, err := sc.numbers(2)
			if err != nil {
				return nil, err
			}
			cur = abs(v[0], v[1])
			segs = append(segs, Segment{Op: LineTo, Pts: [3]Point{cur}})
		case 'H':
			v, err := sc.number()
			if err != nil {
				return nil, err
			}
			if rel {
				cur.X += v
			} else {
				cur.X = v
			}
			segs = append(segs, Segment{Op: LineTo, Pts: [3]Point{cur}})
		case 'V':
			v, err := sc.number()
			if err != nil {
				return nil, err
			}
			if rel {
				cur.Y += v
			} else {
				cur.Y = v
			}
			segs = append(segs, Segment{Op: LineTo, Pts: [3]Point{cur}})
		case 'C':
			v, err := sc.numbers(6)
			if err != nil {
				return nil, err
			}
			c1, c2, end := abs(v[0], v[1]), abs(v[2], v[3]), abs(v[4], v[5])
			segs = append(segs, Segment{Op: CubicTo, Pts: [3]Point{c1, c2, end}})
			cur, lastCtrl = end, c2
		case 'S':
			v, err := sc.numbers(4)
			if err != nil {
				return nil, err
			}
			c1 := cur
			if lastOp == 'C' || lastOp == 'S' {
				c1 = Point{X: 2*cur.X - lastCtrl.X, Y: 2*cur.Y - lastCtrl.Y}
			}
			c2, end := abs(v[0], v[1]), abs(v[2], v[3])
			segs = append(segs, Segment{Op: CubicTo, Pts: [3]Point{c1, c2, end}})
			cur, lastCtrl = end, c2
		case 'Q':
			v, err := sc.numbers(4)
			if err != nil {
				return nil, err
			}
			q, end := abs(v[0], v[1]), abs(v[2], v[3])
			segs = append(segs, quadToCubic(cur, q, end))
			cur, lastCtrl = end, q
		case 'T':
			v, err := sc.numbers(2)
			if err != nil {
				return nil, err
			}
			q := cur
			if lastOp == 'Q' || lastOp == 'T' {
				q = Point{X: 2*cur.X - lastCtrl.X, Y: 2*cur.Y - lastCtrl.Y}
			}
			end := abs(v[0], v[1])
			segs = append(segs, quadToCubic(cur, q, end))
			cur, lastCtrl = end, q
		default:
			return nil, fmt.Errorf("unsupported path command %q", string(cmd))
		}
		lastOp = upper
		if upper == 'M' {
			lastOp = 'L'
		}
		if !sc.hasNumber() {
			cmd = 0
		}
	}
	return segs, nil
}

func quadToCubic(p0, q, p1 Point) Segment {
	c1 := Point{X: p0.X + 2.0/3*(q.X-p0.X), Y: p0.Y + 2.0/3*(q.Y-p0.Y)}
	c2 := Point{X: p1.X + 2.0/3*(q.X-p1.X), Y: p1.Y + 2.0/3*(q.Y-p1.Y)}
	return Segment{Op: CubicTo, Pts: [3]Point{c1, c2, p1}}
}
