package layout

import (
	"strconv"
	"strings"

	"github.com/matzehuels/puzzlesheet/pkg/errors"
)

// Variant selects a grid shape. The zero value is [Auto].
type Variant int

const (
	// Auto lets [Select] choose a grid from the diagram count.
	Auto Variant = iota
	SixCell
	TwelveCell
)

// MarkerOffset is the gap between a diagram's right edge and its
// side-to-move marker.
const MarkerOffset = 0.12 * Cm

type grid struct {
	columns, rows int
	hgap, vgap    float64
	radius        float64
	sideMargin    float64
}

var grids = map[Variant]grid{
	SixCell: {
		columns: 2, rows: 3,
		hgap: 1.5 * Cm, vgap: 2 * Cm,
		radius:     0.26 * Cm,
		sideMargin: 2 * Cm,
	},
	TwelveCell: {
		columns: 3, rows: 4,
		hgap: 1 * Cm, vgap: 1.2 * Cm,
		radius:     0.18 * Cm,
		sideMargin: 1.5 * Cm,
	},
}

// Valid reports whether v names a concrete grid.
func (v Variant) Valid() bool {
	_, ok := grids[v]
	return ok
}

// Capacity is the number of cells on one page.
func (v Variant) Capacity() int {
	g := grids[v]
	return g.columns * g.rows
}

// Columns returns the number of cells per row.
func (v Variant) Columns() int { return grids[v].columns }

// Rows returns the number of rows per page.
func (v Variant) Rows() int { return grids[v].rows }

// Gaps returns the horizontal and vertical space between neighbouring cells.
func (v Variant) Gaps() (horizontal, vertical float64) {
	g := grids[v]
	return g.hgap, g.vgap
}

// MarkerRadius returns the radius of the side-to-move marker.
func (v Variant) MarkerRadius() float64 { return grids[v].radius }

// Geometry returns base with the variant's side margins applied.
func (v Variant) Geometry(base Geometry) Geometry {
	return base.WithSideMargins(grids[v].sideMargin)
}

// CellWidth returns the side length of one square cell on g: the largest
// size at which both the columns fit the content width and the rows fit the
// content height. The geometry must already carry the variant's margins.
func (v Variant) CellWidth(g Geometry) float64 {
	gr := grids[v]
	wide := (g.PageWidth - g.UsableWidthMargins() - float64(gr.columns-1)*gr.hgap) / float64(gr.columns)
	tall := (g.ContentTop() - g.ContentBottom() - float64(gr.rows-1)*gr.vgap) / float64(gr.rows)
	return min(wide, tall)
}

// Fits reports whether the grid has room for cells on base. A header band
// large enough to leave no content height is rejected with INVALID_INPUT.
func (v Variant) Fits(base Geometry) error {
	if w := v.CellWidth(v.Geometry(base)); w <= 0 {
		return errors.New(errors.ErrCodeInvalidInput,
			"%v-cell grid does not fit the page with a %gpt header", v, base.HeaderFontSize)
	}
	return nil
}

func (v Variant) String() string {
	switch v {
	case Auto:
		return "auto"
	case SixCell:
		return "6"
	case TwelveCell:
		return "12"
	}
	return "Variant(" + strconv.Itoa(int(v)) + ")"
}

// ParseVariant parses a layout selector: "auto" or "" for [Auto], "6" or
// "six" for [SixCell], "12" or "twelve" for [TwelveCell].
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Auto, nil
	case "6", "six", "6-cell", "sixcell":
		return SixCell, nil
	case "12", "twelve", "12-cell", "twelvecell":
		return TwelveCell, nil
	}
	return Auto, errors.New(errors.ErrCodeUnknownLayout, "unknown layout %q (want auto, 6 or 12)", s)
}

// Select resolves the variant for n diagrams. An explicit variant wins;
// [Auto] picks [SixCell] for n ≤ 6 and [TwelveCell] otherwise.
func Select(explicit Variant, n int) (Variant, error) {
	switch {
	case explicit == Auto && n <= SixCell.Capacity():
		return SixCell, nil
	case explicit == Auto:
		return TwelveCell, nil
	case !explicit.Valid():
		return Auto, errors.New(errors.ErrCodeUnknownLayout, "unknown layout variant %d", int(explicit))
	}
	return explicit, nil
}
