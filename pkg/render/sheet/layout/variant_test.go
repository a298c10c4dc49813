package layout

import (
	"fmt"
	"testing"

	"github.com/matzehuels/puzzlesheet/pkg/errors"
)

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in      string
		want    Variant
		wantErr bool
	}{
		{"", Auto, false},
		{"auto", Auto, false},
		{"6", SixCell, false},
		{"Six", SixCell, false},
		{"12", TwelveCell, false},
		{" twelve ", TwelveCell, false},
		{"9", Auto, true},
		{"grid", Auto, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVariant(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseVariant(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeUnknownLayout) {
				t.Errorf("ParseVariant(%q) code = %v, want %v", tt.in, errors.GetCode(err), errors.ErrCodeUnknownLayout)
			}
			if got != tt.want {
				t.Errorf("ParseVariant(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name     string
		explicit Variant
		n        int
		want     Variant
		wantErr  bool
	}{
		{"auto empty", Auto, 0, SixCell, false},
		{"auto six", Auto, 6, SixCell, false},
		{"auto seven", Auto, 7, TwelveCell, false},
		{"auto many", Auto, 40, TwelveCell, false},
		{"explicit six with many", SixCell, 12, SixCell, false},
		{"explicit twelve with few", TwelveCell, 1, TwelveCell, false},
		{"unknown", Variant(7), 3, Auto, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Select(tt.explicit, tt.n)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Select() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Select() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVariantConstants(t *testing.T) {
	tests := []struct {
		v          Variant
		capacity   int
		cols, rows int
		hgap, vgap float64
		radius     float64
		margin     float64
	}{
		{SixCell, 6, 2, 3, 1.5 * Cm, 2 * Cm, 0.26 * Cm, 2 * Cm},
		{TwelveCell, 12, 3, 4, 1 * Cm, 1.2 * Cm, 0.18 * Cm, 1.5 * Cm},
	}
	for _, tt := range tests {
		t.Run(tt.v.String(), func(t *testing.T) {
			if tt.v.Capacity() != tt.capacity {
				t.Errorf("Capacity() = %v, want %v", tt.v.Capacity(), tt.capacity)
			}
			if tt.v.Columns() != tt.cols || tt.v.Rows() != tt.rows {
				t.Errorf("grid = %dx%d, want %dx%d", tt.v.Columns(), tt.v.Rows(), tt.cols, tt.rows)
			}
			h, v := tt.v.Gaps()
			if !approx(h, tt.hgap) || !approx(v, tt.vgap) {
				t.Errorf("Gaps() = %v, %v, want %v, %v", h, v, tt.hgap, tt.vgap)
			}
			if !approx(tt.v.MarkerRadius(), tt.radius) {
				t.Errorf("MarkerRadius() = %v, want %v", tt.v.MarkerRadius(), tt.radius)
			}
			if g := tt.v.Geometry(DefaultGeometry()); !approx(g.MarginLeft, tt.margin) || !approx(g.MarginRight, tt.margin) {
				t.Errorf("Geometry() margins = %v/%v, want %v", g.MarginLeft, g.MarginRight, tt.margin)
			}
		})
	}
}

func TestCellWidth(t *testing.T) {
	base := DefaultGeometry()

	six := SixCell.Geometry(base)
	wantSix := (six.ContentTop() - six.ContentBottom() - 2*2*Cm) / 3
	if got := SixCell.CellWidth(six); !approx(got, wantSix) {
		t.Errorf("SixCell.CellWidth() = %v, want %v", got, wantSix)
	}

	twelve := TwelveCell.Geometry(base)
	wantTwelve := (A4Width - 3*Cm - 2*Cm) / 3
	if got := TwelveCell.CellWidth(twelve); !approx(got, wantTwelve) {
		t.Errorf("TwelveCell.CellWidth() = %v, want %v", got, wantTwelve)
	}
}

func TestFits(t *testing.T) {
	tests := []struct {
		v       Variant
		size    float64
		wantErr bool
	}{
		{SixCell, 18, false},
		{TwelveCell, 18, false},
		{TwelveCell, 72, false},
		{SixCell, 800, true},
		{TwelveCell, 800, true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v/%g", tt.v, tt.size), func(t *testing.T) {
			err := tt.v.Fits(NewGeometry(tt.size))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Fits() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Fits() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
			}
		})
	}
}
