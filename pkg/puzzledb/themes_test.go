package puzzledb

import (
	"slices"
	"testing"
)

func TestCanonical(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"fork", "fork", true},
		{"MATEIN2", "mateIn2", true},
		{" backrankmate ", "backRankMate", true},
		{"xrayattack", "xRayAttack", true},
		{"notATheme", "", false},
	}
	for _, tt := range tests {
		got, ok := Canonical(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Canonical(%q) = %q, %v, want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestCanonicalAll(t *testing.T) {
	known, unknown := CanonicalAll([]string{"Fork", "fork", "PIN", "bogus"})
	if !slices.Equal(known, []string{"fork", "pin"}) {
		t.Errorf("CanonicalAll() known = %v", known)
	}
	if !slices.Equal(unknown, []string{"bogus"}) {
		t.Errorf("CanonicalAll() unknown = %v", unknown)
	}
}

func TestAllThemes(t *testing.T) {
	all := AllThemes()
	if !slices.IsSorted(all) {
		t.Error("AllThemes() is not sorted")
	}
	if len(slices.Compact(slices.Clone(all))) != len(all) {
		t.Error("AllThemes() has duplicates")
	}
	for _, want := range []string{"mate", "mateIn5", "zugzwang", "superGM", "queenRookEndgame"} {
		if !slices.Contains(all, want) {
			t.Errorf("AllThemes() lacks %q", want)
		}
	}
}

func TestIsMateTheme(t *testing.T) {
	for theme, want := range map[string]bool{
		"mate": true, "mateIn3": true, "smotheredMate": true,
		"fork": false, "endgame": false,
	} {
		if got := isMateTheme(theme); got != want {
			t.Errorf("isMateTheme(%q) = %v, want %v", theme, got, want)
		}
	}
}
