package puzzledb

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/puzzlesheet/pkg/errors"
)

func testStore() *Store {
	return NewStore("test", []*Puzzle{
		puzzle("d", 4, 2100, 6, []string{"pin", "middlegame", "long"}, []string{"French_Defense"}),
		puzzle("a", 1, 1000, 2, []string{"fork", "endgame", "short"}, nil),
		puzzle("b", 2, 1400, 4, []string{"fork", "pin", "middlegame"}, []string{"Sicilian_Defense_Najdorf_Variation"}),
		puzzle("c", 3, 1800, 4, []string{"skewer", "endgame", "xRayAttack"}, []string{"Sicilian_Defense", "Sicilian_Defense_Alapin_Variation"}),
		puzzle("a", 9, 9999, 2, nil, nil),
	})
}

func TestNewStore(t *testing.T) {
	s := testStore()
	if got, want := s.IDs(), []string{"a", "b", "c", "d"}; !slices.Equal(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}
	if p, ok := s.PuzzleByID("a"); !ok || p.Rating != 1000 {
		t.Errorf("PuzzleByID(a) = %+v, %v, want first occurrence", p, ok)
	}
	if _, ok := s.PuzzleByID("zz"); ok {
		t.Error("PuzzleByID(zz) found a puzzle")
	}
	if got := s.DisplayThemes(); !slices.Equal(got, []string{Mixed}) {
		t.Errorf("DisplayThemes() of unfiltered store = %v, want [mixed]", got)
	}
}

func TestStoreFilters(t *testing.T) {
	s := testStore()
	tests := []struct {
		name string
		pred Predicate
		want []string
	}{
		{"rating", RatingBetween(1400, 1800), []string{"b", "c"}},
		{"rating inclusive", RatingBetween(1000, 1000), []string{"a"}},
		{"moves", MovesBetween(2, 2), []string{"b", "c"}},
		{"moves wide", MovesBetween(1, 3), []string{"a", "b", "c", "d"}},
		{"themes any", ThemesAny("fork", "skewer"), []string{"a", "b", "c"}},
		{"themes all", ThemesAll("fork", "pin"), []string{"b"}},
		{"themes all duplicate", ThemesAll("pin", "pin"), []string{"b", "d"}},
		{"themes none", ThemesNone("fork", "endgame"), []string{"d"}},
		{"themes none empty", ThemesNone(), []string{"a", "b", "c", "d"}},
		{"whole word only", ThemesAny("xRay"), nil},
		{"openings any", OpeningsAny("Sicilian_Defense"), []string{"c"}},
		{"openings any variation", OpeningsAny("Sicilian_Defense_Najdorf_Variation", "French_Defense"), []string{"b", "d"}},
		{"openings all", OpeningsAll("Sicilian_Defense", "Sicilian_Defense_Alapin_Variation"), []string{"c"}},
		{"no match", ThemesAny("zugzwang"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Where(tt.pred).IDs()
			if len(got) == 0 {
				got = nil
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Where() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStoreWhereKeepsDescription(t *testing.T) {
	s := testStore()
	s.Themes = []string{"fork"}
	s.Parents = []string{"p0"}
	got := s.Where(RatingBetween(0, 1500))
	if got.Name != "test" || !slices.Equal(got.Themes, []string{"fork"}) || !slices.Equal(got.Parents, []string{"p0"}) {
		t.Errorf("Where() = %q %v %v, want description kept", got.Name, got.Themes, got.Parents)
	}
	if s.Len() != 4 {
		t.Errorf("Where() modified the receiver, Len() = %d", s.Len())
	}
}

func TestDisplayThemes(t *testing.T) {
	tests := []struct {
		themes []string
		want   []string
	}{
		{nil, []string{Mixed}},
		{[]string{"pin"}, []string{"pin"}},
		{[]string{"skewer", "fork", "pin", "mate"}, []string{"fork", "mate", "pin", "skewer"}},
		{[]string{"a", "b", "c", "d", "e"}, []string{Mixed}},
	}
	for _, tt := range tests {
		s := NewStore("x", nil)
		s.Themes = tt.themes
		if got := s.DisplayThemes(); !slices.Equal(got, tt.want) {
			t.Errorf("DisplayThemes(%v) = %v, want %v", tt.themes, got, tt.want)
		}
	}
}

func TestUnion(t *testing.T) {
	s := testStore()
	forks := s.Where(ThemesAny("fork"))
	forks.Themes = []string{"fork"}
	forks.OpeningTags = []string{"Sicilian_Defense"}
	pins := s.Where(ThemesAny("pin"))
	pins.Themes = []string{"pin"}
	pins.OpeningTags = []string{Mixed}

	u := Union("forks and pins", pins, forks)
	if got, want := u.IDs(), []string{"a", "b", "d"}; !slices.Equal(got, want) {
		t.Errorf("Union().IDs() = %v, want %v", got, want)
	}
	if u.Name != "forks and pins" {
		t.Errorf("Union().Name = %q", u.Name)
	}
	if !slices.Equal(u.Themes, []string{"fork", "pin"}) {
		t.Errorf("Union().Themes = %v, want [fork pin]", u.Themes)
	}
	if !slices.Equal(u.OpeningTags, []string{Mixed}) {
		t.Errorf("Union().OpeningTags = %v, want [mixed]", u.OpeningTags)
	}
}

func TestCombineTags(t *testing.T) {
	tests := []struct {
		a, b, want []string
	}{
		{[]string{"fork"}, []string{"pin", "fork"}, []string{"fork", "pin"}},
		{[]string{Mixed}, []string{"pin"}, []string{Mixed}},
		{[]string{"pin"}, []string{Mixed}, []string{Mixed}},
		{nil, nil, []string{}},
	}
	for _, tt := range tests {
		got := CombineTags(tt.a, tt.b)
		if !slices.Equal(got, tt.want) {
			t.Errorf("CombineTags(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestStats(t *testing.T) {
	s := testStore()
	want := Stats{Count: 4, MinRating: 1000, MaxRating: 2100, MedianRating: 1600}
	if got := s.Stats(); got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
	odd := s.Where(RatingBetween(0, 1800))
	if got := odd.Stats().MedianRating; got != 1400 {
		t.Errorf("Stats().MedianRating = %v, want 1400", got)
	}
	if got := NewStore("empty", nil).Stats(); got != (Stats{}) {
		t.Errorf("Stats() of empty store = %+v", got)
	}
}

func TestSample(t *testing.T) {
	s := testStore()
	rng := rand.New(rand.NewPCG(1, 2))

	for n := 0; n <= s.Len(); n++ {
		picks, err := s.Sample(n, rng)
		if err != nil {
			t.Fatalf("Sample(%d) error = %v", n, err)
		}
		if len(picks) != n {
			t.Errorf("len(Sample(%d)) = %d", n, len(picks))
		}
		seen := map[string]bool{}
		for _, p := range picks {
			if seen[p.ID] {
				t.Errorf("Sample(%d) repeated %s", n, p.ID)
			}
			seen[p.ID] = true
		}
	}

	if _, err := s.Sample(5, rng); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Sample(5) error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestSampleDeterministic(t *testing.T) {
	s := testStore()
	ids := func() []string {
		picks, err := s.Sample(3, rand.New(rand.NewPCG(42, 42)))
		if err != nil {
			t.Fatal(err)
		}
		out := make([]string, len(picks))
		for i, p := range picks {
			out[i] = p.ID
		}
		return out
	}
	if a, b := ids(), ids(); !slices.Equal(a, b) {
		t.Errorf("Sample() with equal seeds = %v and %v", a, b)
	}
}
