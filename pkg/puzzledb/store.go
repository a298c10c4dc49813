package puzzledb

import (
	"cmp"
	"math/rand/v2"
	"regexp"
	"slices"
	"strings"

	"github.com/matzehuels/puzzlesheet/pkg/errors"
)

// maxDisplayThemes is the most themes [Store.DisplayThemes] lists before
// falling back to "mixed".
const maxDisplayThemes = 4

// Store is an immutable, named set of puzzles ordered by [Puzzle.Seq].
type Store struct {
	Name        string
	Themes      []string // descriptive, not a filter
	OpeningTags []string
	Parents     []string // ids of the stores this one was derived from

	puzzles []*Puzzle
	byID    map[string]*Puzzle
}

// NewStore builds a store from puzzles. Duplicate ids keep the first
// occurrence. A new store describes itself with every theme and the
// "mixed" opening tag until a filter narrows it down.
func NewStore(name string, puzzles []*Puzzle) *Store {
	s := &Store{
		Name:        name,
		Themes:      AllThemes(),
		OpeningTags: []string{Mixed},
		byID:        make(map[string]*Puzzle, len(puzzles)),
	}
	s.puzzles = make([]*Puzzle, 0, len(puzzles))
	for _, p := range puzzles {
		if _, dup := s.byID[p.ID]; dup {
			continue
		}
		s.byID[p.ID] = p
		s.puzzles = append(s.puzzles, p)
	}
	slices.SortStableFunc(s.puzzles, func(a, b *Puzzle) int { return cmp.Compare(a.Seq, b.Seq) })
	return s
}

// derive returns a store over puzzles with s's name and description.
func (s *Store) derive(puzzles []*Puzzle) *Store {
	d := NewStore(s.Name, puzzles)
	d.Themes = slices.Clone(s.Themes)
	d.OpeningTags = slices.Clone(s.OpeningTags)
	d.Parents = slices.Clone(s.Parents)
	return d
}

// Len returns the number of puzzles.
func (s *Store) Len() int { return len(s.puzzles) }

// Puzzles returns the puzzles in database order.
func (s *Store) Puzzles() []*Puzzle { return slices.Clone(s.puzzles) }

// IDs returns the puzzle ids in database order.
func (s *Store) IDs() []string {
	ids := make([]string, len(s.puzzles))
	for i, p := range s.puzzles {
		ids[i] = p.ID
	}
	return ids
}

// PuzzleByID looks up a puzzle.
func (s *Store) PuzzleByID(id string) (*Puzzle, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// Where returns the puzzles matching every predicate.
func (s *Store) Where(preds ...Predicate) *Store {
	out := make([]*Puzzle, 0, len(s.puzzles))
next:
	for _, p := range s.puzzles {
		for _, pred := range preds {
			if !pred(p) {
				continue next
			}
		}
		out = append(out, p)
	}
	return s.derive(out)
}

// DisplayThemes returns the themes worth printing: the themes themselves
// when there are one to four of them, otherwise just "mixed".
func (s *Store) DisplayThemes() []string {
	if n := len(s.Themes); n > 0 && n <= maxDisplayThemes {
		return slices.Sorted(slices.Values(s.Themes))
	}
	return []string{Mixed}
}

// Stats summarizes the ratings in a store.
type Stats struct {
	Count        int
	MinRating    int
	MaxRating    int
	MedianRating float64
}

// Stats computes rating statistics. An empty store has zero stats.
func (s *Store) Stats() Stats {
	if len(s.puzzles) == 0 {
		return Stats{}
	}
	ratings := make([]int, len(s.puzzles))
	for i, p := range s.puzzles {
		ratings[i] = p.Rating
	}
	slices.Sort(ratings)
	n := len(ratings)
	median := float64(ratings[n/2])
	if n%2 == 0 {
		median = float64(ratings[n/2-1]+ratings[n/2]) / 2
	}
	return Stats{Count: n, MinRating: ratings[0], MaxRating: ratings[n-1], MedianRating: median}
}

// Sample draws n distinct puzzles uniformly at random.
func (s *Store) Sample(n int, rng *rand.Rand) ([]*Puzzle, error) {
	total := len(s.puzzles)
	if n < 0 || n > total {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"cannot sample %d puzzles from %q, it holds %d", n, s.Name, total)
	}
	// Floyd's algorithm: O(n) regardless of the store size.
	chosen := make(map[int]bool, n)
	picks := make([]*Puzzle, 0, n)
	for j := total - n; j < total; j++ {
		t := rng.IntN(j + 1)
		if chosen[t] {
			t = j
		}
		chosen[t] = true
		picks = append(picks, s.puzzles[t])
	}
	rng.Shuffle(len(picks), func(i, j int) { picks[i], picks[j] = picks[j], picks[i] })
	return picks, nil
}

// Union returns the puzzles of a and b under a new name, in database
// order. Descriptive tags combine with [CombineTags].
func Union(name string, a, b *Store) *Store {
	puzzles := make([]*Puzzle, 0, a.Len()+b.Len())
	puzzles = append(puzzles, a.puzzles...)
	puzzles = append(puzzles, b.puzzles...)
	u := NewStore(name, puzzles)
	u.Themes = CombineTags(a.Themes, b.Themes)
	u.OpeningTags = CombineTags(a.OpeningTags, b.OpeningTags)
	return u
}

// CombineTags merges two descriptive tag sets. Either side being "mixed"
// makes the result "mixed".
func CombineTags(a, b []string) []string {
	if slices.Contains(a, Mixed) || slices.Contains(b, Mixed) {
		return []string{Mixed}
	}
	out := slices.Concat(a, b)
	slices.Sort(out)
	return slices.Compact(out)
}

// Predicate selects puzzles.
type Predicate func(*Puzzle) bool

// RatingBetween keeps puzzles rated within [lo, hi].
func RatingBetween(lo, hi int) Predicate {
	return func(p *Puzzle) bool { return p.Rating >= lo && p.Rating <= hi }
}

// MovesBetween keeps puzzles whose solution takes [lo, hi] player moves.
func MovesBetween(lo, hi int) Predicate {
	return func(p *Puzzle) bool {
		n := p.PlayerMoves()
		return n >= lo && n <= hi
	}
}

// ThemesAny keeps puzzles tagged with at least one of themes.
func ThemesAny(themes ...string) Predicate {
	m := newTagMatcher(themes)
	return func(p *Puzzle) bool { return m.any(p.Themes) }
}

// ThemesAll keeps puzzles tagged with every one of themes.
func ThemesAll(themes ...string) Predicate {
	m := newTagMatcher(themes)
	return func(p *Puzzle) bool { return m.all(p.Themes) }
}

// ThemesNone keeps puzzles tagged with none of themes.
func ThemesNone(themes ...string) Predicate {
	m := newTagMatcher(themes)
	return func(p *Puzzle) bool { return m.empty() || !m.any(p.Themes) }
}

// OpeningsAny keeps puzzles with at least one of the opening tags.
func OpeningsAny(tags ...string) Predicate {
	m := newTagMatcher(tags)
	return func(p *Puzzle) bool { return m.any(p.OpeningTags) }
}

// OpeningsAll keeps puzzles carrying every opening tag.
func OpeningsAll(tags ...string) Predicate {
	m := newTagMatcher(tags)
	return func(p *Puzzle) bool { return m.all(p.OpeningTags) }
}

// tagMatcher matches whole tags inside the space separated tag column.
// "Sicilian_Defense" does not match "Sicilian_Defense_Najdorf_Variation"
// because '_' is a word character.
type tagMatcher struct {
	either *regexp.Regexp
	each   []*regexp.Regexp
}

func newTagMatcher(tags []string) tagMatcher {
	var m tagMatcher
	var alts []string
	seen := make(map[string]bool)
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		pat := `\b` + regexp.QuoteMeta(t) + `\b`
		alts = append(alts, pat)
		m.each = append(m.each, regexp.MustCompile(pat))
	}
	if len(alts) > 0 {
		m.either = regexp.MustCompile(strings.Join(alts, "|"))
	}
	return m
}

func (m tagMatcher) empty() bool { return m.either == nil }

// any reports whether a tag matches. No tags means no constraint.
func (m tagMatcher) any(tags []string) bool {
	if m.empty() {
		return true
	}
	return m.either.MatchString(strings.Join(tags, " "))
}

func (m tagMatcher) all(tags []string) bool {
	s := strings.Join(tags, " ")
	for _, re := range m.each {
		if !re.MatchString(s) {
			return false
		}
	}
	return true
}
