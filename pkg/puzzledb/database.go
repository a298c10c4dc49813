package puzzledb

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/puzzlesheet/pkg/observability"
)

// MainStoreName names the store holding the whole quality-filtered database.
const MainStoreName = "Lichess Puzzle Database"

// Thresholds is the quality bar a puzzle must pass to be loaded.
type Thresholds struct {
	MaxRatingDeviation int `toml:"max_rating_deviation" yaml:"max_rating_deviation"`
	MinPopularity      int `toml:"min_popularity" yaml:"min_popularity"`
}

// DefaultThresholds drops puzzles with an unsettled rating or a poor
// reception.
var DefaultThresholds = Thresholds{MaxRatingDeviation: 80, MinPopularity: 20}

// Accept reports whether p passes the thresholds.
func (t Thresholds) Accept(p *Puzzle) bool {
	return p.RatingDeviation <= t.MaxRatingDeviation && p.Popularity >= t.MinPopularity
}

// Database is the quality-filtered puzzle database, split into mate and
// non-mate puzzles.
type Database struct {
	Source     string
	Thresholds Thresholds

	all    *Store
	mate   *Store
	noMate *Store
}

// New builds a database from already filtered puzzles.
func New(source string, puzzles []*Puzzle, t Thresholds) *Database {
	all := NewStore(MainStoreName, puzzles)
	var mate, noMate []*Puzzle
	for _, p := range all.puzzles {
		if slices.ContainsFunc(p.Themes, isMateTheme) {
			mate = append(mate, p)
		} else {
			noMate = append(noMate, p)
		}
	}
	return &Database{
		Source:     source,
		Thresholds: t,
		all:        all,
		mate:       NewStore("mate puzzles", mate),
		noMate:     NewStore("theme puzzles", noMate),
	}
}

// Load parses a CSV stream, keeping puzzles that pass t.
func Load(ctx context.Context, r io.Reader, source string, t Thresholds) (db *Database, err error) {
	start := time.Now()
	observability.Database().OnLoadStart(ctx, source)
	defer func() {
		n := 0
		if db != nil {
			n = db.Len()
		}
		observability.Database().OnLoadComplete(ctx, source, n, time.Since(start), err)
	}()

	puzzles, err := readCSV(ctx, r, t.Accept)
	if err != nil {
		return nil, err
	}
	return New(source, puzzles, t), nil
}

// Store returns the main store.
func (d *Database) Store() *Store { return d.all }

// Len returns the number of loaded puzzles.
func (d *Database) Len() int { return d.all.Len() }

// PuzzleByID looks up a puzzle in the whole database.
func (d *Database) PuzzleByID(id string) (*Puzzle, bool) { return d.all.PuzzleByID(id) }

// FindMate returns the mate-in-n puzzles. Lichess tags mates up to five
// moves; longer mates are found by the length of the solution.
func (d *Database) FindMate(n int) *Store {
	var s *Store
	if n <= 5 {
		theme := fmt.Sprintf("mateIn%d", n)
		s = d.mate.Where(ThemesAny(theme))
		s.Themes = []string{theme}
	} else {
		s = d.mate.Where(func(p *Puzzle) bool { return p.PlayerMoves() == n })
		s.Themes = []string{"mate"}
	}
	s.Name = fmt.Sprintf("mate in %d", n)
	return s
}

// FindThemes returns non-mate puzzles carrying every theme, optionally
// restricted to an opening tag.
func (d *Database) FindThemes(themes []string, openingTag string) *Store {
	preds := []Predicate{ThemesAll(themes...)}
	if openingTag != "" {
		preds = append(preds, OpeningsAny(openingTag))
	}
	s := d.noMate.Where(preds...)
	if len(themes) > 0 {
		s.Themes = slices.Clone(themes)
	}
	if openingTag != "" {
		s.OpeningTags = []string{openingTag}
	}
	s.Name = strings.Join(s.DisplayThemes(), ", ") + " puzzles"
	return s
}
