package puzzledb

import (
	"math"

	"github.com/matzehuels/puzzlesheet/pkg/errors"
)

// Rating bounds accepted by the filter command. Lichess puzzle ratings
// stay inside this range.
const (
	MinRating = 399
	MaxRating = 3333

	DefaultMinRating = 600
	DefaultMaxRating = 3000
)

// Criteria is the full set of filters psg filter understands. Zero values
// mean "no constraint".
type Criteria struct {
	MinRating, MaxRating int
	MinMoves, MaxMoves   int

	AnyThemes  []string
	AllThemes  []string
	NoThemes   []string
	AnyOpening []string
	AllOpening []string
}

// Normalize clamps the rating range, canonicalizes theme names and rejects
// unknown themes and inverted ranges.
func (c Criteria) Normalize() (Criteria, error) {
	if c.MinRating != 0 || c.MaxRating != 0 {
		if c.MaxRating == 0 {
			c.MaxRating = MaxRating
		}
		c.MinRating = clamp(c.MinRating, MinRating, MaxRating)
		c.MaxRating = clamp(c.MaxRating, MinRating, MaxRating)
		if c.MinRating > c.MaxRating {
			return c, errors.New(errors.ErrCodeInvalidInput,
				"minimum rating %d is above maximum rating %d", c.MinRating, c.MaxRating)
		}
	}
	if c.MinMoves < 0 || (c.MaxMoves != 0 && c.MinMoves > c.MaxMoves) {
		return c, errors.New(errors.ErrCodeInvalidInput, "invalid move range %d..%d", c.MinMoves, c.MaxMoves)
	}
	for _, list := range []*[]string{&c.AnyThemes, &c.AllThemes, &c.NoThemes} {
		known, unknown := CanonicalAll(*list)
		if len(unknown) > 0 {
			return c, errors.New(errors.ErrCodeInvalidInput, "unknown theme %q", unknown[0])
		}
		*list = known
	}
	return c, nil
}

// Predicates converts c into store predicates.
func (c Criteria) Predicates() []Predicate {
	var preds []Predicate
	if c.MinRating != 0 || c.MaxRating != 0 {
		preds = append(preds, RatingBetween(c.MinRating, c.MaxRating))
	}
	if c.MinMoves != 0 || c.MaxMoves != 0 {
		hi := c.MaxMoves
		if hi == 0 {
			hi = math.MaxInt
		}
		preds = append(preds, MovesBetween(c.MinMoves, hi))
	}
	if len(c.AnyThemes) > 0 {
		preds = append(preds, ThemesAny(c.AnyThemes...))
	}
	if len(c.AllThemes) > 0 {
		preds = append(preds, ThemesAll(c.AllThemes...))
	}
	if len(c.NoThemes) > 0 {
		preds = append(preds, ThemesNone(c.NoThemes...))
	}
	if len(c.AnyOpening) > 0 {
		preds = append(preds, OpeningsAny(c.AnyOpening...))
	}
	if len(c.AllOpening) > 0 {
		preds = append(preds, OpeningsAll(c.AllOpening...))
	}
	return preds
}

// Apply filters s and describes the result with the themes and openings
// that were asked for.
func (c Criteria) Apply(s *Store) *Store {
	out := s.Where(c.Predicates()...)
	if themes := CombineTags(c.AnyThemes, c.AllThemes); len(themes) > 0 {
		out.Themes = themes
	}
	if tags := CombineTags(c.AnyOpening, c.AllOpening); len(tags) > 0 {
		out.OpeningTags = tags
	}
	return out
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
