package sheet

import (
	"regexp"

	"github.com/matzehuels/puzzlesheet/pkg/position"
	"github.com/matzehuels/puzzlesheet/pkg/puzzledb"
)

var puzzleIDPattern = regexp.MustCompile(`^[A-Za-z0-9]{5,6}$`)

// IsPuzzleID reports whether ref looks like a Lichess puzzle id rather
// than a FEN.
func IsPuzzleID(ref string) bool {
	return puzzleIDPattern.MatchString(ref)
}

// Element is one diagram on a sheet.
type Element struct {
	PuzzleID string `json:"PuzzleId,omitempty" yaml:"puzzle_id,omitempty"`
	FEN      string `json:"FEN" yaml:"fen"` // position shown to the solver
}

// FromPuzzle creates an element showing the puzzle after its setup move.
func FromPuzzle(p *puzzledb.Puzzle) (Element, error) {
	fen, err := p.Position()
	if err != nil {
		return Element{}, err
	}
	return Element{PuzzleID: p.ID, FEN: fen}, nil
}

// FromFEN creates an element for a free position.
func FromFEN(fen string) (Element, error) {
	canon, err := position.Canonical(fen)
	if err != nil {
		return Element{}, err
	}
	return Element{FEN: canon}, nil
}

// Label is how the element is referred to in listings.
func (e Element) Label() string {
	if e.PuzzleID != "" {
		return e.PuzzleID
	}
	return e.FEN
}
