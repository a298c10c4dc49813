package puzzledb

import (
	"slices"

	"github.com/matzehuels/puzzlesheet/pkg/position"
)

// Puzzle is one row of the Lichess puzzle database.
type Puzzle struct {
	ID              string
	FEN             string   // position before the opponent's setup move
	Moves           []string // UCI moves, setup move first
	Rating          int
	RatingDeviation int
	Popularity      int
	NbPlays         int
	Themes          []string
	GameURL         string
	OpeningTags     []string

	// Seq is the row number in the source file. Stores are ordered by it.
	Seq int
}

// PlayerMoves is the number of moves the solver has to find. The first
// move of the line belongs to the opponent.
func (p *Puzzle) PlayerMoves() int {
	return len(p.Moves) / 2
}

// Position returns the FEN the solver sees: the stored position with the
// setup move applied.
func (p *Puzzle) Position() (string, error) {
	return position.Puzzle(p.FEN, p.Moves)
}

// HasTheme reports whether the puzzle is tagged with theme.
func (p *Puzzle) HasTheme(theme string) bool {
	return slices.Contains(p.Themes, theme)
}

// Lichess returns the training URL of the puzzle.
func (p *Puzzle) Lichess() string {
	return "https://lichess.org/training/" + p.ID
}
