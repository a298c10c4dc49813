// Package position parses chess positions and applies puzzle setup moves.
//
// Positions are exchanged as FEN strings everywhere in puzzlesheet. This
// package is the only place that understands them, using
// github.com/notnil/chess for the rules.
package position

import (
	"strings"

	"github.com/notnil/chess"

	"github.com/matzehuels/puzzlesheet/pkg/errors"
)

// Start is the standard initial position.
const Start = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Normalize fills in missing FEN fields (castling, en passant and move
// counters) so that abbreviated positions like "8/8/8/8/8/8/8/K6k w" parse.
func Normalize(fen string) string {
	fields := strings.Fields(fen)
	defaults := []string{"", "w", "-", "-", "0", "1"}
	for len(fields) < len(defaults) && len(fields) > 0 {
		fields = append(fields, defaults[len(fields)])
	}
	return strings.Join(fields, " ")
}

// Parse parses fen into a position.
func Parse(fen string) (*chess.Position, error) {
	opt, err := chess.FEN(Normalize(fen))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFEN, err, "invalid FEN %q", fen)
	}
	return chess.NewGame(opt).Position(), nil
}

// Validate reports whether fen is a usable position.
func Validate(fen string) error {
	_, err := Parse(fen)
	return err
}

// Canonical returns fen in the form the rules engine prints it.
func Canonical(fen string) (string, error) {
	pos, err := Parse(fen)
	if err != nil {
		return "", err
	}
	return pos.String(), nil
}

// Puzzle returns the position a Lichess puzzle is solved from. Lichess
// stores the position before the opponent's last move, which is the first
// move of the solution line.
func Puzzle(fen string, moves []string) (string, error) {
	pos, err := Parse(fen)
	if err != nil {
		return "", err
	}
	if len(moves) == 0 {
		return pos.String(), nil
	}
	m, err := chess.UCINotation{}.Decode(pos, moves[0])
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidFEN, err, "illegal setup move %q for %q", moves[0], fen)
	}
	return pos.Update(m).String(), nil
}

// SecondToMove reports whether black moves next in fen.
func SecondToMove(fen string) (bool, error) {
	pos, err := Parse(fen)
	if err != nil {
		return false, err
	}
	return pos.Turn() == chess.Black, nil
}
