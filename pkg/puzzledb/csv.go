package puzzledb

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/puzzlesheet/pkg/errors"
)

// Columns lists the header of the Lichess puzzle CSV.
var Columns = []string{
	"PuzzleId", "FEN", "Moves", "Rating", "RatingDeviation",
	"Popularity", "NbPlays", "Themes", "GameUrl", "OpeningTags",
}

var requiredColumns = []string{"PuzzleId", "FEN", "Moves", "Rating"}

// checkEvery is how many rows are parsed between context checks.
const checkEvery = 10000

// ReadCSV parses every row of a Lichess puzzle CSV.
func ReadCSV(ctx context.Context, r io.Reader) ([]*Puzzle, error) {
	return readCSV(ctx, r, nil)
}

// readCSV parses r, keeping only rows accepted by keep (nil keeps all).
// Columns are located through the header row, which must be present.
func readCSV(ctx context.Context, r io.Reader, keep func(*Puzzle) bool) ([]*Puzzle, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeDatabase, "puzzle database is empty")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDatabase, err, "read header")
	}
	col, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var puzzles []*Puzzle
	for row := 1; ; row++ {
		if row%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeDatabase, err, "read row %d", row)
		}
		p, err := parseRow(rec, col)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeDatabase, err, "row %d", row)
		}
		p.Seq = row
		if keep == nil || keep(p) {
			puzzles = append(puzzles, p)
		}
	}
	return puzzles, nil
}

func columnIndex(header []string) (map[string]int, error) {
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, errors.New(errors.ErrCodeDatabase, "missing column %q in header", name)
		}
	}
	return col, nil
}

func parseRow(rec []string, col map[string]int) (*Puzzle, error) {
	field := func(name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}
	number := func(name string) (int, error) {
		s := strings.TrimSpace(field(name))
		if s == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("column %s: %w", name, err)
		}
		return n, nil
	}

	p := &Puzzle{
		ID:          field("PuzzleId"),
		FEN:         field("FEN"),
		Moves:       strings.Fields(field("Moves")),
		Themes:      strings.Fields(field("Themes")),
		GameURL:     field("GameUrl"),
		OpeningTags: strings.Fields(field("OpeningTags")),
	}
	if p.ID == "" {
		return nil, fmt.Errorf("empty puzzle id")
	}
	var err error
	if p.Rating, err = number("Rating"); err != nil {
		return nil, err
	}
	if p.RatingDeviation, err = number("RatingDeviation"); err != nil {
		return nil, err
	}
	if p.Popularity, err = number("Popularity"); err != nil {
		return nil, err
	}
	if p.NbPlays, err = number("NbPlays"); err != nil {
		return nil, err
	}
	return p, nil
}
