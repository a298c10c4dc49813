package storage

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/puzzlesheet/pkg/errors"
	"github.com/matzehuels/puzzlesheet/pkg/puzzledb"
	"github.com/matzehuels/puzzlesheet/pkg/sheet"
)

// PuzzleFinder resolves puzzle ids, typically a *puzzledb.Database.
type PuzzleFinder interface {
	PuzzleByID(id string) (*puzzledb.Puzzle, bool)
}

type sheetFile struct {
	Name        *string       `json:"name"`
	Elements    []elementFile `json:"elements"`
	LeftHeader  *string       `json:"left_header"`
	RightHeader *string       `json:"right_header"`
	FooterText  string        `json:"footer_text"`
}

type elementFile struct {
	PuzzleID string `json:"PuzzleId,omitempty"`
	FEN      string `json:"FEN,omitempty"`
}

type storeFile struct {
	Name        string   `json:"name"`
	Themes      []string `json:"themes"`
	OpeningTags []string `json:"opening_tags"`
	PuzzleIDs   []string `json:"puzzle_ids"`
	Parents     []string `json:"parents,omitempty"`
}

// WriteSheet encodes s in the sheet save format.
func WriteSheet(s *sheet.Sheet, w io.Writer) error {
	out := sheetFile{
		Name:        &s.Name,
		Elements:    make([]elementFile, len(s.Elements)),
		LeftHeader:  &s.LeftHeader,
		RightHeader: &s.RightHeader,
		FooterText:  s.Footer,
	}
	for i, e := range s.Elements {
		out.Elements[i] = elementFile{PuzzleID: e.PuzzleID, FEN: e.FEN}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadSheet decodes a sheet. name, elements and both headers are required.
//
// An element needs a FEN, or a puzzle id that finder knows (finder may be
// nil). Elements with neither are skipped and counted in skipped.
func ReadSheet(r io.Reader, finder PuzzleFinder) (s *sheet.Sheet, skipped int, err error) {
	var in sheetFile
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode sheet")
	}
	if in.Name == nil || in.Elements == nil || in.LeftHeader == nil || in.RightHeader == nil {
		return nil, 0, errors.New(errors.ErrCodeInvalidInput, "sheet file is missing required data")
	}

	s = &sheet.Sheet{
		Name:        *in.Name,
		LeftHeader:  *in.LeftHeader,
		RightHeader: *in.RightHeader,
		Footer:      in.FooterText,
	}
	for _, ef := range in.Elements {
		e, ok, err := resolveElement(ef, finder)
		if err != nil {
			return nil, 0, err
		}
		if !ok {
			skipped++
			continue
		}
		s.Elements = append(s.Elements, e)
	}
	if len(s.Elements) > sheet.MaxElements {
		return nil, 0, errors.New(errors.ErrCodeSheetFull,
			"sheet %q has %d elements, at most %d fit", s.Name, len(s.Elements), sheet.MaxElements)
	}
	return s, skipped, nil
}

func resolveElement(ef elementFile, finder PuzzleFinder) (sheet.Element, bool, error) {
	if ef.FEN != "" {
		e, err := sheet.FromFEN(ef.FEN)
		if err != nil {
			return e, false, err
		}
		e.PuzzleID = ef.PuzzleID
		return e, true, nil
	}
	if ef.PuzzleID == "" || finder == nil {
		return sheet.Element{}, false, nil
	}
	p, ok := finder.PuzzleByID(ef.PuzzleID)
	if !ok {
		return sheet.Element{}, false, nil
	}
	e, err := sheet.FromPuzzle(p)
	return e, err == nil, err
}

// WriteStore encodes the description and puzzle ids of st.
func WriteStore(st *puzzledb.Store, w io.Writer) error {
	out := storeFile{
		Name:        st.Name,
		Themes:      st.Themes,
		OpeningTags: st.OpeningTags,
		PuzzleIDs:   st.IDs(),
		Parents:     st.Parents,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadStore decodes a store and rebuilds it from finder. Ids finder does
// not know, because the database changed, are dropped and counted.
func ReadStore(r io.Reader, finder PuzzleFinder) (st *puzzledb.Store, missing int, err error) {
	var in storeFile
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode store")
	}
	if in.Name == "" {
		return nil, 0, errors.New(errors.ErrCodeInvalidInput, "store file is missing its name")
	}
	puzzles := make([]*puzzledb.Puzzle, 0, len(in.PuzzleIDs))
	for _, id := range in.PuzzleIDs {
		if p, ok := finder.PuzzleByID(id); ok {
			puzzles = append(puzzles, p)
		} else {
			missing++
		}
	}
	st = puzzledb.NewStore(in.Name, puzzles)
	st.Themes = in.Themes
	st.OpeningTags = in.OpeningTags
	st.Parents = in.Parents
	return st, missing, nil
}
