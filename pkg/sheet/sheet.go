package sheet

import (
	"slices"
	"strconv"

	"github.com/matzehuels/puzzlesheet/pkg/errors"
)

// MaxElements is the capacity of the largest page layout.
const MaxElements = 12

// Sheet is a printable page of puzzles.
type Sheet struct {
	Name        string
	Elements    []Element
	LeftHeader  string
	RightHeader string
	Footer      string
}

// New creates an empty sheet.
func New(name string) *Sheet {
	return &Sheet{Name: name}
}

// Len returns the number of elements.
func (s *Sheet) Len() int { return len(s.Elements) }

// Free returns how many more elements fit.
func (s *Sheet) Free() int { return MaxElements - len(s.Elements) }

// Add appends elems. Nothing is added when they do not all fit.
func (s *Sheet) Add(elems ...Element) error {
	if len(elems) > s.Free() {
		return errors.New(errors.ErrCodeSheetFull,
			"cannot add %d elements to sheet %q: it holds %d of %d", len(elems), s.Name, len(s.Elements), MaxElements)
	}
	s.Elements = append(s.Elements, elems...)
	return nil
}

// IndexOf returns the index of the element for puzzleID, or -1.
func (s *Sheet) IndexOf(puzzleID string) int {
	return slices.IndexFunc(s.Elements, func(e Element) bool { return e.PuzzleID == puzzleID })
}

// Remove deletes the element at index.
func (s *Sheet) Remove(index int) (Element, error) {
	if err := s.checkIndex(index); err != nil {
		return Element{}, err
	}
	e := s.Elements[index]
	s.Elements = slices.Delete(s.Elements, index, index+1)
	return e, nil
}

// RemoveRef deletes the element named by ref, a puzzle id on the sheet or
// an index. A puzzle id wins over an index when both could apply.
func (s *Sheet) RemoveRef(ref string) (Element, error) {
	if i := s.IndexOf(ref); i >= 0 {
		return s.Remove(i)
	}
	i, err := strconv.Atoi(ref)
	if err != nil {
		return Element{}, errors.New(errors.ErrCodeNotFound,
			"%q is neither a puzzle id nor an index on sheet %q", ref, s.Name)
	}
	return s.Remove(i)
}

// Swap exchanges the elements at i and j.
func (s *Sheet) Swap(i, j int) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	if err := s.checkIndex(j); err != nil {
		return err
	}
	s.Elements[i], s.Elements[j] = s.Elements[j], s.Elements[i]
	return nil
}

// Clone copies s under a new name.
func (s *Sheet) Clone(name string) *Sheet {
	c := *s
	c.Name = name
	c.Elements = slices.Clone(s.Elements)
	return &c
}

// SetHeaders replaces the header texts. nil leaves a side unchanged.
func (s *Sheet) SetHeaders(left, right *string) {
	if left != nil {
		s.LeftHeader = *left
	}
	if right != nil {
		s.RightHeader = *right
	}
}

// FENs returns the positions in sheet order.
func (s *Sheet) FENs() []string {
	fens := make([]string, len(s.Elements))
	for i, e := range s.Elements {
		fens[i] = e.FEN
	}
	return fens
}

func (s *Sheet) checkIndex(i int) error {
	if i < 0 || i >= len(s.Elements) {
		return errors.New(errors.ErrCodeNotFound,
			"index %d is out of range: sheet %q has %d elements", i, s.Name, len(s.Elements))
	}
	return nil
}
