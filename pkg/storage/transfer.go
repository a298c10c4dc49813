package storage

import (
	"bytes"
	"os"

	"github.com/matzehuels/puzzlesheet/pkg/errors"
	"github.com/matzehuels/puzzlesheet/pkg/fsutil"
	"github.com/matzehuels/puzzlesheet/pkg/sheet"
)

// Export writes s to path atomically.
func Export(s *sheet.Sheet, path string) error {
	var buf bytes.Buffer
	if err := WriteSheet(s, &buf); err != nil {
		return err
	}
	if err := fsutil.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeOutputWrite, err, "write %s", path)
	}
	return nil
}

// Import reads a single sheet file, or every *.json file in a directory.
func Import(path string, finder PuzzleFinder) ([]*sheet.Sheet, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "the path %q does not exist or is not readable", path)
	}

	paths := []string{path}
	if info.IsDir() {
		if paths, err = jsonFiles(path); err != nil {
			return nil, err
		}
	} else if !info.Mode().IsRegular() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "the path %q has an unexpected file type", path)
	}

	sheets := make([]*sheet.Sheet, 0, len(paths))
	for _, p := range paths {
		s, err := importFile(p, finder)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, s)
	}
	return sheets, nil
}

func importFile(path string, finder PuzzleFinder) (*sheet.Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	s, _, err := ReadSheet(bytes.NewReader(data), finder)
	if err != nil {
		return nil, errors.Wrap(codeOr(err, errors.ErrCodeInvalidInput), err, "load %s", path)
	}
	return s, nil
}
