package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/matzehuels/puzzlesheet/pkg/errors"
	"github.com/matzehuels/puzzlesheet/pkg/fsutil"
	"github.com/matzehuels/puzzlesheet/pkg/puzzledb"
	"github.com/matzehuels/puzzlesheet/pkg/sheet"
)

const (
	sheetsDir = "sheets"
	storesDir = "stores"
	dbDir     = "db"
	ext       = ".json"
)

// Dir is the data directory of a psg installation.
type Dir struct {
	mu   sync.Mutex
	root string
}

// Open prepares the data directory at root, creating it if needed.
func Open(root string) (*Dir, error) {
	for _, sub := range []string{sheetsDir, storesDir, dbDir} {
		if err := os.MkdirAll(filepath.Join(root, sub), 0o755); err != nil {
			return nil, errors.Wrap(errors.ErrCodeOutputWrite, err, "create data directory")
		}
	}
	return &Dir{root: root}, nil
}

// Path returns the root of the data directory.
func (d *Dir) Path() string { return d.root }

// SheetsPath returns the directory sheet files live in.
func (d *Dir) SheetsPath() string { return filepath.Join(d.root, sheetsDir) }

// DBPath returns the directory downloaded databases are stored in.
func (d *Dir) DBPath() string { return filepath.Join(d.root, dbDir) }

// SheetFile returns the file a sheet with id is saved to.
func (d *Dir) SheetFile(id string) string {
	return filepath.Join(d.root, sheetsDir, id+ext)
}

// SaveSheet writes s as <id>.json.
func (d *Dir) SaveSheet(id string, s *sheet.Sheet) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Export(s, d.SheetFile(id))
}

// DeleteSheet removes the file of sheet id. A missing file is not an error.
func (d *Dir) DeleteSheet(id string) error {
	return d.remove(filepath.Join(d.root, sheetsDir, id+ext))
}

// SaveStore writes st as <id>.json.
func (d *Dir) SaveStore(id string, st *puzzledb.Store) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var buf bytes.Buffer
	if err := WriteStore(st, &buf); err != nil {
		return err
	}
	path := filepath.Join(d.root, storesDir, id+ext)
	if err := fsutil.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeOutputWrite, err, "write %s", path)
	}
	return nil
}

// DeleteStore removes the file of store id.
func (d *Dir) DeleteStore(id string) error {
	return d.remove(filepath.Join(d.root, storesDir, id+ext))
}

func (d *Dir) remove(path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeOutputWrite, err, "remove %s", path)
	}
	return nil
}

// Saved is one item loaded from the data directory.
type Saved[T any] struct {
	ID      string
	Item    T
	Dropped int // elements or puzzles that could not be restored
}

// LoadSheets reads every saved sheet, ordered by file name.
func (d *Dir) LoadSheets(finder PuzzleFinder) ([]Saved[*sheet.Sheet], error) {
	return loadAll(filepath.Join(d.root, sheetsDir), func(path string) (*sheet.Sheet, int, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, 0, err
		}
		defer f.Close()
		return ReadSheet(f, finder)
	})
}

// LoadStores reads every saved store and rebuilds it from finder.
func (d *Dir) LoadStores(finder PuzzleFinder) ([]Saved[*puzzledb.Store], error) {
	return loadAll(filepath.Join(d.root, storesDir), func(path string) (*puzzledb.Store, int, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, 0, err
		}
		defer f.Close()
		return ReadStore(f, finder)
	})
}

func loadAll[T any](dir string, read func(string) (T, int, error)) ([]Saved[T], error) {
	paths, err := jsonFiles(dir)
	if err != nil {
		return nil, err
	}
	out := make([]Saved[T], 0, len(paths))
	for _, p := range paths {
		item, dropped, err := read(p)
		if err != nil {
			return nil, errors.Wrap(codeOr(err, errors.ErrCodeInvalidInput), err, "load %s", filepath.Base(p))
		}
		out = append(out, Saved[T]{
			ID:      strings.TrimSuffix(filepath.Base(p), ext),
			Item:    item,
			Dropped: dropped,
		})
	}
	return out, nil
}

// jsonFiles lists the *.json files directly inside dir, sorted.
func jsonFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", dir)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ext || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	slices.Sort(out)
	return out, nil
}

func codeOr(err error, fallback errors.Code) errors.Code {
	if c := errors.GetCode(err); c != "" {
		return c
	}
	return fallback
}
