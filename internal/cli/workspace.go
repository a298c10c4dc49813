package cli

import (
	"context"
	"fmt"
	"maps"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/puzzlesheet/pkg/cache"
	"github.com/matzehuels/puzzlesheet/pkg/config"
	"github.com/matzehuels/puzzlesheet/pkg/errors"
	"github.com/matzehuels/puzzlesheet/pkg/puzzledb"
	"github.com/matzehuels/puzzlesheet/pkg/render/diagram"
	"github.com/matzehuels/puzzlesheet/pkg/sheet"
	"github.com/matzehuels/puzzlesheet/pkg/storage"
)

// workspace is the state commands operate on: saved sheets and stores,
// and the puzzle database once something needs it.
type workspace struct {
	cfg    config.Config
	dir    *storage.Dir
	cache  cache.Cache
	logger *log.Logger

	sheets *sheet.Repository[*sheet.Sheet]
	stores *sheet.Repository[*puzzledb.Store] // nil until the database is loaded
	db     *puzzledb.Database

	// ids changed while autosave was off
	dirty map[string]bool
	rng   *rand.Rand
}

func openWorkspace(cfg config.Config, c cache.Cache, logger *log.Logger) (*workspace, error) {
	dir, err := storage.Open(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	saved, err := dir.LoadSheets(nil)
	if err != nil {
		return nil, err
	}
	sheets := sheet.NewSheetRepository()
	for _, s := range saved {
		if err := sheets.Put(s.ID, s.Item); err != nil {
			return nil, err
		}
		if s.Dropped > 0 {
			logger.Warn("elements could not be restored", "sheet", s.ID, "dropped", s.Dropped)
		}
	}
	logger.Debug("opened data directory", "path", dir.Path(), "sheets", len(saved))

	seed := uint64(cfg.Seed)
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &workspace{
		cfg:    cfg,
		dir:    dir,
		cache:  c,
		logger: logger,
		sheets: sheets,
		dirty:  make(map[string]bool),
		rng:    rand.New(rand.NewPCG(seed, seed>>1)),
	}, nil
}

// database returns the puzzle database, fetching and parsing it on first use.
func (w *workspace) database(ctx context.Context) (*puzzledb.Database, error) {
	if w.db != nil {
		return w.db, nil
	}
	if w.cfg.PuzzleDB == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig,
			"no puzzle database configured: run `psg db fetch` or `psg config set puzzle_db <path>`")
	}

	prog := newProgress(w.logger)
	spin := newSpinnerWithContext(ctx, "Fetching puzzle database...")
	spin.Start()
	path, err := puzzledb.Fetch(ctx, w.cfg.PuzzleDB, w.dir.DBPath())
	var db *puzzledb.Database
	if err == nil {
		spin.Update("Loading puzzle database...")
		db, err = puzzledb.OpenCached(ctx, w.cache, path, w.cfg.Database.Thresholds(), w.cfg.Database.CacheTTL.Duration)
	}
	spin.Stop()
	if err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Loaded %d puzzles", db.Len()))

	stores := sheet.NewStoreRepository(db.Store())
	saved, err := w.dir.LoadStores(db)
	if err != nil {
		return nil, err
	}
	for _, s := range saved {
		if err := stores.Put(s.ID, s.Item); err != nil {
			return nil, err
		}
		if s.Dropped > 0 {
			w.logger.Warn("puzzles no longer in the database", "store", s.ID, "missing", s.Dropped)
		}
	}
	w.db, w.stores = db, stores
	return db, nil
}

// finder returns the database when one is configured, or nil.
func (w *workspace) finder(ctx context.Context) (storage.PuzzleFinder, error) {
	if w.cfg.PuzzleDB == "" {
		return nil, nil
	}
	db, err := w.database(ctx)
	if err != nil {
		return nil, err
	}
	return db, nil
}

func (w *workspace) storeRepo(ctx context.Context) (*sheet.Repository[*puzzledb.Store], error) {
	if _, err := w.database(ctx); err != nil {
		return nil, err
	}
	return w.stores, nil
}

func (w *workspace) sheet(ref string) (string, *sheet.Sheet, error) {
	return w.sheets.Get(ref)
}

func (w *workspace) store(ctx context.Context, ref string) (string, *puzzledb.Store, error) {
	stores, err := w.storeRepo(ctx)
	if err != nil {
		return "", nil, err
	}
	return stores.Get(ref)
}

// addSheet registers s and records the change.
func (w *workspace) addSheet(s *sheet.Sheet) (string, error) {
	id, err := w.sheets.Add(s)
	if err != nil {
		return "", err
	}
	return id, w.touch(id)
}

// addStore registers st, derived from parents, and records the change.
func (w *workspace) addStore(ctx context.Context, st *puzzledb.Store, parents ...string) (string, error) {
	stores, err := w.storeRepo(ctx)
	if err != nil {
		return "", err
	}
	st.Parents = parents
	id, err := stores.Add(st)
	if err != nil {
		return "", err
	}
	return id, w.touch(id)
}

// touch persists the sheet or store id when autosave is on and otherwise
// remembers it for `save`.
func (w *workspace) touch(id string) error {
	if !w.cfg.Autosave {
		if !w.dirty[id] {
			printWarning("autosave is off: %s changed in this session only, run `psg save` to keep it", id)
		}
		w.dirty[id] = true
		return nil
	}
	return w.persist(id)
}

func (w *workspace) persist(id string) error {
	if strings.HasPrefix(id, sheet.StorePrefix) {
		if id == sheet.MainStoreID || w.stores == nil {
			return nil
		}
		_, st, err := w.stores.Get(id)
		if err != nil {
			return err
		}
		if err := w.dir.SaveStore(id, st); err != nil {
			return err
		}
	} else {
		_, s, err := w.sheets.Get(id)
		if err != nil {
			return err
		}
		if err := w.dir.SaveSheet(id, s); err != nil {
			return err
		}
	}
	delete(w.dirty, id)
	return nil
}

// saveDirty writes every change made while autosave was off.
func (w *workspace) saveDirty() ([]string, error) {
	ids := slices.Sorted(maps.Keys(w.dirty))
	for _, id := range ids {
		if err := w.persist(id); err != nil {
			return nil, err
		}
	}
	return ids, nil
}

// deleteRef removes a sheet or store by id or name. Sheets are matched
// first.
func (w *workspace) deleteRef(ctx context.Context, ref string) (string, string, error) {
	if id, ok := w.sheets.Resolve(ref); ok {
		_, s, err := w.sheets.Delete(id)
		if err != nil {
			return "", "", err
		}
		delete(w.dirty, id)
		return id, s.Name, w.dir.DeleteSheet(id)
	}
	stores, err := w.storeRepo(ctx)
	if err != nil {
		return "", "", err
	}
	id, st, err := stores.Delete(ref)
	if err != nil {
		return "", "", err
	}
	delete(w.dirty, id)
	return id, st.Name, w.dir.DeleteStore(id)
}

// diagramOptions returns the board options from the configuration.
func (w *workspace) diagramOptions() ([]diagram.Option, error) {
	if w.cfg.BoardColorsPath == "" {
		return nil, nil
	}
	colors, err := diagram.LoadColors(w.cfg.BoardColorsPath)
	if err != nil {
		return nil, err
	}
	return []diagram.Option{diagram.WithColors(colors)}, nil
}

// close warns about changes that were never saved.
func (w *workspace) close() error {
	if len(w.dirty) > 0 {
		ids := slices.Sorted(maps.Keys(w.dirty))
		w.logger.Warn("discarding unsaved changes", "ids", strings.Join(ids, ", "))
	}
	return w.cache.Close()
}
