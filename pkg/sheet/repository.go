package sheet

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/puzzlesheet/pkg/errors"
	"github.com/matzehuels/puzzlesheet/pkg/puzzledb"
)

// Entry pairs an item with its repository id.
type Entry[T any] struct {
	ID   string
	Item T
}

// Repository assigns ids of the form prefix+counter to items and finds
// them by id or by name. Names are unique within a repository.
type Repository[T any] struct {
	prefix    string
	next      int
	name      func(T) string
	items     map[string]T
	protected map[string]bool
}

// NewRepository creates an empty repository. The first id handed out is
// prefix+start.
func NewRepository[T any](prefix string, start int, name func(T) string) *Repository[T] {
	return &Repository[T]{
		prefix:    prefix,
		next:      start,
		name:      name,
		items:     make(map[string]T),
		protected: make(map[string]bool),
	}
}

// Add stores item under a fresh id.
func (r *Repository[T]) Add(item T) (string, error) {
	if err := r.CheckName(r.name(item), ""); err != nil {
		return "", err
	}
	id := r.prefix + strconv.Itoa(r.next)
	r.next++
	r.items[id] = item
	return id, nil
}

// Put stores item under a known id, as when loading saved items. Later
// ids continue after the highest one seen.
func (r *Repository[T]) Put(id string, item T) error {
	n, ok := r.seq(id)
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput, "%q is not a %s id", id, r.prefix)
	}
	if err := r.CheckName(r.name(item), id); err != nil {
		return err
	}
	r.items[id] = item
	r.next = max(r.next, n+1)
	return nil
}

// CheckName validates name for an item with id self (empty for a new
// item): it must be well formed and not used by another item, neither as
// name nor as id.
func (r *Repository[T]) CheckName(name, self string) error {
	if err := errors.ValidateName(name); err != nil {
		return err
	}
	if id, ok := r.Resolve(name); ok && id != self {
		return errors.New(errors.ErrCodeAlreadyExists, "%q is already taken by %s", name, id)
	}
	return nil
}

// Resolve returns the id for an id or a name.
func (r *Repository[T]) Resolve(idOrName string) (string, bool) {
	if _, ok := r.items[idOrName]; ok {
		return idOrName, true
	}
	for id, item := range r.items {
		if r.name(item) == idOrName {
			return id, true
		}
	}
	return "", false
}

// Get looks up an item by id or name.
func (r *Repository[T]) Get(idOrName string) (string, T, error) {
	id, ok := r.Resolve(idOrName)
	if !ok {
		var zero T
		return "", zero, errors.New(errors.ErrCodeNotFound, "no %s named %q", r.kind(), idOrName)
	}
	return id, r.items[id], nil
}

// Delete removes an item by id or name.
func (r *Repository[T]) Delete(idOrName string) (string, T, error) {
	id, item, err := r.Get(idOrName)
	if err != nil {
		return "", item, err
	}
	if r.protected[id] {
		return "", item, errors.New(errors.ErrCodeProtected, "%s %q cannot be deleted", r.kind(), id)
	}
	delete(r.items, id)
	return id, item, nil
}

// Protect prevents id from being deleted.
func (r *Repository[T]) Protect(id string) { r.protected[id] = true }

// Len returns the number of items.
func (r *Repository[T]) Len() int { return len(r.items) }

// All returns every item in id order.
func (r *Repository[T]) All() []Entry[T] {
	out := make([]Entry[T], 0, len(r.items))
	for id, item := range r.items {
		out = append(out, Entry[T]{ID: id, Item: item})
	}
	slices.SortFunc(out, func(a, b Entry[T]) int {
		na, _ := r.seq(a.ID)
		nb, _ := r.seq(b.ID)
		return cmp.Compare(na, nb)
	})
	return out
}

func (r *Repository[T]) seq(id string) (int, bool) {
	rest, ok := strings.CutPrefix(id, r.prefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func (r *Repository[T]) kind() string {
	switch r.prefix {
	case SheetPrefix:
		return "sheet"
	case StorePrefix:
		return "store"
	}
	return "item"
}

// Id prefixes of the two repositories.
const (
	SheetPrefix = "s"
	StorePrefix = "p"
)

// MainStoreID is the id of the whole puzzle database.
const MainStoreID = StorePrefix + "0"

// NewSheetRepository creates the sheet repository. Sheet ids start at s1.
func NewSheetRepository() *Repository[*Sheet] {
	return NewRepository(SheetPrefix, 1, func(s *Sheet) string { return s.Name })
}

// NewStoreRepository creates the store repository with main as the
// protected store p0. main may be nil when the database is not loaded.
func NewStoreRepository(main *puzzledb.Store) *Repository[*puzzledb.Store] {
	r := NewRepository(StorePrefix, 1, func(s *puzzledb.Store) string { return s.Name })
	if main != nil {
		r.items[MainStoreID] = main
	}
	r.Protect(MainStoreID)
	return r
}

// ResetMain replaces the main store, for instance after the database was
// fetched again.
func ResetMain(r *Repository[*puzzledb.Store], main *puzzledb.Store) {
	r.items[MainStoreID] = main
}
