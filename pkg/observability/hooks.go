// Package observability lets the psg binary listen to what the libraries
// are doing without the libraries depending on a logger or metrics backend.
//
// Three hook families exist:
//   - [PrintHooks]: sheet composition and PDF output
//   - [DatabaseHooks]: fetching and loading the puzzle database
//   - [CacheHooks]: snapshot cache hits, misses and writes
//
// Each family has a no-op default. The CLI registers logging
// implementations at startup:
//
//	observability.SetDatabaseHooks(dbLogger{logger})
//
// and library code emits events through the getters:
//
//	observability.Database().OnLoadComplete(ctx, source, n, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// PrintHooks receives events from sheet printing.
type PrintHooks interface {
	// OnComposeStart fires before diagrams are rendered for a sheet.
	OnComposeStart(ctx context.Context, sheet string, diagrams int)

	// OnComposeComplete fires after the page was written. layout is the
	// resolved grid ("6" or "12") and dropped the number of diagrams that
	// did not fit.
	OnComposeComplete(ctx context.Context, sheet, layout string, dropped int, duration time.Duration, err error)

	// OnLossyText fires for each header or footer text the page fonts
	// cannot show in full.
	OnLossyText(ctx context.Context, sheet, text string)
}

// DatabaseHooks receives events from the puzzle database.
type DatabaseHooks interface {
	OnFetch(ctx context.Context, source string, bytes int64, duration time.Duration, err error)
	OnLoadStart(ctx context.Context, source string)
	OnLoadComplete(ctx context.Context, source string, puzzles int, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopPrintHooks is a no-op implementation of PrintHooks.
type NoopPrintHooks struct{}

func (NoopPrintHooks) OnComposeStart(context.Context, string, int) {}
func (NoopPrintHooks) OnComposeComplete(context.Context, string, string, int, time.Duration, error) {
}
func (NoopPrintHooks) OnLossyText(context.Context, string, string) {}

// NoopDatabaseHooks is a no-op implementation of DatabaseHooks.
type NoopDatabaseHooks struct{}

func (NoopDatabaseHooks) OnFetch(context.Context, string, int64, time.Duration, error)      {}
func (NoopDatabaseHooks) OnLoadStart(context.Context, string)                               {}
func (NoopDatabaseHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

var (
	printHooks    PrintHooks    = NoopPrintHooks{}
	databaseHooks DatabaseHooks = NoopDatabaseHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetPrintHooks registers print hooks. nil is ignored.
func SetPrintHooks(h PrintHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		printHooks = h
	}
}

// SetDatabaseHooks registers database hooks. nil is ignored.
func SetDatabaseHooks(h DatabaseHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		databaseHooks = h
	}
}

// SetCacheHooks registers cache hooks. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Print returns the registered print hooks.
func Print() PrintHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return printHooks
}

// Database returns the registered database hooks.
func Database() DatabaseHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return databaseHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	printHooks = NoopPrintHooks{}
	databaseHooks = NoopDatabaseHooks{}
	cacheHooks = NoopCacheHooks{}
}
