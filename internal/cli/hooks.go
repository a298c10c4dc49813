package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/puzzlesheet/pkg/observability"
)

// logHooks reports library events through the CLI logger.
type logHooks struct {
	logger *log.Logger
}

func registerHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetPrintHooks(h)
	observability.SetDatabaseHooks(h)
	observability.SetCacheHooks(h)
}

func (h logHooks) OnComposeStart(_ context.Context, sheet string, diagrams int) {
	h.logger.Debug("composing sheet", "sheet", sheet, "diagrams", diagrams)
}

func (h logHooks) OnComposeComplete(_ context.Context, sheet, layout string, dropped int, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("print failed", "sheet", sheet, "err", err)
		return
	}
	if dropped > 0 {
		h.logger.Warn("diagrams did not fit", "sheet", sheet, "layout", layout, "dropped", dropped)
	}
	h.logger.Debug("sheet printed", "sheet", sheet, "layout", layout, "took", d.Round(time.Millisecond))
}

func (h logHooks) OnLossyText(_ context.Context, sheet, text string) {
	h.logger.Warn("text uses characters the PDF fonts cannot show, they print as '.'", "sheet", sheet, "text", text)
}

func (h logHooks) OnFetch(_ context.Context, source string, bytes int64, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("fetch failed", "source", source, "err", err)
		return
	}
	if bytes > 0 {
		h.logger.Info("downloaded puzzle database", "source", source, "bytes", bytes, "took", d.Round(time.Millisecond))
	}
}

func (h logHooks) OnLoadStart(_ context.Context, source string) {
	h.logger.Debug("parsing puzzle database", "source", source)
}

func (h logHooks) OnLoadComplete(_ context.Context, source string, puzzles int, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("load failed", "source", source, "err", err)
		return
	}
	h.logger.Debug("parsed puzzle database", "puzzles", puzzles, "took", d.Round(time.Millisecond))
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
