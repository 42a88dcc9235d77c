package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fretcards/pkg/observability"
)

// logHooks reports library events through the CLI logger at debug level.
// Failed batches and renders are reported as warnings.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.CardHooks   = logHooks{}
	_ observability.RenderHooks = logHooks{}
	_ observability.CacheHooks  = logHooks{}
)

// installHooks routes card, render and cache events to logger.
func installHooks(logger *log.Logger) {
	h := logHooks{logger: logger}
	observability.SetCardHooks(h)
	observability.SetRenderHooks(h)
	observability.SetCacheHooks(h)
}

func (h logHooks) OnCardAdded(_ context.Context, deck string, noteID int64) {
	h.logger.Debug("card added", "deck", deck, "note", noteID)
}

func (h logHooks) OnMediaSaved(_ context.Context, requested, stored string, size int64) {
	if requested != stored {
		h.logger.Debug("media renamed", "requested", requested, "stored", stored, "size", size)
		return
	}
	h.logger.Debug("media saved", "name", stored, "size", size)
}

func (h logHooks) OnBatchComplete(_ context.Context, deck string, count int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("batch stopped", "deck", deck, "cards", count, "err", err)
		return
	}
	h.logger.Debug("batch complete", "deck", deck, "cards", count, "took", d.Round(time.Millisecond))
}

func (h logHooks) OnRenderStart(_ context.Context, format string) {
	h.logger.Debug("rendering", "format", format)
}

func (h logHooks) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("render failed", "format", format, "err", err)
		return
	}
	h.logger.Debug("rendered", "format", format, "bytes", size, "took", d.Round(time.Millisecond))
}

func (h logHooks) OnCacheHit(_ context.Context, key string) {
	h.logger.Debug("cache hit", "key", key)
}

func (h logHooks) OnCacheMiss(_ context.Context, key string) {
	h.logger.Debug("cache miss", "key", key)
}

func (h logHooks) OnCacheSet(_ context.Context, key string, size int) {
	h.logger.Debug("cache set", "key", key, "bytes", size)
}
