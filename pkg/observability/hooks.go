// Package observability provides hooks for logging and metrics.
//
// Libraries emit events through the registered hooks without depending on
// any particular backend. The CLI registers log-backed hooks at startup;
// tests and library users get no-op defaults.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetCardHooks(&myCardHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Cards().OnCardAdded(ctx, deck, noteID)
package observability

import (
	"context"
	"sync"
	"time"
)

// CardHooks receives events from card generation and deck writes.
type CardHooks interface {
	// OnCardAdded records a note written to a deck.
	OnCardAdded(ctx context.Context, deck string, noteID int64)

	// OnMediaSaved records a media file stored under its final name.
	OnMediaSaved(ctx context.Context, requested, stored string, size int64)

	// OnBatchComplete records the end of a batch of card generations.
	OnBatchComplete(ctx context.Context, deck string, count int, duration time.Duration, err error)
}

// RenderHooks receives events from diagram rendering.
type RenderHooks interface {
	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopCardHooks is a no-op implementation of CardHooks.
type NoopCardHooks struct{}

func (NoopCardHooks) OnCardAdded(context.Context, string, int64)                         {}
func (NoopCardHooks) OnMediaSaved(context.Context, string, string, int64)                {}
func (NoopCardHooks) OnBatchComplete(context.Context, string, int, time.Duration, error) {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, string)                               {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

var (
	cardHooks   CardHooks   = NoopCardHooks{}
	renderHooks RenderHooks = NoopRenderHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetCardHooks registers custom card hooks. Nil is ignored.
func SetCardHooks(h CardHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cardHooks = h
	}
}

// SetRenderHooks registers custom render hooks. Nil is ignored.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Cards returns the registered card hooks.
func Cards() CardHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cardHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
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
	cardHooks = NoopCardHooks{}
	renderHooks = NoopRenderHooks{}
	cacheHooks = NoopCacheHooks{}
}
