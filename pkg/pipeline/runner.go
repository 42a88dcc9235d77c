package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fretcards/pkg/cache"
	"github.com/matzehuels/fretcards/pkg/fretboard"
	"github.com/matzehuels/fretcards/pkg/fretboard/export"
	"github.com/matzehuels/fretcards/pkg/observability"
)

// Runner renders diagrams through a cache.
//
// The Runner is stateless except for the cache and logger, so one Runner can
// serve a whole batch.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching and a nil logger
// falls back to log.Default().
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Render produces every requested format for d.
func (r *Runner) Render(ctx context.Context, d *fretboard.Diagram, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	start := time.Now()
	svg := export.RenderSVG(d)
	result := &Result{Artifacts: make(map[string][]byte, len(opts.Formats))}

	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, hit, err := r.renderOne(ctx, d, svg, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		result.Artifacts[format] = data
		if hit {
			result.CacheHits = append(result.CacheHits, format)
		}
	}
	result.Duration = time.Since(start)

	opts.Logger.Debug("rendered diagram",
		"formats", opts.Formats,
		"cached", result.CacheHits,
		"duration", result.Duration)
	return result, nil
}

// RenderPNG is a convenience wrapper returning only the PNG bytes.
func (r *Runner) RenderPNG(ctx context.Context, d *fretboard.Diagram) ([]byte, error) {
	res, err := r.Render(ctx, d, Options{Formats: []string{FormatPNG}})
	if err != nil {
		return nil, err
	}
	return res.Artifacts[FormatPNG], nil
}

func (r *Runner) renderOne(ctx context.Context, d *fretboard.Diagram, svg []byte, format string, opts Options) ([]byte, bool, error) {
	useCache := cacheable[format] && opts.TTL > 0
	key := cache.ArtifactKey(svg, format, opts.Scale)

	if useCache {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			opts.Logger.Warn("cache read failed", "format", format, "error", err)
		}
		if err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	observability.Render().OnRenderStart(ctx, format)
	start := time.Now()
	data, err := r.export(ctx, d, svg, format, opts.Scale)
	observability.Render().OnRenderComplete(ctx, format, len(data), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if useCache {
		if err := r.Cache.Set(ctx, key, data, opts.TTL); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return data, false, nil
}

func (r *Runner) export(ctx context.Context, d *fretboard.Diagram, svg []byte, format string, scale float64) ([]byte, error) {
	switch format {
	case FormatSVG:
		return svg, nil
	case FormatPNG:
		return export.RenderPNG(d, export.WithScale(scale))
	default:
		var buf bytes.Buffer
		if err := d.Export(ctx, format, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
