package render

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/wudi/slidekit/observability"
)

// Rasterizer produces raw slide surfaces. It is the pluggable back end of
// CachedEngine; implementations only draw and never cache.
type Rasterizer interface {
	SlideCount() int
	// PageSize returns the page dimensions in document-space units.
	PageSize() (w, h float64)
	Rasterize(slide int, area Area, pxW, pxH int) (image.Image, error)
}

// readyRasterizer is implemented by rasterizers whose document loads
// asynchronously.
type readyRasterizer interface {
	Ready() bool
}

// PrecacheObserver receives progress notifications from a precache cycle, in
// order: one started, one per slide, one completed. Callbacks are invoked
// from the goroutine running the cycle.
type PrecacheObserver interface {
	PrerenderingStarted()
	SlidePrerendered()
	PrerenderingCompleted()
}

// CacheConfig configures a CachedEngine. The zero value is usable.
type CacheConfig struct {
	// PrecacheArea is the area rendered during a precache cycle.
	PrecacheArea Area
	// PrecacheWidth and PrecacheHeight are the surface size pre-warmed during
	// a precache cycle. A cycle with either dimension <= 0 is a no-op.
	PrecacheWidth  int
	PrecacheHeight int

	Logger observability.Logger
	Tracer observability.Tracer
}

type cacheKey struct {
	slide int
	area  Area
	pxW   int
	pxH   int
}

// CachedEngine is an Engine that memoizes rasterized surfaces and can
// pre-warm them for a whole document. Cached surfaces are kept for the
// engine's lifetime; there is no eviction.
type CachedEngine struct {
	ras Rasterizer
	cfg CacheConfig

	// The cache is the only state shared between the event goroutine and a
	// background precache cycle.
	mu       sync.Mutex
	surfaces map[cacheKey]image.Image
}

func NewCachedEngine(ras Rasterizer, cfg CacheConfig) *CachedEngine {
	if cfg.Logger == nil {
		cfg.Logger = observability.NopLogger{}
	}
	if cfg.Tracer == nil {
		cfg.Tracer = observability.NopTracer()
	}
	return &CachedEngine{
		ras:      ras,
		cfg:      cfg,
		surfaces: make(map[cacheKey]image.Image),
	}
}

func (e *CachedEngine) IsReady() bool {
	if r, ok := e.ras.(readyRasterizer); ok {
		return r.Ready()
	}
	return true
}

func (e *CachedEngine) SlideCount() int { return e.ras.SlideCount() }

func (e *CachedEngine) PageWidth() float64 {
	w, _ := e.ras.PageSize()
	return w
}

func (e *CachedEngine) PageHeight() float64 {
	_, h := e.ras.PageSize()
	return h
}

func (e *CachedEngine) RenderToSurface(slide int, area Area, pxW, pxH int) (image.Image, error) {
	if slide < 0 || slide >= e.ras.SlideCount() {
		return nil, fmt.Errorf("%w: %d of %d", ErrSlideOutOfRange, slide, e.ras.SlideCount())
	}

	key := cacheKey{slide: slide, area: area, pxW: pxW, pxH: pxH}
	e.mu.Lock()
	if s, ok := e.surfaces[key]; ok {
		e.mu.Unlock()
		return s, nil
	}
	e.mu.Unlock()

	s, err := e.ras.Rasterize(slide, area, pxW, pxH)
	if err != nil {
		return nil, fmt.Errorf("rasterize slide %d (%s): %w", slide, area, err)
	}

	e.mu.Lock()
	e.surfaces[key] = s
	e.mu.Unlock()
	return s, nil
}

func (e *CachedEngine) FadeToBlack(pxW, pxH int) image.Image {
	return FadeToBlack(pxW, pxH)
}

// CachedSurfaces returns the number of surfaces currently held.
func (e *CachedEngine) CachedSurfaces() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.surfaces)
}

// Precache renders every slide at the configured precache size so that later
// RenderToSurface calls at that size hit the cache. Progress is reported to
// obs (which may be nil) once per slide regardless of per-slide render
// failures; failures are logged and do not abort the cycle. The cycle stops
// early if ctx is canceled.
func (e *CachedEngine) Precache(ctx context.Context, obs PrecacheObserver) error {
	if e.cfg.PrecacheWidth <= 0 || e.cfg.PrecacheHeight <= 0 {
		return nil
	}

	ctx, span := e.cfg.Tracer.StartSpan(ctx, "slidekit.precache")
	defer span.Finish()

	n := e.ras.SlideCount()
	span.SetTag("slides", n)

	if obs != nil {
		obs.PrerenderingStarted()
	}
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			span.SetError(err)
			return err
		}
		if _, err := e.RenderToSurface(i, e.cfg.PrecacheArea, e.cfg.PrecacheWidth, e.cfg.PrecacheHeight); err != nil {
			e.cfg.Logger.Warn("precache render failed",
				observability.Int("slide", i),
				observability.Error("err", err))
		}
		if obs != nil {
			obs.SlidePrerendered()
		}
	}
	if obs != nil {
		obs.PrerenderingCompleted()
	}
	return nil
}
