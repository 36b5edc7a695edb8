// Package display implements the slide-display controller: it owns the
// currently-shown slide index, converts document-space geometry to
// device-space, composes pluggable interaction behaviors and dispatches
// render requests to a render.Engine, falling back to a blank surface when
// the engine cannot deliver.
//
// The controller is single-threaded by contract: navigation, redraw and
// behavior dispatch all run on the host's event goroutine. The only
// concurrency it tolerates is inside the engine.
package display

import (
	"fmt"
	"image"

	"github.com/wudi/slidekit/coords"
	"github.com/wudi/slidekit/observability"
	"github.com/wudi/slidekit/recovery"
	"github.com/wudi/slidekit/render"
)

// Host is the windowing side the controller is mounted in. It supplies the
// allocated logical size and a way to schedule repaints.
type Host interface {
	// AllocatedSize returns the current logical size of the display area in
	// device-independent pixels. Either dimension may be <= 1 before layout.
	AllocatedSize() (w, h int)

	// RequestRedraw asks the host to invoke Controller.Redraw at the next
	// paint opportunity.
	RequestRedraw()
}

// Painter is the paint context handed to Redraw. The transform applies to
// subsequent draws; DrawSurface blits at the origin, clipped to the
// surface's own bounds.
type Painter interface {
	Scale(sx, sy float64)
	DrawSurface(img image.Image)
}

// Behavior is a pluggable interaction handler. Associate is invoked once at
// attach time so the behavior can register interest in controller events;
// the controller owns the behavior from then on.
type Behavior interface {
	Associate(c *Controller) error
}

// Options configures a Controller. The zero value selects the full slide
// area, a scale factor of 1 and blank-on-failure recovery.
type Options struct {
	// Area narrows what the engine draws. Immutable for the controller's
	// lifetime.
	Area render.Area

	// ScaleFactor is the device pixel ratio. It sizes the rendered surface
	// only; logical coordinate conversion never sees it. Values < 1 are
	// treated as 1.
	ScaleFactor int

	// Recovery decides what a frame shows when the engine fails.
	// Defaults to recovery.BlankStrategy.
	Recovery recovery.Strategy

	Logger observability.Logger
}

// Controller is the slide view controller. It must only be used from the
// host's event goroutine.
type Controller struct {
	engine render.Engine
	host   Host
	opts   Options

	current     int
	disabled    bool
	frozen      bool
	frozenSlide int

	behaviors []Behavior
	listeners []Listener
}

// New builds a controller over engine and host, both of which must be
// non-nil. The initial slide index is 0.
func New(engine render.Engine, host Host, opts Options) *Controller {
	if opts.ScaleFactor < 1 {
		opts.ScaleFactor = 1
	}
	if opts.Recovery == nil {
		opts.Recovery = recovery.NewBlankStrategy()
	}
	if opts.Logger == nil {
		opts.Logger = observability.NopLogger{}
	}
	return &Controller{engine: engine, host: host, opts: opts}
}

// Subscribe registers a listener for controller events. Listeners are called
// synchronously in subscription order and cannot be removed.
func (c *Controller) Subscribe(l Listener) {
	c.listeners = append(c.listeners, l)
}

func (c *Controller) emit(ev Event) {
	for _, l := range c.listeners {
		l(ev)
	}
}

// Engine returns the render engine the controller draws from.
func (c *Controller) Engine() render.Engine { return c.engine }

// CurrentSlide returns the stored slide index, in [0, SlideCount]. The value
// SlideCount itself is the blank sentinel.
func (c *Controller) CurrentSlide() int { return c.current }

// Blank reports whether the controller is past the last slide.
func (c *Controller) Blank() bool { return c.current >= c.engine.SlideCount() }

// Disabled reports whether rendering is overridden with the blank surface.
func (c *Controller) Disabled() bool { return c.disabled }

// SetDisabled toggles the blank override and schedules a repaint on change.
func (c *Controller) SetDisabled(disabled bool) {
	if c.disabled == disabled {
		return
	}
	c.disabled = disabled
	c.host.RequestRedraw()
}

// Frozen reports whether the displayed slide is latched.
func (c *Controller) Frozen() bool { return c.frozen }

// ToggleFreeze latches (or releases) the slide shown at call time: while
// frozen, redraws keep rendering that slide while navigation continues to
// move the stored index underneath.
func (c *Controller) ToggleFreeze() {
	c.frozen = !c.frozen
	if c.frozen {
		c.frozenSlide = c.current
	}
	c.emit(FreezeToggledEvent{Frozen: c.frozen})
	c.host.RequestRedraw()
}

// Display navigates to the requested slide. Out-of-range input is normalized,
// never an error: negative requests clamp to 0, requests past the sentinel
// clamp to the last real slide, and the sentinel SlideCount itself is
// accepted as-is. With an empty document the call is a complete no-op.
//
// Ordering is fixed: leaving notification, index mutation, redraw request,
// entering notification.
func (c *Controller) Display(requested int) {
	n := c.engine.SlideCount()
	if n == 0 {
		return
	}
	switch {
	case requested < 0:
		requested = 0
	case requested >= n+1:
		requested = n - 1
	}

	old := c.current
	c.emit(LeavingSlideEvent{From: old, To: requested})
	c.current = requested
	c.host.RequestRedraw()
	c.emit(EnteringSlideEvent{Slide: requested})
}

// Next advances one slide; past the last slide it lands on the blank
// sentinel and stays there.
func (c *Controller) Next() { c.Display(c.current + 1) }

// Previous goes back one slide.
func (c *Controller) Previous() { c.Display(c.current - 1) }

// AttachBehavior appends the behavior and immediately runs its Associate
// hook. The behavior stays attached for the controller's lifetime even when
// association fails; the caller decides whether a failure is fatal.
func (c *Controller) AttachBehavior(b Behavior) error {
	c.behaviors = append(c.behaviors, b)
	if err := b.Associate(c); err != nil {
		return fmt.Errorf("associate behavior: %w", err)
	}
	return nil
}

// ConvertToDeviceRect maps a document-space rectangle to logical device
// coordinates for the current allocation. The scale factor does not
// participate: interaction geometry is logical, rendering is physical.
func (c *Controller) ConvertToDeviceRect(r coords.Rect) coords.DeviceRect {
	w, h := c.host.AllocatedSize()
	return coords.ToDevice(r, c.engine.PageWidth(), c.engine.PageHeight(), w, h)
}

// PointerPressed reports a pointer press in logical device coordinates to
// all listeners. Hosts call this from their input path.
func (c *Controller) PointerPressed(x, y int) {
	c.emit(PointerPressedEvent{X: x, Y: y})
}

// Redraw renders the current frame into p. It always reports the frame as
// handled; when the engine is not ready or the area is not laid out yet it
// composites nothing, leaving the prior frame's pixels in place.
func (c *Controller) Redraw(p Painter) bool {
	if !c.engine.IsReady() {
		return true
	}

	w, h := c.host.AllocatedSize()
	scale := c.opts.ScaleFactor
	pxW, pxH := w*scale, h*scale
	if pxW <= 1 || pxH <= 1 {
		return true
	}

	slide := c.current
	if c.frozen {
		slide = c.frozenSlide
	}

	var surface image.Image
	if c.disabled || slide >= c.engine.SlideCount() {
		surface = c.engine.FadeToBlack(pxW, pxH)
	} else {
		s, err := c.engine.RenderToSurface(slide, c.opts.Area, pxW, pxH)
		if err != nil {
			c.opts.Logger.Debug("render failed",
				observability.Int("slide", slide),
				observability.Error("err", err))
			loc := recovery.Location{
				Slide:     slide,
				Area:      c.opts.Area.String(),
				PixelW:    pxW,
				PixelH:    pxH,
				Component: "display",
			}
			if c.opts.Recovery.OnRenderError(err, loc) == recovery.ActionKeep {
				return true
			}
			surface = c.engine.FadeToBlack(pxW, pxH)
		} else {
			surface = s
		}
	}

	// The surface is scale-factor times the logical allocation; compensate
	// so it lands exactly on the allocated area.
	inv := 1 / float64(scale)
	p.Scale(inv, inv)
	p.DrawSurface(surface)
	return true
}

// PrecacheObserver returns an observer that forwards precache progress as
// controller events. Forwarded events are emitted from the goroutine running
// the precache cycle; run the cycle on the event goroutine (or marshal it
// there) to keep the single-threaded contract.
func (c *Controller) PrecacheObserver() render.PrecacheObserver {
	return precacheForwarder{c: c}
}

type precacheForwarder struct{ c *Controller }

func (f precacheForwarder) PrerenderingStarted()   { f.c.emit(PrerenderingStartedEvent{}) }
func (f precacheForwarder) SlidePrerendered()      { f.c.emit(SlidePrerenderedEvent{}) }
func (f precacheForwarder) PrerenderingCompleted() { f.c.emit(PrerenderingCompletedEvent{}) }
