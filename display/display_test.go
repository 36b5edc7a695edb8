package display_test

import (
	"context"
	"errors"
	"fmt"
	"image"
	"testing"

	"github.com/wudi/slidekit/coords"
	"github.com/wudi/slidekit/display"
	"github.com/wudi/slidekit/recovery"
	"github.com/wudi/slidekit/render"
)

// fakeEngine is a hand-driven render engine. Rendered surfaces are tagged by
// size so tests can tell a slide surface from the blank fallback.
type fakeEngine struct {
	ready     bool
	slides    int
	renderErr error

	renderCalls []renderCall
	fadeCalls   int
}

type renderCall struct {
	slide    int
	area     render.Area
	pxW, pxH int
}

func newFakeEngine(slides int) *fakeEngine {
	return &fakeEngine{ready: true, slides: slides}
}

func (e *fakeEngine) IsReady() bool       { return e.ready }
func (e *fakeEngine) SlideCount() int     { return e.slides }
func (e *fakeEngine) PageWidth() float64  { return 800 }
func (e *fakeEngine) PageHeight() float64 { return 600 }

func (e *fakeEngine) RenderToSurface(slide int, area render.Area, pxW, pxH int) (image.Image, error) {
	e.renderCalls = append(e.renderCalls, renderCall{slide: slide, area: area, pxW: pxW, pxH: pxH})
	if e.renderErr != nil {
		return nil, e.renderErr
	}
	return image.NewRGBA(image.Rect(0, 0, pxW, pxH)), nil
}

func (e *fakeEngine) FadeToBlack(pxW, pxH int) image.Image {
	e.fadeCalls++
	return render.FadeToBlack(pxW, pxH)
}

type fakeHost struct {
	w, h    int
	redraws int
}

func (h *fakeHost) AllocatedSize() (int, int) { return h.w, h.h }
func (h *fakeHost) RequestRedraw()            { h.redraws++ }

type recordingPainter struct {
	scales []float64
	drawn  []image.Image
}

func (p *recordingPainter) Scale(sx, sy float64) { p.scales = append(p.scales, sx, sy) }
func (p *recordingPainter) DrawSurface(img image.Image) {
	p.drawn = append(p.drawn, img)
}

func newController(slides int) (*display.Controller, *fakeEngine, *fakeHost) {
	engine := newFakeEngine(slides)
	host := &fakeHost{w: 400, h: 300}
	return display.New(engine, host, display.Options{}), engine, host
}

func TestDisplayClamp(t *testing.T) {
	cases := []struct {
		requested int
		want      int
	}{
		{-3, 0},
		{-1, 0},
		{0, 0},
		{5, 5},
		{9, 9},
		{10, 10}, // blank sentinel, reachable only exactly
		{11, 9},
		{15, 9},
	}
	for _, c := range cases {
		ctrl, _, _ := newController(10)
		ctrl.Display(c.requested)
		if got := ctrl.CurrentSlide(); got != c.want {
			t.Fatalf("Display(%d): stored index %d, want %d", c.requested, got, c.want)
		}
	}
}

func TestDisplayScenario(t *testing.T) {
	ctrl, engine, _ := newController(10)

	ctrl.Display(-3)
	if ctrl.CurrentSlide() != 0 {
		t.Fatalf("Display(-3): got %d", ctrl.CurrentSlide())
	}
	ctrl.Display(15)
	if ctrl.CurrentSlide() != 9 {
		t.Fatalf("Display(15): got %d", ctrl.CurrentSlide())
	}
	ctrl.Display(10)
	if ctrl.CurrentSlide() != 10 {
		t.Fatalf("Display(10): got %d", ctrl.CurrentSlide())
	}
	if !ctrl.Blank() {
		t.Fatal("sentinel index should report blank")
	}

	p := &recordingPainter{}
	if !ctrl.Redraw(p) {
		t.Fatal("redraw must report handled")
	}
	if engine.fadeCalls != 1 || len(engine.renderCalls) != 0 {
		t.Fatalf("sentinel frame must composite blank: fades=%d renders=%d", engine.fadeCalls, len(engine.renderCalls))
	}
}

func TestDisplayEmptyDocument(t *testing.T) {
	ctrl, _, host := newController(0)
	var events []display.Event
	ctrl.Subscribe(func(ev display.Event) { events = append(events, ev) })

	for _, r := range []int{-5, 0, 1, 100} {
		ctrl.Display(r)
	}
	if ctrl.CurrentSlide() != 0 {
		t.Fatalf("index moved on empty document: %d", ctrl.CurrentSlide())
	}
	if len(events) != 0 {
		t.Fatalf("events fired on empty document: %v", events)
	}
	if host.redraws != 0 {
		t.Fatalf("redraw requested on empty document: %d", host.redraws)
	}
}

func TestDisplayEventOrder(t *testing.T) {
	ctrl, _, host := newController(10)
	ctrl.Display(4)

	var order []string
	ctrl.Subscribe(func(ev display.Event) {
		switch e := ev.(type) {
		case display.LeavingSlideEvent:
			// Before mutation: stored index is still the old one and no
			// redraw has been requested for this call yet.
			order = append(order, fmt.Sprintf("leaving %d->%d at %d redraws=%d", e.From, e.To, ctrl.CurrentSlide(), host.redraws))
		case display.EnteringSlideEvent:
			order = append(order, fmt.Sprintf("entering %d at %d redraws=%d", e.Slide, ctrl.CurrentSlide(), host.redraws))
		}
	})

	host.redraws = 0
	ctrl.Display(7)

	want := []string{
		"leaving 4->7 at 4 redraws=0",
		"entering 7 at 7 redraws=1",
	}
	if len(order) != len(want) {
		t.Fatalf("expected %d notifications, got %v", len(want), order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("notification %d: got %q, want %q", i, order[i], want[i])
		}
	}
}

func TestRedrawNotReady(t *testing.T) {
	ctrl, engine, _ := newController(10)
	engine.ready = false

	p := &recordingPainter{}
	if !ctrl.Redraw(p) {
		t.Fatal("redraw must report handled")
	}
	if len(p.drawn) != 0 {
		t.Fatal("nothing may be composited while the document is not ready")
	}
}

func TestRedrawUnallocated(t *testing.T) {
	ctrl, engine, host := newController(10)
	host.w, host.h = 1, 1

	p := &recordingPainter{}
	if !ctrl.Redraw(p) {
		t.Fatal("redraw must report handled")
	}
	if len(p.drawn) != 0 || len(engine.renderCalls) != 0 {
		t.Fatal("nothing may be rendered before layout")
	}
}

func TestRedrawDisabledCompositesBlank(t *testing.T) {
	ctrl, engine, host := newController(10)
	ctrl.Display(3)
	host.redraws = 0
	ctrl.SetDisabled(true)
	if host.redraws != 1 {
		t.Fatalf("disabling must request a redraw, got %d", host.redraws)
	}
	if !ctrl.Disabled() {
		t.Fatal("disabled flag not set")
	}

	p := &recordingPainter{}
	ctrl.Redraw(p)
	if engine.fadeCalls != 1 || len(engine.renderCalls) != 0 {
		t.Fatalf("disabled frame must composite blank: fades=%d renders=%d", engine.fadeCalls, len(engine.renderCalls))
	}

	// Redundant set does not schedule another repaint.
	ctrl.SetDisabled(true)
	if host.redraws != 1 {
		t.Fatalf("redundant SetDisabled requested a redraw")
	}
}

func TestRedrawRenderFailureBlank(t *testing.T) {
	ctrl, engine, _ := newController(10)
	engine.renderErr = errors.New("backend exploded")

	p := &recordingPainter{}
	if !ctrl.Redraw(p) {
		t.Fatal("redraw must report handled even on render failure")
	}
	if engine.fadeCalls != 1 {
		t.Fatal("render failure must fall back to the blank surface")
	}
	if len(p.drawn) != 1 {
		t.Fatalf("expected one composite, got %d", len(p.drawn))
	}
}

func TestRedrawRenderFailureKeepsFrame(t *testing.T) {
	engine := newFakeEngine(10)
	engine.renderErr = errors.New("backend exploded")
	host := &fakeHost{w: 400, h: 300}
	rec := recovery.NewLenientStrategy()
	ctrl := display.New(engine, host, display.Options{Recovery: rec})

	p := &recordingPainter{}
	if !ctrl.Redraw(p) {
		t.Fatal("redraw must report handled")
	}
	if len(p.drawn) != 0 || engine.fadeCalls != 0 {
		t.Fatal("lenient recovery must keep the prior frame")
	}
	if len(rec.Errors) != 1 || !errors.Is(rec.Errors[0], engine.renderErr) {
		t.Fatalf("strategy should have seen the render error: %v", rec.Errors)
	}
}

func TestRedrawScaleFactor(t *testing.T) {
	engine := newFakeEngine(10)
	host := &fakeHost{w: 100, h: 80}
	ctrl := display.New(engine, host, display.Options{ScaleFactor: 2, Area: render.AreaNotesRight})

	p := &recordingPainter{}
	ctrl.Redraw(p)

	if len(engine.renderCalls) != 1 {
		t.Fatalf("expected one render call, got %d", len(engine.renderCalls))
	}
	call := engine.renderCalls[0]
	if call.pxW != 200 || call.pxH != 160 {
		t.Fatalf("pixel size must be allocation x scale: got %dx%d", call.pxW, call.pxH)
	}
	if call.area != render.AreaNotesRight {
		t.Fatalf("area must pass through unmodified, got %v", call.area)
	}
	if len(p.scales) != 2 || p.scales[0] != 0.5 || p.scales[1] != 0.5 {
		t.Fatalf("composite must apply the inverse scale, got %v", p.scales)
	}
}

func TestConvertToDeviceRectIgnoresScale(t *testing.T) {
	engine := newFakeEngine(10)
	host := &fakeHost{w: 400, h: 300}
	ctrl := display.New(engine, host, display.Options{ScaleFactor: 3})

	// Conversion works on the logical allocation; the scale factor plays no
	// part in it.
	d := ctrl.ConvertToDeviceRect(coords.Rect{X1: 0, Y1: 0, X2: 800, Y2: 600})
	want := coords.DeviceRect{X: 0, Y: 0, Width: 400, Height: 300}
	if d != want {
		t.Fatalf("expected %+v, got %+v", want, d)
	}
}

type orderedBehavior struct {
	name string
	log  *[]string
	fail error
}

func (b *orderedBehavior) Associate(c *display.Controller) error {
	*b.log = append(*b.log, b.name)
	return b.fail
}

func TestAttachBehaviorOrder(t *testing.T) {
	ctrl, _, _ := newController(10)
	var log []string
	if err := ctrl.AttachBehavior(&orderedBehavior{name: "A", log: &log}); err != nil {
		t.Fatalf("attach A: %v", err)
	}
	if err := ctrl.AttachBehavior(&orderedBehavior{name: "B", log: &log}); err != nil {
		t.Fatalf("attach B: %v", err)
	}
	if len(log) != 2 || log[0] != "A" || log[1] != "B" {
		t.Fatalf("association order must follow attach order, got %v", log)
	}
}

func TestAttachBehaviorError(t *testing.T) {
	ctrl, _, _ := newController(10)
	var log []string
	boom := errors.New("no capability")
	err := ctrl.AttachBehavior(&orderedBehavior{name: "A", log: &log, fail: boom})
	if err == nil || !errors.Is(err, boom) {
		t.Fatalf("attach must surface the association error, got %v", err)
	}
}

func TestFreezeLatchesSlide(t *testing.T) {
	ctrl, engine, _ := newController(10)
	var toggles []bool
	ctrl.Subscribe(func(ev display.Event) {
		if e, ok := ev.(display.FreezeToggledEvent); ok {
			toggles = append(toggles, e.Frozen)
		}
	})

	ctrl.Display(2)
	ctrl.ToggleFreeze()
	ctrl.Display(7)

	p := &recordingPainter{}
	ctrl.Redraw(p)
	if len(engine.renderCalls) != 1 || engine.renderCalls[0].slide != 2 {
		t.Fatalf("frozen redraw must render the latched slide, got %+v", engine.renderCalls)
	}
	if ctrl.CurrentSlide() != 7 {
		t.Fatalf("navigation must keep moving underneath the freeze, got %d", ctrl.CurrentSlide())
	}

	ctrl.ToggleFreeze()
	ctrl.Redraw(p)
	if engine.renderCalls[len(engine.renderCalls)-1].slide != 7 {
		t.Fatal("unfreezing must render the stored slide again")
	}

	if len(toggles) != 2 || !toggles[0] || toggles[1] {
		t.Fatalf("expected freeze toggles [true false], got %v", toggles)
	}
}

func TestPointerPressedDispatch(t *testing.T) {
	ctrl, _, _ := newController(10)
	var got []display.PointerPressedEvent
	ctrl.Subscribe(func(ev display.Event) {
		if e, ok := ev.(display.PointerPressedEvent); ok {
			got = append(got, e)
		}
	})
	ctrl.PointerPressed(33, 44)
	if len(got) != 1 || got[0].X != 33 || got[0].Y != 44 {
		t.Fatalf("pointer event not dispatched: %v", got)
	}
}

func TestPrecacheEventsForwarded(t *testing.T) {
	cached := render.NewCachedEngine(render.NewPlaceholderRasterizer(3), render.CacheConfig{
		PrecacheWidth:  64,
		PrecacheHeight: 48,
	})
	host := &fakeHost{w: 400, h: 300}
	ctrl := display.New(cached, host, display.Options{})

	var types []display.EventType
	ctrl.Subscribe(func(ev display.Event) { types = append(types, ev.Type()) })

	if err := cached.Precache(context.Background(), ctrl.PrecacheObserver()); err != nil {
		t.Fatalf("precache: %v", err)
	}

	want := []display.EventType{
		display.EventPrerenderingStarted,
		display.EventSlidePrerendered,
		display.EventSlidePrerendered,
		display.EventSlidePrerendered,
		display.EventPrerenderingCompleted,
	}
	if len(types) != len(want) {
		t.Fatalf("expected %d events, got %v", len(want), types)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("event %d: got %v, want %v", i, types[i], want[i])
		}
	}
}
