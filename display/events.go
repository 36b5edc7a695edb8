package display

type EventType int

const (
	EventLeavingSlide EventType = iota
	EventEnteringSlide
	EventFreezeToggled
	EventPrerenderingStarted
	EventSlidePrerendered
	EventPrerenderingCompleted
	EventPointerPressed
)

// Event is a controller lifecycle notification. Events are dispatched
// synchronously to subscribed listeners, in subscription order, in the exact
// order the corresponding state transitions occur.
type Event interface{ Type() EventType }

// LeavingSlideEvent fires before the slide index mutates. From is the index
// being left, To the index about to be shown (already clamped).
type LeavingSlideEvent struct{ From, To int }

func (LeavingSlideEvent) Type() EventType { return EventLeavingSlide }

// EnteringSlideEvent fires after the slide index has mutated and a redraw has
// been requested.
type EnteringSlideEvent struct{ Slide int }

func (EnteringSlideEvent) Type() EventType { return EventEnteringSlide }

type FreezeToggledEvent struct{ Frozen bool }

func (FreezeToggledEvent) Type() EventType { return EventFreezeToggled }

type PrerenderingStartedEvent struct{}

func (PrerenderingStartedEvent) Type() EventType { return EventPrerenderingStarted }

// SlidePrerenderedEvent fires once per slide during a precache cycle, so a
// full cycle produces SlideCount of them.
type SlidePrerenderedEvent struct{}

func (SlidePrerenderedEvent) Type() EventType { return EventSlidePrerendered }

type PrerenderingCompletedEvent struct{}

func (PrerenderingCompletedEvent) Type() EventType { return EventPrerenderingCompleted }

// PointerPressedEvent carries a pointer press in logical device coordinates
// (unscaled; hit-testing geometry never sees the device pixel ratio).
type PointerPressedEvent struct{ X, Y int }

func (PointerPressedEvent) Type() EventType { return EventPointerPressed }

// Listener receives controller events.
type Listener func(Event)
