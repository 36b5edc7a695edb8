package notes

import (
	"github.com/wudi/slidekit/display"
	"github.com/wudi/slidekit/observability"
)

// Overlay tracks the plain-text note for the slide currently being shown.
// Subscribe Listen to a display controller and read Current from the same
// goroutine.
type Overlay struct {
	notes  *Notes
	logger observability.Logger
	text   string
}

func NewOverlay(n *Notes, logger observability.Logger) *Overlay {
	if logger == nil {
		logger = observability.NopLogger{}
	}
	return &Overlay{notes: n, logger: logger}
}

// Listen is a display.Listener. A note that fails to render shows as empty;
// the failure is logged, never surfaced.
func (o *Overlay) Listen(ev display.Event) {
	e, ok := ev.(display.EnteringSlideEvent)
	if !ok {
		return
	}
	text, err := o.notes.PlainText(e.Slide)
	if err != nil {
		o.logger.Warn("note render failed",
			observability.Int("slide", e.Slide),
			observability.Error("err", err))
		text = ""
	}
	o.text = text
}

// Current returns the note for the slide being shown, or "".
func (o *Overlay) Current() string { return o.text }
