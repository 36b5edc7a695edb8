package scripting

import (
	"context"
)

// Engine represents a scripting engine (e.g., JavaScript).
type Engine interface {
	// Execute executes a script in the context of the presentation.
	Execute(ctx context.Context, script string) (interface{}, error)

	// RegisterHost exposes the presentation to the engine.
	RegisterHost(host PresenterHost) error
}

// PresenterHost is the safe, controlled API scripts use to drive and query
// the slide display.
type PresenterHost interface {
	// CurrentSlide returns the stored slide index.
	CurrentSlide() int

	// SlideCount returns the number of slides in the document.
	SlideCount() int

	// DisplaySlide navigates to the given slide. Out-of-range input is
	// clamped by the display core, not here.
	DisplaySlide(n int)

	// Alert shows an alert (if supported by the embedding presenter).
	Alert(message string)
}
