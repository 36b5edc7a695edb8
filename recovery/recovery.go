package recovery

// Strategy decides how the display pipeline reacts when the render engine
// fails to produce a surface for a frame. Whatever the decision, the error
// itself never propagates past the dispatcher.
type Strategy interface {
	OnRenderError(err error, location Location) Action
}

// Location identifies the render request that failed.
type Location struct {
	Slide     int
	Area      string
	PixelW    int
	PixelH    int
	Component string
}

type Action int

const (
	// ActionBlank substitutes the deterministic blank surface for the frame.
	ActionBlank Action = iota
	// ActionKeep composites nothing, leaving the prior frame's pixels in
	// place.
	ActionKeep
)
