package recovery

import "fmt"

// BlankStrategy substitutes the blank surface on every render failure. This
// is the default: a failed frame shows as black, never as an error.
type BlankStrategy struct{}

func NewBlankStrategy() *BlankStrategy {
	return &BlankStrategy{}
}

func (s *BlankStrategy) OnRenderError(err error, location Location) Action {
	return ActionBlank
}

// LenientStrategy keeps the prior frame on screen and accumulates the errors
// for later inspection.
type LenientStrategy struct {
	Errors []error
}

func NewLenientStrategy() *LenientStrategy {
	return &LenientStrategy{}
}

func (s *LenientStrategy) OnRenderError(err error, location Location) Action {
	s.Errors = append(s.Errors, fmt.Errorf("[%s] slide %d at %dx%d: %w", location.Component, location.Slide, location.PixelW, location.PixelH, err))
	return ActionKeep
}
