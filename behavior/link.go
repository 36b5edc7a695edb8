// Package behavior provides interaction behaviors that attach to a display
// controller: link hit-testing and script-driven hooks. Behaviors register
// event interest at association time and hold only a reference back to their
// host controller.
package behavior

import (
	"fmt"

	"github.com/wudi/slidekit/coords"
	"github.com/wudi/slidekit/display"
)

// Link is an interactive region on a slide, given in document-space
// coordinates. A link either jumps to Target or, when URI is set, is handed
// to the external URI handler.
type Link struct {
	Rect   coords.Rect
	Target int
	URI    string
}

// LinkBehavior activates links under pointer presses. Hit boxes are
// converted to logical device coordinates on demand, so they track the
// host's current allocation.
type LinkBehavior struct {
	links   map[int][]Link
	openURI func(string)
	c       *display.Controller
}

// NewLinkBehavior builds a link behavior. openURI handles external targets
// and may be nil, in which case URI links are ignored.
func NewLinkBehavior(openURI func(string)) *LinkBehavior {
	return &LinkBehavior{links: make(map[int][]Link), openURI: openURI}
}

// AddLink registers a link on the given slide.
func (b *LinkBehavior) AddLink(slide int, link Link) {
	b.links[slide] = append(b.links[slide], link)
}

func (b *LinkBehavior) Associate(c *display.Controller) error {
	if b.c != nil {
		return fmt.Errorf("link behavior already associated")
	}
	b.c = c
	c.Subscribe(func(ev display.Event) {
		if p, ok := ev.(display.PointerPressedEvent); ok {
			b.pressed(p.X, p.Y)
		}
	})
	return nil
}

func (b *LinkBehavior) pressed(x, y int) {
	for _, l := range b.links[b.c.CurrentSlide()] {
		d := b.c.ConvertToDeviceRect(l.Rect)
		if d.Empty() || !d.Contains(x, y) {
			continue
		}
		if l.URI != "" {
			if b.openURI != nil {
				b.openURI(l.URI)
			}
			return
		}
		b.c.Display(l.Target)
		return
	}
}
