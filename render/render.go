package render

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
)

// Area selects the region of a slide the engine draws. It narrows rendering
// only; coordinate conversion always works in full-page terms.
type Area int

const (
	// AreaFull renders the whole slide.
	AreaFull Area = iota
	// AreaNotesLeft renders the left half of a half-split notes slide.
	AreaNotesLeft
	// AreaNotesRight renders the right half of a half-split notes slide.
	AreaNotesRight
)

func (a Area) String() string {
	switch a {
	case AreaFull:
		return "full"
	case AreaNotesLeft:
		return "notes-left"
	case AreaNotesRight:
		return "notes-right"
	}
	return "unknown"
}

// Engine produces pixel surfaces for slides. Implementations may cache or
// pre-warm internally; callers treat every method as synchronous.
type Engine interface {
	// IsReady reports whether the document behind the engine is loaded enough
	// to answer metadata queries and render.
	IsReady() bool

	// SlideCount returns the number of slides in the document. The value is
	// live: a reloaded document may report a different count.
	SlideCount() int

	// PageWidth and PageHeight return the page dimensions in document-space
	// units.
	PageWidth() float64
	PageHeight() float64

	// RenderToSurface renders the given slide, restricted to area, into a
	// surface of pxW x pxH pixels.
	RenderToSurface(slide int, area Area, pxW, pxH int) (image.Image, error)

	// FadeToBlack returns the deterministic blank surface at the given size.
	FadeToBlack(pxW, pxH int) image.Image
}

// ErrSlideOutOfRange is returned when a render is requested for a slide index
// outside the document.
var ErrSlideOutOfRange = errors.New("render: slide out of range")

// FadeToBlack returns a uniform opaque black surface of pxW x pxH pixels.
func FadeToBlack(pxW, pxH int) image.Image {
	if pxW < 0 {
		pxW = 0
	}
	if pxH < 0 {
		pxH = 0
	}
	img := image.NewRGBA(image.Rect(0, 0, pxW, pxH))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	return img
}
