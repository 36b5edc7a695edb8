package render

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// DeckRasterizer rasterizes a fixed deck of pre-decoded slide images,
// resampling each to the requested pixel size. The notes areas crop the
// source to its left or right half before scaling, matching the half-split
// notes layout convention.
type DeckRasterizer struct {
	slides []image.Image
	pageW  float64
	pageH  float64

	// Scaler used for resampling; defaults to CatmullRom.
	Scaler draw.Scaler
}

// NewDeckRasterizer builds a rasterizer over slides for a page of
// pageW x pageH document units. All slides are assumed to share the page
// aspect ratio.
func NewDeckRasterizer(slides []image.Image, pageW, pageH float64) *DeckRasterizer {
	return &DeckRasterizer{slides: slides, pageW: pageW, pageH: pageH}
}

func (d *DeckRasterizer) SlideCount() int { return len(d.slides) }

func (d *DeckRasterizer) PageSize() (w, h float64) { return d.pageW, d.pageH }

func (d *DeckRasterizer) Rasterize(slide int, area Area, pxW, pxH int) (image.Image, error) {
	if slide < 0 || slide >= len(d.slides) {
		return nil, fmt.Errorf("%w: %d of %d", ErrSlideOutOfRange, slide, len(d.slides))
	}
	if pxW <= 0 || pxH <= 0 {
		return nil, fmt.Errorf("invalid surface size %dx%d", pxW, pxH)
	}

	src := d.slides[slide]
	sb := clipToArea(src.Bounds(), area)

	dst := image.NewRGBA(image.Rect(0, 0, pxW, pxH))
	scaler := d.Scaler
	if scaler == nil {
		scaler = draw.CatmullRom
	}
	scaler.Scale(dst, dst.Bounds(), src, sb, draw.Src, nil)
	return dst, nil
}

func clipToArea(b image.Rectangle, area Area) image.Rectangle {
	switch area {
	case AreaNotesLeft:
		b.Max.X = b.Min.X + b.Dx()/2
	case AreaNotesRight:
		b.Min.X = b.Min.X + b.Dx()/2
	}
	return b
}
