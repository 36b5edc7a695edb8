package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// PlaceholderRasterizer produces deterministic numbered slides without any
// document backing it. Useful for demos and for exercising the display
// pipeline in tests.
type PlaceholderRasterizer struct {
	Slides int
	PageW  float64
	PageH  float64
}

// NewPlaceholderRasterizer returns a rasterizer for n slides on a landscape
// 4:3 page (800x600 document units).
func NewPlaceholderRasterizer(n int) *PlaceholderRasterizer {
	return &PlaceholderRasterizer{Slides: n, PageW: 800, PageH: 600}
}

func (p *PlaceholderRasterizer) SlideCount() int { return p.Slides }

func (p *PlaceholderRasterizer) PageSize() (w, h float64) { return p.PageW, p.PageH }

func (p *PlaceholderRasterizer) Rasterize(slide int, area Area, pxW, pxH int) (image.Image, error) {
	if slide < 0 || slide >= p.Slides {
		return nil, fmt.Errorf("%w: %d of %d", ErrSlideOutOfRange, slide, p.Slides)
	}
	if pxW <= 0 || pxH <= 0 {
		return nil, fmt.Errorf("invalid surface size %dx%d", pxW, pxH)
	}

	img := image.NewRGBA(image.Rect(0, 0, pxW, pxH))

	// Background shade cycles with the slide index so adjacent slides are
	// visually distinct.
	shade := uint8(220 - 10*(slide%5))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{shade, shade, shade, 255}), image.Point{}, draw.Src)

	border := color.RGBA{60, 60, 60, 255}
	for x := 0; x < pxW; x++ {
		img.SetRGBA(x, 0, border)
		img.SetRGBA(x, pxH-1, border)
	}
	for y := 0; y < pxH; y++ {
		img.SetRGBA(0, y, border)
		img.SetRGBA(pxW-1, y, border)
	}

	label := fmt.Sprintf("slide %d", slide+1)
	switch area {
	case AreaNotesLeft:
		label += " (content)"
	case AreaNotesRight:
		label += " (notes)"
	}

	face := basicfont.Face7x13
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: face,
	}
	w := d.MeasureString(label)
	d.Dot = fixed.Point26_6{
		X: fixed.I(pxW)/2 - w/2,
		Y: fixed.I(pxH / 2),
	}
	d.DrawString(label)

	return img, nil
}
