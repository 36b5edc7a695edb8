package render_test

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/draw"

	"github.com/wudi/slidekit/render"
)

func solid(w, h int, c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func TestDeckRasterize(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	blue := color.RGBA{0, 0, 255, 255}
	deck := render.NewDeckRasterizer([]image.Image{
		solid(80, 60, red),
		solid(80, 60, blue),
	}, 800, 600)

	if deck.SlideCount() != 2 {
		t.Fatalf("expected 2 slides, got %d", deck.SlideCount())
	}
	if w, h := deck.PageSize(); w != 800 || h != 600 {
		t.Fatalf("unexpected page size %vx%v", w, h)
	}

	img, err := deck.Rasterize(1, render.AreaFull, 40, 30)
	if err != nil {
		t.Fatalf("rasterize: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 40 || b.Dy() != 30 {
		t.Fatalf("expected 40x30 surface, got %dx%d", b.Dx(), b.Dy())
	}
	if got := color.RGBAModel.Convert(img.At(20, 15)); got != blue {
		t.Fatalf("expected blue center, got %v", got)
	}
}

func TestDeckRasterizeNotesAreas(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	blue := color.RGBA{0, 0, 255, 255}

	// Content on the left half, notes on the right half.
	src := image.NewRGBA(image.Rect(0, 0, 80, 60))
	draw.Draw(src, image.Rect(0, 0, 40, 60), image.NewUniform(red), image.Point{}, draw.Src)
	draw.Draw(src, image.Rect(40, 0, 80, 60), image.NewUniform(blue), image.Point{}, draw.Src)

	deck := render.NewDeckRasterizer([]image.Image{src}, 800, 600)
	deck.Scaler = draw.NearestNeighbor

	left, err := deck.Rasterize(0, render.AreaNotesLeft, 20, 30)
	if err != nil {
		t.Fatalf("rasterize left: %v", err)
	}
	if got := color.RGBAModel.Convert(left.At(10, 15)); got != red {
		t.Fatalf("left half should be red, got %v", got)
	}

	right, err := deck.Rasterize(0, render.AreaNotesRight, 20, 30)
	if err != nil {
		t.Fatalf("rasterize right: %v", err)
	}
	if got := color.RGBAModel.Convert(right.At(10, 15)); got != blue {
		t.Fatalf("right half should be blue, got %v", got)
	}
}

func TestDeckRasterizeOutOfRange(t *testing.T) {
	deck := render.NewDeckRasterizer(nil, 800, 600)
	if _, err := deck.Rasterize(0, render.AreaFull, 10, 10); !errors.Is(err, render.ErrSlideOutOfRange) {
		t.Fatalf("expected ErrSlideOutOfRange, got %v", err)
	}
}

func TestPlaceholderRasterize(t *testing.T) {
	p := render.NewPlaceholderRasterizer(3)
	if p.SlideCount() != 3 {
		t.Fatalf("expected 3 slides, got %d", p.SlideCount())
	}

	a, err := p.Rasterize(1, render.AreaFull, 120, 90)
	if err != nil {
		t.Fatalf("rasterize: %v", err)
	}
	if b := a.Bounds(); b.Dx() != 120 || b.Dy() != 90 {
		t.Fatalf("expected 120x90 surface, got %dx%d", b.Dx(), b.Dy())
	}

	// Deterministic: the same request yields identical pixels.
	b, err := p.Rasterize(1, render.AreaFull, 120, 90)
	if err != nil {
		t.Fatalf("rasterize: %v", err)
	}
	for y := 0; y < 90; y++ {
		for x := 0; x < 120; x++ {
			if a.At(x, y) != b.At(x, y) {
				t.Fatalf("placeholder not deterministic at (%d,%d)", x, y)
			}
		}
	}

	if _, err := p.Rasterize(3, render.AreaFull, 10, 10); !errors.Is(err, render.ErrSlideOutOfRange) {
		t.Fatalf("expected ErrSlideOutOfRange, got %v", err)
	}
}
