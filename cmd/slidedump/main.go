// slidedump drives a slide-display controller over every slide of a deck,
// including the trailing blank frame, and writes the composited frames as
// PNG files. Without -images it renders placeholder slides.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/wudi/slidekit/coords"
	"github.com/wudi/slidekit/display"
	"github.com/wudi/slidekit/notes"
	"github.com/wudi/slidekit/render"
)

// offscreen is both the Host and the Painter: frames land in an RGBA buffer
// sized to the logical allocation.
type offscreen struct {
	w, h      int
	transform coords.Matrix
	frame     *image.RGBA
}

func newOffscreen(w, h int) *offscreen {
	return &offscreen{
		w:         w,
		h:         h,
		transform: coords.Identity(),
		frame:     image.NewRGBA(image.Rect(0, 0, w, h)),
	}
}

func (o *offscreen) AllocatedSize() (int, int) { return o.w, o.h }
func (o *offscreen) RequestRedraw()            {}

func (o *offscreen) Scale(sx, sy float64) {
	o.transform = coords.Scale(sx, sy).Multiply(o.transform)
}

func (o *offscreen) DrawSurface(img image.Image) {
	b := img.Bounds()
	// Only scale transforms reach this painter; push the surface extent
	// through it to find the destination size.
	ext := o.transform.Transform(coords.Point{X: float64(b.Dx()), Y: float64(b.Dy())})
	dst := image.Rect(0, 0, int(ext.X+0.5), int(ext.Y+0.5))
	xdraw.ApproxBiLinear.Scale(o.frame, dst, img, b, xdraw.Src, nil)
}

func (o *offscreen) reset() {
	o.transform = coords.Identity()
	for i := range o.frame.Pix {
		o.frame.Pix[i] = 0
	}
}

func loadDeck(dir string) ([]image.Image, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil, fmt.Errorf("no slide images in %s", dir)
	}

	slides := make([]image.Image, 0, len(names))
	for _, name := range names {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		slides = append(slides, img)
	}
	return slides, nil
}

func main() {
	var (
		slideCount = flag.Int("n", 8, "placeholder slide count (ignored with -images)")
		images     = flag.String("images", "", "directory of slide images")
		out        = flag.String("out", "frames", "output directory")
		scale      = flag.Int("scale", 1, "device pixel ratio")
		width      = flag.Int("width", 640, "logical width")
		height     = flag.Int("height", 480, "logical height")
		notesFile  = flag.String("notes", "", "markdown speaker notes file")
	)
	flag.Parse()

	var ras render.Rasterizer
	if *images != "" {
		deck, err := loadDeck(*images)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load deck: %v\n", err)
			os.Exit(1)
		}
		ras = render.NewDeckRasterizer(deck, 800, 600)
	} else {
		ras = render.NewPlaceholderRasterizer(*slideCount)
	}

	engine := render.NewCachedEngine(ras, render.CacheConfig{
		PrecacheWidth:  *width * *scale,
		PrecacheHeight: *height * *scale,
	})

	host := newOffscreen(*width, *height)
	ctrl := display.New(engine, host, display.Options{ScaleFactor: *scale})

	var overlay *notes.Overlay
	if *notesFile != "" {
		data, err := os.ReadFile(*notesFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read notes: %v\n", err)
			os.Exit(1)
		}
		ns, err := notes.Parse(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "parse notes: %v\n", err)
			os.Exit(1)
		}
		overlay = notes.NewOverlay(ns, nil)
		ctrl.Subscribe(overlay.Listen)
	}

	if err := engine.Precache(context.Background(), ctrl.PrecacheObserver()); err != nil {
		fmt.Fprintf(os.Stderr, "precache: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(*out, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir: %v\n", err)
		os.Exit(1)
	}

	// One frame per slide plus the blank sentinel past the end.
	n := engine.SlideCount()
	for i := 0; i <= n; i++ {
		ctrl.Display(i)
		host.reset()
		ctrl.Redraw(host)

		name := filepath.Join(*out, fmt.Sprintf("slide-%02d.png", i))
		f, err := os.Create(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "create %s: %v\n", name, err)
			os.Exit(1)
		}
		if err := png.Encode(f, host.frame); err != nil {
			f.Close()
			fmt.Fprintf(os.Stderr, "encode %s: %v\n", name, err)
			os.Exit(1)
		}
		f.Close()

		if overlay != nil && overlay.Current() != "" {
			fmt.Printf("%s\n  notes: %s\n", name, overlay.Current())
		} else {
			fmt.Println(name)
		}
	}
}
