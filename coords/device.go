package coords

import "math"

// Rect is a rectangle in document space. The origin is at the bottom-left
// corner of the page and Y grows upward, so Y1 <= Y2 with Y2 nearer the top
// edge of the page.
type Rect struct {
	X1, Y1, X2, Y2 float64
}

// Contains reports whether the document-space point (x, y) lies within r.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X1 && x <= r.X2 && y >= r.Y1 && y <= r.Y2
}

// DeviceRect is a rectangle in device space: integer pixels, origin at the
// top-left corner, Y growing downward.
type DeviceRect struct {
	X, Y, Width, Height int
}

// Empty reports whether d has no area. Callers must treat an empty rectangle
// as "no interactive region".
func (d DeviceRect) Empty() bool { return d.Width <= 0 || d.Height <= 0 }

// Contains reports whether the device-space point (x, y) lies within d.
func (d DeviceRect) Contains(x, y int) bool {
	return x >= d.X && x < d.X+d.Width && y >= d.Y && y < d.Y+d.Height
}

// ToDevice maps a document-space rectangle onto an output area of outW x outH
// pixels for a page of pageW x pageH document units. The vertical axis is
// flipped: document origin is bottom-left, device origin is top-left.
//
// Rounding is asymmetric: the origin rounds up and the extent rounds down,
// so the mapped rectangle never exceeds the proportional footprint of the
// source rectangle and interactive zones never bleed into neighboring
// content.
func ToDevice(r Rect, pageW, pageH float64, outW, outH int) DeviceRect {
	w := float64(outW)
	h := float64(outH)
	return DeviceRect{
		X:      int(math.Ceil(r.X1 / pageW * w)),
		Y:      int(math.Ceil((pageH - r.Y2) / pageH * h)),
		Width:  int(math.Floor((r.X2 - r.X1) / pageW * w)),
		Height: int(math.Floor((r.Y2 - r.Y1) / pageH * h)),
	}
}
