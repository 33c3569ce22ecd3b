package overlay

import (
	"fmt"
	"math"
)

// NormalizedScale is the extent of each axis in normalized detection space.
const NormalizedScale = 1000.0

// Point is a position in pixel space of the current surface.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Rect is an axis-aligned rectangle in pixel space. Width and Height may be
// negative when built from an inverted box.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// SurfaceDimensions is the backing pixel size of the drawing surface.
type SurfaceDimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Box is a normalized bounding box laid out as [ymin, xmin, ymax, xmax].
type Box [4]float64

func (b Box) YMin() float64 { return b[0] }
func (b Box) XMin() float64 { return b[1] }
func (b Box) YMax() float64 { return b[2] }
func (b Box) XMax() float64 { return b[3] }

// Valid reports whether the box is ordered and inside [0, 1000]. Rendering
// never requires this; it exists for callers that want to warn.
func (b Box) Valid() bool {
	for _, v := range b {
		if v < 0 || v > NormalizedScale || math.IsNaN(v) {
			return false
		}
	}
	return b.YMin() <= b.YMax() && b.XMin() <= b.XMax()
}

// ToPixel maps a normalized box onto the surface by linear scaling.
// No clamping is applied.
func ToPixel(box Box, surface SurfaceDimensions) Rect {
	w := float64(surface.Width)
	h := float64(surface.Height)
	return Rect{
		X:      (box.XMin() / NormalizedScale) * w,
		Y:      (box.YMin() / NormalizedScale) * h,
		Width:  ((box.XMax() - box.XMin()) / NormalizedScale) * w,
		Height: ((box.YMax() - box.YMin()) / NormalizedScale) * h,
	}
}

// ToNormalized maps a surface point into normalized detection space.
// A zero-sized surface yields the origin.
func ToNormalized(p Point, surface SurfaceDimensions) Point {
	if surface.Width == 0 || surface.Height == 0 {
		return Point{}
	}
	return Point{
		X: p.X / float64(surface.Width) * NormalizedScale,
		Y: p.Y / float64(surface.Height) * NormalizedScale,
	}
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// FormatDistance renders a pixel distance with one decimal, e.g. "10.0px".
func FormatDistance(d float64) string {
	return fmt.Sprintf("%.1fpx", d)
}
