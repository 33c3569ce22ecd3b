package imaging

import (
	"fmt"
	"image"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/scan-overlay-mcp/internal/overlay"
)

// RGBAColor represents an RGBA color with 8-bit components including alpha.
type RGBAColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// HSLColor represents a color in HSL space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult contains a sampled pixel in several representations.
type ColorResult struct {
	Hex  string    `json:"hex"` // "#RRGGBB", alpha excluded
	RGBA RGBAColor `json:"rgba"`
	HSL  HSLColor  `json:"hsl"`
}

// SurfaceSample is the color under a surface point together with the source
// pixel it was read from.
type SurfaceSample struct {
	SurfaceX float64     `json:"surface_x"`
	SurfaceY float64     `json:"surface_y"`
	SourceX  int         `json:"source_x"`
	SourceY  int         `json:"source_y"`
	Color    ColorResult `json:"color"`
}

// SampleColor extracts the color value at a source pixel coordinate.
//
// Coordinates are 0-based with origin at top-left. 16-bit images are scaled
// down to 8-bit components. The hex form excludes alpha; use RGBA.A to get
// transparency.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	r, g, b, a := img.At(x, y).RGBA()
	r8, g8, b8, a8 := uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8)

	c := colorful.Color{R: float64(r8) / 255, G: float64(g8) / 255, B: float64(b8) / 255}
	h, s, l := c.Hsl()

	return &ColorResult{
		Hex:  strings.ToUpper(c.Hex()),
		RGBA: RGBAColor{R: r8, G: g8, B: b8, A: a8},
		HSL:  HSLColor{H: int(math.Round(h)) % 360, S: int(math.Round(s * 100)), L: int(math.Round(l * 100))},
	}, nil
}

// SourcePixel maps a surface point onto the source pixel displayed under it,
// given that the source is stretched to fill the surface. ok is false when the
// point falls outside the surface or the surface is empty.
func SourcePixel(p overlay.Point, surface overlay.SurfaceDimensions, bounds image.Rectangle) (image.Point, bool) {
	if surface.Width <= 0 || surface.Height <= 0 || bounds.Empty() {
		return image.Point{}, false
	}
	if p.X < 0 || p.Y < 0 || p.X >= float64(surface.Width) || p.Y >= float64(surface.Height) {
		return image.Point{}, false
	}
	x := int(math.Floor(p.X * float64(bounds.Dx()) / float64(surface.Width)))
	y := int(math.Floor(p.Y * float64(bounds.Dy()) / float64(surface.Height)))
	return image.Pt(bounds.Min.X+x, bounds.Min.Y+y), true
}

// SampleAtSurface reads the source color displayed under surface point p.
func SampleAtSurface(img image.Image, surface overlay.SurfaceDimensions, p overlay.Point) (*SurfaceSample, error) {
	src, ok := SourcePixel(p, surface, img.Bounds())
	if !ok {
		return nil, fmt.Errorf("point (%.1f,%.1f) outside %dx%d surface", p.X, p.Y, surface.Width, surface.Height)
	}
	c, err := SampleColor(img, src.X, src.Y)
	if err != nil {
		return nil, err
	}
	return &SurfaceSample{
		SurfaceX: p.X,
		SurfaceY: p.Y,
		SourceX:  src.X,
		SourceY:  src.Y,
		Color:    *c,
	}, nil
}
