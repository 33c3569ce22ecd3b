package imaging

import (
	"image"
	"image/draw"
	"math"

	"github.com/anthonynsimon/bild/transform"

	"github.com/ironsheep/scan-overlay-mcp/internal/overlay"
)

// DisplaySize returns the surface a scan occupies when shown at displayWidth
// pixels wide with its aspect ratio preserved. A non-positive displayWidth
// keeps the natural size.
func DisplaySize(natural image.Rectangle, displayWidth int) overlay.SurfaceDimensions {
	w, h := natural.Dx(), natural.Dy()
	if displayWidth <= 0 || w == 0 {
		return overlay.SurfaceDimensions{Width: w, Height: h}
	}
	height := int(math.Round(float64(h) * float64(displayWidth) / float64(w)))
	return overlay.SurfaceDimensions{Width: displayWidth, Height: height}
}

// FitToSurface stretches src to exactly fill the surface. The overlay's
// coordinate mapping is a plain linear scale on each axis, so the backdrop
// must be scaled the same way for findings to line up.
func FitToSurface(src image.Image, surface overlay.SurfaceDimensions) *image.RGBA {
	if surface.Width <= 0 || surface.Height <= 0 || src.Bounds().Empty() {
		return image.NewRGBA(image.Rect(0, 0, max(surface.Width, 0), max(surface.Height, 0)))
	}
	b := src.Bounds()
	if b.Dx() == surface.Width && b.Dy() == surface.Height {
		out := image.NewRGBA(image.Rect(0, 0, surface.Width, surface.Height))
		draw.Draw(out, out.Bounds(), src, b.Min, draw.Src)
		return out
	}
	return transform.Resize(src, surface.Width, surface.Height, transform.Linear)
}
