package imaging

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/scan-overlay-mcp/internal/overlay"
)

// SampleLens returns the size x size pixels a magnifier shows.
//
// The source is treated as stretched to the surface and then scaled by zoom;
// the window whose top-left corner sits at (offX, offY) in that virtual image
// is returned. Pixels that fall outside the image are left transparent.
// Sizes above overlay.MaxLensSize yield an empty image.
func SampleLens(src image.Image, surface overlay.SurfaceDimensions, offX, offY, zoom, size float64) *image.NRGBA {
	if math.IsNaN(size) || size > overlay.MaxLensSize {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	n := int(math.Round(size))
	if n <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	dst := imaging.New(n, n, color.NRGBA{})

	vw := float64(surface.Width) * zoom
	vh := float64(surface.Height) * zoom
	b := src.Bounds()
	if vw <= 0 || vh <= 0 || b.Empty() {
		return dst
	}

	// Visible part of the window, in virtual coordinates.
	x0, y0 := math.Max(offX, 0), math.Max(offY, 0)
	x1, y1 := math.Min(offX+size, vw), math.Min(offY+size, vh)
	if x0 >= x1 || y0 >= y1 {
		return dst
	}

	sx := float64(b.Dx()) / vw
	sy := float64(b.Dy()) / vh
	region := image.Rect(
		b.Min.X+int(math.Floor(x0*sx)),
		b.Min.Y+int(math.Floor(y0*sy)),
		b.Min.X+int(math.Ceil(x1*sx)),
		b.Min.Y+int(math.Ceil(y1*sy)),
	).Intersect(b)
	if region.Empty() {
		return dst
	}

	dw := int(math.Round(x1 - x0))
	dh := int(math.Round(y1 - y0))
	if dw <= 0 || dh <= 0 {
		return dst
	}

	patch := imaging.Resize(imaging.Crop(src, region), dw, dh, imaging.Lanczos)
	at := image.Pt(int(math.Round(x0-offX)), int(math.Round(y0-offY)))
	return imaging.Paste(dst, patch, at)
}

// Magnify samples the lens centred on surface point p and encodes it as PNG.
func Magnify(src image.Image, surface overlay.SurfaceDimensions, p overlay.Point, zoom, size float64) (*EncodedImage, error) {
	offX, offY := overlay.LensOffset(p, zoom, size)
	return EncodePNG(SampleLens(src, surface, offX, offY, zoom, size))
}
