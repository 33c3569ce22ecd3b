package overlay

import (
	"fmt"
	"math"
)

// MaxLensSize is the largest magnifier diameter, in pixels, that is drawn.
const MaxLensSize = 1024.0

const (
	lensRingWidth      = 2.0
	lensCrosshairArm   = 10.0
	lensCrosshairWidth = 1.0
)

// LensOffset returns the top-left corner, in zoomed source space, of the
// window the lens shows so that the point under p sits at its centre.
// Results are not clamped to the image.
func LensOffset(p Point, zoom, size float64) (offsetX, offsetY float64) {
	return p.X*zoom - size/2, p.Y*zoom - size/2
}

// CheckLens rejects lens settings that cannot be drawn. A size of 0 is
// allowed and turns the lens off.
func CheckLens(size, zoom float64) error {
	if math.IsNaN(size) || size < 0 || size > MaxLensSize {
		return fmt.Errorf("lens size must be between 0 and %v, got %v", MaxLensSize, size)
	}
	if math.IsNaN(zoom) || math.IsInf(zoom, 0) || zoom <= 0 {
		return fmt.Errorf("lens zoom must be a positive number, got %v", zoom)
	}
	return nil
}

func renderLens(state RenderState) []Command {
	size := state.Options.LensSize
	zoom := state.Options.LensZoom
	if !state.Hovering() || size <= 0 || CheckLens(size, zoom) != nil {
		return nil
	}
	p := *state.Hover
	offX, offY := LensOffset(p, zoom, size)
	mark := HexAlpha(colorRed, 0xcc)

	return []Command{
		{
			Kind: KindLens, Layer: LayerMagnifier,
			X: p.X, Y: p.Y, Width: size, Height: size, Radius: size / 2,
			Zoom: zoom, OffsetX: offX, OffsetY: offY,
		},
		{
			Kind: KindStrokeCircle, Layer: LayerMagnifier,
			X: p.X, Y: p.Y, Radius: size / 2,
			Color: HexAlpha(colorWhite, alphaOpaque), LineWidth: lensRingWidth,
		},
		{
			Kind: KindLine, Layer: LayerMagnifier,
			X: p.X - lensCrosshairArm, Y: p.Y, X2: p.X + lensCrosshairArm, Y2: p.Y,
			Color: mark, LineWidth: lensCrosshairWidth,
		},
		{
			Kind: KindLine, Layer: LayerMagnifier,
			X: p.X, Y: p.Y - lensCrosshairArm, X2: p.X, Y2: p.Y + lensCrosshairArm,
			Color: mark, LineWidth: lensCrosshairWidth,
		},
	}
}
