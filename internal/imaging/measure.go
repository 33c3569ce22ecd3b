package imaging

import (
	"image"
	"math"

	"github.com/ironsheep/scan-overlay-mcp/internal/overlay"
)

// DistanceResult describes the segment between two surface points.
type DistanceResult struct {
	DistancePixels        float64 `json:"distance_pixels"`
	DistanceLabel         string  `json:"distance_label"`
	DeltaX                float64 `json:"delta_x"`
	DeltaY                float64 `json:"delta_y"`
	AngleDegrees          float64 `json:"angle_degrees"`
	DistancePercentWidth  float64 `json:"distance_percent_width"`
	DistancePercentHeight float64 `json:"distance_percent_height"`

	// SourceDistancePixels is the same segment measured in the scan's natural
	// pixels. Zero when no image is loaded.
	SourceDistancePixels float64 `json:"source_distance_pixels,omitempty"`
}

// MeasureDistance measures the segment a-b drawn on the surface. The label
// matches what a committed annotation of the same endpoints would show.
// natural may be empty when no scan is loaded.
func MeasureDistance(surface overlay.SurfaceDimensions, natural image.Rectangle, a, b overlay.Point) *DistanceResult {
	deltaX := b.X - a.X
	deltaY := b.Y - a.Y
	distance := overlay.Distance(a, b)

	// 0 = horizontal right, 90 = down
	angle := math.Atan2(deltaY, deltaX) * 180 / math.Pi

	result := &DistanceResult{
		DistancePixels: math.Round(distance*100) / 100,
		DistanceLabel:  overlay.FormatDistance(distance),
		DeltaX:         deltaX,
		DeltaY:         deltaY,
		AngleDegrees:   math.Round(angle*10) / 10,
	}
	if surface.Width > 0 {
		result.DistancePercentWidth = math.Round(distance/float64(surface.Width)*1000) / 10
	}
	if surface.Height > 0 {
		result.DistancePercentHeight = math.Round(distance/float64(surface.Height)*1000) / 10
	}
	if !natural.Empty() && surface.Width > 0 && surface.Height > 0 {
		sx := deltaX * float64(natural.Dx()) / float64(surface.Width)
		sy := deltaY * float64(natural.Dy()) / float64(surface.Height)
		result.SourceDistancePixels = math.Round(math.Sqrt(sx*sx+sy*sy)*100) / 100
	}
	return result
}
