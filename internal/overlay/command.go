package overlay

// Kind names a draw primitive.
type Kind string

const (
	KindClear        Kind = "clear"
	KindLine         Kind = "line"
	KindStrokeRect   Kind = "stroke_rect"
	KindFillRect     Kind = "fill_rect"
	KindFillCircle   Kind = "fill_circle"
	KindStrokeCircle Kind = "stroke_circle"
	KindText         Kind = "text"
	KindLens         Kind = "lens"
)

// Layer tags which compositing layer emitted a command.
type Layer string

const (
	LayerSurface     Layer = "surface"
	LayerGrid        Layer = "grid"
	LayerFindings    Layer = "findings"
	LayerAnnotations Layer = "annotations"
	LayerActive      Layer = "active"
	LayerMagnifier   Layer = "magnifier"
)

// layerOrder is the paint order; later layers cover earlier ones.
var layerOrder = []Layer{LayerSurface, LayerGrid, LayerFindings, LayerAnnotations, LayerActive, LayerMagnifier}

// LayerRank returns the position of l in the paint order, or -1.
func LayerRank(l Layer) int {
	for i, o := range layerOrder {
		if o == l {
			return i
		}
	}
	return -1
}

// Command is one draw instruction. Which fields matter depends on Kind:
//
//   - clear: Width, Height
//   - line: X, Y to X2, Y2 with LineWidth, optional Dash
//   - stroke_rect, fill_rect: X, Y, Width, Height
//   - fill_circle, stroke_circle: centre X, Y and Radius
//   - text: baseline origin X, Y with Text and FontSize
//   - lens: centre X, Y, diameter Width, Zoom and the sample offsets
//
// Colours are "#rrggbbaa".
type Command struct {
	Kind      Kind      `json:"kind"`
	Layer     Layer     `json:"layer"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	X2        float64   `json:"x2,omitempty"`
	Y2        float64   `json:"y2,omitempty"`
	Width     float64   `json:"width,omitempty"`
	Height    float64   `json:"height,omitempty"`
	Radius    float64   `json:"radius,omitempty"`
	Color     string    `json:"color,omitempty"`
	LineWidth float64   `json:"line_width,omitempty"`
	Dash      []float64 `json:"dash,omitempty"`
	Text      string    `json:"text,omitempty"`
	FontSize  float64   `json:"font_size,omitempty"`
	Zoom      float64   `json:"zoom,omitempty"`
	OffsetX   float64   `json:"offset_x,omitempty"`
	OffsetY   float64   `json:"offset_y,omitempty"`
}

// TextMeasurer reports the advance width of text at a font size in pixels.
type TextMeasurer interface {
	MeasureText(text string, size float64) float64
}
