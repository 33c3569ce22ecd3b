// Package raster paints overlay command lists onto a gogpu/gg canvas.
//
// The overlay package decides what to draw; this package only executes the
// commands in order, composites the scan backdrop under them and encodes the
// result as PNG. Fonts also implements overlay.TextMeasurer so label panels
// are sized with the same faces that draw the labels.
package raster
