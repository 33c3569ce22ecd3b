// Package overlay implements the annotation and spatial overlay engine of the
// scan viewer.
//
// The engine turns three inputs into an ordered list of draw commands:
// externally supplied findings (boxes in a normalized 0-1000 space), the
// measurement annotations a user has committed, and the live pointer state.
// It knows nothing about pixels on a real screen; package raster executes the
// commands.
//
// # Coordinate Spaces
//
// Normalized detection space runs from 0 to 1000 on both axes regardless of
// image size. Findings use it, as [ymin, xmin, ymax, xmax]. Pixel space is the
// current drawing surface, origin top-left, X right, Y down. Pointer
// positions and annotations live in pixel space. ToPixel is the only bridge.
//
// Committed annotations keep the pixel coordinates they were drawn with; a
// later Resize does not rescale them.
//
// # State and Rendering
//
// RenderState is a value. Every Session handler derives a new RenderState
// from the previous one and asks the FrameScheduler for a redraw; Render is
// a pure function of the state. Layers paint in a fixed order:
//
//  1. grid (optional, decorative)
//  2. findings (severity-coloured boxes with label panels)
//  3. annotations (measurement lines with distance labels)
//  4. active (dashed draw preview, or hover crosshair)
//  5. magnifier lens (hovering and not drawing)
//
// # Error Handling
//
// Nothing in this package returns an error or panics on bad geometry. Inverted
// or out-of-range boxes render as negative or off-surface rectangles, a zero
// surface collapses everything to zero size, and a nil finding list is an
// empty layer.
//
// # Concurrency
//
// A Session is single-threaded: all handlers are expected to run from one
// event loop, one at a time. It does no locking.
package overlay
