// Package imaging handles the raster side of the scan behind the overlay.
//
// It decodes and caches source scans (PNG, JPEG, GIF, TIFF, BMP, WebP), works
// out the display surface a scan occupies, stretches the scan onto that
// surface for the backdrop, samples the pixels shown inside the magnifier
// lens, and reads colors and distances under surface points.
//
// # Coordinate System
//
// Two spaces meet here:
//   - Source pixels: 0-based integer coordinates of the decoded scan.
//   - Surface pixels: float coordinates on the display surface, the space the
//     overlay package draws in. The scan is stretched to fill the surface, so
//     the mapping is an independent linear scale on each axis.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The remaining functions are stateless.
package imaging
