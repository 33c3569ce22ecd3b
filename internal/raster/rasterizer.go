package raster

import (
	"bytes"
	"fmt"
	"image"

	"github.com/gogpu/gg"

	viewerr "github.com/ironsheep/scan-overlay-mcp/internal/errors"
	"github.com/ironsheep/scan-overlay-mcp/internal/imaging"
	"github.com/ironsheep/scan-overlay-mcp/internal/overlay"
)

// Backdrop defaults.
const (
	DefaultBackground      = "#020617"
	DefaultBackdropOpacity = 0.8
)

// Rasterizer executes overlay commands against a fresh gg context per frame.
// It remembers the last stretched backdrop so repeated frames of the same scan
// and surface skip the resample. A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	fonts      *Fonts
	background string
	opacity    float64

	fitted     *gg.ImageBuf
	fittedSrc  image.Image
	fittedSize overlay.SurfaceDimensions
}

// New returns a Rasterizer drawing labels with fonts.
func New(fonts *Fonts) *Rasterizer {
	return &Rasterizer{
		fonts:      fonts,
		background: DefaultBackground,
		opacity:    DefaultBackdropOpacity,
	}
}

// Rasterize paints cmds on a surface-sized canvas. source may be nil, in which
// case the backdrop is the plain background and the lens shows nothing.
func (r *Rasterizer) Rasterize(surface overlay.SurfaceDimensions, source image.Image, cmds []overlay.Command) (image.Image, error) {
	dc, err := r.paint(surface, source, cmds)
	if err != nil {
		return nil, err
	}
	defer dc.Close()
	return dc.Image(), nil
}

// RenderPNG paints cmds and encodes the canvas as a base64 PNG.
func (r *Rasterizer) RenderPNG(surface overlay.SurfaceDimensions, source image.Image, cmds []overlay.Command) (*imaging.EncodedImage, error) {
	dc, err := r.paint(surface, source, cmds)
	if err != nil {
		return nil, err
	}
	defer dc.Close()

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, viewerr.NewRenderFailedError(fmt.Errorf("failed to encode frame: %w", err))
	}
	return imaging.EncodedPNG(surface.Width, surface.Height, buf.Bytes()), nil
}

func (r *Rasterizer) paint(surface overlay.SurfaceDimensions, source image.Image, cmds []overlay.Command) (*gg.Context, error) {
	if surface.Width <= 0 || surface.Height <= 0 ||
		surface.Width > overlay.MaxSurfaceDimension || surface.Height > overlay.MaxSurfaceDimension {
		return nil, viewerr.NewRenderFailedError(fmt.Errorf("cannot rasterize a %dx%d surface", surface.Width, surface.Height))
	}

	dc := gg.NewContext(surface.Width, surface.Height)
	for i, cmd := range cmds {
		if err := r.exec(dc, surface, source, cmd); err != nil {
			dc.Close()
			return nil, viewerr.NewRenderFailedError(fmt.Errorf("command %d (%s): %w", i, cmd.Kind, err))
		}
	}
	return dc, nil
}

func (r *Rasterizer) exec(dc *gg.Context, surface overlay.SurfaceDimensions, source image.Image, cmd overlay.Command) error {
	switch cmd.Kind {
	case overlay.KindClear:
		dc.ClearWithColor(gg.Hex(r.background))
		if source != nil {
			dc.DrawImageEx(r.backdrop(source, surface), gg.DrawImageOptions{
				X:       0,
				Y:       0,
				Opacity: r.opacity,
			})
		}
		return nil

	case overlay.KindLine:
		dc.SetHexColor(cmd.Color)
		dc.SetLineWidth(cmd.LineWidth)
		if len(cmd.Dash) > 0 {
			dc.SetDash(cmd.Dash...)
		} else {
			dc.ClearDash()
		}
		dc.DrawLine(cmd.X, cmd.Y, cmd.X2, cmd.Y2)
		err := dc.Stroke()
		dc.ClearDash()
		return err

	case overlay.KindStrokeRect:
		dc.SetHexColor(cmd.Color)
		dc.SetLineWidth(cmd.LineWidth)
		dc.DrawRectangle(cmd.X, cmd.Y, cmd.Width, cmd.Height)
		return dc.Stroke()

	case overlay.KindFillRect:
		dc.SetHexColor(cmd.Color)
		dc.DrawRectangle(cmd.X, cmd.Y, cmd.Width, cmd.Height)
		return dc.Fill()

	case overlay.KindFillCircle:
		dc.SetHexColor(cmd.Color)
		dc.DrawCircle(cmd.X, cmd.Y, cmd.Radius)
		return dc.Fill()

	case overlay.KindStrokeCircle:
		dc.SetHexColor(cmd.Color)
		dc.SetLineWidth(cmd.LineWidth)
		dc.DrawCircle(cmd.X, cmd.Y, cmd.Radius)
		return dc.Stroke()

	case overlay.KindText:
		if r.fonts == nil {
			return nil
		}
		dc.SetFont(r.fonts.Face(cmd.FontSize))
		dc.SetHexColor(cmd.Color)
		dc.DrawString(cmd.Text, cmd.X, cmd.Y)
		return nil

	case overlay.KindLens:
		return r.lens(dc, surface, source, cmd)
	}
	return fmt.Errorf("unknown command kind %q", cmd.Kind)
}

func (r *Rasterizer) lens(dc *gg.Context, surface overlay.SurfaceDimensions, source image.Image, cmd overlay.Command) error {
	dc.SetHexColor(r.background)
	dc.DrawCircle(cmd.X, cmd.Y, cmd.Radius)
	if err := dc.Fill(); err != nil {
		return err
	}
	if source == nil {
		return nil
	}

	pixels := imaging.SampleLens(source, surface, cmd.OffsetX, cmd.OffsetY, cmd.Zoom, cmd.Width)
	if pixels.Bounds().Empty() {
		return nil
	}
	maskCircle(pixels, cmd.Radius)
	dc.DrawImageEx(gg.ImageBufFromImage(pixels), gg.DrawImageOptions{
		X: cmd.X - cmd.Width/2,
		Y: cmd.Y - cmd.Width/2,
	})
	return nil
}

// maskCircle clears every pixel whose centre lies outside the circle of the
// given radius centred in img. Image drawing in gg ignores the clip stack, so
// the lens is cut to shape before it is composited.
func maskCircle(img *image.NRGBA, radius float64) {
	b := img.Bounds()
	cx := float64(b.Dx()) / 2
	cy := float64(b.Dy()) / 2
	r2 := radius * radius
	for y := 0; y < b.Dy(); y++ {
		dy := float64(y) + 0.5 - cy
		for x := 0; x < b.Dx(); x++ {
			dx := float64(x) + 0.5 - cx
			if dx*dx+dy*dy > r2 {
				i := img.PixOffset(b.Min.X+x, b.Min.Y+y)
				img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 0, 0, 0, 0
			}
		}
	}
}

func (r *Rasterizer) backdrop(source image.Image, surface overlay.SurfaceDimensions) *gg.ImageBuf {
	if r.fitted != nil && r.fittedSrc == source && r.fittedSize == surface {
		return r.fitted
	}
	r.fitted = gg.ImageBufFromImage(imaging.FitToSurface(source, surface))
	r.fittedSrc = source
	r.fittedSize = surface
	return r.fitted
}
