package raster

import (
	"fmt"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
)

// Fonts hands out bold faces by pixel size, caching each size once loaded.
// It is safe for concurrent use.
type Fonts struct {
	source *text.FontSource

	mu    sync.Mutex
	faces map[float64]text.Face
}

// NewFonts parses the embedded Go Bold font.
func NewFonts() (*Fonts, error) {
	source, err := text.NewFontSource(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to load label font: %w", err)
	}
	return &Fonts{
		source: source,
		faces:  make(map[float64]text.Face),
	}, nil
}

// Face returns the face for size, creating it on first use.
func (f *Fonts) Face(size float64) text.Face {
	f.mu.Lock()
	defer f.mu.Unlock()

	if face, ok := f.faces[size]; ok {
		return face
	}
	face := f.source.Face(size)
	f.faces[size] = face
	return face
}

// MeasureText returns the advance width of s at size.
func (f *Fonts) MeasureText(s string, size float64) float64 {
	if s == "" || size <= 0 {
		return 0
	}
	w, _ := text.Measure(s, f.Face(size))
	return w
}

// Close releases the font source.
func (f *Fonts) Close() error {
	return f.source.Close()
}
