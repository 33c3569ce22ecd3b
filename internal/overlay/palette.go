package overlay

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Alpha levels used by the layers.
const (
	alphaOpaque      uint8 = 0xff
	alphaFindingFill uint8 = 0x22
	alphaCrosshair   uint8 = 0x66
	alphaGrid        uint8 = 0x14
)

var (
	colorEmerald = mustHex("#10b981")
	colorAmber   = mustHex("#f59e0b")
	colorRed     = mustHex("#ef4444")
	colorDarkRed = mustHex("#7f1d1d")
	colorBlue    = mustHex("#3b82f6")
	colorWhite   = mustHex("#ffffff")

	// FallbackColor is used for findings whose severity is not recognised.
	FallbackColor = colorBlue

	// AnnotationColor draws measurements and the live preview.
	AnnotationColor = colorBlue
)

var severityPalette = map[Severity]colorful.Color{
	SeverityNormal:   colorEmerald,
	SeverityMild:     colorEmerald,
	SeverityModerate: colorAmber,
	SeveritySevere:   colorRed,
	SeverityCritical: colorDarkRed,
}

// SeverityColor returns the colour for a severity grade.
func SeverityColor(s Severity) colorful.Color {
	if c, ok := severityPalette[s]; ok {
		return c
	}
	return FallbackColor
}

// HexAlpha formats c as "#rrggbbaa".
func HexAlpha(c colorful.Color, alpha uint8) string {
	return fmt.Sprintf("%s%02x", c.Clamped().Hex(), alpha)
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("overlay: bad palette colour %q: %v", s, err))
	}
	return c
}
