package overlay

// Font sizes and stroke widths of the layers.
const (
	findingFontSize    = 11.0
	annotationFontSize = 12.0

	findingStrokeWidth    = 3.0
	annotationStrokeWidth = 2.0
	endpointRadius        = 3.0

	labelPanelHeight  = 20.0
	labelPanelPadding = 5.0
)

// previewDash is the on/off pattern of the live draw preview.
var previewDash = []float64{5, 5}

// Render produces the full command list for one frame of state. It always
// starts with a clear of the whole surface. m may be nil, in which case label
// panels fall back to padding only.
func Render(state RenderState, m TextMeasurer) []Command {
	w := float64(state.Surface.Width)
	h := float64(state.Surface.Height)

	cmds := []Command{{Kind: KindClear, Layer: LayerSurface, Width: w, Height: h}}
	cmds = append(cmds, renderGrid(state)...)
	cmds = append(cmds, renderFindings(state, m)...)
	cmds = append(cmds, renderAnnotations(state)...)
	cmds = append(cmds, renderActive(state)...)
	cmds = append(cmds, renderLens(state)...)
	return cmds
}

func renderGrid(state RenderState) []Command {
	spacing := state.Options.GridSpacing
	if !state.Options.Grid || spacing <= 0 {
		return nil
	}
	width := state.Surface.Width
	height := state.Surface.Height
	col := HexAlpha(colorWhite, alphaGrid)

	var cmds []Command
	for x := spacing; x < width; x += spacing {
		cmds = append(cmds, Command{
			Kind: KindLine, Layer: LayerGrid,
			X: float64(x), Y: 0, X2: float64(x), Y2: float64(height),
			Color: col, LineWidth: 1,
		})
	}
	for y := spacing; y < height; y += spacing {
		cmds = append(cmds, Command{
			Kind: KindLine, Layer: LayerGrid,
			X: 0, Y: float64(y), X2: float64(width), Y2: float64(y),
			Color: col, LineWidth: 1,
		})
	}
	return cmds
}

func renderFindings(state RenderState, m TextMeasurer) []Command {
	var cmds []Command
	for _, f := range state.Findings {
		r := ToPixel(f.Box, state.Surface)
		c := SeverityColor(f.Severity)
		solid := HexAlpha(c, alphaOpaque)
		label := f.DisplayLabel()

		var textWidth float64
		if m != nil {
			textWidth = m.MeasureText(label, findingFontSize)
		}

		cmds = append(cmds,
			Command{
				Kind: KindStrokeRect, Layer: LayerFindings,
				X: r.X, Y: r.Y, Width: r.Width, Height: r.Height,
				Color: solid, LineWidth: findingStrokeWidth,
			},
			Command{
				Kind: KindFillRect, Layer: LayerFindings,
				X: r.X, Y: r.Y - labelPanelHeight,
				Width: textWidth + 2*labelPanelPadding, Height: labelPanelHeight,
				Color: solid,
			},
			Command{
				Kind: KindText, Layer: LayerFindings,
				X: r.X + labelPanelPadding, Y: r.Y - 6,
				Text: label, FontSize: findingFontSize,
				Color: HexAlpha(colorWhite, alphaOpaque),
			},
			Command{
				Kind: KindFillRect, Layer: LayerFindings,
				X: r.X, Y: r.Y, Width: r.Width, Height: r.Height,
				Color: HexAlpha(c, alphaFindingFill),
			},
		)
	}
	return cmds
}

func renderAnnotations(state RenderState) []Command {
	col := HexAlpha(AnnotationColor, alphaOpaque)

	var cmds []Command
	for _, a := range state.Annotations {
		if a.Type != AnnotationLine {
			continue
		}
		cmds = append(cmds,
			Command{
				Kind: KindLine, Layer: LayerAnnotations,
				X: a.X1, Y: a.Y1, X2: a.X2, Y2: a.Y2,
				Color: col, LineWidth: annotationStrokeWidth,
			},
			Command{
				Kind: KindText, Layer: LayerAnnotations,
				X: a.X1, Y: a.Y1 - 8,
				Text: a.DisplayLabel(), FontSize: annotationFontSize, Color: col,
			},
			Command{Kind: KindFillCircle, Layer: LayerAnnotations, X: a.X1, Y: a.Y1, Radius: endpointRadius, Color: col},
			Command{Kind: KindFillCircle, Layer: LayerAnnotations, X: a.X2, Y: a.Y2, Radius: endpointRadius, Color: col},
		)
	}
	return cmds
}

func renderActive(state RenderState) []Command {
	if state.Draw.Drawing() {
		start, cur := *state.Draw.Start, *state.Draw.Current
		col := HexAlpha(AnnotationColor, alphaOpaque)
		return []Command{
			{
				Kind: KindLine, Layer: LayerActive,
				X: start.X, Y: start.Y, X2: cur.X, Y2: cur.Y,
				Color: col, LineWidth: annotationStrokeWidth,
				Dash: append([]float64(nil), previewDash...),
			},
			{
				Kind: KindText, Layer: LayerActive,
				X: cur.X + 5, Y: cur.Y + 5,
				Text: FormatDistance(Distance(start, cur)), FontSize: annotationFontSize, Color: col,
			},
		}
	}

	if !state.Options.HoverTracking || !state.Hovering() {
		return nil
	}
	p := *state.Hover
	col := HexAlpha(colorWhite, alphaCrosshair)
	return []Command{
		{
			Kind: KindLine, Layer: LayerActive,
			X: p.X, Y: 0, X2: p.X, Y2: float64(state.Surface.Height),
			Color: col, LineWidth: 1,
		},
		{
			Kind: KindLine, Layer: LayerActive,
			X: 0, Y: p.Y, X2: float64(state.Surface.Width), Y2: p.Y,
			Color: col, LineWidth: 1,
		},
	}
}
