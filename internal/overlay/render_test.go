package overlay

import (
	"math"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// monoMeasurer treats every glyph as half the font size wide.
type monoMeasurer struct{}

func (monoMeasurer) MeasureText(text string, size float64) float64 {
	return float64(len(text)) * size * 0.5
}

func quietOptions() Options {
	o := DefaultOptions()
	o.Grid = false
	return o
}

func byLayer(cmds []Command, l Layer) []Command {
	var out []Command
	for _, c := range cmds {
		if c.Layer == l {
			out = append(out, c)
		}
	}
	return out
}

func byKind(cmds []Command, k Kind) []Command {
	var out []Command
	for _, c := range cmds {
		if c.Kind == k {
			out = append(out, c)
		}
	}
	return out
}

func hue(t *testing.T, hexAlpha string) float64 {
	t.Helper()
	require.Len(t, hexAlpha, 9)
	c, err := colorful.Hex(hexAlpha[:7])
	require.NoError(t, err)
	h, _, _ := c.Hsv()
	return h
}

func TestRender_StartsWithClear(t *testing.T) {
	state := NewRenderState(SurfaceDimensions{Width: 640, Height: 480}, quietOptions())

	cmds := Render(state, monoMeasurer{})

	require.Len(t, cmds, 1)
	assert.Equal(t, Command{Kind: KindClear, Layer: LayerSurface, Width: 640, Height: 480}, cmds[0])
}

func TestRender_LayerOrder(t *testing.T) {
	state := NewRenderState(SurfaceDimensions{Width: 400, Height: 300}, DefaultOptions()).
		WithFindings([]Finding{{Label: "Caries", Severity: SeverityModerate, Box: Box{100, 100, 200, 200}}}).
		WithAnnotation(Annotation{ID: "a", Type: AnnotationLine, X1: 10, Y1: 10, X2: 60, Y2: 10, Label: "Measurement"}).
		WithHover(&Point{X: 200, Y: 150})

	cmds := Render(state, monoMeasurer{})

	seen := map[Layer]bool{}
	last := -1
	for _, c := range cmds {
		rank := LayerRank(c.Layer)
		require.GreaterOrEqual(t, rank, last, "layer %s painted after a later layer", c.Layer)
		last = rank
		seen[c.Layer] = true
	}
	for _, l := range []Layer{LayerSurface, LayerGrid, LayerFindings, LayerAnnotations, LayerActive, LayerMagnifier} {
		assert.True(t, seen[l], "layer %s missing", l)
	}
}

func TestRender_Grid(t *testing.T) {
	opts := DefaultOptions()
	opts.GridSpacing = 50
	state := NewRenderState(SurfaceDimensions{Width: 120, Height: 100}, opts)

	grid := byLayer(Render(state, nil), LayerGrid)

	// x=50,100 and y=50
	require.Len(t, grid, 3)
	assert.Equal(t, 50.0, grid[0].X)
	assert.Equal(t, 100.0, grid[0].Y2)
	assert.Equal(t, 100.0, grid[1].X)
	assert.Equal(t, 50.0, grid[2].Y)
	assert.Equal(t, 120.0, grid[2].X2)

	opts.Grid = false
	assert.Empty(t, byLayer(Render(state.WithOptions(opts), nil), LayerGrid))
}

func TestRender_FindingGeometryAndLabel(t *testing.T) {
	f := Finding{Label: "Bone loss", Severity: SeveritySevere, Box: Box{100, 200, 300, 400}}
	state := NewRenderState(SurfaceDimensions{Width: 800, Height: 600}, quietOptions()).WithFindings([]Finding{f})

	cmds := byLayer(Render(state, monoMeasurer{}), LayerFindings)
	require.Len(t, cmds, 4)

	box, panel, text, fill := cmds[0], cmds[1], cmds[2], cmds[3]

	assert.Equal(t, KindStrokeRect, box.Kind)
	assert.Equal(t, []float64{160, 60, 160, 120}, []float64{box.X, box.Y, box.Width, box.Height})
	assert.Equal(t, 3.0, box.LineWidth)
	assert.Equal(t, "#ef4444ff", box.Color)

	label := "Bone loss (Severe)"
	assert.Equal(t, KindFillRect, panel.Kind)
	assert.Equal(t, 40.0, panel.Y)
	assert.Equal(t, 20.0, panel.Height)
	assert.Equal(t, monoMeasurer{}.MeasureText(label, 11)+10, panel.Width)
	assert.Equal(t, box.Color, panel.Color)

	assert.Equal(t, KindText, text.Kind)
	assert.Equal(t, label, text.Text)
	assert.Equal(t, 165.0, text.X)
	assert.Equal(t, 54.0, text.Y)
	assert.Equal(t, "#ffffffff", text.Color)

	assert.Equal(t, KindFillRect, fill.Kind)
	assert.Equal(t, "#ef444422", fill.Color)
}

func TestRender_LabelPanelNeverNarrowerThanText(t *testing.T) {
	labels := []string{"", "A", "Periapical lesion", "Very long clinical label for a finding"}
	for _, l := range labels {
		state := NewRenderState(SurfaceDimensions{Width: 800, Height: 600}, quietOptions()).
			WithFindings([]Finding{{Label: l, Severity: SeverityMild, Box: Box{500, 500, 600, 600}}})

		cmds := byLayer(Render(state, monoMeasurer{}), LayerFindings)
		panel, text := cmds[1], cmds[2]

		assert.GreaterOrEqual(t, panel.X+panel.Width, text.X+monoMeasurer{}.MeasureText(text.Text, text.FontSize))
	}
}

func TestRender_SeverityColorsIndependentOfOrder(t *testing.T) {
	severe := Finding{Label: "Fracture", Severity: SeveritySevere, Box: Box{0, 0, 100, 100}}
	normal := Finding{Label: "Crown", Severity: SeverityNormal, Box: Box{500, 500, 600, 600}}

	for _, order := range [][]Finding{{severe, normal}, {normal, severe}} {
		state := NewRenderState(SurfaceDimensions{Width: 800, Height: 600}, quietOptions()).WithFindings(order)
		boxes := byKind(byLayer(Render(state, monoMeasurer{}), LayerFindings), KindStrokeRect)
		require.Len(t, boxes, 2)

		colors := map[float64]string{}
		for _, b := range boxes {
			colors[b.X] = b.Color
		}

		severeHue := hue(t, colors[0])
		normalHue := hue(t, colors[400])
		assert.True(t, severeHue < 20 || severeHue > 340, "severe hue %v is not red", severeHue)
		assert.True(t, normalHue > 90 && normalHue < 180, "normal hue %v is not green", normalHue)
	}
}

func TestSeverityColor(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityNormal, "#10b981"},
		{SeverityMild, "#10b981"},
		{SeverityModerate, "#f59e0b"},
		{SeveritySevere, "#ef4444"},
		{SeverityCritical, "#7f1d1d"},
		{Severity("Unknown"), "#3b82f6"},
		{Severity("severe"), "#3b82f6"},
	}

	for _, tt := range tests {
		t.Run(string(tt.severity), func(t *testing.T) {
			assert.Equal(t, tt.want, SeverityColor(tt.severity).Hex())
		})
	}
}

func TestRender_TolerantOfBadInput(t *testing.T) {
	findings := []Finding{
		{Label: "inverted", Severity: SeverityCritical, Box: Box{900, 900, 100, 100}},
		{Label: "outside", Severity: "??", Box: Box{-500, 2000, 3000, -10}},
	}

	assert.NotPanics(t, func() {
		Render(NewRenderState(SurfaceDimensions{}, DefaultOptions()).WithFindings(findings), nil)
		Render(NewRenderState(SurfaceDimensions{Width: 10, Height: 10}, DefaultOptions()).WithFindings(findings), monoMeasurer{})
		Render(NewRenderState(SurfaceDimensions{Width: 10, Height: 10}, DefaultOptions()).WithFindings(nil), nil)
	})

	state := NewRenderState(SurfaceDimensions{Width: 1000, Height: 1000}, quietOptions()).WithFindings(findings[:1])
	box := byLayer(Render(state, nil), LayerFindings)[0]
	assert.Equal(t, -800.0, box.Width)
	assert.Equal(t, -800.0, box.Height)
}

func TestRender_ZeroSurfaceCollapses(t *testing.T) {
	state := NewRenderState(SurfaceDimensions{}, DefaultOptions()).
		WithFindings([]Finding{{Label: "x", Severity: SeverityMild, Box: Box{100, 100, 900, 900}}})

	cmds := Render(state, nil)

	assert.Empty(t, byLayer(cmds, LayerGrid))
	box := byLayer(cmds, LayerFindings)[0]
	assert.Equal(t, 0.0, box.Width)
	assert.Equal(t, 0.0, box.Height)
}

func TestRender_Annotations(t *testing.T) {
	a := Annotation{ID: "a", Type: AnnotationLine, X1: 100, Y1: 100, X2: 110, Y2: 100, Label: "Measurement"}
	state := NewRenderState(SurfaceDimensions{Width: 300, Height: 300}, quietOptions()).WithAnnotation(a)

	cmds := byLayer(Render(state, nil), LayerAnnotations)
	require.Len(t, cmds, 4)

	assert.Equal(t, KindLine, cmds[0].Kind)
	assert.Empty(t, cmds[0].Dash)
	assert.Equal(t, "Measurement: 10.0px", cmds[1].Text)
	assert.Equal(t, 92.0, cmds[1].Y)

	dots := byKind(cmds, KindFillCircle)
	require.Len(t, dots, 2)
	assert.Equal(t, Pt(100, 100), Pt(dots[0].X, dots[0].Y))
	assert.Equal(t, Pt(110, 100), Pt(dots[1].X, dots[1].Y))
	assert.Equal(t, 3.0, dots[0].Radius)
}

func TestRender_DrawPreviewSuppressesHoverOverlays(t *testing.T) {
	draw := IdleState().Down(Pt(10, 10)).Move(Pt(40, 50))
	state := NewRenderState(SurfaceDimensions{Width: 300, Height: 300}, quietOptions()).
		WithDraw(draw).
		WithHover(&Point{X: 40, Y: 50})

	cmds := Render(state, nil)
	active := byLayer(cmds, LayerActive)

	require.Len(t, active, 2)
	assert.Equal(t, []float64{5, 5}, active[0].Dash)
	assert.Equal(t, Pt(10, 10), Pt(active[0].X, active[0].Y))
	assert.Equal(t, Pt(40, 50), Pt(active[0].X2, active[0].Y2))
	assert.Equal(t, "50.0px", active[1].Text)
	assert.Equal(t, Pt(45, 55), Pt(active[1].X, active[1].Y))
	assert.Empty(t, byLayer(cmds, LayerMagnifier))
}

func TestRender_HoverCrosshairAndLens(t *testing.T) {
	state := NewRenderState(SurfaceDimensions{Width: 300, Height: 200}, quietOptions()).
		WithHover(&Point{X: 100, Y: 80})

	cmds := Render(state, nil)

	cross := byLayer(cmds, LayerActive)
	require.Len(t, cross, 2)
	assert.Equal(t, []float64{100, 0, 100, 200}, []float64{cross[0].X, cross[0].Y, cross[0].X2, cross[0].Y2})
	assert.Equal(t, []float64{0, 80, 300, 80}, []float64{cross[1].X, cross[1].Y, cross[1].X2, cross[1].Y2})

	lens := byKind(byLayer(cmds, LayerMagnifier), KindLens)
	require.Len(t, lens, 1)
	assert.Equal(t, 150.0, lens[0].Width)
	assert.Equal(t, 2.5, lens[0].Zoom)
	assert.Equal(t, 175.0, lens[0].OffsetX)
	assert.Equal(t, 125.0, lens[0].OffsetY)
	assert.Len(t, byKind(byLayer(cmds, LayerMagnifier), KindLine), 2)

	opts := quietOptions()
	opts.HoverTracking = false
	cmds = Render(state.WithOptions(opts), nil)
	assert.Empty(t, byLayer(cmds, LayerActive))
	assert.NotEmpty(t, byLayer(cmds, LayerMagnifier))
}

func TestRender_UndrawableLensIsOmitted(t *testing.T) {
	state := NewRenderState(SurfaceDimensions{Width: 40, Height: 30}, quietOptions()).
		WithHover(&Point{X: 10, Y: 10})

	for _, lens := range []struct{ size, zoom float64 }{
		{1e12, 2.5},
		{MaxLensSize + 1, 2.5},
		{math.NaN(), 2.5},
		{150, 0},
		{150, math.Inf(1)},
	} {
		opts := quietOptions()
		opts.LensSize = lens.size
		opts.LensZoom = lens.zoom

		cmds := Render(state.WithOptions(opts), nil)

		assert.Empty(t, byLayer(cmds, LayerMagnifier), "size %v zoom %v", lens.size, lens.zoom)
		assert.Len(t, byLayer(cmds, LayerActive), 2)
	}
}

func TestCheckLens(t *testing.T) {
	assert.NoError(t, CheckLens(0, 2.5))
	assert.NoError(t, CheckLens(MaxLensSize, 0.5))
	assert.Error(t, CheckLens(MaxLensSize+1, 2.5))
	assert.Error(t, CheckLens(-1, 2.5))
	assert.Error(t, CheckLens(math.NaN(), 2.5))
	assert.Error(t, CheckLens(150, 0))
	assert.Error(t, CheckLens(150, -1))
	assert.Error(t, CheckLens(150, math.NaN()))
	assert.Error(t, CheckLens(150, math.Inf(1)))
}

func TestLensOffset(t *testing.T) {
	tests := []struct {
		name       string
		p          Point
		zoom, size float64
		wantX      float64
		wantY      float64
	}{
		{"reference", Pt(100, 80), 2.5, 150, 175, 125},
		{"origin goes negative", Pt(0, 0), 2.5, 150, -75, -75},
		{"unit zoom", Pt(50, 50), 1, 100, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := LensOffset(tt.p, tt.zoom, tt.size)
			assert.Equal(t, tt.wantX, x)
			assert.Equal(t, tt.wantY, y)
		})
	}
}

func TestRenderState_WithMethodsDoNotAlias(t *testing.T) {
	findings := []Finding{{Label: "a"}}
	base := NewRenderState(SurfaceDimensions{Width: 10, Height: 10}, DefaultOptions()).WithFindings(findings)
	findings[0].Label = "mutated"
	assert.Equal(t, "a", base.Findings[0].Label)

	one := base.WithAnnotation(Annotation{ID: "1"})
	two := one.WithAnnotation(Annotation{ID: "2"})
	three := one.WithAnnotation(Annotation{ID: "3"})
	assert.Len(t, one.Annotations, 1)
	assert.Equal(t, "2", two.Annotations[1].ID)
	assert.Equal(t, "3", three.Annotations[1].ID)

	h := Pt(1, 1)
	hovered := base.WithHover(&h)
	h.X = 99
	assert.Equal(t, 1.0, hovered.Hover.X)
}
