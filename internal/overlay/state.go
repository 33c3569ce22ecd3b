package overlay

// Options are the display settings that shape a frame.
type Options struct {
	Grid          bool    `json:"grid"`
	GridSpacing   int     `json:"grid_spacing"`
	HoverTracking bool    `json:"hover_tracking"`
	LensSize      float64 `json:"lens_size"`
	LensZoom      float64 `json:"lens_zoom"`
}

// DefaultOptions matches the reference viewer: 50px grid, 150px lens at 2.5x.
func DefaultOptions() Options {
	return Options{
		Grid:          true,
		GridSpacing:   50,
		HoverTracking: true,
		LensSize:      150,
		LensZoom:      2.5,
	}
}

// RenderState is everything a frame depends on. Treat it as immutable: the
// With* methods return modified copies and never share mutable slices with
// the receiver.
type RenderState struct {
	Surface     SurfaceDimensions `json:"surface"`
	Findings    []Finding         `json:"findings"`
	Annotations []Annotation      `json:"annotations"`
	Draw        DrawState         `json:"draw"`

	// Hover is the last pointer position over the surface, nil once the
	// pointer has left.
	Hover *Point `json:"hover"`

	Options Options `json:"options"`
}

// NewRenderState returns an empty state for the given surface.
func NewRenderState(surface SurfaceDimensions, opts Options) RenderState {
	return RenderState{
		Surface: surface,
		Draw:    IdleState(),
		Options: opts,
	}
}

func (s RenderState) WithSurface(surface SurfaceDimensions) RenderState {
	s.Surface = surface
	return s
}

// WithFindings replaces the finding set. nil is an empty set.
func (s RenderState) WithFindings(findings []Finding) RenderState {
	s.Findings = append([]Finding(nil), findings...)
	return s
}

func (s RenderState) WithAnnotation(a Annotation) RenderState {
	s.Annotations = appendAnnotation(s.Annotations, a)
	return s
}

func (s RenderState) WithoutAnnotations() RenderState {
	s.Annotations = nil
	return s
}

func (s RenderState) WithDraw(d DrawState) RenderState {
	s.Draw = d
	return s
}

// WithHover sets the hover point; pass nil when the pointer leaves.
func (s RenderState) WithHover(p *Point) RenderState {
	if p == nil {
		s.Hover = nil
		return s
	}
	hover := *p
	s.Hover = &hover
	return s
}

func (s RenderState) WithOptions(o Options) RenderState {
	s.Options = o
	return s
}

// Hovering reports whether the hover crosshair and lens should show.
func (s RenderState) Hovering() bool {
	return s.Hover != nil && !s.Draw.Drawing()
}
