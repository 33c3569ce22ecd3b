package overlay

import (
	viewerr "github.com/ironsheep/scan-overlay-mcp/internal/errors"
)

// MaxSurfaceDimension bounds each side of the drawing surface, in pixels.
const MaxSurfaceDimension = 8192

// CheckSurface returns INVALID_SURFACE for negative sides or sides above
// MaxSurfaceDimension. A zero side is allowed.
func CheckSurface(width, height int) error {
	if width < 0 || height < 0 || width > MaxSurfaceDimension || height > MaxSurfaceDimension {
		return viewerr.NewInvalidSurfaceError(width, height)
	}
	return nil
}

// Session owns the state of one viewer: the surface, the finding and
// annotation sets, and the pointer. Each handler replaces the current
// RenderState with a derived one and requests a redraw; Frame flushes the
// request and returns the commands.
type Session struct {
	state     RenderState
	committer Committer
	measurer  TextMeasurer
	frames    FrameScheduler
	frame     []Command

	onCommit []func(Annotation)
	onClear  []func()
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithCommitter overrides how gestures are committed.
func WithCommitter(c Committer) SessionOption {
	return func(s *Session) { s.committer = c }
}

// WithMeasurer sets the text measurer used to size label panels.
func WithMeasurer(m TextMeasurer) SessionOption {
	return func(s *Session) { s.measurer = m }
}

// NewSession mounts a session on a surface and schedules the first frame.
func NewSession(surface SurfaceDimensions, opts Options, options ...SessionOption) *Session {
	s := &Session{
		state:     NewRenderState(surface, opts),
		committer: DefaultCommitter(),
	}
	for _, o := range options {
		o(s)
	}
	s.invalidate()
	return s
}

// OnCommit registers fn to run once per committed annotation.
func (s *Session) OnCommit(fn func(Annotation)) {
	s.onCommit = append(s.onCommit, fn)
}

// OnClear registers fn to run whenever ClearAnnotations empties the set.
func (s *Session) OnClear(fn func()) {
	s.onClear = append(s.onClear, fn)
}

// State returns the current render state.
func (s *Session) State() RenderState {
	return s.state
}

// Annotations returns a copy of the committed annotations in commit order.
func (s *Session) Annotations() []Annotation {
	return append([]Annotation(nil), s.state.Annotations...)
}

// Resize syncs the surface to its displayed size. Committed annotations are
// left at the pixel coordinates they were drawn with.
func (s *Session) Resize(width, height int) error {
	if err := CheckSurface(width, height); err != nil {
		return err
	}
	s.update(s.state.WithSurface(SurfaceDimensions{Width: width, Height: height}))
	return nil
}

// SetFindings replaces the finding set for a new analysis cycle. nil means
// no findings are available.
func (s *Session) SetFindings(findings []Finding) {
	s.update(s.state.WithFindings(findings))
}

// SetOptions replaces the display options.
func (s *Session) SetOptions(o Options) {
	s.update(s.state.WithOptions(o))
}

// SetCommitDistance changes the minimum gesture length for later commits.
func (s *Session) SetCommitDistance(d float64) {
	s.committer.MinDistance = d
}

// PointerDown starts a gesture at p.
func (s *Session) PointerDown(p Point) {
	s.update(s.state.WithDraw(s.state.Draw.Down(p)).WithHover(&p))
}

// PointerMove updates the preview while drawing, or the hover position.
func (s *Session) PointerMove(p Point) {
	s.update(s.state.WithDraw(s.state.Draw.Move(p)).WithHover(&p))
}

// PointerUp finishes the gesture and returns the committed annotation, if
// the gesture was long enough.
func (s *Session) PointerUp() *Annotation {
	next, ann := s.state.Draw.Up(s.committer)
	st := s.state.WithDraw(next)
	if ann != nil {
		st = st.WithAnnotation(*ann)
	}
	s.update(st)

	if ann != nil {
		for _, fn := range s.onCommit {
			fn(*ann)
		}
	}
	return ann
}

// PointerLeave hides the hover overlays. A gesture in progress is cancelled
// without committing.
func (s *Session) PointerLeave() {
	s.update(s.state.WithDraw(s.state.Draw.Cancel()).WithHover(nil))
}

// ClearAnnotations empties the annotation set.
func (s *Session) ClearAnnotations() {
	s.update(s.state.WithoutAnnotations())
	for _, fn := range s.onClear {
		fn()
	}
}

// Reset drops findings, annotations and any gesture, as when a new image
// is mounted. It does not run the clear callbacks.
func (s *Session) Reset() {
	s.update(NewRenderState(s.state.Surface, s.state.Options))
}

// Frame flushes any pending redraw and returns the latest frame.
func (s *Session) Frame() []Command {
	s.frames.Flush()
	return s.frame
}

// FramePending reports whether a state change has not been drawn yet.
func (s *Session) FramePending() bool {
	return s.frames.Pending()
}

// FrameStats reports redraws run and redraws coalesced away.
func (s *Session) FrameStats() (ran, cancelled int) {
	return s.frames.Stats()
}

func (s *Session) update(next RenderState) {
	s.state = next
	s.invalidate()
}

func (s *Session) invalidate() {
	s.frames.Request(func() {
		s.frame = Render(s.state, s.measurer)
	})
}
