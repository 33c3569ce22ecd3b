package overlay

import "github.com/google/uuid"

// Phase is the pointer interaction phase.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseDrawing Phase = "drawing"
)

// DefaultMinCommitDistance is how far (in pixels, exclusive) a gesture must
// travel before it becomes an annotation.
const DefaultMinCommitDistance = 5.0

// DrawState tracks one drag gesture. The zero value is Idle.
//
// Transitions never modify the receiver; they return the next state.
type DrawState struct {
	Phase   Phase  `json:"phase"`
	Start   *Point `json:"start_point"`
	Current *Point `json:"current_point"`
}

// IdleState is the initial state.
func IdleState() DrawState {
	return DrawState{Phase: PhaseIdle}
}

// Drawing reports whether a gesture is in progress with both points known.
func (s DrawState) Drawing() bool {
	return s.Phase == PhaseDrawing && s.Start != nil && s.Current != nil
}

// Down starts a gesture at p. A second Down during a gesture is ignored.
func (s DrawState) Down(p Point) DrawState {
	if s.Drawing() {
		return s
	}
	start, current := p, p
	return DrawState{Phase: PhaseDrawing, Start: &start, Current: &current}
}

// Move updates the live end point. It has no effect while Idle.
func (s DrawState) Move(p Point) DrawState {
	if !s.Drawing() {
		return s
	}
	current := p
	return DrawState{Phase: PhaseDrawing, Start: s.Start, Current: &current}
}

// Cancel abandons any gesture without committing.
func (s DrawState) Cancel() DrawState {
	return IdleState()
}

// Committer turns finished gestures into annotations.
type Committer struct {
	// MinDistance must be strictly exceeded for a gesture to commit.
	MinDistance float64

	// NewID returns a fresh unique annotation id.
	NewID func() string

	// Label is given to each committed annotation.
	Label string
}

// DefaultCommitter commits gestures longer than 5px with uuid ids.
func DefaultCommitter() Committer {
	return Committer{
		MinDistance: DefaultMinCommitDistance,
		NewID:       uuid.NewString,
		Label:       DefaultAnnotationLabel,
	}
}

// Up ends the gesture. The returned state is always Idle. The annotation is
// non-nil only when the gesture was long enough.
func (s DrawState) Up(c Committer) (DrawState, *Annotation) {
	if !s.Drawing() {
		return IdleState(), nil
	}
	start, end := *s.Start, *s.Current
	if Distance(start, end) <= c.MinDistance {
		return IdleState(), nil
	}

	newID := c.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	label := c.Label
	if label == "" {
		label = DefaultAnnotationLabel
	}
	return IdleState(), &Annotation{
		ID:    newID(),
		Type:  AnnotationLine,
		X1:    start.X,
		Y1:    start.Y,
		X2:    end.X,
		Y2:    end.Y,
		Label: label,
	}
}
