package overlay

// AnnotationType identifies the annotation shape. Only lines are drawn by the
// pointer machine.
type AnnotationType string

const AnnotationLine AnnotationType = "line"

// DefaultAnnotationLabel is the label given to every committed measurement.
const DefaultAnnotationLabel = "Measurement"

// Annotation is a committed linear measurement in surface pixel space.
type Annotation struct {
	ID    string         `json:"id"`
	Type  AnnotationType `json:"type"`
	X1    float64        `json:"x1"`
	Y1    float64        `json:"y1"`
	X2    float64        `json:"x2"`
	Y2    float64        `json:"y2"`
	Label string         `json:"label"`
}

func (a Annotation) Start() Point { return Point{X: a.X1, Y: a.Y1} }
func (a Annotation) End() Point   { return Point{X: a.X2, Y: a.Y2} }

// Length is the Euclidean length of the measurement in pixels.
func (a Annotation) Length() float64 {
	return Distance(a.Start(), a.End())
}

// DistanceLabel is the length rounded to one decimal, e.g. "10.0px".
func (a Annotation) DistanceLabel() string {
	return FormatDistance(a.Length())
}

// DisplayLabel is the text drawn next to the line.
func (a Annotation) DisplayLabel() string {
	return a.Label + ": " + a.DistanceLabel()
}

// appendAnnotation returns a new slice holding set plus a. set is not touched.
func appendAnnotation(set []Annotation, a Annotation) []Annotation {
	out := make([]Annotation, len(set), len(set)+1)
	copy(out, set)
	return append(out, a)
}
