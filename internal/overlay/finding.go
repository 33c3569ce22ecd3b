package overlay

// Severity grades a finding. Values outside the five known grades are kept
// as-is and render in the neutral fallback colour.
type Severity string

const (
	SeverityNormal   Severity = "Normal"
	SeverityMild     Severity = "Mild"
	SeverityModerate Severity = "Moderate"
	SeveritySevere   Severity = "Severe"
	SeverityCritical Severity = "Critical"
)

// Known reports whether s is one of the five defined grades.
func (s Severity) Known() bool {
	switch s {
	case SeverityNormal, SeverityMild, SeverityModerate, SeveritySevere, SeverityCritical:
		return true
	}
	return false
}

// Finding is a detected region of interest supplied by the analysis backend.
// The engine treats it as read-only.
type Finding struct {
	Label       string   `json:"label"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Box         Box      `json:"box_2d"`
}

// DisplayLabel is the text drawn above the finding's box.
func (f Finding) DisplayLabel() string {
	return f.Label + " (" + string(f.Severity) + ")"
}
