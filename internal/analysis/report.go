// Package analysis decodes the structured report produced by the scan
// analysis backend and extracts the findings the overlay draws.
package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"

	viewerr "github.com/ironsheep/scan-overlay-mcp/internal/errors"
	"github.com/ironsheep/scan-overlay-mcp/internal/overlay"
)

// Risk levels reported by the backend.
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// Report is the analysis backend's output for one scan.
type Report struct {
	ImagingType     string            `json:"imagingType"`
	Findings        []overlay.Finding `json:"findings"`
	Measurements    []string          `json:"measurements"`
	Diagnosis       string            `json:"diagnosis"`
	RiskLevel       string            `json:"riskLevel"`
	Prognosis       string            `json:"prognosis"`
	Recommendations []string          `json:"recommendations"`
	Limitations     []string          `json:"limitations"`
	Disclaimer      string            `json:"disclaimer"`
}

// Decode parses a report. Model output is sometimes wrapped in a Markdown
// code fence; the fence is stripped before parsing. Any failure is returned
// as ANALYSIS_UNAVAILABLE.
func Decode(data []byte) (*Report, error) {
	body := stripFence(bytes.TrimSpace(data))
	if len(body) == 0 {
		return nil, viewerr.NewAnalysisUnavailableError(fmt.Errorf("empty analysis report"))
	}

	var r Report
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, viewerr.NewAnalysisUnavailableError(fmt.Errorf("failed to parse analysis report: %w", err))
	}
	return &r, nil
}

// Findings returns the report's findings, or an empty list when there is no
// report. The result is never nil.
func Findings(r *Report) []overlay.Finding {
	if r == nil || len(r.Findings) == 0 {
		return []overlay.Finding{}
	}
	out := make([]overlay.Finding, len(r.Findings))
	copy(out, r.Findings)
	return out
}

// MalformedFindings lists the labels of findings whose boxes are inverted or
// outside the normalized range. They are still drawn.
func MalformedFindings(findings []overlay.Finding) []string {
	var labels []string
	for _, f := range findings {
		if !f.Box.Valid() {
			labels = append(labels, f.Label)
		}
	}
	return labels
}

// UnknownSeverities lists the labels of findings whose severity is not one of
// the known grades. They are drawn in the fallback color.
func UnknownSeverities(findings []overlay.Finding) []string {
	var labels []string
	for _, f := range findings {
		if !f.Severity.Known() {
			labels = append(labels, f.Label)
		}
	}
	return labels
}

func stripFence(b []byte) []byte {
	if !bytes.HasPrefix(b, []byte("```")) {
		return b
	}
	// drop the opening fence line, including any language tag
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		b = b[i+1:]
	} else {
		return nil
	}
	b = bytes.TrimSpace(b)
	b = bytes.TrimSuffix(b, []byte("```"))
	return bytes.TrimSpace(b)
}
