package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/scan-overlay-mcp/internal/analysis"
	viewerr "github.com/ironsheep/scan-overlay-mcp/internal/errors"
	"github.com/ironsheep/scan-overlay-mcp/internal/imaging"
	"github.com/ironsheep/scan-overlay-mcp/internal/overlay"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "viewer_pointer", "viewer_render").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// contentResult is implemented by results that carry more than a JSON text
// block, such as rendered frames.
type contentResult interface {
	Content() []map[string]interface{}
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		var verr *viewerr.ViewerError
		if errors.As(err, &verr) {
			s.log.Warn("Tool failed", "tool", params.Name, "details", verr.ToMap())
		} else {
			s.log.Warn("Tool failed", "tool", params.Name, "error", err)
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	content := []map[string]interface{}{
		{
			"type": "text",
			"text": mustMarshalJSON(result),
		},
	}
	if c, ok := result.(contentResult); ok {
		content = c.Content()
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": content,
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Scan and surface
	case "viewer_load_image":
		return s.handleLoadImage(args)
	case "viewer_resize":
		return s.handleResize(args)

	// Findings
	case "viewer_set_findings":
		return s.handleSetFindings(args)
	case "viewer_to_pixel":
		return s.handleToPixel(args)

	// Pointer and annotations
	case "viewer_pointer":
		return s.handlePointer(args)
	case "viewer_annotations":
		return s.handleAnnotations(args)
	case "viewer_clear_annotations":
		return s.handleClearAnnotations(args)

	// Display
	case "viewer_set_options":
		return s.handleSetOptions(args)
	case "viewer_render":
		return s.handleRender(args)
	case "viewer_state":
		return s.handleState(args)

	// Inspection
	case "viewer_measure_distance":
		return s.handleMeasureDistance(args)
	case "viewer_sample_color":
		return s.handleSampleColor(args)
	case "viewer_magnify":
		return s.handleMagnify(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func (s *Server) requireImage() (image.Image, error) {
	if s.source == nil {
		return nil, viewerr.NewNoImageLoadedError()
	}
	return s.source, nil
}

func (s *Server) naturalBounds() image.Rectangle {
	if s.source == nil {
		return image.Rectangle{}
	}
	return s.source.Bounds()
}

// === Scan and surface ===

type loadImageArgs struct {
	Path   string `json:"path"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type loadImageResult struct {
	Image   *imaging.ImageInfo        `json:"image"`
	Surface overlay.SurfaceDimensions `json:"surface"`
}

func (s *Server) handleLoadImage(args json.RawMessage) (interface{}, error) {
	var a loadImageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	info, err := imaging.LoadImageInfo(s.cache, a.Path)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	surface := imaging.DisplaySize(img.Bounds(), s.cfg.DisplayWidth)
	if a.Width > 0 && a.Height > 0 {
		surface = overlay.SurfaceDimensions{Width: a.Width, Height: a.Height}
	}
	if err := overlay.CheckSurface(surface.Width, surface.Height); err != nil {
		if a.Path != s.sourcePath {
			s.cache.Evict(a.Path)
		}
		return nil, err
	}

	if s.sourcePath != "" && s.sourcePath != a.Path {
		s.cache.Evict(s.sourcePath)
	}
	s.source = img
	s.sourcePath = a.Path
	s.report = nil

	s.session.Reset()
	if err := s.session.Resize(surface.Width, surface.Height); err != nil {
		return nil, err
	}

	s.log.Info("Scan mounted", "path", a.Path, "format", info.Format,
		"natural", fmt.Sprintf("%dx%d", info.Width, info.Height),
		"surface", fmt.Sprintf("%dx%d", surface.Width, surface.Height),
		"cached", s.cache.Len())

	return &loadImageResult{Image: info, Surface: surface}, nil
}

type resizeArgs struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s *Server) handleResize(args json.RawMessage) (interface{}, error) {
	var a resizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := s.session.Resize(a.Width, a.Height); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"surface": s.session.State().Surface,
	}, nil
}

// === Findings ===

type setFindingsArgs struct {
	Findings []overlay.Finding `json:"findings"`
	Report   json.RawMessage   `json:"report"`
}

type setFindingsResult struct {
	Count            int      `json:"count"`
	MalformedBoxes   []string `json:"malformed_boxes,omitempty"`
	UnknownSeverity  []string `json:"unknown_severity,omitempty"`
	ImagingType      string   `json:"imaging_type,omitempty"`
	Diagnosis        string   `json:"diagnosis,omitempty"`
	RiskLevel        string   `json:"risk_level,omitempty"`
	Prognosis        string   `json:"prognosis,omitempty"`
	Recommendations  []string `json:"recommendations,omitempty"`
	ReportDisclaimer string   `json:"disclaimer,omitempty"`
}

func (s *Server) handleSetFindings(args json.RawMessage) (interface{}, error) {
	var a setFindingsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	findings := a.Findings
	if len(a.Report) > 0 && string(a.Report) != "null" {
		// The report may arrive as an object or as the raw model text.
		data := []byte(a.Report)
		var raw string
		if err := json.Unmarshal(a.Report, &raw); err == nil {
			data = []byte(raw)
		}

		report, err := analysis.Decode(data)
		if err != nil {
			s.report = nil
			s.session.SetFindings(analysis.Findings(nil))
			return nil, err
		}
		s.report = report
		findings = analysis.Findings(report)
	}
	if findings == nil {
		findings = []overlay.Finding{}
	}

	s.session.SetFindings(findings)

	result := &setFindingsResult{
		Count:           len(findings),
		MalformedBoxes:  analysis.MalformedFindings(findings),
		UnknownSeverity: analysis.UnknownSeverities(findings),
	}
	if len(result.MalformedBoxes) > 0 {
		s.log.Warn("Findings with malformed boxes", "labels", result.MalformedBoxes)
	}
	if s.report != nil && len(a.Report) > 0 {
		result.ImagingType = s.report.ImagingType
		result.Diagnosis = s.report.Diagnosis
		result.RiskLevel = s.report.RiskLevel
		result.Prognosis = s.report.Prognosis
		result.Recommendations = s.report.Recommendations
		result.ReportDisclaimer = s.report.Disclaimer
	}
	return result, nil
}

type toPixelArgs struct {
	Box2D overlay.Box `json:"box_2d"`
}

func (s *Server) handleToPixel(args json.RawMessage) (interface{}, error) {
	var a toPixelArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	surface := s.session.State().Surface
	return map[string]interface{}{
		"rect":    overlay.ToPixel(a.Box2D, surface),
		"valid":   a.Box2D.Valid(),
		"surface": surface,
	}, nil
}

// === Pointer and annotations ===

// Pointer event names accepted by viewer_pointer.
const (
	PointerDown  = "down"
	PointerMove  = "move"
	PointerUp    = "up"
	PointerLeave = "leave"
)

type pointerArgs struct {
	Event string   `json:"event"`
	X     *float64 `json:"x"`
	Y     *float64 `json:"y"`
}

func (a pointerArgs) point() (overlay.Point, bool) {
	if a.X == nil || a.Y == nil {
		return overlay.Point{}, false
	}
	return overlay.Pt(*a.X, *a.Y), true
}

type pointerResult struct {
	Phase     overlay.Phase       `json:"phase"`
	Committed *overlay.Annotation `json:"committed,omitempty"`
	Distance  string              `json:"distance_label,omitempty"`
	Hover     *overlay.Point      `json:"hover,omitempty"`

	// HoverNormalized is Hover in the 0-1000 space findings use.
	HoverNormalized *overlay.Point `json:"hover_normalized,omitempty"`
}

func (s *Server) handlePointer(args json.RawMessage) (interface{}, error) {
	var a pointerArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	p, hasPoint := a.point()
	var committed *overlay.Annotation

	switch a.Event {
	case PointerDown:
		if !hasPoint {
			return nil, viewerr.NewInvalidPointerEventError(a.Event + " requires x and y")
		}
		s.session.PointerDown(p)
	case PointerMove:
		if !hasPoint {
			return nil, viewerr.NewInvalidPointerEventError(a.Event + " requires x and y")
		}
		s.session.PointerMove(p)
	case PointerUp:
		if hasPoint {
			s.session.PointerMove(p)
		}
		committed = s.session.PointerUp()
	case PointerLeave:
		s.session.PointerLeave()
	default:
		return nil, viewerr.NewInvalidPointerEventError(a.Event)
	}

	st := s.session.State()
	result := &pointerResult{
		Phase:     st.Draw.Phase,
		Committed: committed,
		Hover:     st.Hover,
	}
	if st.Hover != nil {
		n := overlay.ToNormalized(*st.Hover, st.Surface)
		result.HoverNormalized = &n
	}
	if committed != nil {
		result.Distance = committed.DistanceLabel()
	} else if st.Draw.Drawing() {
		result.Distance = overlay.FormatDistance(overlay.Distance(*st.Draw.Start, *st.Draw.Current))
	}
	return result, nil
}

type annotationView struct {
	overlay.Annotation
	DistanceLabel string `json:"distance_label"`
}

func (s *Server) handleAnnotations(_ json.RawMessage) (interface{}, error) {
	anns := s.session.Annotations()
	views := make([]annotationView, 0, len(anns))
	for _, a := range anns {
		views = append(views, annotationView{Annotation: a, DistanceLabel: a.DistanceLabel()})
	}
	return map[string]interface{}{
		"count":       len(views),
		"annotations": views,
	}, nil
}

func (s *Server) handleClearAnnotations(_ json.RawMessage) (interface{}, error) {
	n := len(s.session.Annotations())
	s.session.ClearAnnotations()
	return map[string]interface{}{
		"cleared": n,
	}, nil
}

// === Display ===

type setOptionsArgs struct {
	Grid          *bool    `json:"grid"`
	GridSpacing   *int     `json:"grid_spacing"`
	HoverTracking *bool    `json:"hover_tracking"`
	LensSize      *float64 `json:"lens_size"`
	LensZoom      *float64 `json:"lens_zoom"`
}

func (s *Server) handleSetOptions(args json.RawMessage) (interface{}, error) {
	var a setOptionsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	opts := s.session.State().Options
	if a.Grid != nil {
		opts.Grid = *a.Grid
	}
	if a.GridSpacing != nil {
		if *a.GridSpacing <= 0 {
			return nil, fmt.Errorf("grid_spacing must be positive, got %d", *a.GridSpacing)
		}
		opts.GridSpacing = *a.GridSpacing
	}
	if a.HoverTracking != nil {
		opts.HoverTracking = *a.HoverTracking
	}
	if a.LensSize != nil {
		opts.LensSize = *a.LensSize
	}
	if a.LensZoom != nil {
		opts.LensZoom = *a.LensZoom
	}
	if err := overlay.CheckLens(opts.LensSize, opts.LensZoom); err != nil {
		return nil, err
	}
	s.session.SetOptions(opts)

	return map[string]interface{}{
		"options": opts,
	}, nil
}

type renderArgs struct {
	IncludeCommands bool `json:"include_commands"`
}

type renderResult struct {
	Surface      overlay.SurfaceDimensions `json:"surface"`
	CommandCount int                       `json:"command_count"`
	Commands     []overlay.Command         `json:"commands,omitempty"`
	Image        *imaging.EncodedImage     `json:"-"`
}

// Content returns the frame as MCP image content followed by its summary.
func (r *renderResult) Content() []map[string]interface{} {
	return []map[string]interface{}{
		{
			"type":     "image",
			"data":     r.Image.ImageBase64,
			"mimeType": r.Image.MimeType,
		},
		{
			"type": "text",
			"text": mustMarshalJSON(r),
		},
	}
}

func (s *Server) handleRender(args json.RawMessage) (interface{}, error) {
	var a renderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	cmds := s.session.Frame()
	surface := s.session.State().Surface
	img, err := s.raster.RenderPNG(surface, s.source, cmds)
	if err != nil {
		return nil, err
	}

	result := &renderResult{
		Surface:      surface,
		CommandCount: len(cmds),
		Image:        img,
	}
	if a.IncludeCommands {
		result.Commands = cmds
	}
	return result, nil
}

type stateResult struct {
	Surface      overlay.SurfaceDimensions `json:"surface"`
	ImagePath    string                    `json:"image_path,omitempty"`
	Phase        overlay.Phase             `json:"phase"`
	Hover        *overlay.Point            `json:"hover,omitempty"`
	Findings     int                       `json:"findings"`
	Annotations  int                       `json:"annotations"`
	Options      overlay.Options           `json:"options"`
	FramesDrawn  int                       `json:"frames_drawn"`
	FramesSkip   int                       `json:"frames_coalesced"`
	FramePending bool                      `json:"frame_pending"`
}

func (s *Server) handleState(_ json.RawMessage) (interface{}, error) {
	st := s.session.State()
	ran, cancelled := s.session.FrameStats()
	return &stateResult{
		Surface:      st.Surface,
		ImagePath:    s.sourcePath,
		Phase:        st.Draw.Phase,
		Hover:        st.Hover,
		Findings:     len(st.Findings),
		Annotations:  len(st.Annotations),
		Options:      st.Options,
		FramesDrawn:  ran,
		FramesSkip:   cancelled,
		FramePending: s.session.FramePending(),
	}, nil
}

// === Inspection ===

type measureDistanceArgs struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

func (s *Server) handleMeasureDistance(args json.RawMessage) (interface{}, error) {
	var a measureDistanceArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.MeasureDistance(s.session.State().Surface, s.naturalBounds(),
		overlay.Pt(a.X1, a.Y1), overlay.Pt(a.X2, a.Y2)), nil
}

type surfacePointArgs struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (s *Server) handleSampleColor(args json.RawMessage) (interface{}, error) {
	var a surfacePointArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.requireImage()
	if err != nil {
		return nil, err
	}
	return imaging.SampleAtSurface(img, s.session.State().Surface, overlay.Pt(a.X, a.Y))
}

type magnifyArgs struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
	Size float64 `json:"size"`
}

func (s *Server) handleMagnify(args json.RawMessage) (interface{}, error) {
	var a magnifyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.requireImage()
	if err != nil {
		return nil, err
	}
	opts := s.session.State().Options
	if a.Zoom == 0 {
		a.Zoom = opts.LensZoom
	}
	if a.Size == 0 {
		a.Size = opts.LensSize
	}
	if err := overlay.CheckLens(a.Size, a.Zoom); err != nil {
		return nil, err
	}
	if a.Size < 1 {
		return nil, fmt.Errorf("lens size must be at least 1 pixel, got %v", a.Size)
	}
	return imaging.Magnify(img, s.session.State().Surface, overlay.Pt(a.X, a.Y), a.Zoom, a.Size)
}
