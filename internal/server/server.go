package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/ironsheep/scan-overlay-mcp/internal/analysis"
	"github.com/ironsheep/scan-overlay-mcp/internal/config"
	"github.com/ironsheep/scan-overlay-mcp/internal/imaging"
	"github.com/ironsheep/scan-overlay-mcp/internal/logging"
	"github.com/ironsheep/scan-overlay-mcp/internal/overlay"
	"github.com/ironsheep/scan-overlay-mcp/internal/raster"
)

// Notification methods emitted by the server.
const (
	NotifyAnnotationCommitted = "notifications/annotation_committed"
	NotifyAnnotationsCleared  = "notifications/annotations_cleared"
)

// Server handles MCP protocol communication for one viewer session
type Server struct {
	cfg *config.Config
	log *logging.Logger

	cache  *imaging.ImageCache
	fonts  *raster.Fonts
	raster *raster.Rasterizer

	session    *overlay.Session
	source     image.Image
	sourcePath string
	report     *analysis.Report

	encoder *json.Encoder
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// MCPNotification represents an outgoing notification (no ID)
type MCPNotification struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

// New creates a server with an empty session sized from cfg.
func New(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	fonts, err := raster.NewFonts()
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:    cfg,
		log:    logger.With("server"),
		cache:  imaging.NewImageCache(),
		fonts:  fonts,
		raster: raster.New(fonts),
	}

	committer := overlay.DefaultCommitter()
	committer.MinDistance = cfg.MinCommitDistance
	s.session = overlay.NewSession(
		overlay.SurfaceDimensions{Width: cfg.DisplayWidth, Height: cfg.DisplayHeight},
		optionsFromConfig(cfg),
		overlay.WithCommitter(committer),
		overlay.WithMeasurer(fonts),
	)
	s.session.OnCommit(s.annotationCommitted)
	s.session.OnClear(s.annotationsCleared)
	return s, nil
}

func optionsFromConfig(cfg *config.Config) overlay.Options {
	return overlay.Options{
		Grid:          cfg.Grid,
		GridSpacing:   cfg.GridSpacing,
		HoverTracking: cfg.HoverTracking,
		LensSize:      cfg.LensSize,
		LensZoom:      cfg.LensZoom,
	}
}

// Close drops cached scans and releases the font source.
func (s *Server) Close() error {
	s.cache.Clear()
	return s.fonts.Close()
}

// Run starts the MCP server, reading from stdin and writing to stdout
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve reads one JSON-RPC message per line from r and writes responses and
// notifications to w until r is exhausted.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// Rendered frames are returned inline, but requests stay small; reports
	// can be large, so allow up to 4MB per line.
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 4*1024*1024)

	s.encoder = json.NewEncoder(w)
	defer func() { s.encoder = nil }()

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.log.Warn("Failed to parse request", "error", err)
			continue
		}

		resp := s.handleRequest(&req)
		if resp != nil {
			if err := s.encoder.Encode(resp); err != nil {
				s.log.Error("Failed to encode response", "error", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	s.log.Debug("Request", "method", req.Method, "id", req.ID)

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "scan-overlay-mcp",
				"version": "0.1.0",
			},
		},
	}
}

// notify writes a notification to the client. Outside Serve there is no
// client, and the notification is only logged.
func (s *Server) notify(method string, params interface{}) {
	if s.encoder == nil {
		s.log.Debug("Notification dropped, no client attached", "method", method)
		return
	}
	n := MCPNotification{JSONRPC: "2.0", Method: method, Params: params}
	if err := s.encoder.Encode(n); err != nil {
		s.log.Error("Failed to encode notification", "method", method, "error", err)
	}
}

func (s *Server) annotationCommitted(a overlay.Annotation) {
	s.log.Info("Annotation committed", "id", a.ID, "length", a.DistanceLabel())
	s.notify(NotifyAnnotationCommitted, map[string]interface{}{
		"annotation":     a,
		"distance_label": a.DistanceLabel(),
	})
}

func (s *Server) annotationsCleared() {
	s.log.Info("Annotations cleared")
	s.notify(NotifyAnnotationsCleared, map[string]interface{}{})
}
