package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func numberProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "number",
		"description": description,
	}
}

func integerProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
	}
}

func boolProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "boolean",
		"description": description,
	}
}

var box2DProp = map[string]interface{}{
	"type":        "array",
	"description": "Normalized box [ymin, xmin, ymax, xmax], each 0-1000",
	"items":       map[string]interface{}{"type": "number"},
	"minItems":    4,
	"maxItems":    4,
}

func emptySchema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Scan and surface
		{
			Name:        "viewer_load_image",
			Description: "Mount a scan in the viewer. Resets findings, annotations and any gesture in progress, and syncs the surface to the display width (aspect preserved) unless width and height are given.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the scan (PNG, JPEG, GIF, TIFF, BMP or WebP)",
					},
					"width":  integerProp("Optional explicit surface width in pixels"),
					"height": integerProp("Optional explicit surface height in pixels"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "viewer_resize",
			Description: "Resize the drawing surface. Findings are re-projected; committed annotations keep their pixel coordinates.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"width":  integerProp("Surface width in pixels (0 to 8192)"),
					"height": integerProp("Surface height in pixels (>= 0)"),
				},
				"required": []string{"width", "height"},
			},
		},

		// Findings
		{
			Name:        "viewer_set_findings",
			Description: "Replace the findings drawn over the scan. Pass either a findings list or the analysis backend's full report (object or raw JSON text). An unreadable report clears the findings and fails with ANALYSIS_UNAVAILABLE.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"findings": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"label":       map[string]interface{}{"type": "string"},
								"description": map[string]interface{}{"type": "string"},
								"severity": map[string]interface{}{
									"type": "string",
									"enum": []string{"Normal", "Mild", "Moderate", "Severe", "Critical"},
								},
								"box_2d": box2DProp,
							},
							"required": []string{"label", "severity", "box_2d"},
						},
					},
					"report": map[string]interface{}{
						"type":        []string{"object", "string"},
						"description": "Analysis report with imagingType, findings, diagnosis, riskLevel, ...",
					},
				},
			},
		},
		{
			Name:        "viewer_to_pixel",
			Description: "Convert a normalized box to surface pixels using the current surface size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"box_2d": box2DProp,
				},
				"required": []string{"box_2d"},
			},
		},

		// Pointer and annotations
		{
			Name:        "viewer_pointer",
			Description: "Feed a pointer event to the viewer. A drag from down to up longer than the commit distance becomes a measurement annotation. Leaving the surface cancels a drag in progress.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"event": map[string]interface{}{
						"type":        "string",
						"description": "Pointer event",
						"enum":        []string{PointerDown, PointerMove, PointerUp, PointerLeave},
					},
					"x": numberProp("Surface X in pixels (required for down and move, optional for up)"),
					"y": numberProp("Surface Y in pixels (required for down and move, optional for up)"),
				},
				"required": []string{"event"},
			},
		},
		{
			Name:        "viewer_annotations",
			Description: "List committed measurement annotations with their distance labels.",
			InputSchema: emptySchema(),
		},
		{
			Name:        "viewer_clear_annotations",
			Description: "Remove every committed annotation.",
			InputSchema: emptySchema(),
		},

		// Display
		{
			Name:        "viewer_set_options",
			Description: "Change display options. Omitted fields keep their value.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"grid":           boolProp("Show the reference grid"),
					"grid_spacing":   integerProp("Grid spacing in pixels"),
					"hover_tracking": boolProp("Show the hover crosshair"),
					"lens_size":      numberProp("Magnifier diameter in pixels, 0 to 1024 (0 disables the lens)"),
					"lens_zoom":      numberProp("Magnifier zoom factor (> 0)"),
				},
			},
		},
		{
			Name:        "viewer_render",
			Description: "Render the current frame (scan, grid, findings, annotations, drag preview, magnifier) as a PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"include_commands": map[string]interface{}{
						"type":        "boolean",
						"description": "Also return the draw command list",
						"default":     false,
					},
				},
			},
		},
		{
			Name:        "viewer_state",
			Description: "Report surface size, gesture phase, hover position, counts and options.",
			InputSchema: emptySchema(),
		},

		// Inspection
		{
			Name:        "viewer_measure_distance",
			Description: "Measure between two surface points without committing an annotation.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x1": numberProp("Start X"),
					"y1": numberProp("Start Y"),
					"x2": numberProp("End X"),
					"y2": numberProp("End Y"),
				},
				"required": []string{"x1", "y1", "x2", "y2"},
			},
		},
		{
			Name:        "viewer_sample_color",
			Description: "Read the scan color displayed under a surface point.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x": numberProp("Surface X"),
					"y": numberProp("Surface Y"),
				},
				"required": []string{"x", "y"},
			},
		},
		{
			Name:        "viewer_magnify",
			Description: "Return the magnifier lens image centred on a surface point as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x":    numberProp("Surface X"),
					"y":    numberProp("Surface Y"),
					"zoom": numberProp("Zoom factor. Defaults to the lens zoom option"),
					"size": numberProp("Lens diameter in pixels, 1 to 1024. Defaults to the lens size option"),
				},
				"required": []string{"x", "y"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
