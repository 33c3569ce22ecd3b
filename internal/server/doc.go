// Package server implements the MCP (Model Context Protocol) server that
// drives one scan viewer session.
//
// The viewer shows a diagnostic scan with layered overlays: a reference grid,
// the findings reported by the analysis backend, measurement annotations
// drawn by the user, the live preview of a drag in progress and a magnifier
// lens following the pointer. Clients feed pointer events and findings in,
// and get rendered frames and draw command lists back.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses and notifications on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Scan and surface:
//   - viewer_load_image: Mount a scan and sync the surface to it
//   - viewer_resize: Change the drawing surface size
//
// Findings:
//   - viewer_set_findings: Replace findings from a list or a full analysis report
//   - viewer_to_pixel: Convert a normalized box to surface pixels
//
// Pointer and annotations:
//   - viewer_pointer: Feed down/move/up/leave events
//   - viewer_annotations: List committed measurements
//   - viewer_clear_annotations: Remove all measurements
//
// Display:
//   - viewer_set_options: Grid, hover tracking and lens settings
//   - viewer_render: Rasterize the current frame as PNG
//   - viewer_state: Session summary
//
// Inspection:
//   - viewer_measure_distance: Measure without committing
//   - viewer_sample_color: Scan color under a surface point
//   - viewer_magnify: Lens image at a surface point
//
// # Notifications
//
// While serving, the server emits notifications/annotation_committed when a
// drag commits and notifications/annotations_cleared when
// viewer_clear_annotations empties the annotation set.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The error string, prefixed with its code (e.g. NO_IMAGE_LOADED)
//
// # Usage
//
//	srv, err := server.New(cfg, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer srv.Close()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
