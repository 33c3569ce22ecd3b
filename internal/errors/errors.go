// Package errors defines the coded errors returned by the viewer server.
//
// The overlay engine itself has no error path; these values describe failures
// at its edges: loading images, decoding reports, rejecting bad tool input.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode enum for structured error handling
type ErrorCode string

const (
	// Session errors
	ErrorNoImageLoaded       ErrorCode = "NO_IMAGE_LOADED"
	ErrorInvalidSurface      ErrorCode = "INVALID_SURFACE"
	ErrorInvalidPointerEvent ErrorCode = "INVALID_POINTER_EVENT"

	// Input/output errors
	ErrorDecodeFailed ErrorCode = "DECODE_FAILED"
	ErrorRenderFailed ErrorCode = "RENDER_FAILED"

	// Analysis backend errors
	ErrorAnalysisUnavailable ErrorCode = "ANALYSIS_UNAVAILABLE"
)

// ViewerError represents a structured viewer error
type ViewerError struct {
	Code      ErrorCode
	Message   string
	Timestamp time.Time
	Details   map[string]interface{}
	Cause     error
}

func (e *ViewerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ViewerError) Unwrap() error {
	return e.Cause
}

// Is matches another *ViewerError by code, so errors.Is works against the
// sentinel-like values built by the factories.
func (e *ViewerError) Is(target error) bool {
	t, ok := target.(*ViewerError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Factory functions for common errors

func NewNoImageLoadedError() *ViewerError {
	return &ViewerError{
		Code:      ErrorNoImageLoaded,
		Message:   "No source image has been loaded",
		Timestamp: time.Now(),
	}
}

func NewInvalidSurfaceError(width, height int) *ViewerError {
	return &ViewerError{
		Code:      ErrorInvalidSurface,
		Message:   fmt.Sprintf("Invalid surface size %dx%d", width, height),
		Timestamp: time.Now(),
		Details: map[string]interface{}{
			"width":  width,
			"height": height,
		},
	}
}

func NewInvalidPointerEventError(event string) *ViewerError {
	return &ViewerError{
		Code:      ErrorInvalidPointerEvent,
		Message:   fmt.Sprintf("Unknown pointer event: %s", event),
		Timestamp: time.Now(),
		Details: map[string]interface{}{
			"event": event,
		},
	}
}

func NewDecodeFailedError(source string, cause error) *ViewerError {
	return &ViewerError{
		Code:      ErrorDecodeFailed,
		Message:   fmt.Sprintf("Failed to decode %s", source),
		Timestamp: time.Now(),
		Details: map[string]interface{}{
			"source": source,
		},
		Cause: cause,
	}
}

func NewRenderFailedError(cause error) *ViewerError {
	return &ViewerError{
		Code:      ErrorRenderFailed,
		Message:   "Failed to rasterize frame",
		Timestamp: time.Now(),
		Cause:     cause,
	}
}

func NewAnalysisUnavailableError(cause error) *ViewerError {
	return &ViewerError{
		Code:      ErrorAnalysisUnavailable,
		Message:   "Analysis result unavailable; showing no findings",
		Timestamp: time.Now(),
		Cause:     cause,
	}
}

// ToMap converts the error to a flat map for structured logging
func (e *ViewerError) ToMap() map[string]interface{} {
	result := map[string]interface{}{
		"error_code": string(e.Code),
		"message":    e.Message,
		"timestamp":  e.Timestamp,
	}

	for k, v := range e.Details {
		result[k] = v
	}

	if e.Cause != nil {
		result["cause"] = e.Cause.Error()
	}

	return result
}
