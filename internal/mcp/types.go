package mcp

import (
	"github.com/1broseidon/gwk/internal/native"
	"github.com/1broseidon/gwk/internal/window"
)

// GetStatusInput is the input for the get_status tool.
type GetStatusInput struct{}

// GetStatusOutput is the output for the get_status tool.
type GetStatusOutput struct {
	PID           int           `json:"pid"`
	UptimeSeconds int64         `json:"uptime_seconds"`
	Windows       int           `json:"windows"`
	Screens       int           `json:"screens"`
	Grab          window.Handle `json:"grab,omitempty"`
	Drag          window.Handle `json:"drag,omitempty"`
	Dragging      bool          `json:"dragging"`
	Events        uint64        `json:"events"`
	Errors        uint64        `json:"errors"`
	LastEvent     string        `json:"last_event,omitempty"`
	LastError     string        `json:"last_error,omitempty"`
}

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct {
	Kind        string `json:"kind,omitempty" jsonschema:"Only return windows of this kind: top-level, child or embedded"`
	VisibleOnly bool   `json:"visible_only,omitempty" jsonschema:"When true, skip hidden windows"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []window.Info `json:"windows"`
	Count   int           `json:"count"`
}

// GetWindowInput is the input for the get_window tool.
type GetWindowInput struct {
	Handle uint32 `json:"handle" jsonschema:"Window handle as reported by list_windows"`
}

// GetWindowOutput is the output for the get_window tool.
type GetWindowOutput struct {
	Window window.Info `json:"window"`
}

// GetGrabStateInput is the input for the get_grab_state tool.
type GetGrabStateInput struct{}

// GetGrabStateOutput is the output for the get_grab_state tool.
type GetGrabStateOutput struct {
	Grab          window.Handle `json:"grab,omitempty"`
	Drag          window.Handle `json:"drag,omitempty"`
	DeviceGrabbed bool          `json:"device_grabbed"`
	Disabled      bool          `json:"disabled"`
}

// ListScreensInput is the input for the list_screens tool.
type ListScreensInput struct{}

// ListScreensOutput is the output for the list_screens tool.
type ListScreensOutput struct {
	Screens []native.Screen `json:"screens"`
}
