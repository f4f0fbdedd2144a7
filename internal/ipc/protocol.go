package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/1broseidon/gwk/internal/dispatch"
	"github.com/1broseidon/gwk/internal/native"
	"github.com/1broseidon/gwk/internal/window"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandGetStatus   CommandType = "GET_STATUS"
	CommandListWindows CommandType = "LIST_WINDOWS"
	CommandGetWindow   CommandType = "GET_WINDOW"
	CommandGetGrab     CommandType = "GET_GRAB"
	CommandGetScreens  CommandType = "GET_SCREENS"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData is returned by GET_STATUS.
type StatusData struct {
	dispatch.Status
	UptimeSeconds int64 `json:"uptime_seconds"`
	PID           int   `json:"pid"`
}

// WindowsData is returned by LIST_WINDOWS.
type WindowsData struct {
	Windows []window.Info `json:"windows"`
}

// GetWindowPayload selects a window for GET_WINDOW.
type GetWindowPayload struct {
	Handle window.Handle `json:"handle"`
}

// ScreensData is returned by GET_SCREENS.
type ScreensData struct {
	Screens []native.Screen `json:"screens"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
