package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/gwk/internal/ipc"
	"github.com/1broseidon/gwk/internal/native"
	"github.com/1broseidon/gwk/internal/window"
)

const (
	ServerName    = "gwk"
	ServerVersion = "0.1.0"
)

// Backend is the read side of a running gwk. *ipc.Client implements it.
type Backend interface {
	GetStatus() (*ipc.StatusData, error)
	ListWindows() ([]window.Info, error)
	GetWindow(h window.Handle) (*window.Info, error)
	GetGrab() (*window.GrabInfo, error)
	GetScreens() ([]native.Screen, error)
}

// Server exposes window and grab inspection as MCP tools.
type Server struct {
	mcpServer *mcpsdk.Server
	backend   Backend
}

// NewServer creates an MCP server that answers from backend.
func NewServer(backend Backend) *Server {
	s := &Server{
		mcpServer: mcpsdk.NewServer(&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		}, nil),
		backend: backend,
	}
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_status",
		Description: "Summarize the running gwk: window count, grab holders, event and error counters, and the last dispatched event.",
	}, s.handleGetStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List every tracked window with its handle, kind, owner, visibility and geometry. Optionally filter by kind (top-level, child, embedded).",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_window",
		Description: "Fetch one tracked window by handle.",
	}, s.handleGetWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_grab_state",
		Description: "Report which window holds the pointer grab, which one is dragging, and whether the device is grabbed.",
	}, s.handleGetGrabState)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_screens",
		Description: "List the physical screens with bounds and work areas as last seen by the dispatcher.",
	}, s.handleListScreens)
}

// Run serves MCP over stdin/stdout until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}
