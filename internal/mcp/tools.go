package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/gwk/internal/window"
)

func (s *Server) handleGetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetStatusInput) (*mcpsdk.CallToolResult, GetStatusOutput, error) {
	st, err := s.backend.GetStatus()
	if err != nil {
		return nil, GetStatusOutput{}, err
	}
	return nil, GetStatusOutput{
		PID:           st.PID,
		UptimeSeconds: st.UptimeSeconds,
		Windows:       len(st.Windows),
		Screens:       len(st.Screens),
		Grab:          st.Grabs.Grab,
		Drag:          st.Grabs.Drag,
		Dragging:      st.Dragging,
		Events:        st.Events,
		Errors:        st.Errors,
		LastEvent:     st.LastEvent,
		LastError:     st.LastError,
	}, nil
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, args ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	kind := strings.ToLower(strings.TrimSpace(args.Kind))
	switch kind {
	case "", "top-level", "child", "embedded":
	default:
		return nil, ListWindowsOutput{}, fmt.Errorf("unknown window kind %q; expected top-level, child or embedded", args.Kind)
	}

	all, err := s.backend.ListWindows()
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}
	out := ListWindowsOutput{Windows: make([]window.Info, 0, len(all))}
	for _, w := range all {
		if kind != "" && w.Kind != kind {
			continue
		}
		if args.VisibleOnly && !w.Visible {
			continue
		}
		out.Windows = append(out.Windows, w)
	}
	out.Count = len(out.Windows)
	return nil, out, nil
}

func (s *Server) handleGetWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args GetWindowInput) (*mcpsdk.CallToolResult, GetWindowOutput, error) {
	if args.Handle == 0 {
		return nil, GetWindowOutput{}, fmt.Errorf("handle is required")
	}
	w, err := s.backend.GetWindow(window.Handle(args.Handle))
	if err != nil {
		return nil, GetWindowOutput{}, err
	}
	return nil, GetWindowOutput{Window: *w}, nil
}

func (s *Server) handleGetGrabState(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetGrabStateInput) (*mcpsdk.CallToolResult, GetGrabStateOutput, error) {
	g, err := s.backend.GetGrab()
	if err != nil {
		return nil, GetGrabStateOutput{}, err
	}
	return nil, GetGrabStateOutput{
		Grab:          g.Grab,
		Drag:          g.Drag,
		DeviceGrabbed: g.DeviceGrabbed,
		Disabled:      g.Disabled,
	}, nil
}

func (s *Server) handleListScreens(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListScreensInput) (*mcpsdk.CallToolResult, ListScreensOutput, error) {
	screens, err := s.backend.GetScreens()
	if err != nil {
		return nil, ListScreensOutput{}, err
	}
	return nil, ListScreensOutput{Screens: screens}, nil
}
