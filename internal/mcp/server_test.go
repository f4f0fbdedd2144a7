package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/1broseidon/gwk/internal/dispatch"
	"github.com/1broseidon/gwk/internal/ipc"
	"github.com/1broseidon/gwk/internal/native"
	"github.com/1broseidon/gwk/internal/window"
)

type fakeBackend struct {
	status dispatch.Status
	err    error
}

func (f *fakeBackend) GetStatus() (*ipc.StatusData, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &ipc.StatusData{Status: f.status, PID: 77, UptimeSeconds: 5}, nil
}

func (f *fakeBackend) ListWindows() ([]window.Info, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.status.Windows, nil
}

func (f *fakeBackend) GetWindow(h window.Handle) (*window.Info, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, w := range f.status.Windows {
		if w.Handle == h {
			return &w, nil
		}
	}
	return nil, fmt.Errorf("gwk error: Unknown window: %d", h)
}

func (f *fakeBackend) GetGrab() (*window.GrabInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	g := f.status.Grabs
	return &g, nil
}

func (f *fakeBackend) GetScreens() ([]native.Screen, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.status.Screens, nil
}

func newTestServer() (*Server, *fakeBackend) {
	b := &fakeBackend{status: dispatch.Status{
		Windows: []window.Info{
			{Handle: 1, Kind: "top-level", Visible: true, Children: []window.Handle{2}},
			{Handle: 2, Kind: "child", Owner: 1},
			{Handle: 3, Kind: "top-level", Visible: true},
		},
		Grabs:     window.GrabInfo{Grab: 3, Drag: 1, DeviceGrabbed: true},
		Screens:   []native.Screen{{Name: "HDMI-1", Primary: true}},
		Dragging:  true,
		Events:    12,
		LastEvent: "button-press",
	}}
	return NewServer(b), b
}

func TestGetStatus(t *testing.T) {
	s, _ := newTestServer()
	_, out, err := s.handleGetStatus(context.Background(), nil, GetStatusInput{})
	if err != nil {
		t.Fatalf("handleGetStatus: %v", err)
	}
	if out.PID != 77 || out.Windows != 3 || out.Screens != 1 {
		t.Fatalf("unexpected status %+v", out)
	}
	if out.Grab != 3 || out.Drag != 1 || !out.Dragging || out.LastEvent != "button-press" {
		t.Fatalf("unexpected grab fields %+v", out)
	}
}

func TestListWindowsFilters(t *testing.T) {
	s, _ := newTestServer()
	tests := []struct {
		name  string
		input ListWindowsInput
		want  []window.Handle
	}{
		{"all", ListWindowsInput{}, []window.Handle{1, 2, 3}},
		{"top-level only", ListWindowsInput{Kind: "top-level"}, []window.Handle{1, 3}},
		{"kind is case insensitive", ListWindowsInput{Kind: " Child "}, []window.Handle{2}},
		{"visible only", ListWindowsInput{VisibleOnly: true}, []window.Handle{1, 3}},
		{"no embedded", ListWindowsInput{Kind: "embedded"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out, err := s.handleListWindows(context.Background(), nil, tt.input)
			if err != nil {
				t.Fatalf("handleListWindows: %v", err)
			}
			if out.Count != len(tt.want) || len(out.Windows) != len(tt.want) {
				t.Fatalf("got %d windows, want %d", out.Count, len(tt.want))
			}
			for i, h := range tt.want {
				if out.Windows[i].Handle != h {
					t.Fatalf("window %d = %d, want %d", i, out.Windows[i].Handle, h)
				}
			}
		})
	}
}

func TestListWindowsRejectsUnknownKind(t *testing.T) {
	s, _ := newTestServer()
	_, _, err := s.handleListWindows(context.Background(), nil, ListWindowsInput{Kind: "popup"})
	if err == nil || !strings.Contains(err.Error(), "unknown window kind") {
		t.Fatalf("expected kind error, got %v", err)
	}
}

func TestGetWindow(t *testing.T) {
	s, _ := newTestServer()
	_, out, err := s.handleGetWindow(context.Background(), nil, GetWindowInput{Handle: 2})
	if err != nil {
		t.Fatalf("handleGetWindow: %v", err)
	}
	if out.Window.Owner != 1 || out.Window.Kind != "child" {
		t.Fatalf("unexpected window %+v", out.Window)
	}

	if _, _, err := s.handleGetWindow(context.Background(), nil, GetWindowInput{}); err == nil {
		t.Fatalf("expected error for missing handle")
	}
	if _, _, err := s.handleGetWindow(context.Background(), nil, GetWindowInput{Handle: 40}); err == nil {
		t.Fatalf("expected error for unknown handle")
	}
}

func TestGetGrabStateAndScreens(t *testing.T) {
	s, _ := newTestServer()
	_, g, err := s.handleGetGrabState(context.Background(), nil, GetGrabStateInput{})
	if err != nil {
		t.Fatalf("handleGetGrabState: %v", err)
	}
	if g.Grab != 3 || g.Drag != 1 || !g.DeviceGrabbed || g.Disabled {
		t.Fatalf("unexpected grab state %+v", g)
	}

	_, sc, err := s.handleListScreens(context.Background(), nil, ListScreensInput{})
	if err != nil {
		t.Fatalf("handleListScreens: %v", err)
	}
	if len(sc.Screens) != 1 || !sc.Screens[0].Primary {
		t.Fatalf("unexpected screens %+v", sc.Screens)
	}
}

func TestBackendErrorsPropagate(t *testing.T) {
	s, b := newTestServer()
	b.err = errors.New("failed to connect to gwk")
	ctx := context.Background()

	if _, _, err := s.handleGetStatus(ctx, nil, GetStatusInput{}); err == nil {
		t.Fatalf("get_status: expected error")
	}
	if _, _, err := s.handleListWindows(ctx, nil, ListWindowsInput{}); err == nil {
		t.Fatalf("list_windows: expected error")
	}
	if _, _, err := s.handleGetGrabState(ctx, nil, GetGrabStateInput{}); err == nil {
		t.Fatalf("get_grab_state: expected error")
	}
	if _, _, err := s.handleListScreens(ctx, nil, ListScreensInput{}); err == nil {
		t.Fatalf("list_screens: expected error")
	}
}

var _ Backend = (*ipc.Client)(nil)
