package ipc

import (
	"io"
	"log/slog"
	"net"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/gwk/internal/dispatch"
	"github.com/1broseidon/gwk/internal/native"
	"github.com/1broseidon/gwk/internal/window"
)

type staticSource struct{ status dispatch.Status }

func (s staticSource) Load() dispatch.Status { return s.status }

func startServer(t *testing.T, st dispatch.Status) *Client {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gwk.sock")
	srv := NewServerAt(path, staticSource{st}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(srv.Stop)
	return NewClientAt(path)
}

func testStatus() dispatch.Status {
	return dispatch.Status{
		Windows: []window.Info{
			{Handle: 1, Kind: "top-level", Visible: true, Enabled: true, Children: []window.Handle{2}},
			{Handle: 2, Kind: "child", Owner: 1},
		},
		Grabs:   window.GrabInfo{Grab: 1, DeviceGrabbed: true},
		Screens: []native.Screen{{Name: "DP-1", Primary: true, Bounds: native.Geometry{Width: 1920, Height: 1080}}},
		Events:  42,
	}
}

func TestServerAnswersQueries(t *testing.T) {
	client := startServer(t, testStatus())

	status, err := client.GetStatus()
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if status.Events != 42 || len(status.Windows) != 2 || status.PID == 0 {
		t.Fatalf("unexpected status %+v", status)
	}

	windows, err := client.ListWindows()
	if err != nil {
		t.Fatalf("ListWindows: %v", err)
	}
	if len(windows) != 2 || windows[1].Owner != 1 {
		t.Fatalf("unexpected windows %+v", windows)
	}

	w, err := client.GetWindow(2)
	if err != nil {
		t.Fatalf("GetWindow: %v", err)
	}
	if w.Kind != "child" {
		t.Fatalf("GetWindow(2) = %+v", w)
	}

	grabs, err := client.GetGrab()
	if err != nil {
		t.Fatalf("GetGrab: %v", err)
	}
	if grabs.Grab != 1 || grabs.Drag != 0 || !grabs.DeviceGrabbed {
		t.Fatalf("unexpected grabs %+v", grabs)
	}

	screens, err := client.GetScreens()
	if err != nil {
		t.Fatalf("GetScreens: %v", err)
	}
	if len(screens) != 1 || screens[0].Name != "DP-1" {
		t.Fatalf("unexpected screens %+v", screens)
	}
}

func TestServerErrors(t *testing.T) {
	client := startServer(t, testStatus())

	if _, err := client.GetWindow(9); err == nil || !strings.Contains(err.Error(), "Unknown window") {
		t.Fatalf("expected unknown window error, got %v", err)
	}

	var data struct{}
	err := client.call("RESIZE", nil, &data)
	if err == nil || !strings.Contains(err.Error(), "Unknown command") {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestServerRejectsMalformedRequest(t *testing.T) {
	client := startServer(t, testStatus())

	conn, err := net.Dial("unix", client.socketPath)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	if _, err := conn.Write([]byte("not json\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err := io.ReadAll(conn)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(out), `"status":"ERROR"`) {
		t.Fatalf("expected error response, got %s", out)
	}
}

func TestClientWithoutServer(t *testing.T) {
	client := NewClientAt(filepath.Join(t.TempDir(), "missing.sock"))
	if err := client.Ping(); err == nil {
		t.Fatalf("expected connection error")
	}
}
