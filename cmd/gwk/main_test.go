package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/gwk/internal/config"
	"github.com/1broseidon/gwk/internal/ipc"
	"github.com/1broseidon/gwk/internal/native"
	"github.com/1broseidon/gwk/internal/window"
)

func TestConfigInitWritesLoadableDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gwk", "config.yaml")

	if rc := runConfig([]string{"init", "--path", path}); rc != 0 {
		t.Fatalf("config init rc=%d, want 0", rc)
	}
	res, err := config.LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if len(res.Config.Windows) != len(config.DefaultConfig().Windows) {
		t.Fatalf("windows=%d, want defaults", len(res.Config.Windows))
	}

	if rc := runConfig([]string{"init", "--path", path}); rc != 1 {
		t.Fatalf("second init rc=%d, want 1 without --force", rc)
	}
	if rc := runConfig([]string{"init", "--path", path, "--force"}); rc != 0 {
		t.Fatalf("forced init rc=%d, want 0", rc)
	}
	if rc := runConfig([]string{"validate", "--path", path}); rc != 0 {
		t.Fatalf("validate rc=%d, want 0", rc)
	}
}

func TestConfigValidateRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log_level: loud\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if rc := runConfig([]string{"validate", "--path", path}); rc != 1 {
		t.Fatalf("validate rc=%d, want 1", rc)
	}
}

func TestConfigUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no subcommand", nil},
		{"unknown", []string{"frobnicate"}},
		{"explain without path", []string{"explain"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rc := runConfig(tt.args); rc != 2 {
				t.Fatalf("rc=%d, want 2", rc)
			}
		})
	}
}

func TestFormatSource(t *testing.T) {
	tests := []struct {
		src  config.Source
		want string
	}{
		{config.Source{Kind: config.SourceDefault}, "default"},
		{config.Source{Kind: config.SourceFile}, "file"},
		{config.Source{Kind: config.SourceFile, File: "/a.yaml"}, "file:/a.yaml"},
		{config.Source{Kind: config.SourceFile, File: "/a.yaml", Line: 3, Column: 5}, "file:/a.yaml:3:5"},
	}
	for _, tt := range tests {
		if got := formatSource(tt.src); got != tt.want {
			t.Errorf("formatSource(%+v) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestPrintWindows(t *testing.T) {
	var buf bytes.Buffer
	printWindows(&buf, []window.Info{
		{Handle: 1, Native: 0x400001, Kind: "top-level", Type: "normal", Visible: true, Enabled: true, Width: 640, Height: 480},
		{Handle: 2, Kind: "top-level", Type: "popup", Owner: 1, Enabled: false, Dead: true},
	})
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got:\n%s", buf.String())
	}
	if !strings.Contains(lines[1], "0x400001") || !strings.Contains(lines[1], "640x480+0+0") {
		t.Fatalf("row 1 = %q", lines[1])
	}
	if !strings.Contains(lines[2], "#1") || !strings.Contains(lines[2], "disabled,dead") {
		t.Fatalf("row 2 = %q", lines[2])
	}
}

func TestPrintStatus(t *testing.T) {
	st := &ipc.StatusData{PID: 7}
	st.Grabs = window.GrabInfo{Grab: 4}
	st.Screens = []native.Screen{{Name: "eDP-1"}}
	st.LastError = "window 4: boom"

	var buf bytes.Buffer
	printStatus(&buf, st)
	out := buf.String()
	for _, want := range []string{"pid:            7", "grab:           #4", "drag:           none", "screens:        1", "last_error:     window 4: boom"} {
		if !strings.Contains(out, want) {
			t.Fatalf("status missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "last_event") {
		t.Fatalf("empty last_event should be omitted")
	}
}
