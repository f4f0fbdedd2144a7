package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestDirPrefersXDGRuntimeDir(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", td)

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if got != td {
		t.Fatalf("Dir() = %q, want %q", got, td)
	}
}

func TestDirFallback(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "")

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	uid := os.Getuid()
	if got != fmt.Sprintf("/run/user/%d", uid) && got != fmt.Sprintf("/tmp/gwk-runtime-%d", uid) {
		t.Fatalf("Dir() = %q, want /run/user or /tmp fallback", got)
	}
}

func TestSocketPath(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", td)

	tests := []struct {
		name     string
		override string
		want     string
	}{
		{"default", "", filepath.Join(td, "gwk.sock")},
		{"override", filepath.Join(td, "display-1.sock"), filepath.Join(td, "display-1.sock")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(SocketEnv, tt.override)
			got, err := SocketPath()
			if err != nil {
				t.Fatalf("SocketPath() error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("SocketPath() = %q, want %q", got, tt.want)
			}
		})
	}
}
