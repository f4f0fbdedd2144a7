// Package runtimepath locates per-user runtime files.
package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
)

// SocketEnv overrides the socket location, e.g. to run one gwk per display.
const SocketEnv = "GWK_SOCKET"

// Dir returns the per-user runtime directory: $XDG_RUNTIME_DIR, then
// /run/user/<uid>, then a private /tmp/gwk-runtime-<uid> created on demand.
func Dir() (string, error) {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return dir, nil
	}

	uid := os.Getuid()
	if dir := fmt.Sprintf("/run/user/%d", uid); isDir(dir) {
		return dir, nil
	}

	dir := fmt.Sprintf("/tmp/gwk-runtime-%d", uid)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create runtime dir: %w", err)
	}
	return dir, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// SocketPath returns where `gwk run` listens for inspection requests.
func SocketPath() (string, error) {
	if p := os.Getenv(SocketEnv); p != "" {
		return filepath.Abs(p)
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "gwk.sock"), nil
}
