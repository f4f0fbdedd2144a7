package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/gwk/internal/native"
)

func writeConfig(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if !cfg.IPC.GetEnabled() {
		t.Fatalf("expected ipc enabled by default")
	}
	if len(cfg.Windows) == 0 {
		t.Fatalf("expected default windows")
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.LogLevel != "info" {
		t.Fatalf("expected log_level info, got %q", res.Config.LogLevel)
	}
	if len(res.Files) != 0 {
		t.Fatalf("expected no files, got %v", res.Files)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "# empty\n")
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Scroll.MultiplierX != 40 || res.Config.Scroll.MultiplierY != 40 {
		t.Fatalf("expected default scroll multipliers, got %+v", res.Config.Scroll)
	}
}

func TestLoadFromPath_Values(t *testing.T) {
	data := strings.Join([]string{
		`display: ":1"`,
		"disable_grab: true",
		"log_level: debug",
		"scroll:",
		"  multiplier_y: 20",
		"ipc:",
		"  enabled: false",
		"trace:",
		"  enabled: true",
		"  level: debug",
		"windows:",
		"  - title: main",
		"    width: 300",
		"    height: 200",
		"    frame: untitled",
		"  - title: palette",
		"    width: 100",
		"    height: 100",
		"    type: popup",
		"    owner: main",
		"",
	}, "\n")
	path := writeConfig(t, t.TempDir(), "config.yaml", data)

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.Display != ":1" || !cfg.DisableGrab || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected scalars: %+v", cfg)
	}
	if cfg.Scroll.MultiplierX != 40 || cfg.Scroll.MultiplierY != 20 {
		t.Fatalf("expected partial scroll override, got %+v", cfg.Scroll)
	}
	if cfg.IPC.GetEnabled() {
		t.Fatalf("expected ipc disabled")
	}
	trace := cfg.GetTraceConfig()
	if !trace.Enabled || trace.Level != "debug" || trace.MaxFiles != 3 || trace.MaxSizeMB != 10 {
		t.Fatalf("unexpected trace config: %+v", trace)
	}
	if len(cfg.Windows) != 2 {
		t.Fatalf("expected windows to replace defaults, got %d", len(cfg.Windows))
	}
	if ft, _ := cfg.Windows[0].FrameType(); ft != native.FrameUntitled {
		t.Fatalf("expected untitled frame, got %s", ft)
	}
	if wt, _ := cfg.Windows[1].WindowType(); wt != native.TypePopup {
		t.Fatalf("expected popup type, got %s", wt)
	}
}

func TestLoadFromPath_StrictUnknownKeyErrors(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "not_a_key: 1\n")
	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("expected error to include file path, got %v", err)
	}
}

func TestLoadFromPath_IncludeDirectoryOrderAndMainOverrides(t *testing.T) {
	dir := t.TempDir()
	configD := filepath.Join(dir, "config.d")
	if err := os.MkdirAll(configD, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeConfig(t, configD, "10-base.yaml", "log_level: error\nscroll:\n  multiplier_x: 5\n")
	writeConfig(t, configD, "20-override.yaml", "log_level: warning\n")
	path := writeConfig(t, dir, "config.yaml", "include:\n  - config.d\nlog_level: debug\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.LogLevel != "debug" {
		t.Fatalf("expected main file to win, got %q", res.Config.LogLevel)
	}
	if res.Config.Scroll.MultiplierX != 5 {
		t.Fatalf("expected included multiplier_x, got %v", res.Config.Scroll.MultiplierX)
	}
	if len(res.Files) != 3 || !strings.HasSuffix(res.Files[2], "config.yaml") {
		t.Fatalf("unexpected load order %v", res.Files)
	}
}

func TestLoadFromPath_IncludeMissingPathHasContext(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "include:\n  - missing.yaml\n")
	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "include") || !strings.Contains(err.Error(), "missing.yaml") {
		t.Fatalf("expected include error, got %v", err)
	}
	if !strings.Contains(err.Error(), path+":") {
		t.Fatalf("expected error to include file:line:col prefix, got %v", err)
	}
}

func TestLoadFromPath_IncludeCycleDetection(t *testing.T) {
	dir := t.TempDir()
	a := writeConfig(t, dir, "a.yaml", "include: b.yaml\n")
	writeConfig(t, dir, "b.yaml", "include: a.yaml\n")

	_, err := LoadFromPath(a)
	if err == nil || !strings.Contains(err.Error(), "include cycle") {
		t.Fatalf("expected include cycle error, got %v", err)
	}
}

func TestLoadFromPath_ValidationErrorHasSource(t *testing.T) {
	data := strings.Join([]string{
		"windows:",
		"  - title: a",
		"    width: 10",
		"    height: 10",
		"  - title: b",
		"    width: 10",
		"    height: 10",
		"    frame: rounded",
		"",
	}, "\n")
	path := writeConfig(t, t.TempDir(), "config.yaml", data)

	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Path != "windows[1].frame" {
		t.Fatalf("unexpected path %q", verr.Path)
	}
	if verr.Source.File != path || verr.Source.Line != 8 {
		t.Fatalf("expected source %s:8, got %+v", path, verr.Source)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"scroll", func(c *Config) { c.Scroll.MultiplierX = 0 }, "scroll.multiplier_x"},
		{"trace level", func(c *Config) { c.Trace.Level = "warn" }, "trace.level"},
		{"trace files", func(c *Config) { c.Trace.MaxFiles = -1 }, "trace.max_files"},
		{"missing title", func(c *Config) { c.Windows[0].Title = "" }, "windows[0].title"},
		{"duplicate title", func(c *Config) { c.Windows[1].Title = c.Windows[0].Title }, "windows[1].title"},
		{"size", func(c *Config) { c.Windows[0].Width = 0 }, "windows[0]"},
		{"type", func(c *Config) { c.Windows[1].Type = "dock" }, "windows[1].type"},
		{"forward owner", func(c *Config) { c.Windows[0].Owner = c.Windows[1].Title }, "windows[0].owner"},
		{"children", func(c *Config) { c.Windows[0].Children = -1 }, "windows[0].children"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Path != tt.path {
				t.Fatalf("path = %q, want %q", verr.Path, tt.path)
			}
		})
	}
}

func TestExplain(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "log_level: debug\n")
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	val, src, err := Explain(res, "log_level")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != "debug" || src.Kind != SourceFile || src.Line != 1 {
		t.Fatalf("got %v from %+v", val, src)
	}

	val, src, err = Explain(res, "windows[1].owner")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != "gwk" || src.Kind != SourceDefault {
		t.Fatalf("got %v from %+v", val, src)
	}

	if _, _, err := Explain(res, "windows[9].title"); err == nil {
		t.Fatalf("expected out-of-range window to fail")
	}
	if _, _, err := Explain(res, "hotkey"); err == nil {
		t.Fatalf("expected unknown path to fail")
	}
}

func TestSaveToRoundTrips(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "warning"
	enabled := false
	cfg.IPC.Enabled = &enabled

	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.LogLevel != "warning" || res.Config.IPC.GetEnabled() {
		t.Fatalf("saved config not reloaded: %+v", res.Config)
	}
}
