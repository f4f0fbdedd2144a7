package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/gwk/internal/native"
)

// ScrollConfig scales scroll steps into pixels.
type ScrollConfig struct {
	MultiplierX float64 `yaml:"multiplier_x"`
	MultiplierY float64 `yaml:"multiplier_y"`
}

// IPCConfig controls the inspection socket.
type IPCConfig struct {
	// Enabled defaults to true.
	Enabled *bool `yaml:"enabled,omitempty"`
}

// GetEnabled returns the effective value, defaulting to true
func (i *IPCConfig) GetEnabled() bool {
	if i == nil || i.Enabled == nil {
		return true
	}
	return *i.Enabled
}

// TraceConfig configures the event trace log.
type TraceConfig struct {
	// Enabled turns event tracing on/off
	Enabled bool `yaml:"enabled,omitempty"`
	// Level controls verbosity: debug logs every event, info only lifecycle
	// and grab changes.
	Level string `yaml:"level,omitempty"`
	// File is the log file path (default: ~/.local/share/gwk/events.log)
	File string `yaml:"file,omitempty"`
	// MaxSizeMB is the maximum log file size before rotation (default: 10)
	MaxSizeMB int `yaml:"max_size_mb,omitempty"`
	// MaxFiles is the number of rotated files to keep (default: 3)
	MaxFiles int `yaml:"max_files,omitempty"`
}

// WindowConfig describes a window opened by `gwk run`.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Frame  string `yaml:"frame,omitempty"`
	Type   string `yaml:"type,omitempty"`
	// Owner is the title of an earlier window that owns this one.
	Owner string `yaml:"owner,omitempty"`
	// Children is the number of child windows created inside this one.
	Children int `yaml:"children,omitempty"`
}

// FrameType parses Frame; empty means titled.
func (w WindowConfig) FrameType() (native.FrameType, error) {
	switch w.Frame {
	case "", "titled":
		return native.FrameTitled, nil
	case "untitled":
		return native.FrameUntitled, nil
	case "transparent":
		return native.FrameTransparent, nil
	}
	return 0, fmt.Errorf("frame must be one of: titled, untitled, transparent")
}

// WindowType parses Type; empty means normal.
func (w WindowConfig) WindowType() (native.WindowType, error) {
	switch w.Type {
	case "", "normal":
		return native.TypeNormal, nil
	case "utility":
		return native.TypeUtility, nil
	case "popup":
		return native.TypePopup, nil
	}
	return 0, fmt.Errorf("type must be one of: normal, utility, popup")
}

// Config holds the application configuration.
type Config struct {
	Display     string         `yaml:"display,omitempty"`
	DisableGrab bool           `yaml:"disable_grab"`
	LogLevel    string         `yaml:"log_level"`
	DebugHotkey string         `yaml:"debug_hotkey,omitempty"`
	Scroll      ScrollConfig   `yaml:"scroll"`
	IPC         IPCConfig      `yaml:"ipc"`
	Trace       TraceConfig    `yaml:"trace,omitempty"`
	Windows     []WindowConfig `yaml:"windows,omitempty"`
}

// DefaultConfig returns the configuration used when no file exists: one
// titled window owning a utility window.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:    "info",
		DebugHotkey: "Mod4-Mod1-d",
		Scroll: ScrollConfig{
			MultiplierX: 40,
			MultiplierY: 40,
		},
		Windows: []WindowConfig{
			{Title: "gwk", Width: 640, Height: 480, Children: 1},
			{Title: "gwk tools", Width: 240, Height: 320, Type: "utility", Owner: "gwk"},
		},
	}
}

func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "gwk", "config.yaml"), nil
}

// SlogLevel maps log_level onto slog.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// GetTraceConfig returns the trace configuration with defaults applied.
func (c *Config) GetTraceConfig() TraceConfig {
	if c == nil {
		return TraceConfig{}
	}
	cfg := c.Trace
	if cfg.File == "" {
		home, err := os.UserHomeDir()
		if err != nil || home == "" {
			home = os.Getenv("HOME")
		}
		if home == "" {
			home = "."
		}
		cfg.File = filepath.Join(home, ".local/share/gwk/events.log")
	}
	if cfg.MaxSizeMB == 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.MaxFiles == 0 {
		cfg.MaxFiles = 3
	}
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	return cfg
}

// Save writes the configuration to the standard location.
func (c *Config) Save() error {
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo validates and writes the configuration to path.
//
// Note: this marshals the effective config and will not preserve comments or
// include structure from the source YAML.
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.LogLevel != "debug" && c.LogLevel != "info" && c.LogLevel != "warning" && c.LogLevel != "error" {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	if c.Scroll.MultiplierX <= 0 {
		return &ValidationError{Path: "scroll.multiplier_x", Err: fmt.Errorf("multiplier_x must be > 0")}
	}
	if c.Scroll.MultiplierY <= 0 {
		return &ValidationError{Path: "scroll.multiplier_y", Err: fmt.Errorf("multiplier_y must be > 0")}
	}
	switch c.Trace.Level {
	case "", "debug", "info":
	default:
		return &ValidationError{Path: "trace.level", Err: fmt.Errorf("level must be one of: debug, info")}
	}
	if c.Trace.MaxSizeMB < 0 {
		return &ValidationError{Path: "trace.max_size_mb", Err: fmt.Errorf("max_size_mb must be >= 0")}
	}
	if c.Trace.MaxFiles < 0 {
		return &ValidationError{Path: "trace.max_files", Err: fmt.Errorf("max_files must be >= 0")}
	}

	seen := make(map[string]bool, len(c.Windows))
	for i, w := range c.Windows {
		path := fmt.Sprintf("windows[%d]", i)
		if w.Title == "" {
			return &ValidationError{Path: path + ".title", Err: fmt.Errorf("title is required")}
		}
		if seen[w.Title] {
			return &ValidationError{Path: path + ".title", Err: fmt.Errorf("duplicate window title %q", w.Title)}
		}
		if w.Width <= 0 || w.Height <= 0 {
			return &ValidationError{Path: path, Err: fmt.Errorf("width and height must be > 0")}
		}
		if _, err := w.FrameType(); err != nil {
			return &ValidationError{Path: path + ".frame", Err: err}
		}
		if _, err := w.WindowType(); err != nil {
			return &ValidationError{Path: path + ".type", Err: err}
		}
		if w.Owner != "" && !seen[w.Owner] {
			return &ValidationError{Path: path + ".owner", Err: fmt.Errorf("owner %q must name an earlier window", w.Owner)}
		}
		if w.Children < 0 {
			return &ValidationError{Path: path + ".children", Err: fmt.Errorf("children must be >= 0")}
		}
		seen[w.Title] = true
	}
	return nil
}

// Window returns the window with the given title.
func (c *Config) Window(title string) (WindowConfig, bool) {
	for _, w := range c.Windows {
		if w.Title == title {
			return w, true
		}
	}
	return WindowConfig{}, false
}
