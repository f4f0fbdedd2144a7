package config

import (
	"fmt"
)

// ValidationError is a configuration error tied to a YAML path and, when
// the path came from a file, to its location there.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// BuildEffectiveConfig applies raw on top of the defaults.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	if raw.Display != nil {
		cfg.Display = *raw.Display
	}
	if raw.DisableGrab != nil {
		cfg.DisableGrab = *raw.DisableGrab
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}
	if raw.DebugHotkey != nil {
		cfg.DebugHotkey = *raw.DebugHotkey
	}
	if raw.Scroll != nil {
		if raw.Scroll.MultiplierX != nil {
			cfg.Scroll.MultiplierX = *raw.Scroll.MultiplierX
		}
		if raw.Scroll.MultiplierY != nil {
			cfg.Scroll.MultiplierY = *raw.Scroll.MultiplierY
		}
	}
	if raw.IPC != nil && raw.IPC.Enabled != nil {
		v := *raw.IPC.Enabled
		cfg.IPC.Enabled = &v
	}
	if raw.Trace != nil {
		t := raw.Trace
		if t.Enabled != nil {
			cfg.Trace.Enabled = *t.Enabled
		}
		if t.Level != nil {
			cfg.Trace.Level = *t.Level
		}
		if t.File != nil {
			cfg.Trace.File = *t.File
		}
		cfg.Trace.MaxSizeMB = derefInt(t.MaxSizeMB, cfg.Trace.MaxSizeMB)
		cfg.Trace.MaxFiles = derefInt(t.MaxFiles, cfg.Trace.MaxFiles)
	}
	if raw.Windows != nil {
		cfg.Windows = append([]WindowConfig(nil), raw.Windows...)
	}
	return cfg
}

func derefInt(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
