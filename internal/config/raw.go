package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawScroll struct {
	MultiplierX *float64 `yaml:"multiplier_x"`
	MultiplierY *float64 `yaml:"multiplier_y"`
}

type RawIPC struct {
	Enabled *bool `yaml:"enabled"`
}

type RawTrace struct {
	Enabled   *bool   `yaml:"enabled"`
	Level     *string `yaml:"level"`
	File      *string `yaml:"file"`
	MaxSizeMB *int    `yaml:"max_size_mb"`
	MaxFiles  *int    `yaml:"max_files"`
}

// RawConfig is one YAML file as written. Nil fields were not set and leave
// the value from earlier files (or the defaults) in place.
type RawConfig struct {
	Include     IncludeList    `yaml:"include"`
	Display     *string        `yaml:"display"`
	DisableGrab *bool          `yaml:"disable_grab"`
	LogLevel    *string        `yaml:"log_level"`
	DebugHotkey *string        `yaml:"debug_hotkey"`
	Scroll      *RawScroll     `yaml:"scroll"`
	IPC         *RawIPC        `yaml:"ipc"`
	Trace       *RawTrace      `yaml:"trace"`
	Windows     []WindowConfig `yaml:"windows"`
}

// merge overlays overlay onto c. Scalars and nested fields override one by
// one; the windows list is replaced as a whole.
func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.Display != nil {
		out.Display = overlay.Display
	}
	if overlay.DisableGrab != nil {
		out.DisableGrab = overlay.DisableGrab
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}
	if overlay.DebugHotkey != nil {
		out.DebugHotkey = overlay.DebugHotkey
	}
	if overlay.Scroll != nil {
		base := RawScroll{}
		if out.Scroll != nil {
			base = *out.Scroll
		}
		merged := mergeRawScroll(base, *overlay.Scroll)
		out.Scroll = &merged
	}
	if overlay.IPC != nil {
		base := RawIPC{}
		if out.IPC != nil {
			base = *out.IPC
		}
		if overlay.IPC.Enabled != nil {
			base.Enabled = overlay.IPC.Enabled
		}
		out.IPC = &base
	}
	if overlay.Trace != nil {
		base := RawTrace{}
		if out.Trace != nil {
			base = *out.Trace
		}
		merged := mergeRawTrace(base, *overlay.Trace)
		out.Trace = &merged
	}
	if overlay.Windows != nil {
		out.Windows = overlay.Windows
	}
	return out
}

func mergeRawScroll(base RawScroll, overlay RawScroll) RawScroll {
	out := base
	if overlay.MultiplierX != nil {
		out.MultiplierX = overlay.MultiplierX
	}
	if overlay.MultiplierY != nil {
		out.MultiplierY = overlay.MultiplierY
	}
	return out
}

func mergeRawTrace(base RawTrace, overlay RawTrace) RawTrace {
	out := base
	if overlay.Enabled != nil {
		out.Enabled = overlay.Enabled
	}
	if overlay.Level != nil {
		out.Level = overlay.Level
	}
	if overlay.File != nil {
		out.File = overlay.File
	}
	if overlay.MaxSizeMB != nil {
		out.MaxSizeMB = overlay.MaxSizeMB
	}
	if overlay.MaxFiles != nil {
		out.MaxFiles = overlay.MaxFiles
	}
	return out
}
