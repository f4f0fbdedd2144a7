package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Supported paths include:
//
//	display
//	disable_grab
//	log_level
//	debug_hotkey
//	scroll.multiplier_x
//	ipc.enabled
//	trace.file
//	windows
//	windows[0].title
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}
	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	unknown := fmt.Errorf("unknown path: %s", path)
	head, rest, _ := strings.Cut(path, ".")

	if strings.HasPrefix(head, "windows") {
		if head == "windows" && rest == "" {
			return cfg.Windows, nil
		}
		idx, ok := windowIndex(head)
		if !ok || idx >= len(cfg.Windows) {
			return nil, unknown
		}
		w := cfg.Windows[idx]
		switch rest {
		case "":
			return w, nil
		case "title":
			return w.Title, nil
		case "width":
			return w.Width, nil
		case "height":
			return w.Height, nil
		case "frame":
			return w.Frame, nil
		case "type":
			return w.Type, nil
		case "owner":
			return w.Owner, nil
		case "children":
			return w.Children, nil
		}
		return nil, unknown
	}

	switch path {
	case "display":
		return cfg.Display, nil
	case "disable_grab":
		return cfg.DisableGrab, nil
	case "log_level":
		return cfg.LogLevel, nil
	case "debug_hotkey":
		return cfg.DebugHotkey, nil
	case "scroll.multiplier_x":
		return cfg.Scroll.MultiplierX, nil
	case "scroll.multiplier_y":
		return cfg.Scroll.MultiplierY, nil
	case "ipc.enabled":
		return cfg.IPC.GetEnabled(), nil
	}

	if head == "trace" {
		t := cfg.GetTraceConfig()
		switch rest {
		case "enabled":
			return t.Enabled, nil
		case "level":
			return t.Level, nil
		case "file":
			return t.File, nil
		case "max_size_mb":
			return t.MaxSizeMB, nil
		case "max_files":
			return t.MaxFiles, nil
		}
	}
	return nil, unknown
}

// windowIndex parses "windows[N]".
func windowIndex(s string) (int, bool) {
	inner, ok := strings.CutPrefix(s, "windows[")
	if !ok {
		return 0, false
	}
	inner, ok = strings.CutSuffix(inner, "]")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(inner)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
