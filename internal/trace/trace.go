// Package trace writes a rotating log of the events the shim dispatches and
// of window lifecycle changes, for reproducing input-handling bugs.
package trace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/1broseidon/gwk/internal/native"
	"github.com/1broseidon/gwk/internal/window"
)

// Level defines the logging verbosity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
)

// Action is the kind of a trace entry.
type Action string

const (
	ActionEvent   Action = "EVENT"
	ActionCreate  Action = "CREATE"
	ActionDestroy Action = "DESTROY"
	ActionGrab    Action = "GRAB"
	ActionUngrab  Action = "UNGRAB"
	ActionDrag    Action = "DRAG"
)

func actionLevel(action Action) Level {
	if action == ActionEvent {
		return LevelDebug
	}
	return LevelInfo
}

// Config holds configuration for the trace log.
type Config struct {
	Enabled   bool
	Level     Level
	FilePath  string
	MaxSizeMB int
	MaxFiles  int
}

// Logger appends trace entries to a file, rotating it by size. A nil or
// disabled Logger discards everything.
type Logger struct {
	mu          sync.Mutex
	file        *os.File
	config      Config
	currentSize int64
	now         func() time.Time
}

// New opens the trace file named by cfg.
func New(cfg Config) (*Logger, error) {
	l := &Logger{config: cfg, now: time.Now}
	if !cfg.Enabled {
		return l, nil
	}

	dir := filepath.Dir(cfg.FilePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create trace directory %s: %w", dir, err)
	}
	f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace file %s: %w", cfg.FilePath, err)
	}
	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat trace file: %w", err)
	}
	l.file = f
	l.currentSize = stat.Size()
	return l, nil
}

// Event records a dispatched native event. Its signature matches
// dispatch.Hook.
func (l *Logger) Event(c *window.Context, ev native.Event) {
	details := map[string]interface{}{
		"type":   ev.Type.String(),
		"native": fmt.Sprintf("0x%x", uint32(ev.Window)),
	}
	switch {
	case ev.Type.IsPointer():
		details["x"] = ev.X
		details["y"] = ev.Y
		details["state"] = fmt.Sprintf("0x%x", uint16(ev.State))
		if ev.Button != 0 {
			details["button"] = ev.Button
		}
	case ev.Type.IsKey():
		details["keycode"] = ev.Keycode
		details["keysym"] = fmt.Sprintf("0x%x", uint32(ev.Keysym))
		details["state"] = fmt.Sprintf("0x%x", uint16(ev.State))
	case ev.Type == native.EventProperty:
		details["atom"] = ev.Atom
	}
	l.Log(ActionEvent, c.Handle(), details)
}

// Log records action against window h; h is 0 for entries without a window.
func (l *Logger) Log(action Action, h window.Handle, details map[string]interface{}) {
	if l == nil || !l.config.Enabled {
		return
	}
	if actionLevel(action) < l.config.Level {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return
	}

	maxBytes := int64(l.config.MaxSizeMB) * 1024 * 1024
	if maxBytes > 0 && l.currentSize >= maxBytes {
		if err := l.rotate(); err != nil {
			fmt.Fprintf(os.Stderr, "trace rotation failed: %v\n", err)
		}
		if l.file == nil {
			return
		}
	}

	var sb strings.Builder
	sb.WriteString(l.now().Format("2006-01-02 15:04:05.000"))
	sb.WriteString(" [")
	sb.WriteString(string(action))
	sb.WriteString("]")
	if h != 0 {
		sb.WriteString(fmt.Sprintf(" window=%d", h))
	}

	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch val := details[k].(type) {
		case string:
			sb.WriteString(fmt.Sprintf(" %s=%q", k, val))
		default:
			sb.WriteString(fmt.Sprintf(" %s=%v", k, val))
		}
	}
	sb.WriteString("\n")

	n, err := l.file.WriteString(sb.String())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to write trace entry: %v\n", err)
		return
	}
	l.currentSize += int64(n)
}

// Close closes the trace file.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// rotate shifts events.log to events.log.1, .1 to .2 and so on, keeping
// MaxFiles rotated files.
func (l *Logger) rotate() error {
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}

	base := l.config.FilePath
	for i := l.config.MaxFiles; i >= 1; i-- {
		oldPath := fmt.Sprintf("%s.%d", base, i)
		if i == l.config.MaxFiles {
			os.Remove(oldPath)
			continue
		}
		os.Rename(oldPath, fmt.Sprintf("%s.%d", base, i+1))
	}
	if l.config.MaxFiles > 0 {
		if err := os.Rename(base, base+".1"); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to rotate trace file: %w", err)
		}
	} else if err := os.Remove(base); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to truncate trace file: %w", err)
	}

	f, err := os.OpenFile(base, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open new trace file: %w", err)
	}
	l.file = f
	l.currentSize = 0
	return nil
}

// ParseLevel converts a config string to a Level.
func ParseLevel(s string) Level {
	if strings.ToLower(s) == "debug" {
		return LevelDebug
	}
	return LevelInfo
}
