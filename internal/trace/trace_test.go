package trace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestLogger(t *testing.T, cfg Config) *Logger {
	t.Helper()
	cfg.Enabled = true
	if cfg.FilePath == "" {
		cfg.FilePath = filepath.Join(t.TempDir(), "trace", "events.log")
	}
	l, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	t.Cleanup(func() { l.Close() })
	return l
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestLogFormat(t *testing.T) {
	l := newTestLogger(t, Config{Level: LevelDebug, MaxSizeMB: 1, MaxFiles: 2})
	l.Log(ActionGrab, 3, map[string]interface{}{"kind": "drag", "ok": true})

	got := readFile(t, l.config.FilePath)
	want := "2026-01-02 03:04:05.000 [GRAB] window=3 kind=\"drag\" ok=true\n"
	if got != want {
		t.Fatalf("entry = %q, want %q", got, want)
	}
}

func TestLevelFiltersEvents(t *testing.T) {
	l := newTestLogger(t, Config{Level: LevelInfo, MaxSizeMB: 1, MaxFiles: 2})
	l.Log(ActionEvent, 1, nil)
	l.Log(ActionDestroy, 1, nil)

	got := readFile(t, l.config.FilePath)
	if strings.Contains(got, "EVENT") {
		t.Fatalf("event logged at info level: %q", got)
	}
	if !strings.Contains(got, "[DESTROY] window=1") {
		t.Fatalf("destroy missing: %q", got)
	}
}

func TestDisabledAndNilLoggersDiscard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.log")
	l, err := New(Config{Enabled: false, FilePath: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Log(ActionCreate, 1, nil)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("disabled logger created %s", path)
	}

	var nilLogger *Logger
	nilLogger.Log(ActionCreate, 1, nil)
	if err := nilLogger.Close(); err != nil {
		t.Fatalf("Close on nil: %v", err)
	}
}

func TestRotation(t *testing.T) {
	l := newTestLogger(t, Config{Level: LevelDebug, MaxSizeMB: 1, MaxFiles: 2})
	base := l.config.FilePath

	rotateNow := func(id int) {
		l.currentSize = 1024 * 1024
		l.Log(ActionCreate, 0, map[string]interface{}{"id": id})
	}
	l.Log(ActionCreate, 0, map[string]interface{}{"id": 0})
	rotateNow(1)
	rotateNow(2)
	rotateNow(3)

	if got := readFile(t, base); !strings.Contains(got, "id=3") {
		t.Fatalf("current file = %q", got)
	}
	if got := readFile(t, base+".1"); !strings.Contains(got, "id=2") {
		t.Fatalf(".1 = %q", got)
	}
	if got := readFile(t, base+".2"); !strings.Contains(got, "id=1") {
		t.Fatalf(".2 = %q", got)
	}
	if _, err := os.Stat(base + ".3"); !os.IsNotExist(err) {
		t.Fatalf("expected at most 2 rotated files")
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("DEBUG") != LevelDebug {
		t.Fatalf("debug not parsed")
	}
	if ParseLevel("") != LevelInfo || ParseLevel("info") != LevelInfo {
		t.Fatalf("info not default")
	}
}
