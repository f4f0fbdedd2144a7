package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/gwk/internal/dispatch"
	"github.com/1broseidon/gwk/internal/ipc"
	"github.com/1broseidon/gwk/internal/native"
	"github.com/1broseidon/gwk/internal/window"
)

type fakeSource struct {
	status *ipc.StatusData
	err    error
	calls  int
}

func (f *fakeSource) GetStatus() (*ipc.StatusData, error) {
	f.calls++
	return f.status, f.err
}

func testStatus() *ipc.StatusData {
	return &ipc.StatusData{
		Status: dispatch.Status{
			Windows: []window.Info{
				{Handle: 1, Kind: "top-level", Width: 640, Height: 480, Children: []window.Handle{3}},
				{Handle: 2, Kind: "top-level", Width: 300, Height: 200},
				{Handle: 3, Kind: "child", Owner: 1},
			},
			Grabs:   window.GrabInfo{Grab: 2},
			Screens: []native.Screen{{Name: "eDP-1", Primary: true, Bounds: native.Geometry{Width: 1920, Height: 1080}}},
			Events:  9,
		},
		PID: 4242,
	}
}

func update(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, _ := m.Update(msg)
	got, ok := next.(model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return got
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func readyModel(t *testing.T, src *fakeSource) model {
	t.Helper()
	m := newModel(src, time.Second)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	msg := m.Init()()
	return update(t, m, msg)
}

func TestStatusPopulatesWindows(t *testing.T) {
	src := &fakeSource{status: testStatus()}
	m := readyModel(t, src)

	if src.calls != 1 {
		t.Fatalf("expected one poll, got %d", src.calls)
	}
	if got := len(m.windowsTab.list.Items()); got != 3 {
		t.Fatalf("expected 3 windows listed, got %d", got)
	}
	item := m.windowsTab.list.Items()[1].(windowItem)
	if !item.grab || !strings.Contains(item.Title(), "[grab]") {
		t.Fatalf("expected grab marker on window 2, got %q", item.Title())
	}
	if !strings.Contains(m.View(), "pid 4242") {
		t.Fatalf("status bar missing pid")
	}
}

func TestPollErrorKeepsLastStatus(t *testing.T) {
	src := &fakeSource{status: testStatus()}
	m := readyModel(t, src)

	m = update(t, m, statusMsg{err: errors.New("failed to connect to gwk")})
	if m.status == nil || len(m.windowsTab.list.Items()) != 3 {
		t.Fatalf("expected previous windows to remain")
	}
	if !strings.Contains(m.View(), "not running") {
		t.Fatalf("expected disconnected status bar")
	}
}

func TestTabSwitching(t *testing.T) {
	m := readyModel(t, &fakeSource{status: testStatus()})

	tests := []struct {
		key  tea.KeyMsg
		want Tab
	}{
		{tea.KeyMsg{Type: tea.KeyTab}, TabScreens},
		{tea.KeyMsg{Type: tea.KeyTab}, TabEvents},
		{tea.KeyMsg{Type: tea.KeyTab}, TabWindows},
		{tea.KeyMsg{Type: tea.KeyShiftTab}, TabEvents},
		{runes("2"), TabScreens},
		{runes("1"), TabWindows},
	}
	for _, tt := range tests {
		m = update(t, m, tt.key)
		if m.activeTab != tt.want {
			t.Fatalf("after %q: tab = %v, want %v", tt.key.String(), m.activeTab, tt.want)
		}
	}

	m = update(t, m, runes("2"))
	if !strings.Contains(m.View(), "eDP-1*") {
		t.Fatalf("screens tab should mark the primary screen")
	}
}

func TestJumpToHandle(t *testing.T) {
	m := readyModel(t, &fakeSource{status: testStatus()})

	m = update(t, m, runes("g"))
	if !m.windowsTab.Capturing() {
		t.Fatalf("expected handle prompt to capture input")
	}
	// Digits go to the prompt, not the tab bar.
	m = update(t, m, runes("3"))
	if m.activeTab != TabWindows {
		t.Fatalf("prompt input switched tabs")
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	info, ok := m.windowsTab.selected()
	if !ok || info.Handle != 3 {
		t.Fatalf("expected window 3 selected, got %+v", info)
	}

	m = update(t, m, runes("g"))
	m = update(t, m, runes("99"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.windowsTab.notice != "no window #99" {
		t.Fatalf("unexpected notice %q", m.windowsTab.notice)
	}
}

func TestSelectionSurvivesRefresh(t *testing.T) {
	src := &fakeSource{status: testStatus()}
	m := readyModel(t, src)
	m.windowsTab.selectHandle(3)

	next := testStatus()
	next.Windows = append([]window.Info{{Handle: 7, Kind: "top-level"}}, next.Windows...)
	m = update(t, m, statusMsg{status: next})

	info, ok := m.windowsTab.selected()
	if !ok || info.Handle != 3 {
		t.Fatalf("expected selection to stay on window 3, got %+v", info)
	}
}

func TestRenderWindowDetail(t *testing.T) {
	out := renderWindowDetail(window.Info{Handle: 3, Kind: "child", Owner: 1, Native: 0x400001})
	for _, want := range []string{"0x400001", "#1", "child"} {
		if !strings.Contains(out, want) {
			t.Fatalf("detail missing %q:\n%s", want, out)
		}
	}
}
