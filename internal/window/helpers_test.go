package window

import (
	"io"
	"log/slog"
	"testing"

	"github.com/1broseidon/gwk/internal/events"
	"github.com/1broseidon/gwk/internal/native"
	"github.com/1broseidon/gwk/internal/native/nativetest"
)

type windowRecorder struct {
	enabled   bool
	destroys  int
	closes    int
	ungrabs   int
	disabled  int
	states    []events.WindowEvent
	focus     []events.WindowEvent
	moves     [][2]int
	resizes   [][2]int
	failClose error
}

func (w *windowRecorder) OnDestroy() error {
	w.destroys++
	return nil
}

func (w *windowRecorder) OnClose() error {
	w.closes++
	return w.failClose
}

func (w *windowRecorder) OnStateChange(s events.WindowEvent) error {
	w.states = append(w.states, s)
	return nil
}

func (w *windowRecorder) OnFocusChange(k events.WindowEvent) error {
	w.focus = append(w.focus, k)
	return nil
}

func (w *windowRecorder) OnFocusDisabled() error {
	w.disabled++
	return nil
}

func (w *windowRecorder) OnFocusUngrab() error {
	w.ungrabs++
	return nil
}

func (w *windowRecorder) OnMove(x, y int) error {
	w.moves = append(w.moves, [2]int{x, y})
	return nil
}

func (w *windowRecorder) OnResize(width, height int) error {
	w.resizes = append(w.resizes, [2]int{width, height})
	return nil
}

func (w *windowRecorder) IsEnabled() bool { return w.enabled }

type viewRecorder struct {
	mouse    []events.Mouse
	menus    int
	scrolls  []events.Scroll
	keys     []events.Key
	repaints []events.Rect
	resizes  [][2]int

	failMouse error
	onMouse   func()
}

func (v *viewRecorder) OnRepaint(x, y, width, height int) error {
	v.repaints = append(v.repaints, events.Rect{X: x, Y: y, Width: width, Height: height})
	return nil
}

func (v *viewRecorder) OnMouse(ev events.Mouse) error {
	v.mouse = append(v.mouse, ev)
	if v.onMouse != nil {
		v.onMouse()
	}
	return v.failMouse
}

func (v *viewRecorder) OnMenuRequest(x, y, rootX, rootY int, keyboardTrigger bool) error {
	v.menus++
	return nil
}

func (v *viewRecorder) OnScroll(ev events.Scroll) error {
	v.scrolls = append(v.scrolls, ev)
	return nil
}

func (v *viewRecorder) OnKey(ev events.Key) error {
	v.keys = append(v.keys, ev)
	return nil
}

func (v *viewRecorder) OnResize(width, height int) error {
	v.resizes = append(v.resizes, [2]int{width, height})
	return nil
}

func (v *viewRecorder) kinds() []events.MouseKind {
	out := make([]events.MouseKind, 0, len(v.mouse))
	for _, m := range v.mouse {
		out = append(out, m.Kind)
	}
	return out
}

type fixture struct {
	tk  *nativetest.Toolkit
	ptr *nativetest.Pointer
	reg *Registry
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tk := nativetest.NewToolkit()
	ptr := &nativetest.Pointer{}
	reg := NewRegistry(Options{
		Toolkit: tk,
		Pointer: ptr,
		Keymap:  nativetest.USKeymap(),
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return &fixture{tk: tk, ptr: ptr, reg: reg}
}

// top creates an enabled top-level window with a view attached.
func (f *fixture) top(t *testing.T, owner Handle) (*Context, *windowRecorder, *viewRecorder) {
	t.Helper()
	wp := &windowRecorder{enabled: true}
	h, err := f.reg.CreateWindow(wp, owner, 0, native.FrameTitled, native.TypeNormal)
	if err != nil {
		t.Fatalf("create window: %v", err)
	}
	c, ok := f.reg.Get(h)
	if !ok {
		t.Fatalf("window %d not registered", h)
	}
	vp := &viewRecorder{}
	if err := c.SetView(vp); err != nil {
		t.Fatalf("set view: %v", err)
	}
	vp.resizes = nil
	return c, wp, vp
}

func (f *fixture) native(c *Context) *nativetest.Window {
	return f.tk.Windows[c.Native().ID()]
}

// pointerOver places the pointer over c.
func (f *fixture) pointerOver(c *Context) {
	f.ptr.Under = c.Native().ID()
	f.ptr.UnderExists = true
}

func press(button uint8, state native.State) native.Event {
	return native.Event{Type: native.EventButtonPress, Button: button, State: state, X: 10, Y: 20, RootX: 110, RootY: 120}
}

func release(button uint8, state native.State) native.Event {
	return native.Event{Type: native.EventButtonRelease, Button: button, State: state, X: 10, Y: 20, RootX: 110, RootY: 120}
}
