// Package nativetest provides in-memory native windows, a pointer device and
// a keymap for exercising the window-context core without a display.
package nativetest

import (
	"fmt"
	"sync"

	"github.com/1broseidon/gwk/internal/native"
)

// Toolkit hands out Windows with increasing IDs.
type Toolkit struct {
	mu      sync.Mutex
	next    native.WindowID
	Windows map[native.WindowID]*Window
	// FailCreate makes CreateWindow return an error.
	FailCreate bool
}

func NewToolkit() *Toolkit {
	return &Toolkit{next: 0x400000, Windows: make(map[native.WindowID]*Window)}
}

func (t *Toolkit) CreateWindow(spec native.WindowSpec) (native.Window, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.FailCreate {
		return nil, fmt.Errorf("create window: refused")
	}
	t.next++
	w := &Window{
		id:        t.next,
		Spec:      spec,
		geometry:  spec.Bounds,
		Transient: spec.Owner,
		Title:     spec.Title,
	}
	t.Windows[w.id] = w
	return w, nil
}

// Window records every call made on it.
type Window struct {
	id       native.WindowID
	Spec     native.WindowSpec
	geometry native.Geometry

	Visible    bool
	Transient  native.WindowID
	Cursor     native.Cursor
	Title      string
	Maximized  bool
	Minimized  bool
	FullScreen bool
	Modal      bool
	Level      native.Level
	Activated  int
	Extents    native.FrameExtents
	Gone       bool
	Destroys   int
	// TransientHistory lists every value passed to SetTransientFor.
	TransientHistory []native.WindowID
}

// NewWindow returns a standalone window with the given ID and size.
func NewWindow(id native.WindowID, width, height int) *Window {
	return &Window{id: id, geometry: native.Geometry{Width: width, Height: height}}
}

func (w *Window) ID() native.WindowID { return w.id }

func (w *Window) Show() error {
	w.Visible = true
	return nil
}

func (w *Window) Hide() error {
	w.Visible = false
	return nil
}

func (w *Window) IsVisible() bool { return w.Visible }

func (w *Window) Geometry() (native.Geometry, error) { return w.geometry, nil }

func (w *Window) SetTransientFor(owner native.WindowID) error {
	w.Transient = owner
	w.TransientHistory = append(w.TransientHistory, owner)
	return nil
}

func (w *Window) SetCursor(cursor native.Cursor) error {
	w.Cursor = cursor
	return nil
}

func (w *Window) SetTitle(title string) error {
	w.Title = title
	return nil
}

func (w *Window) SetBounds(g native.Geometry) error {
	w.geometry = g
	return nil
}

func (w *Window) SetMaximized(maximized bool) error {
	w.Maximized = maximized
	return nil
}

func (w *Window) SetMinimized(minimized bool) error {
	w.Minimized = minimized
	return nil
}

func (w *Window) SetFullScreen(fullScreen bool) error {
	w.FullScreen = fullScreen
	return nil
}

func (w *Window) SetModal(modal bool) error {
	w.Modal = modal
	return nil
}

func (w *Window) SetLevel(level native.Level) error {
	w.Level = level
	return nil
}

func (w *Window) Activate() error {
	w.Activated++
	return nil
}

func (w *Window) FrameExtents() (native.FrameExtents, error) { return w.Extents, nil }

func (w *Window) Destroyed() bool { return w.Gone }

func (w *Window) Destroy() error {
	w.Destroys++
	w.Gone = true
	return nil
}

// Pointer simulates the pointer device.
type Pointer struct {
	// Busy makes Grab fail as if another client held the device.
	Busy bool
	// External marks the device as grabbed without this process owning it.
	External bool

	grabbed     bool
	GrabWindow  native.WindowID
	GrabCursor  native.Cursor
	OwnerEvents bool
	Grabs       int
	Ungrabs     int
	Under       native.WindowID
	UnderExists bool
}

func (p *Pointer) Grab(w native.WindowID, cursor native.Cursor, ownerEvents bool) bool {
	if p.Busy {
		return false
	}
	p.grabbed = true
	p.GrabWindow = w
	p.GrabCursor = cursor
	p.OwnerEvents = ownerEvents
	p.Grabs++
	return true
}

func (p *Pointer) Ungrab() {
	p.grabbed = false
	p.GrabWindow = 0
	p.Ungrabs++
}

func (p *Pointer) Grabbed() bool { return p.grabbed || p.External }

// Active reports whether this process holds the device grab.
func (p *Pointer) Active() bool { return p.grabbed }

func (p *Pointer) WindowAtPointer() (native.WindowID, bool) {
	return p.Under, p.UnderExists
}

// Keymap is a fixed keycode table. Columns beyond the stored ones resolve to
// NoSymbol.
type Keymap map[native.Keycode][]native.Keysym

func (k Keymap) Keysym(code native.Keycode, column int) native.Keysym {
	syms := k[code]
	if column < 0 || column >= len(syms) {
		return native.NoSymbol
	}
	return syms[column]
}

// USKeymap returns a small US layout: keycode 38 is a/A, 24 is q/Q, 36 is
// Return, 50 is Shift_L, 37 is Control_L, 79 is KP_Home/KP_7, 9 is Escape.
func USKeymap() Keymap {
	return Keymap{
		9:  {0xff1b},
		24: {0x71, 0x51},
		36: {0xff0d},
		37: {0xffe3},
		38: {0x61, 0x41},
		50: {0xffe1},
		79: {0xff95, 0xffb7},
	}
}
