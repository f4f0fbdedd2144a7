package x11

import (
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/1broseidon/gwk/internal/native"
)

// Translator converts xgb events into native events. It remembers the last
// _NET_WM_STATE seen per window so state changes can be reported as deltas.
type Translator struct {
	root   xproto.Window
	keymap native.Keymap
	// atomName resolves atoms for property and client-message events.
	atomName func(xproto.Atom) string
	// wmState reads a window's current _NET_WM_STATE atoms.
	wmState func(xproto.Window) []string

	states map[xproto.Window]native.WindowState
}

// NewTranslator creates a Translator reading atoms and window state from
// conn.
func NewTranslator(conn *Connection, keymap native.Keymap) *Translator {
	return &Translator{
		root:     conn.Root,
		keymap:   keymap,
		atomName: conn.atomName,
		wmState: func(w xproto.Window) []string {
			states, err := ewmh.WmStateGet(conn.XUtil, w)
			if err != nil {
				return nil
			}
			return states
		},
		states: make(map[xproto.Window]native.WindowState),
	}
}

// Translate converts ev. It reports false for events the shim ignores.
func (t *Translator) Translate(ev interface{}) (native.Event, bool) {
	switch e := ev.(type) {
	case xproto.ButtonPressEvent:
		if dir, ok := scrollDirection(byte(e.Detail)); ok {
			out := t.pointer(native.EventScroll, e.Event, e.EventX, e.EventY, e.RootX, e.RootY, e.State)
			out.Scroll = dir
			return out, true
		}
		out := t.pointer(native.EventButtonPress, e.Event, e.EventX, e.EventY, e.RootX, e.RootY, e.State)
		out.Button = byte(e.Detail)
		return out, true
	case xproto.ButtonReleaseEvent:
		if _, ok := scrollDirection(byte(e.Detail)); ok {
			return native.Event{}, false
		}
		out := t.pointer(native.EventButtonRelease, e.Event, e.EventX, e.EventY, e.RootX, e.RootY, e.State)
		out.Button = byte(e.Detail)
		return out, true
	case xproto.MotionNotifyEvent:
		return t.pointer(native.EventMotion, e.Event, e.EventX, e.EventY, e.RootX, e.RootY, e.State), true
	case xproto.EnterNotifyEvent:
		out := t.pointer(native.EventEnter, e.Event, e.EventX, e.EventY, e.RootX, e.RootY, e.State)
		out.CrossingMode = crossingMode(e.Mode)
		return out, true
	case xproto.LeaveNotifyEvent:
		out := t.pointer(native.EventLeave, e.Event, e.EventX, e.EventY, e.RootX, e.RootY, e.State)
		out.CrossingMode = crossingMode(e.Mode)
		return out, true
	case xproto.KeyPressEvent:
		return t.key(native.EventKeyPress, e.Event, e.Detail, e.State), true
	case xproto.KeyReleaseEvent:
		return t.key(native.EventKeyRelease, e.Event, e.Detail, e.State), true
	case xproto.FocusInEvent:
		if e.Detail == xproto.NotifyDetailPointer {
			return native.Event{}, false
		}
		return native.Event{Type: native.EventFocusIn, Window: native.WindowID(e.Event)}, true
	case xproto.FocusOutEvent:
		if e.Detail == xproto.NotifyDetailPointer {
			return native.Event{}, false
		}
		return native.Event{Type: native.EventFocusOut, Window: native.WindowID(e.Event)}, true
	case xproto.ConfigureNotifyEvent:
		return native.Event{
			Type:   native.EventConfigure,
			Window: native.WindowID(e.Window),
			Geometry: native.Geometry{
				X:      int(e.X),
				Y:      int(e.Y),
				Width:  int(e.Width),
				Height: int(e.Height),
			},
		}, true
	case xproto.ExposeEvent:
		return native.Event{
			Type:   native.EventExpose,
			Window: native.WindowID(e.Window),
			Geometry: native.Geometry{
				X:      int(e.X),
				Y:      int(e.Y),
				Width:  int(e.Width),
				Height: int(e.Height),
			},
		}, true
	case xproto.MapNotifyEvent:
		return native.Event{Type: native.EventMap, Window: native.WindowID(e.Window)}, true
	case xproto.UnmapNotifyEvent:
		return native.Event{Type: native.EventUnmap, Window: native.WindowID(e.Window)}, true
	case xproto.DestroyNotifyEvent:
		delete(t.states, e.Window)
		return native.Event{Type: native.EventDestroy, Window: native.WindowID(e.Window)}, true
	case xproto.PropertyNotifyEvent:
		return t.property(e)
	case xproto.ClientMessageEvent:
		return t.clientMessage(e)
	case randr.ScreenChangeNotifyEvent:
		return native.Event{Type: native.EventScreenChange, Window: native.WindowID(e.Root), Root: true}, true
	}
	return native.Event{}, false
}

func (t *Translator) pointer(typ native.EventType, win xproto.Window, x, y, rootX, rootY int16, state uint16) native.Event {
	return native.Event{
		Type:   typ,
		Window: native.WindowID(win),
		Root:   win == t.root,
		X:      int(x),
		Y:      int(y),
		RootX:  int(rootX),
		RootY:  int(rootY),
		State:  native.State(state),
	}
}

func (t *Translator) key(typ native.EventType, win xproto.Window, code xproto.Keycode, state uint16) native.Event {
	s := native.State(state)
	return native.Event{
		Type:    typ,
		Window:  native.WindowID(win),
		Root:    win == t.root,
		State:   s,
		Keycode: native.Keycode(code),
		Keysym:  resolveKeysym(t.keymap, native.Keycode(code), s),
	}
}

func (t *Translator) property(e xproto.PropertyNotifyEvent) (native.Event, bool) {
	name := t.atomName(e.Atom)
	if name == "_NET_WM_STATE" && e.Window != t.root {
		next := wmStateFlags(t.wmState(e.Window))
		prev := t.states[e.Window]
		t.states[e.Window] = next
		if changed := prev ^ next; changed != 0 {
			return native.Event{
				Type:         native.EventWindowState,
				Window:       native.WindowID(e.Window),
				StateChanged: changed,
				StateNew:     next,
			}, true
		}
		return native.Event{}, false
	}
	return native.Event{
		Type:   native.EventProperty,
		Window: native.WindowID(e.Window),
		Root:   e.Window == t.root,
		Atom:   name,
	}, true
}

func (t *Translator) clientMessage(e xproto.ClientMessageEvent) (native.Event, bool) {
	if e.Format != 32 || t.atomName(e.Type) != "WM_PROTOCOLS" || len(e.Data.Data32) == 0 {
		return native.Event{}, false
	}
	if t.atomName(xproto.Atom(e.Data.Data32[0])) != "WM_DELETE_WINDOW" {
		return native.Event{}, false
	}
	return native.Event{Type: native.EventDelete, Window: native.WindowID(e.Window)}, true
}

// scrollDirection maps the wheel buttons 4-7.
func scrollDirection(button byte) (native.ScrollDirection, bool) {
	switch button {
	case 4:
		return native.ScrollUp, true
	case 5:
		return native.ScrollDown, true
	case 6:
		return native.ScrollLeft, true
	case 7:
		return native.ScrollRight, true
	}
	return 0, false
}

func crossingMode(mode byte) native.CrossingMode {
	switch mode {
	case xproto.NotifyModeGrab:
		return native.CrossingGrab
	case xproto.NotifyModeUngrab:
		return native.CrossingUngrab
	default:
		return native.CrossingNormal
	}
}

// wmStateFlags folds _NET_WM_STATE atoms into WindowState flags. A window
// counts as maximized only when maximized in both directions.
func wmStateFlags(atoms []string) native.WindowState {
	var s native.WindowState
	var vert, horz bool
	for _, a := range atoms {
		switch a {
		case "_NET_WM_STATE_HIDDEN":
			s |= native.WindowIconified
		case "_NET_WM_STATE_MAXIMIZED_VERT":
			vert = true
		case "_NET_WM_STATE_MAXIMIZED_HORZ":
			horz = true
		case "_NET_WM_STATE_FULLSCREEN":
			s |= native.WindowFullScreen
		case "_NET_WM_STATE_ABOVE":
			s |= native.WindowAbove
		}
	}
	if vert && horz {
		s |= native.WindowMaximized
	}
	return s
}

// resolveKeysym picks the keysym a key produces under state: the active
// group's level chosen by Shift, Lock (letters only) and NumLock (keypad).
func resolveKeysym(km native.Keymap, code native.Keycode, state native.State) native.Keysym {
	if km == nil {
		return native.NoSymbol
	}
	base := state.Group() * 2
	lower := km.Keysym(code, base)
	if lower == native.NoSymbol && base != 0 {
		base = 0
		lower = km.Keysym(code, 0)
	}
	upper := km.Keysym(code, base+1)

	shifted := state&native.StateShift != 0
	if upper != native.NoSymbol && isKeypadSym(upper) && state&native.StateMod2 != 0 {
		shifted = !shifted
	} else if state&native.StateLock != 0 && isLowerLetter(lower) {
		shifted = !shifted
	}
	if !shifted {
		return lower
	}
	if upper != native.NoSymbol {
		return upper
	}
	if isLowerLetter(lower) {
		return lower - 0x20
	}
	return lower
}

func isKeypadSym(ks native.Keysym) bool {
	return ks >= 0xff80 && ks <= 0xffbd
}

func isLowerLetter(ks native.Keysym) bool {
	return ks >= 'a' && ks <= 'z'
}
