package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"

	"github.com/1broseidon/gwk/internal/native"
)

const pointerGrabMask = xproto.EventMaskButtonPress |
	xproto.EventMaskButtonRelease |
	xproto.EventMaskPointerMotion |
	xproto.EventMaskEnterWindow |
	xproto.EventMaskLeaveWindow

// Pointer is the core pointer device.
type Pointer struct {
	conn    *Connection
	grabbed bool
}

var _ native.Pointer = (*Pointer)(nil)

// NewPointer returns the pointer device of conn.
func NewPointer(conn *Connection) *Pointer {
	return &Pointer{conn: conn}
}

// Grab grabs the pointer for w. Grabbing again replaces the cursor and
// event mode of the grab this client already holds.
func (p *Pointer) Grab(w native.WindowID, cursor native.Cursor, ownerEvents bool) bool {
	reply, err := xproto.GrabPointer(
		p.conn.XUtil.Conn(),
		ownerEvents,
		xproto.Window(w),
		pointerGrabMask,
		xproto.GrabModeAsync,
		xproto.GrabModeAsync,
		xproto.WindowNone,
		xproto.Cursor(cursor),
		xproto.TimeCurrentTime,
	).Reply()
	if err != nil || reply.Status != xproto.GrabStatusSuccess {
		return false
	}
	p.grabbed = true
	return true
}

func (p *Pointer) Ungrab() {
	xproto.UngrabPointer(p.conn.XUtil.Conn(), xproto.TimeCurrentTime)
	p.grabbed = false
}

// Grabbed reports whether this client holds the pointer grab.
func (p *Pointer) Grabbed() bool { return p.grabbed }

// WindowAtPointer descends from the root to the deepest mapped window under
// the pointer.
func (p *Pointer) WindowAtPointer() (native.WindowID, bool) {
	conn := p.conn.XUtil.Conn()
	win := p.conn.Root
	for depth := 0; depth < 32; depth++ {
		reply, err := xproto.QueryPointer(conn, win).Reply()
		if err != nil || !reply.SameScreen {
			return 0, false
		}
		if reply.Child == xproto.WindowNone {
			break
		}
		win = reply.Child
	}
	if win == p.conn.Root {
		return 0, false
	}
	return native.WindowID(win), true
}

// Keymap resolves keycodes through the server keyboard mapping.
type Keymap struct {
	xu *xgbutil.XUtil
}

var _ native.Keymap = Keymap{}

// NewKeymap returns the keymap of conn. keybind.Initialize must have run,
// which NewConnection does.
func NewKeymap(conn *Connection) Keymap {
	return Keymap{xu: conn.XUtil}
}

func (k Keymap) Keysym(code native.Keycode, column int) native.Keysym {
	km := keybind.KeyMapGet(k.xu)
	if km == nil || column < 0 || column >= int(km.KeysymsPerKeycode) {
		return native.NoSymbol
	}
	lo, hi := k.xu.Setup().MinKeycode, k.xu.Setup().MaxKeycode
	if xproto.Keycode(code) < lo || xproto.Keycode(code) > hi {
		return native.NoSymbol
	}
	return native.Keysym(keybind.KeysymGet(k.xu, xproto.Keycode(code), byte(column)))
}
