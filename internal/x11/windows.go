package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/gwk/internal/native"
)

const (
	stateRemove = 0
	stateAdd    = 1

	// ICCCM IconicState for WM_CHANGE_STATE.
	iconicState = 3
)

// Window is a native window created by this process.
type Window struct {
	conn     *Connection
	win      *xwindow.Window
	topLevel bool
	visible  bool
	gone     bool
	// pending holds _NET_WM_STATE atoms set before the first map; after
	// mapping the window manager owns the property.
	pending map[string]bool
}

var _ native.Window = (*Window)(nil)

func (w *Window) ID() native.WindowID { return native.WindowID(w.win.Id) }

func (w *Window) Show() error {
	if w.topLevel && len(w.pending) > 0 {
		states := make([]string, 0, len(w.pending))
		for s := range w.pending {
			states = append(states, s)
		}
		if err := ewmh.WmStateSet(w.conn.XUtil, w.win.Id, states); err != nil {
			return fmt.Errorf("set initial state: %w", err)
		}
		w.pending = nil
	}
	w.win.Map()
	w.visible = true
	return nil
}

func (w *Window) Hide() error {
	w.win.Unmap()
	w.visible = false
	return nil
}

func (w *Window) IsVisible() bool { return w.visible && !w.gone }

// Geometry returns the client area with its origin in root coordinates.
func (w *Window) Geometry() (native.Geometry, error) {
	conn := w.conn.XUtil.Conn()
	geom, err := xproto.GetGeometry(conn, xproto.Drawable(w.win.Id)).Reply()
	if err != nil {
		return native.Geometry{}, fmt.Errorf("get geometry: %w", err)
	}
	translate, err := xproto.TranslateCoordinates(conn, w.win.Id, w.conn.Root, 0, 0).Reply()
	if err != nil {
		return native.Geometry{}, fmt.Errorf("translate coordinates: %w", err)
	}
	return native.Geometry{
		X:      int(translate.DstX),
		Y:      int(translate.DstY),
		Width:  int(geom.Width),
		Height: int(geom.Height),
	}, nil
}

func (w *Window) SetTransientFor(owner native.WindowID) error {
	if owner != 0 {
		return icccm.WmTransientForSet(w.conn.XUtil, w.win.Id, xproto.Window(owner))
	}
	atom, err := xprop.Atm(w.conn.XUtil, "WM_TRANSIENT_FOR")
	if err != nil {
		return err
	}
	return xproto.DeletePropertyChecked(w.conn.XUtil.Conn(), w.win.Id, atom).Check()
}

func (w *Window) SetCursor(cursor native.Cursor) error {
	return xproto.ChangeWindowAttributesChecked(w.conn.XUtil.Conn(), w.win.Id,
		xproto.CwCursor, []uint32{uint32(cursor)}).Check()
}

func (w *Window) SetTitle(title string) error {
	if err := ewmh.WmNameSet(w.conn.XUtil, w.win.Id, title); err != nil {
		return err
	}
	return icccm.WmNameSet(w.conn.XUtil, w.win.Id, title)
}

// SetBounds moves and resizes the window
func (w *Window) SetBounds(g native.Geometry) error {
	if g.Width < 1 || g.Height < 1 {
		return fmt.Errorf("invalid size %dx%d", g.Width, g.Height)
	}
	if !w.topLevel || !w.visible {
		w.win.MoveResize(g.X, g.Y, g.Width, g.Height)
		return nil
	}

	// Use EWMH MoveResize for better WM compatibility
	err := ewmh.MoveresizeWindow(w.conn.XUtil, w.win.Id, g.X, g.Y, g.Width, g.Height)
	if err != nil {
		// Fallback to direct window manipulation
		w.win.MoveResize(g.X, g.Y, g.Width, g.Height)
	}
	return nil
}

func (w *Window) SetMaximized(maximized bool) error {
	return w.setState(maximized, "_NET_WM_STATE_MAXIMIZED_VERT", "_NET_WM_STATE_MAXIMIZED_HORZ")
}

// SetMinimized iconifies through WM_CHANGE_STATE; restoring maps the window
// again, which the window manager treats as deiconify.
func (w *Window) SetMinimized(minimized bool) error {
	if !minimized {
		return w.Show()
	}
	if !w.topLevel {
		return w.Hide()
	}
	return w.conn.sendRootMessage(w.win.Id, "WM_CHANGE_STATE", iconicState)
}

func (w *Window) SetFullScreen(fullScreen bool) error {
	return w.setState(fullScreen, "_NET_WM_STATE_FULLSCREEN")
}

func (w *Window) SetModal(modal bool) error {
	return w.setState(modal, "_NET_WM_STATE_MODAL")
}

func (w *Window) SetLevel(level native.Level) error {
	return w.setState(level != native.LevelNormal, "_NET_WM_STATE_ABOVE")
}

// Activate asks the window manager to focus and raise the window using
// _NET_ACTIVE_WINDOW.
func (w *Window) Activate() error {
	const sourceIndication = 2 // pager/direct action
	return w.conn.sendRootMessage(w.win.Id, "_NET_ACTIVE_WINDOW", sourceIndication)
}

// FrameExtents returns the window decoration sizes (if available)
func (w *Window) FrameExtents() (native.FrameExtents, error) {
	if !w.topLevel {
		return native.FrameExtents{}, nil
	}
	extents, err := ewmh.FrameExtentsGet(w.conn.XUtil, w.win.Id)
	if err != nil {
		// No frame extents available, return zeros
		return native.FrameExtents{}, nil
	}
	return native.FrameExtents{
		Left:   extents.Left,
		Right:  extents.Right,
		Top:    extents.Top,
		Bottom: extents.Bottom,
	}, nil
}

func (w *Window) Destroyed() bool { return w.gone }

func (w *Window) Destroy() error {
	if w.gone {
		return nil
	}
	w.gone = true
	w.visible = false
	w.win.Destroy()
	return nil
}

// markGone records that the server destroyed the window.
func (w *Window) markGone() {
	w.gone = true
	w.visible = false
}

// setState adds or removes _NET_WM_STATE atoms. Before the first map the
// property is written directly; afterwards the window manager is asked.
func (w *Window) setState(on bool, atoms ...string) error {
	if !w.topLevel {
		return nil
	}
	if !w.visible {
		if w.pending == nil {
			w.pending = make(map[string]bool)
		}
		for _, a := range atoms {
			if on {
				w.pending[a] = true
			} else {
				delete(w.pending, a)
			}
		}
		return nil
	}
	action := uint32(stateRemove)
	if on {
		action = stateAdd
	}
	first, err := xprop.Atm(w.conn.XUtil, atoms[0])
	if err != nil {
		return err
	}
	var second xproto.Atom
	if len(atoms) > 1 {
		if second, err = xprop.Atm(w.conn.XUtil, atoms[1]); err != nil {
			return err
		}
	}
	const sourceIndication = 1 // normal application
	return w.conn.sendRootMessage(w.win.Id, "_NET_WM_STATE", action, uint32(first), uint32(second), sourceIndication)
}
