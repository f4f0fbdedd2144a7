package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xcursor"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/gwk/internal/native"
)

const clientEventMask = xproto.EventMaskKeyPress |
	xproto.EventMaskKeyRelease |
	xproto.EventMaskButtonPress |
	xproto.EventMaskButtonRelease |
	xproto.EventMaskEnterWindow |
	xproto.EventMaskLeaveWindow |
	xproto.EventMaskPointerMotion |
	xproto.EventMaskExposure |
	xproto.EventMaskStructureNotify |
	xproto.EventMaskFocusChange |
	xproto.EventMaskPropertyChange

// Motif decoration hints: flags=decorations, decorations=none.
var undecorated = []uint{2, 0, 0, 0, 0}

// Toolkit creates native windows on a connection and remembers them so
// server-side destruction can be reflected.
type Toolkit struct {
	conn    *Connection
	windows map[native.WindowID]*Window
	cursors map[uint16]native.Cursor
}

var _ native.Toolkit = (*Toolkit)(nil)

// NewToolkit creates a Toolkit on conn.
func NewToolkit(conn *Connection) *Toolkit {
	return &Toolkit{
		conn:    conn,
		windows: make(map[native.WindowID]*Window),
		cursors: make(map[uint16]native.Cursor),
	}
}

// CreateWindow creates an unmapped window. Top-level windows get the
// window-manager hints for their frame and type; windows with a Parent are
// created inside it.
func (t *Toolkit) CreateWindow(spec native.WindowSpec) (native.Window, error) {
	xu := t.conn.XUtil
	xw, err := xwindow.Generate(xu)
	if err != nil {
		return nil, fmt.Errorf("allocate window id: %w", err)
	}

	parent := t.conn.Root
	if spec.Parent != 0 {
		parent = xproto.Window(spec.Parent)
	}
	topLevel := spec.Parent == 0
	b := spec.Bounds
	if b.Width < 1 {
		b.Width = 1
	}
	if b.Height < 1 {
		b.Height = 1
	}

	// Value order follows the CW bit order.
	mask := xproto.CwBackPixel
	values := []uint32{xu.Screen().WhitePixel}
	if topLevel && spec.Type == native.TypePopup {
		mask |= xproto.CwOverrideRedirect
		values = append(values, 1)
	}
	mask |= xproto.CwEventMask
	values = append(values, clientEventMask)

	if err := xw.CreateChecked(parent, b.X, b.Y, b.Width, b.Height, mask, values...); err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	w := &Window{conn: t.conn, win: xw, topLevel: topLevel}
	if topLevel {
		if err := t.decorate(w, spec); err != nil {
			xw.Destroy()
			return nil, err
		}
	}
	t.windows[w.ID()] = w
	return w, nil
}

func (t *Toolkit) decorate(w *Window, spec native.WindowSpec) error {
	xu := t.conn.XUtil
	id := w.win.Id
	if err := icccm.WmProtocolsSet(xu, id, []string{"WM_DELETE_WINDOW"}); err != nil {
		return fmt.Errorf("set WM_PROTOCOLS: %w", err)
	}
	if err := ewmh.WmWindowTypeSet(xu, id, []string{windowTypeAtom(spec.Type)}); err != nil {
		return fmt.Errorf("set window type: %w", err)
	}
	if spec.Frame != native.FrameTitled {
		if err := xprop.ChangeProp32(xu, id, "_MOTIF_WM_HINTS", "_MOTIF_WM_HINTS", undecorated...); err != nil {
			return fmt.Errorf("set motif hints: %w", err)
		}
	}
	if spec.Owner != 0 {
		if err := icccm.WmTransientForSet(xu, id, xproto.Window(spec.Owner)); err != nil {
			return fmt.Errorf("set transient-for: %w", err)
		}
	}
	if spec.Title != "" {
		if err := w.SetTitle(spec.Title); err != nil {
			return fmt.Errorf("set title: %w", err)
		}
	}
	return nil
}

func windowTypeAtom(t native.WindowType) string {
	switch t {
	case native.TypeUtility:
		return "_NET_WM_WINDOW_TYPE_UTILITY"
	case native.TypePopup:
		return "_NET_WM_WINDOW_TYPE_POPUP_MENU"
	default:
		return "_NET_WM_WINDOW_TYPE_NORMAL"
	}
}

// Cursor returns the font cursor for shape (an xcursor constant such as
// xcursor.Hand2), creating it on first use.
func (t *Toolkit) Cursor(shape uint16) (native.Cursor, error) {
	if c, ok := t.cursors[shape]; ok {
		return c, nil
	}
	cid, err := xcursor.CreateCursor(t.conn.XUtil, shape)
	if err != nil {
		return 0, fmt.Errorf("create cursor %d: %w", shape, err)
	}
	t.cursors[shape] = native.Cursor(cid)
	return native.Cursor(cid), nil
}

// forget records that the server destroyed id.
func (t *Toolkit) forget(id native.WindowID) {
	if w, ok := t.windows[id]; ok {
		w.markGone()
		delete(t.windows, id)
	}
}
