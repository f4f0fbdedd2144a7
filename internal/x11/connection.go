package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"
)

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	randr bool
}

// NewConnection connects to display (empty for $DISPLAY) and selects the
// root window events the shim watches.
func NewConnection(display string) (*Connection, error) {
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}

	// Initialize keybind module (required for keysym lookups and hotkeys)
	keybind.Initialize(xu)

	c := &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}

	// Root property changes carry work-area and desktop switches.
	if err := xproto.ChangeWindowAttributesChecked(xu.Conn(), c.Root, xproto.CwEventMask,
		[]uint32{xproto.EventMaskPropertyChange}).Check(); err != nil {
		c.Close()
		return nil, fmt.Errorf("select root events: %w", err)
	}

	if err := randr.Init(xu.Conn()); err == nil {
		c.randr = true
		randr.SelectInput(xu.Conn(), c.Root, randr.NotifyMaskScreenChange)
	}
	return c, nil
}

// EventLoop starts the main X11 event loop (blocking)
func (c *Connection) EventLoop() {
	xevent.Main(c.XUtil)
}

// Quit makes EventLoop return after the current event.
func (c *Connection) Quit() {
	xevent.Quit(c.XUtil)
}

// stopAtom is written to the root window to wake the event loop for Stop.
const stopAtom = "_GWK_STOP"

// Stop asks EventLoop to return. Unlike Quit it may be called from any
// goroutine: it writes a root property whose notification makes the loop
// quit from its own goroutine.
func (c *Connection) Stop() error {
	atom, err := xprop.Atm(c.XUtil, stopAtom)
	if err != nil {
		return fmt.Errorf("intern %s: %w", stopAtom, err)
	}
	return xproto.ChangePropertyChecked(c.XUtil.Conn(), xproto.PropModeReplace,
		c.Root, atom, xproto.AtomCardinal, 32, 1, []byte{1, 0, 0, 0}).Check()
}

// isStop reports whether raw is the notification written by Stop.
func (c *Connection) isStop(raw interface{}) bool {
	ev, ok := raw.(xproto.PropertyNotifyEvent)
	return ok && ev.Window == c.Root && c.atomName(ev.Atom) == stopAtom
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}

// sendRootMessage sends an EWMH/ICCCM client message about win to the root
// window. The message is built by hand because some xgbutil request
// helpers panic on this library version.
func (c *Connection) sendRootMessage(win xproto.Window, atomName string, data ...uint32) error {
	atom, err := xprop.Atm(c.XUtil, atomName)
	if err != nil {
		return fmt.Errorf("intern %s: %w", atomName, err)
	}
	for len(data) < 5 {
		data = append(data, 0)
	}
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   atom,
		Data:   xproto.ClientMessageDataUnionData32New(data[:5]),
	}
	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		c.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}

// atomName resolves an atom to its name; unknown atoms yield "".
func (c *Connection) atomName(atom xproto.Atom) string {
	name, err := xprop.AtomName(c.XUtil, atom)
	if err != nil {
		return ""
	}
	return name
}
