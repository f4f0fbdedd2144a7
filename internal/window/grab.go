package window

import (
	"errors"

	"github.com/1broseidon/gwk/internal/native"
)

// GrabState tracks which context holds the exclusive input grab and which
// holds the mouse-drag grab. The drag grab takes priority while set; the
// device grab is exclusive, so releasing the drag grab re-asserts the
// exclusive one.
type GrabState struct {
	reg      *Registry
	pointer  native.Pointer
	disabled bool

	grab Handle
	drag Handle
	// dnd is set while a drag-and-drop operation owns the pointer.
	dnd bool
}

// Holder returns the context holding the exclusive grab, or 0.
func (g *GrabState) Holder() Handle { return g.grab }

// DragHolder returns the context holding the mouse-drag grab, or 0.
func (g *GrabState) DragHolder() Handle { return g.drag }

// Disabled reports whether device grabs are skipped.
func (g *GrabState) Disabled() bool { return g.disabled }

// DeviceGrabbed reports whether the pointer device is grabbed.
func (g *GrabState) DeviceGrabbed() bool {
	return g.pointer != nil && g.pointer.Grabbed()
}

// SetDragAndDrop marks a drag-and-drop operation as active; cursor changes
// then leave the device grab alone.
func (g *GrabState) SetDragAndDrop(active bool) { g.dnd = active }

func (g *GrabState) grabDevice(c *Context, cursor native.Cursor, ownerEvents bool) bool {
	if g.disabled {
		return true
	}
	if g.pointer == nil || c.win == nil {
		return false
	}
	return g.pointer.Grab(c.win.ID(), cursor, ownerEvents)
}

func (g *GrabState) ungrabDevice() {
	if g.disabled || g.pointer == nil {
		return
	}
	g.pointer.Ungrab()
}

// GrabFocus gives c the exclusive grab. It rides along with an active drag
// grab; otherwise it needs the device grab to succeed.
func (g *GrabState) GrabFocus(c *Context) bool {
	if g.drag != 0 || g.grabDevice(c, c.cursor, true) {
		g.grab = c.handle
		return true
	}
	g.reg.log.Debug("exclusive grab refused", "window", c.handle)
	return false
}

// UngrabFocus releases the exclusive grab and tells its holder. The device
// grab stays while a drag grab is active.
func (g *GrabState) UngrabFocus() error {
	if g.drag == 0 {
		g.ungrabDevice()
	}
	prev := g.grab
	g.grab = 0
	c := g.reg.contexts[prev]
	if c == nil || c.wpeer == nil {
		return nil
	}
	return c.fail("focus ungrab", c.wpeer.OnFocusUngrab())
}

// GrabMouseDragFocus gives c the drag grab for the duration of a button
// press. Events keep going to c until every button is released.
func (g *GrabState) GrabMouseDragFocus(c *Context) bool {
	if g.grabDevice(c, c.cursor, false) {
		g.drag = c.handle
		return true
	}
	g.reg.log.Debug("drag grab refused", "window", c.handle)
	return false
}

// UngrabMouseDragFocus releases the drag grab and re-asserts a pending
// exclusive grab. If the device refuses the re-grab the exclusive grab is
// dropped and its holder told, as UngrabFocus would.
func (g *GrabState) UngrabMouseDragFocus() error {
	g.drag = 0
	g.ungrabDevice()
	if g.grab == 0 {
		return nil
	}
	holder := g.reg.contexts[g.grab]
	if holder == nil {
		g.grab = 0
		return nil
	}
	if g.GrabFocus(holder) {
		return nil
	}
	g.grab = 0
	if holder.wpeer == nil {
		return nil
	}
	return holder.fail("focus ungrab", holder.wpeer.OnFocusUngrab())
}

// SetCursor applies cursor to c and to whichever grab is active, since the
// grab window rather than the window under the pointer decides the cursor.
func (g *GrabState) SetCursor(c *Context, cursor native.Cursor) error {
	c.cursor = cursor
	if !g.dnd && !g.disabled && g.pointer != nil {
		if d := g.reg.contexts[g.drag]; d != nil {
			if !g.pointer.Grab(d.win.ID(), cursor, false) {
				g.reg.log.Debug("cursor re-grab refused", "window", d.handle, "grab", "drag")
			}
		} else if h := g.reg.contexts[g.grab]; h != nil {
			if !g.pointer.Grab(h.win.ID(), cursor, true) {
				g.reg.log.Debug("cursor re-grab refused", "window", h.handle, "grab", "exclusive")
			}
		}
	}
	return c.win.SetCursor(cursor)
}

// release drops every grab c holds; used during teardown.
func (g *GrabState) release(c *Context) error {
	var err error
	if g.drag == c.handle {
		err = g.UngrabMouseDragFocus()
	}
	if g.grab == c.handle {
		return errors.Join(err, g.UngrabFocus())
	}
	return err
}
