package window

import (
	"errors"
	"fmt"

	"github.com/1broseidon/gwk/internal/events"
	"github.com/1broseidon/gwk/internal/keys"
	"github.com/1broseidon/gwk/internal/native"
)

var (
	// ErrDeadContext is the panic value when an event reaches a context
	// whose teardown already ran.
	ErrDeadContext = errors.New("window context used after teardown")
	// ErrUnknownWindow is returned for handles not in the registry.
	ErrUnknownWindow = errors.New("unknown window")
	// ErrNotTopLevel is returned when a non top-level context is given an owner.
	ErrNotTopLevel = errors.New("window is not top-level")
	// ErrOwnerCycle is returned when an owner change would make a window
	// its own ancestor.
	ErrOwnerCycle = errors.New("ownership cycle")
)

// Context owns the state of one native window.
type Context struct {
	reg      *Registry
	handle   Handle
	kind     Kind
	behavior behavior
	win      native.Window
	frame    native.FrameType
	wtype    native.WindowType

	wpeer WindowPeer
	vpeer ViewPeer
	ime   IMEFilter

	owner    Handle
	children map[Handle]struct{}

	iconified    bool
	maximized    bool
	mouseEntered bool
	cursor       native.Cursor

	geometry       native.Geometry
	extents        native.FrameExtents
	embedX, embedY int

	inFlight int
	dead     bool
	marked   bool
}

func (c *Context) Handle() Handle { return c.handle }
func (c *Context) Kind() Kind { return c.kind }
func (c *Context) Native() native.Window { return c.win }
func (c *Context) Owner() Handle { return c.owner }
func (c *Context) IsIconified() bool { return c.iconified }
func (c *Context) IsMaximized() bool { return c.maximized }
func (c *Context) IsMouseEntered() bool { return c.mouseEntered }
func (c *Context) WindowPeer() WindowPeer { return c.wpeer }
func (c *Context) ViewPeer() ViewPeer { return c.vpeer }
func (c *Context) Geometry() native.Geometry { return c.geometry }

// Children returns the handles of the owned contexts in no particular order.
func (c *Context) Children() []Handle {
	out := make([]Handle, 0, len(c.children))
	for h := range c.children {
		out = append(out, h)
	}
	return out
}

// HasChild reports whether h is in the child set.
func (c *Context) HasChild(h Handle) bool {
	_, ok := c.children[h]
	return ok
}

// IncrementEventsCounter marks one more dispatch running inside c.
func (c *Context) IncrementEventsCounter() { c.inFlight++ }

// DecrementEventsCounter ends a dispatch started with IncrementEventsCounter.
func (c *Context) DecrementEventsCounter() {
	if c.inFlight == 0 {
		panic(fmt.Sprintf("window %d: events counter underflow", c.handle))
	}
	c.inFlight--
}

// EventsCount is the number of dispatches currently running inside c.
func (c *Context) EventsCount() int { return c.inFlight }

// IsDead reports whether teardown has run. A dead context may still be
// allocated while events are in flight but is never dispatched to again.
func (c *Context) IsDead() bool { return c.dead }

// IsMarkedForDeletion reports whether the context will be freed once no
// events are in flight.
func (c *Context) IsMarkedForDeletion() bool { return c.marked }

// IsEnabled asks the window peer whether input is accepted.
func (c *Context) IsEnabled() bool {
	if c.wpeer == nil {
		return false
	}
	return c.wpeer.IsEnabled()
}

// DragPeer returns the view's drop handler, if it has one.
func (c *Context) DragPeer() (DragPeer, bool) {
	if c.vpeer == nil {
		return nil, false
	}
	dp, ok := c.vpeer.(DragPeer)
	return dp, ok
}

func (c *Context) live() {
	if c.dead {
		panic(fmt.Errorf("window %d: %w", c.handle, ErrDeadContext))
	}
}

// fail wraps a peer error with the window and the callback that raised it.
func (c *Context) fail(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("window %d: %s: %w", c.handle, op, err)
}

func (c *Context) grabs() *GrabState { return c.reg.grabs }

// ProcessFocus handles a focus change. Losing focus drops the grabs c holds.
// Disabled windows report gained focus as FocusDisabled.
func (c *Context) ProcessFocus(in bool) error {
	c.live()
	g := c.grabs()
	if !in {
		if g.drag == c.handle {
			if err := g.UngrabMouseDragFocus(); err != nil {
				return err
			}
		}
		if g.grab == c.handle {
			if err := g.UngrabFocus(); err != nil {
				return err
			}
		}
	}
	if c.ime != nil {
		c.ime.Focus(in)
	}
	if c.wpeer == nil {
		return nil
	}
	if !in {
		return c.fail("focus", c.wpeer.OnFocusChange(events.FocusLost))
	}
	if c.IsEnabled() {
		return c.fail("focus", c.wpeer.OnFocusChange(events.FocusGained))
	}
	return c.fail("focus disabled", c.wpeer.OnFocusDisabled())
}

// ProcessMouseButton handles a button press or release. The native state
// precedes the event, so the button's own bit is added on press and cleared
// on release before translation.
func (c *Context) ProcessMouseButton(ev native.Event) error {
	c.live()
	g := c.grabs()
	press := ev.Type == native.EventButtonPress
	mask := native.ButtonMask(ev.Button) & (native.StateButton1 | native.StateButton2 | native.StateButton3)
	state := ev.State
	if press {
		state |= mask
	} else {
		state &^= mask
	}

	if press && g.DeviceGrabbed() && !c.reg.pointerOverTracked() {
		// A press outside every window of ours while grabbed: the grab
		// holder (typically a popup) loses it.
		return g.UngrabFocus()
	}

	const held = native.StateButton1 | native.StateButton2 | native.StateButton3
	if press {
		g.GrabMouseDragFocus(c)
	} else if ev.State&held != 0 && state&held == 0 || ev.Button == 8 || ev.Button == 9 {
		// Back/forward buttons have no state bit to watch.
		if err := g.UngrabMouseDragFocus(); err != nil {
			return err
		}
	}

	button := mouseButton(ev.Button)
	if c.vpeer == nil || button == events.ButtonNone {
		return nil
	}
	kind := events.MouseUp
	if press {
		kind = events.MouseDown
	}
	popup := press && ev.Button == 3
	err := c.vpeer.OnMouse(events.Mouse{
		Kind:         kind,
		Button:       button,
		X:            ev.X,
		Y:            ev.Y,
		RootX:        ev.RootX,
		RootY:        ev.RootY,
		Modifiers:    keys.Modifiers(state),
		PopupTrigger: popup,
	})
	if err != nil {
		return c.fail("mouse", err)
	}
	if popup && c.vpeer != nil {
		return c.fail("menu", c.vpeer.OnMenuRequest(ev.X, ev.Y, ev.RootX, ev.RootY, false))
	}
	return nil
}

func mouseButton(b uint8) events.MouseButton {
	switch b {
	case 1:
		return events.ButtonLeft
	case 2:
		return events.ButtonOther
	case 3:
		return events.ButtonRight
	default:
		return events.ButtonNone
	}
}

// ProcessMouseMotion reports a drag while any button is held, else a move.
func (c *Context) ProcessMouseMotion(ev native.Event) error {
	c.live()
	mods := keys.Modifiers(ev.State)
	kind := events.MouseMove
	if mods.AnyButton() {
		kind = events.MouseDrag
	}
	button := events.ButtonNone
	switch {
	case mods&events.ModifierButtonPrimary != 0:
		button = events.ButtonLeft
	case mods&events.ModifierButtonMiddle != 0:
		button = events.ButtonOther
	case mods&events.ModifierButtonSecondary != 0:
		button = events.ButtonRight
	}
	if c.vpeer == nil {
		return nil
	}
	return c.fail("mouse", c.vpeer.OnMouse(events.Mouse{
		Kind:      kind,
		Button:    button,
		X:         ev.X,
		Y:         ev.Y,
		RootX:     ev.RootX,
		RootY:     ev.RootY,
		Modifiers: mods,
	}))
}

// ProcessMouseScroll converts a scroll direction into unit deltas. Shift is
// passed through as a modifier; axis swapping is left to the view.
func (c *Context) ProcessMouseScroll(ev native.Event) error {
	c.live()
	var dx, dy float64
	switch ev.Scroll {
	case native.ScrollUp:
		dy = 1
	case native.ScrollDown:
		dy = -1
	case native.ScrollLeft:
		dx = 1
	case native.ScrollRight:
		dx = -1
	}
	if c.vpeer == nil {
		return nil
	}
	return c.fail("scroll", c.vpeer.OnScroll(events.Scroll{
		X:           ev.X,
		Y:           ev.Y,
		RootX:       ev.RootX,
		RootY:       ev.RootY,
		DeltaX:      dx,
		DeltaY:      dy,
		Modifiers:   keys.Modifiers(ev.State),
		XMultiplier: c.reg.scrollX,
		YMultiplier: c.reg.scrollY,
	}))
}

// ProcessMouseCross handles enter and leave. Repeated notifications without
// a state change are dropped.
func (c *Context) ProcessMouseCross(enter bool, ev native.Event) error {
	c.live()
	if c.vpeer == nil || enter == c.mouseEntered {
		return nil
	}
	state := ev.State
	if enter {
		// Buttons pressed elsewhere are not held from this window's view.
		state &^= native.StateButtons
	}
	c.mouseEntered = enter
	kind := events.MouseExit
	if enter {
		kind = events.MouseEnter
	}
	return c.fail("mouse", c.vpeer.OnMouse(events.Mouse{
		Kind:      kind,
		Button:    events.ButtonNone,
		X:         ev.X,
		Y:         ev.Y,
		RootX:     ev.RootX,
		RootY:     ev.RootY,
		Modifiers: keys.Modifiers(state),
	}))
}

// ProcessKey emits Press (followed by Typed when a character results) or
// Release. The key's own modifier bit is applied to the reported state.
func (c *Context) ProcessKey(ev native.Event) error {
	c.live()
	press := ev.Type == native.EventKeyPress
	code := keys.Translate(c.reg.keymap, ev.Keycode, ev.State)
	if code == events.KeyUndefined {
		code = keys.KeysymToCode(ev.Keysym)
	}
	mods := keys.Modifiers(ev.State)
	if press {
		mods |= keys.KeyModifier(code)
	} else {
		mods &^= keys.KeyModifier(code)
	}

	var chars []rune
	if r := keys.ResolveChar(ev.Keysym, ev.State); r > 0 {
		chars = []rune{r}
	}
	if c.vpeer == nil {
		return nil
	}
	if !press {
		return c.fail("key", c.vpeer.OnKey(events.Key{Kind: events.KeyRelease, Code: code, Chars: chars, Modifiers: mods}))
	}
	if err := c.vpeer.OnKey(events.Key{Kind: events.KeyPress, Code: code, Chars: chars, Modifiers: mods}); err != nil {
		return c.fail("key", err)
	}
	if c.vpeer == nil || len(chars) == 0 {
		return nil
	}
	return c.fail("key", c.vpeer.OnKey(events.Key{Kind: events.KeyTyped, Code: events.KeyUndefined, Chars: chars, Modifiers: mods}))
}

// ProcessState applies a window-manager state change and reports the
// resulting state.
func (c *Context) ProcessState(changed, current native.WindowState) error {
	c.live()
	if !changed.Has(native.WindowIconified | native.WindowMaximized) {
		return nil
	}
	if changed.Has(native.WindowIconified) {
		c.iconified = current.Has(native.WindowIconified)
	}
	if changed.Has(native.WindowMaximized) {
		c.maximized = current.Has(native.WindowMaximized)
	}
	switch {
	case c.iconified:
		return c.NotifyState(events.WindowMinimize)
	case c.maximized:
		return c.NotifyState(events.WindowMaximize)
	default:
		return c.NotifyState(events.WindowRestore)
	}
}

// NotifyState reports state to the window peer. A restore repaints the
// whole view and is reported as maximize while still maximized.
func (c *Context) NotifyState(state events.WindowEvent) error {
	if state == events.WindowRestore {
		if c.maximized {
			state = events.WindowMaximize
		}
		if c.vpeer != nil {
			g, err := c.win.Geometry()
			if err != nil {
				g = c.geometry
			}
			if err := c.fail("repaint", c.vpeer.OnRepaint(0, 0, g.Width, g.Height)); err != nil {
				return err
			}
		}
	}
	if c.wpeer == nil {
		return nil
	}
	return c.fail("state", c.wpeer.OnStateChange(state))
}

// ProcessDelete forwards a close request from the window manager. Disabled
// windows ignore it, so a parent blocked by a modal cannot be closed.
func (c *Context) ProcessDelete() error {
	c.live()
	if c.wpeer == nil || !c.IsEnabled() {
		return nil
	}
	return c.fail("close", c.wpeer.OnClose())
}

// ProcessExpose asks the view to repaint the damaged region.
func (c *Context) ProcessExpose(r native.Geometry) error {
	c.live()
	if c.vpeer == nil {
		return nil
	}
	return c.fail("repaint", c.vpeer.OnRepaint(r.X, r.Y, r.Width, r.Height))
}

// ProcessConfigure applies a geometry change.
func (c *Context) ProcessConfigure(g native.Geometry) error {
	c.live()
	return c.behavior.configure(c, g)
}

// ProcessPropertyNotify reacts to a property change on the native window.
func (c *Context) ProcessPropertyNotify(atom string) error {
	c.live()
	return c.behavior.propertyNotify(c, atom)
}

// ProcessMap refreshes frame extents once the window manager has framed
// the window.
func (c *Context) ProcessMap() error {
	c.live()
	return c.behavior.propertyNotify(c, "_NET_FRAME_EXTENTS")
}

// ProcessDestroy runs teardown. It is safe to call any number of times; the
// work happens once. The context is freed by the registry when no events
// are in flight.
func (c *Context) ProcessDestroy() error {
	c.marked = true
	if c.dead {
		return nil
	}
	var errs []error
	errs = append(errs, c.grabs().release(c))

	if owner := c.reg.contexts[c.owner]; owner != nil {
		delete(owner.children, c.handle)
	}
	c.owner = 0
	for h := range c.children {
		child := c.reg.contexts[h]
		if child == nil {
			continue
		}
		child.owner = 0
		if !child.win.Destroyed() {
			errs = append(errs, child.win.SetTransientFor(0))
		}
	}
	c.children = make(map[Handle]struct{})

	if c.wpeer != nil {
		errs = append(errs, c.fail("destroy", c.wpeer.OnDestroy()))
	}
	c.wpeer = nil
	c.vpeer = nil
	c.ime = nil
	c.dead = true
	return errors.Join(errs...)
}

// SetVisible shows or hides the native window. Hiding a window the pointer
// is inside reports an exit, since no native leave event will follow.
func (c *Context) SetVisible(visible bool) error {
	if visible {
		return c.win.Show()
	}
	if err := c.win.Hide(); err != nil {
		return err
	}
	if c.vpeer != nil && c.mouseEntered {
		c.mouseEntered = false
		return c.fail("mouse", c.vpeer.OnMouse(events.Mouse{
			Kind:   events.MouseExit,
			Button: events.ButtonNone,
		}))
	}
	return nil
}

// IsVisible reports whether the native window is shown.
func (c *Context) IsVisible() bool { return c.win.IsVisible() }

// SetView attaches a view peer and reports the current size to it. A nil
// view detaches.
func (c *Context) SetView(v ViewPeer) error {
	c.vpeer = v
	if v == nil {
		c.mouseEntered = false
		return nil
	}
	g, err := c.win.Geometry()
	if err != nil {
		return fmt.Errorf("window %d: geometry: %w", c.handle, err)
	}
	return c.fail("view resize", v.OnResize(g.Width, g.Height))
}

// SetIME attaches an input method; nil detaches.
func (c *Context) SetIME(f IMEFilter) { c.ime = f }

// HasIME reports whether an input method is attached.
func (c *Context) HasIME() bool { return c.ime != nil }

// FilterIME offers a key event to the input method.
func (c *Context) FilterIME(ev native.Event) bool {
	return c.ime != nil && c.ime.Filter(ev)
}

// ResetIME discards any composition in progress.
func (c *Context) ResetIME() {
	if c.ime != nil {
		c.ime.Reset()
	}
}

// AddChild makes child owned by c, moving it from any previous owner.
func (c *Context) AddChild(child *Context) error {
	return child.SetOwner(c)
}

// RemoveChild drops child from the child set and clears its ownership hint.
func (c *Context) RemoveChild(child *Context) error {
	if _, ok := c.children[child.handle]; !ok {
		return nil
	}
	delete(c.children, child.handle)
	child.owner = 0
	return child.win.SetTransientFor(0)
}

// SetOwner moves c under owner in one step: the old owner's child set, the
// new owner's child set and the native hint change together. A nil owner
// detaches.
func (c *Context) SetOwner(owner *Context) error {
	if c.kind != TopLevel {
		return fmt.Errorf("window %d: %w", c.handle, ErrNotTopLevel)
	}
	if owner != nil && owner.handle == c.owner {
		return nil
	}
	for o := owner; o != nil; o = c.reg.contexts[o.owner] {
		if o == c {
			return fmt.Errorf("window %d: owner %d: %w", c.handle, owner.handle, ErrOwnerCycle)
		}
	}
	if prev := c.reg.contexts[c.owner]; prev != nil {
		delete(prev.children, c.handle)
	}
	c.owner = 0
	var target native.WindowID
	if owner != nil {
		owner.children[c.handle] = struct{}{}
		c.owner = owner.handle
		target = owner.win.ID()
	}
	return c.win.SetTransientFor(target)
}

// ShowOrHideChildren shows or hides every owned window, recursively. A
// hidden child the pointer was inside gets a synthetic exit.
func (c *Context) ShowOrHideChildren(show bool) error {
	var errs []error
	for h := range c.children {
		child := c.reg.contexts[h]
		if child == nil || child.dead {
			continue
		}
		errs = append(errs, child.SetVisible(show), child.ShowOrHideChildren(show))
	}
	return errors.Join(errs...)
}

// ReparentChildren hands every owned window over to parent. Children that
// cannot move stay owned by c.
func (c *Context) ReparentChildren(parent *Context) error {
	if parent == c {
		return nil
	}
	var errs []error
	for h := range c.children {
		child := c.reg.contexts[h]
		if child == nil {
			delete(c.children, h)
			continue
		}
		errs = append(errs, parent.AddChild(child))
	}
	return errors.Join(errs...)
}

// GrabFocus requests the exclusive grab for c.
func (c *Context) GrabFocus() bool { return c.grabs().GrabFocus(c) }

// UngrabFocus releases the exclusive grab.
func (c *Context) UngrabFocus() error { return c.grabs().UngrabFocus() }

// GrabMouseDragFocus requests the drag grab for c.
func (c *Context) GrabMouseDragFocus() bool { return c.grabs().GrabMouseDragFocus(c) }

// UngrabMouseDragFocus releases the drag grab.
func (c *Context) UngrabMouseDragFocus() error { return c.grabs().UngrabMouseDragFocus() }

// SetCursor changes the cursor, re-grabbing if a grab is active.
func (c *Context) SetCursor(cursor native.Cursor) error {
	return c.grabs().SetCursor(c, cursor)
}

func (c *Context) SetTitle(title string) error { return c.win.SetTitle(title) }

func (c *Context) SetBounds(g native.Geometry) error { return c.win.SetBounds(g) }

func (c *Context) SetMinimized(minimized bool) error { return c.win.SetMinimized(minimized) }

func (c *Context) SetMaximized(maximized bool) error { return c.win.SetMaximized(maximized) }

func (c *Context) EnterFullScreen() error { return c.win.SetFullScreen(true) }

func (c *Context) ExitFullScreen() error { return c.win.SetFullScreen(false) }

func (c *Context) SetLevel(level native.Level) error { return c.win.SetLevel(level) }

// RequestFocus asks the window manager to activate the window.
func (c *Context) RequestFocus() error { return c.win.Activate() }

// SetModal makes the window modal for parent. Only top-level windows can be
// modal.
func (c *Context) SetModal(modal bool, parent *Context) error {
	return c.behavior.setModal(c, modal, parent)
}

// FrameExtents returns the decoration sizes; zero for nested windows.
func (c *Context) FrameExtents() native.FrameExtents { return c.behavior.frameExtents(c) }

// Position returns the origin reported to the application.
func (c *Context) Position() (x, y int) { return c.behavior.position(c) }
