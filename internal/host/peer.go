package host

import (
	"log/slog"

	"github.com/1broseidon/gwk/internal/events"
	"github.com/1broseidon/gwk/internal/trace"
	"github.com/1broseidon/gwk/internal/window"
)

// Peer is the application side of one window. It logs what it is told and
// reacts to close requests, popup dismissal, Escape and shift-drags by
// calling back into the Host.
type Peer struct {
	host   *Host
	handle window.Handle
	title  string
	popup  bool
	log    *slog.Logger

	// blocked counts open popups owned by this window; the window refuses
	// input while any are open.
	blocked int
	closed  bool

	width, height int
}

var (
	_ window.WindowPeer     = (*Peer)(nil)
	_ window.ViewPeer       = (*Peer)(nil)
	_ window.DragPeer       = (*Peer)(nil)
	_ window.DragSourcePeer = (*Peer)(nil)
)

func (p *Peer) OnDestroy() error {
	p.log.Info("window destroyed")
	p.closed = true
	p.host.forget(p)
	return nil
}

func (p *Peer) OnClose() error {
	p.log.Info("close requested")
	return p.host.Close(p.handle)
}

func (p *Peer) OnStateChange(state events.WindowEvent) error {
	p.log.Info("window state", "state", state)
	return nil
}

func (p *Peer) OnFocusChange(kind events.WindowEvent) error {
	p.log.Debug("focus", "kind", kind)
	return nil
}

func (p *Peer) OnFocusDisabled() error {
	p.log.Info("focus refused while blocked", "popups", p.blocked)
	return nil
}

// OnFocusUngrab dismisses popups; any other window just logs.
func (p *Peer) OnFocusUngrab() error {
	p.log.Debug("grab lost")
	p.host.Trace.Log(trace.ActionUngrab, p.handle, nil)
	if p.popup && !p.closed {
		return p.host.Close(p.handle)
	}
	return nil
}

func (p *Peer) OnMove(x, y int) error {
	p.log.Debug("moved", "x", x, "y", y)
	return nil
}

// OnResize serves both the window and the view.
func (p *Peer) OnResize(width, height int) error {
	if width == p.width && height == p.height {
		return nil
	}
	p.width, p.height = width, height
	p.log.Debug("resized", "width", width, "height", height)
	return nil
}

func (p *Peer) IsEnabled() bool { return p.blocked == 0 }

func (p *Peer) OnRepaint(x, y, width, height int) error {
	p.log.Debug("repaint", "x", x, "y", y, "width", width, "height", height)
	return nil
}

func (p *Peer) OnMouse(ev events.Mouse) error {
	switch ev.Kind {
	case events.MouseMove, events.MouseEnter, events.MouseExit:
		p.log.Debug("mouse", "kind", ev.Kind, "x", ev.X, "y", ev.Y)
	case events.MouseDrag:
		if ev.Modifiers.Has(events.ModifierShift) && ev.Modifiers.Has(events.ModifierButtonPrimary) {
			return p.host.BeginDrag(p.handle)
		}
	default:
		p.log.Info("mouse", "kind", ev.Kind, "button", ev.Button, "x", ev.X, "y", ev.Y, "modifiers", ev.Modifiers)
	}
	return nil
}

func (p *Peer) OnMenuRequest(x, y, rootX, rootY int, keyboardTrigger bool) error {
	p.log.Info("menu requested", "x", x, "y", y, "root_x", rootX, "root_y", rootY, "keyboard", keyboardTrigger)
	return nil
}

func (p *Peer) OnScroll(ev events.Scroll) error {
	p.log.Debug("scroll", "dx", ev.DeltaX, "dy", ev.DeltaY, "lines", ev.Lines)
	return nil
}

// OnKey closes popups on Escape.
func (p *Peer) OnKey(ev events.Key) error {
	p.log.Debug("key", "kind", ev.Kind, "code", ev.Code, "chars", string(ev.Chars), "modifiers", ev.Modifiers)
	if p.popup && ev.Kind == events.KeyPress && ev.Code == events.KeyEscape {
		return p.host.Close(p.handle)
	}
	return nil
}

// dropAction picks the action to accept from what the source offers.
func dropAction(offered events.Action) events.Action {
	switch {
	case offered&events.ActionCopy != 0:
		return events.ActionCopy
	case offered&events.ActionMove != 0:
		return events.ActionMove
	case offered&events.ActionLink != 0:
		return events.ActionLink
	}
	return events.ActionNone
}

func (p *Peer) OnDragEnter(x, y, rootX, rootY int, actions events.Action) (events.Action, error) {
	p.log.Info("drag entered", "x", x, "y", y, "actions", actions)
	return dropAction(actions), nil
}

func (p *Peer) OnDragOver(x, y, rootX, rootY int, actions events.Action) (events.Action, error) {
	return dropAction(actions), nil
}

func (p *Peer) OnDragLeave() error {
	p.log.Info("drag left")
	return nil
}

func (p *Peer) OnDragDrop(x, y, rootX, rootY int, action events.Action) (events.Action, error) {
	p.log.Info("dropped", "x", x, "y", y, "action", action)
	return dropAction(action), nil
}

func (p *Peer) OnDragEnd(action events.Action) error {
	p.log.Info("drag finished", "action", action)
	return nil
}
