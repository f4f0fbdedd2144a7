// Package host opens the configured windows and plays the application side
// of every window context.
package host

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/1broseidon/gwk/internal/config"
	"github.com/1broseidon/gwk/internal/events"
	"github.com/1broseidon/gwk/internal/native"
	"github.com/1broseidon/gwk/internal/trace"
	"github.com/1broseidon/gwk/internal/window"
)

// DragStarter begins a drag from a window. *dnd.Source implements it.
type DragStarter interface {
	Begin(c *window.Context, actions events.Action) error
	Active() bool
}

// Host owns the peers of the windows it opened. Like the registry it is
// confined to the event-loop goroutine.
type Host struct {
	reg  *window.Registry
	drag DragStarter
	log  *slog.Logger

	peers   map[window.Handle]*Peer
	byTitle map[string]window.Handle
	// owners maps an open popup to the window it blocks.
	owners map[window.Handle]window.Handle

	// OnEmpty runs once the last top-level window has gone.
	OnEmpty func()
	// Trace receives lifecycle, grab and drag entries; nil discards them.
	Trace *trace.Logger
}

// New creates a host that opens windows through reg.
func New(reg *window.Registry, drag DragStarter, logger *slog.Logger) *Host {
	if logger == nil {
		logger = slog.Default()
	}
	return &Host{
		reg:     reg,
		drag:    drag,
		log:     logger,
		peers:   make(map[window.Handle]*Peer),
		byTitle: make(map[string]window.Handle),
		owners:  make(map[window.Handle]window.Handle),
	}
}

// Open creates and shows every configured window in order. Owners must
// appear before the windows they own.
func (h *Host) Open(windows []config.WindowConfig) error {
	for i, wc := range windows {
		if _, err := h.OpenWindow(wc); err != nil {
			return fmt.Errorf("windows[%d] %q: %w", i, wc.Title, err)
		}
	}
	return nil
}

// OpenWindow creates one top-level window with its children and shows it.
// Popups take the exclusive grab and block their owner until closed.
func (h *Host) OpenWindow(wc config.WindowConfig) (window.Handle, error) {
	frame, err := wc.FrameType()
	if err != nil {
		return 0, err
	}
	wtype, err := wc.WindowType()
	if err != nil {
		return 0, err
	}
	var owner window.Handle
	if wc.Owner != "" {
		var ok bool
		if owner, ok = h.byTitle[wc.Owner]; !ok {
			return 0, fmt.Errorf("owner %q is not open", wc.Owner)
		}
	}

	p := h.newPeer(wc.Title, wtype == native.TypePopup)
	handle, err := h.reg.CreateWindow(p, owner, 0, frame, wtype)
	if err != nil {
		return 0, err
	}
	h.attach(p, handle)
	h.byTitle[wc.Title] = handle

	c, _ := h.reg.Get(handle)
	bounds := native.Geometry{Width: wc.Width, Height: wc.Height}
	if err := errors.Join(c.SetTitle(wc.Title), c.SetBounds(bounds), c.SetView(p)); err != nil {
		return handle, err
	}

	for i := 1; i <= wc.Children; i++ {
		if err := h.openChild(handle, wc, i); err != nil {
			return handle, err
		}
	}

	if err := c.SetVisible(true); err != nil {
		return handle, err
	}
	if p.popup {
		if owner != 0 {
			h.owners[handle] = owner
			h.peers[owner].blocked++
		}
		if c.GrabFocus() {
			h.Trace.Log(trace.ActionGrab, handle, map[string]interface{}{"owner": owner})
		} else {
			h.log.Warn("popup could not grab the pointer", "window", handle)
		}
	}
	h.Trace.Log(trace.ActionCreate, handle, map[string]interface{}{
		"title": wc.Title,
		"frame": frame.String(),
		"type":  wtype.String(),
	})
	h.log.Info("window opened", "window", handle, "title", wc.Title, "owner", owner)
	return handle, nil
}

// openChild tiles child n of parent across the parent's width.
func (h *Host) openChild(parent window.Handle, wc config.WindowConfig, n int) error {
	p := h.newPeer(fmt.Sprintf("%s/%d", wc.Title, n), false)
	handle, err := h.reg.CreateChild(p, parent)
	if err != nil {
		return err
	}
	h.attach(p, handle)
	h.Trace.Log(trace.ActionCreate, handle, map[string]interface{}{"parent": parent})

	c, _ := h.reg.Get(handle)
	w := wc.Width / (wc.Children + 1)
	bounds := native.Geometry{
		X:      w * (n - 1),
		Y:      wc.Height / 4,
		Width:  w,
		Height: wc.Height / 2,
	}
	return errors.Join(c.SetBounds(bounds), c.SetView(p), c.SetVisible(true))
}

func (h *Host) newPeer(title string, popup bool) *Peer {
	return &Peer{host: h, title: title, popup: popup}
}

func (h *Host) attach(p *Peer, handle window.Handle) {
	p.handle = handle
	p.log = h.log.With("window", handle, "title", p.title)
	h.peers[handle] = p
}

// Close tears a window down. Closing a closed window is a no-op.
func (h *Host) Close(handle window.Handle) error {
	p, ok := h.peers[handle]
	if !ok || p.closed {
		return nil
	}
	p.closed = true
	return h.reg.DestroyAndDelete(handle)
}

// forget drops a destroyed window's bookkeeping and unblocks its owner.
func (h *Host) forget(p *Peer) {
	h.Trace.Log(trace.ActionDestroy, p.handle, map[string]interface{}{"title": p.title})
	delete(h.peers, p.handle)
	if h.byTitle[p.title] == p.handle {
		delete(h.byTitle, p.title)
	}
	if owner, ok := h.owners[p.handle]; ok {
		delete(h.owners, p.handle)
		if op := h.peers[owner]; op != nil && op.blocked > 0 {
			op.blocked--
		}
	}
	if h.OnEmpty != nil && h.topLevels() == 0 {
		h.OnEmpty()
	}
}

func (h *Host) topLevels() int {
	n := 0
	for handle := range h.peers {
		if c, ok := h.reg.Get(handle); ok && !c.IsDead() && c.Kind() == window.TopLevel {
			n++
		}
	}
	return n
}

// BeginDrag starts a copy-or-move drag from handle.
func (h *Host) BeginDrag(handle window.Handle) error {
	if h.drag == nil || h.drag.Active() {
		return nil
	}
	c, ok := h.reg.Get(handle)
	if !ok {
		return fmt.Errorf("window %d: %w", handle, window.ErrUnknownWindow)
	}
	if err := h.drag.Begin(c, events.ActionCopy|events.ActionMove); err != nil {
		return err
	}
	h.Trace.Log(trace.ActionDrag, handle, map[string]interface{}{"actions": "copy|move"})
	return nil
}

// Shutdown closes every remaining window, newest first.
func (h *Host) Shutdown() error {
	h.OnEmpty = nil
	handles := h.reg.Handles()
	var errs []error
	for i := len(handles) - 1; i >= 0; i-- {
		errs = append(errs, h.Close(handles[i]))
	}
	return errors.Join(errs...)
}

// Len reports how many windows the host is tracking.
func (h *Host) Len() int { return len(h.peers) }
