// Package dnd tracks in-process drag and drop between tracked windows.
package dnd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/1broseidon/gwk/internal/events"
	"github.com/1broseidon/gwk/internal/native"
	"github.com/1broseidon/gwk/internal/window"
)

const keysymEscape native.Keysym = 0xff1b

var (
	// ErrDragActive is returned by Begin while another drag is running.
	ErrDragActive = errors.New("drag already in progress")
	// ErrNoActions is returned by Begin when the source offers nothing.
	ErrNoActions = errors.New("drag offers no actions")
)

// Source runs one drag at a time. While a drag is active it sees pointer
// and key events before the windows do.
type Source struct {
	reg     *window.Registry
	pointer native.Pointer
	log     *slog.Logger

	active  bool
	origin  window.Handle
	actions events.Action
	target  window.Handle
	action  events.Action
}

// NewSource creates an idle drag source.
func NewSource(reg *window.Registry, pointer native.Pointer, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{reg: reg, pointer: pointer, log: logger}
}

// Active reports whether a drag is running.
func (s *Source) Active() bool { return s.active }

// Origin returns the window the drag started from.
func (s *Source) Origin() window.Handle { return s.origin }

// Target returns the window currently under the drag, or 0.
func (s *Source) Target() window.Handle { return s.target }

// Action returns the action the current target accepted.
func (s *Source) Action() events.Action { return s.action }

// Begin starts a drag from c offering actions. The drag keeps the pointer
// until a button release or Escape ends it.
func (s *Source) Begin(c *window.Context, actions events.Action) error {
	if s.active {
		return ErrDragActive
	}
	if actions&events.ActionAny == 0 {
		return ErrNoActions
	}
	if c.IsDead() {
		return fmt.Errorf("window %d: %w", c.Handle(), window.ErrDeadContext)
	}
	s.active = true
	s.origin = c.Handle()
	s.actions = actions & events.ActionAny
	s.target = 0
	s.action = events.ActionNone
	s.reg.Grabs().SetDragAndDrop(true)
	if s.reg.Grabs().DragHolder() != c.Handle() {
		c.GrabMouseDragFocus()
	}
	s.log.Debug("drag started", "window", c.Handle(), "actions", s.actions)
	return nil
}

// Process offers ev to the running drag and reports whether it was
// consumed. Pointer and key events are consumed while a drag is active.
func (s *Source) Process(ev native.Event) (bool, error) {
	if !s.active {
		return false, nil
	}
	switch ev.Type {
	case native.EventMotion:
		return true, s.motion(ev)
	case native.EventButtonRelease:
		return true, s.drop(ev)
	case native.EventKeyPress:
		if ev.Keysym == keysymEscape {
			return true, s.Cancel()
		}
		return true, nil
	}
	return ev.Type.IsPointer() || ev.Type.IsKey(), nil
}

// Cancel ends the drag without dropping.
func (s *Source) Cancel() error {
	if !s.active {
		return nil
	}
	err := s.leave()
	return errors.Join(err, s.end(events.ActionNone))
}

func (s *Source) motion(ev native.Event) error {
	under := s.targetUnder()
	if under != s.target {
		if err := s.leave(); err != nil {
			return err
		}
		if under == 0 {
			return nil
		}
		s.target = under
		return s.call(under, func(c *window.Context, dp window.DragPeer) error {
			x, y := local(c, ev)
			action, err := dp.OnDragEnter(x, y, ev.RootX, ev.RootY, s.actions)
			s.action = action & s.actions
			return err
		})
	}
	if s.target == 0 {
		return nil
	}
	return s.call(s.target, func(c *window.Context, dp window.DragPeer) error {
		x, y := local(c, ev)
		action, err := dp.OnDragOver(x, y, ev.RootX, ev.RootY, s.actions)
		s.action = action & s.actions
		return err
	})
}

func (s *Source) drop(ev native.Event) error {
	if s.target == 0 || s.action == events.ActionNone {
		err := s.leave()
		return errors.Join(err, s.end(events.ActionNone))
	}
	result := events.ActionNone
	err := s.call(s.target, func(c *window.Context, dp window.DragPeer) error {
		x, y := local(c, ev)
		action, err := dp.OnDragDrop(x, y, ev.RootX, ev.RootY, s.action)
		result = action & s.actions
		return err
	})
	s.target = 0
	return errors.Join(err, s.end(result))
}

func (s *Source) leave() error {
	if s.target == 0 {
		return nil
	}
	h := s.target
	s.target = 0
	s.action = events.ActionNone
	return s.call(h, func(_ *window.Context, dp window.DragPeer) error {
		return dp.OnDragLeave()
	})
}

func (s *Source) end(action events.Action) error {
	origin := s.origin
	s.active = false
	s.origin = 0
	s.actions = events.ActionNone
	s.action = events.ActionNone
	g := s.reg.Grabs()
	g.SetDragAndDrop(false)
	var ungrabErr error
	if g.DragHolder() == origin {
		ungrabErr = g.UngrabMouseDragFocus()
	}
	s.log.Debug("drag ended", "window", origin, "action", action)

	c, ok := s.reg.Get(origin)
	if !ok || c.IsDead() {
		return ungrabErr
	}
	sp, ok := c.ViewPeer().(window.DragSourcePeer)
	if !ok {
		return ungrabErr
	}
	s.reg.Enter(c)
	defer s.reg.Leave(c)
	if err := sp.OnDragEnd(action); err != nil {
		return errors.Join(ungrabErr, fmt.Errorf("window %d: drag end: %w", origin, err))
	}
	return ungrabErr
}

// targetUnder returns the live window under the pointer that accepts drops.
func (s *Source) targetUnder() window.Handle {
	if s.pointer == nil {
		return 0
	}
	id, ok := s.pointer.WindowAtPointer()
	if !ok {
		return 0
	}
	c, ok := s.reg.Lookup(id)
	if !ok || c.IsDead() || !c.IsEnabled() {
		return 0
	}
	if _, ok := c.DragPeer(); !ok {
		return 0
	}
	return c.Handle()
}

// call runs fn against h's drop handler with h held in flight, so the
// handler may destroy its own window.
func (s *Source) call(h window.Handle, fn func(*window.Context, window.DragPeer) error) error {
	c, ok := s.reg.Get(h)
	if !ok || c.IsDead() {
		return nil
	}
	dp, ok := c.DragPeer()
	if !ok {
		return nil
	}
	s.reg.Enter(c)
	defer s.reg.Leave(c)
	if err := fn(c, dp); err != nil {
		return fmt.Errorf("window %d: drag: %w", h, err)
	}
	return nil
}

func local(c *window.Context, ev native.Event) (int, int) {
	g := c.Geometry()
	return ev.RootX - g.X, ev.RootY - g.Y
}
