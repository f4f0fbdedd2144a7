// Package dispatch routes native events to window contexts.
package dispatch

import (
	"fmt"
	"log/slog"

	"github.com/1broseidon/gwk/internal/native"
	"github.com/1broseidon/gwk/internal/window"
)

// Disposition tells the event loop whether the toolkit's default processing
// must also run for an event.
type Disposition int

const (
	// Forward lets the default processing run.
	Forward Disposition = iota
	// Consumed stops the event here.
	Consumed
)

func (d Disposition) String() string {
	if d == Consumed {
		return "consumed"
	}
	return "forward"
}

// DragSource sees pointer and key events first while a drag is active.
type DragSource interface {
	Active() bool
	Process(ev native.Event) (bool, error)
}

// Hook observes every event for a tracked window before it is routed.
type Hook func(c *window.Context, ev native.Event)

// Options configures a Dispatcher.
type Options struct {
	Registry *window.Registry
	Drag     DragSource
	// Screens reads the current screen layout; called at startup and on
	// every screen-settings change.
	Screens func() ([]native.Screen, error)
	// OnScreensChanged is told about every new screen layout.
	OnScreensChanged func([]native.Screen)
	Monitor          *Monitor
	Logger           *slog.Logger
}

// Dispatcher resolves the target context of each native event and routes
// the event into it. It runs on the event-loop goroutine only.
type Dispatcher struct {
	reg      *window.Registry
	drag     DragSource
	screens  func() ([]native.Screen, error)
	onScreen func([]native.Screen)
	monitor  *Monitor
	log      *slog.Logger
	hooks    []Hook

	events  uint64
	failed  uint64
	lastErr string
	layout  []native.Screen
}

// New creates a Dispatcher.
func New(opts Options) *Dispatcher {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		reg:      opts.Registry,
		drag:     opts.Drag,
		screens:  opts.Screens,
		onScreen: opts.OnScreensChanged,
		monitor:  opts.Monitor,
		log:      logger,
	}
}

// AddHook registers h to run for every tracked event.
func (d *Dispatcher) AddHook(h Hook) { d.hooks = append(d.hooks, h) }

// Screens returns the last screen layout read.
func (d *Dispatcher) Screens() []native.Screen {
	out := make([]native.Screen, len(d.layout))
	copy(out, d.layout)
	return out
}

// RefreshScreens rereads the screen layout and notifies the listener.
func (d *Dispatcher) RefreshScreens() error {
	if d.screens == nil {
		return nil
	}
	layout, err := d.screens()
	if err != nil {
		return fmt.Errorf("read screens: %w", err)
	}
	d.layout = layout
	d.log.Debug("screens changed", "count", len(layout))
	if d.onScreen != nil {
		d.onScreen(d.Screens())
	}
	d.publish("screens")
	return nil
}

// Dispatch routes one native event. Peer errors are returned after the
// in-flight bookkeeping for the target context has completed.
func (d *Dispatcher) Dispatch(ev native.Event) (disp Disposition, err error) {
	d.events++
	defer func() {
		if err != nil {
			d.failed++
			d.lastErr = err.Error()
			d.log.Warn("dispatch failed", "event", ev.Type, "native", ev.Window, "error", err)
		}
		d.publish(ev.Type.String())
	}()

	c, ok := d.reg.Lookup(ev.Window)
	if !ok {
		if screenSettingsChanged(ev) {
			return Forward, d.RefreshScreens()
		}
		return Forward, nil
	}
	if !permitted(c, ev.Type) {
		return Consumed, nil
	}
	if ev.Type.IsKey() && c.HasIME() && c.FilterIME(ev) {
		return Consumed, nil
	}

	d.reg.Enter(c)
	defer d.reg.Leave(c)

	for _, h := range d.hooks {
		h(c, ev)
	}
	if d.drag != nil && d.drag.Active() && (ev.Type.IsPointer() || ev.Type.IsKey()) {
		consumed, err := d.drag.Process(ev)
		if consumed || err != nil {
			return Consumed, err
		}
	}
	if c.IsDead() && ev.Type != native.EventDestroy {
		// A hook or the drag source tore the window down.
		return Consumed, nil
	}
	return route(d.reg, c, ev)
}

func screenSettingsChanged(ev native.Event) bool {
	if ev.Type == native.EventScreenChange {
		return true
	}
	return ev.Root && ev.Type == native.EventProperty &&
		(ev.Atom == "_NET_WORKAREA" || ev.Atom == "_NET_CURRENT_DESKTOP")
}

// permitted filters events a context may not receive right now. Destroy
// always passes; windows whose native side is gone or whose teardown ran get
// nothing else, and disabled windows only bookkeeping events.
func permitted(c *window.Context, t native.EventType) bool {
	if t == native.EventDestroy {
		return true
	}
	if c.Native().Destroyed() || c.IsDead() {
		return false
	}
	switch t {
	case native.EventConfigure, native.EventExpose, native.EventDamage,
		native.EventWindowState, native.EventFocusIn, native.EventFocusOut:
		return true
	}
	return c.IsEnabled()
}

func route(reg *window.Registry, c *window.Context, ev native.Event) (Disposition, error) {
	switch ev.Type {
	case native.EventProperty:
		return Forward, c.ProcessPropertyNotify(ev.Atom)
	case native.EventConfigure:
		return Forward, c.ProcessConfigure(ev.Geometry)
	case native.EventFocusIn, native.EventFocusOut:
		return Forward, c.ProcessFocus(ev.Type == native.EventFocusIn)
	case native.EventWindowState:
		return Forward, c.ProcessState(ev.StateChanged, ev.StateNew)
	case native.EventDestroy:
		return Consumed, reg.DestroyAndDelete(c.Handle())
	case native.EventDelete:
		return Consumed, c.ProcessDelete()
	case native.EventExpose, native.EventDamage:
		return Consumed, c.ProcessExpose(ev.Geometry)
	case native.EventButtonPress, native.EventButtonRelease:
		return Consumed, c.ProcessMouseButton(ev)
	case native.EventMotion:
		return Consumed, c.ProcessMouseMotion(ev)
	case native.EventScroll:
		return Consumed, c.ProcessMouseScroll(ev)
	case native.EventEnter, native.EventLeave:
		return Consumed, c.ProcessMouseCross(ev.Type == native.EventEnter, ev)
	case native.EventKeyPress, native.EventKeyRelease:
		return Consumed, c.ProcessKey(ev)
	case native.EventMap:
		return Forward, c.ProcessMap()
	default:
		return Forward, nil
	}
}

func (d *Dispatcher) publish(last string) {
	if d.monitor == nil {
		return
	}
	snap := d.reg.Snapshot()
	st := Status{
		Windows:   snap.Windows,
		Grabs:     snap.Grabs,
		Screens:   d.Screens(),
		Events:    d.events,
		Errors:    d.failed,
		LastEvent: last,
		LastError: d.lastErr,
	}
	if d.drag != nil {
		st.Dragging = d.drag.Active()
	}
	d.monitor.store(st)
}

// Publish stores a fresh status without an event, e.g. after windows were
// created outside dispatch.
func (d *Dispatcher) Publish() { d.publish("") }
