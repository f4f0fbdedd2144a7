package window

import (
	"github.com/1broseidon/gwk/internal/events"
	"github.com/1broseidon/gwk/internal/native"
)

// WindowPeer is the embedding application's window object. A context holds
// it without owning it and drops it during teardown. A non-nil error from
// any callback aborts the rest of the handler and is returned to the caller
// of the dispatch entry point.
type WindowPeer interface {
	OnDestroy() error
	OnClose() error
	OnStateChange(state events.WindowEvent) error
	OnFocusChange(kind events.WindowEvent) error
	OnFocusDisabled() error
	OnFocusUngrab() error
	OnMove(x, y int) error
	OnResize(width, height int) error
	// IsEnabled reports whether the application currently accepts input
	// for the window.
	IsEnabled() bool
}

// ViewPeer is the embedding application's content object.
type ViewPeer interface {
	OnRepaint(x, y, width, height int) error
	OnMouse(ev events.Mouse) error
	OnMenuRequest(x, y, rootX, rootY int, keyboardTrigger bool) error
	OnScroll(ev events.Scroll) error
	OnKey(ev events.Key) error
	OnResize(width, height int) error
}

// DragPeer is implemented by views that accept drops.
type DragPeer interface {
	OnDragEnter(x, y, rootX, rootY int, actions events.Action) (events.Action, error)
	OnDragOver(x, y, rootX, rootY int, actions events.Action) (events.Action, error)
	OnDragLeave() error
	OnDragDrop(x, y, rootX, rootY int, action events.Action) (events.Action, error)
}

// DragSourcePeer is implemented by views that start drags.
type DragSourcePeer interface {
	OnDragEnd(action events.Action) error
}

// IMEFilter is an input method attached to a context.
type IMEFilter interface {
	// Filter reports whether the input method consumed the key event.
	Filter(ev native.Event) bool
	Focus(in bool)
	Reset()
}
