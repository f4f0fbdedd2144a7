package native

// EventType classifies a native event.
type EventType int

const (
	EventButtonPress EventType = iota + 1
	EventButtonRelease
	EventMotion
	EventScroll
	EventEnter
	EventLeave
	EventKeyPress
	EventKeyRelease
	EventFocusIn
	EventFocusOut
	EventConfigure
	EventProperty
	EventWindowState
	EventExpose
	EventDamage
	EventMap
	EventUnmap
	EventDelete
	EventDestroy
	EventScreenChange
)

func (t EventType) String() string {
	switch t {
	case EventButtonPress:
		return "button-press"
	case EventButtonRelease:
		return "button-release"
	case EventMotion:
		return "motion"
	case EventScroll:
		return "scroll"
	case EventEnter:
		return "enter"
	case EventLeave:
		return "leave"
	case EventKeyPress:
		return "key-press"
	case EventKeyRelease:
		return "key-release"
	case EventFocusIn:
		return "focus-in"
	case EventFocusOut:
		return "focus-out"
	case EventConfigure:
		return "configure"
	case EventProperty:
		return "property"
	case EventWindowState:
		return "window-state"
	case EventExpose:
		return "expose"
	case EventDamage:
		return "damage"
	case EventMap:
		return "map"
	case EventUnmap:
		return "unmap"
	case EventDelete:
		return "delete"
	case EventDestroy:
		return "destroy"
	case EventScreenChange:
		return "screen-change"
	default:
		return "unknown"
	}
}

// IsPointer reports whether the event is pointer input.
func (t EventType) IsPointer() bool {
	switch t {
	case EventButtonPress, EventButtonRelease, EventMotion, EventScroll, EventEnter, EventLeave:
		return true
	}
	return false
}

// IsKey reports whether the event is keyboard input.
func (t EventType) IsKey() bool {
	return t == EventKeyPress || t == EventKeyRelease
}

// Event is a native event translated out of the wire format. Only the fields
// relevant to Type are populated.
type Event struct {
	Type   EventType
	Window WindowID
	// Root is set when Window is the root window.
	Root bool

	// Pointer events.
	Button       uint8
	X, Y         int
	RootX, RootY int
	State        State
	Scroll       ScrollDirection
	CrossingMode CrossingMode

	// Key events.
	Keycode Keycode
	Keysym  Keysym

	// Configure and expose.
	Geometry Geometry

	// Property events.
	Atom string

	// Window-state events.
	StateChanged WindowState
	StateNew     WindowState
}

// ScrollDirection is the direction of a scroll event.
type ScrollDirection int

const (
	ScrollUp ScrollDirection = iota
	ScrollDown
	ScrollLeft
	ScrollRight
)

// CrossingMode is the mode of an enter or leave notification.
type CrossingMode int

const (
	CrossingNormal CrossingMode = iota
	CrossingGrab
	CrossingUngrab
)

// WindowState is a set of window-manager state flags.
type WindowState int

const (
	WindowIconified WindowState = 1 << iota
	WindowMaximized
	WindowFullScreen
	WindowAbove
)

func (s WindowState) Has(f WindowState) bool {
	return s&f != 0
}
