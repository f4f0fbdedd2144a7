// Package native is the boundary between the window-context core and the
// native windowing toolkit. The X11 adapter implements it against a live
// display; nativetest implements it in memory.
package native

// WindowID identifies a native window (an X11 XID).
type WindowID uint32

// Keycode is a hardware key code as reported by the server.
type Keycode uint8

// Keysym is an X keysym value.
type Keysym uint32

// NoSymbol is the keysym reported for an unmapped key.
const NoSymbol Keysym = 0

// State is the X11 key/button state mask that accompanies input events.
// Native platforms report the state from before the event.
type State uint16

const (
	StateShift   State = 1 << 0
	StateLock    State = 1 << 1
	StateControl State = 1 << 2
	StateMod1    State = 1 << 3
	StateMod2    State = 1 << 4
	StateMod3    State = 1 << 5
	StateMod4    State = 1 << 6
	StateMod5    State = 1 << 7
	StateButton1 State = 1 << 8
	StateButton2 State = 1 << 9
	StateButton3 State = 1 << 10
	StateButton4 State = 1 << 11
	StateButton5 State = 1 << 12

	StateButtons = StateButton1 | StateButton2 | StateButton3 | StateButton4 | StateButton5
)

// ButtonMask returns the state bit for a pointer button, or 0 for buttons
// without one.
func ButtonMask(button uint8) State {
	switch button {
	case 1:
		return StateButton1
	case 2:
		return StateButton2
	case 3:
		return StateButton3
	case 4:
		return StateButton4
	case 5:
		return StateButton5
	default:
		return 0
	}
}

// Group returns the keyboard group (layout index) encoded in the state.
func (s State) Group() int {
	return int(s>>13) & 0x3
}

// Geometry is a window rectangle in root coordinates.
type Geometry struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Screen is one physical output and the part of it not covered by panels.
type Screen struct {
	Index    int      `json:"index"`
	Name     string   `json:"name"`
	Bounds   Geometry `json:"bounds"`
	WorkArea Geometry `json:"work_area"`
	Primary  bool     `json:"primary"`
}

// FrameExtents are the window-manager decoration sizes around a window.
type FrameExtents struct {
	Left, Right, Top, Bottom int
}

// Cursor is a native cursor handle. Zero restores the parent's cursor.
type Cursor uint32

// FrameType selects the decoration of a top-level window.
type FrameType int

const (
	FrameTitled FrameType = iota
	FrameUntitled
	FrameTransparent
)

func (f FrameType) String() string {
	switch f {
	case FrameTitled:
		return "titled"
	case FrameUntitled:
		return "untitled"
	case FrameTransparent:
		return "transparent"
	default:
		return "unknown"
	}
}

// WindowType selects the window-manager role of a top-level window.
type WindowType int

const (
	TypeNormal WindowType = iota
	TypeUtility
	TypePopup
)

func (t WindowType) String() string {
	switch t {
	case TypeNormal:
		return "normal"
	case TypeUtility:
		return "utility"
	case TypePopup:
		return "popup"
	default:
		return "unknown"
	}
}

// Level is the stacking level of a top-level window.
type Level int

const (
	LevelNormal Level = iota
	LevelFloating
	LevelTopmost
)

// WindowSpec describes a native window to create.
type WindowSpec struct {
	Owner  WindowID
	Parent WindowID // non-zero for child and embedded windows
	Screen int
	Frame  FrameType
	Type   WindowType
	Bounds Geometry
	Title  string
}

// Window is a native window as seen by a window context.
type Window interface {
	ID() WindowID
	Show() error
	Hide() error
	IsVisible() bool
	Geometry() (Geometry, error)
	// SetTransientFor sets the ownership hint; 0 clears it.
	SetTransientFor(owner WindowID) error
	SetCursor(cursor Cursor) error
	SetTitle(title string) error
	SetBounds(g Geometry) error
	SetMaximized(maximized bool) error
	SetMinimized(minimized bool) error
	SetFullScreen(fullScreen bool) error
	SetModal(modal bool) error
	SetLevel(level Level) error
	Activate() error
	FrameExtents() (FrameExtents, error)
	// Destroyed reports whether the native resource is already gone.
	Destroyed() bool
	Destroy() error
}

// Pointer is the pointer device used for grabs.
type Pointer interface {
	// Grab grabs the pointer for w, or updates the cursor and event mode of
	// a grab already held. It reports false when the device is grabbed by
	// another client. With ownerEvents set, events over this process's other
	// windows are reported to them rather than to w.
	Grab(w WindowID, cursor Cursor, ownerEvents bool) bool
	Ungrab()
	// Grabbed reports whether the device is grabbed.
	Grabbed() bool
	// WindowAtPointer returns the deepest window under the pointer.
	WindowAtPointer() (WindowID, bool)
}

// Keymap resolves hardware keycodes to keysyms. Columns follow the X core
// protocol: 0/1 are the unshifted/shifted levels of group 1, 2/3 of group 2.
type Keymap interface {
	Keysym(code Keycode, column int) Keysym
}

// Toolkit creates native windows.
type Toolkit interface {
	CreateWindow(spec WindowSpec) (Window, error)
}
