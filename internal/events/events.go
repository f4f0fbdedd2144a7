// Package events defines the normalized event vocabulary delivered to
// window and view peers. The numeric values are stable and independent of
// the native toolkit.
package events

// WindowEvent is a window lifecycle or focus notification.
type WindowEvent int

const (
	WindowResize   WindowEvent = 511
	WindowMove     WindowEvent = 512
	WindowClose    WindowEvent = 521
	WindowDestroy  WindowEvent = 522
	WindowMinimize WindowEvent = 531
	WindowMaximize WindowEvent = 532
	WindowRestore  WindowEvent = 533

	FocusLost           WindowEvent = 541
	FocusGained         WindowEvent = 542
	FocusGainedForward  WindowEvent = 543
	FocusGainedBackward WindowEvent = 544
	FocusDisabled       WindowEvent = 545
	FocusUngrab         WindowEvent = 546
	InitAccessibility   WindowEvent = 551
)

// String returns the string representation of the window event
func (e WindowEvent) String() string {
	switch e {
	case WindowResize:
		return "resize"
	case WindowMove:
		return "move"
	case WindowClose:
		return "close"
	case WindowDestroy:
		return "destroy"
	case WindowMinimize:
		return "minimize"
	case WindowMaximize:
		return "maximize"
	case WindowRestore:
		return "restore"
	case FocusLost:
		return "focus-lost"
	case FocusGained:
		return "focus-gained"
	case FocusGainedForward:
		return "focus-gained-forward"
	case FocusGainedBackward:
		return "focus-gained-backward"
	case FocusDisabled:
		return "focus-disabled"
	case FocusUngrab:
		return "focus-ungrab"
	case InitAccessibility:
		return "init-accessibility"
	default:
		return "unknown"
	}
}

// MouseButton identifies the button reported with a mouse event.
type MouseButton int

const (
	ButtonNone  MouseButton = 211
	ButtonLeft  MouseButton = 212
	ButtonRight MouseButton = 213
	ButtonOther MouseButton = 214
)

func (b MouseButton) String() string {
	switch b {
	case ButtonNone:
		return "none"
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonOther:
		return "other"
	default:
		return "unknown"
	}
}

// MouseKind is the kind of a mouse event.
type MouseKind int

const (
	MouseDown  MouseKind = 221
	MouseUp    MouseKind = 222
	MouseDrag  MouseKind = 223
	MouseMove  MouseKind = 224
	MouseEnter MouseKind = 225
	MouseExit  MouseKind = 226
	// MouseClick is synthesized by the application layer, never by the shim.
	MouseClick MouseKind = 227
	// MouseWheel is internal; peers observe scroll events instead.
	MouseWheel MouseKind = 228
)

func (k MouseKind) String() string {
	switch k {
	case MouseDown:
		return "down"
	case MouseUp:
		return "up"
	case MouseDrag:
		return "drag"
	case MouseMove:
		return "move"
	case MouseEnter:
		return "enter"
	case MouseExit:
		return "exit"
	case MouseClick:
		return "click"
	case MouseWheel:
		return "wheel"
	default:
		return "unknown"
	}
}

// KeyKind is the kind of a key event.
type KeyKind int

const (
	KeyPress   KeyKind = 111
	KeyRelease KeyKind = 112
	KeyTyped   KeyKind = 113
)

func (k KeyKind) String() string {
	switch k {
	case KeyPress:
		return "press"
	case KeyRelease:
		return "release"
	case KeyTyped:
		return "typed"
	default:
		return "unknown"
	}
}

// Modifiers is the normalized modifier word. Mouse button bits are layered
// into the same word as the keyboard modifiers.
type Modifiers int

const (
	ModifierNone     Modifiers = 0
	ModifierShift    Modifiers = 1 << 0
	ModifierFunction Modifiers = 1 << 1
	ModifierControl  Modifiers = 1 << 2
	ModifierAlt      Modifiers = 1 << 3
	ModifierWindows  Modifiers = 1 << 4

	ModifierButtonPrimary   Modifiers = 1 << 5
	ModifierButtonSecondary Modifiers = 1 << 6
	ModifierButtonMiddle    Modifiers = 1 << 7

	// ModifierOption and ModifierCommand are the macOS names for Alt and Windows.
	ModifierOption  = ModifierAlt
	ModifierCommand = ModifierWindows

	ModifierButtons = ModifierButtonPrimary | ModifierButtonSecondary | ModifierButtonMiddle
)

// Has reports whether all bits of m2 are set in m.
func (m Modifiers) Has(m2 Modifiers) bool {
	return m&m2 == m2
}

// AnyButton reports whether any mouse button bit is set.
func (m Modifiers) AnyButton() bool {
	return m&ModifierButtons != 0
}
