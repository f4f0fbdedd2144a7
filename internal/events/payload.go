package events

// Mouse is the payload of a normalized mouse notification.
type Mouse struct {
	Kind         MouseKind
	Button       MouseButton
	X, Y         int
	RootX, RootY int
	Modifiers    Modifiers
	PopupTrigger bool
	Synthesized  bool
}

// Scroll is the payload of a normalized scroll notification. Deltas are unit
// steps; the multipliers scale them into pixels.
type Scroll struct {
	X, Y           int
	RootX, RootY   int
	DeltaX, DeltaY float64
	Modifiers      Modifiers
	Lines          int
	Chars          int
	DefaultLines   int
	DefaultChars   int
	XMultiplier    float64
	YMultiplier    float64
}

// Key is the payload of a normalized key notification.
type Key struct {
	Kind      KeyKind
	Code      KeyCode
	Chars     []rune
	Modifiers Modifiers
}

// CharCount is the number of characters carried by the event.
func (k Key) CharCount() int {
	return len(k.Chars)
}

// Rect is a damaged region in window coordinates.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Action is a drag-and-drop action bit set.
type Action int

const (
	ActionNone Action = 0
	ActionCopy Action = 1 << 0
	ActionMove Action = 1 << 1
	ActionLink Action = 1 << 2

	ActionAny = ActionCopy | ActionMove | ActionLink
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionCopy:
		return "copy"
	case ActionMove:
		return "move"
	case ActionLink:
		return "link"
	case ActionAny:
		return "any"
	default:
		return "mixed"
	}
}
