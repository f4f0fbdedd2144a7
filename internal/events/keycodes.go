package events

// KeyCode is a normalized key code.
type KeyCode int

const (
	KeyUndefined KeyCode = 0x0

	KeyEnter     KeyCode = '\n'
	KeyBackspace KeyCode = '\b'
	KeyTab       KeyCode = '\t'
	KeyClear     KeyCode = 0x0C
	KeyPause     KeyCode = 0x13
	KeyEscape    KeyCode = 0x1B
	KeySpace     KeyCode = 0x20
	KeyDelete    KeyCode = 0x7F
	KeyPrint     KeyCode = 0x9A
	KeyInsert    KeyCode = 0x9B
	KeyHelp      KeyCode = 0x9C

	KeyShift       KeyCode = 0x10
	KeyControl     KeyCode = 0x11
	KeyAlt         KeyCode = 0x12
	KeyAltGraph    KeyCode = 0xFF7E
	KeyWindows     KeyCode = 0x020C
	KeyContextMenu KeyCode = 0x020D
	KeyCapsLock    KeyCode = 0x14
	KeyNumLock     KeyCode = 0x90
	KeyScrollLock  KeyCode = 0x91
	KeyCommand     KeyCode = 0x0300

	KeyPageUp   KeyCode = 0x21
	KeyPageDown KeyCode = 0x22
	KeyEnd      KeyCode = 0x23
	KeyHome     KeyCode = 0x24
	KeyLeft     KeyCode = 0x25
	KeyUp       KeyCode = 0x26
	KeyRight    KeyCode = 0x27
	KeyDown     KeyCode = 0x28

	KeyComma        KeyCode = 0x2C
	KeyMinus        KeyCode = 0x2D
	KeyPeriod       KeyCode = 0x2E
	KeySlash        KeyCode = 0x2F
	KeySemicolon    KeyCode = 0x3B
	KeyEquals       KeyCode = 0x3D
	KeyOpenBracket  KeyCode = 0x5B
	KeyBackslash    KeyCode = 0x5C
	KeyCloseBracket KeyCode = 0x5D

	KeyMultiply  KeyCode = 0x6A
	KeyAdd       KeyCode = 0x6B
	KeySeparator KeyCode = 0x6C
	KeySubtract  KeyCode = 0x6D
	KeyDecimal   KeyCode = 0x6E
	KeyDivide    KeyCode = 0x6F

	KeyAmpersand   KeyCode = 0x96
	KeyAsterisk    KeyCode = 0x97
	KeyDoubleQuote KeyCode = 0x98
	KeyLess        KeyCode = 0x99
	KeyGreater     KeyCode = 0xA0
	KeyBraceLeft   KeyCode = 0xA1
	KeyBraceRight  KeyCode = 0xA2
	KeyBackQuote   KeyCode = 0xC0
	KeyQuote       KeyCode = 0xDE

	KeyAt               KeyCode = 0x0200
	KeyColon            KeyCode = 0x0201
	KeyCircumflex       KeyCode = 0x0202
	KeyDollar           KeyCode = 0x0203
	KeyEuroSign         KeyCode = 0x0204
	KeyExclamation      KeyCode = 0x0205
	KeyInvExclamation   KeyCode = 0x0206
	KeyLeftParenthesis  KeyCode = 0x0207
	KeyNumberSign       KeyCode = 0x0208
	KeyPlus             KeyCode = 0x0209
	KeyRightParenthesis KeyCode = 0x020A
	KeyUnderscore       KeyCode = 0x020B

	Key0 KeyCode = 0x30
	Key1 KeyCode = 0x31
	Key2 KeyCode = 0x32
	Key3 KeyCode = 0x33
	Key4 KeyCode = 0x34
	Key5 KeyCode = 0x35
	Key6 KeyCode = 0x36
	Key7 KeyCode = 0x37
	Key8 KeyCode = 0x38
	Key9 KeyCode = 0x39

	KeyA KeyCode = 0x41
	KeyB KeyCode = 0x42
	KeyC KeyCode = 0x43
	KeyD KeyCode = 0x44
	KeyE KeyCode = 0x45
	KeyF KeyCode = 0x46
	KeyG KeyCode = 0x47
	KeyH KeyCode = 0x48
	KeyI KeyCode = 0x49
	KeyJ KeyCode = 0x4A
	KeyK KeyCode = 0x4B
	KeyL KeyCode = 0x4C
	KeyM KeyCode = 0x4D
	KeyN KeyCode = 0x4E
	KeyO KeyCode = 0x4F
	KeyP KeyCode = 0x50
	KeyQ KeyCode = 0x51
	KeyR KeyCode = 0x52
	KeyS KeyCode = 0x53
	KeyT KeyCode = 0x54
	KeyU KeyCode = 0x55
	KeyV KeyCode = 0x56
	KeyW KeyCode = 0x57
	KeyX KeyCode = 0x58
	KeyY KeyCode = 0x59
	KeyZ KeyCode = 0x5A

	KeyNumpad0 KeyCode = 0x60
	KeyNumpad1 KeyCode = 0x61
	KeyNumpad2 KeyCode = 0x62
	KeyNumpad3 KeyCode = 0x63
	KeyNumpad4 KeyCode = 0x64
	KeyNumpad5 KeyCode = 0x65
	KeyNumpad6 KeyCode = 0x66
	KeyNumpad7 KeyCode = 0x67
	KeyNumpad8 KeyCode = 0x68
	KeyNumpad9 KeyCode = 0x69

	KeyF1  KeyCode = 0x70
	KeyF2  KeyCode = 0x71
	KeyF3  KeyCode = 0x72
	KeyF4  KeyCode = 0x73
	KeyF5  KeyCode = 0x74
	KeyF6  KeyCode = 0x75
	KeyF7  KeyCode = 0x76
	KeyF8  KeyCode = 0x77
	KeyF9  KeyCode = 0x78
	KeyF10 KeyCode = 0x79
	KeyF11 KeyCode = 0x7A
	KeyF12 KeyCode = 0x7B
	KeyF13 KeyCode = 0xF000
	KeyF14 KeyCode = 0xF001
	KeyF15 KeyCode = 0xF002
	KeyF16 KeyCode = 0xF003
	KeyF17 KeyCode = 0xF004
	KeyF18 KeyCode = 0xF005
	KeyF19 KeyCode = 0xF006
	KeyF20 KeyCode = 0xF007
	KeyF21 KeyCode = 0xF008
	KeyF22 KeyCode = 0xF009
	KeyF23 KeyCode = 0xF00A
	KeyF24 KeyCode = 0xF00B
)
