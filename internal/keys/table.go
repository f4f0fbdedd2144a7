package keys

import (
	"strconv"

	"github.com/1broseidon/gwk/internal/events"
	"github.com/1broseidon/gwk/internal/native"
)

// Entry maps one X keysym to a normalized key code.
type Entry struct {
	Keysym native.Keysym
	Name   string
	Code   events.KeyCode
}

// keyTable is ordered: the first entry for a code is the keysym the reverse
// lookup returns for it.
var keyTable = []Entry{
	{0xff0d, "Return", events.KeyEnter},
	{0xff08, "BackSpace", events.KeyBackspace},
	{0xff09, "Tab", events.KeyTab},
	{0xff0b, "Clear", events.KeyClear},
	{0xff13, "Pause", events.KeyPause},
	{0xff1b, "Escape", events.KeyEscape},
	{0x0020, "space", events.KeySpace},
	{0xffff, "Delete", events.KeyDelete},
	{0xff61, "Print", events.KeyPrint},
	{0xff63, "Insert", events.KeyInsert},
	{0xff6a, "Help", events.KeyHelp},

	{0xffe1, "Shift_L", events.KeyShift},
	{0xffe2, "Shift_R", events.KeyShift},
	{0xffe3, "Control_L", events.KeyControl},
	{0xffe4, "Control_R", events.KeyControl},
	{0xffe9, "Alt_L", events.KeyAlt},
	{0xffea, "Alt_R", events.KeyAltGraph},
	{0xfe03, "ISO_Level3_Shift", events.KeyAltGraph},
	{0xffeb, "Super_L", events.KeyWindows},
	{0xffec, "Super_R", events.KeyWindows},
	{0xff67, "Menu", events.KeyContextMenu},
	{0xffe5, "Caps_Lock", events.KeyCapsLock},
	{0xff7f, "Num_Lock", events.KeyNumLock},
	{0xff14, "Scroll_Lock", events.KeyScrollLock},

	// Prior and Next share their keysym values with Page_Up and Page_Down.
	{0xff55, "Page_Up", events.KeyPageUp},
	{0xff56, "Page_Down", events.KeyPageDown},
	{0xff57, "End", events.KeyEnd},
	{0xff50, "Home", events.KeyHome},
	{0xff51, "Left", events.KeyLeft},
	{0xff53, "Right", events.KeyRight},
	{0xff52, "Up", events.KeyUp},
	{0xff54, "Down", events.KeyDown},

	{0x002c, "comma", events.KeyComma},
	{0x002d, "minus", events.KeyMinus},
	{0x002e, "period", events.KeyPeriod},
	{0x002f, "slash", events.KeySlash},
	{0x003b, "semicolon", events.KeySemicolon},
	{0x003d, "equal", events.KeyEquals},
	{0x005b, "bracketleft", events.KeyOpenBracket},
	{0x005d, "bracketright", events.KeyCloseBracket},
	{0x005c, "backslash", events.KeyBackslash},
	{0x007c, "bar", events.KeyBackslash},
	{0xffaa, "KP_Multiply", events.KeyMultiply},
	{0xffab, "KP_Add", events.KeyAdd},
	{0xffac, "KP_Separator", events.KeySeparator},
	{0xffad, "KP_Subtract", events.KeySubtract},
	{0xffae, "KP_Decimal", events.KeyDecimal},

	{0x0027, "apostrophe", events.KeyQuote},
	{0x0060, "grave", events.KeyBackQuote},

	{0x0026, "ampersand", events.KeyAmpersand},
	{0x002a, "asterisk", events.KeyAsterisk},
	{0x0022, "quotedbl", events.KeyDoubleQuote},
	{0x003c, "less", events.KeyLess},
	{0x003e, "greater", events.KeyGreater},
	{0x007b, "braceleft", events.KeyBraceLeft},
	{0x007d, "braceright", events.KeyBraceRight},
	{0x0040, "at", events.KeyAt},
	{0x003a, "colon", events.KeyColon},
	{0x005e, "asciicircum", events.KeyCircumflex},
	{0x0024, "dollar", events.KeyDollar},
	{0x20ac, "EuroSign", events.KeyEuroSign},
	{0x0021, "exclam", events.KeyExclamation},
	{0x00a1, "exclamdown", events.KeyInvExclamation},
	{0x0028, "parenleft", events.KeyLeftParenthesis},
	{0x0029, "parenright", events.KeyRightParenthesis},
	{0x0023, "numbersign", events.KeyNumberSign},
	{0x002b, "plus", events.KeyPlus},
	{0x005f, "underscore", events.KeyUnderscore},

	{0xff8d, "KP_Enter", events.KeyEnter},
	{0xff95, "KP_Home", events.KeyHome},
	{0xff96, "KP_Left", events.KeyLeft},
	{0xff97, "KP_Up", events.KeyUp},
	{0xff98, "KP_Right", events.KeyRight},
	{0xff99, "KP_Down", events.KeyDown},
	{0xff9a, "KP_Page_Up", events.KeyPageUp},
	{0xff9b, "KP_Page_Down", events.KeyPageDown},
	{0xff9c, "KP_End", events.KeyEnd},
	{0xff9e, "KP_Insert", events.KeyInsert},
	{0xff9f, "KP_Delete", events.KeyDelete},
	{0xffaf, "KP_Divide", events.KeyDivide},
	{0xff9d, "KP_Begin", events.KeyClear},
}

func init() {
	for i := 0; i < 10; i++ {
		keyTable = append(keyTable, Entry{
			Keysym: native.Keysym(0x30 + i),
			Name:   string(rune('0' + i)),
			Code:   events.Key0 + events.KeyCode(i),
		})
	}
	for i := 0; i < 26; i++ {
		keyTable = append(keyTable, Entry{
			Keysym: native.Keysym(0x61 + i),
			Name:   string(rune('a' + i)),
			Code:   events.KeyA + events.KeyCode(i),
		})
	}
	for i := 0; i < 10; i++ {
		keyTable = append(keyTable, Entry{
			Keysym: native.Keysym(0xffb0 + i),
			Name:   "KP_" + string(rune('0'+i)),
			Code:   events.KeyNumpad0 + events.KeyCode(i),
		})
	}
	for i := 0; i < 24; i++ {
		code := events.KeyF1 + events.KeyCode(i)
		if i >= 12 {
			code = events.KeyF13 + events.KeyCode(i-12)
		}
		keyTable = append(keyTable, Entry{
			Keysym: native.Keysym(0xffbe + i),
			Name:   "F" + strconv.Itoa(i+1),
			Code:   code,
		})
	}
}

