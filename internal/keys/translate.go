// Package keys translates X keysyms and state masks into the normalized key
// vocabulary and back.
package keys

import (
	"sync"

	"github.com/1broseidon/gwk/internal/events"
	"github.com/1broseidon/gwk/internal/native"
)

var (
	mapsOnce  sync.Once
	toCode    map[native.Keysym]events.KeyCode
	toKeysym  map[events.KeyCode]native.Keysym
	codeNames map[events.KeyCode]string
)

func initMaps() {
	mapsOnce.Do(func() {
		toCode = make(map[native.Keysym]events.KeyCode, len(keyTable))
		toKeysym = make(map[events.KeyCode]native.Keysym, len(keyTable))
		codeNames = make(map[events.KeyCode]string, len(keyTable))
		for _, e := range keyTable {
			toCode[e.Keysym] = e.Code
			if _, ok := toKeysym[e.Code]; !ok {
				toKeysym[e.Code] = e.Keysym
				codeNames[e.Code] = e.Name
			}
		}
	})
}

// Table returns a copy of the keysym table in lookup order.
func Table() []Entry {
	out := make([]Entry, len(keyTable))
	copy(out, keyTable)
	return out
}

// KeysymToCode maps a keysym to its normalized code, or KeyUndefined.
func KeysymToCode(ks native.Keysym) events.KeyCode {
	initMaps()
	return toCode[ks]
}

// CodeToKeysym is the reverse lookup used to synthesize native key events.
// It reports false when the code has no native equivalent.
func CodeToKeysym(code events.KeyCode) (native.Keysym, bool) {
	initMaps()
	ks, ok := toKeysym[code]
	return ks, ok
}

// CodeName returns the keysym name of the canonical keysym for code.
func CodeName(code events.KeyCode) string {
	initMaps()
	if name, ok := codeNames[code]; ok {
		return name
	}
	return "undefined"
}

// Translate resolves a hardware keycode to a normalized code. Only NumLock
// and the active group are applied, so shifted levels resolve to the same
// code as their base key. Keys the active layout does not map (non-Latin
// layouts) fall back to the first level of the first group.
func Translate(km native.Keymap, code native.Keycode, state native.State) events.KeyCode {
	if km == nil {
		return events.KeyUndefined
	}
	column := state.Group() * 2
	ks := km.Keysym(code, column)
	if state&native.StateMod2 != 0 {
		if shifted := km.Keysym(code, column+1); isKeypad(shifted) {
			ks = shifted
		}
	}
	if key := KeysymToCode(ks); key != events.KeyUndefined {
		return key
	}
	return KeysymToCode(km.Keysym(code, 0))
}

func isKeypad(ks native.Keysym) bool {
	return ks >= 0xff80 && ks <= 0xffbd
}

// KeyModifier returns the modifier bit a key contributes while held.
func KeyModifier(code events.KeyCode) events.Modifiers {
	switch code {
	case events.KeyShift:
		return events.ModifierShift
	case events.KeyAlt, events.KeyAltGraph:
		return events.ModifierAlt
	case events.KeyControl:
		return events.ModifierControl
	case events.KeyWindows:
		return events.ModifierWindows
	default:
		return events.ModifierNone
	}
}

// Modifiers translates an X state mask. Mod1 is Alt and Mod4 is Super; bits
// with no normalized equivalent are dropped.
func Modifiers(state native.State) events.Modifiers {
	var m events.Modifiers
	if state&native.StateShift != 0 {
		m |= events.ModifierShift
	}
	if state&native.StateControl != 0 {
		m |= events.ModifierControl
	}
	if state&native.StateMod1 != 0 {
		m |= events.ModifierAlt
	}
	if state&native.StateMod4 != 0 {
		m |= events.ModifierWindows
	}
	if state&native.StateButton1 != 0 {
		m |= events.ModifierButtonPrimary
	}
	if state&native.StateButton2 != 0 {
		m |= events.ModifierButtonMiddle
	}
	if state&native.StateButton3 != 0 {
		m |= events.ModifierButtonSecondary
	}
	return m
}

// State is the inverse of Modifiers.
func State(m events.Modifiers) native.State {
	var s native.State
	if m&events.ModifierShift != 0 {
		s |= native.StateShift
	}
	if m&events.ModifierControl != 0 {
		s |= native.StateControl
	}
	if m&events.ModifierAlt != 0 {
		s |= native.StateMod1
	}
	if m&events.ModifierWindows != 0 {
		s |= native.StateMod4
	}
	if m&events.ModifierButtonPrimary != 0 {
		s |= native.StateButton1
	}
	if m&events.ModifierButtonMiddle != 0 {
		s |= native.StateButton2
	}
	if m&events.ModifierButtonSecondary != 0 {
		s |= native.StateButton3
	}
	return s
}
