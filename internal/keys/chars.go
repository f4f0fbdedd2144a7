package keys

import "github.com/1broseidon/gwk/internal/native"

// KeysymRune returns the printable character a keysym produces, or 0.
func KeysymRune(ks native.Keysym) rune {
	switch {
	case ks >= 0x20 && ks <= 0x7e, ks >= 0xa0 && ks <= 0xff:
		// Latin-1 keysyms equal their code points.
		return rune(ks)
	case ks&0xff000000 == 0x01000000:
		return rune(ks & 0x00ffffff)
	case ks >= 0xffb0 && ks <= 0xffb9:
		return rune('0' + (ks - 0xffb0))
	case ks == 0x20ac:
		return '€'
	}
	switch ks {
	case 0xff80:
		return ' '
	case 0xffaa:
		return '*'
	case 0xffab:
		return '+'
	case 0xffac:
		return ','
	case 0xffad:
		return '-'
	case 0xffae:
		return '.'
	case 0xffaf:
		return '/'
	case 0xffbd:
		return '='
	}
	return 0
}

// fixupTyped supplies control characters for editing keys that have no
// printable form.
func fixupTyped(r rune, ks native.Keysym) rune {
	if r != 0 {
		return r
	}
	switch ks {
	case 0xff08:
		return '\b'
	case 0xff09:
		return '\t'
	case 0xff0a:
		return '\n'
	case 0xff0b:
		return '\v'
	case 0xff0d, 0xff8d:
		return '\r'
	case 0xff1b:
		return '\033'
	case 0xffff:
		return '\177'
	}
	return 0
}

// ResolveChar returns the character a key press types. With Control held a
// letter folds to its control code ('a' and 'A' both give 1).
func ResolveChar(ks native.Keysym, state native.State) rune {
	r := KeysymRune(ks)
	if state&native.StateControl != 0 {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		if r >= 'a' && r <= 'z' {
			return r - 'a' + 1
		}
	}
	return fixupTyped(r, ks)
}
