// Package keymap maps the keys of a QWERTY keyboard to the hexadecimal keypad.
//
// The left block of the keyboard mirrors the physical keypad layout:
//
//	1 2 3 4      1 2 3 C
//	Q W E R  ->  4 5 6 D
//	A S D F      7 8 9 E
//	Z X C V      A 0 B F
package keymap

import "unicode"

// Binding connects a keyboard character to a keypad key.
type Binding struct {
	Char rune
	Key  int
}

// Bindings lists the keypad layout row by row.
var Bindings = [16]Binding{
	{'1', 0x1}, {'2', 0x2}, {'3', 0x3}, {'4', 0xC},
	{'q', 0x4}, {'w', 0x5}, {'e', 0x6}, {'r', 0xD},
	{'a', 0x7}, {'s', 0x8}, {'d', 0x9}, {'f', 0xE},
	{'z', 0xA}, {'x', 0x0}, {'c', 0xB}, {'v', 0xF},
}

// KeyForRune returns the keypad key bound to the character, letters are case insensitive.
func KeyForRune(r rune) (int, bool) {
	r = unicode.ToLower(r)
	for _, b := range Bindings {
		if b.Char == r {
			return b.Key, true
		}
	}
	return 0, false
}
