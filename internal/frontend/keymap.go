// Package frontend contains the key layout shared by all frontends.
package frontend

import "unicode"

// QWERTY maps the 4x4 block 1234/QWER/ASDF/ZXCV of a QWERTY keyboard to the
// keys of the CHIP-8 keypad layout 123C/456D/789E/A0BF.
var QWERTY = map[rune]byte{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// KeyIndex returns the keypad index of a character, ignoring its case.
func KeyIndex(ch rune) (byte, bool) {
	index, ok := QWERTY[unicode.ToLower(ch)]
	return index, ok
}
