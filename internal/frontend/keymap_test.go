package frontend

import (
	"testing"

	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrogolib/assert"
)

func TestQWERTY_CoversKeypad(t *testing.T) {
	assert.Equal(t, keypad.Count, len(QWERTY))

	var seen [keypad.Count]bool
	for _, index := range QWERTY {
		assert.False(t, seen[index])
		seen[index] = true
	}
}

func TestKeyIndex(t *testing.T) {
	tests := []struct {
		ch       rune
		expected byte
		ok       bool
	}{
		{'1', 0x1, true},
		{'4', 0xC, true},
		{'x', 0x0, true},
		{'X', 0x0, true},
		{'V', 0xF, true},
		{'p', 0, false},
		{' ', 0, false},
	}

	for _, tt := range tests {
		index, ok := KeyIndex(tt.ch)
		assert.Equal(t, tt.ok, ok)
		assert.Equal(t, tt.expected, index)
	}
}
