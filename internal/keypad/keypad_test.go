package keypad

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestKeypad(t *testing.T) {
	var k Keypad

	_, ok := k.FirstPressed()
	assert.False(t, ok)

	k.Set(0xB, true)
	k.Set(0x3, true)
	assert.True(t, k.Pressed(0xB))
	assert.False(t, k.Pressed(0xA))

	key, ok := k.FirstPressed()
	assert.True(t, ok)
	assert.Equal(t, byte(0x3), key)

	k.Set(0x3, false)
	key, ok = k.FirstPressed()
	assert.True(t, ok)
	assert.Equal(t, byte(0xB), key)

	k.Clear()
	_, ok = k.FirstPressed()
	assert.False(t, ok)
}

func TestKeypad_MasksIndex(t *testing.T) {
	var k Keypad
	k.Set(0x1F, true)
	assert.True(t, k.Pressed(0xF))
	assert.True(t, k.Pressed(0xFF))
}
