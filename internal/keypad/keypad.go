// Package keypad models the 16 key hexadecimal CHIP-8 keypad.
package keypad

// Count is the number of keys.
const Count = 16

// Keypad holds the pressed state of all keys. Key indexes are masked
// to 4 bits.
type Keypad struct {
	keys [Count]bool
}

// Set sets the pressed state of a key.
func (k *Keypad) Set(index byte, pressed bool) {
	k.keys[index&0x0F] = pressed
}

// Clear releases all keys.
func (k *Keypad) Clear() {
	k.keys = [Count]bool{}
}

// Pressed returns whether a key is pressed.
func (k *Keypad) Pressed(index byte) bool {
	return k.keys[index&0x0F]
}

// FirstPressed returns the lowest index of all pressed keys.
func (k *Keypad) FirstPressed() (byte, bool) {
	for i, pressed := range k.keys {
		if pressed {
			return byte(i), true
		}
	}
	return 0, false
}
