package term

import "github.com/retroenv/retrochip8/internal/keypad"

// defaultHoldFrames is the number of frames that a key stays pressed after
// a key event. Terminals report key repeats but no releases.
const defaultHoldFrames = 6

// keyLatch keeps keys pressed for a number of frames after they were typed.
type keyLatch struct {
	hold   int
	frames [keypad.Count]int
}

func newKeyLatch(hold int) keyLatch {
	if hold <= 0 {
		hold = defaultHoldFrames
	}
	return keyLatch{hold: hold}
}

func (l *keyLatch) press(index byte) {
	l.frames[index&0x0F] = l.hold
}

// next returns the held keys for the current frame and ages all keys by
// one frame.
func (l *keyLatch) next() [keypad.Count]bool {
	var keys [keypad.Count]bool
	for i, remaining := range l.frames {
		if remaining > 0 {
			keys[i] = true
			l.frames[i]--
		}
	}
	return keys
}
