// Package timer implements the CHIP-8 delay and sound countdown timers.
package timer

import "time"

// Period is the interval at which hosts should call Tick.
const Period = time.Second / 60

// Timers holds the delay and sound timer values. Both count down to zero
// at 60 Hz independently of the instruction rate.
type Timers struct {
	Delay byte
	Sound byte
}

// Tick decrements each nonzero timer by one.
func (t *Timers) Tick() {
	if t.Delay > 0 {
		t.Delay--
	}
	if t.Sound > 0 {
		t.Sound--
	}
}

// SoundActive returns whether the buzzer should be sounding.
func (t *Timers) SoundActive() bool {
	return t.Sound > 0
}

// Reset sets both timers to zero.
func (t *Timers) Reset() {
	t.Delay = 0
	t.Sound = 0
}
