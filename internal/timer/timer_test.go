package timer

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestTimers_Tick(t *testing.T) {
	tests := []struct {
		name          string
		delay, sound  byte
		expectedDelay byte
		expectedSound byte
	}{
		{"both running", 10, 5, 9, 4},
		{"delay at zero", 0, 1, 0, 0},
		{"sound at zero", 1, 0, 0, 0},
		{"max values", 0xFF, 0xFF, 0xFE, 0xFE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timers := Timers{Delay: tt.delay, Sound: tt.sound}
			timers.Tick()
			assert.Equal(t, tt.expectedDelay, timers.Delay)
			assert.Equal(t, tt.expectedSound, timers.Sound)
		})
	}
}

func TestTimers_SoundActive(t *testing.T) {
	timers := Timers{Sound: 1}
	assert.True(t, timers.SoundActive())

	timers.Tick()
	assert.False(t, timers.SoundActive())

	timers.Tick()
	assert.Equal(t, byte(0), timers.Sound)
}

func TestTimers_Reset(t *testing.T) {
	timers := Timers{Delay: 3, Sound: 4}
	timers.Reset()
	assert.Equal(t, Timers{}, timers)
}
