// Package runner drives a machine at a fixed frame rate and connects it to
// a frontend for input and output.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/timer"
	"github.com/retroenv/retrogolib/log"
)

// DefaultCyclesPerFrame is the number of instructions executed per frame.
const DefaultCyclesPerFrame = 10

// Input is the state of the host input at the start of a frame.
type Input struct {
	Keys [keypad.Count]bool
	Quit bool
}

// Frontend presents frames and reports input.
type Frontend interface {
	Poll() (Input, error)
	Present(frame []uint32) error
	Close() error
}

// SoundIndicator is implemented by frontends that show whether the sound
// timer is active.
type SoundIndicator interface {
	SetSound(active bool) error
}

// Machine is the part of the interpreter that the runner drives.
type Machine interface {
	Step() error
	TickTimers()
	SetKey(index byte, pressed bool)
	ClearKeys()
	Display() *display.Display
	SoundActive() bool
}

// Options configures a Runner.
type Options struct {
	CyclesPerFrame int
	MaxFrames      int // 0 runs until quit
}

// Runner executes frames of a machine.
type Runner struct {
	logger   *log.Logger
	machine  Machine
	frontend Frontend
	opts     Options

	lastTick time.Time
	frames   int
	sound    bool
}

// New returns a runner for the machine and frontend.
func New(logger *log.Logger, machine Machine, frontend Frontend, opts Options) *Runner {
	if opts.CyclesPerFrame <= 0 {
		opts.CyclesPerFrame = DefaultCyclesPerFrame
	}
	return &Runner{
		logger:   logger,
		machine:  machine,
		frontend: frontend,
		opts:     opts,
	}
}

// Run executes frames at 60 Hz until the context is cancelled, the frontend
// requests to quit, the frame limit is reached or the machine faults.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(timer.Period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("running machine: %w", ctx.Err())

		case now := <-ticker.C:
			quit, err := r.RunFrame(now)
			if err != nil {
				return err
			}
			if quit {
				r.logger.Debug("Frontend requested quit", log.Int("frames", r.frames))
				return nil
			}
			if r.opts.MaxFrames > 0 && r.frames >= r.opts.MaxFrames {
				r.logger.Debug("Frame limit reached", log.Int("frames", r.frames))
				return nil
			}
		}
	}
}

// RunFrame polls the input, ticks the timers if a timer period has passed
// since the last tick, executes the configured number of instructions and
// presents the screen if it changed. The first frame only starts the timer
// clock.
func (r *Runner) RunFrame(now time.Time) (bool, error) {
	input, err := r.frontend.Poll()
	if err != nil {
		return false, fmt.Errorf("polling input: %w", err)
	}
	if input.Quit {
		return true, nil
	}

	r.machine.ClearKeys()
	for i, pressed := range input.Keys {
		if pressed {
			r.machine.SetKey(byte(i), true)
		}
	}

	r.tickTimers(now)

	for range r.opts.CyclesPerFrame {
		if err := r.machine.Step(); err != nil {
			return false, fmt.Errorf("executing frame %d: %w", r.frames, err)
		}
	}

	if scr := r.machine.Display(); scr.Dirty() {
		if err := r.frontend.Present(scr.TakeFrame()); err != nil {
			return false, fmt.Errorf("presenting frame: %w", err)
		}
	}

	if err := r.updateSound(); err != nil {
		return false, err
	}

	r.frames++
	return false, nil
}

// tickTimers advances the timer clock on a fixed grid of timer periods so
// that late frames do not accumulate drift. A clock that fell more than a
// period behind is resynchronized instead of ticking repeatedly.
func (r *Runner) tickTimers(now time.Time) {
	if r.lastTick.IsZero() {
		r.lastTick = now
		return
	}
	if now.Sub(r.lastTick) < timer.Period {
		return
	}

	r.machine.TickTimers()
	r.lastTick = r.lastTick.Add(timer.Period)
	if now.Sub(r.lastTick) >= timer.Period {
		r.lastTick = now
	}
}

func (r *Runner) updateSound() error {
	indicator, ok := r.frontend.(SoundIndicator)
	if !ok {
		return nil
	}

	active := r.machine.SoundActive()
	if active == r.sound {
		return nil
	}
	r.sound = active
	if err := indicator.SetSound(active); err != nil {
		return fmt.Errorf("updating sound indicator: %w", err)
	}
	return nil
}

// Frames returns the number of executed frames.
func (r *Runner) Frames() int {
	return r.frames
}
