// Package term implements a terminal frontend using termbox. Every pixel is
// drawn as two terminal cells to keep the aspect ratio.
package term

import (
	"fmt"

	"github.com/nsf/termbox-go"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/runner"
)

const (
	eventQueueSize = 64
	soundLabel     = "SOUND"
)

// Terminal renders the screen into the terminal and reads key events.
type Terminal struct {
	latch   keyLatch
	sound   bool
	events  chan termbox.Event
	done    chan struct{}
	stopped chan struct{}
}

// New initializes the terminal. holdFrames sets how long a typed key stays
// pressed, 0 selects the default.
func New(holdFrames int) (*Terminal, error) {
	if err := termbox.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}
	termbox.SetInputMode(termbox.InputEsc)
	termbox.HideCursor()

	t := &Terminal{
		latch:   newKeyLatch(holdFrames),
		events:  make(chan termbox.Event, eventQueueSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go t.pollEvents()
	return t, nil
}

func (t *Terminal) pollEvents() {
	defer close(t.stopped)
	for {
		event := termbox.PollEvent()
		if event.Type == termbox.EventInterrupt {
			return
		}
		select {
		case t.events <- event:
		case <-t.done:
		}
	}
}

// Poll processes all queued key events and returns the held keys.
func (t *Terminal) Poll() (runner.Input, error) {
	var input runner.Input

	for {
		select {
		case event := <-t.events:
			switch event.Type {
			case termbox.EventError:
				return input, fmt.Errorf("reading terminal event: %w", event.Err)
			case termbox.EventKey:
				if event.Key == termbox.KeyEsc || event.Key == termbox.KeyCtrlC {
					input.Quit = true
					continue
				}
				if index, ok := frontend.KeyIndex(event.Ch); ok {
					t.latch.press(index)
				}
			}

		default:
			input.Keys = t.latch.next()
			return input, nil
		}
	}
}

// Present draws a frame.
func (t *Terminal) Present(frame []uint32) error {
	if err := termbox.Clear(termbox.ColorDefault, termbox.ColorDefault); err != nil {
		return fmt.Errorf("clearing terminal: %w", err)
	}

	for y := range display.Height {
		for x := range display.Width {
			if frame[y*display.Width+x] == display.Background {
				continue
			}
			termbox.SetCell(2*x, y, ' ', termbox.ColorDefault, termbox.ColorWhite)
			termbox.SetCell(2*x+1, y, ' ', termbox.ColorDefault, termbox.ColorWhite)
		}
	}

	t.drawStatus()

	if err := termbox.Flush(); err != nil {
		return fmt.Errorf("flushing terminal: %w", err)
	}
	return nil
}

// SetSound shows an indicator below the screen while the sound timer is
// active.
func (t *Terminal) SetSound(active bool) error {
	t.sound = active
	t.drawStatus()

	if err := termbox.Flush(); err != nil {
		return fmt.Errorf("flushing terminal: %w", err)
	}
	return nil
}

func (t *Terminal) drawStatus() {
	bg := termbox.ColorDefault
	if t.sound {
		bg = termbox.ColorRed
	}
	for i, ch := range soundLabel {
		if !t.sound {
			ch = ' '
		}
		termbox.SetCell(i, display.Height, ch, termbox.ColorWhite, bg)
	}
}

// Close stops the event reader and restores the terminal.
func (t *Terminal) Close() error {
	close(t.done)
	termbox.Interrupt()
	<-t.stopped
	termbox.Close()
	return nil
}
