// Package ansi implements an output only frontend that prints the screen
// with ANSI escape sequences. Two pixel rows share one line of half block
// characters.
package ansi

import (
	"strings"

	tm "github.com/buger/goterm"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/runner"
)

const (
	fullBlock  = '█'
	upperBlock = '▀'
	lowerBlock = '▄'

	soundLabel = "[sound]"
)

// Printer prints frames to the terminal.
type Printer struct{}

// New returns a new printer.
func New() *Printer {
	return &Printer{}
}

// Poll returns no input, the printer does not read the keyboard.
func (p *Printer) Poll() (runner.Input, error) {
	return runner.Input{}, nil
}

// Present prints a frame at the top of the terminal.
func (p *Printer) Present(frame []uint32) error {
	tm.Clear()
	tm.MoveCursor(1, 1)
	_, _ = tm.Print(render(frame))
	tm.Flush()
	return nil
}

// SetSound prints an indicator below the screen while the sound timer is
// active.
func (p *Printer) SetSound(active bool) error {
	tm.MoveCursor(1, display.Height/2+1)
	_, _ = tm.Print(status(active))
	tm.Flush()
	return nil
}

// Close is a no-op.
func (p *Printer) Close() error {
	return nil
}

func render(frame []uint32) string {
	var sb strings.Builder
	sb.Grow((display.Width*3 + 1) * display.Height / 2)

	for y := 0; y < display.Height; y += 2 {
		for x := range display.Width {
			top := frame[y*display.Width+x] != display.Background
			bottom := frame[(y+1)*display.Width+x] != display.Background

			switch {
			case top && bottom:
				sb.WriteRune(fullBlock)
			case top:
				sb.WriteRune(upperBlock)
			case bottom:
				sb.WriteRune(lowerBlock)
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// status returns the indicator line. The inactive line has the same width
// to overwrite a previous indicator.
func status(soundActive bool) string {
	if soundActive {
		return soundLabel
	}
	return strings.Repeat(" ", len(soundLabel))
}
