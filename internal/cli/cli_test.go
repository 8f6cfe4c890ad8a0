package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrogolib/assert"
)

func setArgs(t *testing.T, args ...string) {
	t.Helper()
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = append([]string{"prog"}, args...)
}

func TestParseFlags_Defaults(t *testing.T) {
	setArgs(t, "game.ch8")

	opts, err := ParseFlags()
	assert.NoError(t, err)
	assert.Equal(t, "game.ch8", opts.Input)
	assert.Equal(t, options.FrontendSDL, opts.Frontend)
	assert.Equal(t, runner.DefaultCyclesPerFrame, opts.CyclesPerFrame)
	assert.Equal(t, options.DefaultScale, opts.Scale)
	assert.Equal(t, 0, opts.MaxFrames)
	assert.False(t, opts.Disasm)
	assert.False(t, opts.ShiftInPlace)
	assert.False(t, opts.ScaledFont)
}

func TestParseFlags_Options(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, opts options.Program)
	}{
		{
			name: "frontend",
			args: []string{"-f", "TERM", "game.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.Equal(t, options.FrontendTerm, opts.Frontend)
			},
		},
		{
			name: "timing",
			args: []string{"-cycles", "20", "-frames", "600", "-scale", "8", "game.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.Equal(t, 20, opts.CyclesPerFrame)
				assert.Equal(t, 600, opts.MaxFrames)
				assert.Equal(t, 8, opts.Scale)
			},
		},
		{
			name: "quirks",
			args: []string{"-shift-vx", "-font-scaled", "game.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.True(t, opts.ShiftInPlace)
				assert.True(t, opts.ScaledFont)
			},
		},
		{
			name: "disasm",
			args: []string{"-disasm", "-o", "game.asm", "-nohexcomments", "-nooffsets", "game.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.True(t, opts.Disasm)
				assert.Equal(t, "game.asm", opts.Output)
				assert.True(t, opts.NoHexComments)
				assert.True(t, opts.NoOffsets)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args...)
			opts, err := ParseFlags()
			assert.NoError(t, err)
			tt.check(t, opts)
		})
	}
}

func TestParseFlags_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing file", nil},
		{"unknown flag", []string{"-unknown", "game.ch8"}},
		{"flag after file", []string{"game.ch8", "-debug"}},
		{"multiple files", []string{"a.ch8", "b.ch8"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args...)
			_, err := ParseFlags()

			var usageErr *UsageError
			assert.True(t, errors.As(err, &usageErr))
		})
	}
}

func TestParseFlags_InvalidValues(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		errContains string
	}{
		{"frontend", []string{"-f", "opengl", "game.ch8"}, "unsupported frontend"},
		{"cycles", []string{"-cycles", "0", "game.ch8"}, "cycles per frame"},
		{"scale", []string{"-scale", "-1", "game.ch8"}, "window scale"},
		{"frames", []string{"-frames", "-5", "game.ch8"}, "frame limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args...)
			_, err := ParseFlags()
			assert.ErrorContains(t, err, tt.errContains)

			var usageErr *UsageError
			assert.False(t, errors.As(err, &usageErr))
		})
	}
}
