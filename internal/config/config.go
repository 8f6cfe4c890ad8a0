// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// MachineOptions returns the interpreter options for the program options.
func MachineOptions(opts options.Program) vm.Options {
	return vm.Options{
		Quirks: vm.Quirks{
			ShiftInPlace: opts.ShiftInPlace,
			ScaledFont:   opts.ScaledFont,
		},
		Trace: opts.Trace,
	}
}

// RunnerOptions returns the frame pacing options for the program options.
func RunnerOptions(opts options.Program) runner.Options {
	return runner.Options{
		CyclesPerFrame: opts.CyclesPerFrame,
		MaxFrames:      opts.MaxFrames,
	}
}

// DisasmOptions returns the listing options for the program options.
func DisasmOptions(opts options.Program) disasm.Options {
	return disasm.Options{
		HexComments:    !opts.NoHexComments,
		OffsetComments: !opts.NoOffsets,
	}
}
