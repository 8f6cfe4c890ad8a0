// Package main implements the main entry point for a CHIP-8 interpreter
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/faiface/mainthread"
	"github.com/retroenv/retrochip8/internal/cli"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/frontend/ansi"
	"github.com/retroenv/retrochip8/internal/frontend/term"
	"github.com/retroenv/retrochip8/internal/frontend/window"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	// SDL calls have to be made from the main thread, run the program in a
	// separate goroutine.
	mainthread.Run(run)
}

func run() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			printBanner(logger, opts)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	printBanner(logger, opts)

	rom, err := loader.New(logger).Load(opts.Input)
	if err != nil {
		logger.Fatal(err.Error())
	}

	if opts.Disasm {
		err = disassemble(ctx, logger, opts, rom)
	} else {
		err = emulate(ctx, logger, opts, rom)
	}
	if err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}

		var fault *vm.Fault
		if errors.As(err, &fault) {
			logger.Error("Machine fault",
				log.Hex("address", fault.Address),
				log.Hex("opcode", fault.Word),
				log.Err(fault.Err))
			os.Exit(1)
		}
		logger.Fatal(err.Error())
	}
}

func emulate(ctx context.Context, logger *log.Logger, opts options.Program, rom []byte) error {
	machine := vm.New(logger, config.MachineOptions(opts))
	if err := machine.LoadROM(rom); err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	frontend, err := createFrontend(opts, "retrochip8 - "+filepath.Base(opts.Input))
	if err != nil {
		return err
	}
	defer func() {
		if err := frontend.Close(); err != nil {
			logger.Error("Closing frontend failed", log.Err(err))
		}
	}()

	r := runner.New(logger, machine, frontend, config.RunnerOptions(opts))
	err = r.Run(ctx)

	stats := machine.Stats()
	logger.Debug("Execution stopped",
		log.Int("frames", r.Frames()),
		log.Int("steps", int(stats.Steps)),
		log.Int("unknown_opcodes", int(stats.UnknownOpcodes)))
	return err
}

func disassemble(ctx context.Context, logger *log.Logger, opts options.Program, rom []byte) error {
	dis, err := disasm.New(logger, rom, config.DisasmOptions(opts))
	if err != nil {
		return fmt.Errorf("creating disassembler: %w", err)
	}

	if opts.Output != "" {
		err = dis.ProcessFile(ctx, opts.Output)
	} else {
		err = dis.Process(ctx, os.Stdout)
	}
	if err != nil {
		return fmt.Errorf("disassembling: %w", err)
	}
	return nil
}

// createFrontend opens the frontend selected by the options.
func createFrontend(opts options.Program, title string) (runner.Frontend, error) {
	switch opts.Frontend {
	case options.FrontendSDL:
		w, err := window.New(title, opts.Scale)
		if err != nil {
			return nil, fmt.Errorf("creating sdl frontend: %w", err)
		}
		return w, nil

	case options.FrontendTerm:
		t, err := term.New(0)
		if err != nil {
			return nil, fmt.Errorf("creating terminal frontend: %w", err)
		}
		return t, nil

	case options.FrontendANSI:
		return ansi.New(), nil

	default:
		return nil, fmt.Errorf("unsupported frontend '%s'", opts.Frontend)
	}
}

// printBanner prints application version information
func printBanner(logger *log.Logger, opts options.Program) {
	// the listing is printed on the console
	if opts.Quiet || (opts.Disasm && opts.Output == "") {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("retrochip8", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
