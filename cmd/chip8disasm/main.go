// Package main implements a standalone CHIP-8 ROM disassembler
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

type optionFlags struct {
	input  string
	output string

	debug bool
	quiet bool

	noHexComments bool
	noOffsets     bool
}

func main() {
	options, disasmOptions := readArguments()

	if !options.quiet && options.output != "" {
		printBanner()
	}

	if err := disasmFile(app.Context(), options, disasmOptions); err != nil {
		fmt.Println(fmt.Errorf("disassembling failed: %w", err))
		os.Exit(1)
	}
}

func readArguments() (optionFlags, disasm.Options) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	options := optionFlags{}

	flags.BoolVar(&options.noHexComments, "nohexcomments", false, "do not output opcode bytes as hex values in comments")
	flags.BoolVar(&options.noOffsets, "nooffsets", false, "do not output addresses in comments")
	flags.StringVar(&options.output, "o", "", "name of the output .asm file, printed on console if no name given")
	flags.BoolVar(&options.debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&options.quiet, "q", false, "perform operations quietly")

	err := flags.Parse(os.Args[1:])
	args := flags.Args()

	if err != nil || len(args) == 0 {
		printBanner()
		fmt.Printf("usage: chip8disasm [options] <file to disassemble>\n\n")
		flags.PrintDefaults()
		os.Exit(1)
	}
	options.input = args[0]

	disasmOptions := disasm.Options{
		HexComments:    !options.noHexComments,
		OffsetComments: !options.noOffsets,
	}
	return options, disasmOptions
}

func printBanner() {
	fmt.Println("[---------------------------------------]")
	fmt.Println("[ chip8disasm - CHIP-8 ROM disassembler ]")
	fmt.Printf("[---------------------------------------]\n\n")
	fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
}

func disasmFile(ctx context.Context, options optionFlags, disasmOptions disasm.Options) error {
	logger := config.CreateLogger(options.debug, options.quiet)

	rom, err := loader.New(logger).Load(options.input)
	if err != nil {
		return err
	}

	dis, err := disasm.New(logger, rom, disasmOptions)
	if err != nil {
		return fmt.Errorf("initializing disassembler: %w", err)
	}

	if options.output == "" {
		err = dis.Process(ctx, os.Stdout)
	} else {
		err = dis.ProcessFile(ctx, options.output)
	}
	if err != nil {
		return fmt.Errorf("processing file: %w", err)
	}
	return nil
}
