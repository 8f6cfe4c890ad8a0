// Package options contains the program options.
package options

// Frontend names.
const (
	FrontendSDL  = "sdl"
	FrontendTerm = "term"
	FrontendANSI = "ansi"
)

// DefaultScale is the default window size multiplier of the sdl frontend.
const DefaultScale = 16

// Frontends lists all supported frontend names.
var Frontends = []string{FrontendSDL, FrontendTerm, FrontendANSI}

// Parameters contains file path options.
type Parameters struct {
	Input  string // ROM file
	Output string // disassembly output file, stdout if empty
}

// Flags contains behavior options.
type Flags struct {
	Frontend       string
	CyclesPerFrame int
	Scale          int
	MaxFrames      int
	Disasm         bool
	Trace          bool
	Debug          bool
	Quiet          bool
}

// Quirks contains the instruction behavior switches.
type Quirks struct {
	ShiftInPlace bool
	ScaledFont   bool
}

// OutputFlags contains disassembly output formatting options.
type OutputFlags struct {
	NoHexComments bool
	NoOffsets     bool
}

// Program options of the interpreter.
type Program struct {
	Parameters
	Flags
	Quirks
	OutputFlags
}
