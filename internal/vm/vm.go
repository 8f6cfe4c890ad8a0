package vm

import (
	"math/rand/v2"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/instruction"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/timer"
	"github.com/retroenv/retrogolib/log"
)

const (
	// RegisterCount is the number of general purpose registers.
	RegisterCount = 16

	// StackSize is the maximum call depth.
	StackSize = 16

	flagRegister = 0xF
)

// Quirks selects instruction behaviors that differ between interpreters.
type Quirks struct {
	// ShiftInPlace makes 8xy6 and 8xyE shift Vx instead of copying the
	// shifted Vy into Vx.
	ShiftInPlace bool

	// ScaledFont makes Fx29 point I at the glyph for Vx using 5 bytes
	// per glyph instead of adding Vx to the font base.
	ScaledFont bool
}

// Options configures a Machine.
type Options struct {
	Quirks Quirks

	// Random returns the random bytes used by Cxnn. Defaults to math/rand.
	Random func() byte

	// Trace logs every executed instruction at debug level.
	Trace bool
}

// Stats contains execution counters.
type Stats struct {
	Steps          uint64 // executed instructions including no-ops
	UnknownOpcodes uint64 // skipped unknown instruction words
}

// Machine is a CHIP-8 interpreter instance.
type Machine struct {
	logger *log.Logger
	opts   Options

	memory *memory.Memory
	v      [RegisterCount]byte
	i      uint16
	pc     uint16
	sp     byte
	stack  [StackSize]uint16

	timers  timer.Timers
	display display.Display
	keypad  keypad.Keypad

	stats Stats
}

// New returns a machine in power-on state.
func New(logger *log.Logger, opts Options) *Machine {
	if opts.Random == nil {
		opts.Random = randomByte
	}
	m := &Machine{
		logger: logger,
		opts:   opts,
		memory: memory.New(),
	}
	m.Reset()
	return m
}

// Reset reinitializes the machine to power-on state. The font is loaded,
// the program counter is set to the program start and everything else
// is zeroed.
func (m *Machine) Reset() {
	m.memory.Reset()
	m.v = [RegisterCount]byte{}
	m.i = 0
	m.pc = memory.ProgramStart
	m.sp = 0
	m.stack = [StackSize]uint16{}
	m.timers.Reset()
	m.display.Clear()
	m.keypad.Clear()
	m.stats = Stats{}
}

// LoadROM copies the ROM into program space.
func (m *Machine) LoadROM(data []byte) error {
	return m.memory.LoadROM(data)
}

// Step executes a single instruction.
func (m *Machine) Step() error {
	address := m.pc
	word, err := m.memory.ReadWord(address)
	if err != nil {
		return &Fault{Address: address, Err: err}
	}
	m.pc += instruction.Size

	ins := instruction.Decode(word)
	if m.opts.Trace {
		m.logger.Debug("Executing",
			log.Hex("address", address),
			log.String("instruction", ins.String()))
	}

	if err := handlers[ins.Kind](m, ins); err != nil {
		m.pc = address
		return &Fault{Address: address, Word: word, Err: err}
	}
	m.stats.Steps++
	return nil
}

// TickTimers decrements the delay and sound timers. Hosts call it at 60 Hz.
func (m *Machine) TickTimers() {
	m.timers.Tick()
}

// SetKey sets the pressed state of a key.
func (m *Machine) SetKey(index byte, pressed bool) {
	m.keypad.Set(index, pressed)
}

// ClearKeys releases all keys.
func (m *Machine) ClearKeys() {
	m.keypad.Clear()
}

// Framebuffer returns a snapshot of the display in the default colors.
func (m *Machine) Framebuffer() []uint32 {
	return m.display.Snapshot(display.Foreground, display.Background)
}

// Display returns the display for redraw tracking by hosts.
func (m *Machine) Display() *display.Display {
	return &m.display
}

// Memory returns the machine memory.
func (m *Machine) Memory() *memory.Memory {
	return m.memory
}

// PC returns the program counter.
func (m *Machine) PC() uint16 { return m.pc }

// I returns the index register.
func (m *Machine) I() uint16 { return m.i }

// SP returns the stack pointer.
func (m *Machine) SP() byte { return m.sp }

// V returns the value of a general purpose register.
func (m *Machine) V(x byte) byte { return m.v[x&0x0F] }

// DelayTimer returns the delay timer value.
func (m *Machine) DelayTimer() byte { return m.timers.Delay }

// SoundTimer returns the sound timer value.
func (m *Machine) SoundTimer() byte { return m.timers.Sound }

// SoundActive returns whether the buzzer should be sounding.
func (m *Machine) SoundActive() bool { return m.timers.SoundActive() }

// Stats returns the execution counters.
func (m *Machine) Stats() Stats { return m.stats }

func randomByte() byte {
	return byte(rand.IntN(256))
}
