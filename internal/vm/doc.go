// Package vm implements the CHIP-8 interpreter core.
//
// # Machine State
//
// A Machine owns the complete interpreter state:
//   - 4KB memory with the font block at memory.FontStart
//   - 16 general purpose 8-bit registers V0-VF, VF doubles as flag register
//   - the 16-bit index register I and the program counter
//   - a 16 entry return address stack
//   - delay and sound timers
//   - the 64x32 display and the 16 key keypad
//
// # Execution
//
// Step performs exactly one fetch, decode and execute cycle. Instructions are
// decoded into instruction.Instruction values and dispatched through a table
// indexed by instruction kind. Unknown instruction words are skipped.
//
// The host drives the machine from a single goroutine:
//
//	m := vm.New(logger, vm.Options{})
//	if err := m.LoadROM(rom); err != nil {
//		return fmt.Errorf("loading rom: %w", err)
//	}
//	for range cyclesPerFrame {
//		if err := m.Step(); err != nil {
//			return err
//		}
//	}
//	m.TickTimers() // at 60 Hz
//
// # Faults
//
// Stack overflow, stack underflow and memory accesses beyond the address space
// stop execution with a *Fault error. The faulting instruction has no effect
// and the program counter points at it.
//
// # Quirks
//
// By default the shift instructions 8xy6 and 8xyE read their source from Vy and
// Fx29 sets I to memory.FontStart + Vx. Options.Quirks selects the alternative
// behaviors used by other interpreters.
package vm
