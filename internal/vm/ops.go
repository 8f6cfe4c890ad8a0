package vm

import (
	"github.com/retroenv/retrochip8/internal/instruction"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrogolib/log"
)

// handler executes a decoded instruction. A returned error aborts the
// instruction, handlers must not modify state before all checks passed.
type handler func(m *Machine, ins instruction.Instruction) error

var handlers = [instruction.KindCount]handler{
	instruction.Unknown: (*Machine).opUnknown,
	instruction.Sys:     (*Machine).opSys,
	instruction.Cls:     (*Machine).opCls,
	instruction.Ret:     (*Machine).opRet,
	instruction.Jp:      (*Machine).opJp,
	instruction.Call:    (*Machine).opCall,
	instruction.SeByte:  (*Machine).opSeByte,
	instruction.SneByte: (*Machine).opSneByte,
	instruction.SeReg:   (*Machine).opSeReg,
	instruction.LdByte:  (*Machine).opLdByte,
	instruction.AddByte: (*Machine).opAddByte,
	instruction.LdReg:   (*Machine).opLdReg,
	instruction.Or:      (*Machine).opOr,
	instruction.And:     (*Machine).opAnd,
	instruction.Xor:     (*Machine).opXor,
	instruction.AddReg:  (*Machine).opAddReg,
	instruction.Sub:     (*Machine).opSub,
	instruction.Shr:     (*Machine).opShr,
	instruction.Subn:    (*Machine).opSubn,
	instruction.Shl:     (*Machine).opShl,
	instruction.SneReg:  (*Machine).opSneReg,
	instruction.LdI:     (*Machine).opLdI,
	instruction.JpV0:    (*Machine).opJpV0,
	instruction.Rnd:     (*Machine).opRnd,
	instruction.Drw:     (*Machine).opDrw,
	instruction.Skp:     (*Machine).opSkp,
	instruction.Sknp:    (*Machine).opSknp,
	instruction.LdVxDT:  (*Machine).opLdVxDT,
	instruction.LdKey:   (*Machine).opLdKey,
	instruction.LdDTVx:  (*Machine).opLdDTVx,
	instruction.LdSTVx:  (*Machine).opLdSTVx,
	instruction.AddI:    (*Machine).opAddI,
	instruction.LdFont:  (*Machine).opLdFont,
	instruction.Bcd:     (*Machine).opBcd,
	instruction.Store:   (*Machine).opStore,
	instruction.Load:    (*Machine).opLoad,
}

func (m *Machine) skipIf(condition bool) {
	if condition {
		m.pc += instruction.Size
	}
}

// setFlag writes VF. The arithmetic operations call it after writing the
// result so that the flag is kept when x is F. The shifts call it before,
// so that the shifted value is kept instead.
func (m *Machine) setFlag(set bool) {
	if set {
		m.v[flagRegister] = 1
	} else {
		m.v[flagRegister] = 0
	}
}

func (m *Machine) opUnknown(ins instruction.Instruction) error {
	m.stats.UnknownOpcodes++
	m.logger.Debug("Skipping unknown opcode",
		log.Hex("address", m.pc-instruction.Size),
		log.Hex("opcode", ins.Word))
	return nil
}

// 0nnn: native machine code routines of the COSMAC VIP are ignored.
func (m *Machine) opSys(instruction.Instruction) error {
	return nil
}

// 00E0
func (m *Machine) opCls(instruction.Instruction) error {
	m.display.Clear()
	return nil
}

// 00EE
func (m *Machine) opRet(instruction.Instruction) error {
	if m.sp == 0 {
		return ErrStackUnderflow
	}
	m.sp--
	m.pc = m.stack[m.sp]
	return nil
}

// 1nnn
func (m *Machine) opJp(ins instruction.Instruction) error {
	m.pc = ins.NNN
	return nil
}

// 2nnn
func (m *Machine) opCall(ins instruction.Instruction) error {
	if int(m.sp) >= StackSize {
		return ErrStackOverflow
	}
	m.stack[m.sp] = m.pc
	m.sp++
	m.pc = ins.NNN
	return nil
}

// 3xnn
func (m *Machine) opSeByte(ins instruction.Instruction) error {
	m.skipIf(m.v[ins.X] == ins.NN)
	return nil
}

// 4xnn
func (m *Machine) opSneByte(ins instruction.Instruction) error {
	m.skipIf(m.v[ins.X] != ins.NN)
	return nil
}

// 5xy0
func (m *Machine) opSeReg(ins instruction.Instruction) error {
	m.skipIf(m.v[ins.X] == m.v[ins.Y])
	return nil
}

// 6xnn
func (m *Machine) opLdByte(ins instruction.Instruction) error {
	m.v[ins.X] = ins.NN
	return nil
}

// 7xnn, carry is discarded and VF is not touched.
func (m *Machine) opAddByte(ins instruction.Instruction) error {
	m.v[ins.X] += ins.NN
	return nil
}

// 8xy0
func (m *Machine) opLdReg(ins instruction.Instruction) error {
	m.v[ins.X] = m.v[ins.Y]
	return nil
}

// 8xy1
func (m *Machine) opOr(ins instruction.Instruction) error {
	m.v[ins.X] |= m.v[ins.Y]
	return nil
}

// 8xy2
func (m *Machine) opAnd(ins instruction.Instruction) error {
	m.v[ins.X] &= m.v[ins.Y]
	return nil
}

// 8xy3
func (m *Machine) opXor(ins instruction.Instruction) error {
	m.v[ins.X] ^= m.v[ins.Y]
	return nil
}

// 8xy4
func (m *Machine) opAddReg(ins instruction.Instruction) error {
	sum := uint16(m.v[ins.X]) + uint16(m.v[ins.Y])
	m.v[ins.X] = byte(sum)
	m.setFlag(sum > 0xFF)
	return nil
}

// 8xy5, VF is set when no borrow occurs.
func (m *Machine) opSub(ins instruction.Instruction) error {
	vx, vy := m.v[ins.X], m.v[ins.Y]
	m.v[ins.X] = vx - vy
	m.setFlag(vx >= vy)
	return nil
}

// 8xy6
func (m *Machine) opShr(ins instruction.Instruction) error {
	src := m.shiftSource(ins)
	m.setFlag(src&0x01 != 0)
	m.v[ins.X] = src >> 1
	return nil
}

// 8xy7, VF is set when no borrow occurs.
func (m *Machine) opSubn(ins instruction.Instruction) error {
	vx, vy := m.v[ins.X], m.v[ins.Y]
	m.v[ins.X] = vy - vx
	m.setFlag(vy >= vx)
	return nil
}

// 8xyE
func (m *Machine) opShl(ins instruction.Instruction) error {
	src := m.shiftSource(ins)
	m.setFlag(src&0x80 != 0)
	m.v[ins.X] = src << 1
	return nil
}

func (m *Machine) shiftSource(ins instruction.Instruction) byte {
	if m.opts.Quirks.ShiftInPlace {
		return m.v[ins.X]
	}
	return m.v[ins.Y]
}

// 9xy0
func (m *Machine) opSneReg(ins instruction.Instruction) error {
	m.skipIf(m.v[ins.X] != m.v[ins.Y])
	return nil
}

// Annn
func (m *Machine) opLdI(ins instruction.Instruction) error {
	m.i = ins.NNN
	return nil
}

// Bnnn, the target is checked by the next fetch.
func (m *Machine) opJpV0(ins instruction.Instruction) error {
	m.pc = ins.NNN + uint16(m.v[0])
	return nil
}

// Cxnn
func (m *Machine) opRnd(ins instruction.Instruction) error {
	m.v[ins.X] = m.opts.Random() & ins.NN
	return nil
}

// Dxyn
func (m *Machine) opDrw(ins instruction.Instruction) error {
	sprite, err := m.memory.Slice(m.i, int(ins.N))
	if err != nil {
		return err
	}
	collision := m.display.Draw(m.v[ins.X], m.v[ins.Y], sprite)
	m.setFlag(collision)
	return nil
}

// Ex9E
func (m *Machine) opSkp(ins instruction.Instruction) error {
	m.skipIf(m.keypad.Pressed(m.v[ins.X]))
	return nil
}

// ExA1
func (m *Machine) opSknp(ins instruction.Instruction) error {
	m.skipIf(!m.keypad.Pressed(m.v[ins.X]))
	return nil
}

// Fx07
func (m *Machine) opLdVxDT(ins instruction.Instruction) error {
	m.v[ins.X] = m.timers.Delay
	return nil
}

// Fx0A waits by rewinding the program counter until a key is pressed.
func (m *Machine) opLdKey(ins instruction.Instruction) error {
	key, ok := m.keypad.FirstPressed()
	if !ok {
		m.pc -= instruction.Size
		return nil
	}
	m.v[ins.X] = key
	return nil
}

// Fx15
func (m *Machine) opLdDTVx(ins instruction.Instruction) error {
	m.timers.Delay = m.v[ins.X]
	return nil
}

// Fx18
func (m *Machine) opLdSTVx(ins instruction.Instruction) error {
	m.timers.Sound = m.v[ins.X]
	return nil
}

// Fx1E
func (m *Machine) opAddI(ins instruction.Instruction) error {
	m.i += uint16(m.v[ins.X])
	return nil
}

// Fx29
func (m *Machine) opLdFont(ins instruction.Instruction) error {
	if m.opts.Quirks.ScaledFont {
		m.i = memory.FontAddress(m.v[ins.X])
		return nil
	}
	m.i = memory.FontStart + uint16(m.v[ins.X])
	return nil
}

// Fx33
func (m *Machine) opBcd(ins instruction.Instruction) error {
	digits, err := m.memory.Slice(m.i, 3)
	if err != nil {
		return err
	}
	value := m.v[ins.X]
	digits[0] = value / 100
	digits[1] = value / 10 % 10
	digits[2] = value % 10
	return nil
}

// Fx55
func (m *Machine) opStore(ins instruction.Instruction) error {
	buf, err := m.memory.Slice(m.i, int(ins.X)+1)
	if err != nil {
		return err
	}
	copy(buf, m.v[:ins.X+1])
	return nil
}

// Fx65
func (m *Machine) opLoad(ins instruction.Instruction) error {
	buf, err := m.memory.Slice(m.i, int(ins.X)+1)
	if err != nil {
		return err
	}
	copy(m.v[:ins.X+1], buf)
	return nil
}
