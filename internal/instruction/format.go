package instruction

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// fallback mnemonics for words that the opcode table does not cover.
var fallbackNames = [KindCount]string{
	Sys: "sys", Cls: "cls", Ret: "ret", Jp: "jp", Call: "call",
	SeByte: "se", SneByte: "sne", SeReg: "se", LdByte: "ld", AddByte: "add",
	LdReg: "ld", Or: "or", And: "and", Xor: "xor", AddReg: "add",
	Sub: "sub", Shr: "shr", Subn: "subn", Shl: "shl", SneReg: "sne",
	LdI: "ld", JpV0: "jp", Rnd: "rnd", Drw: "drw", Skp: "skp", Sknp: "sknp",
	LdVxDT: "ld", LdKey: "ld", LdDTVx: "ld", LdSTVx: "ld", AddI: "add",
	LdFont: "ld", Bcd: "ld", Store: "ld", Load: "ld",
}

// lookupOpcode finds the opcode table entry matching the word.
func lookupOpcode(word uint16) (chip8.Opcode, bool) {
	opcodes := chip8.Opcodes[int(word>>12)]
	for _, op := range opcodes {
		if op.Info.Mask&word == op.Info.Value {
			return op, op.Instruction != nil
		}
	}
	return chip8.Opcode{}, false
}

// Name returns the assembler mnemonic of the instruction, or an empty
// string for unknown words.
func (i Instruction) Name() string {
	if i.Kind == Unknown {
		return ""
	}
	if op, ok := lookupOpcode(i.Word); ok {
		return op.Instruction.Name
	}
	return fallbackNames[i.Kind]
}

// IsSkip returns true for conditional skip instructions.
func (i Instruction) IsSkip() bool {
	return i.Kind != Unknown && chip8.SkipInstructions.Contains(i.Name())
}

// String returns the instruction in assembler syntax.
func (i Instruction) String() string {
	if i.Kind == Unknown {
		return fmt.Sprintf(".word $%04X", i.Word)
	}
	name := i.Name()
	if params := i.params(); params != "" {
		return name + " " + params
	}
	return name
}

func (i Instruction) params() string {
	switch i.Kind {
	case Cls, Ret:
		return ""
	case Sys, Jp, Call:
		return fmt.Sprintf("$%03X", i.NNN)
	case JpV0:
		return fmt.Sprintf("V0, $%03X", i.NNN)
	case LdI:
		return fmt.Sprintf("I, $%03X", i.NNN)
	case SeByte, SneByte, LdByte, AddByte, Rnd:
		return fmt.Sprintf("V%X, $%02X", i.X, i.NN)
	case SeReg, SneReg, LdReg, Or, And, Xor, AddReg, Sub, Subn, Shr, Shl:
		return fmt.Sprintf("V%X, V%X", i.X, i.Y)
	case Drw:
		return fmt.Sprintf("V%X, V%X, $%X", i.X, i.Y, i.N)
	case Skp, Sknp:
		return fmt.Sprintf("V%X", i.X)
	default:
		return i.miscParams()
	}
}

func (i Instruction) miscParams() string {
	switch i.Kind {
	case LdVxDT:
		return fmt.Sprintf("V%X, DT", i.X)
	case LdKey:
		return fmt.Sprintf("V%X, K", i.X)
	case LdDTVx:
		return fmt.Sprintf("DT, V%X", i.X)
	case LdSTVx:
		return fmt.Sprintf("ST, V%X", i.X)
	case AddI:
		return fmt.Sprintf("I, V%X", i.X)
	case LdFont:
		return fmt.Sprintf("F, V%X", i.X)
	case Bcd:
		return fmt.Sprintf("B, V%X", i.X)
	case Store:
		return fmt.Sprintf("[I], V%X", i.X)
	case Load:
		return fmt.Sprintf("V%X, [I]", i.X)
	}
	return ""
}
