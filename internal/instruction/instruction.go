// Package instruction decodes 16-bit CHIP-8 instruction words into
// structured instruction values.
package instruction

import "fmt"

// Size is the size of an instruction word in bytes.
const Size = 2

// Kind identifies one of the instruction behaviors.
type Kind uint8

// Instruction kinds, named after their encoding.
const (
	Unknown Kind = iota
	Sys          // 0nnn
	Cls          // 00E0
	Ret          // 00EE
	Jp           // 1nnn
	Call         // 2nnn
	SeByte       // 3xnn
	SneByte      // 4xnn
	SeReg        // 5xy0
	LdByte       // 6xnn
	AddByte      // 7xnn
	LdReg        // 8xy0
	Or           // 8xy1
	And          // 8xy2
	Xor          // 8xy3
	AddReg       // 8xy4
	Sub          // 8xy5
	Shr          // 8xy6
	Subn         // 8xy7
	Shl          // 8xyE
	SneReg       // 9xy0
	LdI          // Annn
	JpV0         // Bnnn
	Rnd          // Cxnn
	Drw          // Dxyn
	Skp          // Ex9E
	Sknp         // ExA1
	LdVxDT       // Fx07
	LdKey        // Fx0A
	LdDTVx       // Fx15
	LdSTVx       // Fx18
	AddI         // Fx1E
	LdFont       // Fx29
	Bcd          // Fx33
	Store        // Fx55
	Load         // Fx65

	// KindCount is the number of kinds including Unknown.
	KindCount = int(Load) + 1
)

var kindPatterns = [KindCount]string{
	Unknown: "????",
	Sys:     "0nnn",
	Cls:     "00E0",
	Ret:     "00EE",
	Jp:      "1nnn",
	Call:    "2nnn",
	SeByte:  "3xnn",
	SneByte: "4xnn",
	SeReg:   "5xy0",
	LdByte:  "6xnn",
	AddByte: "7xnn",
	LdReg:   "8xy0",
	Or:      "8xy1",
	And:     "8xy2",
	Xor:     "8xy3",
	AddReg:  "8xy4",
	Sub:     "8xy5",
	Shr:     "8xy6",
	Subn:    "8xy7",
	Shl:     "8xyE",
	SneReg:  "9xy0",
	LdI:     "Annn",
	JpV0:    "Bnnn",
	Rnd:     "Cxnn",
	Drw:     "Dxyn",
	Skp:     "Ex9E",
	Sknp:    "ExA1",
	LdVxDT:  "Fx07",
	LdKey:   "Fx0A",
	LdDTVx:  "Fx15",
	LdSTVx:  "Fx18",
	AddI:    "Fx1E",
	LdFont:  "Fx29",
	Bcd:     "Fx33",
	Store:   "Fx55",
	Load:    "Fx65",
}

// String returns the encoding pattern of the kind, for example "8xy4".
func (k Kind) String() string {
	if int(k) >= KindCount {
		return fmt.Sprintf("Kind(%d)", k)
	}
	return kindPatterns[k]
}

// Instruction is a decoded instruction word with all operand fields.
type Instruction struct {
	Word uint16
	Kind Kind
	X    byte   // register index, second nibble
	Y    byte   // register index, third nibble
	N    byte   // lowest nibble
	NN   byte   // lowest byte
	NNN  uint16 // lowest 12 bits
}

// Decode splits the word into its operand fields and identifies the kind.
// Words that do not encode a known instruction decode to Unknown.
func Decode(word uint16) Instruction {
	ins := Instruction{
		Word: word,
		X:    byte(word>>8) & 0x0F,
		Y:    byte(word>>4) & 0x0F,
		N:    byte(word) & 0x0F,
		NN:   byte(word),
		NNN:  word & 0x0FFF,
	}
	ins.Kind = decodeKind(ins)
	return ins
}

func decodeKind(ins Instruction) Kind {
	switch ins.Word >> 12 {
	case 0x0:
		switch ins.Word {
		case 0x00E0:
			return Cls
		case 0x00EE:
			return Ret
		}
		return Sys
	case 0x1:
		return Jp
	case 0x2:
		return Call
	case 0x3:
		return SeByte
	case 0x4:
		return SneByte
	case 0x5:
		if ins.N == 0 {
			return SeReg
		}
	case 0x6:
		return LdByte
	case 0x7:
		return AddByte
	case 0x8:
		return decodeALU(ins.N)
	case 0x9:
		if ins.N == 0 {
			return SneReg
		}
	case 0xA:
		return LdI
	case 0xB:
		return JpV0
	case 0xC:
		return Rnd
	case 0xD:
		return Drw
	case 0xE:
		switch ins.NN {
		case 0x9E:
			return Skp
		case 0xA1:
			return Sknp
		}
	case 0xF:
		return decodeMisc(ins.NN)
	}
	return Unknown
}

func decodeALU(n byte) Kind {
	switch n {
	case 0x0:
		return LdReg
	case 0x1:
		return Or
	case 0x2:
		return And
	case 0x3:
		return Xor
	case 0x4:
		return AddReg
	case 0x5:
		return Sub
	case 0x6:
		return Shr
	case 0x7:
		return Subn
	case 0xE:
		return Shl
	}
	return Unknown
}

func decodeMisc(nn byte) Kind {
	switch nn {
	case 0x07:
		return LdVxDT
	case 0x0A:
		return LdKey
	case 0x15:
		return LdDTVx
	case 0x18:
		return LdSTVx
	case 0x1E:
		return AddI
	case 0x29:
		return LdFont
	case 0x33:
		return Bcd
	case 0x55:
		return Store
	case 0x65:
		return Load
	}
	return Unknown
}

// IsJump returns true for unconditional jumps.
func (i Instruction) IsJump() bool {
	return i.Kind == Jp || i.Kind == JpV0
}

// IsCall returns true for subroutine calls.
func (i Instruction) IsCall() bool {
	return i.Kind == Call
}

// IsReturn returns true for subroutine returns.
func (i Instruction) IsReturn() bool {
	return i.Kind == Ret
}
