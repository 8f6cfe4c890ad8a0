package instruction

import (
	"fmt"
	"testing"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestDecode_Fields(t *testing.T) {
	ins := Decode(0xD12F)

	assert.Equal(t, uint16(0xD12F), ins.Word)
	assert.Equal(t, Drw, ins.Kind)
	assert.Equal(t, byte(0x1), ins.X)
	assert.Equal(t, byte(0x2), ins.Y)
	assert.Equal(t, byte(0xF), ins.N)
	assert.Equal(t, byte(0x2F), ins.NN)
	assert.Equal(t, uint16(0x12F), ins.NNN)
}

func TestDecode_Kinds(t *testing.T) {
	tests := []struct {
		word     uint16
		expected Kind
	}{
		{0x00E0, Cls},
		{0x00EE, Ret},
		{0x0123, Sys},
		{0x0000, Sys},
		{0x1ABC, Jp},
		{0x2ABC, Call},
		{0x3142, SeByte},
		{0x4142, SneByte},
		{0x5120, SeReg},
		{0x5121, Unknown},
		{0x6342, LdByte},
		{0x7001, AddByte},
		{0x8120, LdReg},
		{0x8121, Or},
		{0x8122, And},
		{0x8123, Xor},
		{0x8124, AddReg},
		{0x8125, Sub},
		{0x8126, Shr},
		{0x8127, Subn},
		{0x812E, Shl},
		{0x8128, Unknown},
		{0x812F, Unknown},
		{0x9120, SneReg},
		{0x9121, Unknown},
		{0xA200, LdI},
		{0xB300, JpV0},
		{0xC0FF, Rnd},
		{0xD015, Drw},
		{0xE19E, Skp},
		{0xE1A1, Sknp},
		{0xE100, Unknown},
		{0xF107, LdVxDT},
		{0xF10A, LdKey},
		{0xF115, LdDTVx},
		{0xF118, LdSTVx},
		{0xF11E, AddI},
		{0xF129, LdFont},
		{0xF133, Bcd},
		{0xF155, Store},
		{0xF165, Load},
		{0xF1FF, Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.expected.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, Decode(tt.word).Kind)
		})
	}
}

func TestDecode_CoversAllKinds(t *testing.T) {
	seen := make(map[Kind]bool)
	for word := 0; word <= 0xFFFF; word++ {
		seen[Decode(uint16(word)).Kind] = true
	}
	assert.Equal(t, KindCount, len(seen))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "8xy4", AddReg.String())
	assert.Equal(t, "Fx0A", LdKey.String())
	assert.Equal(t, "Kind(200)", Kind(200).String())
}

func TestInstruction_ControlFlow(t *testing.T) {
	assert.True(t, Decode(0x1200).IsJump())
	assert.True(t, Decode(0xB200).IsJump())
	assert.False(t, Decode(0x2200).IsJump())
	assert.True(t, Decode(0x2200).IsCall())
	assert.True(t, Decode(0x00EE).IsReturn())
}

func TestInstruction_IsSkip(t *testing.T) {
	tests := []struct {
		word     uint16
		expected bool
	}{
		{0x3000, true},  // se Vx, nn
		{0x4000, true},  // sne Vx, nn
		{0x5120, true},  // se Vx, Vy
		{0x9120, true},  // sne Vx, Vy
		{0xE09E, true},  // skp Vx
		{0xE0A1, true},  // sknp Vx
		{0x6000, false}, // ld Vx, nn
		{0x8126, false}, // shr Vx, Vy
		{0x1200, false}, // jp
		{0x2200, false}, // call
		{0x00EE, false}, // ret
		{0xF00A, false}, // ld Vx, K
		{0x5121, false}, // unknown
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%04X", tt.word), func(t *testing.T) {
			assert.Equal(t, tt.expected, Decode(tt.word).IsSkip())
		})
	}
}

func TestInstruction_String(t *testing.T) {
	tests := []struct {
		word     uint16
		expected string
	}{
		{0x00E0, chip8.Cls.Name},
		{0x00EE, chip8.Ret.Name},
		{0x1ABC, chip8.Jp.Name + " $ABC"},
		{0xB300, chip8.Jp.Name + " V0, $300"},
		{0x2ABC, chip8.Call.Name + " $ABC"},
		{0x3142, chip8.Se.Name + " V1, $42"},
		{0x9120, chip8.Sne.Name + " V1, V2"},
		{0x6342, chip8.Ld.Name + " V3, $42"},
		{0xA200, chip8.Ld.Name + " I, $200"},
		{0x7001, chip8.Add.Name + " V0, $01"},
		{0x8124, chip8.Add.Name + " V1, V2"},
		{0x8125, chip8.Sub.Name + " V1, V2"},
		{0x812E, chip8.Shl.Name + " V1, V2"},
		{0xC0FF, chip8.Rnd.Name + " V0, $FF"},
		{0xD015, chip8.Drw.Name + " V0, V1, $5"},
		{0xE19E, chip8.Skp.Name + " V1"},
		{0xE1A1, chip8.Sknp.Name + " V1"},
		{0x5121, ".word $5121"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, Decode(tt.word).String())
		})
	}
}

func TestInstruction_NameUnknown(t *testing.T) {
	assert.Equal(t, "", Decode(0xF1FF).Name())
}
