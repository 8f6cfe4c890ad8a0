package disasm

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/instruction"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func words(values ...uint16) []byte {
	b := make([]byte, 0, len(values)*2)
	for _, v := range values {
		b = append(b, byte(v>>8), byte(v))
	}
	return b
}

func disassemble(t *testing.T, rom []byte, options Options) string {
	t.Helper()
	dis, err := New(log.NewTestLogger(t), rom, options)
	assert.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, dis.Process(context.Background(), &buf))
	return buf.String()
}

func name(word uint16) string {
	return instruction.Decode(word).Name()
}

func TestDisasm_Labels(t *testing.T) {
	rom := words(
		0x00E0, // 200: cls
		0xA20C, // 202: ld I, $20C
		0x2208, // 204: call $208
		0x1206, // 206: jp $206
		0xD015, // 208: drw V0, V1, 5
		0x00EE, // 20A: ret
	)
	rom = append(rom, 0xF0, 0x90, 0x90, 0x90, 0xF0)

	output := disassemble(t, rom, Options{})

	assert.Contains(t, output, "Start:\n")
	assert.Contains(t, output, "_func_208:\n")
	assert.Contains(t, output, "_label_206:\n")
	assert.Contains(t, output, "_data_20c:\n")

	assert.Contains(t, output, "  "+name(0xA20C)+" I, _data_20c\n")
	assert.Contains(t, output, "  "+name(0x2208)+" _func_208\n")
	assert.Contains(t, output, "  "+name(0x1206)+" _label_206\n")
	assert.Contains(t, output, "  "+instruction.Decode(0xD015).String()+"\n")
	assert.Contains(t, output, "  .byte $F0, $90, $90, $90, $F0\n")
}

func TestDisasm_Header(t *testing.T) {
	output := disassemble(t, words(0x00E0, 0x1202), Options{})
	assert.True(t, strings.HasPrefix(output, "; CHIP-8 ROM disassembly\n; program size: 4 bytes\n\n.org $200\n\nStart:\n"))
}

func TestDisasm_UnreachedBytesAreData(t *testing.T) {
	// jp $200 followed by bytes that are never executed
	rom := words(0x1200, 0x6001, 0x6002)

	output := disassemble(t, rom, Options{})
	assert.Contains(t, output, "  .byte $60, $01, $60, $02\n")
	assert.False(t, strings.Contains(output, instruction.Decode(0x6001).String()))
}

func TestDisasm_UnknownWordIsData(t *testing.T) {
	// ld V0, 1 followed by an invalid 5xy1 word
	rom := words(0x6001, 0x5121)

	output := disassemble(t, rom, Options{})
	assert.Contains(t, output, "  "+instruction.Decode(0x6001).String()+"\n")
	assert.Contains(t, output, "  .byte $51, $21\n")
}

func TestDisasm_SkipFollowsBothPaths(t *testing.T) {
	rom := words(
		0x3000, // 200: se V0, 0
		0x1208, // 202: jp $208
		0x6101, // 204: ld V1, 1
		0x1204, // 206: jp $204
		0x00EE, // 208: ret
	)

	output := disassemble(t, rom, Options{})
	assert.Contains(t, output, instruction.Decode(0x6101).String())
	assert.Contains(t, output, "_label_204:\n")
	assert.Contains(t, output, "_label_208:\n")
	assert.False(t, strings.Contains(output, ".byte"))
}

func TestDisasm_JumpOutsideROM(t *testing.T) {
	rom := words(0x1300)

	output := disassemble(t, rom, Options{})
	assert.Contains(t, output, "  "+instruction.Decode(0x1300).String()+"\n")
}

func TestDisasm_Comments(t *testing.T) {
	rom := words(0x6142, 0x00EE)
	rom = append(rom, 0xAA)

	output := disassemble(t, rom, Options{HexComments: true, OffsetComments: true})
	_, listing, found := strings.Cut(output, ".org $200\n\n")
	assert.True(t, found)
	lines := strings.Split(listing, "\n")

	assert.Equal(t, "Start:", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], " ; $200 61 42"))
	assert.True(t, strings.HasPrefix(lines[1], "  "+instruction.Decode(0x6142).String()))
	assert.True(t, strings.HasSuffix(lines[2], " ; $202 00 EE"))
	assert.True(t, strings.HasSuffix(lines[4], " ; $204"))
}

func TestDisasm_DataLineLength(t *testing.T) {
	rom := words(0x00EE)
	rom = append(rom, make([]byte, 20)...)

	output := disassemble(t, rom, Options{})
	first := "  .byte " + strings.TrimSuffix(strings.Repeat("$00, ", dataBytesPerLine), ", ") + "\n"
	assert.Contains(t, output, first)
	assert.Contains(t, output, "  .byte $00, $00, $00, $00\n")
}

func TestDisasm_ROMTooLarge(t *testing.T) {
	_, err := New(log.NewTestLogger(t), make([]byte, memory.MaxROMSize+1), Options{})
	assert.True(t, errors.Is(err, memory.ErrROMTooLarge))
}

func TestDisasm_Cancelled(t *testing.T) {
	dis, err := New(log.NewTestLogger(t), words(0x00E0), Options{})
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err = dis.Process(ctx, &buf)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestDisasm_ProcessFile(t *testing.T) {
	rom := words(0x00E0, 0x1202)
	path := filepath.Join(t.TempDir(), "out.asm")

	dis, err := New(log.NewTestLogger(t), rom, Options{})
	assert.NoError(t, err)
	assert.NoError(t, dis.ProcessFile(context.Background(), path))

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, disassemble(t, rom, Options{}), string(data))
}

func TestDisasm_ProcessFileCreateError(t *testing.T) {
	dis, err := New(log.NewTestLogger(t), words(0x00E0), Options{})
	assert.NoError(t, err)

	path := filepath.Join(t.TempDir(), "missing", "out.asm")
	err = dis.ProcessFile(context.Background(), path)
	assert.ErrorContains(t, err, "creating file")
}

func TestDisasm_ProcessFileCancelled(t *testing.T) {
	dis, err := New(log.NewTestLogger(t), words(0x00E0), Options{})
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "out.asm")
	err = dis.ProcessFile(ctx, path)
	assert.True(t, errors.Is(err, context.Canceled))

	info, err := os.Stat(path)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), info.Size())
}
