// Package memory provides the 4KB CHIP-8 address space including the built-in font.
package memory

import (
	"errors"
	"fmt"
)

// CHIP-8 memory layout constants.
//
//	0x000-0x1FF: Interpreter area, holds the font glyphs at FontStart
//	0x200-0xFFF: Program space
const (
	// Size is the number of addressable bytes.
	Size = 0x1000

	// ProgramStart is the address where ROM data is loaded and execution begins.
	ProgramStart = 0x200

	// MaxAddress is the highest valid address.
	MaxAddress = Size - 1

	// MaxROMSize is the largest ROM that fits into program space.
	MaxROMSize = Size - ProgramStart

	// FontStart is the address of the first font glyph.
	FontStart = 0x050

	// GlyphSize is the number of bytes of a single font glyph.
	GlyphSize = 5
)

var (
	// ErrROMTooLarge is returned when a ROM does not fit into program space.
	ErrROMTooLarge = errors.New("rom too large")

	// ErrAddressOutOfRange is returned for accesses beyond MaxAddress.
	ErrAddressOutOfRange = errors.New("address out of range")
)

var font = [16 * GlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the linear CHIP-8 address space.
type Memory struct {
	data [Size]byte
}

// New returns a memory with the font block loaded.
func New() *Memory {
	m := &Memory{}
	m.Reset()
	return m
}

// Reset zeroes all memory and writes the font block.
func (m *Memory) Reset() {
	m.data = [Size]byte{}
	copy(m.data[FontStart:], font[:])
}

// LoadROM copies the ROM data to ProgramStart. Memory is not modified
// if the ROM does not fit.
func (m *Memory) LoadROM(data []byte) error {
	if len(data) > MaxROMSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrROMTooLarge, len(data), MaxROMSize)
	}
	copy(m.data[ProgramStart:], data)
	return nil
}

// Slice returns the n bytes starting at address. The returned slice
// aliases memory, callers that modify it write through to memory.
func (m *Memory) Slice(address uint16, n int) ([]byte, error) {
	if n < 0 || int(address)+n > Size {
		return nil, outOfRange(address, n)
	}
	return m.data[int(address) : int(address)+n], nil
}

// ReadWord returns the big-endian 16-bit word at the given address.
func (m *Memory) ReadWord(address uint16) (uint16, error) {
	b, err := m.Slice(address, 2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0])<<8 | uint16(b[1]), nil
}

// FontAddress returns the address of the glyph for the given hex digit
// using 5 bytes per glyph.
func FontAddress(digit byte) uint16 {
	return FontStart + uint16(digit&0x0F)*GlyphSize
}

func outOfRange(address uint16, n int) error {
	return fmt.Errorf("%w: 0x%04X+%d", ErrAddressOutOfRange, address, n)
}
