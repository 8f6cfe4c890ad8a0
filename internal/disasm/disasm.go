// Package disasm produces an assembly listing of a CHIP-8 ROM by following
// its execution flow from the program start.
package disasm

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/retroenv/retrochip8/internal/instruction"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

const (
	funcNaming  = "_func_%03x"
	labelNaming = "_label_%03x"
	dataNaming  = "_data_%03x"
	startLabel  = "Start"
)

type offsetType uint8

const (
	dataOffset offsetType = iota
	codeOffset
	codeOperand // second byte of an instruction
)

type offset struct {
	typ   offsetType
	ins   instruction.Instruction
	label string
}

// Options controls the listing output.
type Options struct {
	HexComments    bool // output the opcode bytes as comment
	OffsetComments bool // output the address as comment
}

// Disasm implements a CHIP-8 disassembler.
type Disasm struct {
	logger  *log.Logger
	options Options
	rom     []byte
	offsets []offset

	callDestinations   set.Set[uint16]
	branchDestinations set.Set[uint16]
	dataReferences     set.Set[uint16]

	offsetsToParse      []uint16
	offsetsToParseAdded set.Set[uint16]
}

// New creates a disassembler for the given ROM.
func New(logger *log.Logger, rom []byte, options Options) (*Disasm, error) {
	if len(rom) > memory.MaxROMSize {
		return nil, fmt.Errorf("%w: %d bytes", memory.ErrROMTooLarge, len(rom))
	}
	return &Disasm{
		logger:              logger,
		options:             options,
		rom:                 rom,
		offsets:             make([]offset, len(rom)),
		callDestinations:    set.New[uint16](),
		branchDestinations:  set.New[uint16](),
		dataReferences:      set.New[uint16](),
		offsetsToParseAdded: set.New[uint16](),
	}, nil
}

// Process disassembles the ROM and writes the listing.
func (dis *Disasm) Process(ctx context.Context, w io.Writer) error {
	if err := dis.followExecutionFlow(ctx); err != nil {
		return err
	}
	dis.assignLabels()

	if err := dis.write(w); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}
	return nil
}

func (dis *Disasm) followExecutionFlow(ctx context.Context) error {
	dis.addAddressToParse(memory.ProgramStart)

	for len(dis.offsetsToParse) > 0 {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("following execution flow: %w", err)
		}

		address := dis.offsetsToParse[0]
		dis.offsetsToParse = dis.offsetsToParse[1:]
		dis.processOffset(address)
	}
	return nil
}

// addAddressToParse queues an address if it is inside the ROM and was not
// queued before.
func (dis *Disasm) addAddressToParse(address uint16) {
	if !dis.inROM(address) || dis.offsetsToParseAdded.Contains(address) {
		return
	}
	dis.offsetsToParseAdded.Add(address)
	dis.offsetsToParse = append(dis.offsetsToParse, address)
}

func (dis *Disasm) processOffset(address uint16) {
	index := int(address) - memory.ProgramStart
	if index+1 >= len(dis.rom) {
		return // incomplete instruction at the end is output as data
	}
	if dis.offsets[index].typ != dataOffset || dis.offsets[index+1].typ != dataOffset {
		dis.logger.Debug("Skipping overlapping instruction", log.Hex("address", address))
		return
	}

	word := uint16(dis.rom[index])<<8 | uint16(dis.rom[index+1])
	ins := instruction.Decode(word)
	if ins.Kind == instruction.Unknown {
		// consider an unknown instruction as start of data
		return
	}

	dis.offsets[index] = offset{typ: codeOffset, ins: ins}
	dis.offsets[index+1].typ = codeOperand
	dis.handleControlFlow(address, ins)
}

// handleControlFlow queues all addresses that the instruction can continue at.
func (dis *Disasm) handleControlFlow(address uint16, ins instruction.Instruction) {
	next := address + instruction.Size

	switch {
	case ins.Kind == instruction.Jp:
		dis.branchDestinations.Add(ins.NNN)
		dis.addAddressToParse(ins.NNN)

	case ins.Kind == instruction.JpV0:
		// the target depends on V0, only the base is known
		dis.branchDestinations.Add(ins.NNN)
		dis.addAddressToParse(ins.NNN)

	case ins.IsCall():
		dis.callDestinations.Add(ins.NNN)
		dis.addAddressToParse(ins.NNN)
		dis.addAddressToParse(next)

	case ins.IsSkip():
		dis.addAddressToParse(next)
		dis.addAddressToParse(next + instruction.Size)

	case ins.Kind == instruction.LdI:
		if dis.inROM(ins.NNN) {
			dis.dataReferences.Add(ins.NNN)
		}
		dis.addAddressToParse(next)

	case ins.IsReturn():

	default:
		dis.addAddressToParse(next)
	}
}

// assignLabels names all referenced addresses that are inside the ROM.
func (dis *Disasm) assignLabels() {
	dis.setLabel(memory.ProgramStart, startLabel)

	for _, address := range sortedAddresses(dis.callDestinations) {
		dis.setLabel(address, fmt.Sprintf(funcNaming, address))
	}
	for _, address := range sortedAddresses(dis.branchDestinations) {
		dis.setLabel(address, fmt.Sprintf(labelNaming, address))
	}
	for _, address := range sortedAddresses(dis.dataReferences) {
		dis.setLabel(address, fmt.Sprintf(dataNaming, address))
	}
}

func (dis *Disasm) setLabel(address uint16, name string) {
	if !dis.inROM(address) {
		return
	}
	o := &dis.offsets[int(address)-memory.ProgramStart]
	if o.label == "" {
		o.label = name
	}
}

// label returns the label of an address, or an empty string.
func (dis *Disasm) label(address uint16) string {
	if !dis.inROM(address) {
		return ""
	}
	return dis.offsets[int(address)-memory.ProgramStart].label
}

func (dis *Disasm) inROM(address uint16) bool {
	return int(address) >= memory.ProgramStart && int(address) < memory.ProgramStart+len(dis.rom)
}

func sortedAddresses(s set.Set[uint16]) []uint16 {
	addresses := make([]uint16, 0, len(s))
	for address := range s {
		addresses = append(addresses, address)
	}
	slices.Sort(addresses)
	return addresses
}
