package disasm

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/instruction"
	"github.com/retroenv/retrochip8/internal/memory"
)

const (
	dataBytesPerLine = 16
	codeColumnWidth  = 24
)

func (dis *Disasm) write(w io.Writer) error {
	if err := dis.writeHeader(w); err != nil {
		return err
	}

	var previousLineWasCode bool

	for i := 0; i < len(dis.offsets); {
		o := dis.offsets[i]
		address := uint16(memory.ProgramStart + i)

		if o.label != "" {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return fmt.Errorf("writing line: %w", err)
				}
			}
			if _, err := fmt.Fprintf(w, "%s:\n", o.label); err != nil {
				return fmt.Errorf("writing label: %w", err)
			}
		} else if i > 0 && (o.typ == codeOffset) != previousLineWasCode {
			// print an empty line in case of data after code and vice versa
			if _, err := fmt.Fprintln(w); err != nil {
				return fmt.Errorf("writing line: %w", err)
			}
		}

		if o.typ == codeOffset {
			if err := dis.writeCode(w, address, o.ins); err != nil {
				return err
			}
			previousLineWasCode = true
			i += instruction.Size
			continue
		}

		n := dis.dataRunLength(i)
		if err := dis.writeData(w, address, dis.rom[i:i+n]); err != nil {
			return err
		}
		previousLineWasCode = false
		i += n
	}
	return nil
}

func (dis *Disasm) writeHeader(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "; CHIP-8 ROM disassembly\n"); err != nil {
		return fmt.Errorf("writing header comment: %w", err)
	}
	if _, err := fmt.Fprintf(w, "; program size: %d bytes\n\n", len(dis.rom)); err != nil {
		return fmt.Errorf("writing program size comment: %w", err)
	}
	if _, err := fmt.Fprintf(w, ".org $%03X\n\n", memory.ProgramStart); err != nil {
		return fmt.Errorf("writing org directive: %w", err)
	}
	return nil
}

// dataRunLength returns the number of data bytes starting at index that can
// be output on a single line.
func (dis *Disasm) dataRunLength(index int) int {
	n := 1
	for index+n < len(dis.offsets) && n < dataBytesPerLine {
		o := dis.offsets[index+n]
		if o.typ != dataOffset || o.label != "" {
			break
		}
		n++
	}
	return n
}

func (dis *Disasm) writeCode(w io.Writer, address uint16, ins instruction.Instruction) error {
	line := "  " + dis.formatInstruction(ins)

	var comments []string
	if dis.options.OffsetComments {
		comments = append(comments, fmt.Sprintf("$%03X", address))
	}
	if dis.options.HexComments {
		comments = append(comments, fmt.Sprintf("%02X %02X", byte(ins.Word>>8), byte(ins.Word)))
	}

	if _, err := fmt.Fprintln(w, withComment(line, comments)); err != nil {
		return fmt.Errorf("writing code line: %w", err)
	}
	return nil
}

func (dis *Disasm) writeData(w io.Writer, address uint16, data []byte) error {
	buf := &strings.Builder{}
	buf.WriteString("  .byte ")
	for j, b := range data {
		if j > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(buf, "$%02X", b)
	}

	var comments []string
	if dis.options.OffsetComments {
		comments = append(comments, fmt.Sprintf("$%03X", address))
	}

	if _, err := fmt.Fprintln(w, withComment(buf.String(), comments)); err != nil {
		return fmt.Errorf("writing data line: %w", err)
	}
	return nil
}

// formatInstruction replaces the address operand of jumps, calls and index
// loads with the label of the destination.
func (dis *Disasm) formatInstruction(ins instruction.Instruction) string {
	label := dis.label(ins.NNN)
	if label == "" {
		return ins.String()
	}

	switch ins.Kind {
	case instruction.Jp, instruction.Call:
		return ins.Name() + " " + label
	case instruction.JpV0:
		return ins.Name() + " V0, " + label
	case instruction.LdI:
		return ins.Name() + " I, " + label
	default:
		return ins.String()
	}
}

func withComment(line string, comments []string) string {
	if len(comments) == 0 {
		return line
	}
	if len(line) < codeColumnWidth {
		line += strings.Repeat(" ", codeColumnWidth-len(line))
	}
	return line + " ; " + strings.Join(comments, " ")
}
