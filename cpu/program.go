package cpu

import (
	"fmt"
	"io"
	"iter"
	"strings"
)

// Opcode represents a line of source with its location and generated words.
type Opcode struct {
	LineNo    int
	Address   int
	Words     []string
	Codes     []uint8
	LinkLabel string
}

// Program is a sequence of opcodes, laid out in memory from address 0.
type Program struct {
	Opcodes []Opcode
}

type Debug struct {
	*Opcode
	Index int
}

// Debug returns the opcode that generated the word at address.
func (prog *Program) Debug(address int) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if address >= op.Address && address < op.Address+len(op.Codes) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  address - op.Address,
			}
			break
		}
	}

	return
}

// Binary returns the memory image of the program.
func (prog *Program) Binary() (bins []uint8) {
	for address, code := range prog.Codes() {
		for len(bins) < address {
			bins = append(bins, 0)
		}
		bins = append(bins, code)
	}

	return
}

// Codes iterates over each memory address and word of the program.
func (prog *Program) Codes() iter.Seq2[int, uint8] {
	return func(yield func(address int, code uint8) bool) {
		for _, op := range prog.Opcodes {
			for n, code := range op.Codes {
				if !yield(op.Address+n, code) {
					return
				}
			}
		}
	}
}

// WriteListing writes the program in the LS-8 binary text format, one
// word per line, with the source of each opcode as a comment.
func (prog *Program) WriteListing(out io.Writer) (err error) {
	for _, op := range prog.Opcodes {
		for n, code := range op.Codes {
			line := fmt.Sprintf("%08b", code)
			if n == 0 && len(op.Words) != 0 {
				line += " # " + strings.Join(op.Words, " ")
			}
			_, err = fmt.Fprintln(out, line)
			if err != nil {
				return
			}
		}
	}

	return
}
