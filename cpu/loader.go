package cpu

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Load reads a program in the LS-8 binary text format.
//
// Anything after a '#' is a comment. Blank lines are skipped. Every
// other line is a single base-2 word, stored at successive memory
// addresses starting at 0.
func Load(input io.Reader) (prog *Program, err error) {
	prog = &Program{}

	scanner := bufio.NewScanner(input)

	address := 0
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()

		text, comment, _ := strings.Cut(line, "#")
		text = strings.TrimSpace(text)
		if len(text) == 0 {
			continue
		}

		var value uint64
		value, err = strconv.ParseUint(text, 2, 8)
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: ErrParseNumber(text)}
			return
		}

		if address >= RAM_SIZE {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: ErrProgramSize}
			return
		}

		op := Opcode{
			LineNo:  lineno,
			Address: address,
			Codes:   []uint8{uint8(value)},
		}
		if comment = strings.TrimSpace(comment); len(comment) != 0 {
			op.Words = strings.Fields(comment)
		}
		prog.Opcodes = append(prog.Opcodes, op)
		address++
	}

	err = scanner.Err()

	return
}
