// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

func init() {
	maps.Copy(sysEquate, _cpu_defines)
}

// Assembler is a single pass assembler for the LS-8 system.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to memory addresses.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// regMap is a map of register names to register indexes.
var regMap = map[string]uint8{
	"R0": 0,
	"R1": 1,
	"R2": 2,
	"R3": 3,
	"R4": 4,
	"R5": 5,
	"R6": 6,
	"R7": 7,
	"SP": REG_SP,
}

// argKind is the kind of an instruction operand.
type argKind int

const (
	ARG_REG = argKind(iota) // Register index.
	ARG_IMM                 // Immediate word, or label.
)

// argMap is the operand shape of each instruction.
var argMap = map[CodeOp][]argKind{
	OP_HLT:  nil,
	OP_LDI:  {ARG_REG, ARG_IMM},
	OP_PRN:  {ARG_REG},
	OP_POP:  {ARG_REG},
	OP_PUSH: {ARG_REG},
	OP_ADD:  {ARG_REG, ARG_REG},
	OP_MUL:  {ARG_REG, ARG_REG},
	OP_CMP:  {ARG_REG, ARG_REG},
	OP_CALL: {ARG_REG},
	OP_RET:  nil,
	OP_JMP:  {ARG_REG},
	OP_JEQ:  {ARG_REG},
	OP_JNE:  {ARG_REG},
}

var argErr = []error{ErrOpcodeArg1, ErrOpcodeArg2}

var labelRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var charRe = regexp.MustCompile(`'\\?[^']'`)

// stripComment removes a ';' or '#' comment, ignoring those characters
// inside of 'x' literals.
func stripComment(line string) string {
	literals := charRe.FindAllStringIndex(line, -1)
	for n, r := range line {
		if r != ';' && r != '#' {
			continue
		}
		quoted := false
		for _, lit := range literals {
			if n > lit[0] && n < lit[1]-1 {
				quoted = true
				break
			}
		}
		if !quoted {
			return line[:n]
		}
	}
	return line
}

// valueOf returns the value of a simple word.
// Negative values down to -128 are stored as two's complement.
func (asm *Assembler) valueOf(word string) (value uint8, err error) {
	v64, err := strconv.ParseInt(word, 0, 16)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	if v64 > 0xff || v64 < -0x80 {
		err = ErrImmediateRange
		return
	}

	value = uint8(v64)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v64 int64
		v64, err = strconv.ParseInt(str, 0, 64)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// parseLine parses a single line into words, handling equates and labels.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	line = charRe.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			switch str[1:] {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "0":
				str = "\x00"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	re := regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		if !labelRe.MatchString(label) {
			err = ErrLabelSyntax
			return
		}
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]int, 16)
		}
		asm.Label[label] = asm.currentAddress()
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	for n, word := range words {
		// Check for equate
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	return
}

// currentAddress gets the address of the next generated word.
func (asm *Assembler) currentAddress() int {
	if len(asm.Opcode) == 0 {
		return 0
	}

	last := asm.Opcode[len(asm.Opcode)-1]

	return last.Address + len(last.Codes)
}

// Parse parses an input stream into a Program containing opcodes.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Opcode = asm.Opcode[:0]
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		line = text
		line = strings.TrimSpace(stripComment(line))

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Final linking of labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		if len(op.LinkLabel) == 0 {
			continue
		}
		label := op.LinkLabel
		address, ok := asm.Label[label]
		if !ok {
			lineno = op.LineNo
			line = strings.Join(op.Words, " ")
			err = ErrLabelMissing(label)
			return
		}
		op.Codes[len(op.Codes)-1] = uint8(address)
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// getRegister gets the register index for a word.
func (asm *Assembler) getRegister(word string) (index uint8, err error) {
	index, ok := regMap[strings.ToUpper(word)]
	if !ok {
		err = ErrRegisterInvalid
	}
	return
}

// getImmediate gets an immediate value, or the name of a label to link.
func (asm *Assembler) getImmediate(word string) (value uint8, link string, err error) {
	value, err = asm.valueOf(word)
	if err == nil {
		return
	}
	if errors.Is(err, ErrImmediateRange) {
		return
	}

	if !labelRe.MatchString(word) {
		err = ErrParseValue(word)
		return
	}

	err = nil
	link = word
	return
}

// parseWords generates the opcode for a line of words.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	if len(words) == 0 {
		return
	}

	op := Opcode{
		LineNo:  lineno,
		Address: asm.currentAddress(),
		Words:   words,
	}

	switch {
	case words[0] == ".db":
		args := words[1:]
		if len(args) == 0 {
			err = ErrDataSyntax
			return
		}
		for _, arg := range args {
			var value uint8
			var link string
			value, link, err = asm.getImmediate(arg)
			if err != nil {
				return
			}
			if len(link) != 0 {
				if len(args) != 1 {
					err = ErrDataSyntax
					return
				}
				op.LinkLabel = link
			}
			op.Codes = append(op.Codes, value)
		}
	case strings.HasPrefix(words[0], "."):
		err = ErrDirectiveInvalid
		return
	default:
		code_op, ok := CodeOpByName(strings.ToUpper(words[0]))
		if !ok {
			err = ErrOpcodeInvalid
			return
		}
		code, _ := MakeCode(code_op)
		op.Codes = append(op.Codes, uint8(code))

		kinds := argMap[code_op]
		args := words[1:]
		if len(args) > len(kinds) {
			err = ErrOpcodeExtraArgs
			return
		}
		if len(args) < len(kinds) {
			err = ErrOpcodeMissingArgs
			return
		}

		for n, kind := range kinds {
			var value uint8
			switch kind {
			case ARG_REG:
				value, err = asm.getRegister(args[n])
			case ARG_IMM:
				var link string
				value, link, err = asm.getImmediate(args[n])
				op.LinkLabel = link
			}
			if err != nil {
				err = errors.Join(argErr[n], err)
				return
			}
			op.Codes = append(op.Codes, value)
		}
	}

	if op.Address+len(op.Codes) > RAM_SIZE {
		err = ErrProgramSize
		return
	}

	asm.Opcode = append(asm.Opcode, op)

	return
}
