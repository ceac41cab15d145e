package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Opcodes))

	assert.Equal("0", asm.Equate["LINENO"])
	assert.Equal("255", asm.Equate["RAM_SIZE"])
	assert.Equal("0xff", asm.Equate["STACK_EMPTY"])
	assert.Equal("0b010", asm.Equate["FLAG_GREATER"])
}

func opEqual(t *testing.T, expected, opcodes []Opcode) {
	assert := assert.New(t)

	assert.Equal(len(expected), len(opcodes))
	if len(expected) == len(opcodes) {
		for n := range len(expected) {
			assert.Equal(expected[n], opcodes[n])
		}
	}
}

func TestAssemblerOpcodes(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"; every instruction",
		"LDI R0,8",
		"ldi r1, 0x10",
		"PRN R0 # print",
		"PUSH R1",
		"POP  SP",
		"ADD R0,R1",
		"MUL R2 , R3",
		"CMP R4,R5",
		"CALL R6",
		"RET",
		"JMP R0",
		"JEQ R1",
		"JNE R2",
		"HLT",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	expected := []Opcode{
		{2, 0, []string{"LDI", "R0", "8"}, []uint8{0x82, 0, 8}, ""},
		{3, 3, []string{"ldi", "r1", "0x10"}, []uint8{0x82, 1, 0x10}, ""},
		{4, 6, []string{"PRN", "R0"}, []uint8{0x47, 0}, ""},
		{5, 8, []string{"PUSH", "R1"}, []uint8{0x45, 1}, ""},
		{6, 10, []string{"POP", "SP"}, []uint8{0x46, 7}, ""},
		{7, 12, []string{"ADD", "R0", "R1"}, []uint8{0xa0, 0, 1}, ""},
		{8, 15, []string{"MUL", "R2", "R3"}, []uint8{0xa2, 2, 3}, ""},
		{9, 18, []string{"CMP", "R4", "R5"}, []uint8{0xa7, 4, 5}, ""},
		{10, 21, []string{"CALL", "R6"}, []uint8{0x50, 6}, ""},
		{11, 23, []string{"RET"}, []uint8{0x11}, ""},
		{12, 24, []string{"JMP", "R0"}, []uint8{0x54, 0}, ""},
		{13, 26, []string{"JEQ", "R1"}, []uint8{0x55, 1}, ""},
		{14, 28, []string{"JNE", "R2"}, []uint8{0x56, 2}, ""},
		{15, 30, []string{"HLT"}, []uint8{0x01}, ""},
	}

	opEqual(t, expected, prog.Opcodes)
}

func TestAssemblerLabels(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"start:",
		"    LDI R1,end",
		"loop: JMP R1",
		"end: done: HLT",
		"table: .db start loop",
		".db end",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	if !assert.Error(err) {
		return
	}
	assert.ErrorIs(err, ErrDataSyntax)

	program[4] = "table: .db 1 2 'A'"
	prog, err = asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	expected := []Opcode{
		{2, 0, []string{"LDI", "R1", "end"}, []uint8{0x82, 1, 5}, "end"},
		{3, 3, []string{"JMP", "R1"}, []uint8{0x54, 1}, ""},
		{4, 5, []string{"HLT"}, []uint8{0x01}, ""},
		{5, 6, []string{".db", "1", "2", "65"}, []uint8{1, 2, 65}, ""},
		{6, 9, []string{".db", "end"}, []uint8{5}, "end"},
	}

	opEqual(t, expected, prog.Opcodes)

	assert.Equal(0, asm.Label["start"])
	assert.Equal(3, asm.Label["loop"])
	assert.Equal(5, asm.Label["end"])
	assert.Equal(5, asm.Label["done"])
	assert.Equal(6, asm.Label["table"])
}

func TestAssemblerEquate(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("BASE", "0x10")

	program := []string{
		".equ COUNT 3",
		".equ OUT R2",
		"LDI OUT,COUNT",
		"LDI R0,$(COUNT * 4 + BASE)",
		"LDI R1,$(FLAG_EQUAL | FLAG_LESS)",
		"LDI R3,$(LINENO)",
		"LDI R4,$(max(1, 2))",
		"LDI R5,-1",
		"LDI R6,'\\n'",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	expected := [][]uint8{
		{0x82, 2, 3},
		{0x82, 0, 28},
		{0x82, 1, 5},
		{0x82, 3, 6},
		{0x82, 4, 2},
		{0x82, 5, 0xff},
		{0x82, 6, 10},
	}

	assert.Equal(len(expected), len(prog.Opcodes))
	for n, op := range prog.Opcodes {
		if n < len(expected) {
			assert.Equal(expected[n], op.Codes, program[op.LineNo-1])
		}
	}
}

func TestAssemblerCharComment(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"LDI R0,'#' # hash",
		"LDI R1,';' ; semicolon",
		".db ';' '#' 'x' ; it's data",
		"HLT ; 'a'",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	expected := [][]uint8{
		{0x82, 0, '#'},
		{0x82, 1, ';'},
		{';', '#', 'x'},
		{0x01},
	}

	assert.Equal(len(expected), len(prog.Opcodes))
	for n, op := range prog.Opcodes {
		if n < len(expected) {
			assert.Equal(expected[n], op.Codes, program[op.LineNo-1])
		}
	}
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		text   string
		lineno int
		expect []error
	}){
		{"opcode_invalid", "NOP", 1, []error{ErrOpcodeInvalid}},
		{"register_invalid", "HLT\nPRN R8", 2, []error{ErrRegisterInvalid, ErrOpcodeArg1}},
		{"register_immediate", "ADD R0,1", 1, []error{ErrRegisterInvalid, ErrOpcodeArg2}},
		{"extra_args", "HLT R0", 1, []error{ErrOpcodeExtraArgs}},
		{"missing_args", "LDI R0", 1, []error{ErrOpcodeMissingArgs}},
		{"range_high", "LDI R0,256", 1, []error{ErrImmediateRange, ErrOpcodeArg2}},
		{"range_low", "LDI R0,-129", 1, []error{ErrImmediateRange}},
		{"value", "LDI R0,1x", 1, []error{ErrParseValue("1x")}},
		{"label_missing", "LDI R0,nowhere\nHLT", 1, []error{ErrLabelMissing("nowhere")}},
		{"label_duplicate", "a: HLT\na: HLT", 2, []error{ErrLabelDuplicate}},
		{"label_syntax", "9a: HLT", 1, []error{ErrLabelSyntax}},
		{"equ_syntax", ".equ A", 1, []error{ErrEquateSyntax}},
		{"equ_duplicate", ".equ A 1\n.equ A 2", 2, []error{ErrEquateDuplicate}},
		{"db_empty", ".db", 1, []error{ErrDataSyntax}},
		{"db_range", ".db 300", 1, []error{ErrImmediateRange}},
		{"directive", ".org 5", 1, []error{ErrDirectiveInvalid}},
		{"expression", "LDI R0,$(1 +)", 1, []error{ErrParseExpression("1 +")}},
		{"expression_type", "LDI R0,$(\"a\")", 1, []error{ErrParseExpression("\"a\"")}},
		{"size", strings.Repeat("LDI R0,0\n", 86), 86, []error{ErrProgramSize}},
	}

	for _, entry := range table {
		asm := &Assembler{}
		_, err := asm.Parse(strings.NewReader(entry.text))
		assert.Error(err, entry.name)
		for _, expect := range entry.expect {
			assert.ErrorIs(err, expect, entry.name)
		}

		var syn ErrSyntax
		if assert.True(errors.As(err, &syn), entry.name) {
			assert.Equal(entry.lineno, syn.LineNo, entry.name)
		}
	}
}
