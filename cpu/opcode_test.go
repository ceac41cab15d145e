package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeDecode(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		word     uint8
		op       CodeOp
		family   CodeFamily
		operands int
	}){
		{0b00000001, OP_HLT, FAMILY_DIRECT, 0},
		{0b10000010, OP_LDI, FAMILY_DIRECT, 2},
		{0b01000111, OP_PRN, FAMILY_DIRECT, 1},
		{0b01000110, OP_POP, FAMILY_DIRECT, 1},
		{0b01000101, OP_PUSH, FAMILY_DIRECT, 1},
		{0b10100000, OP_ADD, FAMILY_ALU, 2},
		{0b10100010, OP_MUL, FAMILY_ALU, 2},
		{0b10100111, OP_CMP, FAMILY_ALU, 2},
		{0b01010000, OP_CALL, FAMILY_PC, 1},
		{0b00010001, OP_RET, FAMILY_PC, 0},
		{0b01010100, OP_JMP, FAMILY_PC, 1},
		{0b01010101, OP_JEQ, FAMILY_PC, 1},
		{0b01010110, OP_JNE, FAMILY_PC, 1},
	}

	for _, entry := range table {
		code := Code(entry.word)
		name := entry.op.String()
		assert.Equal(entry.op, code.Decode(), name)
		assert.Equal(entry.family, code.Family(), name)
		assert.Equal(entry.operands, code.Operands(), name)
		assert.Equal(entry.operands+1, code.Size(), name)

		made, ok := MakeCode(entry.op)
		assert.True(ok, name)
		assert.Equal(code, made, name)

		byname, ok := CodeOpByName(name)
		assert.True(ok, name)
		assert.Equal(entry.op, byname, name)
	}
}

func TestCodeSharedFunction(t *testing.T) {
	assert := assert.New(t)

	// LDI and MUL share function 0b0010.
	ldi := Code(0b10000010)
	mul := Code(0b10100010)
	assert.Equal(ldi.Function(), mul.Function())
	assert.Equal(OP_LDI, ldi.Decode())
	assert.Equal(OP_MUL, mul.Decode())

	// ADD and CALL share function 0b0000.
	add := Code(0b10100000)
	call := Code(0b01010000)
	assert.Equal(add.Function(), call.Function())
	assert.True(add.IsAlu())
	assert.False(add.SetsPc())
	assert.True(call.SetsPc())
	assert.False(call.IsAlu())

	// PC flag takes precedence over the ALU flag.
	both := Code(0b01110100)
	assert.Equal(FAMILY_PC, both.Family())
	assert.Equal(OP_JMP, both.Decode())
}

func TestCodeUnknown(t *testing.T) {
	assert := assert.New(t)

	table := []uint8{
		0b00000000, // direct, function 0
		0b10100001, // alu, function 1
		0b00010010, // pc, function 2
		0b00001111, // direct, function 15
	}

	for _, word := range table {
		assert.Equal(OP_UNKNOWN, Code(word).Decode(), "%08b", word)
	}

	_, ok := MakeCode(OP_UNKNOWN)
	assert.False(ok)

	_, ok = CodeOpByName("???")
	assert.False(ok)
	_, ok = CodeOpByName("NOP")
	assert.False(ok)
}

func TestCodeString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("op.LDI/2", Code(0b10000010).String())
	assert.Equal("alu.MUL/2", Code(0b10100010).String())
	assert.Equal("pc.RET/0", Code(0b00010001).String())
	assert.Equal("op.???/0", Code(0).String())
	assert.Equal("CodeOp(99)", CodeOp(99).String())
	assert.Equal("CodeFamily(7)", CodeFamily(7).String())
}
