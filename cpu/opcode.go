package cpu

import (
	"fmt"
)

// Instruction word layout, MSB to LSB.
const (
	CODE_OPERANDS_SHIFT = 6          // Operand count, bits 7-6.
	CODE_OPERANDS_MASK  = 0b11       // Operand count mask (after shift).
	CODE_ALU            = 0b1 << 5   // Instruction is handled by the ALU.
	CODE_SET_PC         = 0b1 << 4   // Instruction sets the PC directly.
	CODE_FUNCTION_MASK  = 0b00001111 // Operation code within the family.
)

// CodeFamily is the instruction family selected by the ALU and PC flag bits.
type CodeFamily int

//go:generate go tool stringer -linecomment -type=CodeFamily
const (
	FAMILY_DIRECT = CodeFamily(0) // op
	FAMILY_ALU    = CodeFamily(1) // alu
	FAMILY_PC     = CodeFamily(2) // pc
)

// CodeOp is a decoded operation, unique across all families.
type CodeOp int

//go:generate go tool stringer -linecomment -type=CodeOp
const (
	OP_UNKNOWN = CodeOp(iota) // ???
	OP_HLT                    // HLT
	OP_LDI                    // LDI
	OP_PRN                    // PRN
	OP_POP                    // POP
	OP_PUSH                   // PUSH
	OP_ADD                    // ADD
	OP_MUL                    // MUL
	OP_CMP                    // CMP
	OP_CALL                   // CALL
	OP_RET                    // RET
	OP_JMP                    // JMP
	OP_JEQ                    // JEQ
	OP_JNE                    // JNE
)

// CodeOpByName returns the operation for a mnemonic.
func CodeOpByName(name string) (op CodeOp, ok bool) {
	for code_op := range _codeDefs {
		if code_op.String() == name {
			return code_op, true
		}
	}
	return
}

// codeDef is the encoding of a single operation.
type codeDef struct {
	Family   CodeFamily
	Function uint8
	Operands int
}

// _codeDefs is the LS-8 instruction set.
var _codeDefs = map[CodeOp]codeDef{
	OP_HLT:  {FAMILY_DIRECT, 0b0001, 0},
	OP_LDI:  {FAMILY_DIRECT, 0b0010, 2},
	OP_PRN:  {FAMILY_DIRECT, 0b0111, 1},
	OP_POP:  {FAMILY_DIRECT, 0b0110, 1},
	OP_PUSH: {FAMILY_DIRECT, 0b0101, 1},
	OP_ADD:  {FAMILY_ALU, 0b0000, 2},
	OP_MUL:  {FAMILY_ALU, 0b0010, 2},
	OP_CMP:  {FAMILY_ALU, 0b0111, 2},
	OP_CALL: {FAMILY_PC, 0b0000, 1},
	OP_RET:  {FAMILY_PC, 0b0001, 0},
	OP_JMP:  {FAMILY_PC, 0b0100, 1},
	OP_JEQ:  {FAMILY_PC, 0b0101, 1},
	OP_JNE:  {FAMILY_PC, 0b0110, 1},
}

// _codeTable decodes a family and function to an operation.
var _codeTable [3][16]CodeOp

func init() {
	for op, def := range _codeDefs {
		_codeTable[def.Family][def.Function] = op
	}
}

// Code is a single LS-8 instruction word.
type Code uint8

// MakeCode encodes an operation into an instruction word.
func MakeCode(op CodeOp) (code Code, ok bool) {
	def, ok := _codeDefs[op]
	if !ok {
		return
	}

	code = Code(uint8(def.Operands)<<CODE_OPERANDS_SHIFT | def.Function)
	switch def.Family {
	case FAMILY_ALU:
		code |= CODE_ALU
	case FAMILY_PC:
		code |= CODE_SET_PC
	}

	return
}

// Operands returns the number of operand words following the instruction.
func (code Code) Operands() int {
	return int(code>>CODE_OPERANDS_SHIFT) & CODE_OPERANDS_MASK
}

// IsAlu returns true if the ALU flag is set.
func (code Code) IsAlu() bool {
	return (code & CODE_ALU) != 0
}

// SetsPc returns true if the PC-mutating flag is set.
func (code Code) SetsPc() bool {
	return (code & CODE_SET_PC) != 0
}

// Function returns the 4-bit operation code.
func (code Code) Function() uint8 {
	return uint8(code) & CODE_FUNCTION_MASK
}

// Family returns the instruction family. The PC flag takes precedence
// over the ALU flag.
func (code Code) Family() CodeFamily {
	switch {
	case code.SetsPc():
		return FAMILY_PC
	case code.IsAlu():
		return FAMILY_ALU
	default:
		return FAMILY_DIRECT
	}
}

// Decode returns the operation, or OP_UNKNOWN.
func (code Code) Decode() CodeOp {
	return _codeTable[code.Family()][code.Function()]
}

// Size returns the number of memory words used by the instruction.
func (code Code) Size() int {
	return 1 + code.Operands()
}

// String returns a short description of the instruction word.
func (code Code) String() string {
	return fmt.Sprintf("%v.%v/%d", code.Family().String(), code.Decode().String(), code.Operands())
}
