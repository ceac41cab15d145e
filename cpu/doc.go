// Package cpu implements the processor and assembler for the LS-8 system.
//
// The CPU consists of a program counter (PC), eight 8-bit registers (R0-R7,
// with R7 doubling as the stack pointer), a 255 word memory, a separate 255
// word stack, an ALU and a comparison flag written by CMP.
//
// Every instruction is a single word, followed by up to two operand words.
// The upper bits of the instruction select the operand count, and whether
// the ALU or the PC is involved; the low nibble selects the operation
// within that family.
//
// The assembler provides a small assembly language for the LS-8 instruction
// set, supporting labels, equates, data words, and compile-time expression
// evaluation.
package cpu
