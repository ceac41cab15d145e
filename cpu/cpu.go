package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/ls8/io"
)

// Channel is an output channel interface.
type Channel io.Channel

const (
	REG_COUNT = 8 // Number of general purpose registers.
	REG_SP    = 7 // Register used as the stack pointer.
)

// Comparison flag bits, set by CMP. Exactly one is set after a compare.
const (
	FLAG_EQUAL   = uint8(0b001)
	FLAG_GREATER = uint8(0b010)
	FLAG_LESS    = uint8(0b100)
)

var _cpu_defines = map[string]string{
	"RAM_SIZE":     fmt.Sprintf("%d", RAM_SIZE),
	"STACK_SIZE":   fmt.Sprintf("%d", STACK_SIZE),
	"STACK_EMPTY":  fmt.Sprintf("0x%x", STACK_EMPTY),
	"FLAG_EQUAL":   fmt.Sprintf("0b%03b", FLAG_EQUAL),
	"FLAG_GREATER": fmt.Sprintf("0b%03b", FLAG_GREATER),
	"FLAG_LESS":    fmt.Sprintf("0b%03b", FLAG_LESS),
}

// Cpu is the simulation context for the LS-8 processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.
	Strict  bool // Set to make unknown opcodes fatal.

	Pc       int              // Current program counter.
	Register [REG_COUNT]uint8 // Register bank. R7 is the stack pointer.
	Flag     uint8            // Comparison flag.
	Memory   Memory           // Main memory.
	Stack    Stack            // Stack memory, addressed by R7.
	Halted   bool             // Set once HLT executes.

	Ticks       int     // Instructions executed since reset.
	Diagnostics []error // Unknown opcodes skipped since reset.

	output Channel // PRN output channel.
}

// NewCpu creates a new CPU, reset and ready to run from address 0.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// SetChannel sets the output channel used by PRN.
func (cpu *Cpu) SetChannel(channel Channel) {
	cpu.output = channel
}

// GetChannel gets the output channel used by PRN.
func (cpu *Cpu) GetChannel() (channel Channel, err error) {
	if cpu.output == nil {
		err = ErrChannelInvalid
		return
	}

	channel = cpu.output
	return
}

// Reset the CPU state.
// - Clears the registers, flag, memory, and stack.
// - Zeros statistics counters.
// - Rewinds the output channel.
// - Sets the stack pointer to the empty stack, and PC to 0.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Register[:])
	cpu.Memory.Reset()
	cpu.Stack.Reset()
	cpu.Flag = 0
	cpu.Halted = false
	cpu.Ticks = 0
	cpu.Diagnostics = nil

	if cpu.output != nil {
		cpu.output.Rewind()
	}

	cpu.Register[REG_SP] = STACK_EMPTY
	cpu.Pc = 0
}

// Load a program image into memory at address 0.
func (cpu *Cpu) Load(words []uint8) (err error) {
	return cpu.Memory.Load(0, words)
}

// Sp returns the stack pointer.
func (cpu *Cpu) Sp() uint8 {
	return cpu.Register[REG_SP]
}

// ReadRegister returns the value of a register.
func (cpu *Cpu) ReadRegister(index uint8) (value uint8, err error) {
	if int(index) >= len(cpu.Register) {
		err = ErrRegisterFault(index)
		return
	}

	value = cpu.Register[index]
	return
}

// WriteRegister sets the value of a register.
func (cpu *Cpu) WriteRegister(index uint8, value uint8) (err error) {
	if int(index) >= len(cpu.Register) {
		err = ErrRegisterFault(index)
		return
	}

	cpu.Register[index] = value
	return
}

// FetchCode fetches the instruction at the PC.
func (cpu *Cpu) FetchCode() (code Code, err error) {
	if cpu.Halted {
		err = ErrHalted
		return
	}

	word, err := cpu.Memory.Read(cpu.Pc)
	if err != nil {
		return
	}

	code = Code(word)
	return
}

// operand returns the n'th operand word of the instruction at the PC.
func (cpu *Cpu) operand(n int) (value uint8, err error) {
	return cpu.Memory.Read(cpu.Pc + 1 + n)
}

// operandRegister returns the register index and value named by
// the n'th operand of the instruction at the PC.
func (cpu *Cpu) operandRegister(n int) (index uint8, value uint8, err error) {
	index, err = cpu.operand(n)
	if err != nil {
		return
	}

	value, err = cpu.ReadRegister(index)
	return
}

// Tick executes a single CPU instruction cycle.
func (cpu *Cpu) Tick() (err error) {
	code, err := cpu.FetchCode()
	if err != nil {
		return
	}

	err = cpu.Execute(code)
	return
}

// Run ticks the CPU until it halts, or an instruction faults.
func (cpu *Cpu) Run() (err error) {
	for !cpu.Halted {
		err = cpu.Tick()
		if err != nil {
			return
		}
	}

	return
}

// Execute executes a single decoded instruction located at the PC.
func (cpu *Cpu) Execute(code Code) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(code), err)
		}
	}()
	if cpu.Verbose {
		log.Printf("%02x: %v", cpu.Pc, code)
	}

	next_pc := cpu.Pc + code.Size()

	op := code.Decode()

	// The family flags are decoded before the function, as function
	// codes are shared between the families.
	switch {
	case op == OP_UNKNOWN:
		if cpu.Strict {
			err = ErrOpcodeUnknown
			return
		}
		diag := errors.Join(ErrOpcode(code), ErrOpcodeUnknown)
		log.Printf("%02x: %v", cpu.Pc, diag)
		cpu.Diagnostics = append(cpu.Diagnostics, diag)
	case code.SetsPc():
		next_pc, err = cpu.doPc(op)
		if err != nil {
			err = errors.Join(ErrOpcodePc, err)
			return
		}
	case code.IsAlu():
		var reg_a, reg_b uint8
		reg_a, err = cpu.operand(0)
		if err != nil {
			err = errors.Join(ErrOpcodeAlu, ErrOpcodeArg1, err)
			return
		}
		reg_b, err = cpu.operand(1)
		if err != nil {
			err = errors.Join(ErrOpcodeAlu, ErrOpcodeArg2, err)
			return
		}
		err = cpu.Alu(op, reg_a, reg_b)
		if err != nil {
			err = errors.Join(ErrOpcodeAlu, err)
			return
		}
	default:
		err = cpu.doOp(op)
		if err != nil {
			err = errors.Join(ErrOpcodeOp, err)
			return
		}
		if op == OP_HLT {
			next_pc = cpu.Pc
		}
	}

	cpu.Pc = next_pc
	cpu.Ticks += 1

	return
}

// doPc performs the control flow instructions, and returns the new PC.
func (cpu *Cpu) doPc(op CodeOp) (next_pc int, err error) {
	sp := &cpu.Register[REG_SP]

	switch op {
	case OP_CALL:
		ret := cpu.Pc + 2
		if ret > 0xff {
			err = ErrMemoryFault(ret)
			return
		}
		var index uint8
		index, err = cpu.operand(0)
		if err != nil {
			err = errors.Join(ErrOpcodeArg1, err)
			return
		}
		if int(index) >= len(cpu.Register) {
			err = errors.Join(ErrOpcodeArg1, ErrRegisterFault(index))
			return
		}
		// The target is read after the push, so CALL SP jumps to
		// the decremented SP.
		err = cpu.Stack.Push(sp, uint8(ret))
		if err != nil {
			return
		}
		var target uint8
		target, err = cpu.ReadRegister(index)
		if err != nil {
			err = errors.Join(ErrOpcodeArg1, err)
			return
		}
		next_pc = int(target)
	case OP_RET:
		var ret uint8
		ret, err = cpu.Stack.Pop(sp)
		if err != nil {
			return
		}
		next_pc = int(ret)
	case OP_JMP, OP_JEQ, OP_JNE:
		var target uint8
		_, target, err = cpu.operandRegister(0)
		if err != nil {
			err = errors.Join(ErrOpcodeArg1, err)
			return
		}
		equal := (cpu.Flag & FLAG_EQUAL) != 0
		switch {
		case op == OP_JMP,
			op == OP_JEQ && equal,
			op == OP_JNE && !equal:
			next_pc = int(target)
		default:
			next_pc = cpu.Pc + 2
		}
	default:
		err = ErrOpcodeOp
	}

	return
}

// doOp performs the direct action instructions.
func (cpu *Cpu) doOp(op CodeOp) (err error) {
	sp := &cpu.Register[REG_SP]

	switch op {
	case OP_HLT:
		cpu.Halted = true
		if cpu.Verbose {
			log.Printf("cpu: halted at %02x", cpu.Pc)
		}
	case OP_LDI:
		var index, value uint8
		index, err = cpu.operand(0)
		if err != nil {
			err = errors.Join(ErrOpcodeArg1, err)
			return
		}
		value, err = cpu.operand(1)
		if err != nil {
			err = errors.Join(ErrOpcodeArg2, err)
			return
		}
		err = cpu.WriteRegister(index, value)
		if err != nil {
			err = errors.Join(ErrOpcodeArg1, err)
			return
		}
	case OP_PRN:
		var value uint8
		_, value, err = cpu.operandRegister(0)
		if err != nil {
			err = errors.Join(ErrOpcodeArg1, err)
			return
		}
		var channel Channel
		channel, err = cpu.GetChannel()
		if err != nil {
			return
		}
		err = channel.Send(value)
	case OP_POP:
		var index, value uint8
		index, err = cpu.operand(0)
		if err != nil {
			err = errors.Join(ErrOpcodeArg1, err)
			return
		}
		if int(index) >= len(cpu.Register) {
			err = errors.Join(ErrOpcodeArg1, ErrRegisterFault(index))
			return
		}
		// The register is written before SP moves, so POP SP
		// leaves SP one past the popped value.
		value, err = cpu.Stack.Peek(*sp)
		if err != nil {
			return
		}
		cpu.Register[index] = value
		*sp++
	case OP_PUSH:
		var index uint8
		index, err = cpu.operand(0)
		if err != nil {
			err = errors.Join(ErrOpcodeArg1, err)
			return
		}
		if int(index) >= len(cpu.Register) {
			err = errors.Join(ErrOpcodeArg1, ErrRegisterFault(index))
			return
		}
		// SP moves before the register is read, so PUSH SP
		// stores the decremented SP.
		if *sp == 0 {
			err = ErrStackFull
			return
		}
		*sp--
		cpu.Stack.Data[*sp] = cpu.Register[index]
	default:
		err = ErrOpcodeOp
	}

	return
}

// Alu performs the ALU operation op on the registers reg_a and reg_b.
// ADD and MUL write their result to reg_a, modulo 256. CMP sets the
// comparison flag.
func (cpu *Cpu) Alu(op CodeOp, reg_a, reg_b uint8) (err error) {
	switch op {
	case OP_ADD, OP_MUL, OP_CMP:
	default:
		err = ErrUnsupportedOperation(op)
		return
	}

	a, err := cpu.ReadRegister(reg_a)
	if err != nil {
		err = errors.Join(ErrOpcodeArg1, err)
		return
	}
	b, err := cpu.ReadRegister(reg_b)
	if err != nil {
		err = errors.Join(ErrOpcodeArg2, err)
		return
	}

	switch op {
	case OP_ADD:
		cpu.Register[reg_a] = a + b
	case OP_MUL:
		cpu.Register[reg_a] = a * b
	case OP_CMP:
		switch {
		case a < b:
			cpu.Flag = FLAG_LESS
		case a > b:
			cpu.Flag = FLAG_GREATER
		default:
			cpu.Flag = FLAG_EQUAL
		}
	}

	return
}
