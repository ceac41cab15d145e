package cpu

import (
	"fmt"
	"strings"
)

// peek returns a memory word as hex, or "--" if out of range.
func (cpu *Cpu) peek(address int) string {
	word, err := cpu.Memory.Read(address)
	if err != nil {
		return "--"
	}
	return fmt.Sprintf("%02X", word)
}

// Trace returns a single line of CPU state: the PC, the next three
// memory words, and all eight registers, in hexadecimal.
func (cpu *Cpu) Trace() string {
	var text strings.Builder

	fmt.Fprintf(&text, "TRACE: %02X | %v %v %v |",
		cpu.Pc,
		cpu.peek(cpu.Pc),
		cpu.peek(cpu.Pc+1),
		cpu.peek(cpu.Pc+2))

	for _, reg := range cpu.Register {
		fmt.Fprintf(&text, " %02X", reg)
	}

	return text.String()
}

// FlagString returns the comparison flag as letters, upper case when set.
func (cpu *Cpu) FlagString() string {
	flags := []struct {
		bit  uint8
		char rune
	}{
		{FLAG_LESS, 'l'},
		{FLAG_GREATER, 'g'},
		{FLAG_EQUAL, 'e'},
	}

	s := strings.Builder{}
	for _, fl := range flags {
		if cpu.Flag&fl.bit != 0 {
			s.WriteRune(fl.char - 'a' + 'A')
		} else {
			s.WriteRune(fl.char)
		}
	}

	return s.String()
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"pc",
		"flag",
		"r0", "r1", "r2", "r3", "r4", "r5", "r6",
		"sp",
		"stack",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%02X", cpu.Pc)
			if cpu.Halted {
				strval += " (halted)"
			}
		case "flag":
			strval = cpu.FlagString()
		case "r0", "r1", "r2", "r3", "r4", "r5", "r6":
			strval = fmt.Sprintf("%02X", cpu.Register[byte(reg[1]-'0')])
		case "sp":
			strval = fmt.Sprintf("%02X", cpu.Sp())
		case "stack":
			val, err := cpu.Stack.Peek(cpu.Sp())
			if err == nil {
				strval = fmt.Sprintf("%02X (depth %d)", val, cpu.Stack.Depth(cpu.Sp()))
			} else {
				strval = "--"
			}
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}
