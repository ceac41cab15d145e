package emulator

import (
	"fmt"
	"io"
	"strings"

	"github.com/mgutz/ansi"

	"github.com/ezrec/ls8/cpu"
)

var chSame = ansi.ColorCode("default:default")
var chNew = ansi.ColorCode("default+bu:default")

// tracer writes CPU trace lines, remembering the registers of the
// previous line so that changes can be highlighted.
type tracer struct {
	last  [cpu.REG_COUNT]uint8
	valid bool
}

func (tr *tracer) reset() {
	tr.valid = false
}

func (tr *tracer) trace(out io.Writer, cp *cpu.Cpu, color bool) (err error) {
	line := cp.Trace()

	if color && tr.valid {
		// Registers are the last REG_COUNT " XX" columns.
		prefix := line[:len(line)-3*cpu.REG_COUNT]
		s := strings.Builder{}
		s.WriteString(prefix)
		for n, reg := range cp.Register {
			ch := chSame
			if reg != tr.last[n] {
				ch = chNew
			}
			fmt.Fprintf(&s, " %v%02X%v", ch, reg, ansi.Reset)
		}
		line = s.String()
	}

	tr.last = cp.Register
	tr.valid = true

	_, err = fmt.Fprintln(out, line)
	return
}
