package cpu

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted         = errors.New(f("halted"))
	ErrStackEmpty     = errors.New(f("stack empty"))
	ErrStackFull      = errors.New(f("stack full"))
	ErrChannelInvalid = errors.New(f("channel invalid"))

	// Instruction decode errors
	ErrOpcodeUnknown = errors.New(f("opcode unknown"))
	ErrOpcodeAlu     = errors.New(f("alu"))
	ErrOpcodePc      = errors.New(f("pc"))
	ErrOpcodeOp      = errors.New(f("op"))
	ErrOpcodeArg1    = errors.New(f("arg1"))
	ErrOpcodeArg2    = errors.New(f("arg2"))

	// Loader errors
	ErrProgramSize = errors.New(f("program exceeds memory"))

	// Assembler errors
	ErrEquateSyntax      = errors.New(f(".equ syntax"))
	ErrEquateDuplicate   = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate    = errors.New(f("label duplicated"))
	ErrLabelSyntax       = errors.New(f("label syntax"))
	ErrDataSyntax        = errors.New(f(".db syntax"))
	ErrOpcodeExtraArgs   = errors.New(f("excessive arguments"))
	ErrOpcodeMissingArgs = errors.New(f("missing arguments"))
	ErrOpcodeInvalid     = errors.New(f("opcode invalid"))
	ErrRegisterInvalid   = errors.New(f("register invalid"))
	ErrImmediateRange    = errors.New(f("immediate out of range"))
	ErrDirectiveInvalid  = errors.New(f("directive invalid"))
)

// ErrMemoryFault is an access outside of the memory array.
type ErrMemoryFault int

func (em ErrMemoryFault) Error() string {
	return f("memory fault at address %d", int(em))
}

func (em ErrMemoryFault) Is(err error) (ok bool) {
	_, ok = err.(ErrMemoryFault)
	return
}

// ErrRegisterFault is an access outside of the register file.
type ErrRegisterFault int

func (er ErrRegisterFault) Error() string {
	return f("register fault at index %d", int(er))
}

func (er ErrRegisterFault) Is(err error) (ok bool) {
	_, ok = err.(ErrRegisterFault)
	return
}

// ErrUnsupportedOperation is an operation the ALU does not implement.
type ErrUnsupportedOperation CodeOp

func (eu ErrUnsupportedOperation) Error() string {
	return f("unsupported alu operation %v", CodeOp(eu).String())
}

func (eu ErrUnsupportedOperation) Is(err error) (ok bool) {
	_, ok = err.(ErrUnsupportedOperation)
	return
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrOpcode Code

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%02x %v", uint8(eo), Code(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseValue string

func (err ErrParseValue) Error() string {
	return f("'%v' is not a value or register", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
