package cpu

const (
	STACK_SIZE  = 255  // Number of words in the stack.
	STACK_EMPTY = 0xff // Stack pointer value of an empty stack.
)

// Stack is a downward growing stack, addressed by an external stack
// pointer. The stack pointer indexes the most recently pushed word.
type Stack struct {
	Data [STACK_SIZE]uint8
}

// Push decrements the stack pointer, then stores value.
func (s *Stack) Push(sp *uint8, value uint8) (err error) {
	if *sp == 0 {
		err = ErrStackFull
		return
	}

	*sp--
	s.Data[*sp] = value
	return
}

// Pop reads the value at the stack pointer, then increments it.
func (s *Stack) Pop(sp *uint8) (value uint8, err error) {
	value, err = s.Peek(*sp)
	if err != nil {
		return
	}

	*sp++
	return
}

// Peek reads the value at the stack pointer.
func (s *Stack) Peek(sp uint8) (value uint8, err error) {
	if int(sp) >= len(s.Data) {
		err = ErrStackEmpty
		return
	}

	value = s.Data[sp]
	return
}

// Depth returns the number of words on the stack for a stack pointer.
func (s *Stack) Depth(sp uint8) int {
	if int(sp) >= len(s.Data) {
		return 0
	}
	return len(s.Data) - int(sp)
}

func (s *Stack) Reset() {
	clear(s.Data[:])
}
