package cpu

const (
	RAM_SIZE = 255 // Number of words of memory.
)

// Memory is the bounds-checked main memory of the machine.
type Memory struct {
	Data [RAM_SIZE]uint8
}

// Read returns the word at address.
func (m *Memory) Read(address int) (value uint8, err error) {
	if address < 0 || address >= len(m.Data) {
		err = ErrMemoryFault(address)
		return
	}

	value = m.Data[address]
	return
}

// Write sets the word at address.
func (m *Memory) Write(address int, value uint8) (err error) {
	if address < 0 || address >= len(m.Data) {
		err = ErrMemoryFault(address)
		return
	}

	m.Data[address] = value
	return
}

// Load copies words into memory, starting at address.
func (m *Memory) Load(address int, words []uint8) (err error) {
	end := address + len(words)
	if address < 0 || end > len(m.Data) {
		err = ErrMemoryFault(end - 1)
		if address < 0 {
			err = ErrMemoryFault(address)
		}
		return
	}

	copy(m.Data[address:], words)
	return
}

// Reset zero fills the memory.
func (m *Memory) Reset() {
	clear(m.Data[:])
}
