// Package io provides the output channels for the LS-8 emulator.
// Values printed by the CPU are sent, one word at a time, to the
// channel attached to the CPU.
package io

import (
	"iter"
)

// Channel defines the interface for all output channels of the LS-8 system.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Send writes a single word to the channel.
	Send(value uint8) error
	// Defines returns the assembler equates the channel provides.
	Defines() iter.Seq2[string, string]
}
