package io

import (
	"fmt"
	"io"
	"iter"
	"maps"
	"slices"
)

// Tape writes every received word as a decimal line to Output, and
// keeps a record of the words it has been sent.
type Tape struct {
	Output io.Writer

	sent []uint8
}

var _ Channel = (*Tape)(nil)

// Defines returns an iter of defines for the channel.
func (tc *Tape) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"TAPE_RADIX": "10",
	})
}

// Rewind forgets the words sent so far. The output itself can not be
// rewound.
func (tc *Tape) Rewind() {
	tc.sent = tc.sent[:0]
}

// Send writes value to the output stream as a decimal line.
func (tc *Tape) Send(value uint8) (err error) {
	tc.sent = append(tc.sent, value)

	if tc.Output == nil {
		return
	}

	_, err = fmt.Fprintf(tc.Output, "%d\n", value)
	if err != nil {
		err = ErrTapeWrite{Err: err}
	}

	return
}

// Sent returns an iterator over the words sent since the last rewind.
func (tc *Tape) Sent() iter.Seq[uint8] {
	return slices.Values(tc.sent)
}
