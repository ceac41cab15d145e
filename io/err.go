package io

import (
	"github.com/ezrec/ls8/translate"
)

var f = translate.From

// ErrTapeWrite is a failure of the tape's output stream.
type ErrTapeWrite struct {
	Err error
}

func (err ErrTapeWrite) Error() string {
	return f("tape write %v", err.Err)
}

func (err ErrTapeWrite) Unwrap() error {
	return err.Err
}
