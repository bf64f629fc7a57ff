package emulator

import (
	"github.com/ezrec/cpusim/translate"
)

var f = translate.From

// ErrRuntime indicates the program location of a runtime error.
type ErrRuntime struct {
	Pc    uint32
	Index int // Program word index, or -1 outside of the program.
	Err   error
}

func (err *ErrRuntime) Error() string {
	return f("pc 0x%08x [%v] %v", err.Pc, err.Index, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
