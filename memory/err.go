package memory

import (
	"errors"

	"github.com/ezrec/cpusim/translate"
)

var f = translate.From

var (
	ErrBounds         = errors.New(f("memory out of bounds"))
	ErrProgramMissing = errors.New(f("program missing"))
	ErrProgramTooBig  = errors.New(f("program does not fit"))
	ErrRangeInvalid   = errors.New(f("memory range invalid"))
	ErrFormat         = errors.New(f("display format unsupported"))
)

// Op names a memory access.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_READ  = Op(0) // read
	OP_WRITE = Op(1) // write
)

// ErrAccess is an out of bounds word access.
type ErrAccess struct {
	Op   Op
	Addr uint32
}

func (err *ErrAccess) Error() string {
	return f("%v at 0x%08x: %v", err.Op, err.Addr, ErrBounds)
}

func (err *ErrAccess) Unwrap() error {
	return ErrBounds
}

// ErrProgramSize is a program that does not fit its code region.
type ErrProgramSize struct {
	Words int
	Base  uint32
	Limit uint32
}

func (err *ErrProgramSize) Error() string {
	return f("%v words at 0x%08x, limit 0x%08x: %v", err.Words, err.Base, err.Limit, ErrProgramTooBig)
}

func (err *ErrProgramSize) Unwrap() error {
	return ErrProgramTooBig
}

// ErrRange is an invalid display range.
type ErrRange struct {
	Start uint32
	End   uint32
}

func (err *ErrRange) Error() string {
	return f("0x%08x..0x%08x: %v", err.Start, err.End, ErrRangeInvalid)
}

func (err *ErrRange) Unwrap() error {
	return ErrRangeInvalid
}
