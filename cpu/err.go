package cpu

import (
	"errors"

	"github.com/ezrec/cpusim/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted       = errors.New(f("cpu halted"))
	ErrStepLimit    = errors.New(f("step limit reached"))
	ErrPcBounds     = errors.New(f("pc out of code region"))
	ErrStackEmpty   = errors.New(f("stack empty"))
	ErrStackFull    = errors.New(f("stack full"))
	ErrConfig       = errors.New(f("config invalid"))
	ErrProgramBase  = errors.New(f("program base differs from code base"))
	ErrBinaryLength = errors.New(f("binary length not a multiple of the word size"))

	// Instruction decode errors
	ErrOpcodeInvalid   = errors.New(f("opcode invalid"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
	ErrImmediateRange  = errors.New(f("immediate out of range"))
	ErrArgumentCount   = errors.New(f("argument count"))

	// Instruction execution classes
	ErrOpcodeAlu    = errors.New(f("alu"))
	ErrOpcodeMemory = errors.New(f("memory"))
	ErrOpcodeStack  = errors.New(f("stack"))
)

// ErrOpcode is an instruction word with an undefined opcode.
type ErrOpcode uint32

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%02x in 0x%08x", uint32(eo)>>24, uint32(eo))
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	if err == ErrOpcodeInvalid {
		return true
	}
	_, ok = err.(ErrOpcode)
	return
}

// ErrRegister is a register operand outside the register file.
type ErrRegister struct {
	Slot     int
	Register uint8
}

func (err *ErrRegister) Error() string {
	return f("operand %v r%v: %v", err.Slot, err.Register, ErrRegisterInvalid)
}

func (err *ErrRegister) Unwrap() error {
	return ErrRegisterInvalid
}

// ErrImmediate is an immediate that does not fit its field.
type ErrImmediate struct {
	Opcode Opcode
	Value  int
}

func (err *ErrImmediate) Error() string {
	return f("%v %v: %v", err.Opcode, err.Value, ErrImmediateRange)
}

func (err *ErrImmediate) Unwrap() error {
	return ErrImmediateRange
}

// ErrArguments is an encoder call with the wrong operand count.
type ErrArguments struct {
	Opcode Opcode
	Want   int
	Got    int
}

func (err *ErrArguments) Error() string {
	return f("%v wants %v operands, got %v", err.Opcode, err.Want, err.Got)
}

func (err *ErrArguments) Unwrap() error {
	return ErrArgumentCount
}

// ErrFault is a fatal fault. The processor is halted and its state is
// that from before the faulting instruction.
type ErrFault struct {
	Pc   uint32 // Address of the faulting instruction.
	Word uint32 // Instruction word, if it was fetched.
	Err  error
}

func (err *ErrFault) Error() string {
	return f("pc 0x%08x (0x%08x): %v", err.Pc, err.Word, err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}
