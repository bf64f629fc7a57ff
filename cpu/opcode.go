package cpu

import (
	"fmt"
)

// Opcode is the most significant byte of an instruction word.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_ADD   = Opcode(0x00) // ADD
	OP_SUB   = Opcode(0x01) // SUB
	OP_MUL   = Opcode(0x02) // MUL
	OP_DIV   = Opcode(0x03) // DIV
	OP_AND   = Opcode(0x04) // AND
	OP_OR    = Opcode(0x05) // OR
	OP_XOR   = Opcode(0x06) // XOR
	OP_NOT   = Opcode(0x07) // NOT
	OP_SHL   = Opcode(0x08) // SHL
	OP_SHR   = Opcode(0x09) // SHR
	OP_EQ    = Opcode(0x0a) // EQ
	OP_NEQ   = Opcode(0x0b) // NEQ
	OP_GT    = Opcode(0x0c) // GT
	OP_LT    = Opcode(0x0d) // LT
	OP_GE    = Opcode(0x0e) // GE
	OP_LE    = Opcode(0x0f) // LE
	OP_LOAD  = Opcode(0x10) // LOAD
	OP_STORE = Opcode(0x11) // STORE
	OP_JUMP  = Opcode(0x12) // JUMP
	OP_JZ    = Opcode(0x13) // JZ
	OP_JNZ   = Opcode(0x14) // JNZ
	OP_CALL  = Opcode(0x15) // CALL
	OP_RET   = Opcode(0x16) // RET
	OP_PUSH  = Opcode(0x17) // PUSH
	OP_POP   = Opcode(0x18) // POP
	OP_HALT  = Opcode(0x19) // HALT
	OP_MOV   = Opcode(0x1a) // MOV
	OP_LDI   = Opcode(0x1b) // LDI

	OP_COUNT = 0x1c // Number of defined opcodes.
)

// Shape is the operand layout of an opcode.
type Shape int

//go:generate go tool stringer -linecomment -type=Shape
const (
	SHAPE_NONE = Shape(0) // none
	SHAPE_R    = Shape(1) // r
	SHAPE_RR   = Shape(2) // rr
	SHAPE_RRR  = Shape(3) // rrr
	SHAPE_RRI  = Shape(4) // rri
	SHAPE_RI16 = Shape(5) // ri16
)

var _opcode_shape = [OP_COUNT]Shape{
	OP_ADD:   SHAPE_RRR,
	OP_SUB:   SHAPE_RRR,
	OP_MUL:   SHAPE_RRR,
	OP_DIV:   SHAPE_RRR,
	OP_AND:   SHAPE_RRR,
	OP_OR:    SHAPE_RRR,
	OP_XOR:   SHAPE_RRR,
	OP_NOT:   SHAPE_RR,
	OP_SHL:   SHAPE_RRI,
	OP_SHR:   SHAPE_RRI,
	OP_EQ:    SHAPE_RRR,
	OP_NEQ:   SHAPE_RRR,
	OP_GT:    SHAPE_RRR,
	OP_LT:    SHAPE_RRR,
	OP_GE:    SHAPE_RRR,
	OP_LE:    SHAPE_RRR,
	OP_LOAD:  SHAPE_RRI,
	OP_STORE: SHAPE_RRI,
	OP_JUMP:  SHAPE_R,
	OP_JZ:    SHAPE_R,
	OP_JNZ:   SHAPE_R,
	OP_CALL:  SHAPE_R,
	OP_RET:   SHAPE_NONE,
	OP_PUSH:  SHAPE_R,
	OP_POP:   SHAPE_R,
	OP_HALT:  SHAPE_NONE,
	OP_MOV:   SHAPE_RR,
	OP_LDI:   SHAPE_RI16,
}

// Valid returns true if the opcode is defined.
func (op Opcode) Valid() bool {
	return op >= 0 && op < OP_COUNT
}

// Shape returns the operand layout of a defined opcode.
func (op Opcode) Shape() Shape {
	return _opcode_shape[op]
}

// Registers returns the number of leading operand bytes that name registers.
func (shape Shape) Registers() int {
	switch shape {
	case SHAPE_R, SHAPE_RI16:
		return 1
	case SHAPE_RR, SHAPE_RRI:
		return 2
	case SHAPE_RRR:
		return 3
	}
	return 0
}

// Instruction is a decoded instruction word.
type Instruction struct {
	Opcode   Opcode
	Operands [3]uint8 // Bits 23-16, 15-8, 7-0 of the word.
}

// unpack splits a word without validating it.
func unpack(word uint32) Instruction {
	return Instruction{
		Opcode:   Opcode(word >> 24),
		Operands: [3]uint8{uint8(word >> 16), uint8(word >> 8), uint8(word)},
	}
}

// Decode an instruction word.
// Undefined opcodes, and register operands outside the register file, are errors.
func Decode(word uint32) (inst Instruction, err error) {
	inst = unpack(word)
	err = inst.Validate()
	return
}

// Validate checks the opcode and the register operands of its shape.
func (inst Instruction) Validate() (err error) {
	if !inst.Opcode.Valid() {
		err = ErrOpcode(inst.Encode())
		return
	}

	for slot := range inst.Opcode.Shape().Registers() {
		if inst.Operands[slot] >= REGISTER_COUNT {
			err = &ErrRegister{Slot: slot, Register: inst.Operands[slot]}
			return
		}
	}

	return
}

// Encode returns the instruction word.
func (inst Instruction) Encode() uint32 {
	return uint32(uint8(inst.Opcode))<<24 |
		uint32(inst.Operands[0])<<16 |
		uint32(inst.Operands[1])<<8 |
		uint32(inst.Operands[2])
}

// Imm8 returns the unsigned 8-bit immediate of a SHAPE_RRI instruction.
func (inst Instruction) Imm8() uint8 {
	return inst.Operands[2]
}

// Imm16 returns the signed 16-bit immediate of a SHAPE_RI16 instruction.
func (inst Instruction) Imm16() int16 {
	return int16(uint16(inst.Operands[1])<<8 | uint16(inst.Operands[2]))
}

// MakeNone creates an instruction without operands.
func MakeNone(op Opcode) Instruction {
	return Instruction{Opcode: op}
}

// MakeR creates a single register instruction.
func MakeR(op Opcode, r uint8) Instruction {
	return Instruction{Opcode: op, Operands: [3]uint8{r, 0, 0}}
}

// MakeRR creates a two register instruction.
func MakeRR(op Opcode, rd, ra uint8) Instruction {
	return Instruction{Opcode: op, Operands: [3]uint8{rd, ra, 0}}
}

// MakeRRR creates a three register instruction.
func MakeRRR(op Opcode, rd, ra, rb uint8) Instruction {
	return Instruction{Opcode: op, Operands: [3]uint8{rd, ra, rb}}
}

// MakeRRI creates a two register instruction with an 8-bit immediate.
func MakeRRI(op Opcode, rd, ra uint8, imm uint8) Instruction {
	return Instruction{Opcode: op, Operands: [3]uint8{rd, ra, imm}}
}

// MakeRI16 creates a register instruction with a signed 16-bit immediate.
func MakeRI16(op Opcode, rd uint8, imm int16) Instruction {
	return Instruction{Opcode: op, Operands: [3]uint8{rd, uint8(uint16(imm) >> 8), uint8(imm)}}
}

// Make creates an instruction of any shape from integer operands, as an
// assembler or configuration front end would.
func Make(op Opcode, args ...int) (inst Instruction, err error) {
	if !op.Valid() {
		err = ErrOpcode(uint32(uint8(op)) << 24)
		return
	}

	shape := op.Shape()
	want := shape.Registers()
	if shape == SHAPE_RRI || shape == SHAPE_RI16 {
		want++
	}
	if len(args) != want {
		err = &ErrArguments{Opcode: op, Want: want, Got: len(args)}
		return
	}

	for slot := range shape.Registers() {
		if args[slot] < 0 || args[slot] >= REGISTER_COUNT {
			err = &ErrRegister{Slot: slot, Register: uint8(args[slot])}
			return
		}
	}

	switch shape {
	case SHAPE_NONE:
		inst = MakeNone(op)
	case SHAPE_R:
		inst = MakeR(op, uint8(args[0]))
	case SHAPE_RR:
		inst = MakeRR(op, uint8(args[0]), uint8(args[1]))
	case SHAPE_RRR:
		inst = MakeRRR(op, uint8(args[0]), uint8(args[1]), uint8(args[2]))
	case SHAPE_RRI:
		if args[2] < 0 || args[2] > 0xff {
			err = &ErrImmediate{Opcode: op, Value: args[2]}
			return
		}
		inst = MakeRRI(op, uint8(args[0]), uint8(args[1]), uint8(args[2]))
	case SHAPE_RI16:
		if args[1] < -0x8000 || args[1] > 0x7fff {
			err = &ErrImmediate{Opcode: op, Value: args[1]}
			return
		}
		inst = MakeRI16(op, uint8(args[0]), int16(args[1]))
	}

	return
}

// String returns the assembly language representation of this instruction.
// Undefined opcodes render as a raw data word.
func (inst Instruction) String() (out string) {
	op := inst.Opcode
	if !op.Valid() {
		out = fmt.Sprintf(".word 0x%08x", inst.Encode())
		return
	}

	o := inst.Operands
	switch op.Shape() {
	case SHAPE_NONE:
		out = op.String()
	case SHAPE_R:
		out = fmt.Sprintf("%v r%d", op, o[0])
	case SHAPE_RR:
		out = fmt.Sprintf("%v r%d, r%d", op, o[0], o[1])
	case SHAPE_RRR:
		out = fmt.Sprintf("%v r%d, r%d, r%d", op, o[0], o[1], o[2])
	case SHAPE_RRI:
		out = fmt.Sprintf("%v r%d, r%d, %d", op, o[0], o[1], inst.Imm8())
	case SHAPE_RI16:
		out = fmt.Sprintf("%v r%d, %d", op, o[0], inst.Imm16())
	}

	return
}
