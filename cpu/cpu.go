package cpu

import (
	"errors"
	"fmt"
	"iter"
	"maps"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/cpusim/alu"
	"github.com/ezrec/cpusim/memory"
)

const (
	REGISTER_COUNT = 8     // Size of the register file.
	CODE_BASE      = 0x100 // Default load address of a program.
)

var _cpu_defines = map[string]string{
	"REGISTER_COUNT": fmt.Sprintf("%v", REGISTER_COUNT),
	"CODE_BASE":      fmt.Sprintf("0x%x", CODE_BASE),
}

// Defines for the cpu
func Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Config is the machine layout.
type Config struct {
	MemorySize uint32   // Memory size in bytes; a multiple of the word size.
	CodeBase   uint32   // Program load address; code runs from here to the end of memory.
	MaxSteps   int      // If non-zero, the step ceiling of a session.
	Mode       alu.Mode // Integer mode after a reset.
}

// DefaultConfig returns the default machine layout.
func DefaultConfig() Config {
	return Config{
		MemorySize: memory.MEMORY_SIZE,
		CodeBase:   CODE_BASE,
		Mode:       alu.MODE_SIGNED,
	}
}

// Validate checks the layout for consistency.
func (cfg Config) Validate() (err error) {
	switch {
	case cfg.MemorySize == 0 || cfg.MemorySize%memory.WORD_SIZE != 0:
		err = errors.Join(ErrConfig, fmt.Errorf("memory_size %v", cfg.MemorySize))
	case cfg.CodeBase%memory.WORD_SIZE != 0 || cfg.CodeBase >= cfg.MemorySize:
		err = errors.Join(ErrConfig, fmt.Errorf("code_base 0x%x", cfg.CodeBase))
	case cfg.MaxSteps < 0:
		err = errors.Join(ErrConfig, fmt.Errorf("max_steps %v", cfg.MaxSteps))
	case cfg.Mode != alu.MODE_SIGNED && cfg.Mode != alu.MODE_UNSIGNED:
		err = errors.Join(ErrConfig, fmt.Errorf("mode %v", cfg.Mode))
	}
	return
}

// Cpu is the processor simulation. It is not safe for concurrent use.
type Cpu struct {
	Verbose bool               // Set to enable verbose logging.
	Logger  logrus.FieldLogger // Log sink; the standard logger if nil.

	Config Config // Machine layout; applied by NewCpu.

	Ticks    int // Instructions retired.
	Calls    int // CALL instructions executed.
	Depth    int // Current call depth.
	MaxDepth int // Deepest call depth reached.

	mem      *memory.Memory
	stack    Stack
	register [REGISTER_COUNT]int32
	flags    alu.Flags
	pc       uint32
	mode     alu.Mode
	halted   bool
	fault    *ErrFault
}

// State is a value copy of the processor state.
type State struct {
	Registers [REGISTER_COUNT]int32
	Flags     alu.Flags
	Pc        uint32
	Sp        uint32
	Mode      alu.Mode
	Halted    bool

	Ticks    int
	Calls    int
	Depth    int
	MaxDepth int
}

var _alu_ops = map[Opcode](func(mode alu.Mode, a, b int32) alu.Result){
	OP_ADD: alu.Add,
	OP_SUB: alu.Sub,
	OP_MUL: alu.Mul,
	OP_AND: alu.And,
	OP_OR:  alu.Or,
	OP_XOR: alu.Xor,
	OP_SHL: alu.Shl,
	OP_SHR: alu.Shr,
	OP_EQ:  alu.Eq,
	OP_NEQ: alu.Neq,
	OP_GT:  alu.Gt,
	OP_LT:  alu.Lt,
	OP_GE:  alu.Ge,
	OP_LE:  alu.Le,
}

// NewCpu creates a new processor, in the reset state.
func NewCpu(cfg Config) (cpu *Cpu, err error) {
	err = cfg.Validate()
	if err != nil {
		return
	}

	mem := memory.New(cfg.MemorySize)
	cpu = &Cpu{
		Config: cfg,
		mem:    mem,
		stack:  Stack{Memory: mem},
	}

	cpu.Reset()

	return
}

func (cpu *Cpu) log() logrus.FieldLogger {
	if cpu.Logger == nil {
		return logrus.StandardLogger()
	}
	return cpu.Logger
}

// Reset the processor state.
// - Clears the registers, flags, memory, and counters.
// - Sets PC to the code base, and SP to the top of memory.
// - Restores the configured integer mode.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		cpu.log().Debug("cpu: reset")
	}

	clear(cpu.register[:])
	cpu.flags = 0
	cpu.mem.Clear()
	cpu.stack.Reset()
	cpu.pc = cpu.Config.CodeBase
	cpu.mode = cpu.Config.Mode
	cpu.halted = false
	cpu.fault = nil

	cpu.Ticks = 0
	cpu.Calls = 0
	cpu.Depth = 0
	cpu.MaxDepth = 0
}

// Load copies a resolved word stream to the code base.
func (cpu *Cpu) Load(program []uint32) (err error) {
	err = cpu.mem.Load(cpu.Config.CodeBase, cpu.mem.Size(), program)
	if err != nil {
		return
	}

	if cpu.Verbose {
		cpu.log().WithFields(logrus.Fields{
			"base":  fmt.Sprintf("0x%08x", cpu.Config.CodeBase),
			"words": len(program),
		}).Debug("cpu: load")
	}

	return
}

// SetRegister sets a register, before a run.
func (cpu *Cpu) SetRegister(index int, value int32) (err error) {
	if index < 0 || index >= REGISTER_COUNT {
		err = &ErrRegister{Register: uint8(index)}
		return
	}

	cpu.register[index] = value
	return
}

// SetMode selects signed or unsigned integer semantics.
func (cpu *Cpu) SetMode(mode alu.Mode) {
	cpu.mode = mode
}

// Registers returns a copy of the register file.
func (cpu *Cpu) Registers() [REGISTER_COUNT]int32 {
	return cpu.register
}

// Flags returns the flag vector of the last flag-producing instruction.
func (cpu *Cpu) Flags() alu.Flags {
	return cpu.flags
}

// Pc returns the address of the next instruction.
func (cpu *Cpu) Pc() uint32 {
	return cpu.pc
}

// Sp returns the stack pointer.
func (cpu *Cpu) Sp() uint32 {
	return cpu.stack.Sp
}

// Mode returns the integer mode.
func (cpu *Cpu) Mode() alu.Mode {
	return cpu.mode
}

// Halted returns true after HALT or a fault.
func (cpu *Cpu) Halted() bool {
	return cpu.halted
}

// Fault returns the fault that halted the processor, if any.
func (cpu *Cpu) Fault() (err error) {
	if cpu.fault != nil {
		err = cpu.fault
	}
	return
}

// ReadWord returns the memory word at addr.
func (cpu *Cpu) ReadWord(addr uint32) (value uint32, err error) {
	return cpu.mem.Read(addr)
}

// Bytes returns a copy of the inclusive memory range [start, end].
func (cpu *Cpu) Bytes(start, end uint32) ([]byte, error) {
	return cpu.mem.Bytes(start, end)
}

// Dump renders the inclusive memory range [start, end].
func (cpu *Cpu) Dump(start, end uint32, format memory.Format) (string, error) {
	return cpu.mem.Dump(start, end, format)
}

// DumpRows renders the inclusive memory range [start, end], row bytes per line.
func (cpu *Cpu) DumpRows(start, end uint32, format memory.Format, row uint32) (string, error) {
	return cpu.mem.DumpRows(start, end, format, row)
}

// Snapshot returns a copy of the processor state.
func (cpu *Cpu) Snapshot() State {
	return State{
		Registers: cpu.register,
		Flags:     cpu.flags,
		Pc:        cpu.pc,
		Sp:        cpu.stack.Sp,
		Mode:      cpu.mode,
		Halted:    cpu.halted,
		Ticks:     cpu.Ticks,
		Calls:     cpu.Calls,
		Depth:     cpu.Depth,
		MaxDepth:  cpu.MaxDepth,
	}
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"pc", "sp",
		"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7",
		"flags", "mode", "halted", "ticks",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%04X_%04X", cpu.pc>>16, cpu.pc&0xffff)
		case "sp":
			sp := cpu.stack.Sp
			if cpu.stack.Empty() {
				strval = fmt.Sprintf("%04X_%04X ----_----", sp>>16, sp&0xffff)
			} else {
				top, _ := cpu.stack.Peek()
				strval = fmt.Sprintf("%04X_%04X %04X_%04X", sp>>16, sp&0xffff, top>>16, top&0xffff)
			}
		case "r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7":
			val := cpu.register[byte(reg[1]-'0')]
			strval = fmt.Sprintf("%04X_%04X %v", uint32(val)>>16, uint32(val)&0xffff, val)
		case "flags":
			strval = cpu.flags.String()
		case "mode":
			strval = cpu.mode.String()
		case "halted":
			strval = "false"
			if cpu.halted {
				strval = "true"
			}
			if cpu.fault != nil {
				strval += " " + cpu.fault.Error()
			}
		case "ticks":
			strval = fmt.Sprintf("%v calls %v depth %v/%v", cpu.Ticks, cpu.Calls, cpu.Depth, cpu.MaxDepth)
		}
		text += fmt.Sprintf("% 6s: %v\n", reg, strval)
	}

	return
}

// inCode returns true if pc addresses a whole, aligned instruction in the code region.
func (cpu *Cpu) inCode(pc uint32) bool {
	base := cpu.Config.CodeBase
	return pc >= base &&
		uint64(pc)+memory.WORD_SIZE <= uint64(cpu.mem.Size()) &&
		(pc-base)%memory.WORD_SIZE == 0
}

// trap halts the processor on a fault.
func (cpu *Cpu) trap(word uint32, cause error) (err error) {
	fault := &ErrFault{Pc: cpu.pc, Word: word, Err: cause}

	cpu.halted = true
	cpu.fault = fault

	if cpu.Verbose {
		cpu.log().WithFields(logrus.Fields{
			"pc":   fmt.Sprintf("0x%08x", cpu.pc),
			"word": fmt.Sprintf("0x%08x", word),
		}).Warnf("cpu: fault: %v", cause)
	}

	err = fault
	return
}

// Step fetches, decodes, and executes the instruction at PC.
func (cpu *Cpu) Step() (err error) {
	if cpu.halted {
		err = ErrHalted
		return
	}

	if cpu.Config.MaxSteps > 0 && cpu.Ticks >= cpu.Config.MaxSteps {
		err = ErrStepLimit
		return
	}

	if !cpu.inCode(cpu.pc) {
		err = cpu.trap(0, ErrPcBounds)
		return
	}

	word, err := cpu.mem.Read(cpu.pc)
	if err != nil {
		err = cpu.trap(0, errors.Join(ErrPcBounds, err))
		return
	}

	inst, err := Decode(word)
	if err != nil {
		err = cpu.trap(word, err)
		return
	}

	if cpu.Verbose {
		cpu.log().WithFields(logrus.Fields{
			"pc":   fmt.Sprintf("0x%08x", cpu.pc),
			"word": fmt.Sprintf("0x%08x", word),
			"inst": inst.String(),
		}).Debug("cpu: step")
	}

	err = cpu.Execute(inst)

	return
}

// Execute executes a single decoded instruction at PC.
// On success the instruction is retired and PC is advanced or redirected.
// On a fault nothing but the flag vector is modified, and the processor halts.
func (cpu *Cpu) Execute(inst Instruction) (err error) {
	if cpu.halted {
		err = ErrHalted
		return
	}

	defer func() {
		if err != nil {
			err = cpu.trap(inst.Encode(), err)
		}
	}()

	err = inst.Validate()
	if err != nil {
		return
	}

	next_pc := cpu.pc + memory.WORD_SIZE

	r := &cpu.register
	rd, ra, rb := inst.Operands[0], inst.Operands[1], inst.Operands[2]

	switch op := inst.Opcode; op {
	case OP_ADD, OP_SUB, OP_MUL, OP_AND, OP_OR, OP_XOR,
		OP_EQ, OP_NEQ, OP_GT, OP_LT, OP_GE, OP_LE:
		res := _alu_ops[op](cpu.mode, r[ra], r[rb])
		r[rd], cpu.flags = res.Value, res.Flags
	case OP_SHL, OP_SHR:
		res := _alu_ops[op](cpu.mode, r[ra], int32(inst.Imm8()))
		r[rd], cpu.flags = res.Value, res.Flags
	case OP_DIV:
		var res alu.Result
		res, err = alu.Div(cpu.mode, r[ra], r[rb])
		cpu.flags = res.Flags
		if err != nil {
			err = errors.Join(ErrOpcodeAlu, err)
			return
		}
		r[rd] = res.Value
	case OP_NOT:
		res := alu.Not(cpu.mode, r[ra])
		r[rd], cpu.flags = res.Value, res.Flags
	case OP_LOAD:
		var value uint32
		value, err = cpu.mem.Read(uint32(r[ra]) + uint32(inst.Imm8()))
		if err != nil {
			err = errors.Join(ErrOpcodeMemory, err)
			return
		}
		r[rd] = int32(value)
	case OP_STORE:
		err = cpu.mem.Write(uint32(r[ra])+uint32(inst.Imm8()), uint32(r[rd]))
		if err != nil {
			err = errors.Join(ErrOpcodeMemory, err)
			return
		}
	case OP_JUMP:
		next_pc = uint32(r[rd])
	case OP_JZ:
		if cpu.flags.Has(alu.FLAG_ZERO) {
			next_pc = uint32(r[rd])
		}
	case OP_JNZ:
		if !cpu.flags.Has(alu.FLAG_ZERO) {
			next_pc = uint32(r[rd])
		}
	case OP_CALL:
		err = cpu.stack.Push(next_pc)
		if err != nil {
			err = errors.Join(ErrOpcodeStack, err)
			return
		}
		next_pc = uint32(r[rd])
		cpu.Calls++
		cpu.Depth++
		cpu.MaxDepth = max(cpu.MaxDepth, cpu.Depth)
	case OP_RET:
		next_pc, err = cpu.stack.Pop()
		if err != nil {
			err = errors.Join(ErrOpcodeStack, err)
			return
		}
		cpu.Depth = max(cpu.Depth-1, 0)
	case OP_PUSH:
		err = cpu.stack.Push(uint32(r[rd]))
		if err != nil {
			err = errors.Join(ErrOpcodeStack, err)
			return
		}
	case OP_POP:
		var value uint32
		value, err = cpu.stack.Pop()
		if err != nil {
			err = errors.Join(ErrOpcodeStack, err)
			return
		}
		r[rd] = int32(value)
	case OP_HALT:
		cpu.halted = true
	case OP_MOV:
		r[rd] = r[ra]
	case OP_LDI:
		r[rd] = int32(inst.Imm16())
	default:
		err = ErrOpcode(inst.Encode())
		return
	}

	cpu.pc = next_pc
	cpu.Ticks++

	return
}

// Run steps until the processor halts.
// Returns nil on HALT, the fault on a fault, or ErrStepLimit when the
// configured step ceiling is reached first.
func (cpu *Cpu) Run() (err error) {
	for !cpu.halted {
		err = cpu.Step()
		if err != nil {
			return
		}
	}

	err = cpu.Fault()
	return
}
