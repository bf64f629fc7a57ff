// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"
	"maps"

	"github.com/ezrec/cpusim/cpu"
	"github.com/ezrec/cpusim/internal"
	"github.com/ezrec/cpusim/memory"
)

const (
	MAX_STEPS = 1_000_000 // Default step ceiling of a session.
)

var _emulator_defines = map[string]string{
	"MAX_STEPS": fmt.Sprintf("%v", MAX_STEPS),
}

// Defines returns an iterator over all of the defines
func Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		cpu.Defines(),
		memory.Defines(),
	)
}

// Emulator state. Processor + resolved program.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the processor simulation.
	Program  *cpu.Program // Reference to the currently running program.
}

// NewEmulator creates a new emulator with an empty program.
func NewEmulator(cfg cpu.Config) (emu *Emulator, err error) {
	cp, err := cpu.NewCpu(cfg)
	if err != nil {
		return
	}

	emu = &Emulator{
		Cpu:     cp,
		Program: &cpu.Program{Base: cfg.CodeBase, Words: []uint32{}},
	}

	return
}

// Reset the processor, and load the program at the code base.
func (emu *Emulator) Reset() (err error) {
	if emu.Program.Base != emu.Cpu.Config.CodeBase {
		err = cpu.ErrProgramBase
		return
	}

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()

	err = emu.Cpu.Load(emu.Program.Words)
	if err != nil {
		return
	}

	return
}

// Index returns the program index of the next instruction, or -1 if PC is
// outside of the program.
func (emu *Emulator) Index() int {
	dbg := emu.Program.Debug(emu.Cpu.Pc())
	if dbg.Instruction == nil {
		return -1
	}
	return dbg.Index
}

// Instruction returns the next instruction to execute.
func (emu *Emulator) Instruction() (inst cpu.Instruction, ok bool) {
	dbg := emu.Program.Debug(emu.Cpu.Pc())
	if dbg.Instruction == nil {
		return
	}

	inst = *dbg.Instruction
	ok = true
	return
}

// Tick performs a single step of the emulator.
// done is set once the processor has halted.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	if emu.Cpu.Halted() {
		done = true
		return
	}

	pc := emu.Cpu.Pc()
	index := emu.Index()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, Index: index, Err: err}
		}
	}()

	err = emu.Cpu.Step()
	done = emu.Cpu.Halted()

	return
}

// Run ticks until the processor halts, faults, or reaches its step ceiling.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}
