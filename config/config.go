// Package config reads machine descriptions written in Starlark.
//
// A description is a Starlark file. Every opcode is predeclared as an
// encoder (ADD(R0, R1, R2) evaluates to the instruction word), as are the
// register names R0-R7 and the layout defines (CODE_BASE, MEMORY_SIZE, ...).
// After execution these globals are read, all optional except program:
//
//	memory_size  int          memory size in bytes
//	code_base    int          program load address
//	max_steps    int          step ceiling, 0 for none
//	mode         string       "signed" or "unsigned"
//	verbose      bool         trace every step
//	registers    dict         register index to initial value
//	program      list         instruction and data words
package config

import (
	"fmt"
	"math"
	"strconv"

	"github.com/sirupsen/logrus"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/cpusim/alu"
	"github.com/ezrec/cpusim/cpu"
	"github.com/ezrec/cpusim/emulator"
	"github.com/ezrec/cpusim/internal"
)

// Machine is a loaded machine description.
type Machine struct {
	Config    cpu.Config
	Verbose   bool
	Registers map[int]int32
	Program   *cpu.Program
}

// Predeclared returns the names visible to a machine description.
func Predeclared() (pred starlark.StringDict) {
	pred = starlark.StringDict{}

	for key, str := range emulator.Defines() {
		value, err := strconv.ParseInt(str, 0, 64)
		if err != nil {
			continue
		}
		pred[key] = starlark.MakeInt64(value)
	}

	for n := range cpu.REGISTER_COUNT {
		pred[fmt.Sprintf("R%d", n)] = starlark.MakeInt(n)
	}

	for op := range cpu.Opcode(cpu.OP_COUNT) {
		pred[op.String()] = starlark.NewBuiltin(op.String(), encoder(op))
	}

	return
}

// encoder returns the builtin that encodes op.
func encoder(op cpu.Opcode) func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error) {
	return func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
		if len(kwargs) != 0 {
			err = fmt.Errorf("%v: %w", fn.Name(), ErrKeyword)
			return
		}

		ints := make([]int, len(args))
		for n, arg := range args {
			ints[n], err = starlark.AsInt32(arg)
			if err != nil {
				err = fmt.Errorf("%v: operand %v: %w", fn.Name(), n, err)
				return
			}
		}

		inst, err := cpu.Make(op, ints...)
		if err != nil {
			return
		}

		value = starlark.MakeUint64(uint64(inst.Encode()))
		return
	}
}

// Load executes a machine description.
// src is as for starlark.ExecFile: nil to read filename, or the source itself.
func Load(filename string, src any) (mach *Machine, err error) {
	thread := &starlark.Thread{
		Name: filename,
		Print: func(thread *starlark.Thread, msg string) {
			logrus.WithField("file", thread.Name).Info(msg)
		},
	}
	opts := &syntax.FileOptions{
		While:           true,
		TopLevelControl: true,
		GlobalReassign:  true,
		Recursion:       true,
	}

	globals, err := starlark.ExecFileOptions(opts, thread, filename, src, Predeclared())
	if err != nil {
		return
	}

	mach = &Machine{
		Config:    cpu.DefaultConfig(),
		Registers: map[int]int32{},
	}

	for key, value := range internal.SortedSeq2(globals) {
		switch key {
		case "memory_size":
			mach.Config.MemorySize, err = asUint32(key, value)
		case "code_base":
			mach.Config.CodeBase, err = asUint32(key, value)
		case "max_steps":
			var steps uint32
			steps, err = asUint32(key, value)
			mach.Config.MaxSteps = int(steps)
		case "mode":
			mach.Config.Mode, err = asMode(key, value)
		case "verbose":
			mach.Verbose, err = asBool(key, value)
		case "registers":
			mach.Registers, err = asRegisters(key, value)
		}
		if err != nil {
			mach = nil
			return
		}
	}

	err = mach.Config.Validate()
	if err != nil {
		mach = nil
		return
	}

	value, ok := globals["program"]
	if !ok {
		mach = nil
		err = &ErrConfig{Key: "program", Err: ErrKeyMissing}
		return
	}

	words, err := asWords("program", value)
	if err != nil {
		mach = nil
		return
	}

	mach.Program = &cpu.Program{
		Base:  mach.Config.CodeBase,
		Words: words,
	}

	return
}

// Emulator creates an emulator for the machine, ready to run.
func (mach *Machine) Emulator() (emu *emulator.Emulator, err error) {
	emu, err = emulator.NewEmulator(mach.Config)
	if err != nil {
		return
	}

	emu.Verbose = mach.Verbose
	emu.Program = mach.Program

	err = emu.Reset()
	if err != nil {
		return
	}

	for index, value := range mach.Registers {
		err = emu.SetRegister(index, value)
		if err != nil {
			return
		}
	}

	return
}

func asInt64(key string, value starlark.Value) (i int64, err error) {
	num, ok := value.(starlark.Int)
	if !ok {
		err = &ErrConfig{Key: key, Err: ErrKeyType}
		return
	}

	i, ok = num.Int64()
	if !ok {
		err = &ErrConfig{Key: key, Err: ErrKeyRange}
		return
	}

	return
}

func asUint32(key string, value starlark.Value) (u uint32, err error) {
	i, err := asInt64(key, value)
	if err != nil {
		return
	}

	if i < 0 || i > math.MaxUint32 {
		err = &ErrConfig{Key: key, Err: ErrKeyRange}
		return
	}

	u = uint32(i)
	return
}

// asWord accepts both the signed and the unsigned reading of a 32-bit word.
func asWord(key string, value starlark.Value) (word uint32, err error) {
	i, err := asInt64(key, value)
	if err != nil {
		return
	}

	if i < math.MinInt32 || i > math.MaxUint32 {
		err = &ErrConfig{Key: key, Err: ErrKeyRange}
		return
	}

	word = uint32(i)
	return
}

func asBool(key string, value starlark.Value) (b bool, err error) {
	bv, ok := value.(starlark.Bool)
	if !ok {
		err = &ErrConfig{Key: key, Err: ErrKeyType}
		return
	}

	b = bool(bv)
	return
}

func asMode(key string, value starlark.Value) (mode alu.Mode, err error) {
	str, ok := value.(starlark.String)
	if !ok {
		err = &ErrConfig{Key: key, Err: ErrKeyType}
		return
	}

	for _, mode = range []alu.Mode{alu.MODE_SIGNED, alu.MODE_UNSIGNED} {
		if mode.String() == str.GoString() {
			return
		}
	}

	err = &ErrConfig{Key: key, Err: ErrModeUnknown}
	return
}

func asRegisters(key string, value starlark.Value) (regs map[int]int32, err error) {
	dict, ok := value.(*starlark.Dict)
	if !ok {
		err = &ErrConfig{Key: key, Err: ErrKeyType}
		return
	}

	regs = map[int]int32{}
	for _, item := range dict.Items() {
		var index int64
		index, err = asInt64(key, item[0])
		if err != nil {
			return
		}
		if index < 0 || index >= cpu.REGISTER_COUNT {
			err = &ErrConfig{Key: fmt.Sprintf("%v[%v]", key, index), Err: cpu.ErrRegisterInvalid}
			return
		}

		var word uint32
		word, err = asWord(fmt.Sprintf("%v[%v]", key, index), item[1])
		if err != nil {
			return
		}
		regs[int(index)] = int32(word)
	}

	return
}

func asWords(key string, value starlark.Value) (words []uint32, err error) {
	list, ok := value.(*starlark.List)
	if !ok {
		err = &ErrConfig{Key: key, Err: ErrKeyType}
		return
	}

	words = make([]uint32, list.Len())
	for n := range list.Len() {
		words[n], err = asWord(fmt.Sprintf("%v[%v]", key, n), list.Index(n))
		if err != nil {
			return
		}
	}

	return
}
