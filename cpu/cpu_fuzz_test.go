package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzDecode(f *testing.F) {
	f.Add(uint32(0))
	f.Add(uint32(0xab00_0000))
	f.Add(uint32(0x1b07_8000))
	f.Add(uint32(0xffff_ffff))

	f.Fuzz(func(t *testing.T, word uint32) {
		assert := assert.New(t)

		inst, err := Decode(word)
		if err != nil {
			assert.True(errors.Is(err, ErrOpcodeInvalid) || errors.Is(err, ErrRegisterInvalid))
			return
		}

		assert.Equal(word, inst.Encode())
		assert.True(inst.Opcode.Valid())
		assert.NotEmpty(inst.String())
	})
}

func FuzzCpu(f *testing.F) {
	for op := range Opcode(OP_COUNT) {
		f.Add(MakeRRI(op, 0, 1, 2).Encode(), int32(0), int32(0))
		f.Add(MakeRRI(op, 1, 2, 3).Encode(), int32(CODE_BASE), int32(-1))
	}
	f.Add(uint32(0xab00_0000), int32(7), int32(0))

	f.Fuzz(func(t *testing.T, word uint32, a, b int32) {
		assert := assert.New(t)

		cfg := DefaultConfig()
		cfg.MaxSteps = 2000

		cpu, err := NewCpu(cfg)
		assert.NoError(err)
		assert.NoError(cpu.Load([]uint32{word, MakeNone(OP_HALT).Encode()}))
		for n := range REGISTER_COUNT {
			value := a
			if n%2 == 1 {
				value = b
			}
			assert.NoError(cpu.SetRegister(n, value))
		}

		before := cpu.Snapshot()

		err = cpu.Run()
		switch {
		case err == nil:
			assert.True(cpu.Halted())
			assert.Nil(cpu.Fault())
		case errors.Is(err, ErrStepLimit):
			assert.False(cpu.Halted())
			assert.Equal(cfg.MaxSteps, cpu.Ticks)
		default:
			var fault *ErrFault
			assert.True(errors.As(err, &fault), err.Error())
			assert.True(cpu.Halted())
			assert.Equal(err, cpu.Fault())
			if cpu.Ticks == 0 {
				// Faulted on the first instruction: only flags may change.
				after := cpu.Snapshot()
				after.Flags = before.Flags
				before.Halted = true
				assert.Equal(before, after)
			}
		}
	})
}
