package memory

import (
	"errors"
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory_ReadWrite(t *testing.T) {
	assert := assert.New(t)

	mem := New(MEMORY_SIZE)
	assert.Equal(uint32(MEMORY_SIZE), mem.Size())

	table := []struct {
		addr  uint32
		value uint32
	}{
		{0, 0xdeadbeef},
		{4, 0},
		{7, 0x12345678},
		{MEMORY_SIZE - 4, 0xffffffff},
	}

	for _, entry := range table {
		err := mem.Write(entry.addr, entry.value)
		assert.NoError(err, "0x%x", entry.addr)
		value, err := mem.Read(entry.addr)
		assert.NoError(err, "0x%x", entry.addr)
		assert.Equal(entry.value, value, "0x%x", entry.addr)
	}

	// Little-endian layout.
	assert.Equal([]byte{0xef, 0xbe, 0xad, 0xde}, mem.Data[0:4])
}

func TestMemory_Bounds(t *testing.T) {
	assert := assert.New(t)

	mem := New(64)
	assert.NoError(mem.Write(60, 0xcafef00d))

	for _, addr := range []uint32{62, 61, 64, 0xfffffffe, 0xffffffff} {
		before := append([]byte(nil), mem.Data...)

		err := mem.Write(addr, 1)
		assert.ErrorIs(err, ErrBounds, "0x%x", addr)
		var access *ErrAccess
		assert.True(errors.As(err, &access))
		assert.Equal(OP_WRITE, access.Op)
		assert.Equal(addr, access.Addr)
		assert.Equal(before, mem.Data)

		_, err = mem.Read(addr)
		assert.ErrorIs(err, ErrBounds, "0x%x", addr)
		assert.True(errors.As(err, &access))
		assert.Equal(OP_READ, access.Op)
	}
}

func TestMemory_Clear(t *testing.T) {
	assert := assert.New(t)

	mem := New(16)
	assert.NoError(mem.Write(8, 0x01020304))
	mem.Clear()
	assert.Equal(make([]byte, 16), mem.Data)
}

func TestMemory_Load(t *testing.T) {
	assert := assert.New(t)

	mem := New(64)

	err := mem.Load(32, 64, nil)
	assert.ErrorIs(err, ErrProgramMissing)

	err = mem.Load(32, 64, make([]uint32, 9))
	assert.ErrorIs(err, ErrProgramTooBig)
	var size *ErrProgramSize
	assert.True(errors.As(err, &size))
	assert.Equal(9, size.Words)

	err = mem.Load(32, 128, []uint32{1})
	assert.ErrorIs(err, ErrProgramTooBig)

	assert.Equal(make([]byte, 64), mem.Data)

	err = mem.Load(32, 64, []uint32{0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88})
	assert.NoError(err)
	value, err := mem.Read(32)
	assert.NoError(err)
	assert.Equal(uint32(0x11), value)
	value, err = mem.Read(60)
	assert.NoError(err)
	assert.Equal(uint32(0x88), value)

	assert.NoError(mem.Load(32, 64, []uint32{}))
}

func TestMemory_Bytes(t *testing.T) {
	assert := assert.New(t)

	mem := New(16)
	assert.NoError(mem.Write(4, 0x44332211))

	data, err := mem.Bytes(4, 7)
	assert.NoError(err)
	assert.Equal([]byte{0x11, 0x22, 0x33, 0x44}, data)

	// A copy, not a view.
	data[0] = 0xff
	assert.Equal(byte(0x11), mem.Data[4])

	_, err = mem.Bytes(8, 4)
	assert.ErrorIs(err, ErrRangeInvalid)
	_, err = mem.Bytes(0, 16)
	assert.ErrorIs(err, ErrRangeInvalid)
}

func TestMemory_Dump(t *testing.T) {
	assert := assert.New(t)

	mem := New(64)
	assert.NoError(mem.Write(0, 0x64636261))
	assert.NoError(mem.Write(4, 0x00000a41))

	text, err := mem.Dump(0, 7, FORMAT_HEX)
	assert.NoError(err)
	assert.Equal("0x00000000: 64636261 00000A41\n", text)

	text, err = mem.Dump(0, 7, FORMAT_ASCII)
	assert.NoError(err)
	assert.Equal("0x00000000: abcd A...\n", text)

	text, err = mem.DumpRows(0, 15, FORMAT_HEX, 8)
	assert.NoError(err)
	assert.Equal("0x00000000: 64636261 00000A41\n0x00000008: 00000000 00000000\n", text)

	text, err = mem.Dump(0, 39, FORMAT_HEX)
	assert.NoError(err)
	assert.Equal("0x00000000: 64636261 00000A41"+
		" 00000000 00000000 00000000 00000000 00000000 00000000\n"+
		"0x00000020: 00000000 00000000\n", text)

	// Partial word at the top of memory.
	mem.Data[62] = 0x5a
	text, err = mem.Dump(62, 63, FORMAT_HEX)
	assert.NoError(err)
	assert.Equal("0x0000003E: 0000005A\n", text)

	_, err = mem.Dump(8, 4, FORMAT_HEX)
	assert.ErrorIs(err, ErrRangeInvalid)
	_, err = mem.Dump(0, 64, FORMAT_HEX)
	assert.ErrorIs(err, ErrRangeInvalid)
	_, err = mem.DumpRows(0, 8, FORMAT_HEX, 6)
	assert.ErrorIs(err, ErrRangeInvalid)
	_, err = mem.Dump(0, 8, Format(9))
	assert.ErrorIs(err, ErrFormat)
}

func TestDefines(t *testing.T) {
	assert := assert.New(t)

	defines := maps.Collect(Defines())
	assert.Equal("4096", defines["MEMORY_SIZE"])
	assert.Equal("4", defines["WORD_SIZE"])
}
