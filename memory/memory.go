// Package memory implements the flat, byte addressed store of the processor.
//
// Memory is a fixed size array of bytes. Instructions access it as
// little-endian 32-bit words; every access is bounds checked before any
// byte is touched.
package memory

import (
	"encoding/binary"
	"fmt"
	"iter"
	"maps"
	"strings"
)

const (
	MEMORY_SIZE = 4096 // Default memory size, in bytes.
	WORD_SIZE   = 4    // Size of an addressable word, in bytes.
	ROW_SIZE    = 32   // Bytes per row of a memory dump.
)

var _memory_defines = map[string]string{
	"MEMORY_SIZE": fmt.Sprintf("%v", MEMORY_SIZE),
	"WORD_SIZE":   fmt.Sprintf("%v", WORD_SIZE),
}

// Format selects the rendering of a memory dump.
type Format int

//go:generate go tool stringer -linecomment -type=Format
const (
	FORMAT_HEX   = Format(0) // hex
	FORMAT_ASCII = Format(1) // ascii
)

// Memory is the byte store. Not safe for concurrent use.
type Memory struct {
	Data []byte
}

// New creates a zeroed memory of size bytes.
func New(size uint32) (mem *Memory) {
	mem = &Memory{
		Data: make([]byte, size),
	}

	return
}

// Defines for the memory layout.
func Defines() iter.Seq2[string, string] {
	return maps.All(_memory_defines)
}

// Size returns the memory size in bytes.
func (mem *Memory) Size() uint32 {
	return uint32(len(mem.Data))
}

// Clear zeroes every byte.
func (mem *Memory) Clear() {
	clear(mem.Data)
}

func (mem *Memory) check(op Op, addr uint32) (err error) {
	if uint64(addr)+WORD_SIZE > uint64(len(mem.Data)) {
		err = &ErrAccess{Op: op, Addr: addr}
	}
	return
}

// Read returns the little-endian word at addr.
func (mem *Memory) Read(addr uint32) (value uint32, err error) {
	err = mem.check(OP_READ, addr)
	if err != nil {
		return
	}

	value = binary.LittleEndian.Uint32(mem.Data[addr:])
	return
}

// Write stores value as a little-endian word at addr.
func (mem *Memory) Write(addr uint32, value uint32) (err error) {
	err = mem.check(OP_WRITE, addr)
	if err != nil {
		return
	}

	binary.LittleEndian.PutUint32(mem.Data[addr:], value)
	return
}

// Load copies program into memory starting at base.
// The whole program must fit in [base, limit); nothing is written otherwise.
func (mem *Memory) Load(base, limit uint32, program []uint32) (err error) {
	if program == nil {
		err = ErrProgramMissing
		return
	}

	end := uint64(base) + uint64(len(program))*WORD_SIZE
	if uint64(limit) > uint64(len(mem.Data)) || end > uint64(limit) {
		err = &ErrProgramSize{Words: len(program), Base: base, Limit: limit}
		return
	}

	for n, word := range program {
		binary.LittleEndian.PutUint32(mem.Data[base+uint32(n)*WORD_SIZE:], word)
	}

	return
}

func (mem *Memory) checkRange(start, end uint32) (err error) {
	if start > end || end >= mem.Size() {
		err = &ErrRange{Start: start, End: end}
	}
	return
}

// Bytes returns a copy of the inclusive byte range [start, end].
func (mem *Memory) Bytes(start, end uint32) (data []byte, err error) {
	err = mem.checkRange(start, end)
	if err != nil {
		return
	}

	data = make([]byte, end-start+1)
	copy(data, mem.Data[start:end+1])
	return
}

// Dump renders [start, end] with ROW_SIZE bytes per row.
func (mem *Memory) Dump(start, end uint32, format Format) (text string, err error) {
	return mem.DumpRows(start, end, format, ROW_SIZE)
}

// DumpRows renders [start, end] one word at a time, starting a new row,
// prefixed by its address, every row bytes. row must be a non-zero
// multiple of WORD_SIZE.
//
// FORMAT_HEX prints each word as eight hex digits; FORMAT_ASCII prints each
// byte of the word in address order, with non-printable bytes as '.'.
// A final partial word at the top of memory reads missing bytes as zero.
func (mem *Memory) DumpRows(start, end uint32, format Format, row uint32) (text string, err error) {
	err = mem.checkRange(start, end)
	if err != nil {
		return
	}

	if row == 0 || row%WORD_SIZE != 0 {
		err = &ErrRange{Start: start, End: end}
		return
	}

	if format != FORMAT_HEX && format != FORMAT_ASCII {
		err = ErrFormat
		return
	}

	var sb strings.Builder
	for addr := uint64(start); addr <= uint64(end); addr += WORD_SIZE {
		if (addr-uint64(start))%uint64(row) == 0 {
			if addr != uint64(start) {
				sb.WriteString("\n")
			}
			fmt.Fprintf(&sb, "0x%08X:", addr)
		}

		var word [WORD_SIZE]byte
		copy(word[:], mem.Data[addr:min(addr+WORD_SIZE, uint64(len(mem.Data)))])

		sb.WriteString(" ")
		switch format {
		case FORMAT_HEX:
			fmt.Fprintf(&sb, "%08X", binary.LittleEndian.Uint32(word[:]))
		case FORMAT_ASCII:
			for _, c := range word {
				if c < 0x20 || c > 0x7e {
					c = '.'
				}
				sb.WriteByte(c)
			}
		}
	}
	sb.WriteString("\n")

	text = sb.String()
	return
}
