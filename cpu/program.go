package cpu

import (
	"encoding/binary"
	"fmt"
	"iter"
	"strings"

	"github.com/ezrec/cpusim/memory"
)

// Program is a resolved instruction stream, as produced by an assembler
// and linker.
type Program struct {
	Base  uint32   // Load address of Words[0].
	Words []uint32 // Instruction and data words.
}

// Debug locates a word of a program.
type Debug struct {
	*Instruction     // Decoded word; nil if the address is outside the program.
	Index        int // Index of the word in the program.
	Word         uint32
}

// NewProgram creates a program at the default code base.
func NewProgram(insts ...Instruction) (prog *Program) {
	prog = &Program{
		Base:  CODE_BASE,
		Words: make([]uint32, len(insts)),
	}
	for n, inst := range insts {
		prog.Words[n] = inst.Encode()
	}

	return
}

// ParseBinary decodes a little-endian word stream to be loaded at base.
func ParseBinary(base uint32, data []byte) (prog *Program, err error) {
	if len(data)%memory.WORD_SIZE != 0 {
		err = ErrBinaryLength
		return
	}

	prog = &Program{
		Base:  base,
		Words: make([]uint32, len(data)/memory.WORD_SIZE),
	}
	for n := range prog.Words {
		prog.Words[n] = binary.LittleEndian.Uint32(data[n*memory.WORD_SIZE:])
	}

	return
}

// Binary returns the little-endian byte stream of the program.
func (prog *Program) Binary() (bins []byte) {
	bins = make([]byte, 0, len(prog.Words)*memory.WORD_SIZE)
	for _, word := range prog.Words {
		bins = binary.LittleEndian.AppendUint32(bins, word)
	}

	return
}

// Codes iterates over the address and instruction of every word.
// Words that do not decode are yielded as-is.
func (prog *Program) Codes() iter.Seq2[uint32, Instruction] {
	return func(yield func(addr uint32, inst Instruction) bool) {
		for n, word := range prog.Words {
			if !yield(prog.Base+uint32(n)*memory.WORD_SIZE, unpack(word)) {
				return
			}
		}
	}
}

func (prog *Program) Debug(addr uint32) (dbg Debug) {
	if addr < prog.Base || (addr-prog.Base)%memory.WORD_SIZE != 0 {
		return
	}

	index := int((addr - prog.Base) / memory.WORD_SIZE)
	if index >= len(prog.Words) {
		return
	}

	inst := unpack(prog.Words[index])
	dbg = Debug{
		Instruction: &inst,
		Index:       index,
		Word:        prog.Words[index],
	}

	return
}

// Listing renders one line per word: address, word, and disassembly.
func (prog *Program) Listing() string {
	var sb strings.Builder
	for addr, inst := range prog.Codes() {
		fmt.Fprintf(&sb, "0x%08X: %08X  %v\n", addr, inst.Encode(), inst)
	}
	return sb.String()
}
