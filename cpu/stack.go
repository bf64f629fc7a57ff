package cpu

import (
	"errors"

	"github.com/ezrec/cpusim/memory"
)

// Stack is a full-descending word stack kept in memory.
// Sp is the lowest occupied address; the stack is empty when Sp is the
// memory size.
type Stack struct {
	Memory *memory.Memory
	Sp     uint32
}

// Push a value. Sp is unchanged on failure.
func (s *Stack) Push(value uint32) (err error) {
	sp := s.Sp - memory.WORD_SIZE
	if s.Sp < memory.WORD_SIZE {
		err = errors.Join(ErrStackFull, &memory.ErrAccess{Op: memory.OP_WRITE, Addr: sp})
		return
	}

	err = s.Memory.Write(sp, value)
	if err != nil {
		err = errors.Join(ErrStackFull, err)
		return
	}

	s.Sp = sp
	return
}

// Pop a value. Sp is unchanged on failure.
func (s *Stack) Pop() (value uint32, err error) {
	value, err = s.Memory.Read(s.Sp)
	if err != nil {
		err = errors.Join(ErrStackEmpty, err)
		return
	}

	s.Sp += memory.WORD_SIZE
	return
}

// Peek returns the top of the stack.
func (s *Stack) Peek() (value uint32, ok bool) {
	if s.Empty() {
		return
	}

	value, err := s.Memory.Read(s.Sp)
	ok = err == nil
	return
}

func (s *Stack) Empty() bool {
	return s.Sp >= s.Memory.Size()
}

// Depth returns the number of words on the stack.
func (s *Stack) Depth() int {
	if s.Empty() {
		return 0
	}
	return int(s.Memory.Size()-s.Sp) / memory.WORD_SIZE
}

func (s *Stack) Reset() {
	s.Sp = s.Memory.Size()
}
