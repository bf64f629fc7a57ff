// Package cpu implements the register processor: decoder, processor state,
// and the fetch-decode-execute loop.
//
// The processor has eight signed 32-bit registers (r0-r7), a program
// counter, a stack pointer into a full-descending stack at the top of
// memory, and a sixteen bit flag vector produced by the ALU. Instructions
// are 32-bit words with the opcode in the most significant byte, and are
// fetched from the code region of memory, which starts at the code base.
//
// Any fault halts the processor, leaving registers and memory as they were
// before the faulting instruction, and is reported as an *ErrFault.
package cpu
