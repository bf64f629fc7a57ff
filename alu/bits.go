package alu

import (
	"math/bits"
)

// HalfAdder adds two bits without a carry in.
func HalfAdder(a, b bool) (sum, carry bool) {
	sum = a != b
	carry = a && b
	return
}

// FullAdder adds two bits and a carry in, from two half adders.
func FullAdder(a, b, carryIn bool) (sum, carryOut bool) {
	partial, carry1 := HalfAdder(a, b)
	sum, carry2 := HalfAdder(partial, carryIn)
	carryOut = carry1 || carry2
	return
}

// RippleCarryAdder adds two bit vectors, LSB first.
// The sum is as wide as the wider input; missing bits read as zero.
// carry is the carry out of the most significant bit.
func RippleCarryAdder(a, b []bool) (sum []bool, carry bool) {
	sum = make([]bool, max(len(a), len(b)))
	for n := range sum {
		var x, y bool
		if n < len(a) {
			x = a[n]
		}
		if n < len(b) {
			y = b[n]
		}
		sum[n], carry = FullAdder(x, y, carry)
	}
	return
}

// LeadingZeros counts the zero bits above the most significant set bit; 32 for 0.
func LeadingZeros(x uint32) int {
	return bits.LeadingZeros32(x)
}

// BitReverse reverses the bit order of x.
func BitReverse(x uint32) uint32 {
	return bits.Reverse32(x)
}

// IsPowerOfTwo reports whether exactly one bit of x is set.
func IsPowerOfTwo(x uint32) bool {
	return x != 0 && x&(x-1) == 0
}

// fieldMask returns length low ones; 32 or more yields all ones.
func fieldMask(length uint) uint32 {
	if length >= 32 {
		return 0xffffffff
	}
	return (1 << length) - 1
}

// ExtractBits returns length bits of x starting at bit start.
func ExtractBits(x uint32, start, length uint) uint32 {
	if start >= 32 {
		return 0
	}
	return (x >> start) & fieldMask(length)
}

// InsertBits replaces length bits of word at bit start with the low bits of field.
func InsertBits(word, field uint32, start, length uint) uint32 {
	if start >= 32 {
		return word
	}
	mask := fieldMask(length) << start
	return (word &^ mask) | ((field << start) & mask)
}

// RotateLeft rotates x left by n mod 32 bits.
func RotateLeft(x uint32, n uint) uint32 {
	return bits.RotateLeft32(x, int(n%32))
}

// RotateRight rotates x right by n mod 32 bits.
func RotateRight(x uint32, n uint) uint32 {
	return bits.RotateLeft32(x, -int(n%32))
}
