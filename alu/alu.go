// Package alu implements the arithmetic/logic unit of the processor.
//
// Every operation is a pure function of its operands and the integer mode.
// It returns the signed 32-bit result together with the complete flag
// vector derived from that result; the caller stores both. The package
// also provides the stateless bit-level primitives the adder is built from.
package alu

import (
	"math"
)

// Mode selects how ordering, shifts and overflow are interpreted.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_SIGNED   = Mode(0) // signed
	MODE_UNSIGNED = Mode(1) // unsigned
)

// Result is the output of a flag-producing operation.
type Result struct {
	Value int32 // Result value.
	Flags Flags // Flag vector for Value.
}

func result(value int32, overflow bool) Result {
	return Result{Value: value, Flags: FlagsOf(value, overflow)}
}

func boolResult(ok bool) Result {
	if ok {
		return result(1, false)
	}
	return result(0, false)
}

// toBits spreads a word into its bits, LSB first.
func toBits(x uint32) (b []bool) {
	b = make([]bool, 32)
	for n := range b {
		b[n] = (x>>n)&1 != 0
	}
	return
}

// fromBits collects up to 32 bits, LSB first, into a word.
func fromBits(b []bool) (x uint32) {
	for n := range min(len(b), 32) {
		if b[n] {
			x |= 1 << n
		}
	}
	return
}

// Add returns a + b.
// Signed mode detects overflow by the sign rule, unsigned mode by carry out.
func Add(mode Mode, a, b int32) Result {
	sum, carry := RippleCarryAdder(toBits(uint32(a)), toBits(uint32(b)))
	value := int32(fromBits(sum))

	var overflow bool
	switch mode {
	case MODE_UNSIGNED:
		overflow = carry
	default:
		overflow = (a < 0) == (b < 0) && (value < 0) != (a < 0)
	}

	return result(value, overflow)
}

// Sub returns a - b.
func Sub(mode Mode, a, b int32) Result {
	value := a - b

	var overflow bool
	switch mode {
	case MODE_UNSIGNED:
		overflow = uint32(a) < uint32(b)
	default:
		overflow = (a < 0) != (b < 0) && (value < 0) != (a < 0)
	}

	return result(value, overflow)
}

// Mul returns the low 32 bits of a * b.
// Overflow is flagged when the full product does not fit the mode's range.
func Mul(mode Mode, a, b int32) Result {
	var value int32
	var overflow bool

	switch mode {
	case MODE_UNSIGNED:
		product := uint64(uint32(a)) * uint64(uint32(b))
		value = int32(uint32(product))
		overflow = product > math.MaxUint32
	default:
		product := int64(a) * int64(b)
		value = int32(product)
		overflow = product != int64(value)
	}

	return result(value, overflow)
}

// Div returns a / b, truncated toward zero.
// A zero divisor returns ErrDivideByZero with only FLAG_DIVIDE_BY_ZERO set;
// the value must not be stored.
func Div(mode Mode, a, b int32) (res Result, err error) {
	if b == 0 {
		res = Result{Flags: FLAG_DIVIDE_BY_ZERO.Mask()}
		err = ErrDivideByZero
		return
	}

	switch mode {
	case MODE_UNSIGNED:
		res = result(int32(uint32(a)/uint32(b)), false)
	default:
		if a == math.MinInt32 && b == -1 {
			res = result(math.MinInt32, true)
			return
		}
		res = result(a/b, false)
	}

	return
}

// And returns a & b.
func And(mode Mode, a, b int32) Result {
	return result(a&b, false)
}

// Or returns a | b.
func Or(mode Mode, a, b int32) Result {
	return result(a|b, false)
}

// Xor returns a ^ b.
func Xor(mode Mode, a, b int32) Result {
	return result(a^b, false)
}

// Not returns ^a.
func Not(mode Mode, a int32) Result {
	return result(^a, false)
}

// Shl shifts a left by n&31 bits.
// In unsigned mode, shifting out a set bit flags overflow.
func Shl(mode Mode, a, n int32) Result {
	shift := uint(n) & 0x1f
	value := uint32(a) << shift

	var overflow bool
	if mode == MODE_UNSIGNED {
		overflow = uint64(uint32(a))<<shift > math.MaxUint32
	}

	return result(int32(value), overflow)
}

// Shr shifts a right by n&31 bits, filling with zeros in either mode.
// In unsigned mode, shifting out a set bit flags overflow.
func Shr(mode Mode, a, n int32) Result {
	shift := uint(n) & 0x1f
	value := uint32(a) >> shift

	var overflow bool
	if mode == MODE_UNSIGNED {
		overflow = uint32(a)&((1<<shift)-1) != 0
	}

	return result(int32(value), overflow)
}

// compare orders a and b for the mode: -1, 0 or 1.
func compare(mode Mode, a, b int32) int {
	if mode == MODE_UNSIGNED {
		ua, ub := uint32(a), uint32(b)
		switch {
		case ua < ub:
			return -1
		case ua > ub:
			return 1
		}
		return 0
	}

	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Eq returns 1 if a == b, else 0.
func Eq(mode Mode, a, b int32) Result {
	return boolResult(a == b)
}

// Neq returns 1 if a != b, else 0.
func Neq(mode Mode, a, b int32) Result {
	return boolResult(a != b)
}

// Gt returns 1 if a > b, else 0.
func Gt(mode Mode, a, b int32) Result {
	return boolResult(compare(mode, a, b) > 0)
}

// Lt returns 1 if a < b, else 0.
func Lt(mode Mode, a, b int32) Result {
	return boolResult(compare(mode, a, b) < 0)
}

// Ge returns 1 if a >= b, else 0.
func Ge(mode Mode, a, b int32) Result {
	return boolResult(compare(mode, a, b) >= 0)
}

// Le returns 1 if a <= b, else 0.
func Le(mode Mode, a, b int32) Result {
	return boolResult(compare(mode, a, b) <= 0)
}
