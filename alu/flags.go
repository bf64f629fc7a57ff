package alu

import (
	"strings"
)

// Flag is a single condition bit of the flag vector.
type Flag int

//go:generate go tool stringer -linecomment -type=Flag
const (
	FLAG_ZERO            = Flag(0)  // Z
	FLAG_NEGATIVE        = Flag(1)  // N
	FLAG_CARRY           = Flag(2)  // C
	FLAG_OVERFLOW        = Flag(3)  // V
	FLAG_SIGNED_POSITIVE = Flag(4)  // S+
	FLAG_SIGNED_NEGATIVE = Flag(5)  // S-
	FLAG_SIGNED_ZERO     = Flag(6)  // S0
	FLAG_UNSIGNED_MAX    = Flag(7)  // UMAX
	FLAG_UNSIGNED_MIN    = Flag(8)  // UMIN
	FLAG_EQUAL           = Flag(9)  // EQ
	FLAG_GREATER         = Flag(10) // GT
	FLAG_LESS            = Flag(11) // LT
	FLAG_DIVIDE_BY_ZERO  = Flag(12) // DZ
	FLAG_EVEN            = Flag(13) // EVEN
	FLAG_ODD             = Flag(14) // ODD
	FLAG_INTERRUPT       = Flag(15) // I

	FLAG_COUNT = 16 // Number of flags in the vector.
)

// Mask returns the bit of the flag in a Flags vector.
func (fl Flag) Mask() Flags {
	return Flags(1) << uint(fl)
}

// Flags is the complete condition vector, one bit per Flag.
type Flags uint16

// Has reports whether the flag is set.
func (fs Flags) Has(fl Flag) bool {
	return fs&fl.Mask() != 0
}

// With returns the vector with the flag set.
func (fs Flags) With(fl Flag) Flags {
	return fs | fl.Mask()
}

// Without returns the vector with the flag cleared.
func (fs Flags) Without(fl Flag) Flags {
	return fs &^ fl.Mask()
}

// All returns the value of every flag, indexed by Flag.
func (fs Flags) All() (all [FLAG_COUNT]bool) {
	for n := range all {
		all[n] = fs.Has(Flag(n))
	}
	return
}

// String lists the set flags, e.g. "Z S0 UMIN EQ EVEN".
func (fs Flags) String() string {
	var names []string
	for n := range FLAG_COUNT {
		if fs.Has(Flag(n)) {
			names = append(names, Flag(n).String())
		}
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, " ")
}

// FlagsOf derives a fresh flag vector from a result.
// Nothing from a previous vector survives; every bit is recomputed.
func FlagsOf(result int32, overflow bool) (fs Flags) {
	switch {
	case result == 0:
		fs = fs.With(FLAG_ZERO).With(FLAG_SIGNED_ZERO).With(FLAG_UNSIGNED_MIN).With(FLAG_EQUAL)
	case result < 0:
		fs = fs.With(FLAG_NEGATIVE).With(FLAG_SIGNED_NEGATIVE).With(FLAG_LESS)
	default:
		fs = fs.With(FLAG_SIGNED_POSITIVE).With(FLAG_GREATER)
	}

	if overflow {
		fs = fs.With(FLAG_OVERFLOW).With(FLAG_CARRY)
	}

	if result&1 == 0 {
		fs = fs.With(FLAG_EVEN)
	} else {
		fs = fs.With(FLAG_ODD)
	}

	if uint32(result) == 0xffffffff {
		fs = fs.With(FLAG_UNSIGNED_MAX)
	}

	return
}
