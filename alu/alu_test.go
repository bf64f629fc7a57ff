package alu

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

type binaryOp func(mode Mode, a, b int32) Result

func TestAlu_Binary(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name     string
		op       binaryOp
		mode     Mode
		a, b     int32
		value    int32
		overflow bool
	}){
		{"add", Add, MODE_SIGNED, 3, 4, 7, false},
		{"add_neg", Add, MODE_SIGNED, -3, -4, -7, false},
		{"add_ovf_pos", Add, MODE_SIGNED, math.MaxInt32, 1, math.MinInt32, true},
		{"add_ovf_neg", Add, MODE_SIGNED, math.MinInt32, math.MinInt32, 0, true},
		{"add_mixed", Add, MODE_SIGNED, math.MaxInt32, -1, math.MaxInt32 - 1, false},
		{"add_carry", Add, MODE_UNSIGNED, -1, 1, 0, true},
		{"add_no_carry", Add, MODE_UNSIGNED, math.MaxInt32, 1, math.MinInt32, false},
		{"sub", Sub, MODE_SIGNED, 10, 3, 7, false},
		{"sub_ovf", Sub, MODE_SIGNED, math.MinInt32, 1, math.MaxInt32, true},
		{"sub_ovf_pos", Sub, MODE_SIGNED, math.MaxInt32, -1, math.MinInt32, true},
		{"sub_borrow", Sub, MODE_UNSIGNED, 1, 2, -1, true},
		{"mul", Mul, MODE_SIGNED, 6, -7, -42, false},
		{"mul_ovf", Mul, MODE_SIGNED, 0x10000, 0x10000, 0, true},
		{"mul_unsigned", Mul, MODE_UNSIGNED, -1, 2, -2, true},
		{"and", And, MODE_SIGNED, 0x0ff0, 0x00ff, 0x00f0, false},
		{"or", Or, MODE_SIGNED, 0x0f00, 0x00f0, 0x0ff0, false},
		{"xor", Xor, MODE_SIGNED, 0x0ff0, 0x00ff, 0x0f0f, false},
		{"shl", Shl, MODE_SIGNED, 1, 4, 16, false},
		{"shl_mask", Shl, MODE_SIGNED, 1, 33, 2, false},
		{"shl_lost", Shl, MODE_UNSIGNED, math.MinInt32, 1, 0, true},
		{"shr_logical", Shr, MODE_SIGNED, -1, 1, math.MaxInt32, false},
		{"shr_lost", Shr, MODE_UNSIGNED, 3, 1, 1, true},
		{"eq", Eq, MODE_SIGNED, 5, 5, 1, false},
		{"neq", Neq, MODE_SIGNED, 5, 5, 0, false},
		{"gt", Gt, MODE_SIGNED, 5, -5, 1, false},
		{"gt_unsigned", Gt, MODE_UNSIGNED, 5, -5, 0, false},
		{"lt", Lt, MODE_SIGNED, -5, 5, 1, false},
		{"lt_unsigned", Lt, MODE_UNSIGNED, -5, 5, 0, false},
		{"ge", Ge, MODE_SIGNED, 5, 5, 1, false},
		{"le", Le, MODE_SIGNED, 6, 5, 0, false},
	}

	for _, entry := range table {
		res := entry.op(entry.mode, entry.a, entry.b)
		assert.Equal(entry.value, res.Value, entry.name)
		assert.Equal(entry.overflow, res.Flags.Has(FLAG_OVERFLOW), entry.name)
		assert.Equal(entry.overflow, res.Flags.Has(FLAG_CARRY), entry.name)
		assert.Equal(FlagsOf(entry.value, entry.overflow), res.Flags, entry.name)
	}
}

func TestAlu_Not(t *testing.T) {
	assert := assert.New(t)

	res := Not(MODE_SIGNED, 0)
	assert.Equal(int32(-1), res.Value)
	assert.True(res.Flags.Has(FLAG_UNSIGNED_MAX))
	assert.True(res.Flags.Has(FLAG_NEGATIVE))
	assert.True(res.Flags.Has(FLAG_ODD))

	res = Not(MODE_SIGNED, -1)
	assert.Equal(int32(0), res.Value)
	assert.True(res.Flags.Has(FLAG_ZERO))
}

func TestAlu_Div(t *testing.T) {
	assert := assert.New(t)

	res, err := Div(MODE_SIGNED, -7, 2)
	assert.NoError(err)
	assert.Equal(int32(-3), res.Value)

	res, err = Div(MODE_UNSIGNED, -2, 2)
	assert.NoError(err)
	assert.Equal(int32(math.MaxInt32), res.Value)

	res, err = Div(MODE_SIGNED, math.MinInt32, -1)
	assert.NoError(err)
	assert.Equal(int32(math.MinInt32), res.Value)
	assert.True(res.Flags.Has(FLAG_OVERFLOW))

	res, err = Div(MODE_SIGNED, 7, 0)
	assert.ErrorIs(err, ErrDivideByZero)
	assert.Equal(FLAG_DIVIDE_BY_ZERO.Mask(), res.Flags)
	assert.Equal(int32(0), res.Value)
}

func TestAlu_ShrIsLogical(t *testing.T) {
	assert := assert.New(t)

	for _, mode := range []Mode{MODE_SIGNED, MODE_UNSIGNED} {
		res := Shr(mode, -1, 1)
		assert.Greater(res.Value, int32(0), mode.String())
		assert.Equal(uint32(0), uint32(res.Value)&0x8000_0000, mode.String())
		assert.True(res.Flags.Has(FLAG_SIGNED_POSITIVE), mode.String())
	}
}

func TestAlu_CompareFlags(t *testing.T) {
	assert := assert.New(t)

	// Comparison results are plain 0/1 values.
	res := Eq(MODE_SIGNED, 1, 2)
	assert.True(res.Flags.Has(FLAG_ZERO))
	assert.False(res.Flags.Has(FLAG_GREATER))

	res = Eq(MODE_SIGNED, 2, 2)
	assert.False(res.Flags.Has(FLAG_ZERO))
	assert.True(res.Flags.Has(FLAG_ODD))
	assert.True(res.Flags.Has(FLAG_GREATER))

	// Sub doubles as an ordering compare.
	res = Sub(MODE_SIGNED, 2, 9)
	assert.True(res.Flags.Has(FLAG_LESS))
	res = Sub(MODE_SIGNED, 9, 9)
	assert.True(res.Flags.Has(FLAG_EQUAL))
}

func TestAlu_AddSubRoundTrip(t *testing.T) {
	assert := assert.New(t)

	values := []int32{0, 1, -1, 2, 100, -100, math.MaxInt32, math.MinInt32, 0x1234_5678, -0x1234_5678}
	for _, a := range values {
		for _, b := range values {
			sum := Add(MODE_SIGNED, a, b)
			diff := Sub(MODE_SIGNED, sum.Value, b)
			if diff.Flags.Has(FLAG_OVERFLOW) {
				continue
			}
			assert.Equal(a, diff.Value, "%d %d", a, b)
		}
	}
}

func FuzzAddSub(f *testing.F) {
	f.Add(int32(0), int32(0))
	f.Add(int32(math.MaxInt32), int32(1))
	f.Add(int32(math.MinInt32), int32(-1))
	f.Add(int32(-5), int32(7))

	f.Fuzz(func(t *testing.T, a, b int32) {
		assert := assert.New(t)

		for _, mode := range []Mode{MODE_SIGNED, MODE_UNSIGNED} {
			sum := Add(mode, a, b)
			assert.Equal(a+b, sum.Value)

			diff := Sub(MODE_SIGNED, sum.Value, b)
			if !diff.Flags.Has(FLAG_OVERFLOW) {
				assert.Equal(a, diff.Value)
			}

			signs := 0
			for _, fl := range []Flag{FLAG_SIGNED_POSITIVE, FLAG_SIGNED_NEGATIVE, FLAG_SIGNED_ZERO} {
				if sum.Flags.Has(fl) {
					signs++
				}
			}
			assert.Equal(1, signs)
		}
	})
}

func TestMode_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("signed", MODE_SIGNED.String())
	assert.Equal("unsigned", MODE_UNSIGNED.String())
	assert.Equal("Mode(7)", Mode(7).String())
}
