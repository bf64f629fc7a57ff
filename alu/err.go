package alu

import (
	"errors"

	"github.com/ezrec/cpusim/translate"
)

var f = translate.From

var (
	ErrDivideByZero = errors.New(f("divide by zero"))
)
