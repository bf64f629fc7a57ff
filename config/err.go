package config

import (
	"errors"

	"github.com/ezrec/cpusim/translate"
)

var f = translate.From

var (
	ErrKeyMissing  = errors.New(f("missing"))
	ErrKeyType     = errors.New(f("wrong type"))
	ErrKeyRange    = errors.New(f("out of range"))
	ErrKeyword     = errors.New(f("keyword arguments not supported"))
	ErrModeUnknown = errors.New(f("mode unknown"))
)

// ErrConfig is an invalid machine description global.
type ErrConfig struct {
	Key string
	Err error
}

func (err *ErrConfig) Error() string {
	return f("%v: %v", err.Key, err.Err)
}

func (err *ErrConfig) Unwrap() error {
	return err.Err
}
