package io

import (
	"github.com/trincot/lmc/translate"
)

var f = translate.From

// ErrInputMalformed reports a non-numeric token on the input tape.
type ErrInputMalformed string

func (err ErrInputMalformed) Error() string {
	return f("'%v' is not a number", string(err))
}
