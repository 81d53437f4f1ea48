package io

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// Tape adapts plain text streams to the execution ports: whitespace
// separated decimal numbers on Input, one number per line (or raw
// characters for OTC) on Output.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	Err error // First malformed input token, if any.

	scanner *bufio.Scanner
}

var _ InputPort = (*Tape)(nil)
var _ OutputPort = (*Tape)(nil)

// Read scans the next decimal number from the input stream. ok=false at
// end of input and on a malformed token; the token is kept in Err.
func (tape *Tape) Read() (value int, ok bool) {
	if tape.Input == nil || tape.Err != nil {
		return
	}
	if tape.scanner == nil {
		tape.scanner = bufio.NewScanner(tape.Input)
		tape.scanner.Split(bufio.ScanWords)
	}
	if !tape.scanner.Scan() {
		return
	}

	value, err := strconv.Atoi(tape.scanner.Text())
	if err != nil {
		tape.Err = ErrInputMalformed(tape.scanner.Text())
		value = 0
		return
	}
	ok = true
	return
}

// Write prints a number and a newline to the output stream.
func (tape *Tape) Write(value int) (err error) {
	_, err = fmt.Fprintf(tape.Output, "%d\n", value)
	return
}

// WriteChar prints a value's character to the output stream.
func (tape *Tape) WriteChar(value int) (err error) {
	_, err = fmt.Fprintf(tape.Output, "%c", rune(value))
	return
}

// Rewind is not possible on a tape.
func (tape *Tape) Rewind() {
}
