// Package io provides the execution ports of the Little Man Computer:
// where INP takes its values from, and where OUT and OTC deliver theirs.
// Ports never block; input that is not yet available is reported as
// absent and the machine stalls until the caller retries.
package io

// InputPort supplies values to the INP instruction. Read reports ok=false
// when no value is currently available.
type InputPort interface {
	// Read returns the next available value, or ok=false.
	Read() (value int, ok bool)
	// Rewind resets the port to its initial state.
	Rewind()
}

// OutputPort accepts values from OUT (numeric) and OTC (character).
type OutputPort interface {
	// Write delivers a numeric value.
	Write(value int) error
	// WriteChar delivers a value as its character interpretation.
	WriteChar(value int) error
	// Rewind resets the port to its initial state.
	Rewind()
}
