package io

import (
	"strings"
)

// Buffer is an output port that records everything delivered to it.
type Buffer struct {
	Values []int // Values delivered by OUT, in order.

	text strings.Builder
}

var _ OutputPort = (*Buffer)(nil)

// Write records a numeric value.
func (b *Buffer) Write(value int) (err error) {
	b.Values = append(b.Values, value)
	return
}

// WriteChar records a value's character interpretation.
func (b *Buffer) WriteChar(value int) (err error) {
	b.text.WriteRune(rune(value))
	return
}

// Text returns the characters delivered by OTC so far.
func (b *Buffer) Text() string {
	return b.text.String()
}

// Rewind discards everything recorded.
func (b *Buffer) Rewind() {
	b.Values = b.Values[:0]
	b.text.Reset()
}
