// Package mailbox implements the storage fabric of the Little Man Computer:
// one hundred decimal mailboxes, each holding a value in [0, 999].
package mailbox

import (
	"iter"
)

const (
	Size  = 100  // Number of mailboxes.
	Limit = 1000 // Values are stored modulo this limit.
)

// Wrap normalizes v into [0, m), including negative v.
func Wrap(v, m int) int {
	v %= m
	if v < 0 {
		v += m
	}
	return v
}

// Memory is the mailbox array. Every access wraps the address modulo Size
// and every stored value modulo Limit, so no read or write is ever out of
// range. Each mailbox also carries a display-only code/data classification.
type Memory struct {
	cell [Size]int
	code [Size]bool
}

// Get returns the value of the mailbox at addr.
func (mem *Memory) Get(addr int) int {
	return mem.cell[Wrap(addr, Size)]
}

// Set stores value into the mailbox at addr.
func (mem *Memory) Set(addr, value int) {
	mem.cell[Wrap(addr, Size)] = Wrap(value, Limit)
}

// SetCode marks the mailbox at addr as holding an instruction.
func (mem *Memory) SetCode(addr int, code bool) {
	mem.code[Wrap(addr, Size)] = code
}

// IsCode reports whether the mailbox at addr holds an instruction.
func (mem *Memory) IsCode(addr int) bool {
	return mem.code[Wrap(addr, Size)]
}

// Reset clears every mailbox to zero and marks it as data.
func (mem *Memory) Reset() {
	clear(mem.cell[:])
	clear(mem.code[:])
}

// Cells returns an iterator over all mailboxes in address order.
func (mem *Memory) Cells() iter.Seq2[int, int] {
	return func(yield func(addr, value int) bool) {
		for addr, value := range mem.cell {
			if !yield(addr, value) {
				return
			}
		}
	}
}
