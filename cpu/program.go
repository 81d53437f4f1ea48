package cpu

import (
	"iter"
	"strings"

	"github.com/trincot/lmc/mailbox"
)

// Symbols is the bidirectional label to mailbox address table built during
// assembly and immutable afterward. Lookups are case-insensitive; the
// defining spelling is kept for display.
type Symbols struct {
	byName map[string]int
	byAddr map[int]string
}

// NewSymbols returns an empty symbol table.
func NewSymbols() *Symbols {
	return &Symbols{
		byName: make(map[string]int),
		byAddr: make(map[int]string),
	}
}

// Define binds a label to an address. Redefining a label, in any case
// spelling, is rejected.
func (sym *Symbols) Define(name string, addr int) (err error) {
	key := strings.ToLower(name)
	if _, ok := sym.byName[key]; ok {
		err = ErrLabelDuplicate
		return
	}
	sym.byName[key] = addr
	sym.byAddr[addr] = name
	return
}

// Lookup resolves a label reference to its mailbox address.
func (sym *Symbols) Lookup(name string) (addr int, ok bool) {
	addr, ok = sym.byName[strings.ToLower(name)]
	return
}

// At returns the label defined at a mailbox address, if any.
func (sym *Symbols) At(addr int) (name string, ok bool) {
	name, ok = sym.byAddr[addr]
	return
}

// Len returns the number of defined labels.
func (sym *Symbols) Len() int {
	return len(sym.byName)
}

// Line is one source line and the mailbox it emitted.
type Line struct {
	LineNo int    // 1-based source line number.
	Addr   int    // Emitted mailbox address, or -1 when the line emits nothing.
	Text   string // Raw source text.
	Label  string // Label defined on this line, if any.
}

// Program is the result of a successful assembly: the memory image, the
// code/data classification, the symbol table, and the line map.
type Program struct {
	Lines   []Line
	Cells   []int
	Code    []bool
	Symbols *Symbols
}

// Size returns the number of mailboxes the program occupies.
func (prog *Program) Size() int {
	return len(prog.Cells)
}

// Image returns the full memory image, zero-filled past the program.
func (prog *Program) Image() (image [mailbox.Size]int) {
	copy(image[:], prog.Cells)
	return
}

// Values returns an iterator over the occupied mailboxes in address order.
func (prog *Program) Values() iter.Seq2[int, int] {
	return func(yield func(addr, value int) bool) {
		for addr, value := range prog.Cells {
			if !yield(addr, value) {
				return
			}
		}
	}
}

// LineAt returns the source line that emitted the mailbox at addr.
func (prog *Program) LineAt(addr int) (line Line, ok bool) {
	for _, ln := range prog.Lines {
		if ln.Addr == addr {
			return ln, true
		}
	}
	return
}
