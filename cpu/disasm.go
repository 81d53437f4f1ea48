package cpu

import (
	"fmt"
	"strconv"

	"github.com/trincot/lmc/mailbox"
)

// Disassembler projects a memory image and symbol table back into source
// text. It only reads; the machine is never mutated.
type Disassembler struct {
	Table *Table // Instruction table; DefaultTable() when nil.
}

// Cell renders one mailbox as a source line: the originating label, then
// the mnemonic and operand for mailboxes classified as code, or a DAT
// literal otherwise. An operand is rendered as a label when one resolves
// to that address. The result reassembles to the same stored value.
func (dis *Disassembler) Cell(addr, value int, code bool, sym *Symbols) string {
	table := dis.Table
	if table == nil {
		table = DefaultTable()
	}

	var label string
	if sym != nil {
		label, _ = sym.At(addr)
	}

	var text string
	if code {
		if ins, operand, ok := table.Decode(value); ok {
			text = ins.Name
			if ins.Arity == ARITY_ADDR {
				arg := strconv.Itoa(operand)
				if sym != nil {
					if name, ok := sym.At(operand); ok {
						arg = name
					}
				}
				text += " " + arg
			}
		}
	}
	if text == "" {
		text = fmt.Sprintf("DAT %d", value)
	}

	return label + "\t" + text
}

// Listing renders an assembled program as reassemblable source text, one
// line per occupied mailbox.
func (dis *Disassembler) Listing(prog *Program) (lines []string) {
	for addr, value := range prog.Values() {
		lines = append(lines, dis.Cell(addr, value, prog.Code[addr], prog.Symbols))
	}
	return
}

// Dump renders a full memory image for display: address, raw value, and
// the source form of each mailbox.
func (dis *Disassembler) Dump(mem *mailbox.Memory, sym *Symbols) (lines []string) {
	for addr, value := range mem.Cells() {
		cell := dis.Cell(addr, value, mem.IsCode(addr), sym)
		lines = append(lines, fmt.Sprintf("%02d: %03d%s", addr, value, cell))
	}
	return
}
