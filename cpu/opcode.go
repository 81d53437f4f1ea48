package cpu

import (
	"strings"

	"github.com/trincot/lmc/mailbox"
)

// Op is the closed enumeration of operations the machine can perform.
type Op int

const (
	OP_HLT = Op(iota) // hlt
	OP_ADD            // add
	OP_SUB            // sub
	OP_STA            // sta
	OP_LDA            // lda
	OP_BRA            // bra
	OP_BRZ            // brz
	OP_BRP            // brp
	OP_INP            // inp
	OP_OUT            // out
	OP_OTC            // otc
	OP_DAT            // dat
)

// String returns the canonical mnemonic for the operation.
func (op Op) String() string {
	if ins, ok := DefaultTable().ByOp(op); ok {
		return ins.Name
	}
	return "???"
}

// Arity is the operand count of an instruction.
type Arity int

const (
	ARITY_NONE     = Arity(0) // No operand.
	ARITY_ADDR     = Arity(1) // One mailbox address operand.
	ARITY_OPTIONAL = Arity(2) // Optional operand, stored verbatim.
)

// NO_CODE marks an instruction with no encoded opcode (the literal-data
// pseudo-instruction DAT).
const NO_CODE = -1

// Instruction describes one mnemonic: its operation, canonical name and
// aliases, encoded opcode, and operand arity. Descriptors are static and
// never mutated after the table is built.
type Instruction struct {
	Op      Op
	Name    string
	Aliases []string
	Code    int
	Arity   Arity
}

var instructions = []Instruction{
	{OP_HLT, "HLT", []string{"COB"}, 0, ARITY_NONE},
	{OP_ADD, "ADD", nil, 100, ARITY_ADDR},
	{OP_SUB, "SUB", nil, 200, ARITY_ADDR},
	{OP_STA, "STA", []string{"STO"}, 300, ARITY_ADDR},
	{OP_LDA, "LDA", nil, 500, ARITY_ADDR},
	{OP_BRA, "BRA", []string{"BR"}, 600, ARITY_ADDR},
	{OP_BRZ, "BRZ", nil, 700, ARITY_ADDR},
	{OP_BRP, "BRP", nil, 800, ARITY_ADDR},
	{OP_INP, "INP", nil, 901, ARITY_NONE},
	{OP_OUT, "OUT", nil, 902, ARITY_NONE},
	{OP_OTC, "OTC", nil, 922, ARITY_NONE},
	{OP_DAT, "DAT", nil, NO_CODE, ARITY_OPTIONAL},
}

// Table is the immutable instruction catalog, injected into the Assembler
// and the Disassembler.
type Table struct {
	byName map[string]*Instruction
	byOp   map[Op]*Instruction
	group  map[int]*Instruction // Address-taking opcodes by hundreds group.
	full   map[int]*Instruction // Operand-free opcodes by full value.
}

// NewTable builds an instruction table from a descriptor list.
func NewTable(descriptors []Instruction) (table *Table) {
	table = &Table{
		byName: make(map[string]*Instruction),
		byOp:   make(map[Op]*Instruction),
		group:  make(map[int]*Instruction),
		full:   make(map[int]*Instruction),
	}

	for n := range descriptors {
		ins := &descriptors[n]
		table.byName[strings.ToLower(ins.Name)] = ins
		for _, alias := range ins.Aliases {
			table.byName[strings.ToLower(alias)] = ins
		}
		table.byOp[ins.Op] = ins
		switch ins.Arity {
		case ARITY_ADDR:
			table.group[ins.Code] = ins
		case ARITY_NONE:
			table.full[ins.Code] = ins
		}
	}

	return
}

var defaultTable = NewTable(instructions)

// DefaultTable returns the shared table of standard mnemonics.
func DefaultTable() *Table {
	return defaultTable
}

// Lookup resolves a mnemonic or alias, case-insensitively.
func (table *Table) Lookup(name string) (ins *Instruction, ok bool) {
	ins, ok = table.byName[strings.ToLower(name)]
	return
}

// ByOp returns the descriptor for an operation.
func (table *Table) ByOp(op Op) (ins *Instruction, ok bool) {
	ins, ok = table.byOp[op]
	return
}

// Decode maps a stored value to an instruction and operand. The hundreds
// group is tried first for address-taking instructions, then the full
// value for operand-free ones; anything else is not an instruction.
func (table *Table) Decode(value int) (ins *Instruction, operand int, ok bool) {
	if value < 0 || value >= mailbox.Limit {
		return
	}

	operand = value % mailbox.Size
	ins, ok = table.group[value-operand]
	if ok {
		return
	}

	operand = 0
	ins, ok = table.full[value]
	return
}

// Encode computes the stored value for an instruction and operand.
func (table *Table) Encode(ins *Instruction, operand int) int {
	if ins.Code == NO_CODE {
		return operand
	}
	return ins.Code + operand
}
