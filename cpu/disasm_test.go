package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisassemblerCell(t *testing.T) {
	assert := assert.New(t)

	dis := &Disassembler{}

	assert.Equal("\tINP", dis.Cell(0, 901, true, nil))
	assert.Equal("\tADD 42", dis.Cell(0, 142, true, nil))
	assert.Equal("\tHLT", dis.Cell(0, 0, true, nil))

	// Data mailboxes and undecodable code values render as DAT.
	assert.Equal("\tDAT 901", dis.Cell(0, 901, false, nil))
	assert.Equal("\tDAT 450", dis.Cell(0, 450, true, nil))

	// Labels are restored from the symbol table.
	sym := NewSymbols()
	assert.NoError(sym.Define("count", 4))
	assert.Equal("\tSTA count", dis.Cell(0, 304, true, sym))
	assert.Equal("count\tDAT 5", dis.Cell(4, 5, false, sym))
}

func TestDisassemblerListing(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	dis := &Disassembler{}

	source := strings.Join([]string{
		"\tINP",
		"\tSTA count",
		"\tOUT",
		"\tHLT",
		"count\tDAT 5",
	}, "\n")

	prog, err := asm.Parse(strings.NewReader(source))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	lines := dis.Listing(prog)
	assert.Equal([]string{
		"\tINP",
		"\tSTA count",
		"\tOUT",
		"\tHLT",
		"count\tDAT 5",
	}, lines)
}

func TestDisassemblerRoundTrip(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	dis := &Disassembler{}

	source := strings.Join([]string{
		"start\tINP",
		"\tBRZ done",
		"\tSUB one",
		"\tSTA 50",
		"\tBRA start",
		"done\tOTC",
		"\tHLT",
		"\t450", // kept as data
		"one\tDAT 1",
	}, "\n")

	prog, err := asm.Parse(strings.NewReader(source))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	listing := strings.Join(dis.Listing(prog), "\n")
	again, err := asm.Parse(strings.NewReader(listing))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(prog.Cells, again.Cells)
	assert.Equal(prog.Code, again.Code)
}

func TestDisassemblerDump(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	dis := &Disassembler{}

	prog, err := asm.Parse(strings.NewReader("INP\nHLT\n"))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	cpu := NewCpu()
	cpu.Load(prog)

	lines := dis.Dump(&cpu.Mem, prog.Symbols)
	assert.Len(lines, 100)
	assert.Equal("00: 901\tINP", lines[0])
	assert.Equal("01: 000\tHLT", lines[1])
	assert.Equal("50: 000\tDAT 0", lines[50])
}
