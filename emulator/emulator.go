// Package emulator ties the assembler, the machine, and the execution
// ports together into a front end suitable for embedding: load a program,
// step or run it, and pull a listing back out for display.
package emulator

import (
	"slices"
	"strings"

	"github.com/trincot/lmc/cpu"
	"github.com/trincot/lmc/io"
)

// Emulator state. Machine + assembled program + default ports.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the machine.
	Program  *cpu.Program // Currently loaded program, nil before assembly.
	Source   []string     // Raw source lines, kept for the unassembled listing.

	Queue  io.Queue  // Default input port.
	Buffer io.Buffer // Default output port.
}

// NewEmulator creates an emulator wired to its default in-memory ports.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu: cpu.NewCpu(),
	}

	emu.Cpu.In = &emu.Queue
	emu.Cpu.Out = &emu.Buffer

	return
}

// Load assembles source text and loads the result into the machine,
// resetting the registers and rewinding the ports. On a diagnostic
// nothing is loaded and the previous program, if any, is kept.
func (emu *Emulator) Load(source string) (err error) {
	emu.Source = strings.Split(source, "\n")

	asm := &cpu.Assembler{Verbose: emu.Verbose, Table: emu.Cpu.Table}
	prog, err := asm.Parse(strings.NewReader(source))
	if err != nil {
		return
	}

	emu.Program = prog
	if emu.Cpu.In != nil {
		emu.Cpu.In.Rewind()
	}
	if emu.Cpu.Out != nil {
		emu.Cpu.Out.Rewind()
	}
	emu.Cpu.Load(prog)

	return
}

// LineNo returns the source line number of the instruction the program
// counter points at, or 0 when unknown.
func (emu *Emulator) LineNo() (lineno int) {
	if emu.Program == nil {
		return
	}
	if line, ok := emu.Program.LineAt(emu.Cpu.Pc); ok {
		lineno = line.LineNo
	}
	return
}

// Step executes a single instruction. done reports that the machine
// cannot continue: halted, stalled waiting for input, or faulted. Faults
// are reported with the originating source line.
func (emu *Emulator) Step() (done bool, err error) {
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	emu.Cpu.Verbose = emu.Verbose

	err = emu.Cpu.Step()
	done = err != nil || emu.Cpu.State.Stopped()

	return
}

// Run steps until the machine stops. limit caps the number of steps
// taken, 0 meaning unlimited.
func (emu *Emulator) Run(limit int) (steps int, err error) {
	for {
		var done bool
		done, err = emu.Step()
		if err != nil {
			return
		}
		steps++
		if done {
			return
		}
		if limit > 0 && steps == limit {
			err = cpu.ErrStepLimit
			return
		}
	}
}

// Listing renders the program for display: the disassembly when one is
// loaded, otherwise the raw source lines unchanged.
func (emu *Emulator) Listing() (lines []string) {
	if emu.Program == nil {
		return slices.Clone(emu.Source)
	}

	dis := &cpu.Disassembler{Table: emu.Cpu.Table}
	return dis.Listing(emu.Program)
}

// Dump renders the full current memory image with addresses and raw
// values, reflecting any stores the program has performed.
func (emu *Emulator) Dump() (lines []string) {
	var sym *cpu.Symbols
	if emu.Program != nil {
		sym = emu.Program.Symbols
	}

	dis := &cpu.Disassembler{Table: emu.Cpu.Table}
	return dis.Dump(&emu.Cpu.Mem, sym)
}
