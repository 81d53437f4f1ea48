package cpu

import (
	"fmt"
	"log"

	"github.com/trincot/lmc/io"
	"github.com/trincot/lmc/mailbox"
)

// State is the execution engine's lifecycle state.
type State int

const (
	STATE_EMPTY   = State(iota) // empty
	STATE_LOADED                // loaded
	STATE_RUNNING               // running
	STATE_STALLED               // stalled
	STATE_HALTED                // halted
	STATE_ERRORED               // errored
)

// String returns the state name.
func (st State) String() string {
	switch st {
	case STATE_EMPTY:
		return "empty"
	case STATE_LOADED:
		return "loaded"
	case STATE_RUNNING:
		return "running"
	case STATE_STALLED:
		return "stalled"
	case STATE_HALTED:
		return "halted"
	case STATE_ERRORED:
		return "errored"
	}
	return "unknown"
}

// Stopped reports whether the machine cannot continue without outside
// help: halted, stalled waiting for input, or faulted.
func (st State) Stopped() bool {
	return st == STATE_STALLED || st == STATE_HALTED || st == STATE_ERRORED
}

// Cpu is the Little Man Computer: the accumulator with its reliability
// bit, the negative flag, the program counter, and the mailbox memory.
// Execution is synchronous; each Step call executes exactly one
// instruction, and the only suspension point is INP with no input
// available.
type Cpu struct {
	Verbose bool   // If set, logs each executed instruction.
	Policy  Policy // Behavioral switches; see DefaultPolicy.
	Table   *Table // Instruction table.

	Mem      mailbox.Memory
	Acc      int  // Accumulator, 0..999.
	Reliable bool // False after an overflow or underflow, until LDA or INP.
	Flag     bool // Negative flag; consulted only by BRP.
	Pc       int  // Program counter, 0..99.

	State State
	Fault error // Runtime diagnostic, kept until the next load.

	In  io.InputPort
	Out io.OutputPort
}

// NewCpu creates a machine with the default policy and instruction table
// and no program loaded.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Policy: DefaultPolicy(),
		Table:  DefaultTable(),
	}
	cpu.Reset()
	cpu.State = STATE_EMPTY

	return
}

// Reset returns the registers to their zero state and clears any fault.
// Memory is left as loaded.
func (cpu *Cpu) Reset() {
	cpu.Acc = 0
	cpu.Reliable = true
	cpu.Flag = false
	cpu.Pc = 0
	cpu.State = STATE_LOADED
	cpu.Fault = nil
}

// Load copies an assembled program into memory and resets the registers.
func (cpu *Cpu) Load(prog *Program) {
	cpu.Mem.Reset()
	for addr, value := range prog.Values() {
		cpu.Mem.Set(addr, value)
		cpu.Mem.SetCode(addr, prog.Code[addr])
	}
	cpu.Reset()
}

// String returns the current register state.
func (cpu *Cpu) String() string {
	acc := fmt.Sprintf("%03d", cpu.Acc)
	if !cpu.Reliable {
		acc = "???"
	}
	return fmt.Sprintf("acc: %v flag: %v pc: %02d state: %v", acc, cpu.Flag, cpu.Pc, cpu.State)
}

// fail latches a terminal runtime diagnostic.
func (cpu *Cpu) fail(addr int, err error) error {
	cpu.State = STATE_ERRORED
	cpu.Fault = &ErrFault{Addr: addr, Err: err}
	return cpu.Fault
}

// setAcc loads a fresh value into the accumulator. LDA and INP are the
// only instructions that clear the flag and restore reliability.
func (cpu *Cpu) setAcc(value int) {
	cpu.Acc = mailbox.Wrap(value, mailbox.Limit)
	cpu.Reliable = true
	cpu.Flag = false
}

// reliable enforces the unreliable-accumulator policy at addr.
func (cpu *Cpu) reliable(addr int) (err error) {
	if cpu.Policy.ForbidUnreliableAcc && !cpu.Reliable {
		err = cpu.fail(addr, ErrAccUnreliable)
	}
	return
}

// Step executes a single instruction. A nil error does not mean the
// machine can continue; check State for halts and input stalls. A non-nil
// error is the runtime diagnostic, already latched in Fault.
func (cpu *Cpu) Step() (err error) {
	switch cpu.State {
	case STATE_EMPTY:
		return ErrNoProgram
	case STATE_ERRORED:
		return cpu.Fault
	}

	addr := cpu.Pc
	value := cpu.Mem.Get(addr)

	cpu.State = STATE_RUNNING

	// The counter advances before dispatch; branch and halt handlers that
	// override the advance reset it explicitly.
	cpu.Pc = mailbox.Wrap(addr+1, mailbox.Size)
	moved := false

	ins, operand, ok := cpu.Table.Decode(value)
	if !ok {
		if cpu.Policy.StrictCodes {
			return cpu.fail(addr, ErrCode(value))
		}
		ins = nil
	}

	if cpu.Verbose && ins != nil {
		log.Printf("%02d: %03d  %v %d", addr, value, ins.Op, operand)
	}

	if ins != nil {
		switch ins.Op {
		case OP_HLT:
			cpu.Pc = addr
			cpu.State = STATE_HALTED
			moved = true

		case OP_ADD:
			sum := cpu.Acc + cpu.Mem.Get(operand)
			if sum >= mailbox.Limit {
				cpu.Reliable = false
				if cpu.Policy.FlagOnAddOverflow {
					cpu.Flag = true
				}
			}
			cpu.Acc = mailbox.Wrap(sum, mailbox.Limit)

		case OP_SUB:
			diff := cpu.Acc - cpu.Mem.Get(operand)
			if diff < 0 {
				cpu.Reliable = false
				cpu.Flag = true
			}
			cpu.Acc = mailbox.Wrap(diff, mailbox.Limit)

		case OP_STA:
			if err = cpu.reliable(addr); err != nil {
				return
			}
			cpu.Mem.Set(operand, cpu.Acc)

		case OP_LDA:
			cpu.setAcc(cpu.Mem.Get(operand))

		case OP_BRA:
			cpu.Pc = operand
			moved = true

		case OP_BRZ:
			if err = cpu.reliable(addr); err != nil {
				return
			}
			if cpu.Acc == 0 && !(cpu.Policy.ZeroBranchWantsClearFlag && cpu.Flag) {
				cpu.Pc = operand
				moved = true
			}

		case OP_BRP:
			// Decided by the flag alone, never by the accumulator value.
			if !cpu.Flag {
				cpu.Pc = operand
				moved = true
			}

		case OP_INP:
			var input int
			var avail bool
			if cpu.In != nil {
				input, avail = cpu.In.Read()
			}
			if !avail {
				// Like HLT, but resumable: retry the step once input
				// becomes available.
				cpu.Pc = addr
				cpu.State = STATE_STALLED
				return
			}
			cpu.setAcc(input)

		case OP_OUT:
			if err = cpu.reliable(addr); err != nil {
				return
			}
			if cpu.Out == nil {
				return cpu.fail(addr, ErrNoOutput)
			}
			if err = cpu.Out.Write(cpu.Acc); err != nil {
				return cpu.fail(addr, err)
			}

		case OP_OTC:
			if err = cpu.reliable(addr); err != nil {
				return
			}
			if cpu.Out == nil {
				return cpu.fail(addr, ErrNoOutput)
			}
			if err = cpu.Out.WriteChar(cpu.Acc); err != nil {
				return cpu.fail(addr, err)
			}

		case OP_DAT:
			// DAT has no opcode and never decodes.
		}
	}

	if !moved && addr == mailbox.Size-1 && cpu.Pc == 0 && cpu.Policy.ForbidPcWrap {
		return cpu.fail(addr, ErrPcWrap)
	}

	return
}

// Run steps until the machine stops: a halt, an input stall, or a fault.
// limit caps the number of steps taken, 0 meaning unlimited.
func (cpu *Cpu) Run(limit int) (steps int, err error) {
	for {
		if err = cpu.Step(); err != nil {
			return
		}
		steps++
		if cpu.State.Stopped() {
			return
		}
		if limit > 0 && steps == limit {
			err = ErrStepLimit
			return
		}
	}
}
