package cpu

import (
	"errors"

	"github.com/trincot/lmc/translate"
)

var f = translate.From

var (
	// Machine faults
	ErrNoProgram     = errors.New(f("no program loaded"))
	ErrNoOutput      = errors.New(f("no output port attached"))
	ErrPcWrap        = errors.New(f("program counter wrapped past mailbox 99"))
	ErrAccUnreliable = errors.New(f("accumulator holds an unreliable value"))
	ErrStepLimit     = errors.New(f("step limit reached"))

	// Assembler diagnostics
	ErrMnemonicUnknown   = errors.New(f("unknown mnemonic"))
	ErrLabelDuplicate    = errors.New(f("label duplicated"))
	ErrLabelMalformed    = errors.New(f("label begins with a digit"))
	ErrOperandMissing    = errors.New(f("operand missing"))
	ErrOperandUnexpected = errors.New(f("operand not allowed"))
	ErrOperandRange      = errors.New(f("operand outside mailbox range"))
	ErrValueRange        = errors.New(f("value outside 0..999"))
	ErrProgramTooLarge   = errors.New(f("program exceeds 100 mailboxes"))
)

// ErrLabelMissing reports a label that is referenced but never defined.
type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrCode reports an instruction code with no decoding.
type ErrCode int

func (ec ErrCode) Error() string {
	return f("invalid instruction code %03d", int(ec))
}

func (ec ErrCode) Is(err error) (ok bool) {
	_, ok = err.(ErrCode)
	return
}

// ErrSyntax locates an assembly diagnostic on its source line.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrFault locates a runtime diagnostic at its mailbox address.
type ErrFault struct {
	Addr int
	Err  error
}

func (err ErrFault) Error() string {
	return f("mailbox %02d %v", err.Addr, err.Err)
}

func (err ErrFault) Unwrap() error {
	return err.Err
}

// ErrPolicyName reports an unrecognized switch in a policy script.
type ErrPolicyName string

func (err ErrPolicyName) Error() string {
	return f("'%v' is not a policy switch", string(err))
}

// ErrPolicyValue reports a policy switch assigned a non-boolean value.
type ErrPolicyValue string

func (err ErrPolicyValue) Error() string {
	return f("policy switch '%v' must be True or False", string(err))
}
