package cpu

import (
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Policy is the set of behavioral switches on which observed variants of
// the machine disagree. The zero value disables everything; start from
// DefaultPolicy.
type Policy struct {
	FlagOnAddOverflow        bool // ADD overflow sets the negative flag.
	ZeroBranchWantsClearFlag bool // BRZ branches only while the flag is clear.
	ForbidUnreliableAcc      bool // STA, BRZ, OUT and OTC fault on an unreliable accumulator.
	ForbidPcWrap             bool // Falling off mailbox 99 faults instead of wrapping to 0.
	StrictCodes              bool // Undefined instruction codes fault instead of acting as no-ops.
}

// DefaultPolicy returns the default variant, with every switch enabled.
func DefaultPolicy() Policy {
	return Policy{
		FlagOnAddOverflow:        true,
		ZeroBranchWantsClearFlag: true,
		ForbidUnreliableAcc:      true,
		ForbidPcWrap:             true,
		StrictCodes:              true,
	}
}

// PolicyFromScript evaluates a Starlark variant script and applies its
// assignments on top of the default policy. The script assigns True or
// False to any of:
//
//	flag_on_add_overflow
//	zero_branch_wants_clear_flag
//	forbid_unreliable_acc
//	forbid_pc_wrap
//	strict_codes
//
// Globals starting with an underscore are script-local and ignored.
func PolicyFromScript(filename string, src any) (pol Policy, err error) {
	pol = DefaultPolicy()

	thread := &starlark.Thread{Name: "policy"}
	opts := &syntax.FileOptions{}
	globals, err := starlark.ExecFileOptions(opts, thread, filename, src, nil)
	if err != nil {
		return
	}

	fields := map[string]*bool{
		"flag_on_add_overflow":         &pol.FlagOnAddOverflow,
		"zero_branch_wants_clear_flag": &pol.ZeroBranchWantsClearFlag,
		"forbid_unreliable_acc":        &pol.ForbidUnreliableAcc,
		"forbid_pc_wrap":               &pol.ForbidPcWrap,
		"strict_codes":                 &pol.StrictCodes,
	}

	for name, value := range globals {
		if strings.HasPrefix(name, "_") {
			continue
		}
		field, ok := fields[name]
		if !ok {
			err = ErrPolicyName(name)
			return
		}
		b, ok := value.(starlark.Bool)
		if !ok {
			err = ErrPolicyValue(name)
			return
		}
		*field = bool(b)
	}

	return
}
