package cpu

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

// FuzzAssembler checks two invariants on arbitrary source text: every
// diagnostic is a positioned syntax error, and a successful assembly
// disassembles to a listing that reassembles to the identical image.
func FuzzAssembler(f *testing.F) {
	f.Add("INP\nSTA first\nINP\nADD first\nOUT\nHLT\nfirst DAT\n")
	f.Add("loop\tBRA loop ; spin\n")
	f.Add("901\n42\nDAT 999\n")
	f.Add("x DAT y\ny DAT x\n")
	f.Add("# comment only\n\n\tHLT\n")
	f.Add("ADD nowhere\n")
	f.Add("1x INP\n")
	f.Add("\x80\xff\n")

	f.Fuzz(func(t *testing.T, source string) {
		asm := &Assembler{}

		prog, err := asm.Parse(strings.NewReader(source))
		if err != nil {
			if prog != nil {
				t.Fatalf("diagnostic with a program: %v", err)
			}
			var se *ErrSyntax
			if !errors.As(err, &se) {
				t.Fatalf("diagnostic is not a syntax error: %v", err)
			}
			return
		}

		dis := &Disassembler{}
		listing := strings.Join(dis.Listing(prog), "\n")

		again, err := asm.Parse(strings.NewReader(listing))
		if err != nil {
			t.Fatalf("listing does not reassemble: %v\n%v", err, listing)
		}
		if !slices.Equal(prog.Cells, again.Cells) {
			t.Fatalf("listing changes the image: %v != %v\n%v", prog.Cells, again.Cells, listing)
		}
		if !slices.Equal(prog.Code, again.Code) {
			t.Fatalf("listing changes the classification: %v != %v\n%v", prog.Code, again.Code, listing)
		}
	})
}
