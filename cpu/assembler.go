package cpu

import (
	"bufio"
	"io"
	"log"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/trincot/lmc/mailbox"
)

// Assembler is the two-pass assembler for the Little Man Computer. The
// first pass binds labels to mailbox addresses, the second encodes each
// line; forward references are legal. The first diagnostic aborts the
// whole assembly and no program is produced.
type Assembler struct {
	Verbose bool   // If set, logs each emitted mailbox.
	Table   *Table // Instruction table; DefaultTable() when nil.
}

// scanLine splits a source line into tokens, dropping the comment. Tokens
// are maximal alphanumeric runs; a comment begins at the first character
// that is neither alphanumeric nor whitespace and runs to end of line.
func scanLine(text string) (tokens []string) {
	start := -1
	for n, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if start < 0 {
				start = n
			}
		case unicode.IsSpace(r):
			if start >= 0 {
				tokens = append(tokens, text[start:n])
				start = -1
			}
		default:
			if start >= 0 {
				tokens = append(tokens, text[start:n])
			}
			return
		}
	}
	if start >= 0 {
		tokens = append(tokens, text[start:])
	}
	return
}

// literal reports whether a token is a 1-3 digit instruction code.
func literal(token string) (value int, ok bool) {
	if len(token) > 3 {
		return
	}
	value, err := strconv.Atoi(token)
	if err != nil || value < 0 {
		value = 0
		return
	}
	ok = true
	return
}

// parsed pairs a source line with its tokens between the two passes.
type parsed struct {
	line   Line
	tokens []string
}

// Parse assembles an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	table := asm.Table
	if table == nil {
		table = DefaultTable()
	}

	prog = &Program{Symbols: NewSymbols()}

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
			prog = nil
		}
	}()

	// Split into lines and tokens; every line carrying at least one token
	// emits exactly one mailbox, sequentially from zero.
	var lines []parsed
	var next int

	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		lineno++
		line = scanner.Text()

		tokens := scanLine(line)
		addr := -1
		if len(tokens) > 0 {
			if next == mailbox.Size {
				err = ErrProgramTooLarge
				return
			}
			addr = next
			next++
		}

		lines = append(lines, parsed{
			line:   Line{LineNo: lineno, Addr: addr, Text: line},
			tokens: tokens,
		})
	}
	if err = scanner.Err(); err != nil {
		return
	}

	// Pass 1: bind labels. A first token that is neither a mnemonic nor a
	// 1-3 digit literal defines a label at the line's address.
	for n := range lines {
		p := &lines[n]
		lineno, line = p.line.LineNo, p.line.Text

		if len(p.tokens) == 0 {
			continue
		}
		first := p.tokens[0]
		if _, ok := table.Lookup(first); ok {
			continue
		}
		if _, ok := literal(first); ok {
			continue
		}
		if r, _ := utf8.DecodeRuneInString(first); unicode.IsDigit(r) {
			err = ErrLabelMalformed
			return
		}
		if err = prog.Symbols.Define(first, p.line.Addr); err != nil {
			return
		}
		p.line.Label = first
	}

	// Pass 2: encode each line against the now complete symbol table.
	for _, p := range lines {
		lineno, line = p.line.LineNo, p.line.Text

		if p.line.Addr < 0 {
			prog.Lines = append(prog.Lines, p.line)
			continue
		}

		tokens := p.tokens
		if p.line.Label != "" {
			tokens = tokens[1:]
		}

		var value int
		var code bool
		value, code, err = asm.encode(table, prog.Symbols, tokens)
		if err != nil {
			return
		}

		if asm.Verbose {
			log.Printf("%02d: %03d  %v", p.line.Addr, value, p.line.Text)
		}

		prog.Cells = append(prog.Cells, value)
		prog.Code = append(prog.Code, code)
		prog.Lines = append(prog.Lines, p.line)
	}

	return
}

// encode resolves one line's instruction tokens to a stored value and its
// code/data classification.
func (asm *Assembler) encode(table *Table, sym *Symbols, tokens []string) (value int, code bool, err error) {
	if len(tokens) == 0 {
		// A label-only line reserves a zeroed data mailbox.
		return
	}

	if v, ok := literal(tokens[0]); ok {
		if len(tokens) > 1 {
			err = ErrOperandUnexpected
			return
		}
		// Stored verbatim; shown as code when it decodes to an instruction.
		_, _, code = table.Decode(v)
		value = v
		return
	}

	ins, ok := table.Lookup(tokens[0])
	if !ok {
		err = ErrMnemonicUnknown
		return
	}
	if len(tokens) > 2 {
		err = ErrOperandUnexpected
		return
	}

	var operand int
	have := len(tokens) == 2
	if have {
		operand, err = asm.operand(sym, tokens[1], ins.Arity)
		if err != nil {
			return
		}
	}

	switch ins.Arity {
	case ARITY_NONE:
		if have {
			err = ErrOperandUnexpected
			return
		}
	case ARITY_ADDR:
		if !have {
			err = ErrOperandMissing
			return
		}
	case ARITY_OPTIONAL:
		// DAT stores its operand, or zero, verbatim.
	}

	value = table.Encode(ins, operand)
	if value < 0 || value >= mailbox.Limit {
		err = ErrValueRange
		return
	}
	code = ins.Code != NO_CODE
	return
}

// operand resolves an argument token: a bare number, or a label reference
// looked up in the symbol table.
func (asm *Assembler) operand(sym *Symbols, token string, arity Arity) (value int, err error) {
	v, nerr := strconv.Atoi(token)
	if nerr == nil {
		limit := mailbox.Size
		if arity == ARITY_OPTIONAL {
			limit = mailbox.Limit
		}
		if v < 0 || v >= limit {
			if arity == ARITY_OPTIONAL {
				err = ErrValueRange
			} else {
				err = ErrOperandRange
			}
			return
		}
		value = v
		return
	}

	addr, ok := sym.Lookup(token)
	if !ok {
		err = ErrLabelMissing(token)
		return
	}
	value = addr
	return
}
