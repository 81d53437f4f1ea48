// Package cpu implements the machine and assembler for the Little Man
// Computer: a decimal computer with a single accumulator, a one-bit
// negative flag, a program counter, and one hundred mailboxes of memory.
//
// The assembler is a two-pass compiler from symbolic source text to a
// memory image, a symbol table, and a code/data classification. The
// execution engine is a fetch-decode-execute loop whose overflow,
// branching, and wraparound behavior is selected by a Policy; variants
// of the machine disagree on these details, so they are switches rather
// than constants. The disassembler projects a memory image back into
// reassemblable source text.
package cpu
