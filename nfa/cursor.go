package nfa

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// Cursor is a position in a program and its input: the pc of the next
// instruction and the byte offset of the next character.
//
// Cursor is a small value type. Backtracking engines fork a search by
// copying it.
type Cursor struct {
	prog   *Prog
	input  string
	pc     int
	offset int
	trace  io.Writer
}

// NewCursor returns a cursor at pc 0, offset 0.
func NewCursor(prog *Prog, input string) Cursor {
	return Cursor{prog: prog, input: input}
}

// WithTrace returns a copy of c that writes its rendering to w before every
// instruction fetch. A nil w disables tracing.
func (c Cursor) WithTrace(w io.Writer) Cursor {
	c.trace = w
	return c
}

// PC returns the program counter.
func (c *Cursor) PC() int { return c.pc }

// SetPC moves the program counter.
func (c *Cursor) SetPC(pc int) { c.pc = pc }

// Offset returns the input offset.
func (c *Cursor) Offset() int { return c.offset }

// Reset moves the cursor to pc and offset.
func (c *Cursor) Reset(pc, offset int) {
	c.pc = pc
	c.offset = offset
}

// AtEnd reports whether all input has been consumed.
func (c *Cursor) AtEnd() bool { return c.offset >= len(c.input) }

// NextInst returns the instruction at pc and advances pc by one.
// It returns nil when pc is outside the program.
func (c *Cursor) NextInst() *Inst {
	if c.trace != nil {
		fmt.Fprintln(c.trace, c.String())
	}
	inst := c.prog.Inst(c.pc)
	c.pc++
	return inst
}

// NextChar decodes the character at the offset and advances past it.
// ok is false at end of input. Invalid UTF-8 yields utf8.RuneError with a
// width of one byte.
func (c *Cursor) NextChar() (r rune, ok bool) {
	if c.offset >= len(c.input) {
		return 0, false
	}
	r, w := utf8.DecodeRuneInString(c.input[c.offset:])
	c.offset += w
	return r, true
}

// String renders the cursor as "[offset N] pc. inst", or "-" in place of
// the instruction when pc is outside the program.
func (c Cursor) String() string {
	if inst := c.prog.Inst(c.pc); inst != nil {
		return fmt.Sprintf("[offset %d] %2d. %s", c.offset, c.pc, inst)
	}
	return fmt.Sprintf("[offset %d] -", c.offset)
}

// charAt decodes the character at off, returning its width (0 at end of
// input). Used by the generation-based engines which do not carry cursors.
func charAt(input string, off int) (rune, int) {
	if off >= len(input) {
		return 0, 0
	}
	return utf8.DecodeRuneInString(input[off:])
}
