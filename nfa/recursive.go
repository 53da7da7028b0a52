package nfa

import "io"

// Mode selects how the Recursive matcher walks the program.
type Mode uint8

const (
	// ModeRecursive recurses on every instruction.
	ModeRecursive Mode = iota

	// ModeLoop steps Char, Any, Jmp and Match in a loop and recurses only
	// at Split and Save.
	ModeLoop
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeLoop {
		return "loop"
	}
	return "recursive"
}

// Recursive is a backtracking matcher that keeps its deferred alternatives
// on the goroutine stack. Split tries the whole continuation under its first
// operand before the second, and Save is undone when the attempt fails.
//
// Running time is exponential in the worst case and recursion depth grows
// with the input. A program with an empty-width loop, such as one compiled
// from (a*)*, recurses without bound; callers must reject those programs
// (see syntax.HasEmptyLoop) before running them here.
type Recursive struct {
	prog  *Prog
	mode  Mode
	trace io.Writer
}

// NewRecursive creates a recursive matcher for prog.
func NewRecursive(prog *Prog, mode Mode) *Recursive {
	return &Recursive{prog: prog, mode: mode}
}

// Mode returns the walking mode.
func (r *Recursive) Mode() Mode { return r.mode }

// SetTrace makes every instruction fetch write a cursor line to w.
// A nil w disables tracing.
func (r *Recursive) SetTrace(w io.Writer) {
	r.trace = w
}

// Match runs the program anchored at offset 0. On success it returns the
// capture slots of the highest-priority match.
func (r *Recursive) Match(input string) (Slots, bool) {
	sub := NewSlots(r.prog.NumSlots())
	c := NewCursor(r.prog, input).WithTrace(r.trace)

	var ok bool
	if r.mode == ModeLoop {
		ok = r.loop(c, sub)
	} else {
		ok = r.step(c, sub)
	}
	if !ok {
		return nil, false
	}
	return sub, true
}

// step executes one instruction and recurses on its continuation.
func (r *Recursive) step(c Cursor, sub Slots) bool {
	inst := c.NextInst()
	if inst == nil {
		return false
	}
	switch inst.Op {
	case OpChar:
		ch, ok := c.NextChar()
		if !ok || ch != inst.Rune {
			return false
		}
		return r.step(c, sub)
	case OpAny:
		if _, ok := c.NextChar(); !ok {
			return false
		}
		return r.step(c, sub)
	case OpMatch:
		return true
	case OpJmp:
		c.SetPC(inst.X)
		return r.step(c, sub)
	case OpSplit:
		x := c
		x.SetPC(inst.X)
		if r.step(x, sub) {
			return true
		}
		c.SetPC(inst.Y)
		return r.step(c, sub)
	case OpSave:
		if inst.N >= len(sub) {
			return r.step(c, sub)
		}
		old := sub[inst.N]
		sub[inst.N] = c.Offset()
		if r.step(c, sub) {
			return true
		}
		sub[inst.N] = old
		return false
	}
	return false
}

// loop executes straight-line instructions iteratively.
func (r *Recursive) loop(c Cursor, sub Slots) bool {
	for {
		inst := c.NextInst()
		if inst == nil {
			return false
		}
		switch inst.Op {
		case OpChar:
			ch, ok := c.NextChar()
			if !ok || ch != inst.Rune {
				return false
			}
		case OpAny:
			if _, ok := c.NextChar(); !ok {
				return false
			}
		case OpMatch:
			return true
		case OpJmp:
			c.SetPC(inst.X)
		case OpSplit:
			x := c
			x.SetPC(inst.X)
			if r.loop(x, sub) {
				return true
			}
			c.SetPC(inst.Y)
		case OpSave:
			if inst.N >= len(sub) {
				continue
			}
			old := sub[inst.N]
			sub[inst.N] = c.Offset()
			if r.loop(c, sub) {
				return true
			}
			sub[inst.N] = old
			return false
		default:
			return false
		}
	}
}
