package nfa

import (
	"fmt"
	"strconv"
	"strings"
)

// Op identifies the kind of an instruction.
type Op uint8

const (
	// OpChar consumes one character and fails unless it equals Rune.
	OpChar Op = iota

	// OpAny consumes one character, whatever it is.
	OpAny

	// OpMatch reports success.
	OpMatch

	// OpJmp transfers control to X.
	OpJmp

	// OpSplit continues at both X and Y, preferring X.
	OpSplit

	// OpSave records the current input offset in capture slot N.
	OpSave
)

// String returns the instruction mnemonic.
func (op Op) String() string {
	switch op {
	case OpChar:
		return "char"
	case OpAny:
		return "any"
	case OpMatch:
		return "match"
	case OpJmp:
		return "jmp"
	case OpSplit:
		return "split"
	case OpSave:
		return "save"
	default:
		return fmt.Sprintf("Op(%d)", op)
	}
}

// Inst is a single bytecode instruction.
// The op determines which operands are valid.
type Inst struct {
	Op   Op
	Rune rune // OpChar
	X    int  // OpJmp target, first OpSplit target
	Y    int  // second OpSplit target
	N    int  // OpSave slot
}

// String renders the instruction as mnemonic and operands, e.g. "split 1, 4".
func (i Inst) String() string {
	switch i.Op {
	case OpChar:
		return "char " + string(i.Rune)
	case OpAny, OpMatch:
		return i.Op.String()
	case OpJmp:
		return "jmp " + strconv.Itoa(i.X)
	case OpSplit:
		return fmt.Sprintf("split %d, %d", i.X, i.Y)
	case OpSave:
		return "save " + strconv.Itoa(i.N)
	default:
		return i.Op.String()
	}
}

// Prog is a compiled program. Execution starts at pc 0; the last
// instruction is always OpMatch for compiled programs.
//
// A Prog is immutable after construction and safe for concurrent use.
type Prog struct {
	insts []Inst
	slots int
}

// NewProg wraps a hand-assembled instruction sequence. numSlots is the size
// of the capture vector the engines allocate; Save instructions beyond it
// are ignored. Use Validate to check the program before running it.
func NewProg(insts []Inst, numSlots int) *Prog {
	cp := make([]Inst, len(insts))
	copy(cp, insts)
	return &Prog{insts: cp, slots: numSlots}
}

// Len returns the number of instructions.
func (p *Prog) Len() int {
	return len(p.insts)
}

// NumSlots returns the number of capture slots, two per group.
func (p *Prog) NumSlots() int {
	return p.slots
}

// NumGroups returns the number of capture groups, including group 0 when
// the program was compiled from an unanchored tree.
func (p *Prog) NumGroups() int {
	return p.slots / 2
}

// Inst returns the instruction at pc, or nil if pc is out of range.
func (p *Prog) Inst(pc int) *Inst {
	if pc < 0 || pc >= len(p.insts) {
		return nil
	}
	return &p.insts[pc]
}

// Insts returns a copy of the instruction sequence.
func (p *Prog) Insts() []Inst {
	cp := make([]Inst, len(p.insts))
	copy(cp, p.insts)
	return cp
}

// Validate checks the invariants every compiled program satisfies: an even
// slot count, branch targets and save slots in range, and a trailing Match.
func (p *Prog) Validate() error {
	if p.slots < 0 || p.slots%2 != 0 {
		return &CompileError{PC: -1, Message: fmt.Sprintf("odd slot count %d", p.slots)}
	}
	n := len(p.insts)
	if n == 0 {
		return &CompileError{PC: -1, Message: "empty program"}
	}
	if p.insts[n-1].Op != OpMatch {
		return &CompileError{PC: n - 1, Message: "program does not end in match"}
	}
	for pc, inst := range p.insts {
		switch inst.Op {
		case OpChar, OpAny, OpMatch:
		case OpJmp:
			if inst.X < 0 || inst.X >= n {
				return &CompileError{PC: pc, Message: fmt.Sprintf("jmp target %d out of range", inst.X)}
			}
		case OpSplit:
			if inst.X < 0 || inst.X >= n || inst.Y < 0 || inst.Y >= n {
				return &CompileError{PC: pc, Message: fmt.Sprintf("split targets %d, %d out of range", inst.X, inst.Y)}
			}
		case OpSave:
			if inst.N < 0 || inst.N >= p.slots {
				return &CompileError{PC: pc, Message: fmt.Sprintf("save slot %d out of range", inst.N)}
			}
		default:
			return &CompileError{PC: pc, Message: "unknown opcode " + inst.Op.String()}
		}
	}
	return nil
}

// String renders the program one instruction per line as "<pc>. <inst>".
func (p *Prog) String() string {
	var b strings.Builder
	for pc, inst := range p.insts {
		fmt.Fprintf(&b, "%2d. %s\n", pc, inst)
	}
	return b.String()
}
