package nfa

import (
	"github.com/coregx/revm/syntax"
)

// CountInsts returns the number of instructions Compile emits for re,
// excluding the trailing Match.
func CountInsts(re *syntax.Regexp) int {
	if re == nil {
		return 0
	}
	switch re.Op {
	case syntax.OpAlt:
		return 2 + CountInsts(re.Left) + CountInsts(re.Right)
	case syntax.OpCat:
		return CountInsts(re.Left) + CountInsts(re.Right)
	case syntax.OpLit, syntax.OpDot:
		return 1
	case syntax.OpParen:
		if re.Cap < 0 {
			return CountInsts(re.Left)
		}
		return 2 + CountInsts(re.Left)
	case syntax.OpQuest, syntax.OpPlus:
		return 1 + CountInsts(re.Left)
	case syntax.OpStar:
		return 2 + CountInsts(re.Left)
	}
	return 0
}

// Compiler turns a syntax tree into a Prog in a single recursive pass.
// Forward branches are emitted as placeholders and patched by index once
// the extent of their operands is known.
type Compiler struct {
	insts  []Inst
	maxCap int
}

// NewCompiler creates a compiler. A Compiler may be reused; each call to
// Compile starts from scratch.
func NewCompiler() *Compiler {
	return &Compiler{}
}

// Compile compiles re with a fresh Compiler.
func Compile(re *syntax.Regexp) *Prog {
	return NewCompiler().Compile(re)
}

// Compile compiles re into a program ending in Match. The slot count is
// two per group id up to the highest id in re, or zero when re has no
// groups. Group ids must already be assigned (see syntax.NumberGroups);
// an Unnumbered group compiles as its contents, without Save instructions.
func (c *Compiler) Compile(re *syntax.Regexp) *Prog {
	c.insts = make([]Inst, 0, CountInsts(re)+1)
	c.maxCap = -1

	c.emit(re)
	c.insts = append(c.insts, Inst{Op: OpMatch})

	prog := &Prog{insts: c.insts, slots: 2 * (c.maxCap + 1)}
	c.insts = nil
	return prog
}

// pc returns the index of the next instruction to be emitted.
func (c *Compiler) pc() int {
	return len(c.insts)
}

// placeholder emits a split to be patched later and returns its index.
func (c *Compiler) placeholder() int {
	pc := c.pc()
	c.insts = append(c.insts, Inst{Op: OpSplit, X: -1, Y: -1})
	return pc
}

// split builds a Split preferring body when greedy and skip otherwise.
func split(greedy bool, body, skip int) Inst {
	if greedy {
		return Inst{Op: OpSplit, X: body, Y: skip}
	}
	return Inst{Op: OpSplit, X: skip, Y: body}
}

// emit compiles re at the end of the buffer and returns its start pc.
func (c *Compiler) emit(re *syntax.Regexp) int {
	start := c.pc()
	switch re.Op {
	case syntax.OpAlt:
		s := c.placeholder()
		x := c.emit(re.Left)
		j := c.placeholder()
		y := c.emit(re.Right)
		c.insts[s] = Inst{Op: OpSplit, X: x, Y: y}
		c.insts[j] = Inst{Op: OpJmp, X: c.pc()}

	case syntax.OpCat:
		c.emit(re.Left)
		c.emit(re.Right)

	case syntax.OpLit:
		c.insts = append(c.insts, Inst{Op: OpChar, Rune: re.Rune})

	case syntax.OpDot:
		c.insts = append(c.insts, Inst{Op: OpAny})

	case syntax.OpParen:
		if re.Cap < 0 {
			c.emit(re.Left)
			break
		}
		if re.Cap > c.maxCap {
			c.maxCap = re.Cap
		}
		c.insts = append(c.insts, Inst{Op: OpSave, N: 2 * re.Cap})
		c.emit(re.Left)
		c.insts = append(c.insts, Inst{Op: OpSave, N: 2*re.Cap + 1})

	case syntax.OpQuest:
		s := c.placeholder()
		x := c.emit(re.Left)
		c.insts[s] = split(re.Greedy, x, c.pc())

	case syntax.OpStar:
		s := c.placeholder()
		x := c.emit(re.Left)
		c.insts = append(c.insts, Inst{Op: OpJmp, X: s})
		c.insts[s] = split(re.Greedy, x, c.pc())

	case syntax.OpPlus:
		x := c.emit(re.Left)
		c.insts = append(c.insts, split(re.Greedy, x, c.pc()+1))
	}
	return start
}
