// Package syntax parses regular expression patterns into an abstract syntax
// tree that the nfa package compiles into a bytecode program.
//
// The pattern language is deliberately small:
//
//	|      alternation
//	*      zero or more, greedy (*? is non-greedy)
//	+      one or more, greedy (+? is non-greedy)
//	?      zero or one, greedy (?? is non-greedy)
//	.      any character
//	(x)    capturing group
//	(?:x)  non-capturing group
//
// Every other character is a literal. There are no escapes, classes,
// anchors or counted repetitions.
package syntax

import (
	"strconv"
	"strings"
)

// Op identifies the kind of a Regexp node.
type Op uint8

const (
	// OpAlt matches Left or Right, preferring Left.
	OpAlt Op = iota + 1

	// OpCat matches Left followed by Right.
	OpCat

	// OpLit matches the single character Rune.
	OpLit

	// OpDot matches any single character.
	OpDot

	// OpParen captures the match of Left as group Cap.
	OpParen

	// OpQuest matches Left zero or one times.
	OpQuest

	// OpStar matches Left zero or more times.
	OpStar

	// OpPlus matches Left one or more times.
	OpPlus
)

// String returns the name of the operator.
func (op Op) String() string {
	switch op {
	case OpAlt:
		return "Alt"
	case OpCat:
		return "Cat"
	case OpLit:
		return "Lit"
	case OpDot:
		return "Dot"
	case OpParen:
		return "Paren"
	case OpQuest:
		return "Quest"
	case OpStar:
		return "Star"
	case OpPlus:
		return "Plus"
	default:
		return "Op(" + strconv.Itoa(int(op)) + ")"
	}
}

// Regexp is a node in the syntax tree of a parsed pattern.
//
// Which fields are meaningful depends on Op:
//   - OpAlt, OpCat: Left and Right
//   - OpLit: Rune
//   - OpDot: none
//   - OpParen: Cap and Left
//   - OpQuest, OpStar, OpPlus: Greedy and Left
type Regexp struct {
	Op     Op
	Left   *Regexp
	Right  *Regexp
	Rune   rune
	Cap    int  // group id for OpParen; 0 is the whole match
	Greedy bool // for OpQuest, OpStar, OpPlus
}

// Unnumbered is the Cap of a group that NumberGroups has not numbered yet.
const Unnumbered = -1

// Alt returns the node for left|right.
func Alt(left, right *Regexp) *Regexp {
	return &Regexp{Op: OpAlt, Left: left, Right: right}
}

// Cat returns the node for left followed by right.
func Cat(left, right *Regexp) *Regexp {
	return &Regexp{Op: OpCat, Left: left, Right: right}
}

// Lit returns the node matching the character r.
func Lit(r rune) *Regexp {
	return &Regexp{Op: OpLit, Rune: r}
}

// Dot returns the node matching any character.
func Dot() *Regexp {
	return &Regexp{Op: OpDot}
}

// Paren returns a capturing group with id n around inner.
func Paren(n int, inner *Regexp) *Regexp {
	return &Regexp{Op: OpParen, Cap: n, Left: inner}
}

// Quest returns inner? (or inner?? when greedy is false).
func Quest(greedy bool, inner *Regexp) *Regexp {
	return &Regexp{Op: OpQuest, Greedy: greedy, Left: inner}
}

// Star returns inner* (or inner*? when greedy is false).
func Star(greedy bool, inner *Regexp) *Regexp {
	return &Regexp{Op: OpStar, Greedy: greedy, Left: inner}
}

// Plus returns inner+ (or inner+? when greedy is false).
func Plus(greedy bool, inner *Regexp) *Regexp {
	return &Regexp{Op: OpPlus, Greedy: greedy, Left: inner}
}

// Equal reports whether re and other are structurally identical trees.
func (re *Regexp) Equal(other *Regexp) bool {
	if re == nil || other == nil {
		return re == other
	}
	if re.Op != other.Op {
		return false
	}
	switch re.Op {
	case OpAlt, OpCat:
		return re.Left.Equal(other.Left) && re.Right.Equal(other.Right)
	case OpLit:
		return re.Rune == other.Rune
	case OpDot:
		return true
	case OpParen:
		return re.Cap == other.Cap && re.Left.Equal(other.Left)
	case OpQuest, OpStar, OpPlus:
		return re.Greedy == other.Greedy && re.Left.Equal(other.Left)
	}
	return false
}

// MaxCap returns the highest group id used in re, or -1 if re has no groups.
func (re *Regexp) MaxCap() int {
	if re == nil {
		return -1
	}
	m := -1
	if re.Op == OpParen {
		m = re.Cap
	}
	if l := re.Left.MaxCap(); l > m {
		m = l
	}
	if r := re.Right.MaxCap(); r > m {
		m = r
	}
	return m
}

// String renders the tree in constructor form, for example
// Cat(NgStar(Dot), Paren(0, Lit(a))).
func (re *Regexp) String() string {
	var b strings.Builder
	re.writeTo(&b)
	return b.String()
}

func (re *Regexp) writeTo(b *strings.Builder) {
	if re == nil {
		b.WriteString("<nil>")
		return
	}
	switch re.Op {
	case OpAlt, OpCat:
		b.WriteString(re.Op.String())
		b.WriteByte('(')
		re.Left.writeTo(b)
		b.WriteString(", ")
		re.Right.writeTo(b)
		b.WriteByte(')')
	case OpLit:
		b.WriteString("Lit(")
		b.WriteRune(re.Rune)
		b.WriteByte(')')
	case OpDot:
		b.WriteString("Dot")
	case OpParen:
		b.WriteString("Paren(")
		b.WriteString(strconv.Itoa(re.Cap))
		b.WriteString(", ")
		re.Left.writeTo(b)
		b.WriteByte(')')
	case OpQuest, OpStar, OpPlus:
		if !re.Greedy {
			b.WriteString("Ng")
		}
		b.WriteString(re.Op.String())
		b.WriteByte('(')
		re.Left.writeTo(b)
		b.WriteByte(')')
	default:
		b.WriteString(re.Op.String())
	}
}
