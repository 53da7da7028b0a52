package nfa

import (
	"fmt"
	"io"

	"github.com/coregx/revm/internal/conv"
	"github.com/coregx/revm/internal/sparse"
)

// Span is a half-open range of input offsets.
type Span struct {
	Start int
	End   int
}

// SearchStats describes the work done by one lock-step search.
type SearchStats struct {
	// Steps is the number of generations processed.
	Steps int

	// MaxGeneration is the largest number of threads alive in one
	// generation.
	MaxGeneration int

	// MaxVisited is the largest number of pcs marked in one epsilon
	// closure step. It never exceeds the program length.
	MaxVisited int
}

func (s *SearchStats) record(threads, visited int) {
	s.Steps++
	if threads > s.MaxGeneration {
		s.MaxGeneration = threads
	}
	if visited > s.MaxVisited {
		s.MaxVisited = visited
	}
}

// generation is the set of threads alive at one input offset, in priority
// order. visited marks every pc the epsilon closure reached, so no pc is
// added twice.
type generation struct {
	visited *sparse.SparseSet
	pcs     []int
}

func newGeneration(prog *Prog) *generation {
	return &generation{
		visited: sparse.NewSparseSet(conv.IntToUint32(prog.Len())),
		pcs:     make([]int, 0, prog.Len()),
	}
}

func (g *generation) clear() {
	g.visited.Clear()
	g.pcs = g.pcs[:0]
}

// observer receives the live pcs of every generation. Tests use it to check
// that a generation never holds a pc twice.
type observer func(offset int, pcs []int)

// Thompson tests whether a program matches by simulating all threads in
// lock-step, one input character at a time. Threads carry only a pc, so
// the result is a yes/no answer plus the end of the match. Deduplicating
// threads per generation bounds the work to O(len(prog) * len(input)).
type Thompson struct {
	prog    *Prog
	trace   io.Writer
	observe observer
}

// NewThompson creates a Thompson simulator for prog.
func NewThompson(prog *Prog) *Thompson {
	return &Thompson{prog: prog}
}

// SetTrace makes every generation write its offset and live pcs to w.
func (t *Thompson) SetTrace(w io.Writer) {
	t.trace = w
}

// Match runs the program anchored at offset 0 and returns the span from 0
// to the end of the highest-priority match.
func (t *Thompson) Match(input string) (Span, bool) {
	span, ok, _ := t.MatchStats(input)
	return span, ok
}

// MatchStats is like Match and also reports the work done.
func (t *Thompson) MatchStats(input string) (Span, bool, SearchStats) {
	var stats SearchStats
	clist, nlist := newGeneration(t.prog), newGeneration(t.prog)
	stack := make([]int, 0, t.prog.Len())

	stack = t.addThread(clist, stack, 0)

	end, matched := Unset, false
	for off := 0; ; {
		stats.record(len(clist.pcs), clist.visited.Len())
		t.emit(off, clist.pcs)
		if len(clist.pcs) == 0 {
			break
		}

		r, w := charAt(input, off)
		nlist.clear()
	threads:
		for _, pc := range clist.pcs {
			inst := t.prog.Inst(pc)
			switch inst.Op {
			case OpChar:
				if w > 0 && r == inst.Rune {
					stack = t.addThread(nlist, stack, pc+1)
				}
			case OpAny:
				if w > 0 {
					stack = t.addThread(nlist, stack, pc+1)
				}
			case OpMatch:
				// Lower-priority threads of this generation are cut.
				end, matched = off, true
				break threads
			}
		}
		if w == 0 {
			break
		}
		clist, nlist = nlist, clist
		off += w
	}

	if !matched {
		return Span{}, false, stats
	}
	return Span{Start: 0, End: end}, true, stats
}

// addThread adds the epsilon closure of pc to g in priority order. Only
// consuming instructions and Match become threads; Jmp, Split and Save are
// followed and marked visited.
func (t *Thompson) addThread(g *generation, stack []int, pc int) []int {
	stack = append(stack[:0], pc)
	for len(stack) > 0 {
		n := len(stack) - 1
		pc := stack[n]
		stack = stack[:n]

		if pc < 0 || pc >= t.prog.Len() || !g.visited.Insert(conv.IntToUint32(pc)) {
			continue
		}
		inst := t.prog.Inst(pc)
		switch inst.Op {
		case OpJmp:
			stack = append(stack, inst.X)
		case OpSplit:
			stack = append(stack, inst.Y, inst.X)
		case OpSave:
			stack = append(stack, pc+1)
		default:
			g.pcs = append(g.pcs, pc)
		}
	}
	return stack
}

func (t *Thompson) emit(off int, pcs []int) {
	if t.observe != nil {
		t.observe(off, pcs)
	}
	if t.trace != nil {
		fmt.Fprintf(t.trace, "[offset %d] %v\n", off, pcs)
	}
}
