package nfa

import (
	"fmt"
	"io"

	"github.com/coregx/revm/internal/conv"
)

// pikeThread is a live thread: a pc and its capture handle.
type pikeThread struct {
	pc   int
	caps cowCaptures
}

// pikeEntry is a pending epsilon-closure step.
type pikeEntry struct {
	pc   int
	caps cowCaptures
}

// pikeGeneration is a generation whose threads carry captures.
type pikeGeneration struct {
	*generation
	threads []pikeThread
}

func newPikeGeneration(prog *Prog) *pikeGeneration {
	return &pikeGeneration{
		generation: newGeneration(prog),
		threads:    make([]pikeThread, 0, prog.Len()),
	}
}

func (g *pikeGeneration) clear() {
	g.generation.clear()
	g.threads = g.threads[:0]
}

// PikeVM is the Thompson simulation extended with per-thread captures.
// Threads that branch at a Split share one capture array until either side
// executes a Save, so following many alternatives costs no copying until
// they diverge.
//
// The first thread of a generation to reach Match becomes the provisional
// result and the threads behind it are dropped; only threads that were
// ahead of it can replace it in later generations.
type PikeVM struct {
	prog    *Prog
	trace   io.Writer
	observe observer
}

// NewPikeVM creates a Pike VM for prog.
func NewPikeVM(prog *Prog) *PikeVM {
	return &PikeVM{prog: prog}
}

// SetTrace makes every generation write its offset and live pcs to w.
func (p *PikeVM) SetTrace(w io.Writer) {
	p.trace = w
}

// Match runs the program anchored at offset 0 and returns the captures of
// the highest-priority match.
func (p *PikeVM) Match(input string) (Slots, bool) {
	slots, ok, _ := p.MatchStats(input)
	return slots, ok
}

// MatchStats is like Match and also reports the work done.
func (p *PikeVM) MatchStats(input string) (Slots, bool, SearchStats) {
	var stats SearchStats
	clist, nlist := newPikeGeneration(p.prog), newPikeGeneration(p.prog)
	stack := make([]pikeEntry, 0, p.prog.Len())

	stack = p.addThread(clist, stack, 0, 0, newCaptures(p.prog.NumSlots()))

	var result Slots
	matched := false
	for off := 0; ; {
		stats.record(len(clist.threads), clist.visited.Len())
		p.emit(off, clist)
		if len(clist.threads) == 0 {
			break
		}

		r, w := charAt(input, off)
		nlist.clear()
	threads:
		for i, t := range clist.threads {
			inst := p.prog.Inst(t.pc)
			switch inst.Op {
			case OpChar:
				if w > 0 && r == inst.Rune {
					stack = p.addThread(nlist, stack, t.pc+1, off+w, t.caps)
				} else {
					t.caps.release()
				}
			case OpAny:
				if w > 0 {
					stack = p.addThread(nlist, stack, t.pc+1, off+w, t.caps)
				} else {
					t.caps.release()
				}
			case OpMatch:
				result = t.caps.copyData()
				matched = true
				t.caps.release()
				// Lower-priority threads of this generation are cut.
				for _, rest := range clist.threads[i+1:] {
					rest.caps.release()
				}
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
		return nil, false, stats
	}
	return result, true, stats
}

// addThread adds the epsilon closure of pc to g, taking ownership of caps.
// Save records off in the thread's own handle; Split hands both branches a
// reference to the same handle.
func (p *PikeVM) addThread(g *pikeGeneration, stack []pikeEntry, pc, off int, caps cowCaptures) []pikeEntry {
	stack = append(stack[:0], pikeEntry{pc: pc, caps: caps})
	for len(stack) > 0 {
		n := len(stack) - 1
		e := stack[n]
		stack = stack[:n]

		if e.pc < 0 || e.pc >= p.prog.Len() || !g.visited.Insert(conv.IntToUint32(e.pc)) {
			e.caps.release()
			continue
		}
		inst := p.prog.Inst(e.pc)
		switch inst.Op {
		case OpJmp:
			stack = append(stack, pikeEntry{pc: inst.X, caps: e.caps})
		case OpSplit:
			stack = append(stack,
				pikeEntry{pc: inst.Y, caps: e.caps.clone()},
				pikeEntry{pc: inst.X, caps: e.caps})
		case OpSave:
			stack = append(stack, pikeEntry{pc: e.pc + 1, caps: e.caps.update(inst.N, off)})
		default:
			g.pcs = append(g.pcs, e.pc)
			g.threads = append(g.threads, pikeThread{pc: e.pc, caps: e.caps})
		}
	}
	return stack
}

func (p *PikeVM) emit(off int, g *pikeGeneration) {
	if p.observe != nil {
		p.observe(off, g.pcs)
	}
	if p.trace != nil {
		fmt.Fprintf(p.trace, "[offset %d]", off)
		for _, t := range g.threads {
			fmt.Fprintf(p.trace, " %d%s", t.pc, Slots(t.caps.get()))
		}
		fmt.Fprintln(p.trace)
	}
}
