package nfa

import "io"

// DefaultMaxThreads is the default ceiling on deferred threads queued by
// the Backtracker.
const DefaultMaxThreads = 1000

// BacktrackConfig configures a Backtracker.
type BacktrackConfig struct {
	// MaxThreads bounds the number of deferred threads held at once.
	// Zero or negative selects DefaultMaxThreads.
	MaxThreads int
}

// DefaultBacktrackConfig returns the default configuration.
func DefaultBacktrackConfig() BacktrackConfig {
	return BacktrackConfig{MaxThreads: DefaultMaxThreads}
}

// btThread is a deferred alternative: where to resume and with which
// captures.
type btThread struct {
	cur  Cursor
	caps cowCaptures
}

// Backtracker is a backtracking matcher with the same priority semantics as
// Recursive, driven by an explicit last-in-first-out stack of deferred
// threads. Split defers its second operand and continues on the first.
// Captures are copy-on-write handles, so deferring a thread costs O(1).
//
// Every (pc, offset) pair is executed at most once per search. A pair seen
// again was first reached by a higher-priority thread that failed from it,
// so the later thread fails too and is dropped. This also ends empty-width
// loops such as (a*)*?b, which would otherwise requeue one thread forever.
//
// The stack is bounded by MaxThreads; exceeding it aborts the search with a
// *ResourceError instead of reporting a match or a non-match.
type Backtracker struct {
	prog       *Prog
	maxThreads int
	trace      io.Writer
}

// NewBacktracker creates a backtracker with the default configuration.
func NewBacktracker(prog *Prog) *Backtracker {
	return NewBacktrackerWithConfig(prog, DefaultBacktrackConfig())
}

// NewBacktrackerWithConfig creates a backtracker with cfg.
func NewBacktrackerWithConfig(prog *Prog, cfg BacktrackConfig) *Backtracker {
	maxThreads := cfg.MaxThreads
	if maxThreads <= 0 {
		maxThreads = DefaultMaxThreads
	}
	return &Backtracker{prog: prog, maxThreads: maxThreads}
}

// MaxThreads returns the thread ceiling in effect.
func (b *Backtracker) MaxThreads() int { return b.maxThreads }

// SetTrace makes every instruction fetch write a cursor line to w.
func (b *Backtracker) SetTrace(w io.Writer) {
	b.trace = w
}

// Match runs the program anchored at offset 0. It returns the captures of
// the highest-priority match, or a *ResourceError if the thread ceiling was
// exceeded.
func (b *Backtracker) Match(input string) (Slots, bool, error) {
	visited := newVisitedSet(b.prog.Len(), len(input))
	stack := make([]btThread, 0, 16)
	stack = append(stack, btThread{
		cur:  NewCursor(b.prog, input).WithTrace(b.trace),
		caps: newCaptures(b.prog.NumSlots()),
	})

	for len(stack) > 0 {
		n := len(stack) - 1
		t := stack[n]
		stack = stack[:n]

		caps, matched, err := b.run(t, &stack, visited)
		if err != nil {
			return nil, false, err
		}
		if matched {
			return caps.copyData(), true, nil
		}
	}
	return nil, false, nil
}

// run executes one thread until it matches or dies, deferring the second
// operand of every Split it passes.
func (b *Backtracker) run(t btThread, stack *[]btThread, visited visitedSet) (cowCaptures, bool, error) {
	cur, caps := t.cur, t.caps
	for {
		if !visited.shouldVisit(cur.PC(), cur.Offset()) {
			caps.release()
			return cowCaptures{}, false, nil
		}
		inst := cur.NextInst()
		if inst == nil {
			caps.release()
			return cowCaptures{}, false, nil
		}
		switch inst.Op {
		case OpChar:
			ch, ok := cur.NextChar()
			if !ok || ch != inst.Rune {
				caps.release()
				return cowCaptures{}, false, nil
			}
		case OpAny:
			if _, ok := cur.NextChar(); !ok {
				caps.release()
				return cowCaptures{}, false, nil
			}
		case OpMatch:
			return caps, true, nil
		case OpJmp:
			cur.SetPC(inst.X)
		case OpSplit:
			if len(*stack) >= b.maxThreads {
				return cowCaptures{}, false, &ResourceError{
					Limit:  b.maxThreads,
					PC:     cur.PC() - 1,
					Offset: cur.Offset(),
				}
			}
			y := cur
			y.SetPC(inst.Y)
			*stack = append(*stack, btThread{cur: y, caps: caps.clone()})
			cur.SetPC(inst.X)
		case OpSave:
			caps = caps.update(inst.N, cur.Offset())
		default:
			caps.release()
			return cowCaptures{}, false, nil
		}
	}
}

// visitedSet is a bit vector over (pc, offset) pairs.
// Layout: bit pc*(inputLen+1) + offset.
type visitedSet struct {
	bits     []uint64
	numPCs   int
	inputLen int
}

func newVisitedSet(numPCs, inputLen int) visitedSet {
	n := numPCs * (inputLen + 1)
	return visitedSet{
		bits:     make([]uint64, (n+63)/64),
		numPCs:   numPCs,
		inputLen: inputLen,
	}
}

// shouldVisit marks (pc, offset) and reports whether it was unmarked.
// Pairs outside the program are let through; NextInst rejects them.
func (v visitedSet) shouldVisit(pc, offset int) bool {
	if pc < 0 || pc >= v.numPCs || offset < 0 || offset > v.inputLen {
		return true
	}
	idx := pc*(v.inputLen+1) + offset
	word, bit := idx/64, uint64(1)<<(idx%64)
	if v.bits[word]&bit != 0 {
		return false
	}
	v.bits[word] |= bit
	return true
}
