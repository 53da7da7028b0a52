package meta

import (
	"errors"
	"slices"
	"strconv"
	"sync/atomic"

	"github.com/coregx/revm/nfa"
)

// Result is the outcome of running one engine.
type Result struct {
	Strategy Strategy

	// Matched reports whether the engine found a match. It is false when
	// Err is set.
	Matched bool

	// Slots holds the capture offsets for strategies with captures, nil
	// otherwise or when there is no match.
	Slots nfa.Slots

	// End is the end offset of the match when the engine knows it, or
	// nfa.Unset. Anchored programs have no group 0, so only Thompson knows
	// their end.
	End int

	// Err is set when the engine could not decide the input: the
	// backtracker's thread limit or a recursive engine refusing an
	// empty-width loop.
	Err error
}

// String renders the result as "no match", "match (0,3)(?,?)" or
// "error: ...".
func (r Result) String() string {
	switch {
	case r.Err != nil:
		return "error: " + r.Err.Error()
	case !r.Matched:
		return "no match"
	case len(r.Slots) > 0:
		return "match " + r.Slots.String()
	case r.End != nfa.Unset:
		return "match (?," + strconv.Itoa(r.End) + ")"
	default:
		return "match"
	}
}

// IsMatch reports whether the pattern matches input, using the literal fast
// path when available and the configured strategy otherwise. An input
// without the required literal is rejected before any engine runs.
func (e *Engine) IsMatch(input string) (bool, error) {
	if e.literalPath != nil {
		r := e.run(UseAhoCorasick, input)
		return r.Matched, nil
	}
	if e.rejects(input) {
		return false, nil
	}
	r := e.run(e.config.Strategy, input)
	return r.Matched, r.Err
}

// rejects reports whether the prefilter rules input out.
func (e *Engine) rejects(input string) bool {
	if e.required == nil || e.required.Find([]byte(input), 0) >= 0 {
		return false
	}
	atomic.AddUint64(&e.stats.PrefilterRejects, 1)
	return true
}

// FindSubmatchIndex returns the capture slots of the leftmost-first match
// as [start0, end0, start1, end1, ...], with -1 for groups that did not
// participate, or nil if there is no match. Strategies without captures
// decide the match first and take the slots from the Pike VM.
func (e *Engine) FindSubmatchIndex(input string) ([]int, error) {
	strategy := e.config.Strategy
	if e.literalPath == nil && e.rejects(input) {
		return nil, nil
	}
	if !strategy.HasCaptures() {
		matched, err := e.IsMatch(input)
		if err != nil || !matched {
			return nil, err
		}
		strategy = UsePikeVM
	}
	r := e.run(strategy, input)
	if r.Err != nil || !r.Matched {
		return nil, r.Err
	}
	if r.Slots == nil {
		return []int{}, nil
	}
	return []int(r.Slots), nil
}

// RunAll runs every engine on input, in EngineStrategies order, followed by
// the literal fast path when the engine has one. The prefilter is not
// consulted.
func (e *Engine) RunAll(input string) []Result {
	strategies := EngineStrategies()
	if e.literalPath != nil {
		strategies = append(strategies, UseAhoCorasick)
	}
	results := make([]Result, 0, len(strategies))
	for _, s := range strategies {
		results = append(results, e.run(s, input))
	}
	return results
}

// Run runs a single engine on input.
func (e *Engine) Run(strategy Strategy, input string) Result {
	return e.run(strategy, input)
}

// CrossCheck runs every engine on input and returns a *MismatchError for
// the first engine that disagrees with the Pike VM: on whether there is a
// match, on the captured offsets for engines with captures, or on the match
// end for Thompson. Engines that return an error are not compared.
func (e *Engine) CrossCheck(input string) error {
	return e.CheckResults(input, e.RunAll(input))
}

// CheckResults compares results already produced by RunAll for input, the
// way CrossCheck does. Without a Pike VM result there is nothing to compare
// against and it returns nil.
func (e *Engine) CheckResults(input string, results []Result) error {
	i := slices.IndexFunc(results, func(r Result) bool { return r.Strategy == UsePikeVM })
	if i < 0 {
		return nil
	}
	ref := results[i]
	for _, r := range results {
		if r.Err != nil || r.Strategy == UsePikeVM {
			continue
		}
		if !agree(ref, r) {
			return &MismatchError{
				Pattern:   e.pattern,
				Input:     input,
				Reference: ref,
				Other:     r,
			}
		}
	}
	return nil
}

func agree(ref, r Result) bool {
	if ref.Matched != r.Matched {
		return false
	}
	if !r.Matched {
		return true
	}
	if r.Strategy.HasCaptures() {
		return slices.Equal(ref.Slots, r.Slots)
	}
	if ref.End != nfa.Unset && r.End != nfa.Unset {
		return ref.End == r.End
	}
	return true
}

// run executes one strategy and counts it.
func (e *Engine) run(strategy Strategy, input string) Result {
	res := Result{Strategy: strategy, End: nfa.Unset}

	switch strategy {
	case UseRecursive, UseRecursiveLoop:
		if e.emptyLoop {
			res.Err = ErrEmptyLoop
			return res
		}
		mode := nfa.ModeRecursive
		counter := &e.stats.RecursiveSearches
		if strategy == UseRecursiveLoop {
			mode, counter = nfa.ModeLoop, &e.stats.LoopSearches
		}
		atomic.AddUint64(counter, 1)
		r := nfa.NewRecursive(e.prog, mode)
		r.SetTrace(e.config.Trace)
		res.Slots, res.Matched = r.Match(input)

	case UseBacktrack:
		atomic.AddUint64(&e.stats.BacktrackSearches, 1)
		b := nfa.NewBacktrackerWithConfig(e.prog, nfa.BacktrackConfig{MaxThreads: e.config.MaxBacktrackThreads})
		b.SetTrace(e.config.Trace)
		res.Slots, res.Matched, res.Err = b.Match(input)
		if errors.Is(res.Err, nfa.ErrThreadLimit) {
			atomic.AddUint64(&e.stats.ThreadLimitErrors, 1)
		}

	case UseThompson:
		atomic.AddUint64(&e.stats.ThompsonSearches, 1)
		t := nfa.NewThompson(e.prog)
		t.SetTrace(e.config.Trace)
		var span nfa.Span
		span, res.Matched = t.Match(input)
		if res.Matched {
			res.End = span.End
		}
		return res

	case UsePikeVM:
		atomic.AddUint64(&e.stats.PikeVMSearches, 1)
		p := nfa.NewPikeVM(e.prog)
		p.SetTrace(e.config.Trace)
		res.Slots, res.Matched = p.Match(input)

	case UseAhoCorasick:
		if e.literalPath == nil {
			return e.run(UsePikeVM, input)
		}
		atomic.AddUint64(&e.stats.AhoCorasickSearches, 1)
		res.Matched = e.literalPath.Find([]byte(input), 0) >= 0
		return res

	default:
		res.Err = &ConfigError{Field: "Strategy", Message: "unknown strategy " + strategy.String()}
		return res
	}

	if res.Matched && len(res.Slots) >= 2 && !e.config.Anchored {
		res.End = res.Slots[1]
	}
	return res
}
