package meta

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/coregx/revm/literal"
	"github.com/coregx/revm/nfa"
	"github.com/coregx/revm/prefilter"
	"github.com/coregx/revm/syntax"
)

// ErrEmptyLoop is returned when a recursive strategy is requested for a
// pattern with a repetition whose body can match the empty string, such as
// (a*)*. The recursive matcher would re-enter such a loop forever.
var ErrEmptyLoop = errors.New("pattern has an empty-width loop; recursive matching would not terminate")

// Engine is a compiled pattern together with the engines that run it.
//
// The program and automaton are immutable after compilation and every
// search allocates its own state, so an Engine is safe for concurrent use.
// Config.Trace is shared by all searches.
//
// Example:
//
//	engine, err := meta.Compile("(a+)(b+)")
//	if err != nil {
//	    return err
//	}
//	slots, err := engine.FindSubmatchIndex("xaabbb")
//	// slots = [1 6 1 3 3 6]
type Engine struct {
	// stats MUST be first for 8-byte alignment of its atomics on 32-bit
	// platforms.
	stats Stats

	pattern   string
	ast       *syntax.Regexp
	prog      *nfa.Prog
	numSubexp int
	emptyLoop bool

	literals    *literal.Seq
	literalPath *prefilter.AhoCorasick
	required    *prefilter.Memmem

	config Config
}

// Stats counts searches per engine.
type Stats struct {
	// RecursiveSearches counts recursive (per-instruction) searches
	RecursiveSearches uint64

	// LoopSearches counts recursive (loop form) searches
	LoopSearches uint64

	// BacktrackSearches counts explicit-stack backtracker searches
	BacktrackSearches uint64

	// ThompsonSearches counts Thompson simulation searches
	ThompsonSearches uint64

	// PikeVMSearches counts Pike VM searches
	PikeVMSearches uint64

	// AhoCorasickSearches counts literal fast path searches
	AhoCorasickSearches uint64

	// ThreadLimitErrors counts backtracker searches aborted at the thread
	// limit
	ThreadLimitErrors uint64

	// PrefilterRejects counts inputs ruled out by the required literal
	// before any engine ran
	PrefilterRejects uint64
}

// Compile compiles pattern with DefaultConfig.
func Compile(pattern string) (*Engine, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// CompileWithConfig parses, numbers, optionally wraps and compiles
// pattern. A malformed pattern yields the *syntax.ParseError unchanged.
//
// Steps:
//  1. Parse the pattern and number its groups
//  2. Wrap it for unanchored search unless config.Anchored
//  3. Compile to a program and validate it if config.VerifyProgram
//  4. Build an Aho-Corasick automaton if the literal fast path applies
//  5. Otherwise find a literal every match contains, for the prefilter
func CompileWithConfig(pattern string, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	re, err := syntax.Parse(pattern)
	if err != nil {
		return nil, err
	}
	syntax.NumberGroups(re)
	return CompileRegexp(pattern, re, config)
}

// CompileRegexp compiles an already parsed tree whose groups are numbered.
// pattern is kept only for display.
func CompileRegexp(pattern string, re *syntax.Regexp, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		pattern:   pattern,
		numSubexp: max(re.MaxCap(), 0),
		emptyLoop: re.HasEmptyLoop(),
		config:    config,
	}
	if e.emptyLoop && (config.Strategy == UseRecursive || config.Strategy == UseRecursiveLoop) {
		return nil, fmt.Errorf("revm: %s engine for %q: %w", config.Strategy, pattern, ErrEmptyLoop)
	}

	e.ast = re
	if !config.Anchored {
		e.ast = syntax.Unanchored(re)
	}
	e.prog = nfa.Compile(e.ast)
	if config.VerifyProgram {
		if err := e.prog.Validate(); err != nil {
			return nil, fmt.Errorf("revm: compiling %q: %w", pattern, err)
		}
	}

	if config.EnableLiteralFastPath && !config.Anchored {
		e.buildLiteralFastPath(re)
	}
	if config.EnablePrefilter && e.literalPath == nil {
		if lit := literal.New(literal.DefaultConfig()).ExtractRequired(re); lit != nil {
			e.required = prefilter.NewMemmem(lit)
		}
	}
	return e, nil
}

// buildLiteralFastPath extracts the literal language of re and, when it has
// at least MinLiterals alternatives, builds an automaton over it. A failed
// build leaves the fast path disabled.
func (e *Engine) buildLiteralFastPath(re *syntax.Regexp) {
	seq := literal.New(literal.DefaultConfig()).ExtractAlternatives(re)
	if seq.Len() < e.config.MinLiterals {
		return
	}
	pf, err := prefilter.NewAhoCorasick(seq)
	if err != nil {
		return
	}
	e.literals = seq
	e.literalPath = pf
}

// Strategy returns the configured strategy.
func (e *Engine) Strategy() Strategy {
	return e.config.Strategy
}

// Config returns the configuration the engine was compiled with.
func (e *Engine) Config() Config {
	return e.config
}

// Program returns the compiled program.
func (e *Engine) Program() *nfa.Prog {
	return e.prog
}

// AST returns the compiled tree, including the unanchored wrapper unless
// the engine is anchored.
func (e *Engine) AST() *syntax.Regexp {
	return e.ast
}

// NumSubexp returns the number of capturing groups in the pattern.
func (e *Engine) NumSubexp() int {
	return e.numSubexp
}

// Literals returns the literal alternatives behind the fast path, or nil
// when the fast path is not in use.
func (e *Engine) Literals() *literal.Seq {
	return e.literals
}

// HasLiteralFastPath reports whether IsMatch is answered by Aho-Corasick.
func (e *Engine) HasLiteralFastPath() bool {
	return e.literalPath != nil
}

// RequiredLiteral returns the literal every match contains, used to rule
// out inputs before searching, or nil.
func (e *Engine) RequiredLiteral() []byte {
	if e.required == nil {
		return nil
	}
	return e.required.Needle()
}

// HasEmptyLoop reports whether the pattern contains an empty-width loop,
// which the recursive strategies refuse.
func (e *Engine) HasEmptyLoop() bool {
	return e.emptyLoop
}

// String returns the source pattern.
func (e *Engine) String() string {
	return e.pattern
}

// Stats returns a snapshot of the search counters.
func (e *Engine) Stats() Stats {
	return Stats{
		RecursiveSearches:   atomic.LoadUint64(&e.stats.RecursiveSearches),
		LoopSearches:        atomic.LoadUint64(&e.stats.LoopSearches),
		BacktrackSearches:   atomic.LoadUint64(&e.stats.BacktrackSearches),
		ThompsonSearches:    atomic.LoadUint64(&e.stats.ThompsonSearches),
		PikeVMSearches:      atomic.LoadUint64(&e.stats.PikeVMSearches),
		AhoCorasickSearches: atomic.LoadUint64(&e.stats.AhoCorasickSearches),
		ThreadLimitErrors:   atomic.LoadUint64(&e.stats.ThreadLimitErrors),
		PrefilterRejects:    atomic.LoadUint64(&e.stats.PrefilterRejects),
	}
}

// ResetStats zeroes the search counters.
func (e *Engine) ResetStats() {
	atomic.StoreUint64(&e.stats.RecursiveSearches, 0)
	atomic.StoreUint64(&e.stats.LoopSearches, 0)
	atomic.StoreUint64(&e.stats.BacktrackSearches, 0)
	atomic.StoreUint64(&e.stats.ThompsonSearches, 0)
	atomic.StoreUint64(&e.stats.PikeVMSearches, 0)
	atomic.StoreUint64(&e.stats.AhoCorasickSearches, 0)
	atomic.StoreUint64(&e.stats.ThreadLimitErrors, 0)
	atomic.StoreUint64(&e.stats.PrefilterRejects, 0)
}
