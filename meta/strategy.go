package meta

import (
	"fmt"
	"strings"
)

// Strategy identifies an execution engine.
type Strategy int

const (
	// UseRecursive runs the recursive backtracker that recurses on every
	// instruction. Exponential worst case; refused for patterns with an
	// empty-width loop.
	UseRecursive Strategy = iota

	// UseRecursiveLoop runs the recursive backtracker that recurses only at
	// Split and Save.
	UseRecursiveLoop

	// UseBacktrack runs the explicit-stack backtracker, bounded by
	// Config.MaxBacktrackThreads.
	UseBacktrack

	// UseThompson runs the Thompson NFA simulation. Linear time, no
	// captures.
	UseThompson

	// UsePikeVM runs the Pike VM. Linear time with captures.
	UsePikeVM

	// UseAhoCorasick answers IsMatch by multi-substring search. Selected
	// automatically for alternations of literal strings.
	UseAhoCorasick
)

// strategyNames are the canonical names, also accepted by ParseStrategy.
var strategyNames = [...]string{
	UseRecursive:     "recursive",
	UseRecursiveLoop: "loop",
	UseBacktrack:     "backtrack",
	UseThompson:      "thompson",
	UsePikeVM:        "pikevm",
	UseAhoCorasick:   "ahocorasick",
}

// String returns the strategy name.
func (s Strategy) String() string {
	if s >= 0 && int(s) < len(strategyNames) {
		return strategyNames[s]
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// HasCaptures reports whether the strategy reports submatch offsets.
func (s Strategy) HasCaptures() bool {
	switch s {
	case UseRecursive, UseRecursiveLoop, UseBacktrack, UsePikeVM:
		return true
	}
	return false
}

// EngineStrategies lists the nfa engine strategies in the order RunAll
// reports them.
func EngineStrategies() []Strategy {
	return []Strategy{UseRecursive, UseRecursiveLoop, UseBacktrack, UseThompson, UsePikeVM}
}

// ParseStrategy returns the strategy named name, case-insensitively.
// "pike" is accepted for UsePikeVM.
func ParseStrategy(name string) (Strategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "pike" {
		return UsePikeVM, nil
	}
	for s, n := range strategyNames {
		if n == name {
			return Strategy(s), nil
		}
	}
	return 0, fmt.Errorf("unknown engine %q (want one of %s)", name, strings.Join(strategyNames[:], ", "))
}
