// Package meta compiles a pattern once and runs it on the engine chosen by
// configuration.
//
// The meta engine coordinates:
//   - the four nfa engines (recursive, explicit-stack backtracking,
//     Thompson, Pike VM)
//   - an Aho-Corasick automaton for patterns that are an alternation of
//     literal strings
//   - a substring prefilter for patterns whose matches all contain a
//     literal
//
// It also runs every engine on one input and reports whether they agree,
// which is how the engines are checked against each other.
package meta

import (
	"io"
	"strconv"
)

// Config controls compilation and engine selection.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.Strategy = meta.UseBacktrack
//	config.MaxBacktrackThreads = 10000
//	engine, err := meta.CompileWithConfig("(a|b)*c", config)
type Config struct {
	// Strategy selects the engine for IsMatch and FindSubmatchIndex.
	// UseAhoCorasick cannot be configured; it is chosen automatically
	// when the literal fast path applies.
	// Default: UsePikeVM
	Strategy Strategy

	// Anchored compiles the pattern without the unanchored wrapper, so
	// matches must start at offset 0 and there is no group 0.
	// Default: false
	Anchored bool

	// MaxBacktrackThreads bounds the deferred threads of the explicit-stack
	// backtracker.
	// Default: 1000
	MaxBacktrackThreads int

	// EnableLiteralFastPath answers IsMatch with an Aho-Corasick automaton
	// when the pattern is an alternation of at least MinLiterals literal
	// strings. Ignored for anchored patterns.
	// Default: true
	EnableLiteralFastPath bool

	// MinLiterals is the smallest alternation the fast path is built for.
	// Default: 2
	MinLiterals int

	// EnablePrefilter rules out inputs that lack a literal every match
	// contains, before searching. Not used when the literal fast path is.
	// Default: true
	EnablePrefilter bool

	// VerifyProgram validates the compiled program before use.
	// Default: true
	VerifyProgram bool

	// Trace, when non-nil, receives a step trace from every search.
	// Default: nil
	Trace io.Writer
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Strategy:              UsePikeVM,
		MaxBacktrackThreads:   1000,
		EnableLiteralFastPath: true,
		MinLiterals:           2,
		EnablePrefilter:       true,
		VerifyProgram:         true,
	}
}

// Validate checks if the configuration is valid.
//
// Valid ranges:
//   - Strategy: one of the nfa engine strategies
//   - MaxBacktrackThreads: 1 to 10,000,000
//   - MinLiterals: 1 to 64
func (c Config) Validate() error {
	switch c.Strategy {
	case UseRecursive, UseRecursiveLoop, UseBacktrack, UseThompson, UsePikeVM:
	default:
		return &ConfigError{
			Field:   "Strategy",
			Message: "must be an nfa engine strategy, got " + c.Strategy.String(),
		}
	}
	if c.MaxBacktrackThreads < 1 || c.MaxBacktrackThreads > 10_000_000 {
		return &ConfigError{
			Field:   "MaxBacktrackThreads",
			Message: "must be between 1 and 10,000,000, got " + strconv.Itoa(c.MaxBacktrackThreads),
		}
	}
	if c.EnableLiteralFastPath && (c.MinLiterals < 1 || c.MinLiterals > 64) {
		return &ConfigError{
			Field:   "MinLiterals",
			Message: "must be between 1 and 64",
		}
	}
	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "revm: invalid config: " + e.Field + ": " + e.Message
}
