// Package revm is a regular-expression engine built on a small bytecode
// virtual machine.
//
// A pattern is parsed, compiled to a program of six instructions (char,
// any, match, jmp, split, save) and run by one of four engines that must
// agree on every answer:
//   - a recursive backtracker, in a per-instruction and a loop form
//   - an explicit-stack backtracker with a bounded thread count
//   - a Thompson NFA simulation (linear time, no captures)
//   - a Pike VM (linear time, with captures)
//
// The syntax is deliberately small: literal characters, '.', alternation
// '|', grouping '(' ')' and '(?:' ')', and the repetitions '*', '+', '?'
// with their non-greedy forms '*?', '+?', '??'. There is no escaping.
//
// Basic usage:
//
//	re, err := revm.Compile("(a+)(b+)")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(re.MatchString("xaabbb"))            // true
//	fmt.Println(re.FindStringSubmatch("xaabbb"))     // [aabbb aa bbb]
//	fmt.Println(re.FindStringSubmatchIndex("xaabb")) // [1 5 1 3 3 5]
//
// Choosing an engine:
//
//	config := revm.DefaultConfig()
//	config.Strategy = meta.UseBacktrack
//	config.MaxBacktrackThreads = 10000
//	re, err := revm.CompileWithConfig("(a|b)*c", config)
//
// Search is unanchored and leftmost-first: the match starting earliest
// wins, and among those the one preferred by alternation order and
// greediness.
package revm

import (
	"github.com/coregx/revm/meta"
	"github.com/coregx/revm/nfa"
)

// Regex represents a compiled regular expression.
//
// A Regex is safe to use concurrently from multiple goroutines, except for
// ResetStats.
//
// Example:
//
//	re := revm.MustCompile("hello")
//	if re.MatchString("hello world") {
//	    println("matched!")
//	}
type Regex struct {
	engine  *meta.Engine
	pattern string
}

// Regexp is an alias for Regex, matching the name used by package regexp.
type Regexp = Regex

// Compile compiles a regular expression pattern with DefaultConfig.
//
// A malformed pattern yields a *syntax.ParseError describing the offending
// token and its offset.
//
// Example:
//
//	re, err := revm.Compile("colou?r")
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile compiles a regular expression pattern and panics if it fails.
//
// Example:
//
//	var greeting = revm.MustCompile("h(e|a)llo")
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("revm: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles a pattern with custom configuration.
//
// Example:
//
//	config := revm.DefaultConfig()
//	config.Strategy = meta.UseThompson
//	re, err := revm.CompileWithConfig("(a|b)*c", config)
func CompileWithConfig(pattern string, config meta.Config) (*Regex, error) {
	engine, err := meta.CompileWithConfig(pattern, config)
	if err != nil {
		return nil, err
	}

	return &Regex{
		engine:  engine,
		pattern: pattern,
	}, nil
}

// DefaultConfig returns the default configuration for compilation.
//
// Users can customize this and pass to CompileWithConfig.
func DefaultConfig() meta.Config {
	return meta.DefaultConfig()
}

// Match reports whether the byte slice b contains any match of the pattern.
// An engine error, such as the backtracker's thread limit, is reported as
// no match; use TryMatchString to see it.
func (r *Regex) Match(b []byte) bool {
	return r.MatchString(string(b))
}

// MatchString reports whether the string s contains any match of the
// pattern. An engine error is reported as no match.
//
// Example:
//
//	re := revm.MustCompile("a+b")
//	re.MatchString("xxaab") // true
func (r *Regex) MatchString(s string) bool {
	matched, err := r.TryMatchString(s)
	return err == nil && matched
}

// TryMatchString is like MatchString but returns the engine error, if any.
func (r *Regex) TryMatchString(s string) (bool, error) {
	return r.engine.IsMatch(s)
}

// FindStringIndex returns a two-element slice of integers defining the
// location of the leftmost match in s. The match is at s[loc[0]:loc[1]].
// Returns nil if no match is found.
//
// Example:
//
//	re := revm.MustCompile("b+")
//	re.FindStringIndex("abbc") // [1 3]
func (r *Regex) FindStringIndex(s string) []int {
	slots := r.FindStringSubmatchIndex(s)
	if slots == nil {
		return nil
	}
	return slots[:2:2]
}

// FindIndex is like FindStringIndex but for a byte slice.
func (r *Regex) FindIndex(b []byte) []int {
	return r.FindStringIndex(string(b))
}

// FindString returns the text of the leftmost match in s, or "" if there is
// no match. Use FindStringIndex to tell an empty match from none.
func (r *Regex) FindString(s string) string {
	loc := r.FindStringIndex(s)
	if loc == nil {
		return ""
	}
	return s[loc[0]:loc[1]]
}

// FindStringSubmatchIndex returns the index pairs of the leftmost match and
// its capture groups: result[2*i:2*i+2] are the offsets of group i, with -1
// for groups that did not participate. Returns nil if no match is found or
// the engine failed; use TryFindStringSubmatchIndex to see the error.
//
// Example:
//
//	re := revm.MustCompile("(a+)(b+)")
//	re.FindStringSubmatchIndex("xaabbb") // [1 6 1 3 3 6]
func (r *Regex) FindStringSubmatchIndex(s string) []int {
	slots, err := r.TryFindStringSubmatchIndex(s)
	if err != nil {
		return nil
	}
	return slots
}

// FindSubmatchIndex is like FindStringSubmatchIndex but for a byte slice.
func (r *Regex) FindSubmatchIndex(b []byte) []int {
	return r.FindStringSubmatchIndex(string(b))
}

// TryFindStringSubmatchIndex is like FindStringSubmatchIndex but returns
// the engine error, if any.
//
// An anchored Regex has no whole-match group in its program; group 0 is
// filled in from the Thompson simulation, which reports where the match
// ends.
func (r *Regex) TryFindStringSubmatchIndex(s string) ([]int, error) {
	slots, err := r.engine.FindSubmatchIndex(s)
	if err != nil || slots == nil {
		return nil, err
	}

	want := 2 * (r.engine.NumSubexp() + 1)
	if len(slots) < want {
		padded := make([]int, want)
		for i := range padded {
			padded[i] = nfa.Unset
		}
		copy(padded, slots)
		slots = padded
	}
	if r.engine.Config().Anchored {
		res := r.engine.Run(meta.UseThompson, s)
		slots[0], slots[1] = 0, res.End
	}
	return slots, nil
}

// FindStringSubmatch returns the text of the leftmost match and of its
// capture groups. Groups that did not participate are "". Returns nil if
// no match is found.
//
// Example:
//
//	re := revm.MustCompile("(a+)(b+)")
//	re.FindStringSubmatch("xaabbb") // ["aabbb" "aa" "bbb"]
func (r *Regex) FindStringSubmatch(s string) []string {
	slots := r.FindStringSubmatchIndex(s)
	if slots == nil {
		return nil
	}
	groups := make([]string, len(slots)/2)
	for i := range groups {
		start, end := slots[2*i], slots[2*i+1]
		if start >= 0 && end >= start {
			groups[i] = s[start:end]
		}
	}
	return groups
}

// NumSubexp returns the number of capturing groups in the pattern. Group 0,
// the whole match, is not counted.
func (r *Regex) NumSubexp() int {
	return r.engine.NumSubexp()
}

// String returns the source text used to compile the regular expression.
func (r *Regex) String() string {
	return r.pattern
}

// Program returns the compiled bytecode program.
func (r *Regex) Program() *nfa.Prog {
	return r.engine.Program()
}

// CrossCheck runs every engine on s and returns a *meta.MismatchError if
// any of them disagrees with the Pike VM.
func (r *Regex) CrossCheck(s string) error {
	return r.engine.CrossCheck(s)
}

// Strategy returns the engine used for searches.
func (r *Regex) Strategy() meta.Strategy {
	return r.engine.Strategy()
}

// Stats returns the per-engine search counters.
func (r *Regex) Stats() meta.Stats {
	return r.engine.Stats()
}

// ResetStats zeroes the search counters.
func (r *Regex) ResetStats() {
	r.engine.ResetStats()
}
