// Package prefilter answers cheap questions about an input before any
// engine runs.
//
// A pattern yields at most two prefilters:
//   - a complete one, when the pattern is an alternation of literal strings:
//     finding any of them decides the match (Aho-Corasick)
//   - an incomplete one, when every match must contain a literal substring:
//     its absence rules a match out (Memmem)
//
// Example usage:
//
//	re := syntax.MustParse("(a|b)*needle+")
//	lit := literal.New(literal.DefaultConfig()).ExtractRequired(re)
//	pf := prefilter.NewMemmem(lit) // lit == "needl"
//	if pf.Find([]byte("haystack"), 0) < 0 {
//	    // no match possible
//	}
package prefilter

// Prefilter finds candidate positions in a haystack.
type Prefilter interface {
	// Find returns the index of the first candidate at or after start, or
	// -1 if there is none. A candidate is where one of the prefilter's
	// literals occurs.
	Find(haystack []byte, start int) int

	// IsComplete reports whether a candidate is itself a match, so the
	// engines need not run.
	IsComplete() bool
}
