// Package literal extracts literal strings from a parsed pattern.
//
// A pattern whose language is a small finite set of literal strings, such
// as foo|bar or colou?r, can be decided by multi-substring search instead of
// running the NFA. The meta engine uses the extracted Seq to build an
// Aho-Corasick automaton for that purpose.
//
// Key concepts:
//   - A Literal is a concrete byte sequence that may appear in matches
//   - A Seq is a set of alternative literals in pattern priority order
package literal

import (
	"bytes"
	"sort"
)

// Literal is a byte sequence extracted from a pattern. Complete reports
// whether matching the literal is a full match of the pattern (true) or only
// a necessary part of one (false).
type Literal struct {
	Bytes    []byte
	Complete bool
}

// NewLiteral creates a Literal.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{Bytes: b, Complete: complete}
}

// Len returns the length of the literal in bytes.
func (l Literal) Len() int {
	return len(l.Bytes)
}

// String renders the literal for debugging as "literal{bytes, complete=b}".
func (l Literal) String() string {
	if l.Complete {
		return "literal{" + string(l.Bytes) + ", complete=true}"
	}
	return "literal{" + string(l.Bytes) + ", complete=false}"
}

// Seq is an ordered set of alternative literals.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("foo"), true),
//	    literal.NewLiteral([]byte("bar"), true),
//	)
//	fmt.Println(seq.Len()) // Output: 2
type Seq struct {
	literals []Literal
}

// NewSeq creates a sequence from lits.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{literals: lits}
}

// Len returns the number of literals. A nil Seq has none.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the literal at index i. Panics if i is out of range.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// IsEmpty reports whether the sequence has no literals.
func (s *Seq) IsEmpty() bool {
	return s == nil || len(s.literals) == 0
}

// AllComplete reports whether every literal is a complete match.
func (s *Seq) AllComplete() bool {
	if s.IsEmpty() {
		return false
	}
	for _, lit := range s.literals {
		if !lit.Complete {
			return false
		}
	}
	return true
}

// Bytes returns the literal byte slices in order. The slices are shared
// with the sequence.
func (s *Seq) Bytes() [][]byte {
	out := make([][]byte, s.Len())
	for i := range out {
		out[i] = s.literals[i].Bytes
	}
	return out
}

// Clone returns a deep copy of the sequence.
func (s *Seq) Clone() *Seq {
	if s == nil {
		return nil
	}
	cloned := make([]Literal, len(s.literals))
	for i, lit := range s.literals {
		cloned[i] = Literal{Bytes: bytes.Clone(lit.Bytes), Complete: lit.Complete}
	}
	return &Seq{literals: cloned}
}

// Minimize drops duplicates and every literal that contains a shorter kept
// literal as a substring. The result decides the same substring-search
// question with fewer patterns: any input containing "foobar" also
// contains "foo". Order of the kept literals is by length, then original
// position.
func (s *Seq) Minimize() {
	if s.IsEmpty() {
		return
	}
	sort.SliceStable(s.literals, func(i, j int) bool {
		return len(s.literals[i].Bytes) < len(s.literals[j].Bytes)
	})

	kept := make([]Literal, 0, len(s.literals))
	for _, cur := range s.literals {
		redundant := false
		for _, k := range kept {
			if bytes.Contains(cur.Bytes, k.Bytes) {
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, cur)
		}
	}
	s.literals = kept
}

// LongestCommonPrefix returns the longest prefix shared by all literals,
// or an empty slice if there is none.
func (s *Seq) LongestCommonPrefix() []byte {
	if s.IsEmpty() {
		return []byte{}
	}
	prefix := s.literals[0].Bytes
	for _, lit := range s.literals[1:] {
		prefix = commonPrefix(prefix, lit.Bytes)
		if len(prefix) == 0 {
			return []byte{}
		}
	}
	return bytes.Clone(prefix)
}

// commonPrefix returns the longest common prefix of a and b.
func commonPrefix(a, b []byte) []byte {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}
