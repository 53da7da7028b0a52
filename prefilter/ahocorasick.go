package prefilter

import (
	"github.com/coregx/ahocorasick"

	"github.com/coregx/revm/literal"
)

// AhoCorasick searches for every literal of a sequence at once.
type AhoCorasick struct {
	auto     *ahocorasick.Automaton
	complete bool
}

// NewAhoCorasick builds an automaton over seq. The sequence is minimized
// first; seq itself is not modified. The prefilter is complete when every
// literal in seq is.
func NewAhoCorasick(seq *literal.Seq) (*AhoCorasick, error) {
	lits := seq.Clone()
	lits.Minimize()

	builder := ahocorasick.NewBuilder()
	for _, b := range lits.Bytes() {
		builder.AddPattern(b)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &AhoCorasick{auto: auto, complete: seq.AllComplete()}, nil
}

// Find implements Prefilter.
func (p *AhoCorasick) Find(haystack []byte, start int) int {
	if start > len(haystack) {
		return -1
	}
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

// IsComplete implements Prefilter.
func (p *AhoCorasick) IsComplete() bool {
	return p.complete
}
