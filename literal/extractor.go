package literal

import (
	"unicode/utf8"

	"github.com/coregx/revm/syntax"
)

// ExtractorConfig configures literal extraction limits.
type ExtractorConfig struct {
	// MaxLiterals limits how many alternatives a pattern may expand to.
	// Alternation and optional parts multiply; (a|b)(c|d)(e|f) is already
	// eight literals. Default: 64.
	MaxLiterals int

	// MaxLiteralLen limits the length of each literal in bytes.
	// Default: 64.
	MaxLiteralLen int
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
	}
}

// Extractor finds the literal language of a pattern.
//
// Example:
//
//	re := syntax.MustParse("colou?r|hue")
//	seq := literal.New(literal.DefaultConfig()).ExtractAlternatives(re)
//	// seq = ["colour", "color", "hue"]
type Extractor struct {
	config ExtractorConfig
}

// New creates an Extractor with config.
func New(config ExtractorConfig) *Extractor {
	return &Extractor{config: config}
}

// ExtractAlternatives returns every string re matches, in priority order,
// when that set is finite, non-empty, free of the empty string and within
// the configured limits. Otherwise it returns nil.
//
// Handled nodes:
//   - Lit: the character itself
//   - Cat: every combination of left and right
//   - Alt: left alternatives, then right
//   - Paren: the inner pattern; captures do not affect the language
//   - Quest: the inner alternatives plus the empty string
//
// Dot, Star and Plus make the language infinite or unbounded, so a pattern
// containing them yields nil. So does a literal U+FFFD: the engines decode
// invalid UTF-8 as that rune, which byte search would miss.
//
// The unanchored wrapper is stripped first.
func (e *Extractor) ExtractAlternatives(re *syntax.Regexp) *Seq {
	alts, ok := e.expand(syntax.Anchored(re))
	if !ok || len(alts) == 0 {
		return nil
	}
	lits := make([]Literal, 0, len(alts))
	for _, a := range alts {
		if len(a) == 0 {
			return nil
		}
		lits = append(lits, NewLiteral([]byte(a), true))
	}
	return NewSeq(lits...)
}

func (e *Extractor) expand(re *syntax.Regexp) ([]string, bool) {
	switch re.Op {
	case syntax.OpLit:
		if re.Rune == utf8.RuneError {
			return nil, false
		}
		return []string{string(re.Rune)}, true

	case syntax.OpParen:
		return e.expand(re.Left)

	case syntax.OpAlt:
		left, ok := e.expand(re.Left)
		if !ok {
			return nil, false
		}
		right, ok := e.expand(re.Right)
		if !ok || len(left)+len(right) > e.config.MaxLiterals {
			return nil, false
		}
		return append(left, right...), true

	case syntax.OpQuest:
		inner, ok := e.expand(re.Left)
		if !ok || len(inner)+1 > e.config.MaxLiterals {
			return nil, false
		}
		if re.Greedy {
			return append(inner, ""), true
		}
		return append([]string{""}, inner...), true

	case syntax.OpCat:
		left, ok := e.expand(re.Left)
		if !ok {
			return nil, false
		}
		right, ok := e.expand(re.Right)
		if !ok || len(left)*len(right) > e.config.MaxLiterals {
			return nil, false
		}
		out := make([]string, 0, len(left)*len(right))
		for _, l := range left {
			for _, r := range right {
				if len(l)+len(r) > e.config.MaxLiteralLen {
					return nil, false
				}
				out = append(out, l+r)
			}
		}
		return out, true
	}
	return nil, false
}
