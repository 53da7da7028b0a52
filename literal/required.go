package literal

import (
	"strings"
	"unicode/utf8"

	"github.com/coregx/revm/syntax"
)

// ExtractRequired returns the longest literal string that every match of re
// contains, or nil if there is none. Runs longer than MaxLiteralLen are
// truncated, which keeps them required.
//
// Only concatenation is followed: alternation and optional or repeated
// parts end a run. The body of a Plus occurs at least once, so its own runs
// count, but they are not joined with what surrounds it.
//
// Example:
//
//	re := syntax.MustParse("(a|b)*needle+")
//	lit := literal.New(literal.DefaultConfig()).ExtractRequired(re)
//	// lit = "needl"
func (e *Extractor) ExtractRequired(re *syntax.Regexp) []byte {
	w := &runWalker{}
	w.walk(syntax.Anchored(re))
	w.flush()

	if w.best == "" {
		return nil
	}
	best := w.best
	if len(best) > e.config.MaxLiteralLen {
		best = truncateRunes(best, e.config.MaxLiteralLen)
	}
	return []byte(best)
}

type runWalker struct {
	cur  strings.Builder
	best string
}

func (w *runWalker) walk(re *syntax.Regexp) {
	switch re.Op {
	case syntax.OpLit:
		if re.Rune == utf8.RuneError {
			w.flush()
			return
		}
		w.cur.WriteRune(re.Rune)
	case syntax.OpCat:
		w.walk(re.Left)
		w.walk(re.Right)
	case syntax.OpParen:
		w.walk(re.Left)
	case syntax.OpPlus:
		w.flush()
		w.walk(re.Left)
		w.flush()
	default:
		w.flush()
	}
}

func (w *runWalker) flush() {
	if w.cur.Len() > len(w.best) {
		w.best = w.cur.String()
	}
	w.cur.Reset()
}

// truncateRunes cuts s to at most n bytes without splitting a rune.
func truncateRunes(s string, n int) string {
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
