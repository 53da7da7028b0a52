package syntax

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxNesting bounds how deeply groups may nest. Parsing and compiling are
// recursive over the tree, so the limit keeps pathological patterns from
// exhausting the stack before any matching starts.
const MaxNesting = 1000

// ErrNestingDepth reports a pattern nested deeper than MaxNesting.
var ErrNestingDepth = errors.New("groups nested too deeply")

// ParseError describes a malformed pattern.
type ParseError struct {
	// Pattern is the full pattern text.
	Pattern string

	// Offset is the byte offset of the offending token.
	Offset int

	// Token is the unexpected lexeme, or "" at end of pattern.
	Token string

	// Expected lists what the parser would have accepted instead.
	Expected []string

	// Err is set for structural failures that are not a single bad token.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("syntax: ")
	switch {
	case e.Err != nil:
		b.WriteString(e.Err.Error())
	case e.Token == "":
		b.WriteString("unexpected end of pattern")
	default:
		b.WriteString("unexpected ")
		b.WriteString(strconv.Quote(e.Token))
	}
	fmt.Fprintf(&b, " at offset %d in %q", e.Offset, e.Pattern)
	if len(e.Expected) > 0 {
		b.WriteString(" (expected ")
		b.WriteString(strings.Join(e.Expected, ", "))
		b.WriteByte(')')
	}
	return b.String()
}

// Unwrap returns the underlying structural error, if any.
func (e *ParseError) Unwrap() error {
	return e.Err
}

var (
	expectSingle = []string{`"("`, `"."`, "character"}
	expectClose  = []string{`")"`, `"|"`}
	expectColon  = []string{`":"`}
	expectEnd    = []string{"end of pattern", `"|"`}
)

// Parse parses pattern into a tree. Capturing groups are left Unnumbered;
// run NumberGroups before compiling.
func Parse(pattern string) (*Regexp, error) {
	p := &parser{src: pattern, lex: NewLexer(pattern)}
	p.advance()

	re, err := p.alt()
	if err != nil {
		return nil, err
	}
	if p.tok.Kind != TokenEOF {
		return nil, p.unexpected(expectEnd)
	}
	return re, nil
}

// MustParse is like Parse but panics if the pattern cannot be parsed.
func MustParse(pattern string) *Regexp {
	re, err := Parse(pattern)
	if err != nil {
		panic("syntax: Parse(" + strconv.Quote(pattern) + "): " + err.Error())
	}
	return re
}

// ParseUnanchored parses pattern, numbers its groups and wraps it for
// search anywhere in the input. See Unanchored.
func ParseUnanchored(pattern string) (*Regexp, error) {
	re, err := Parse(pattern)
	if err != nil {
		return nil, err
	}
	NumberGroups(re)
	return Unanchored(re), nil
}

type parser struct {
	src   string
	lex   *Lexer
	tok   Token
	depth int
}

func (p *parser) advance() {
	p.tok = p.lex.Next()
}

func (p *parser) unexpected(expected []string) *ParseError {
	return &ParseError{
		Pattern:  p.src,
		Offset:   p.tok.Start,
		Token:    p.tok.String(),
		Expected: expected,
	}
}

// alt = concat { "|" concat }
func (p *parser) alt() (*Regexp, error) {
	left, err := p.concat()
	if err != nil {
		return nil, err
	}
	for p.tok.Kind == TokenAlt {
		p.advance()
		right, err := p.concat()
		if err != nil {
			return nil, err
		}
		left = Alt(left, right)
	}
	return left, nil
}

// concat = repeat { repeat }
func (p *parser) concat() (*Regexp, error) {
	left, err := p.repeat()
	if err != nil {
		return nil, err
	}
	for p.startsSingle() {
		right, err := p.repeat()
		if err != nil {
			return nil, err
		}
		left = Cat(left, right)
	}
	return left, nil
}

func (p *parser) startsSingle() bool {
	switch p.tok.Kind {
	case TokenParenL, TokenDot, TokenChar:
		return true
	}
	return false
}

// repeat = single [ ( "*" | "+" | "?" ) [ "?" ] ]
func (p *parser) repeat() (*Regexp, error) {
	re, err := p.single()
	if err != nil {
		return nil, err
	}

	var wrap func(bool, *Regexp) *Regexp
	switch p.tok.Kind {
	case TokenStar:
		wrap = Star
	case TokenPlus:
		wrap = Plus
	case TokenQuest:
		wrap = Quest
	default:
		return re, nil
	}
	p.advance()

	greedy := true
	if p.tok.Kind == TokenQuest {
		greedy = false
		p.advance()
	}
	return wrap(greedy, re), nil
}

// single = "(" alt ")" | "(" "?" ":" alt ")" | "." | char
func (p *parser) single() (*Regexp, error) {
	switch p.tok.Kind {
	case TokenChar:
		re := Lit(p.tok.Rune)
		p.advance()
		return re, nil
	case TokenDot:
		p.advance()
		return Dot(), nil
	case TokenParenL:
		return p.group()
	default:
		return nil, p.unexpected(expectSingle)
	}
}

func (p *parser) group() (*Regexp, error) {
	open := p.tok
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > MaxNesting {
		return nil, &ParseError{Pattern: p.src, Offset: open.Start, Token: open.String(), Err: ErrNestingDepth}
	}
	p.advance()

	capturing := true
	if p.tok.Kind == TokenQuest {
		p.advance()
		if p.tok.Kind != TokenColon {
			return nil, p.unexpected(expectColon)
		}
		p.advance()
		capturing = false
	}

	inner, err := p.alt()
	if err != nil {
		return nil, err
	}
	if p.tok.Kind != TokenParenR {
		return nil, p.unexpected(expectClose)
	}
	p.advance()

	if !capturing {
		return inner, nil
	}
	return Paren(Unnumbered, inner), nil
}
