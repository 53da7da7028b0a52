package syntax

import (
	"fmt"
	"unicode/utf8"
)

// TokenKind identifies a lexical token.
type TokenKind uint8

const (
	TokenEOF TokenKind = iota
	TokenAlt
	TokenStar
	TokenPlus
	TokenQuest
	TokenParenL
	TokenParenR
	TokenColon
	TokenDot
	TokenChar
)

// Token is one lexeme of a pattern together with its byte span.
type Token struct {
	Kind  TokenKind
	Rune  rune // the character for TokenChar
	Start int
	End   int
}

// String returns the lexeme as it appeared in the pattern.
// The end-of-input token renders as the empty string.
func (t Token) String() string {
	switch t.Kind {
	case TokenEOF:
		return ""
	case TokenAlt:
		return "|"
	case TokenStar:
		return "*"
	case TokenPlus:
		return "+"
	case TokenQuest:
		return "?"
	case TokenParenL:
		return "("
	case TokenParenR:
		return ")"
	case TokenColon:
		return ":"
	case TokenDot:
		return "."
	case TokenChar:
		return string(t.Rune)
	default:
		return fmt.Sprintf("Token(%d)", t.Kind)
	}
}

// Lexer splits a pattern into tokens. Every character is a token of its
// own; there is no escaping.
type Lexer struct {
	src string
	pos int
}

// NewLexer returns a lexer over src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src}
}

// Next returns the next token. Once the input is exhausted it keeps
// returning a TokenEOF positioned at len(src).
func (l *Lexer) Next() Token {
	if l.pos >= len(l.src) {
		return Token{Kind: TokenEOF, Start: len(l.src), End: len(l.src)}
	}
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	tok := Token{Rune: r, Start: l.pos, End: l.pos + size}
	l.pos += size

	switch r {
	case '|':
		tok.Kind = TokenAlt
	case '*':
		tok.Kind = TokenStar
	case '+':
		tok.Kind = TokenPlus
	case '?':
		tok.Kind = TokenQuest
	case '(':
		tok.Kind = TokenParenL
	case ')':
		tok.Kind = TokenParenR
	case ':':
		tok.Kind = TokenColon
	case '.':
		tok.Kind = TokenDot
	default:
		tok.Kind = TokenChar
	}
	return tok
}

// Tokens returns every token of src, excluding the final TokenEOF.
func Tokens(src string) []Token {
	l := NewLexer(src)
	var toks []Token
	for {
		t := l.Next()
		if t.Kind == TokenEOF {
			return toks
		}
		toks = append(toks, t)
	}
}
