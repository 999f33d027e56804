// Package lexer implements the hand-written scanner for the source
// language, in the style of original_source/lang/src/lex.c: a single
// cursor over the source bytes, a one-token lookahead slot, and line
// tracking for diagnostics.
package lexer

import (
	"strings"

	"github.com/smokesugar/minic/internal/token"
)

// Lexer produces Tokens lazily from source text with one token of
// lookahead, matching the contract spec.md §2 step 1 assumes of the
// token stream.
type Lexer struct {
	src  string
	pos  int
	line int
	col  int

	hasNext bool
	next    token.Token
}

// New creates a Lexer positioned at the start of src.
func New(src string) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

func (l *Lexer) peekByte() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekByteAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *Lexer) advance() byte {
	c := l.peekByte()
	l.pos++
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return c
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdent(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func (l *Lexer) eatWhitespaceAndComments() {
	for {
		for isSpace(l.peekByte()) {
			l.advance()
		}
		if l.peekByte() == '/' && l.peekByteAt(1) == '/' {
			for l.peekByte() != '\n' && l.peekByte() != 0 {
				l.advance()
			}
			continue
		}
		break
	}
}

// scan is the teacher's `lex` function: produce the single next token
// from the cursor, ignoring the lookahead slot entirely.
func (l *Lexer) scan() token.Token {
	l.eatWhitespaceAndComments()

	line, col := l.line, l.col
	start := l.pos

	if l.pos >= len(l.src) {
		return token.Token{Kind: token.EOF, Line: line, Col: col}
	}

	c := l.peekByte()

	switch {
	case isDigit(c):
		for isDigit(l.peekByte()) {
			l.advance()
		}
		return token.Token{Kind: token.Int, Text: l.src[start:l.pos], Line: line, Col: col}

	case isIdentStart(c):
		for isIdent(l.peekByte()) {
			l.advance()
		}
		text := l.src[start:l.pos]
		return token.Token{Kind: token.Lookup(text), Text: text, Line: line, Col: col}

	default:
		return l.scanPunct(line, col)
	}
}

func (l *Lexer) scanPunct(line, col int) token.Token {
	start := l.pos
	c := l.advance()

	two := func(next byte, twoKind, oneKind token.Kind) token.Token {
		if l.peekByte() == next {
			l.advance()
			return token.Token{Kind: twoKind, Text: l.src[start:l.pos], Line: line, Col: col}
		}
		return token.Token{Kind: oneKind, Text: l.src[start:l.pos], Line: line, Col: col}
	}

	switch c {
	case ':':
		return token.Token{Kind: token.Colon, Text: ":", Line: line, Col: col}
	case ';':
		return token.Token{Kind: token.Semicolon, Text: ";", Line: line, Col: col}
	case ',':
		return token.Token{Kind: token.Comma, Text: ",", Line: line, Col: col}
	case '(':
		return token.Token{Kind: token.LParen, Text: "(", Line: line, Col: col}
	case ')':
		return token.Token{Kind: token.RParen, Text: ")", Line: line, Col: col}
	case '{':
		return token.Token{Kind: token.LBrace, Text: "{", Line: line, Col: col}
	case '}':
		return token.Token{Kind: token.RBrace, Text: "}", Line: line, Col: col}
	case '+':
		return token.Token{Kind: token.Plus, Text: "+", Line: line, Col: col}
	case '-':
		return token.Token{Kind: token.Minus, Text: "-", Line: line, Col: col}
	case '*':
		return token.Token{Kind: token.Star, Text: "*", Line: line, Col: col}
	case '/':
		return token.Token{Kind: token.Slash, Text: "/", Line: line, Col: col}
	case '<':
		return two('=', token.LessEqual, token.Less)
	case '>':
		return two('=', token.GreaterEqual, token.Greater)
	case '=':
		return two('=', token.Equal, token.Assign)
	case '!':
		if l.peekByte() == '=' {
			l.advance()
			return token.Token{Kind: token.NotEqual, Text: "!=", Line: line, Col: col}
		}
		return token.Token{Kind: token.Illegal, Text: "!", Line: line, Col: col}
	default:
		return token.Token{Kind: token.Illegal, Text: string(c), Line: line, Col: col}
	}
}

// Next consumes and returns the next token, draining the lookahead slot
// first if Peek was called.
func (l *Lexer) Next() token.Token {
	if l.hasNext {
		t := l.next
		l.hasNext = false
		return t
	}
	return l.scan()
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() token.Token {
	if !l.hasNext {
		l.next = l.scan()
		l.hasNext = true
	}
	return l.next
}

// Line returns the full source line containing the given 1-based line
// number, used by internal/diagnostic to render a source-caret error.
func (l *Lexer) Line(n int) string {
	lines := strings.Split(l.src, "\n")
	if n-1 < 0 || n-1 >= len(lines) {
		return ""
	}
	return lines[n-1]
}
