// Package token defines the lexical tokens of the source language.
package token

import "fmt"

// Kind identifies the lexical class of a Token. Every kind, punctuation
// included, is a small sequential constant; names gives its spelling.
type Kind int

const (
	EOF Kind = iota
	Illegal

	Int
	Ident

	// Keywords.
	Return
	If
	Else
	While
	As

	// Type names.
	TypeName

	// Punctuation and operators.
	Colon
	Semicolon
	Comma
	LParen
	RParen
	LBrace
	RBrace
	Assign
	Plus
	Minus
	Star
	Slash
	Less
	LessEqual
	Greater
	GreaterEqual
	NotEqual
	Equal
)

var names = map[Kind]string{
	EOF:          "eof",
	Illegal:      "illegal",
	Int:          "int",
	Ident:        "ident",
	Return:       "return",
	If:           "if",
	Else:         "else",
	While:        "while",
	As:           "as",
	TypeName:     "type",
	Colon:        ":",
	Semicolon:    ";",
	Comma:        ",",
	LParen:       "(",
	RParen:       ")",
	LBrace:       "{",
	RBrace:       "}",
	Assign:       "=",
	Plus:         "+",
	Minus:        "-",
	Star:         "*",
	Slash:        "/",
	Less:         "<",
	LessEqual:    "<=",
	Greater:      ">",
	GreaterEqual: ">=",
	NotEqual:     "!=",
	Equal:        "==",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// keywords maps identifier text to its keyword Kind, used by the lexer's
// ident_kind-style dispatch.
var keywords = map[string]Kind{
	"return": Return,
	"if":     If,
	"else":   Else,
	"while":  While,
	"as":     As,
	"i8":     TypeName,
	"i16":    TypeName,
	"i32":    TypeName,
	"i64":    TypeName,
	"u8":     TypeName,
	"u16":    TypeName,
	"u32":    TypeName,
	"u64":    TypeName,
}

// Lookup returns the keyword Kind for an identifier, or Ident if it is a
// plain identifier.
func Lookup(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return Ident
}

// Token is a single lexical token together with its source position and
// literal text, mirroring the teacher lexer's flat Token{kind,len,ptr,line}.
type Token struct {
	Kind Kind
	Text string
	Line int
	Col  int
}

// String implements fmt.Stringer, mainly for diagnostics.
func (t Token) String() string {
	if t.Text != "" {
		return t.Text
	}
	return t.Kind.String()
}

// SourceError is an error anchored to a specific token, carrying enough
// position information for internal/diagnostic to render a source-caret
// report. internal/parser and internal/sema both raise these instead of
// bare strings so the CLI can point at the offending source line.
type SourceError struct {
	Tok Token
	Msg string
}

// Error implements error with the plain "line N: message" rendering used
// when no caret report is printed (e.g. logs without a terminal).
func (e *SourceError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Tok.Line, e.Msg)
}
