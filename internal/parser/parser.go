// Package parser implements a recursive-descent parser with precedence
// climbing for expressions, grounded on original_source/lang/src/parse.c
// (parse_primary/bin_prec/parse_bin/parse_expr), supplemented with the
// statement-level grammar (blocks, var-decl, assign, if/else, while,
// return, and a postfix `as` cast) that the captured parse.c revision
// predates — see SPEC_FULL.md §13.
package parser

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/smokesugar/minic/internal/ast"
	"github.com/smokesugar/minic/internal/lexer"
	"github.com/smokesugar/minic/internal/token"
	"github.com/smokesugar/minic/internal/types"
)

// Parser holds parsing state over one token stream.
type Parser struct {
	lex *lexer.Lexer
}

// defaultIntType is the type an integer literal carries before any
// surrounding context promotes it, per SPEC_FULL.md §13's promotion rule.
var defaultIntType = types.I32

// New creates a Parser over src.
func New(src string) *Parser {
	return &Parser{lex: lexer.New(src)}
}

// Lexer exposes the underlying token source so callers (e.g. the CLI's
// diagnostic reporting) can look up a source line by number after a
// parse or analysis error.
func (p *Parser) Lexer() *lexer.Lexer {
	return p.lex
}

func (p *Parser) errorf(tok token.Token, format string, args ...interface{}) error {
	return errors.WithStack(&token.SourceError{Tok: tok, Msg: fmt.Sprintf(format, args...)})
}

func (p *Parser) expect(k token.Kind) (token.Token, error) {
	tok := p.lex.Peek()
	if tok.Kind != k {
		return tok, p.errorf(tok, "expected %s but got %s", k, tok.Kind)
	}
	return p.lex.Next(), nil
}

// Parse parses a full function body: a single top-level block.
func (p *Parser) Parse() (*ast.Node, error) {
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if tok := p.lex.Peek(); tok.Kind != token.EOF {
		return nil, p.errorf(tok, "expected end of input but got %s", tok.Kind)
	}
	return body, nil
}

func (p *Parser) parseBlock() (*ast.Node, error) {
	open, err := p.expect(token.LBrace)
	if err != nil {
		return nil, err
	}
	var stmts []*ast.Node
	for p.lex.Peek().Kind != token.RBrace {
		if p.lex.Peek().Kind == token.EOF {
			return nil, p.errorf(p.lex.Peek(), "unterminated block")
		}
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	return ast.NewBlock(open, stmts), nil
}

func (p *Parser) parseStmt() (*ast.Node, error) {
	switch p.lex.Peek().Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.Return:
		return p.parseReturn()
	case token.If:
		return p.parseIf()
	case token.While:
		return p.parseWhile()
	case token.Ident:
		if p.isVarDecl() {
			return p.parseVarDecl()
		}
		return p.parseExprStmt()
	default:
		return p.parseExprStmt()
	}
}

// isVarDecl looks ahead two tokens (ident, colon) without consuming any,
// distinguishing `x : i32 = ...;` from an expression statement starting
// with an identifier.
func (p *Parser) isVarDecl() bool {
	// The lexer only gives one token of lookahead, matching the teacher
	// lexer's contract, so a tiny sub-lexer clone is used here to peek a
	// second token without disturbing p.lex's state.
	save := *p.lex
	first := save.Next()
	if first.Kind != token.Ident {
		return false
	}
	return save.Peek().Kind == token.Colon
}

func (p *Parser) parseVarDecl() (*ast.Node, error) {
	name, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Colon); err != nil {
		return nil, err
	}
	typeTok, err := p.expect(token.TypeName)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Assign); err != nil {
		return nil, err
	}
	init, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	ty, ok := types.Lookup(typeTok.Text)
	if !ok {
		return nil, p.errorf(typeTok, "unknown type %q", typeTok.Text)
	}
	// Symbol resolution (scope entry, redefinition checking) is finished
	// by internal/sema; the parser hands off only the declared name and
	// requested type.
	return ast.NewVarDecl(name, name.Text, ty, init), nil
}

func (p *Parser) parseExprStmt() (*ast.Node, error) {
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) parseReturn() (*ast.Node, error) {
	tok, err := p.expect(token.Return)
	if err != nil {
		return nil, err
	}
	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	return ast.NewReturn(tok, val), nil
}

func (p *Parser) parseIf() (*ast.Node, error) {
	tok, err := p.expect(token.If)
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var els *ast.Node
	if p.lex.Peek().Kind == token.Else {
		p.lex.Next()
		if p.lex.Peek().Kind == token.If {
			els, err = p.parseIf()
		} else {
			els, err = p.parseBlock()
		}
		if err != nil {
			return nil, err
		}
	}
	return ast.NewIf(tok, cond, then, els), nil
}

func (p *Parser) parseWhile() (*ast.Node, error) {
	tok, err := p.expect(token.While)
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewWhile(tok, cond, body), nil
}

// parseExpr parses an assignment, the lowest-precedence expression form:
// `lvalue = expr`. Anything else falls through to the binary-operator
// precedence climb.
func (p *Parser) parseExpr() (*ast.Node, error) {
	lhs, err := p.parseCast()
	if err != nil {
		return nil, err
	}
	if p.lex.Peek().Kind == token.Assign {
		tok := p.lex.Next()
		rhs, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if lhs.Kind != ast.Var {
			return nil, p.errorf(tok, "left operand is not assignable")
		}
		return ast.NewAssign(tok, lhs, rhs), nil
	}
	return p.parseBinExpr(lhs, 0)
}

// binPrec mirrors parse.c's bin_prec table.
func binPrec(k token.Kind) int {
	switch k {
	case token.Star, token.Slash:
		return 20
	case token.Plus, token.Minus:
		return 10
	case token.Less, token.LessEqual, token.Greater, token.GreaterEqual,
		token.Equal, token.NotEqual:
		return 5
	default:
		return 0
	}
}

func binKind(k token.Kind) ast.Kind {
	switch k {
	case token.Plus:
		return ast.Add
	case token.Minus:
		return ast.Sub
	case token.Star:
		return ast.Mul
	case token.Slash:
		return ast.Div
	case token.Less:
		return ast.Less
	case token.LessEqual:
		return ast.Lequal
	case token.Greater:
		// a > b parses as b < a.
		return ast.Less
	case token.GreaterEqual:
		return ast.Lequal
	case token.NotEqual:
		return ast.Nequal
	case token.Equal:
		return ast.Equal
	default:
		panic("BUG: not a binary operator token")
	}
}

// swapOperands reports whether a > b / a >= b need their operands
// swapped to reuse the Less/Lequal node kinds.
func swapOperands(k token.Kind) bool {
	return k == token.Greater || k == token.GreaterEqual
}

// parseBinExpr is parse.c's parse_bin, precedence-climbing from lhs at
// callerPrec.
func (p *Parser) parseBinExpr(lhs *ast.Node, callerPrec int) (*ast.Node, error) {
	for binPrec(p.lex.Peek().Kind) > callerPrec {
		opTok := p.lex.Next()
		prec := binPrec(opTok.Kind)
		rhs, err := p.parseCast()
		if err != nil {
			return nil, err
		}
		for binPrec(p.lex.Peek().Kind) > prec {
			rhs, err = p.parseBinExpr(rhs, prec)
			if err != nil {
				return nil, err
			}
		}
		kind := binKind(opTok.Kind)
		if swapOperands(opTok.Kind) {
			lhs, rhs = rhs, lhs
		}
		lhs = ast.NewBinOp(kind, opTok, lhs, rhs)
	}
	return lhs, nil
}

// parseCast parses a primary expression followed by zero or more postfix
// `as TYPE` casts.
func (p *Parser) parseCast() (*ast.Node, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.lex.Peek().Kind == token.As {
		tok := p.lex.Next()
		typeTok, err := p.expect(token.TypeName)
		if err != nil {
			return nil, err
		}
		ty, ok := types.Lookup(typeTok.Text)
		if !ok {
			return nil, p.errorf(typeTok, "unknown type %q", typeTok.Text)
		}
		expr = ast.NewCast(tok, expr, ty)
	}
	return expr, nil
}

func (p *Parser) parsePrimary() (*ast.Node, error) {
	tok := p.lex.Peek()
	switch tok.Kind {
	case token.Int:
		p.lex.Next()
		v, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return nil, p.errorf(tok, "invalid integer literal %q", tok.Text)
		}
		return ast.NewInt(tok, v, defaultIntType), nil
	case token.Ident:
		p.lex.Next()
		return ast.NewVarRef(tok, tok.Text), nil
	case token.LParen:
		p.lex.Next()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return expr, nil
	default:
		return nil, p.errorf(tok, "expected an expression")
	}
}
