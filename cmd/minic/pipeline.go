package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/smokesugar/minic/internal/config"
	"github.com/smokesugar/minic/internal/diagnostic"
	"github.com/smokesugar/minic/internal/lexer"
	"github.com/smokesugar/minic/internal/parser"
	"github.com/smokesugar/minic/internal/sema"
	"github.com/smokesugar/minic/internal/ssa"
	"github.com/smokesugar/minic/internal/token"
)

// compile runs the full front-to-middle-end pipeline over the source
// file at path, stopping as early as cfg.OptLevel allows: lex, parse,
// analyze (scope/types/constant-folding), lower to IR, then optionally
// immediate-operand folding and mem-to-reg/SSA promotion. A lex, parse,
// or semantic error is reported as a source-caret diagnostic and
// returned as a plain error so the CLI exits non-zero before the IR
// pipeline ever runs, per spec.md §7's upstream-errors contract.
func compile(path string, cfg config.Config) (*ssa.Function, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	p := parser.New(string(data))

	tree, err := p.Parse()
	if err != nil {
		reportSourceError(p.Lexer(), err)
		return nil, errors.New("parse failed")
	}

	if err := sema.New().Analyze(tree); err != nil {
		reportSourceError(p.Lexer(), err)
		return nil, errors.New("semantic analysis failed")
	}

	fn := ssa.NewBuilder().Build(tree)

	if cfg.OptLevel == config.OptNone {
		return fn, nil
	}
	ssa.FoldImmediates(fn)

	if cfg.OptLevel == config.OptFold {
		return fn, nil
	}
	ssa.PromoteToSSA(fn)

	return fn, nil
}

// reportSourceError prints a source-caret diagnostic when err is (or
// wraps) a token.SourceError, falling back to a bare message otherwise.
func reportSourceError(lex *lexer.Lexer, err error) {
	var se *token.SourceError
	if errors.As(err, &se) {
		diagnostic.Report(os.Stderr, lex, se.Tok.Line, se.Tok.Col, se.Msg)
		return
	}
	fmt.Fprintln(os.Stderr, err)
}
