// Package diagnostic formats source-caret error reports: the offending
// line of source followed by a `^` caret under the column at fault.
// Grounded on original_source/lang/src/lex.c's error_tok, colorized with
// github.com/fatih/color the way the kanso compiler in the retrieval
// pack colors its own diagnostics, per SPEC_FULL.md §11.
package diagnostic

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	errorPrefix = color.New(color.FgRed, color.Bold)
	caretColor  = color.New(color.FgRed, color.Bold)
)

// Source is the minimal line-lookup contract diagnostic needs from a
// token source; internal/lexer.Lexer satisfies it.
type Source interface {
	Line(n int) string
}

// Report renders a source-caret diagnostic for an error at the given
// 1-based line/column and writes it to w:
//
//	Error: message
//	    <source line>
//	    ^
func Report(w io.Writer, src Source, line, col int, message string) {
	fmt.Fprint(w, errorPrefix.Sprint("Error: "))
	fmt.Fprintln(w, message)

	text := src.Line(line)
	if text == "" {
		return
	}
	fmt.Fprintf(w, "    %s\n", text)

	pad := col - 1
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", pad), caretColor.Sprint("^"))
}
