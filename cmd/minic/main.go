// Command minic is the CLI driver for the compiler pipeline: lex, parse,
// analyze, lower to IR, fold, promote to SSA, then either print, graph,
// or interpret the result. Grounded on SPEC_FULL.md §11/§13's
// cobra-based CLI supplementing original_source/lang/src/main.c's
// arena-backed file-load-and-invoke driver, which predates the IR
// pipeline entirely.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
