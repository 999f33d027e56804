package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/smokesugar/minic/internal/config"
	"github.com/smokesugar/minic/internal/ssa"
)

func newDotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dot <file>",
		Short: "compile a source file and emit its CFG as Graphviz",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			fn, err := compile(args[0], cfg)
			if err != nil {
				return err
			}

			graph := ssa.PrintGraphviz(fn)

			base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			out := filepath.Join(cfg.GraphvizDir, base+".dot")
			if err := os.WriteFile(out, []byte(graph), 0o644); err != nil {
				return err
			}
			fmt.Println(color.GreenString("wrote %s", out))
			return nil
		},
	}
}
