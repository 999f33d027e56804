package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smokesugar/minic/internal/config"
	"github.com/smokesugar/minic/internal/ssa"
)

func newIRCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ir <file>",
		Short: "compile a source file and print its textual IR",
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
			fmt.Print(ssa.Print(fn))
			return nil
		},
	}
}
