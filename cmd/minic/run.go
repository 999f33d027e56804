package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smokesugar/minic/internal/config"
	"github.com/smokesugar/minic/internal/interp"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>",
		Short: "compile and interpret a source file, printing its return value",
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
			result, err := interp.Run(fn)
			if err != nil {
				return err
			}
			fmt.Println(result)
			return nil
		},
	}
}
