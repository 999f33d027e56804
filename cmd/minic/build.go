package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smokesugar/minic/internal/config"
)

func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build <file>",
		Short: "run the pipeline over a source file and report success or failure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if _, err := compile(args[0], cfg); err != nil {
				return err
			}
			fmt.Println("build OK")
			return nil
		},
	}
}
