package main

import (
	"github.com/spf13/cobra"
)

var configPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "minic",
		Short:         "minic is a small SSA compiler middle-end for a toy imperative language",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", ".minic.yaml", "path to a .minic.yaml config file")

	root.AddCommand(newBuildCmd())
	root.AddCommand(newRunCmd())
	root.AddCommand(newIRCmd())
	root.AddCommand(newDotCmd())

	return root
}
