package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/varro-lang/varro/cmd"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "varro [subcommand]",
	Short:        "varro\n constraint playground for the varro frontend's generic type inference",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(cmd.SolveCmd)
}
