package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/varro-lang/varro/frontend/infer"
	"github.com/varro-lang/varro/frontend/scenario"
	"github.com/varro-lang/varro/internal/log"
)

var SolveCmd = &cobra.Command{
	Use:          "solve file.yaml",
	Short:        "Reduce the constraints of a scenario file and report bounds",
	RunE:         runSolve,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var logLevel *int

func init() {
	logLevel = SolveCmd.Flags().IntP("log-level", "l", int(slog.LevelError), "log level")
}

func runSolve(cmd *cobra.Command, args []string) error {
	log.SetLevel(slog.Level(*logLevel))
	built, err := scenario.Load(args[0])
	if err != nil {
		return err
	}
	ok, diagnostics := built.Session.Solve(built.Constraints...)
	if !ok {
		sb := &strings.Builder{}
		for _, d := range diagnostics.All() {
			sb.WriteString("\n  ")
			sb.WriteString(d.Error())
		}
		return fmt.Errorf("constraints are not satisfiable:%s", sb.String())
	}
	cmd.Println("constraints reduced without contradiction")
	for _, v := range built.Session.Variables() {
		cmd.Printf("%s:\n", v)
		printBounds(cmd, v, infer.Upper)
		printBounds(cmd, v, infer.Lower)
		if inst := v.Instantiation(); inst != nil {
			cmd.Printf("  instantiation: %s\n", inst)
		}
	}
	return nil
}

func printBounds(cmd *cobra.Command, v *infer.InferenceVariable, kind infer.BoundKind) {
	bounds := v.Bounds(kind)
	if len(bounds) == 0 {
		return
	}
	names := make([]string, len(bounds))
	for i, b := range bounds {
		names[i] = b.String()
	}
	cmd.Printf("  %s bounds: %s\n", kind, strings.Join(names, ", "))
}
