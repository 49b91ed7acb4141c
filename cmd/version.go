package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizzer/internal/bank"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "quizzer", version)
		fmt.Fprintf(out, "supported bank format %s.x\n", bank.SupportedMajor)

		cfg, err := resolveConfig(cmd)
		if err != nil {
			fmt.Fprintln(out, "question bank unavailable:", err)
			return
		}
		b, err := bank.Load(cfg.BankPath)
		if err != nil {
			fmt.Fprintln(out, "question bank unavailable:", err)
			return
		}
		source := "bundled"
		if cfg.BankPath != "" {
			source = cfg.BankPath
		}
		fmt.Fprintf(out, "question bank %s (%s, %d subjects)\n", b.Version(), source, len(b.Subjects()))
	},
}
