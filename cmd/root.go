package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/quizzer/internal/config"
)

var rootCmd = &cobra.Command{
	Use:          "quizzer",
	Short:        "Terminal multiple-choice quizzes",
	Long:         "Quizzer - pick a subject, answer ten questions, and track your scores over time.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZZER_DB env var)")
	rootCmd.PersistentFlags().String("bank", "", "Question bank file, .json or .yaml (overrides QUIZZER_BANK env var)")
	rootCmd.PersistentFlags().String("log-file", "", `Log file path, "-" for stderr (overrides QUIZZER_LOG_FILE env var)`)
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides QUIZZER_LOG_LEVEL env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(subjectsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveConfig reads the environment, applies any flags that were set, and
// fills in default paths.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.FromEnv()
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if p, _ := cmd.Flags().GetString("bank"); p != "" {
		cfg.BankPath = p
	}
	if p, _ := cmd.Flags().GetString("log-file"); p != "" {
		cfg.LogFile = p
	}
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		cfg.LogLevel = l
	}
	return cfg, cfg.Resolve()
}
