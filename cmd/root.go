package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wikismart",
	Short: "Study Wikipedia articles and PDFs with AI summaries, translations and quizzes",
	Long: "WikiSmart ingests a Wikipedia article or an uploaded PDF, then summarizes, " +
		"translates or quizzes you on its introduction.",
	SilenceUsage: true,
}

// Execute runs the root command with ctx, which is cancelled on shutdown
// signals.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides WIKISMART_DB env var)")
	rootCmd.PersistentFlags().String("log-mode", "", "Logger preset: development or production")
	rootCmd.PersistentFlags().Bool("json", false, "Print results as JSON")

	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(summarizeCmd)
	rootCmd.AddCommand(translateCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(pdfCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

func jsonOutput(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}
