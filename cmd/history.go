package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/wikismart/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect processed articles and quiz attempts",
}

var historyArticlesCmd = &cobra.Command{
	Use:   "articles",
	Short: "List recently processed articles",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		source, _ := cmd.Flags().GetString("source")

		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		articles, err := e.store.Articles().Recent(cmd.Context(), store.QueryOpts{Limit: limit, Source: source})
		if err != nil {
			return fmt.Errorf("query articles: %w", err)
		}
		if jsonOutput(cmd) {
			return printJSON(articles)
		}
		if len(articles) == 0 {
			fmt.Println("No articles found.")
			return nil
		}

		fmt.Printf("%-19s  %-15s  %-4s  %-30s  %s\n", "Time", "Action", "Lang", "Title", "Source")
		fmt.Println(strings.Repeat("─", 100))
		for _, a := range articles {
			fmt.Printf("%-19s  %-15s  %-4s  %-30s  %s\n",
				a.FetchedAt.Local().Format("2006-01-02 15:04:05"),
				a.Action,
				a.Language,
				truncate(a.Title, 30),
				a.Source,
			)
		}
		return nil
	},
}

var historyAttemptsCmd = &cobra.Command{
	Use:   "attempts",
	Short: "List graded quiz attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		source, _ := cmd.Flags().GetString("source")

		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		attempts, err := e.store.Attempts().List(cmd.Context(), store.QueryOpts{Limit: limit, Source: source})
		if err != nil {
			return fmt.Errorf("query attempts: %w", err)
		}
		if jsonOutput(cmd) {
			return printJSON(attempts)
		}
		if len(attempts) == 0 {
			fmt.Println("No quiz attempts found.")
			return nil
		}

		fmt.Printf("%-19s  %-6s  %-5s  %-17s  %s\n", "Time", "Score", "Right", "Status", "Source")
		fmt.Println(strings.Repeat("─", 90))
		for _, a := range attempts {
			fmt.Printf("%-19s  %5.0f%%  %2d/%-2d  %-17s  %s\n",
				a.SubmittedAt.Local().Format("2006-01-02 15:04:05"),
				a.Score,
				a.CorrectAnswers,
				a.TotalQuestions,
				a.Status,
				a.Source,
			)
		}
		return nil
	},
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func init() {
	for _, c := range []*cobra.Command{historyArticlesCmd, historyAttemptsCmd} {
		c.Flags().Int("limit", 20, "Maximum number of rows")
		c.Flags().String("source", "", "Only show rows for this source")
		historyCmd.AddCommand(c)
	}
}
