package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/wikismart/internal/quiz"
	"github.com/abhisek/wikismart/internal/tui"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <url-or-title>",
	Short: "Fetch a Wikipedia article and show its sections",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		doc, err := e.learner.Ingest(cmd.Context(), args[0])
		if err != nil {
			return explain(err)
		}
		if jsonOutput(cmd) {
			return printJSON(doc)
		}
		full, _ := cmd.Flags().GetBool("full")
		printDocument(doc, full)
		return nil
	},
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize <url-or-title>",
	Short: "Summarize an article's introduction in its own language",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, true)
		if err != nil {
			return err
		}
		defer e.Close()

		res, err := e.learner.Summarize(cmd.Context(), args[0])
		if err != nil {
			return explain(err)
		}
		if jsonOutput(cmd) {
			return printJSON(res)
		}
		printText(res.Title, "Summary", res.Summary)
		return nil
	},
}

var translateCmd = &cobra.Command{
	Use:   "translate <url-or-title>",
	Short: "Translate an article's introduction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, _ := cmd.Flags().GetString("to")

		e, err := setup(cmd, true)
		if err != nil {
			return err
		}
		defer e.Close()

		res, err := e.learner.Translate(cmd.Context(), args[0], target)
		if err != nil {
			return explain(err)
		}
		if jsonOutput(cmd) {
			return printJSON(res)
		}
		printText(res.OriginalTitle, "Translation", res.Translation)
		return nil
	},
}

var quizCmd = &cobra.Command{
	Use:   "quiz <url-or-title>",
	Short: "Generate a quiz on an article's introduction",
	Long: "Generate a five-question multiple-choice quiz. With --play the quiz " +
		"runs interactively and your answers are graded and recorded.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		play, _ := cmd.Flags().GetBool("play")

		e, err := setup(cmd, true)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		res, err := e.learner.Quiz(ctx, args[0])
		if err != nil {
			return explain(err)
		}
		if !play {
			if jsonOutput(cmd) {
				return printJSON(res)
			}
			printQuiz(res.Title, res.Quiz)
			fmt.Println("Quiz ID:", res.QuizID)
			return nil
		}

		answers, err := tui.Play(ctx, res.Title, res.Quiz)
		if errors.Is(err, tui.ErrAborted) {
			fmt.Println("Quiz abandoned.")
			return nil
		}
		if err != nil {
			return err
		}

		result, err := e.learner.Grade(ctx, quiz.Submission{
			SourceReference: args[0],
			QuizID:          res.QuizID,
			Answers:         answers,
		})
		if err != nil {
			return explain(err)
		}
		if jsonOutput(cmd) {
			return printJSON(result)
		}
		printResult(result)
		return nil
	},
}

var gradeCmd = &cobra.Command{
	Use:   "grade <submission.json|->",
	Short: "Grade a quiz submission",
	Long: "Grade a JSON submission of the form " +
		`{"article_url": "...", "quiz_id": "...", "answers": [{"question": "...", "user_answer": "..."}]}. ` +
		"Without quiz_id the answer key is regenerated from the article.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(args[0])
		if err != nil {
			return err
		}
		var sub quiz.Submission
		if err := json.Unmarshal(data, &sub); err != nil {
			return fmt.Errorf("parse submission: %w", err)
		}

		// Regenerating the key needs a provider; a stored quiz does not.
		e, err := setup(cmd, sub.QuizID == "")
		if err != nil {
			return err
		}
		defer e.Close()

		result, err := e.learner.Grade(cmd.Context(), sub)
		if err != nil {
			return explain(err)
		}
		if jsonOutput(cmd) {
			return printJSON(result)
		}
		printResult(result)
		return nil
	},
}

// readInput reads a file, or stdin when path is "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func init() {
	ingestCmd.Flags().Bool("full", false, "Print every section's text")
	translateCmd.Flags().String("to", "", "Target language name (default from config)")
	quizCmd.Flags().Bool("play", false, "Take the quiz interactively and grade it")
}
