package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/wikismart/internal/language"
	"github.com/abhisek/wikismart/internal/learn"
)

var pdfCmd = &cobra.Command{
	Use:   "pdf",
	Short: "Summarize, translate or quiz on a PDF document",
}

// pdfAction builds a subcommand that runs op on the PDF named by its
// argument.
func pdfAction(use, short string, op func(ctx context.Context, e *env, cmd *cobra.Command, up learn.Upload) (*learn.UploadResult, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <file.pdf>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			e, err := setup(cmd, true)
			if err != nil {
				return err
			}
			defer e.Close()

			up := learn.Upload{Filename: filepath.Base(args[0]), Content: content}
			res, err := op(cmd.Context(), e, cmd, up)
			if err != nil {
				return explain(err)
			}
			if jsonOutput(cmd) {
				return printJSON(res)
			}
			switch {
			case res.Quiz != nil:
				printQuiz(res.Filename, res.Quiz)
			case res.Translation != "":
				printText(res.Filename, "Translation", res.Translation)
			default:
				printText(res.Filename, "Summary", res.Summary)
			}
			return nil
		},
	}
}

func langFlag(cmd *cobra.Command) language.Code {
	v, _ := cmd.Flags().GetString("lang")
	return language.Parse(v)
}

var pdfSummarizeCmd = pdfAction("summarize", "Summarize a PDF",
	func(ctx context.Context, e *env, cmd *cobra.Command, up learn.Upload) (*learn.UploadResult, error) {
		return e.learner.SummarizePDF(ctx, up, langFlag(cmd))
	})

var pdfTranslateCmd = pdfAction("translate", "Translate a PDF",
	func(ctx context.Context, e *env, cmd *cobra.Command, up learn.Upload) (*learn.UploadResult, error) {
		target, _ := cmd.Flags().GetString("to")
		return e.learner.TranslatePDF(ctx, up, target)
	})

var pdfQuizCmd = pdfAction("quiz", "Generate a quiz on a PDF",
	func(ctx context.Context, e *env, cmd *cobra.Command, up learn.Upload) (*learn.UploadResult, error) {
		return e.learner.QuizPDF(ctx, up, langFlag(cmd))
	})

func init() {
	pdfSummarizeCmd.Flags().String("lang", "en", "Language code of the summary")
	pdfQuizCmd.Flags().String("lang", "en", "Language code of the quiz")
	pdfTranslateCmd.Flags().String("to", "", "Target language name (default from config)")

	pdfCmd.AddCommand(pdfSummarizeCmd)
	pdfCmd.AddCommand(pdfTranslateCmd)
	pdfCmd.AddCommand(pdfQuizCmd)
}
