package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wikismart/internal/document"
	"github.com/abhisek/wikismart/internal/failure"
	"github.com/abhisek/wikismart/internal/generation"
	"github.com/abhisek/wikismart/internal/quiz"
	"github.com/abhisek/wikismart/internal/tui"
)

var sep = strings.Repeat("─", 60)

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// explain turns a taxonomy error into a user-facing one. Ambiguous titles
// list the candidate articles.
func explain(err error) error {
	var fe *failure.Error
	if !errors.As(err, &fe) {
		return err
	}
	if fe.Kind == failure.KindAmbiguousSource && len(fe.Candidates) > 0 {
		lipgloss.Println(tui.Warning.Render(fe.Message + ". Did you mean:"))
		for _, c := range fe.Candidates {
			lipgloss.Println("  • " + c)
		}
	}
	return errors.New(fe.Message)
}

func printDocument(doc *document.Document, full bool) {
	lipgloss.Println(tui.Title.Render(doc.Title) + "  " + tui.Hint.Render(doc.Language.Name()))
	lipgloss.Println(sep)
	if full {
		fmt.Println(doc.Sections.Render())
		return
	}
	for _, e := range doc.Sections.Entries() {
		lipgloss.Printf("%s  %s\n", tui.Heading.Render(e.Name), tui.Dimmed.Render(fmt.Sprintf("%d chars", len([]rune(e.Text)))))
	}
}

func printText(title, heading, body string) {
	lipgloss.Println(tui.Title.Render(title))
	lipgloss.Println(tui.Heading.Render(heading))
	lipgloss.Println(sep)
	fmt.Println(body)
}

func printQuiz(title string, questions []generation.QuizQuestion) {
	lipgloss.Println(tui.Title.Render(title))
	lipgloss.Println(sep)
	for i, q := range questions {
		lipgloss.Println(tui.Body.Bold(true).Render(fmt.Sprintf("%d. %s", i+1, q.Question)))
		for j, opt := range q.Options {
			fmt.Printf("   %c) %s\n", 'A'+j, opt)
		}
		fmt.Println()
	}
}

func printResult(r quiz.Result) {
	status := tui.StatusStyle(string(r.Status)).Render(string(r.Status))
	lipgloss.Println(tui.Card.Render(fmt.Sprintf("Score: %.0f%%  (%d/%d)\n%s",
		r.Score, r.CorrectAnswers, r.TotalQuestions, status)))
}
