package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wikismart/internal/generation"
	"github.com/abhisek/wikismart/internal/quiz"
)

// ErrAborted is returned by Play when the learner quits early.
var ErrAborted = errors.New("quiz aborted")

// Player walks a learner through a quiz one question at a time and
// collects their answers.
type Player struct {
	title     string
	questions []generation.QuizQuestion
	index     int
	choice    Choice
	answers   []quiz.Answer
	aborted   bool
}

// NewPlayer creates a Player positioned on the first question.
func NewPlayer(title string, questions []generation.QuizQuestion) Player {
	p := Player{title: title, questions: questions}
	if len(questions) > 0 {
		p.choice = newChoiceFor(questions[0])
	}
	return p
}

func newChoiceFor(q generation.QuizQuestion) Choice {
	return NewChoice(q.Question, q.Options, q.Answer)
}

func (p Player) Init() tea.Cmd {
	if len(p.questions) == 0 {
		return tea.Quit
	}
	return nil
}

func (p Player) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch kmsg.String() {
	case "ctrl+c", "esc":
		p.aborted = true
		return p, tea.Quit
	}

	if !p.choice.Submitted {
		var cmd tea.Cmd
		p.choice, cmd = p.choice.Update(msg)
		if p.choice.Submitted {
			p.answers = append(p.answers, quiz.Answer{
				Question:   p.choice.Question,
				UserAnswer: p.choice.Chosen(),
			})
		}
		return p, cmd
	}

	if kmsg.String() == "enter" {
		p.index++
		if p.Done() {
			return p, tea.Quit
		}
		p.choice = newChoiceFor(p.questions[p.index])
	}
	return p, nil
}

// Done reports whether every question has been answered.
func (p Player) Done() bool {
	return p.index >= len(p.questions)
}

// Answers returns the answers collected so far.
func (p Player) Answers() []quiz.Answer {
	return p.answers
}

func (p Player) View() tea.View {
	return tea.NewView(p.render())
}

func (p Player) render() string {
	if p.Done() || p.aborted {
		return ""
	}

	var b strings.Builder
	b.WriteString(Title.Render(p.title))
	b.WriteString("  ")
	b.WriteString(Hint.Render(fmt.Sprintf("question %d of %d", p.index+1, len(p.questions))))
	b.WriteString("\n\n")
	b.WriteString(p.choice.View())
	b.WriteString("\n")
	if p.choice.Submitted {
		if p.choice.IsCorrect() {
			b.WriteString(Correct.Render("Correct!"))
		} else {
			b.WriteString(Incorrect.Render("The answer was: " + p.choice.Answer))
		}
		b.WriteString("\n")
		b.WriteString(Hint.Render("enter: next  esc: quit"))
	} else {
		b.WriteString(Hint.Render("↑/↓ or a-d: choose  enter: answer  esc: quit"))
	}
	b.WriteString("\n")
	return b.String()
}

// Play runs the quiz interactively on the terminal and returns the
// learner's answers.
func Play(ctx context.Context, title string, questions []generation.QuizQuestion) ([]quiz.Answer, error) {
	prog := tea.NewProgram(NewPlayer(title, questions), tea.WithContext(ctx))
	final, err := prog.Run()
	if err != nil {
		return nil, fmt.Errorf("run quiz: %w", err)
	}
	p, ok := final.(Player)
	if !ok {
		return nil, fmt.Errorf("unexpected model %T", final)
	}
	if p.aborted {
		return p.Answers(), ErrAborted
	}
	return p.Answers(), nil
}
