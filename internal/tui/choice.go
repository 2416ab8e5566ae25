package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
)

var optionLabels = []string{"A", "B", "C", "D", "E", "F"}

// Choice is a multiple-choice selector. After submission the correct
// option is highlighted and a wrong pick is marked.
type Choice struct {
	Question    string
	Options     []string
	Answer      string
	Selected    int
	Submitted   bool
	ChosenIndex int
}

// NewChoice creates a Choice for one question.
func NewChoice(question string, options []string, answer string) Choice {
	return Choice{
		Question:    question,
		Options:     options,
		Answer:      answer,
		ChosenIndex: -1,
	}
}

// Update handles navigation, letter shortcuts and selection.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	if c.Submitted {
		return c, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	case "enter":
		c.Submitted = true
		c.ChosenIndex = c.Selected
	default:
		for i := range c.Options {
			if i < len(optionLabels) && strings.EqualFold(key, optionLabels[i]) {
				c.Selected = i
			}
		}
	}
	return c, nil
}

// Chosen returns the submitted option text.
func (c Choice) Chosen() string {
	if c.ChosenIndex < 0 || c.ChosenIndex >= len(c.Options) {
		return ""
	}
	return c.Options[c.ChosenIndex]
}

// IsCorrect reports whether the submitted option equals the answer.
func (c Choice) IsCorrect() bool {
	return c.Submitted && c.Chosen() == c.Answer
}

// View renders the question and its options.
func (c Choice) View() string {
	var b strings.Builder
	b.WriteString(Body.Bold(true).Render(c.Question))
	b.WriteString("\n\n")

	for i, opt := range c.Options {
		label := "?"
		if i < len(optionLabels) {
			label = optionLabels[i]
		}
		prefix := "  "
		if i == c.Selected && !c.Submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)

		switch {
		case c.Submitted && opt == c.Answer:
			line = Correct.Render(line)
		case c.Submitted && i == c.ChosenIndex:
			line = Incorrect.Render(line)
		case c.Submitted:
			line = Dimmed.Render(line)
		case i == c.Selected:
			line = Selected.Render(line)
		default:
			line = Unselected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
