package generation

import (
	"fmt"
	"strings"
)

const summarySystemTemplate = `### ROLE
You are an academic content synthesizer. You turn encyclopedia articles into dense, well-structured study summaries for self-directed learners.

### OBJECTIVE
Summarize the text provided by the user as a logically ordered summary written in %[1]s.

### OUTPUT CONSTRAINTS
- Language: write exclusively in %[1]s, whatever the language of the source text.
- No meta-talk: never open with remarks such as "Here is the summary".
- Start directly with the first sentence of the summary.`

const translateSystemTemplate = `You are a professional translator. Translate the text provided by the user into %s.

Rules:
- Output only the translated text.
- Do not add notes, explanations, quotation marks, or a heading.
- Preserve paragraph breaks.`

const quizSystemTemplate = `You write reading-comprehension quizzes for self-directed learners.

Rules:
- Write exactly %[2]d multiple-choice questions about the text provided by the user.
- Every question has exactly %[3]d options and exactly one correct option.
- The "answer" field is copied character for character from one of the options.
- Questions must be answerable from the text alone.
- Write questions, options and answers in %[1]s.
- Respond with JSON only: {"quiz":[{"question":"...","options":["...","...","...","..."],"answer":"..."}]}`

func summarySystemPrompt(languageName string) string {
	return fmt.Sprintf(summarySystemTemplate, languageName)
}

func translateSystemPrompt(target string) string {
	return fmt.Sprintf(translateSystemTemplate, target)
}

func quizSystemPrompt(languageName string) string {
	return fmt.Sprintf(quizSystemTemplate, languageName, QuizSize, OptionCount)
}

// The single-prompt style carries the instruction and the text in one user
// message.

func buildSummaryPrompt(text, languageName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Summarize the following text in %s as a structured study summary. ", languageName)
	fmt.Fprintf(&b, "Write only in %s. Output ONLY the summary, starting with its first sentence.", languageName)
	writeText(&b, text)
	return b.String()
}

func buildTranslatePrompt(text, target string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a professional translator. Translate this text into %s. ", target)
	b.WriteString("Output ONLY the translated text.")
	writeText(&b, text)
	return b.String()
}

func buildQuizPrompt(text, languageName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a %d-question multiple-choice quiz in %s based on the text. ", QuizSize, languageName)
	fmt.Fprintf(&b, "Return ONLY a JSON object with a 'quiz' key containing a list of questions, each with 'question', 'options' (list of %d), and 'answer'. ", OptionCount)
	b.WriteString("The answer must be copied exactly from one of the options.")
	writeText(&b, text)
	return b.String()
}

func writeText(b *strings.Builder, text string) {
	b.WriteString("\n\nText: ")
	b.WriteString(text)
}
