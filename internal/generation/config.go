package generation

// Config controls request budgets and the quiz validator chain.
type Config struct {
	// QuizValidators run in order on every generated quiz; the first
	// failure rejects the quiz.
	QuizValidators []QuizValidator `yaml:"-"`

	SummaryMaxTokens   int     `yaml:"summary_max_tokens"`
	SummaryTemperature float64 `yaml:"summary_temperature"`

	TranslateMaxTokens   int     `yaml:"translate_max_tokens"`
	TranslateTemperature float64 `yaml:"translate_temperature"`

	QuizMaxTokens   int     `yaml:"quiz_max_tokens"`
	QuizTemperature float64 `yaml:"quiz_temperature"`
}

// DefaultConfig returns the standard budgets and validator chain.
func DefaultConfig() Config {
	return Config{
		QuizValidators: DefaultQuizValidators(),

		SummaryMaxTokens:   1000,
		SummaryTemperature: 0.1,

		TranslateMaxTokens:   2048,
		TranslateTemperature: 0.2,

		QuizMaxTokens:   2048,
		QuizTemperature: 0.4,
	}
}

func (c Config) validators() []QuizValidator {
	if c.QuizValidators == nil {
		return DefaultQuizValidators()
	}
	return c.QuizValidators
}
