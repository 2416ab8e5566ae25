package learn

import "strings"

// Config holds learner-facing defaults.
type Config struct {
	// DefaultTargetLanguage is used when a translation names no target.
	DefaultTargetLanguage string `yaml:"default_target_language"`

	// MaxUploadChars bounds the extracted upload text sent to a generator.
	MaxUploadChars int `yaml:"max_upload_chars"`
}

// DefaultConfig returns the standard defaults.
func DefaultConfig() Config {
	return Config{
		DefaultTargetLanguage: "French",
		MaxUploadChars:        5000,
	}
}

func (c Config) target(t string) string {
	if t = strings.TrimSpace(t); t != "" {
		return t
	}
	if c.DefaultTargetLanguage != "" {
		return c.DefaultTargetLanguage
	}
	return "French"
}
