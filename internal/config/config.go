// Package config assembles the process configuration: defaults, then an
// optional YAML file, then WIKISMART_* environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/wikismart/internal/generation"
	"github.com/abhisek/wikismart/internal/learn"
	"github.com/abhisek/wikismart/internal/llm"
	"github.com/abhisek/wikismart/internal/wiki"
)

// Config is the full process configuration.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Server ServerConfig `yaml:"server"`

	// DB is the SQLite path. Empty means store.DefaultDBPath.
	DB string `yaml:"db"`

	// UploadDir stages uploaded PDFs. Empty means the system temp dir.
	UploadDir string `yaml:"upload_dir"`

	Wiki       wiki.Config       `yaml:"wiki"`
	LLM        llm.Config        `yaml:"llm"`
	Routes     Routes            `yaml:"routes"`
	Generation generation.Config `yaml:"generation"`
	Learn      learn.Config      `yaml:"learn"`
}

// LogConfig selects the zap preset.
type LogConfig struct {
	Mode  string `yaml:"mode"`  // development | production
	Level string `yaml:"level"` // debug | info | warn | error
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr           string        `yaml:"addr"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	MaxUploadBytes int64         `yaml:"max_upload_bytes"`
}

// Route names the back-ends serving one operation and the prompt style
// used with them. Provider may list several comma-separated back-ends,
// tried in order.
type Route struct {
	Provider string           `yaml:"provider"`
	Style    generation.Style `yaml:"style"`
}

// Routes maps each generation operation to its Route.
type Routes struct {
	Summarize Route `yaml:"summarize"`
	Translate Route `yaml:"translate"`
	Quiz      Route `yaml:"quiz"`
}

// All returns the routes keyed by operation name.
func (r Routes) All() map[string]Route {
	return map[string]Route{
		"summarize": r.Summarize,
		"translate": r.Translate,
		"quiz":      r.Quiz,
	}
}

// Default returns the built-in configuration: summaries from Groq in chat
// style, translations and quizzes from Gemini in prompt style.
func Default() Config {
	return Config{
		Log: LogConfig{Mode: "development", Level: "info"},
		Server: ServerConfig{
			Addr:           ":8000",
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   3 * time.Minute,
			MaxUploadBytes: 20 << 20,
		},
		Wiki: wiki.DefaultConfig(),
		LLM:  llm.DefaultConfig(),
		Routes: Routes{
			Summarize: Route{Provider: llm.BackendGroq, Style: generation.StyleChat},
			Translate: Route{Provider: llm.BackendGemini, Style: generation.StylePrompt},
			Quiz:      Route{Provider: llm.BackendGemini, Style: generation.StylePrompt},
		},
		Generation: generation.DefaultConfig(),
		Learn:      learn.DefaultConfig(),
	}
}

// Load builds the configuration. path may be empty, in which case only
// defaults and the environment apply.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := cfg.decode(data); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// decode merges YAML data over c. Unknown keys are rejected.
func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv applies WIKISMART_* overrides, including provider credentials.
func (c *Config) ApplyEnv() {
	setFromEnv(&c.Log.Mode, "WIKISMART_LOG_MODE")
	setFromEnv(&c.Log.Level, "WIKISMART_LOG_LEVEL")
	setFromEnv(&c.Server.Addr, "WIKISMART_ADDR")
	setFromEnv(&c.DB, "WIKISMART_DB")
	setFromEnv(&c.UploadDir, "WIKISMART_UPLOAD_DIR")
	setFromEnv(&c.Wiki.Endpoint, "WIKISMART_WIKI_ENDPOINT")
	setFromEnv(&c.Wiki.UserAgent, "WIKISMART_WIKI_USER_AGENT")
	setFromEnv(&c.Routes.Summarize.Provider, "WIKISMART_SUMMARIZE_PROVIDER")
	setFromEnv(&c.Routes.Translate.Provider, "WIKISMART_TRANSLATE_PROVIDER")
	setFromEnv(&c.Routes.Quiz.Provider, "WIKISMART_QUIZ_PROVIDER")
	c.LLM.ApplyEnv()
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

var knownBackends = map[string]bool{
	llm.BackendAnthropic:  true,
	llm.BackendOpenAI:     true,
	llm.BackendGroq:       true,
	llm.BackendOpenRouter: true,
	llm.BackendGemini:     true,
	llm.BackendMock:       true,
}

// Validate checks the configuration shape. Credentials are checked
// separately by RequireCredentials, since only generation needs them.
func (c Config) Validate() error {
	switch c.Log.Mode {
	case "development", "production":
	default:
		return fmt.Errorf("log.mode must be development or production, got %q", c.Log.Mode)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("server.max_upload_bytes must be > 0")
	}
	if c.Wiki.Endpoint == "" {
		return fmt.Errorf("wiki.endpoint is required")
	}
	if c.Wiki.UserAgent == "" {
		return fmt.Errorf("wiki.user_agent is required by the Wikimedia API policy")
	}
	if c.Learn.MaxUploadChars < 0 {
		return fmt.Errorf("learn.max_upload_chars must be >= 0")
	}

	for op, route := range c.Routes.All() {
		names := llm.ParseRoute(route.Provider)
		if len(names) == 0 {
			return fmt.Errorf("routes.%s.provider is required", op)
		}
		for _, name := range names {
			if !knownBackends[name] {
				return fmt.Errorf("routes.%s.provider: unknown back-end %q", op, name)
			}
		}
		switch route.Style {
		case generation.StyleChat, generation.StylePrompt:
		default:
			return fmt.Errorf("routes.%s.style must be %q or %q, got %q",
				op, generation.StyleChat, generation.StylePrompt, route.Style)
		}
	}
	return nil
}

// FillRoutes drops route back-ends that have no credentials. A route left
// with none is sent to the first back-end that has them, per
// llm.Config.Discover. It returns the operations whose route changed.
// Routes with no credentialed back-end at all are left for
// RequireCredentials to report.
func (c *Config) FillRoutes() []string {
	var changed []string
	for _, r := range []struct {
		op    string
		route *Route
	}{
		{"summarize", &c.Routes.Summarize},
		{"translate", &c.Routes.Translate},
		{"quiz", &c.Routes.Quiz},
	} {
		names := llm.ParseRoute(r.route.Provider)
		var usable []string
		for _, name := range names {
			if c.LLM.ValidateBackend(name) == nil {
				usable = append(usable, name)
			}
		}
		if len(usable) == len(names) {
			continue
		}
		if len(usable) == 0 {
			name, ok := c.LLM.Discover()
			if !ok {
				continue
			}
			usable = []string{name}
		}
		r.route.Provider = strings.Join(usable, ",")
		changed = append(changed, r.op)
	}
	return changed
}

// RequireCredentials checks that every back-end named by the routes has an
// API key.
func (c Config) RequireCredentials() error {
	var errs []error
	seen := map[string]bool{}
	for _, route := range c.Routes.All() {
		for _, name := range llm.ParseRoute(route.Provider) {
			if seen[name] {
				continue
			}
			seen[name] = true
			if err := c.LLM.ValidateBackend(name); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
