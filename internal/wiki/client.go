// Package wiki retrieves article text from a MediaWiki content source by
// exact title. Source-specific failures are folded into the failure taxonomy.
package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/abhisek/wikismart/internal/failure"
	"github.com/abhisek/wikismart/internal/language"
)

const (
	// DefaultEndpoint is the Action API URL; {lang} is replaced per request.
	DefaultEndpoint  = "https://{lang}.wikipedia.org/w/api.php"
	DefaultUserAgent = "WikiSmart/1.0 (https://github.com/abhisek/wikismart)"
	defaultTimeout   = 30 * time.Second

	maxResponseBytes = 16 << 20
)

var langLabelRe = regexp.MustCompile(`^[a-z][a-z0-9-]{0,15}$`)

// Config configures a Client.
type Config struct {
	Endpoint  string        `yaml:"endpoint"`
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`
}

// DefaultConfig returns a Config targeting Wikipedia.
func DefaultConfig() Config {
	return Config{
		Endpoint:  DefaultEndpoint,
		UserAgent: DefaultUserAgent,
		Timeout:   defaultTimeout,
	}
}

// Page is a fetched article.
type Page struct {
	ID       int64
	Title    string
	Language language.Code
	Content  string
}

// Client fetches pages. It holds only static configuration and is safe for
// concurrent use.
type Client struct {
	endpoint string
	http     *http.Client
	logger   *zap.Logger
}

// New creates a Client. The identifying User-Agent is installed on the
// transport once and applies to every request the client issues.
func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint: cfg.Endpoint,
		http: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &userAgentTransport{
				base:      http.DefaultTransport,
				userAgent: cfg.UserAgent,
			},
		},
		logger: logger,
	}
}

type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(r)
}

// queryResponse is the formatversion=2 shape of action=query.
type queryResponse struct {
	Error *apiError `json:"error"`
	Query struct {
		Pages []struct {
			PageID    int64             `json:"pageid"`
			Title     string            `json:"title"`
			Missing   bool              `json:"missing"`
			Invalid   bool              `json:"invalid"`
			Extract   string            `json:"extract"`
			PageProps map[string]string `json:"pageprops"`
		} `json:"pages"`
	} `json:"query"`
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

func (e *apiError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Info)
}

// Fetch looks up title in the given language edition. Redirects are
// followed; no search or spelling correction is applied.
func (c *Client) Fetch(ctx context.Context, lang language.Code, title string) (*Page, error) {
	if !langLabelRe.MatchString(string(lang)) {
		return nil, failure.ProviderError(fmt.Errorf("unsupported language code %q", lang))
	}

	params := url.Values{
		"action":          {"query"},
		"format":          {"json"},
		"formatversion":   {"2"},
		"prop":            {"extracts|pageprops"},
		"explaintext":     {"1"},
		"exsectionformat": {"wiki"},
		"ppprop":          {"disambiguation"},
		"redirects":       {"1"},
		"titles":          {title},
	}

	var resp queryResponse
	if err := c.get(ctx, lang, params, &resp); err != nil {
		return nil, failure.ProviderError(err)
	}
	if resp.Error != nil {
		return nil, failure.ProviderError(resp.Error)
	}
	if len(resp.Query.Pages) == 0 {
		return nil, failure.SourceNotFound(title)
	}

	p := resp.Query.Pages[0]
	if p.Missing || p.Invalid {
		return nil, failure.SourceNotFound(title)
	}
	if _, ok := p.PageProps["disambiguation"]; ok {
		candidates, err := c.disambiguationCandidates(ctx, lang, p.Title)
		if err != nil {
			c.logger.Warn("disambiguation candidates unavailable",
				zap.String("title", p.Title), zap.Error(err))
		}
		return nil, failure.AmbiguousSource(candidates)
	}

	c.logger.Debug("fetched article",
		zap.String("lang", string(lang)),
		zap.String("title", p.Title),
		zap.Int("chars", len(p.Extract)))

	return &Page{
		ID:       p.PageID,
		Title:    p.Title,
		Language: lang,
		Content:  norm.NFC.String(p.Extract),
	}, nil
}

func (c *Client) endpointFor(lang language.Code) string {
	return strings.ReplaceAll(c.endpoint, "{lang}", string(lang))
}

// get issues a GET against the Action API and decodes the JSON body into v.
func (c *Client) get(ctx context.Context, lang language.Code, params url.Values, v any) error {
	u := c.endpointFor(lang) + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", params.Get("action"), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d from content source", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
