package wiki

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/abhisek/wikismart/internal/failure"
	"github.com/abhisek/wikismart/internal/language"
)

type parseResponse struct {
	Error *apiError `json:"error"`
	Parse struct {
		Title string `json:"title"`
		Text  string `json:"text"`
	} `json:"parse"`
}

// disambiguationCandidates lists the link text of the first list entries on
// a disambiguation page, capped at failure.MaxCandidates.
func (c *Client) disambiguationCandidates(ctx context.Context, lang language.Code, title string) ([]string, error) {
	params := url.Values{
		"action":        {"parse"},
		"format":        {"json"},
		"formatversion": {"2"},
		"prop":          {"text"},
		"redirects":     {"1"},
		"page":          {title},
	}

	var resp parseResponse
	if err := c.get(ctx, lang, params, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	return candidatesFromHTML(resp.Parse.Text)
}

func candidatesFromHTML(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing disambiguation page: %w", err)
	}

	seen := make(map[string]bool)
	var out []string
	doc.Find("li").EachWithBreak(func(_ int, li *goquery.Selection) bool {
		if class, _ := li.Attr("class"); strings.Contains(class, "tocsection") {
			return true
		}
		link := li.Find("a").First()
		if link.Length() == 0 {
			return true
		}
		name := strings.TrimSpace(link.Text())
		if name == "" || seen[name] {
			return true
		}
		seen[name] = true
		out = append(out, name)
		return len(out) < failure.MaxCandidates
	})
	return out, nil
}
