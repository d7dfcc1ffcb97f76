package enrich

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const ddgLiteEndpoint = "https://lite.duckduckgo.com/lite/"

// ddgUserAgent identifies us politely; the lite endpoint serves plain HTML
// and rejects empty user agents.
const ddgUserAgent = "Mozilla/5.0 (compatible; ReferralMatcher/1.0)"

// DuckDuckGoProvider scrapes the DuckDuckGo Lite HTML endpoint. It needs no
// API key, which makes it the fallback of last resort.
type DuckDuckGoProvider struct {
	client *http.Client
}

// NewDuckDuckGoProvider creates a DuckDuckGo Lite provider.
func NewDuckDuckGoProvider(timeout time.Duration) *DuckDuckGoProvider {
	return &DuckDuckGoProvider{client: &http.Client{Timeout: timeout}}
}

func (p *DuckDuckGoProvider) Name() string { return "duckduckgo" }

// Search fetches the lite results page and extracts result links with their
// snippet rows.
func (p *DuckDuckGoProvider) Search(ctx context.Context, query string) ([]SearchResult, error) {
	reqURL := ddgLiteEndpoint + "?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &ProviderError{Provider: p.Name(), Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", ddgUserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &ProviderError{Provider: p.Name(), Message: "request failed", Retryable: true, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{
			Provider:  p.Name(),
			Status:    resp.StatusCode,
			Message:   fmt.Sprintf("unexpected status %d", resp.StatusCode),
			Retryable: resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500,
		}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &ProviderError{Provider: p.Name(), Message: "failed to parse HTML", Cause: err}
	}
	return parseLiteResults(doc), nil
}

// parseLiteResults walks the lite page's table layout: each hit is a link row
// followed by a snippet row.
func parseLiteResults(doc *goquery.Document) []SearchResult {
	var results []SearchResult
	doc.Find("a.result-link").Each(func(_ int, link *goquery.Selection) {
		title := strings.TrimSpace(link.Text())
		href, _ := link.Attr("href")

		snippet := ""
		row := link.Closest("tr")
		if next := row.Next(); next.Length() > 0 {
			snippet = strings.TrimSpace(next.Find("td.result-snippet").Text())
		}

		if title != "" {
			results = append(results, SearchResult{Title: title, Snippet: snippet, URL: href})
		}
	})
	return results
}
