package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const braveEndpoint = "https://api.search.brave.com/res/v1/web/search"

// BraveProvider searches via the Brave Search JSON API.
type BraveProvider struct {
	apiKey string
	client *http.Client
}

// NewBraveProvider creates a Brave Search provider.
func NewBraveProvider(apiKey string, timeout time.Duration) *BraveProvider {
	return &BraveProvider{
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
	}
}

func (p *BraveProvider) Name() string { return "brave" }

type braveResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			URL         string `json:"url"`
		} `json:"results"`
	} `json:"web"`
}

// Search runs one query against the Brave web-search endpoint.
func (p *BraveProvider) Search(ctx context.Context, query string) ([]SearchResult, error) {
	reqURL := fmt.Sprintf("%s?q=%s&count=5", braveEndpoint, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &ProviderError{Provider: p.Name(), Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", p.apiKey)

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

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &ProviderError{Provider: p.Name(), Message: "failed to read response", Retryable: true, Cause: err}
	}

	var parsed braveResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &ProviderError{Provider: p.Name(), Message: "failed to parse response", Cause: err}
	}

	results := make([]SearchResult, 0, len(parsed.Web.Results))
	for _, r := range parsed.Web.Results {
		results = append(results, SearchResult{Title: r.Title, Snippet: r.Description, URL: r.URL})
	}
	return results, nil
}
