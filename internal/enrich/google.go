package enrich

import (
	"context"
	"fmt"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// googleResultCount is how many hits we request per query; location evidence
// is almost always in the first few results or nowhere.
const googleResultCount = 5

// GoogleProvider searches via the Google Custom Search JSON API.
type GoogleProvider struct {
	svc *customsearch.Service
	cx  string
}

// NewGoogleProvider creates a Custom Search provider. The cx identifies the
// programmable search engine to query.
func NewGoogleProvider(ctx context.Context, apiKey, cx string) (*GoogleProvider, error) {
	svc, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}
	return &GoogleProvider{svc: svc, cx: cx}, nil
}

func (p *GoogleProvider) Name() string { return "google" }

// Search runs one query and maps the response into SearchResults.
func (p *GoogleProvider) Search(ctx context.Context, query string) ([]SearchResult, error) {
	resp, err := p.svc.Cse.List().Context(ctx).Cx(p.cx).Q(query).Num(googleResultCount).Do()
	if err != nil {
		status := 0
		if apiErr, ok := err.(*googleapi.Error); ok {
			status = apiErr.Code
		}
		return nil, &ProviderError{
			Provider:  p.Name(),
			Status:    status,
			Message:   "search failed",
			Retryable: status == 429 || status >= 500,
			Cause:     err,
		}
	}

	results := make([]SearchResult, 0, len(resp.Items))
	for _, item := range resp.Items {
		results = append(results, SearchResult{
			Title:   item.Title,
			Snippet: item.Snippet,
			URL:     item.Link,
		})
	}
	return results, nil
}
