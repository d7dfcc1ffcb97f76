// Package enrich resolves best-effort candidate locations through external
// search providers, behind a two-tier TTL cache with global per-provider
// throttling. Every lookup failure degrades to a "not found" resolution; the
// package never fails a matching call.
package enrich

import (
	"context"
	"fmt"
)

// SearchResult is one hit returned by a search provider.
type SearchResult struct {
	Title   string
	Snippet string
	URL     string
}

// Provider is an external web-search backend. Implementations must be safe
// for concurrent use; the enricher serializes calls per provider through a
// rate limiter, not through the provider itself.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string) ([]SearchResult, error)
}

// ProviderError represents a failure talking to a search provider.
type ProviderError struct {
	Provider  string
	Status    int
	Message   string
	Retryable bool
	Cause     error
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider %s: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("provider %s: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// retryable reports whether err is a ProviderError worth retrying.
func retryable(err error) bool {
	pe, ok := err.(*ProviderError)
	return ok && pe.Retryable
}

// QueryVariants returns the ordered lookup queries for a candidate, most
// specific first. Later variants trade precision for recall and only run
// when earlier ones found nothing.
func QueryVariants(name, company string) []string {
	if name == "" {
		return nil
	}
	if company == "" {
		return []string{name}
	}
	return []string{
		fmt.Sprintf("%s %s linkedin", name, company),
		fmt.Sprintf("%s %s", name, company),
		fmt.Sprintf("%s %s location", name, company),
		name,
	}
}
