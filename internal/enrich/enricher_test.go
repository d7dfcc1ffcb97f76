package enrich

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/jonathan/referral-matcher/internal/types"
)

// stubProvider serves canned results and counts calls.
type stubProvider struct {
	name    string
	results []SearchResult
	err     error
	delay   time.Duration
	calls   atomic.Int32
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Search(_ context.Context, _ string) ([]SearchResult, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.ProviderRates = map[string]rate.Limit{
		"stub":      rate.Inf,
		"primary":   rate.Inf,
		"secondary": rate.Inf,
	}
	return cfg
}

func dublinResults() []SearchResult {
	return []SearchResult{{
		Title:   "Jane Doe - Software Engineer at Acme · Dublin, Ireland",
		Snippet: "Jane Doe works at Acme.",
	}}
}

func TestEnricher_ResolveFromProvider(t *testing.T) {
	tables := loadTables(t)
	stub := &stubProvider{name: "stub", results: dublinResults()}
	e := New(tables, []Provider{stub}, testConfig(), nil)

	cand := &types.CandidateRecord{Name: "Jane Doe", Company: "Acme"}
	res := e.Resolve(context.Background(), cand)

	require.True(t, res.Resolved())
	assert.Equal(t, "Dublin", res.City)
	assert.Equal(t, "Ireland", res.Country)
	assert.Equal(t, "stub", res.Source)
	assert.Equal(t, "Jane Doe Acme linkedin", res.Query)
	assert.Equal(t, int32(1), stub.calls.Load())
}

func TestEnricher_SecondResolveHitsCache(t *testing.T) {
	tables := loadTables(t)
	stub := &stubProvider{name: "stub", results: dublinResults()}
	e := New(tables, []Provider{stub}, testConfig(), nil)

	cand := &types.CandidateRecord{Name: "Jane Doe", Company: "Acme"}
	first := e.Resolve(context.Background(), cand)
	second := e.Resolve(context.Background(), cand)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), stub.calls.Load())
}

func TestEnricher_FallbackProvider(t *testing.T) {
	tables := loadTables(t)
	primary := &stubProvider{name: "primary", err: errors.New("boom")}
	secondary := &stubProvider{name: "secondary", results: dublinResults()}
	e := New(tables, []Provider{primary, secondary}, testConfig(), nil)

	res := e.Resolve(context.Background(), &types.CandidateRecord{Name: "Jane Doe", Company: "Acme"})

	require.True(t, res.Resolved())
	assert.Equal(t, "secondary", res.Source)
	assert.Equal(t, int32(1), primary.calls.Load())
	assert.Equal(t, int32(1), secondary.calls.Load())
}

func TestEnricher_NotFoundIsCached(t *testing.T) {
	tables := loadTables(t)
	stub := &stubProvider{name: "stub"}
	e := New(tables, []Provider{stub}, testConfig(), nil)

	cand := &types.CandidateRecord{Name: "Jane Doe", Company: "Acme"}
	first := e.Resolve(context.Background(), cand)
	callsAfterFirst := stub.calls.Load()
	second := e.Resolve(context.Background(), cand)

	assert.True(t, first.NotFound)
	assert.Equal(t, ReasonNoResults, first.FailureReason)
	assert.Equal(t, first, second)
	assert.Equal(t, callsAfterFirst, stub.calls.Load())
}

func TestEnricher_ValidationRejectedReason(t *testing.T) {
	tables := loadTables(t)
	stub := &stubProvider{name: "stub", results: []SearchResult{{
		Title:   "Jane Doe of Acme wins Global Excellence Award",
		Snippet: "Acme announced the award.",
	}}}
	e := New(tables, []Provider{stub}, testConfig(), nil)

	res := e.Resolve(context.Background(), &types.CandidateRecord{Name: "Jane Doe", Company: "Acme"})

	assert.True(t, res.NotFound)
	assert.Equal(t, ReasonValidationRejected, res.FailureReason)
}

func TestEnricher_ConcurrentResolveSingleLookup(t *testing.T) {
	tables := loadTables(t)
	stub := &stubProvider{name: "stub", results: dublinResults(), delay: 20 * time.Millisecond}
	e := New(tables, []Provider{stub}, testConfig(), nil)

	cand := &types.CandidateRecord{Name: "Jane Doe", Company: "Acme"}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := e.Resolve(context.Background(), cand)
			assert.Equal(t, "Dublin", res.City)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), stub.calls.Load())
}

func TestEnricher_RawLocationSkipsProviders(t *testing.T) {
	tables := loadTables(t)
	stub := &stubProvider{name: "stub", results: dublinResults()}
	e := New(tables, []Provider{stub}, testConfig(), nil)

	cand := &types.CandidateRecord{Name: "Jane Doe", Company: "Acme", RawLocation: "Cork, Ireland"}
	res := e.Resolve(context.Background(), cand)

	require.True(t, res.Resolved())
	assert.Equal(t, "Cork", res.City)
	assert.Equal(t, "input", res.Source)
	assert.Equal(t, int32(0), stub.calls.Load())
}

func TestEnricher_EnrichPoolAlignsByIndex(t *testing.T) {
	tables := loadTables(t)
	stub := &stubProvider{name: "stub", results: dublinResults()}
	e := New(tables, []Provider{stub}, testConfig(), nil)

	cands := []types.CandidateRecord{
		{Name: "Jane Doe", Company: "Acme"},
		{Name: "Sam Roe", Company: "Globex", RawLocation: "Mumbai, India"},
	}
	resolutions := e.EnrichPool(context.Background(), "software engineer", "Dublin", cands)

	require.Len(t, resolutions, 2)
	assert.Equal(t, "Dublin", resolutions[0].City)
	assert.Equal(t, "Mumbai", resolutions[1].City)
}

func TestEnricher_RetryOnRetryableError(t *testing.T) {
	tables := loadTables(t)
	stub := &stubProvider{name: "stub", err: &ProviderError{Provider: "stub", Status: 500, Message: "server error", Retryable: true}}
	e := New(tables, []Provider{stub}, testConfig(), nil)

	res := e.Resolve(context.Background(), &types.CandidateRecord{Name: "Jane Doe", Company: "Acme"})

	assert.True(t, res.NotFound)
	// 4 query variants, MaxAttempts each.
	assert.Equal(t, int32(4*DefaultConfig().MaxAttempts), stub.calls.Load())
}
