package enrich

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/jonathan/referral-matcher/internal/refdata"
	"github.com/jonathan/referral-matcher/internal/types"
)

// Failure reasons recorded on not-found resolutions.
const (
	ReasonNoResults           = "no results matched the candidate"
	ReasonValidationRejected  = "extracted text failed location validation"
	ReasonProviderUnavailable = "all providers unavailable"
)

// sourceInput marks resolutions derived from the candidate's own raw
// location field, with no provider call.
const sourceInput = "input"

// enrichParallelism bounds concurrent lookups in a bulk pass. Provider calls
// are still serialized globally by the per-provider rate limiters; this only
// caps in-flight goroutines.
const enrichParallelism = 4

// Config controls enrichment behavior.
type Config struct {
	TTL           time.Duration
	NotFoundTTL   time.Duration
	LookupTimeout time.Duration
	MaxAttempts   int
	// ProviderRates is requests-per-second per provider name. Providers not
	// listed get DefaultProviderRate.
	ProviderRates map[string]rate.Limit
}

// DefaultProviderRate is the request rate applied to providers with no
// explicit configuration.
const DefaultProviderRate = rate.Limit(1)

// DefaultConfig returns sensible enrichment defaults.
func DefaultConfig() Config {
	return Config{
		TTL:           DefaultTTL,
		NotFoundTTL:   DefaultNotFoundTTL,
		LookupTimeout: 10 * time.Second,
		MaxAttempts:   2,
		ProviderRates: map[string]rate.Limit{
			"google":     1,
			"brave":      1,
			"duckduckgo": 0.5,
		},
	}
}

// Enricher resolves candidate locations through an ordered provider chain
// behind the two-tier cache. It is safe for concurrent matching calls; the
// per-provider rate limiters are global, so the provider budget holds no
// matter how many matches are in flight.
type Enricher struct {
	tables    *refdata.Tables
	providers []Provider
	limiters  map[string]*rate.Limiter
	cache     *Cache
	cfg       Config
	log       *zap.Logger

	roleMu     sync.Mutex
	rolePasses map[string]time.Time
}

// New creates an Enricher over the given provider chain, ordered primary
// first.
func New(tables *refdata.Tables, providers []Provider, cfg Config, log *zap.Logger) *Enricher {
	if cfg.LookupTimeout == 0 {
		cfg.LookupTimeout = DefaultConfig().LookupTimeout
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = DefaultConfig().MaxAttempts
	}
	if log == nil {
		log = zap.NewNop()
	}

	limiters := make(map[string]*rate.Limiter, len(providers))
	for _, p := range providers {
		limit, ok := cfg.ProviderRates[p.Name()]
		if !ok {
			limit = DefaultProviderRate
		}
		limiters[p.Name()] = rate.NewLimiter(limit, 1)
	}

	return &Enricher{
		tables:     tables,
		providers:  providers,
		limiters:   limiters,
		cache:      NewCache(cfg.TTL, cfg.NotFoundTTL),
		cfg:        cfg,
		log:        log,
		rolePasses: make(map[string]time.Time),
	}
}

// Cache exposes the candidate cache, mainly for tests and metrics.
func (e *Enricher) Cache() *Cache {
	return e.cache
}

// Resolve returns the location resolution for one candidate, from cache when
// fresh, otherwise via the provider chain. It always returns a resolution;
// failures come back as not-found with the reason retained.
func (e *Enricher) Resolve(ctx context.Context, cand *types.CandidateRecord) *types.LocationResolution {
	if res := e.resolveLocal(cand); res != nil {
		return res
	}
	key := CandidateKey(cand)
	return e.cache.Resolve(key, func() *types.LocationResolution {
		return e.lookup(ctx, cand)
	})
}

// resolveLocal resolves a candidate whose raw location field already names a
// validatable place, with no provider call.
func (e *Enricher) resolveLocal(cand *types.CandidateRecord) *types.LocationResolution {
	if cand.RawLocation == "" {
		return nil
	}
	match, ok := validatePhrase(e.tables, cand.RawLocation, true)
	if !ok {
		return nil
	}
	return &types.LocationResolution{
		City:       match.City,
		Region:     match.Region,
		Country:    match.Country,
		Confidence: match.Confidence,
		Source:     sourceInput,
		ResolvedAt: time.Now().UTC(),
	}
}

// EnrichPool resolves locations for a candidate pool, returning resolutions
// aligned by index. The role-tier cache records the pass so repeat searches
// for the same role only touch newly-seen or expired candidates (the
// candidate-tier cache serves the rest).
func (e *Enricher) EnrichPool(ctx context.Context, role, desiredLocation string, cands []types.CandidateRecord) []*types.LocationResolution {
	roleKey := RoleKey(role, desiredLocation)
	e.roleMu.Lock()
	lastPass, seen := e.rolePasses[roleKey]
	e.rolePasses[roleKey] = time.Now()
	e.roleMu.Unlock()
	if seen {
		e.log.Debug("incremental enrichment pass",
			zap.String("role", role),
			zap.Time("last_pass", lastPass))
	}

	resolutions := make([]*types.LocationResolution, len(cands))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichParallelism)
	for i := range cands {
		i := i
		g.Go(func() error {
			resolutions[i] = e.Resolve(gctx, &cands[i])
			return nil
		})
	}
	// Workers never return errors; lookups degrade to not-found internally.
	_ = g.Wait()
	return resolutions
}

// lookup runs the query-variant / provider-fallback protocol for one
// candidate. Variants run most specific first; every provider gets each
// variant before the next variant is tried.
func (e *Enricher) lookup(ctx context.Context, cand *types.CandidateRecord) *types.LocationResolution {
	reason := ReasonNoResults
	sawResults := false

	for _, query := range QueryVariants(cand.Name, cand.Company) {
		for _, provider := range e.providers {
			results, err := e.search(ctx, provider, query)
			if err != nil {
				e.log.Debug("provider lookup failed",
					zap.String("provider", provider.Name()),
					zap.String("query", query),
					zap.Error(err))
				continue
			}
			if len(results) == 0 {
				continue
			}
			sawResults = true

			if match, ok := ExtractLocation(e.tables, results, cand.Name, cand.Company); ok {
				return &types.LocationResolution{
					City:       match.City,
					Region:     match.Region,
					Country:    match.Country,
					Confidence: match.Confidence,
					Source:     provider.Name(),
					Query:      query,
					ResolvedAt: time.Now().UTC(),
				}
			}
		}
	}

	if sawResults {
		reason = ReasonValidationRejected
	} else if len(e.providers) > 0 && ctx.Err() != nil {
		reason = ReasonProviderUnavailable
	}
	return &types.LocationResolution{
		NotFound:      true,
		FailureReason: reason,
		Source:        sourceFor(e.providers),
		ResolvedAt:    time.Now().UTC(),
	}
}

// search performs one rate-limited, timeout-bounded provider call with a
// bounded retry on retryable failures.
func (e *Enricher) search(ctx context.Context, provider Provider, query string) ([]SearchResult, error) {
	limiter := e.limiters[provider.Name()]

	var lastErr error
	for attempt := 0; attempt < e.cfg.MaxAttempts; attempt++ {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}
		callCtx, cancel := context.WithTimeout(ctx, e.cfg.LookupTimeout)
		results, err := provider.Search(callCtx, query)
		cancel()
		if err == nil {
			return results, nil
		}
		lastErr = err
		if !retryable(err) || ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}

func sourceFor(providers []Provider) string {
	if len(providers) == 0 {
		return "none"
	}
	return providers[0].Name()
}
