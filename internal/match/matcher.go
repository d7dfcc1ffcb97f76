// Package match composes extraction, scoring, enrichment and grouping into
// the single matching entry point: job text in, ranked and grouped
// candidates out.
package match

import (
	"context"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/referral-matcher/internal/enrich"
	"github.com/jonathan/referral-matcher/internal/geo"
	"github.com/jonathan/referral-matcher/internal/parsing"
	"github.com/jonathan/referral-matcher/internal/refdata"
	"github.com/jonathan/referral-matcher/internal/scoring"
	"github.com/jonathan/referral-matcher/internal/types"
)

// scoreParallelism bounds the scoring worker pool. Scoring is stateless per
// candidate over read-only tables, so the limit is purely a CPU fan-out cap.
const scoreParallelism = 8

// Matcher is the matching orchestrator. It is safe for concurrent use; all
// shared state is read-only reference data plus the enricher's own
// concurrency-safe cache.
type Matcher struct {
	tables   *refdata.Tables
	enricher *enrich.Enricher
	validate *validator.Validate
	log      *zap.Logger
}

// New creates a Matcher. The enricher may be nil, which disables location
// enrichment regardless of options.
func New(tables *refdata.Tables, enricher *enrich.Enricher, log *zap.Logger) *Matcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Matcher{
		tables:   tables,
		enricher: enricher,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}
}

// Match runs one full matching call. Only invalid input returns an error;
// enrichment failures degrade to the unknown bucket and role-detection
// failure yields a zero-confidence requirement, never an error.
func (m *Matcher) Match(ctx context.Context, jobText string, candidates []types.CandidateRecord, opts types.MatchOptions) (*types.MatchResult, error) {
	if strings.TrimSpace(jobText) == "" {
		return nil, &InputError{Field: "jobText", Message: "job description is empty"}
	}
	if len(candidates) == 0 {
		return nil, &InputError{Field: "candidates", Message: "candidate pool is empty"}
	}
	if opts.TopN == 0 {
		opts.TopN = types.DefaultMatchOptions().TopN
	}
	if err := m.validate.Struct(opts); err != nil {
		return nil, &InputError{Field: "options", Message: "validation failed", Cause: err}
	}

	req := parsing.ExtractRequirements(m.tables, jobText, opts.RoleOverride)
	m.log.Debug("extracted requirement",
		zap.String("role", req.Role),
		zap.Float64("confidence", req.Confidence),
		zap.Int("skills", len(req.Skills)))

	scored := m.scorePool(ctx, &req, candidates, opts)

	if opts.EnableLocationEnrichment && m.enricher != nil {
		resolutions := m.enricher.EnrichPool(ctx, req.Role, opts.DesiredLocation, candidates)
		for i := range scored {
			scored[i].Resolution = resolutions[i]
		}
	}

	// Candidates at the hiring company itself are not referral targets.
	pool := make([]types.ScoredCandidate, 0, len(scored))
	for _, c := range scored {
		if !c.SameCompany {
			pool = append(pool, c)
		}
	}

	// Stable sort keeps original input order on score ties.
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Breakdown.Total > pool[j].Breakdown.Total
	})
	for i := range pool {
		pool[i].Rank = i + 1
		pool[i].Bucket = m.classify(opts, pool[i].Resolution)
	}

	topN := opts.TopN
	if topN > len(pool) {
		topN = len(pool)
	}

	return &types.MatchResult{
		RunID:       uuid.New(),
		Requirement: req,
		Ranked:      pool[:topN],
		Buckets:     geo.Group(pool),
	}, nil
}

// scorePool scores every candidate in parallel. Results are written by
// index, so output order is independent of goroutine scheduling.
func (m *Matcher) scorePool(ctx context.Context, req *types.JobRequirement, candidates []types.CandidateRecord, opts types.MatchOptions) []types.ScoredCandidate {
	prefs := scoring.Preferences{
		Companies:  opts.PreferredCompanies,
		Industries: opts.PreferredIndustries,
	}

	scored := make([]types.ScoredCandidate, len(candidates))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(scoreParallelism)
	for i := range candidates {
		i := i
		g.Go(func() error {
			cand := candidates[i]
			scored[i] = types.ScoredCandidate{
				Candidate:   cand,
				Breakdown:   scoring.Score(m.tables, req, &cand, prefs),
				SameCompany: sameCompany(req.Company, cand.Company),
			}
			return nil
		})
	}
	// Scoring workers never return errors.
	_ = g.Wait()
	return scored
}

// classify assigns the location bucket for one candidate. With no usable
// desired location (empty, or an explicitly remote search) there is no
// reference point, so everything lands in unknown.
func (m *Matcher) classify(opts types.MatchOptions, res *types.LocationResolution) types.LocationBucket {
	desired := strings.TrimSpace(opts.DesiredLocation)
	if desired == "" || strings.EqualFold(desired, "remote") {
		return types.BucketUnknown
	}
	return geo.Classify(m.tables, desired, opts.AcceptableLocations, res)
}

func sameCompany(hiring, candidate string) bool {
	if hiring == "" || candidate == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(hiring), strings.TrimSpace(candidate))
}
