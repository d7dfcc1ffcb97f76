//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/google/uuid"

// MatchOptions controls a single matching call.
type MatchOptions struct {
	TopN                     int      `json:"top_n" validate:"min=1"`
	PreferredCompanies       []string `json:"preferred_companies,omitempty"`
	PreferredIndustries      []string `json:"preferred_industries,omitempty"`
	DesiredLocation          string   `json:"desired_location,omitempty"`
	AcceptableLocations      []string `json:"acceptable_locations,omitempty"`
	EnableLocationEnrichment bool     `json:"enable_location_enrichment,omitempty"`
	RoleOverride             string   `json:"role_override,omitempty"`
}

// DefaultMatchOptions returns sensible defaults for a matching call.
func DefaultMatchOptions() MatchOptions {
	return MatchOptions{TopN: 10}
}

// MatchResult is the complete, auditable output of one matching call.
// Ranked holds the top-N candidates ordered by total score descending (ties
// broken by original input order); Buckets partitions the full scored pool.
type MatchResult struct {
	RunID       uuid.UUID                            `json:"run_id"`
	Requirement JobRequirement                       `json:"requirement"`
	Ranked      []ScoredCandidate                    `json:"ranked"`
	Buckets     map[LocationBucket][]ScoredCandidate `json:"buckets"`
}
