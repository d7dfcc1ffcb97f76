// Package types provides type definitions for structured data used throughout the referral-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// CandidateRecord represents one professional contact as supplied by the caller.
// The core never mutates a CandidateRecord; derived values live on ScoredCandidate.
type CandidateRecord struct {
	Name        string `json:"name"`
	Company     string `json:"company"`
	Title       string `json:"title"`
	RawLocation string `json:"raw_location,omitempty"`

	// Derived tags, usually pre-computed by an upstream tagging pass.
	// Missing tags degrade to empty rather than rejecting the record.
	CanonicalRole string   `json:"canonical_role,omitempty"`
	Function      string   `json:"function,omitempty"`
	Seniority     string   `json:"seniority,omitempty"`
	Skills        []string `json:"skills,omitempty"`
	Platforms     []string `json:"platforms,omitempty"`
	IndustryTags  []string `json:"industry_tags,omitempty"`
}

// ScoredCandidate pairs a candidate with its score breakdown and, when location
// enrichment ran, the resolved location and bucket assignment.
type ScoredCandidate struct {
	Candidate  CandidateRecord     `json:"candidate"`
	Breakdown  ScoreBreakdown      `json:"breakdown"`
	Rank       int                 `json:"rank"`
	Resolution *LocationResolution `json:"resolution,omitempty"`
	Bucket     LocationBucket      `json:"bucket,omitempty"`
	// SameCompany marks candidates employed by the hiring company itself;
	// they are excluded from the ranked list.
	SameCompany bool `json:"same_company,omitempty"`
}
