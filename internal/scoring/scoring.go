// Package scoring computes deterministic weighted relevance scores for
// candidates against an extracted job requirement.
package scoring

import (
	"strings"

	"github.com/jonathan/referral-matcher/internal/parsing"
	"github.com/jonathan/referral-matcher/internal/refdata"
	"github.com/jonathan/referral-matcher/internal/types"
)

// Weights for scoring factors. Raw factor scores are normalized to [0,1]
// before weighting, so the weights fix the relative importance of each
// signal regardless of how many skills or tags a requirement carries.
const (
	skillMatchWeight     = 3.0
	platformMatchWeight  = 2.0
	roleMatchWeight      = 5.0
	companyMatchWeight   = 2.0
	industryMatchWeight  = 1.0
	seniorityBonusWeight = 1.5
	exactRoleBonusWeight = 3.0
)

// Raw sub-scores for partial role and seniority matches.
const (
	sameFunctionScore      = 0.4
	adjacentSeniorityScore = 0.5
)

// exactRoleConfidenceFloor is the minimum detection confidence before the
// exact-role bonus applies. A low-confidence detection should not compound
// its own uncertainty into a bonus.
const exactRoleConfidenceFloor = 0.8

// Preferences are the caller-supplied scoring preferences, taken from the
// match options.
type Preferences struct {
	Companies  []string
	Industries []string
}

// computeOverlapScore calculates the normalized overlap between a required
// set and a candidate's set. Returns the score (0-1) and the matched names
// in required order. An empty required set scores 0: the factor carries no
// signal, so it must not reward anyone.
func computeOverlapScore(required, have []string) (float64, []string) {
	if len(required) == 0 {
		return 0.0, nil
	}

	haveSet := make(map[string]bool, len(have))
	for _, h := range have {
		if normalized := parsing.NormalizeSkillName(h); normalized != "" {
			haveSet[normalized] = true
		}
	}

	var matched []string
	for _, r := range required {
		if haveSet[parsing.NormalizeSkillName(r)] {
			matched = append(matched, parsing.NormalizeSkillName(r))
		}
	}
	return float64(len(matched)) / float64(len(required)), matched
}

// computeRoleScore calculates the role match score: 1.0 for the same
// canonical role, a partial score for a different role in the same function,
// 0 otherwise. Either side missing a role scores 0.
func computeRoleScore(tables *refdata.Tables, req *types.JobRequirement, cand *types.CandidateRecord) float64 {
	reqRole := req.Role
	candRole := candidateRole(tables, cand)
	if reqRole == "" || candRole == "" {
		return 0.0
	}
	if candRole == reqRole {
		return 1.0
	}
	if fn := roleFunction(tables, cand, candRole); fn != "" && fn == requirementFunction(tables, reqRole) {
		return sameFunctionScore
	}
	return 0.0
}

// candidateRole resolves a candidate's canonical role, falling back to an
// alias lookup on the raw title when no tag was supplied.
func candidateRole(tables *refdata.Tables, cand *types.CandidateRecord) string {
	if cand.CanonicalRole != "" {
		return strings.ToLower(cand.CanonicalRole)
	}
	if role, ok := tables.CanonicalRole(cand.Title); ok {
		return role
	}
	// Decorated titles ("Senior Software Engineer II") still resolve via the
	// longest alias phrase they contain.
	titleLower := strings.ToLower(cand.Title)
	bestRole, bestAlias := "", ""
	for alias, role := range tables.Aliases() {
		if !parsing.ContainsPhrase(titleLower, alias) {
			continue
		}
		if len(alias) > len(bestAlias) || (len(alias) == len(bestAlias) && alias < bestAlias) {
			bestRole, bestAlias = role, alias
		}
	}
	return bestRole
}

func roleFunction(tables *refdata.Tables, cand *types.CandidateRecord, role string) string {
	if cand.Function != "" {
		return strings.ToLower(cand.Function)
	}
	if profile, ok := tables.Role(role); ok {
		return strings.ToLower(profile.Function)
	}
	return ""
}

func requirementFunction(tables *refdata.Tables, role string) string {
	if profile, ok := tables.Role(role); ok {
		return strings.ToLower(profile.Function)
	}
	return ""
}

// computeCompanyScore calculates the company match score: 1.0 when the
// candidate works at a preferred company, 0 otherwise.
func computeCompanyScore(cand *types.CandidateRecord, preferred []string) float64 {
	if len(preferred) == 0 || cand.Company == "" {
		return 0.0
	}
	company := strings.ToLower(strings.TrimSpace(cand.Company))
	for _, p := range preferred {
		if strings.ToLower(strings.TrimSpace(p)) == company {
			return 1.0
		}
	}
	return 0.0
}

// computeIndustryScore calculates the fraction of the candidate's industry
// tags present in the target set (caller preferences plus the requirement's
// own industry hints). Candidates with no explicit tags fall back to the
// company-industry table; a candidate with no tags at all scores 0.
func computeIndustryScore(tables *refdata.Tables, req *types.JobRequirement, cand *types.CandidateRecord, preferred []string) float64 {
	targets := normalizeTagSet(append(append([]string{}, req.IndustryTags...), preferred...))
	if len(targets) == 0 {
		return 0.0
	}
	targetSet := make(map[string]bool, len(targets))
	for _, t := range targets {
		targetSet[t] = true
	}

	candTags := cand.IndustryTags
	if len(candTags) == 0 {
		candTags = tables.CompanyIndustries(cand.Company)
	}
	candTags = normalizeTagSet(candTags)
	if len(candTags) == 0 {
		return 0.0
	}

	matched := 0
	for _, t := range candTags {
		if targetSet[t] {
			matched++
		}
	}
	return float64(matched) / float64(len(candTags))
}

func normalizeTagSet(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		key := strings.ToLower(strings.TrimSpace(t))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	return out
}

// computeSeniorityScore calculates the seniority bonus: 1.0 for the exact
// level, a partial score for an adjacent level on the ladder, 0 otherwise.
// Unknown levels on either side score 0.
func computeSeniorityScore(req *types.JobRequirement, cand *types.CandidateRecord) float64 {
	switch parsing.SeniorityDistance(req.Seniority, strings.ToLower(cand.Seniority)) {
	case 0:
		return 1.0
	case 1:
		return adjacentSeniorityScore
	default:
		return 0.0
	}
}

// computeExactRoleBonus calculates the exact-role bonus: 1.0 only when the
// role match is exact and the role detection was confident.
func computeExactRoleBonus(roleScore, confidence float64) float64 {
	if roleScore == 1.0 && confidence >= exactRoleConfidenceFloor {
		return 1.0
	}
	return 0.0
}
