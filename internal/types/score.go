//nolint:revive // types is a standard Go package name pattern
package types

// Scoring factor names used in ScoreBreakdown entries.
const (
	FactorSkillMatch     = "skill_match"
	FactorPlatformMatch  = "platform_match"
	FactorRoleMatch      = "role_match"
	FactorCompanyMatch   = "company_match"
	FactorIndustryMatch  = "industry_match"
	FactorSeniorityBonus = "seniority_bonus"
	FactorExactRoleBonus = "exact_role_bonus"
)

// FactorScore is one itemized entry of a score breakdown.
// Raw is always in [0,1]; Weighted = Raw * Weight.
type FactorScore struct {
	Factor   string  `json:"factor"`
	Raw      float64 `json:"raw"`
	Weight   float64 `json:"weight"`
	Weighted float64 `json:"weighted"`
}

// ScoreBreakdown is the full, auditable scoring record for one candidate
// against one JobRequirement. Total is the sum of the weighted contributions.
// The same (candidate, requirement, preferences) input always produces an
// identical breakdown.
type ScoreBreakdown struct {
	Factors       []FactorScore `json:"factors"`
	Total         float64       `json:"total"`
	MatchedSkills []string      `json:"matched_skills,omitempty"`
	Notes         string        `json:"notes,omitempty"`
}

// Factor returns the entry for the named factor, or a zero FactorScore if absent.
func (b *ScoreBreakdown) Factor(name string) FactorScore {
	for _, f := range b.Factors {
		if f.Factor == name {
			return f
		}
	}
	return FactorScore{Factor: name}
}
