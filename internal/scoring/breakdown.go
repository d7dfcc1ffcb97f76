package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/referral-matcher/internal/refdata"
	"github.com/jonathan/referral-matcher/internal/types"
)

// Score scores one candidate against a job requirement, producing the full
// itemized breakdown. The same (requirement, candidate, preferences) input
// always yields an identical breakdown.
func Score(tables *refdata.Tables, req *types.JobRequirement, cand *types.CandidateRecord, prefs Preferences) types.ScoreBreakdown {
	skillScore, matchedSkills := computeOverlapScore(req.Skills, cand.Skills)
	platformScore, _ := computeOverlapScore(req.Platforms, cand.Platforms)
	roleScore := computeRoleScore(tables, req, cand)
	companyScore := computeCompanyScore(cand, prefs.Companies)
	industryScore := computeIndustryScore(tables, req, cand, prefs.Industries)
	seniorityScore := computeSeniorityScore(req, cand)
	exactRoleScore := computeExactRoleBonus(roleScore, req.Confidence)

	breakdown := types.ScoreBreakdown{
		Factors: []types.FactorScore{
			factor(types.FactorSkillMatch, skillScore, skillMatchWeight),
			factor(types.FactorPlatformMatch, platformScore, platformMatchWeight),
			factor(types.FactorRoleMatch, roleScore, roleMatchWeight),
			factor(types.FactorCompanyMatch, companyScore, companyMatchWeight),
			factor(types.FactorIndustryMatch, industryScore, industryMatchWeight),
			factor(types.FactorSeniorityBonus, seniorityScore, seniorityBonusWeight),
			factor(types.FactorExactRoleBonus, exactRoleScore, exactRoleBonusWeight),
		},
		MatchedSkills: matchedSkills,
	}
	total := 0.0
	for _, f := range breakdown.Factors {
		total += f.Weighted
	}
	breakdown.Total = round2(total)
	breakdown.Notes = generateNotes(&breakdown, matchedSkills)
	return breakdown
}

func factor(name string, raw, weight float64) types.FactorScore {
	return types.FactorScore{
		Factor:   name,
		Raw:      raw,
		Weight:   weight,
		Weighted: round2(raw * weight),
	}
}

// round2 rounds to two decimal places so breakdowns compare and display
// cleanly across platforms.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// generateNotes creates a brief explanation of the score.
func generateNotes(b *types.ScoreBreakdown, matchedSkills []string) string {
	var parts []string

	switch role := b.Factor(types.FactorRoleMatch).Raw; {
	case role == 1.0:
		parts = append(parts, "Exact role match")
	case role > 0:
		parts = append(parts, "Same-function role match")
	default:
		parts = append(parts, "No role match")
	}

	if len(matchedSkills) > 0 {
		skill := b.Factor(types.FactorSkillMatch).Raw
		if skill >= 0.7 {
			parts = append(parts, fmt.Sprintf("Strong skill match (%s)", strings.Join(matchedSkills, ", ")))
		} else if skill >= 0.4 {
			parts = append(parts, fmt.Sprintf("Moderate skill match (%s)", strings.Join(matchedSkills, ", ")))
		} else {
			parts = append(parts, fmt.Sprintf("Weak skill match (%s)", strings.Join(matchedSkills, ", ")))
		}
	} else {
		parts = append(parts, "No skill matches")
	}

	if b.Factor(types.FactorCompanyMatch).Raw > 0 {
		parts = append(parts, "Preferred company")
	}
	if b.Factor(types.FactorSeniorityBonus).Raw == 1.0 {
		parts = append(parts, "Seniority match")
	} else if b.Factor(types.FactorSeniorityBonus).Raw > 0 {
		parts = append(parts, "Adjacent seniority")
	}

	return strings.Join(parts, ". ")
}
