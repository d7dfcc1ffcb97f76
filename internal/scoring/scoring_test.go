package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/referral-matcher/internal/refdata"
	"github.com/jonathan/referral-matcher/internal/types"
)

func loadTables(t *testing.T) *refdata.Tables {
	t.Helper()
	tables, err := refdata.LoadEmbedded()
	require.NoError(t, err)
	return tables
}

func engineerRequirement() *types.JobRequirement {
	return &types.JobRequirement{
		Role:       "software engineer",
		Confidence: 1.0,
		Skills:     []string{"python", "go"},
		Platforms:  []string{"aws", "docker"},
		Seniority:  "senior",
	}
}

func TestScore_ExactMatch(t *testing.T) {
	tables := loadTables(t)
	cand := &types.CandidateRecord{
		Name:          "Avery Reid",
		Company:       "Acme",
		Title:         "Senior Software Engineer",
		CanonicalRole: "software engineer",
		Seniority:     "senior",
		Skills:        []string{"python", "go"},
		Platforms:     []string{"aws", "docker"},
	}

	b := Score(tables, engineerRequirement(), cand, Preferences{})

	assert.Equal(t, 1.0, b.Factor(types.FactorSkillMatch).Raw)
	assert.Equal(t, 1.0, b.Factor(types.FactorPlatformMatch).Raw)
	assert.Equal(t, 1.0, b.Factor(types.FactorRoleMatch).Raw)
	assert.Equal(t, 1.0, b.Factor(types.FactorSeniorityBonus).Raw)
	assert.Equal(t, 1.0, b.Factor(types.FactorExactRoleBonus).Raw)
	// 3.0 + 2.0 + 5.0 + 1.5 + 3.0
	assert.Equal(t, 14.5, b.Total)
	assert.ElementsMatch(t, []string{"python", "go"}, b.MatchedSkills)
}

func TestScore_Deterministic(t *testing.T) {
	tables := loadTables(t)
	req := engineerRequirement()
	cand := &types.CandidateRecord{
		Name:          "Avery Reid",
		Company:       "Stripe",
		CanonicalRole: "software engineer",
		Skills:        []string{"python"},
	}
	prefs := Preferences{Companies: []string{"Stripe"}, Industries: []string{"fintech"}}

	first := Score(tables, req, cand, prefs)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Score(tables, req, cand, prefs))
	}
}

func TestScore_MonotonicInSkillOverlap(t *testing.T) {
	tables := loadTables(t)
	req := engineerRequirement()

	base := &types.CandidateRecord{CanonicalRole: "software engineer", Skills: []string{"python"}}
	more := &types.CandidateRecord{CanonicalRole: "software engineer", Skills: []string{"python", "go"}}

	assert.GreaterOrEqual(t,
		Score(tables, req, more, Preferences{}).Total,
		Score(tables, req, base, Preferences{}).Total)
}

func TestScore_SubScoresWithinBounds(t *testing.T) {
	tables := loadTables(t)
	req := engineerRequirement()
	cand := &types.CandidateRecord{
		Company:       "Stripe",
		CanonicalRole: "software engineer",
		Seniority:     "lead",
		Skills:        []string{"python", "go", "sql", "java"},
		Platforms:     []string{"aws"},
		IndustryTags:  []string{"fintech", "gaming"},
	}

	b := Score(tables, req, cand, Preferences{Companies: []string{"stripe"}, Industries: []string{"fintech"}})

	for _, f := range b.Factors {
		assert.GreaterOrEqual(t, f.Raw, 0.0, f.Factor)
		assert.LessOrEqual(t, f.Raw, 1.0, f.Factor)
		assert.GreaterOrEqual(t, f.Weighted, 0.0, f.Factor)
		assert.LessOrEqual(t, f.Weighted, f.Weight, f.Factor)
	}
}

func TestScore_EmptyRequiredSkillsScoresZero(t *testing.T) {
	tables := loadTables(t)
	req := &types.JobRequirement{Role: "software engineer", Confidence: 1.0}
	cand := &types.CandidateRecord{CanonicalRole: "software engineer", Skills: []string{"python", "go"}}

	b := Score(tables, req, cand, Preferences{})

	assert.Equal(t, 0.0, b.Factor(types.FactorSkillMatch).Raw)
	assert.Empty(t, b.MatchedSkills)
}

func TestScore_SameFunctionPartialRoleMatch(t *testing.T) {
	tables := loadTables(t)
	req := engineerRequirement()
	cand := &types.CandidateRecord{CanonicalRole: "data engineer"}

	b := Score(tables, req, cand, Preferences{})

	assert.Equal(t, 0.4, b.Factor(types.FactorRoleMatch).Raw)
	assert.Equal(t, 0.0, b.Factor(types.FactorExactRoleBonus).Raw)
}

func TestScore_RoleResolvedFromTitleAlias(t *testing.T) {
	tables := loadTables(t)
	req := engineerRequirement()
	cand := &types.CandidateRecord{Title: "Backend Engineer"}

	b := Score(tables, req, cand, Preferences{})

	assert.Equal(t, 1.0, b.Factor(types.FactorRoleMatch).Raw)
}

func TestScore_ExactRoleBonusRequiresConfidence(t *testing.T) {
	tables := loadTables(t)
	req := engineerRequirement()
	req.Confidence = 0.6
	cand := &types.CandidateRecord{CanonicalRole: "software engineer"}

	b := Score(tables, req, cand, Preferences{})

	assert.Equal(t, 1.0, b.Factor(types.FactorRoleMatch).Raw)
	assert.Equal(t, 0.0, b.Factor(types.FactorExactRoleBonus).Raw)
}

func TestScore_AdjacentSeniority(t *testing.T) {
	tables := loadTables(t)
	req := engineerRequirement()
	cand := &types.CandidateRecord{CanonicalRole: "software engineer", Seniority: "lead"}

	b := Score(tables, req, cand, Preferences{})

	assert.Equal(t, 0.5, b.Factor(types.FactorSeniorityBonus).Raw)
}

func TestScore_MissingFieldsNeverPanic(t *testing.T) {
	tables := loadTables(t)
	req := &types.JobRequirement{}
	cand := &types.CandidateRecord{}

	b := Score(tables, req, cand, Preferences{})

	assert.Equal(t, 0.0, b.Total)
	for _, f := range b.Factors {
		assert.Equal(t, 0.0, f.Raw, f.Factor)
	}
}

func TestScore_IndustryFractionOfCandidateTags(t *testing.T) {
	tables := loadTables(t)
	req := &types.JobRequirement{Role: "software engineer", Confidence: 1.0}
	cand := &types.CandidateRecord{
		CanonicalRole: "software engineer",
		IndustryTags:  []string{"fintech", "gaming"},
	}

	b := Score(tables, req, cand, Preferences{Industries: []string{"fintech"}})

	assert.Equal(t, 0.5, b.Factor(types.FactorIndustryMatch).Raw)
}

func TestScore_IndustryFallsBackToCompanyTable(t *testing.T) {
	tables := loadTables(t)
	req := &types.JobRequirement{Role: "software engineer", Confidence: 1.0}
	cand := &types.CandidateRecord{CanonicalRole: "software engineer", Company: "Stripe"}

	b := Score(tables, req, cand, Preferences{Industries: []string{"fintech", "payments", "saas"}})

	assert.Equal(t, 1.0, b.Factor(types.FactorIndustryMatch).Raw)
}
