package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/referral-matcher/internal/refdata"
)

func loadTables(t *testing.T) *refdata.Tables {
	t.Helper()
	tables, err := refdata.LoadEmbedded()
	require.NoError(t, err)
	return tables
}

func TestExtractRequirements_SeniorSoftwareEngineer(t *testing.T) {
	tables := loadTables(t)

	req := ExtractRequirements(tables, "Senior Software Engineer — Python, AWS, Docker", "")

	assert.Equal(t, "software engineer", req.Role)
	assert.Greater(t, req.Confidence, 0.0)
	assert.Equal(t, "senior", req.Seniority)
	assert.Contains(t, req.Skills, "python")
	assert.Contains(t, req.Platforms, "aws")
	assert.Contains(t, req.Platforms, "docker")
}

func TestExtractRequirements_NoRoleEvidence(t *testing.T) {
	tables := loadTables(t)

	req := ExtractRequirements(tables, "We sell artisanal cheese wheels to discerning households.", "")

	assert.False(t, req.RoleKnown())
	assert.Equal(t, "", req.Role)
	assert.Equal(t, 0.0, req.Confidence)
	assert.Empty(t, req.Alternatives)
}

func TestExtractRequirements_RoleOverride(t *testing.T) {
	tables := loadTables(t)

	req := ExtractRequirements(tables, "Completely unrelated text about cheese.", "Data Scientist")

	assert.Equal(t, "data scientist", req.Role)
	assert.Equal(t, 1.0, req.Confidence)
	assert.Empty(t, req.Alternatives)
}

func TestExtractRequirements_OverrideViaAlias(t *testing.T) {
	tables := loadTables(t)

	req := ExtractRequirements(tables, "Some text.", "SRE")

	assert.Equal(t, "devops engineer", req.Role)
	assert.Equal(t, 1.0, req.Confidence)
}

func TestExtractRequirements_AliasDetection(t *testing.T) {
	tables := loadTables(t)

	req := ExtractRequirements(tables, "We need an SDR to build our outbound pipeline.", "")

	assert.Equal(t, "sales development representative", req.Role)
}

func TestExtractRequirements_HiringCompany(t *testing.T) {
	tables := loadTables(t)

	req := ExtractRequirements(tables, "Join Stripe as a Senior Software Engineer working on payments infrastructure in Python.", "")

	assert.Equal(t, "stripe", req.Company)
	assert.NotEmpty(t, req.IndustryTags)
}

func TestExtractRequirements_HiringContextBeatsMention(t *testing.T) {
	tables := loadTables(t)

	text := "Software Engineer at Shopify. Experience integrating with Stripe APIs is a plus."
	req := ExtractRequirements(tables, text, "")

	assert.Equal(t, "shopify", req.Company)
}

func TestExtractRequirements_Deterministic(t *testing.T) {
	tables := loadTables(t)
	text := "Senior Software Engineer — Python, AWS, Docker, Kubernetes, Terraform at Stripe"

	first := ExtractRequirements(tables, text, "")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ExtractRequirements(tables, text, ""))
	}
}

func TestExtractRequirements_SkillVariants(t *testing.T) {
	tables := loadTables(t)

	req := ExtractRequirements(tables, "Software Engineer with golang and k8s experience", "")

	assert.Contains(t, req.Skills, "go")
	assert.Contains(t, req.Platforms, "kubernetes")
}
