package refdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	tables, err := LoadEmbedded()
	require.NoError(t, err)

	assert.NotEmpty(t, tables.Roles())
	assert.NotEmpty(t, tables.AllSkills())
	assert.NotEmpty(t, tables.AllPlatforms())
	assert.NotEmpty(t, tables.Cities())
}

func TestTables_RoleLookup(t *testing.T) {
	tables, err := LoadEmbedded()
	require.NoError(t, err)

	profile, ok := tables.Role("software engineer")
	require.True(t, ok)
	assert.Equal(t, "engineering", profile.Function)
	assert.Contains(t, profile.Skills, "python")

	_, ok = tables.Role("underwater basket weaver")
	assert.False(t, ok)
}

func TestTables_CanonicalRole(t *testing.T) {
	tables, err := LoadEmbedded()
	require.NoError(t, err)

	role, ok := tables.CanonicalRole("  Backend Engineer ")
	require.True(t, ok)
	assert.Equal(t, "software engineer", role)

	role, ok = tables.CanonicalRole("SRE")
	require.True(t, ok)
	assert.Equal(t, "devops engineer", role)
}

func TestTables_Gazetteer(t *testing.T) {
	tables, err := LoadEmbedded()
	require.NoError(t, err)

	place, ok := tables.FindPlace("dublin")
	require.True(t, ok)
	assert.Equal(t, "Ireland", place.Country)
	assert.Contains(t, place.Neighbors, "Bray")

	assert.True(t, tables.Neighbors("Dublin", "Bray"))
	assert.False(t, tables.Neighbors("Dublin", "Cork"))
	assert.Equal(t, "United Kingdom", tables.CanonicalCountry("UK"))
	assert.Equal(t, "Atlantis", tables.CanonicalCountry("Atlantis"))
}

func TestTables_KnownPlace(t *testing.T) {
	tables, err := LoadEmbedded()
	require.NoError(t, err)

	assert.True(t, tables.KnownPlace("Dublin"))
	assert.True(t, tables.KnownPlace("Ireland"))
	assert.False(t, tables.KnownPlace("Engineering Department"))
	assert.False(t, tables.KnownPlace(""))
}

func TestTables_CompanyIndustries(t *testing.T) {
	tables, err := LoadEmbedded()
	require.NoError(t, err)

	tags := tables.CompanyIndustries("Stripe")
	assert.Contains(t, tags, "fintech")
	assert.Nil(t, tables.CompanyIndustries("Unknown Co"))
}

func TestLoad_DirOverride(t *testing.T) {
	dir := t.TempDir()
	override := `{
		"carpenter": {
			"function": "trades",
			"skills": ["joinery"],
			"platforms": [],
			"titles": ["carpenter"],
			"keywords": [{"text": "woodwork", "weight": 2}]
		}
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, rolesFile), []byte(override), 0644))

	tables, err := Load(dir)
	require.NoError(t, err)

	// Overridden file wins; the other tables still come from the embedded data.
	_, ok := tables.Role("carpenter")
	assert.True(t, ok)
	_, ok = tables.Role("software engineer")
	assert.False(t, ok)
	assert.True(t, tables.KnownPlace("Dublin"))
}

func TestLoad_SchemaValidationRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	bad := `{"carpenter": {"skills": "not-a-list"}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, rolesFile), []byte(bad), 0644))

	_, err := Load(dir)
	require.Error(t, err)
	var schemaErr *SchemaError
	assert.ErrorAs(t, err, &schemaErr)
}

func TestAllSkills_SortedAndDeduped(t *testing.T) {
	tables, err := LoadEmbedded()
	require.NoError(t, err)

	skills := tables.AllSkills()
	seen := make(map[string]bool)
	for i, s := range skills {
		assert.False(t, seen[s], s)
		seen[s] = true
		if i > 0 {
			assert.LessOrEqual(t, skills[i-1], s)
		}
	}
}
