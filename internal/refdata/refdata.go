// Package refdata provides the static reference tables used by matching:
// role vocabularies, title aliases, company industry tags, and the gazetteer.
// Tables are loaded once at startup into read-only structures and are safe to
// share across concurrent matching calls.
package refdata

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed *.json
var dataFiles embed.FS

// Data file names. A directory passed to Load may override any subset;
// missing files fall back to the embedded defaults.
const (
	rolesFile      = "roles.json"
	aliasesFile    = "title_aliases.json"
	industriesFile = "company_industries.json"
	gazetteerFile  = "gazetteer.json"
)

// RoleKeyword is one piece of bag-of-words evidence for a role, with its weight.
type RoleKeyword struct {
	Text   string `json:"text"`
	Weight int    `json:"weight"`
}

// RoleProfile describes one canonical role: its function family, the skill and
// platform vocabularies used for requirement extraction and scoring, the literal
// title phrases that identify it, and weighted content keywords.
type RoleProfile struct {
	Function  string        `json:"function"`
	Skills    []string      `json:"skills"`
	Platforms []string      `json:"platforms"`
	Titles    []string      `json:"titles"`
	Keywords  []RoleKeyword `json:"keywords,omitempty"`
}

// Place is one gazetteer entry. Neighbors lists cities declared close enough to
// count as "nearby" even across a country border.
type Place struct {
	City      string   `json:"city"`
	Region    string   `json:"region,omitempty"`
	Country   string   `json:"country"`
	Neighbors []string `json:"neighbors,omitempty"`
}

type gazetteerDoc struct {
	Places         []Place             `json:"places"`
	CountryAliases map[string][]string `json:"country_aliases,omitempty"`
}

// Tables holds all reference data. Construct with Load or LoadEmbedded; the
// zero value is not usable.
type Tables struct {
	roles      map[string]RoleProfile // canonical role -> profile
	aliases    map[string]string      // lowercased alias -> canonical role
	industries map[string][]string    // lowercased company -> industry tags
	places     map[string]Place       // lowercased city -> place
	countries  map[string]string      // lowercased country alias -> canonical country

	allSkills    []string
	allPlatforms []string
}

// LoadEmbedded builds Tables from the embedded default data files.
func LoadEmbedded() (*Tables, error) {
	return Load("")
}

// Load builds Tables from JSON files in dir. Files absent from dir (or an empty
// dir) fall back to the embedded defaults. Every file is validated against its
// schema before use.
func Load(dir string) (*Tables, error) {
	t := &Tables{
		roles:      make(map[string]RoleProfile),
		aliases:    make(map[string]string),
		industries: make(map[string][]string),
		places:     make(map[string]Place),
		countries:  make(map[string]string),
	}

	if err := loadInto(dir, rolesFile, &t.roles); err != nil {
		return nil, err
	}
	var rawAliases map[string]string
	if err := loadInto(dir, aliasesFile, &rawAliases); err != nil {
		return nil, err
	}
	var rawIndustries map[string][]string
	if err := loadInto(dir, industriesFile, &rawIndustries); err != nil {
		return nil, err
	}
	var gaz gazetteerDoc
	if err := loadInto(dir, gazetteerFile, &gaz); err != nil {
		return nil, err
	}

	for alias, role := range rawAliases {
		t.aliases[strings.ToLower(alias)] = role
	}
	for company, tags := range rawIndustries {
		t.industries[strings.ToLower(company)] = tags
	}
	for _, p := range gaz.Places {
		t.places[strings.ToLower(p.City)] = p
		t.countries[strings.ToLower(p.Country)] = p.Country
	}
	for canonical, aliasList := range gaz.CountryAliases {
		t.countries[strings.ToLower(canonical)] = canonical
		for _, a := range aliasList {
			t.countries[strings.ToLower(a)] = canonical
		}
	}

	// Master skill/platform lists, deduplicated, for extraction scans.
	seenSkill := make(map[string]bool)
	seenPlatform := make(map[string]bool)
	for _, profile := range t.roles {
		for _, s := range profile.Skills {
			if key := strings.ToLower(s); !seenSkill[key] {
				seenSkill[key] = true
				t.allSkills = append(t.allSkills, s)
			}
		}
		for _, p := range profile.Platforms {
			if key := strings.ToLower(p); !seenPlatform[key] {
				seenPlatform[key] = true
				t.allPlatforms = append(t.allPlatforms, p)
			}
		}
	}

	// Map iteration order is random; keep the master lists in a fixed order so
	// downstream scans are deterministic across processes.
	sort.Strings(t.allSkills)
	sort.Strings(t.allPlatforms)

	if len(t.roles) == 0 {
		return nil, fmt.Errorf("refdata: no roles loaded")
	}
	return t, nil
}

// loadInto reads one data file (directory override first, embedded fallback),
// validates it against its schema, and unmarshals into out.
func loadInto(dir, name string, out any) error {
	data, err := readDataFile(dir, name)
	if err != nil {
		return err
	}
	if err := validateFile(name, data); err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("refdata: parse %s: %w", name, err)
	}
	return nil
}

func readDataFile(dir, name string) ([]byte, error) {
	if dir != "" {
		path := filepath.Join(dir, name)
		if data, err := os.ReadFile(path); err == nil {
			return data, nil
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("refdata: read %s: %w", path, err)
		}
	}
	data, err := dataFiles.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("refdata: embedded %s: %w", name, err)
	}
	return data, nil
}

// Role returns the profile for a canonical role.
func (t *Tables) Role(name string) (RoleProfile, bool) {
	p, ok := t.roles[name]
	return p, ok
}

// Roles returns the canonical role names.
func (t *Tables) Roles() []string {
	names := make([]string, 0, len(t.roles))
	for name := range t.roles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Aliases returns the alias table (lowercased alias -> canonical role).
func (t *Tables) Aliases() map[string]string {
	return t.aliases
}

// CanonicalRole resolves a raw title string to a canonical role via the alias
// table. The match is case-insensitive and exact.
func (t *Tables) CanonicalRole(title string) (string, bool) {
	role, ok := t.aliases[strings.ToLower(strings.TrimSpace(title))]
	return role, ok
}

// CompanyIndustries returns the industry tags for a company, or nil.
func (t *Tables) CompanyIndustries(company string) []string {
	return t.industries[strings.ToLower(strings.TrimSpace(company))]
}

// Companies returns the lowercased company names with industry tags.
func (t *Tables) Companies() []string {
	names := make([]string, 0, len(t.industries))
	for name := range t.industries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Cities returns the lowercased gazetteer city names in sorted order.
func (t *Tables) Cities() []string {
	names := make([]string, 0, len(t.places))
	for name := range t.places {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FindPlace looks up a city in the gazetteer, case-insensitively.
func (t *Tables) FindPlace(city string) (Place, bool) {
	p, ok := t.places[strings.ToLower(strings.TrimSpace(city))]
	return p, ok
}

// KnownPlace reports whether text names a gazetteer city, region, or country.
func (t *Tables) KnownPlace(text string) bool {
	key := strings.ToLower(strings.TrimSpace(text))
	if key == "" {
		return false
	}
	if _, ok := t.places[key]; ok {
		return true
	}
	if _, ok := t.countries[key]; ok {
		return true
	}
	for _, p := range t.places {
		if strings.EqualFold(p.Region, key) {
			return true
		}
	}
	return false
}

// CanonicalCountry resolves a country name or alias ("UK", "England") to its
// canonical form. Returns the input unchanged when unknown.
func (t *Tables) CanonicalCountry(name string) string {
	if c, ok := t.countries[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c
	}
	return strings.TrimSpace(name)
}

// Neighbors reports whether b is a declared neighbor of city a.
func (t *Tables) Neighbors(a, b string) bool {
	place, ok := t.FindPlace(a)
	if !ok {
		return false
	}
	for _, n := range place.Neighbors {
		if strings.EqualFold(n, b) {
			return true
		}
	}
	return false
}

// AllSkills returns the master skill vocabulary across all roles.
func (t *Tables) AllSkills() []string {
	return t.allSkills
}

// AllPlatforms returns the master platform vocabulary across all roles.
func (t *Tables) AllPlatforms() []string {
	return t.allPlatforms
}
