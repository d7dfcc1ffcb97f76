package parsing

import (
	"sort"
	"strings"

	"github.com/jonathan/referral-matcher/internal/refdata"
	"github.com/jonathan/referral-matcher/internal/roles"
	"github.com/jonathan/referral-matcher/internal/types"
)

// Evidence weights for role detection. A literal title from a role profile is
// the strongest signal; an alias hit is weaker because aliases are short and
// shared across adjacent roles.
const (
	profileTitleWeight = 5
	aliasTitleWeight   = 3
)

// maxGeneralSkills caps the number of extracted skills that are not part of
// the detected role's own vocabulary. Long job posts mention tooling from
// every team; without a cap those mentions drown out the role's core skills.
const maxGeneralSkills = 10

// ExtractRequirements parses job-description text into a structured
// requirement. The roleOverride, when non-empty, pins the role with full
// confidence and skips detection; skills, platforms, seniority and company
// are still extracted from the text.
func ExtractRequirements(tables *refdata.Tables, text, roleOverride string) types.JobRequirement {
	textLower := strings.ToLower(text)

	var req types.JobRequirement
	if roleOverride != "" {
		req.Role = resolveOverride(tables, roleOverride)
		req.Confidence = 1.0
	} else {
		det := detectRole(tables, textLower)
		req.Role = det.Role
		req.Confidence = det.Confidence
		req.Alternatives = det.Alternatives
	}

	req.Skills = extractSkills(tables, textLower, req.Role)
	req.Platforms = matchVocabulary(textLower, tables.AllPlatforms())
	req.Seniority = DetectSeniority(textLower)
	req.Company = detectHiringCompany(tables, textLower)
	if req.Company != "" {
		req.IndustryTags = tables.CompanyIndustries(req.Company)
	}
	return req
}

// resolveOverride maps an override string to a canonical role. Unknown
// overrides are kept verbatim (lowercased) so a caller can pin roles the
// tables do not know yet.
func resolveOverride(tables *refdata.Tables, override string) string {
	if role, ok := tables.CanonicalRole(override); ok {
		return role
	}
	normalized := strings.ToLower(strings.TrimSpace(override))
	if _, ok := tables.Role(normalized); ok {
		return normalized
	}
	return normalized
}

func detectRole(tables *refdata.Tables, textLower string) roles.Detection {
	ev := roles.NewEvidence()

	for alias, role := range tables.Aliases() {
		if ContainsPhrase(textLower, alias) {
			ev.AddTitle(role, aliasTitleWeight, alias)
		}
	}

	for _, name := range tables.Roles() {
		profile, _ := tables.Role(name)
		for _, title := range profile.Titles {
			if ContainsPhrase(textLower, strings.ToLower(title)) {
				ev.AddTitle(name, profileTitleWeight, title)
			}
		}
		for _, kw := range profile.Keywords {
			if ContainsPhrase(textLower, strings.ToLower(kw.Text)) {
				ev.Add(name, kw.Weight)
			}
		}
		// Each role vocabulary hit is weak bag-of-words evidence.
		for _, s := range profile.Skills {
			if ContainsPhrase(textLower, strings.ToLower(s)) {
				ev.Add(name, 1)
			}
		}
		for _, p := range profile.Platforms {
			if ContainsPhrase(textLower, strings.ToLower(p)) {
				ev.Add(name, 1)
			}
		}
	}

	return roles.Detect(ev)
}

// extractSkills matches the master skill vocabulary against the text. When a
// role was detected, its own skills are listed first in profile order and the
// remaining matches are capped; with no role every match is kept in
// vocabulary order.
func extractSkills(tables *refdata.Tables, textLower, role string) []string {
	matched := make(map[string]bool)
	for _, skill := range tables.AllSkills() {
		if ContainsPhrase(textLower, strings.ToLower(skill)) {
			matched[NormalizeSkillName(skill)] = true
		}
	}
	// Variant spellings count as mentions of their canonical skill.
	for variant, canonical := range skillNormalizations {
		if !matched[canonical] && ContainsPhrase(textLower, variant) {
			matched[canonical] = true
		}
	}
	if len(matched) == 0 {
		return nil
	}

	var ordered []string
	if profile, ok := tables.Role(role); ok {
		for _, skill := range profile.Skills {
			key := NormalizeSkillName(skill)
			if matched[key] {
				ordered = append(ordered, key)
				delete(matched, key)
			}
		}
	}

	general := make([]string, 0, len(matched))
	for skill := range matched {
		general = append(general, skill)
	}
	sort.Strings(general)
	if len(general) > maxGeneralSkills {
		general = general[:maxGeneralSkills]
	}
	return append(ordered, general...)
}

func matchVocabulary(textLower string, vocab []string) []string {
	canonical := make(map[string]bool, len(vocab))
	var out []string
	for _, entry := range vocab {
		key := NormalizeSkillName(entry)
		canonical[key] = true
		if ContainsPhrase(textLower, strings.ToLower(entry)) {
			out = append(out, key)
		}
	}
	// Variant spellings count as mentions of their canonical form.
	var fromVariants []string
	for variant, canon := range skillNormalizations {
		if canonical[canon] && ContainsPhrase(textLower, variant) {
			fromVariants = append(fromVariants, canon)
		}
	}
	sort.Strings(fromVariants)
	return NormalizeSet(append(out, fromVariants...))
}

// hiringContexts are phrase templates that mark a company as the one doing
// the hiring rather than one merely mentioned in the text.
var hiringContexts = []string{
	"at %s",
	"join %s",
	"%s is hiring",
	"%s is looking for",
	"%s seeks",
}

// detectHiringCompany scans the known-company table for the company the post
// is hiring for. A company appearing inside a hiring phrase beats a plain
// mention; among equal signals the longest name wins so "meta platforms"
// beats "meta".
func detectHiringCompany(tables *refdata.Tables, textLower string) string {
	var contextual, mentioned []string
	for _, company := range tables.Companies() {
		if !ContainsPhrase(textLower, company) {
			continue
		}
		if inHiringContext(textLower, company) {
			contextual = append(contextual, company)
		} else {
			mentioned = append(mentioned, company)
		}
	}
	if pick := pickCompany(contextual); pick != "" {
		return pick
	}
	return pickCompany(mentioned)
}

func inHiringContext(textLower, company string) bool {
	for _, tmpl := range hiringContexts {
		phrase := strings.Replace(tmpl, "%s", company, 1)
		if ContainsPhrase(textLower, phrase) {
			return true
		}
	}
	return false
}

func pickCompany(names []string) string {
	if len(names) == 0 {
		return ""
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	return names[0]
}
