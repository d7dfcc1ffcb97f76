package enrich

import (
	"regexp"
	"strings"

	"github.com/jonathan/referral-matcher/internal/parsing"
	"github.com/jonathan/referral-matcher/internal/refdata"
)

// labeledPatterns match text that explicitly announces a location. A hit here
// is strong evidence even when the place is missing from the gazetteer.
// capWords matches a run of one to three capitalized words, optionally
// followed by a comma and another such run ("Cork", "New York, United States").
const capWords = `[A-Z][a-zA-Z.'-]*(?:\s+[A-Z][a-zA-Z.'-]*){0,2}`

var labeledPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)location:\s*([^|•·\n]+)`),
	regexp.MustCompile(`[Bb]ased in\s+(` + capWords + `(?:,\s*` + capWords + `)?)`),
	regexp.MustCompile(`[Ll]ocated in\s+(` + capWords + `(?:,\s*` + capWords + `)?)`),
}

// separatorPattern splits profile-style titles ("Jane Doe - Engineer ·
// Dublin, Ireland | LinkedIn") into segments that may name a place.
var separatorPattern = regexp.MustCompile(`\s*[|•·]\s*|\s+-\s+`)

// rejectTerms disqualify an extracted phrase from being a place. Job titles,
// department names and award names follow the same text patterns as
// locations and are the dominant source of false positives.
var rejectTerms = []string{
	"engineer", "developer", "manager", "director", "analyst", "scientist",
	"consultant", "specialist", "recruiter", "representative", "executive",
	"department", "team", "division", "group",
	"award", "awards", "excellence", "winner",
	"university", "college", "institute", "school",
	"linkedin", "profile", "experience", "connections", "followers",
	"sales", "marketing", "engineering", "finance", "operations",
	"remote", "hybrid",
}

// looksLikePlace applies shape checks to a phrase: one to three words,
// letters only, no disqualifying vocabulary. Used for labeled-pattern hits
// that the gazetteer does not know.
func looksLikePlace(phrase string) bool {
	words := strings.Fields(phrase)
	if len(words) == 0 || len(words) > 3 {
		return false
	}
	lower := strings.ToLower(phrase)
	for _, term := range rejectTerms {
		if parsing.ContainsPhrase(lower, term) {
			return false
		}
	}
	for _, w := range words {
		for _, r := range w {
			if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '.' || r == '-' || r == '\'') {
				return false
			}
		}
	}
	return true
}

// placeMatch is a validated location candidate extracted from search text.
type placeMatch struct {
	City       string
	Region     string
	Country    string
	Confidence float64
	Strategy   string
}

// validatePhrase checks one extracted phrase against the gazetteer. The
// phrase may be "City" or "City, Country"; labeled indicates it came from an
// explicit location pattern, which permits a lower-confidence accept when the
// gazetteer has no entry.
func validatePhrase(tables *refdata.Tables, phrase string, labeled bool) (placeMatch, bool) {
	phrase = strings.Trim(strings.TrimSpace(phrase), ".,;:")
	if phrase == "" {
		return placeMatch{}, false
	}

	city := phrase
	country := ""
	if idx := strings.Index(phrase, ","); idx >= 0 {
		city = strings.TrimSpace(phrase[:idx])
		country = strings.TrimSpace(phrase[idx+1:])
	}

	lower := strings.ToLower(city)
	for _, term := range rejectTerms {
		if parsing.ContainsPhrase(lower, term) {
			return placeMatch{}, false
		}
	}

	if place, ok := tables.FindPlace(city); ok {
		return placeMatch{
			City:       place.City,
			Region:     place.Region,
			Country:    place.Country,
			Confidence: 0.9,
		}, true
	}
	if labeled && looksLikePlace(city) {
		return placeMatch{
			City:       city,
			Country:    tables.CanonicalCountry(country),
			Confidence: 0.5,
		}, true
	}
	return placeMatch{}, false
}

// extractionStrategy names one way of pulling location candidates out of
// result text. Strategies run in order; the first validated hit wins.
type extractionStrategy struct {
	name    string
	labeled bool
	extract func(text string) []string
}

var strategies = []extractionStrategy{
	{
		name:    "labeled-pattern",
		labeled: true,
		extract: func(text string) []string {
			var out []string
			for _, re := range labeledPatterns {
				for _, m := range re.FindAllStringSubmatch(text, -1) {
					out = append(out, m[1])
				}
			}
			return out
		},
	},
	{
		name:    "separator-segment",
		labeled: false,
		extract: func(text string) []string {
			return separatorPattern.Split(text, -1)
		},
	},
}

// ExtractLocation scans search results for a plausible candidate location.
// Only results that mention both the candidate's name and company are
// considered; a result about a different person is worse than no result.
func ExtractLocation(tables *refdata.Tables, results []SearchResult, name, company string) (placeMatch, bool) {
	for _, result := range results {
		text := result.Title + " " + result.Snippet
		if !mentionsPerson(text, name, company) {
			continue
		}
		for _, strategy := range strategies {
			for _, phrase := range strategy.extract(text) {
				if match, ok := validatePhrase(tables, phrase, strategy.labeled); ok {
					match.Strategy = strategy.name
					return match, true
				}
			}
		}
		// Last resort: a bare gazetteer city mentioned anywhere in the text.
		lower := strings.ToLower(text)
		for _, city := range tables.Cities() {
			if parsing.ContainsPhrase(lower, city) {
				place, _ := tables.FindPlace(city)
				return placeMatch{
					City:       place.City,
					Region:     place.Region,
					Country:    place.Country,
					Confidence: 0.7,
					Strategy:   "gazetteer-scan",
				}, true
			}
		}
	}
	return placeMatch{}, false
}

// mentionsPerson checks that the result text is about the right person: the
// candidate's name must appear, and the company too when one is known.
func mentionsPerson(text, name, company string) bool {
	lower := strings.ToLower(text)
	if name == "" || !strings.Contains(lower, strings.ToLower(name)) {
		return false
	}
	if company != "" && !strings.Contains(lower, strings.ToLower(company)) {
		return false
	}
	return true
}
