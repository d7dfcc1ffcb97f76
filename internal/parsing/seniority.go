package parsing

// Seniority levels, ordered from most junior to most senior. The order defines
// adjacency for the scoring engine's seniority bonus.
const (
	SeniorityJunior   = "junior"
	SenioritySenior   = "senior"
	SeniorityLead     = "lead"
	SeniorityManager  = "manager"
	SeniorityDirector = "director"
)

var seniorityRanks = map[string]int{
	SeniorityJunior:   0,
	SenioritySenior:   1,
	SeniorityLead:     2,
	SeniorityManager:  3,
	SeniorityDirector: 4,
}

// seniorityIndicators maps each level to its detection phrases. Levels are
// checked in this order; the first level with a hit wins, so the more specific
// signals (senior, lead, director) take precedence over the generic "manager".
var seniorityIndicators = []struct {
	level      string
	indicators []string
}{
	{SenioritySenior, []string{"senior", "sr.", "sr", "experienced", "expert"}},
	{SeniorityLead, []string{"lead", "principal", "staff"}},
	{SeniorityDirector, []string{"director", "head of", "vp", "vice president"}},
	{SeniorityManager, []string{"manager", "management"}},
	{SeniorityJunior, []string{"junior", "jr.", "jr", "entry level", "entry-level", "associate", "graduate"}},
}

// DetectSeniority scans lowercased text for seniority keywords. The first
// matching level wins; "" means no signal found.
func DetectSeniority(textLower string) string {
	for _, entry := range seniorityIndicators {
		for _, indicator := range entry.indicators {
			if ContainsPhrase(textLower, indicator) {
				return entry.level
			}
		}
	}
	return ""
}

// SeniorityDistance returns the ladder distance between two levels, or -1 when
// either level is unknown. A distance of 0 is an exact match and 1 an adjacent
// level.
func SeniorityDistance(a, b string) int {
	ra, okA := seniorityRanks[a]
	rb, okB := seniorityRanks[b]
	if !okA || !okB {
		return -1
	}
	if ra > rb {
		return ra - rb
	}
	return rb - ra
}
