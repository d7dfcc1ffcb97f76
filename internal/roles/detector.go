// Package roles resolves canonical roles from extraction evidence.
package roles

import (
	"math"
	"sort"

	"github.com/jonathan/referral-matcher/internal/types"
)

// maxAlternatives is the number of runner-up roles reported on a detection.
const maxAlternatives = 3

// Evidence accumulates per-role match evidence during extraction. Title-phrase
// evidence additionally records the phrase length, which is used to break ties
// between roles with equal scores (the more specific phrase wins).
type Evidence struct {
	scores       map[string]int
	longestTitle map[string]int
}

// NewEvidence returns an empty evidence accumulator.
func NewEvidence() *Evidence {
	return &Evidence{
		scores:       make(map[string]int),
		longestTitle: make(map[string]int),
	}
}

// Add records keyword evidence for a role.
func (e *Evidence) Add(role string, weight int) {
	if role == "" || weight <= 0 {
		return
	}
	e.scores[role] += weight
}

// AddTitle records a literal title-phrase match for a role.
func (e *Evidence) AddTitle(role string, weight int, phrase string) {
	e.Add(role, weight)
	if len(phrase) > e.longestTitle[role] {
		e.longestTitle[role] = len(phrase)
	}
}

// Score returns the accumulated evidence for a role.
func (e *Evidence) Score(role string) int {
	return e.scores[role]
}

// Empty reports whether no evidence was recorded.
func (e *Evidence) Empty() bool {
	return len(e.scores) == 0
}

// Detection is the outcome of role resolution. A zero-Confidence detection
// with an empty Role is the valid "role unknown" result, never an error.
type Detection struct {
	Role         string
	Confidence   float64
	Alternatives []types.RoleCandidate
}

// Detect resolves the best-matching role from evidence. Confidence is the
// winner's share of the total evidence mass, capped at 1.0. Ties on score are
// broken by the longest literal title match, then by role name so the result
// is deterministic.
func Detect(e *Evidence) Detection {
	if e == nil || e.Empty() {
		return Detection{}
	}

	total := 0
	ranked := make([]string, 0, len(e.scores))
	for role, score := range e.scores {
		total += score
		ranked = append(ranked, role)
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if e.scores[a] != e.scores[b] {
			return e.scores[a] > e.scores[b]
		}
		if e.longestTitle[a] != e.longestTitle[b] {
			return e.longestTitle[a] > e.longestTitle[b]
		}
		return a < b
	})

	det := Detection{
		Role:       ranked[0],
		Confidence: confidence(e.scores[ranked[0]], total),
	}
	for _, role := range ranked[1:] {
		if len(det.Alternatives) == maxAlternatives {
			break
		}
		det.Alternatives = append(det.Alternatives, types.RoleCandidate{
			Role:       role,
			Confidence: confidence(e.scores[role], total),
		})
	}
	return det
}

func confidence(score, total int) float64 {
	if total <= 0 {
		return 0
	}
	c := float64(score) / float64(total)
	if c > 1.0 {
		c = 1.0
	}
	// Two decimal places keeps the value stable for display and comparison.
	return math.Round(c*100) / 100
}
