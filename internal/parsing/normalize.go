// Package parsing turns raw job-description text into a structured JobRequirement
// using the static reference tables. Extraction is deterministic: the same text
// always yields the same requirement.
package parsing

import "strings"

// skillNormalizations maps common skill name variants to the canonical
// vocabulary form used in the role tables (lowercase).
var skillNormalizations = map[string]string{
	"golang":                "go",
	"go lang":               "go",
	"js":                    "javascript",
	"ts":                    "typescript",
	"k8s":                   "kubernetes",
	"postgres":              "postgresql",
	"ml":                    "machine learning",
	"node":                  "node.js",
	"nodejs":                "node.js",
	"react.js":              "react",
	"reactjs":               "react",
	"vue.js":                "vue",
	"vuejs":                 "vue",
	"amazon web services":   "aws",
	"google cloud":          "gcp",
	"google cloud platform": "gcp",
	"ci cd":                 "ci/cd",
	"cicd":                  "ci/cd",
}

// NormalizeSkillName normalizes a skill or platform name to its canonical
// lowercase form. Returns "" for blank input.
func NormalizeSkillName(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return ""
	}
	if canonical, ok := skillNormalizations[normalized]; ok {
		return canonical
	}
	return normalized
}

// NormalizeSet normalizes and deduplicates a list of skill/platform names,
// preserving first-seen order.
func NormalizeSet(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		normalized := NormalizeSkillName(n)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		out = append(out, normalized)
	}
	return out
}
