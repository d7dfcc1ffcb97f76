//nolint:revive // types is a standard Go package name pattern
package types

// JobRequirement is the structured requirement set extracted from a job description.
// It is created once per matching call and is immutable after construction.
//
// An empty Role with Confidence 0 is a valid outcome ("role unknown"), not an error.
type JobRequirement struct {
	Role         string          `json:"role"`
	Confidence   float64         `json:"confidence"`
	Alternatives []RoleCandidate `json:"alternatives,omitempty"`
	Skills       []string        `json:"skills"`
	Platforms    []string        `json:"platforms"`
	Seniority    string          `json:"seniority,omitempty"`
	Company      string          `json:"company,omitempty"`
	IndustryTags []string        `json:"industry_tags,omitempty"`
}

// RoleCandidate is an alternative role detection with its own confidence.
type RoleCandidate struct {
	Role       string  `json:"role"`
	Confidence float64 `json:"confidence"`
}

// RoleKnown reports whether a primary role was detected.
func (r *JobRequirement) RoleKnown() bool {
	return r.Role != ""
}
