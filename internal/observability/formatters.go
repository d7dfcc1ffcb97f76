// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/referral-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRequirement outputs a human-readable summary of the extracted job requirement.
func (p *Printer) PrintRequirement(req *types.JobRequirement) {
	if req == nil {
		return
	}

	var sb strings.Builder

	role := req.Role
	if role == "" {
		role = "(unknown)"
	}
	sb.WriteString(fmt.Sprintf("Role:       %s (confidence %.2f)\n", role, req.Confidence))
	if req.Seniority != "" {
		sb.WriteString(fmt.Sprintf("Seniority:  %s\n", req.Seniority))
	}
	if req.Company != "" {
		sb.WriteString(fmt.Sprintf("Company:    %s\n", req.Company))
	}
	if len(req.IndustryTags) > 0 {
		sb.WriteString(fmt.Sprintf("Industries: %s\n", strings.Join(req.IndustryTags, ", ")))
	}

	if len(req.Skills) > 0 {
		sb.WriteString("\nRequired skills:\n")
		count := min(len(req.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", req.Skills[i]))
		}
		if len(req.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(req.Skills)-maxItemsToShow))
		}
	}
	if len(req.Platforms) > 0 {
		sb.WriteString(fmt.Sprintf("\nPlatforms: %s\n", strings.Join(req.Platforms, ", ")))
	}

	if len(req.Alternatives) > 0 {
		sb.WriteString("\nAlternative roles:\n")
		for _, alt := range req.Alternatives {
			sb.WriteString(fmt.Sprintf("  • %s (%.2f)\n", alt.Role, alt.Confidence))
		}
	}

	p.printBox("EXTRACTED REQUIREMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRanked outputs the top ranked candidates with scores and matched skills.
func (p *Printer) PrintRanked(ranked []types.ScoredCandidate) {
	if len(ranked) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(ranked), maxItemsToShow)
	for i := 0; i < count; i++ {
		c := ranked[i]
		sb.WriteString(fmt.Sprintf("%d. %s — %s (%.2f)\n", c.Rank, c.Candidate.Name, c.Candidate.Company, c.Breakdown.Total))
		if len(c.Breakdown.MatchedSkills) > 0 {
			sb.WriteString(fmt.Sprintf("   skills: %s\n", strings.Join(c.Breakdown.MatchedSkills, ", ")))
		}
		if c.Breakdown.Notes != "" {
			sb.WriteString(fmt.Sprintf("   %s\n", c.Breakdown.Notes))
		}
	}
	if len(ranked) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(ranked)-maxItemsToShow))
	}

	p.printBox("TOP CANDIDATES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBuckets outputs the location bucket summary in display order.
func (p *Printer) PrintBuckets(buckets map[types.LocationBucket][]types.ScoredCandidate) {
	if len(buckets) == 0 {
		return
	}

	var sb strings.Builder
	for _, bucket := range types.Buckets() {
		members := buckets[bucket]
		if len(members) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s (%d):\n", bucket, len(members)))
		count := min(len(members), 3)
		for i := 0; i < count; i++ {
			c := members[i]
			loc := ""
			if c.Resolution.Resolved() {
				loc = fmt.Sprintf(" — %s", c.Resolution.City)
			}
			sb.WriteString(fmt.Sprintf("  • %s%s\n", c.Candidate.Name, loc))
		}
		if len(members) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(members)-3))
		}
	}

	p.printBox("LOCATION BUCKETS", strings.TrimSuffix(sb.String(), "\n"))
}
