package report

import (
	"sort"

	"github.com/epicabdou/hse-inspector/internal/hazard"
)

// Section is one category's worth of hazards in presentation order.
type Section struct {
	Category hazard.Category
	Hazards  []hazard.Hazard
}

// Group buckets hazards by category. Sections are ordered
// lexicographically by category name so the output is deterministic and
// independent of input order; within a section the source order is
// preserved. Callers wanting severity emphasis apply visual weighting,
// not reordering.
func Group(hazards []hazard.Hazard) []Section {
	byCategory := make(map[hazard.Category][]hazard.Hazard)
	for _, h := range hazards {
		byCategory[h.Category] = append(byCategory[h.Category], h)
	}

	categories := make([]hazard.Category, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i] < categories[j]
	})

	sections := make([]Section, 0, len(categories))
	for _, c := range categories {
		sections = append(sections, Section{
			Category: c,
			Hazards:  byCategory[c],
		})
	}
	return sections
}

// Band classifies a risk score for display.
type Band string

const (
	BandLow      Band = "low"
	BandModerate Band = "moderate"
	BandElevated Band = "elevated"
	BandSevere   Band = "severe"
)

// RiskBand maps a 0-100 risk score onto a band using the 40/60/80
// thresholds.
func RiskBand(score int) Band {
	switch {
	case score < 40:
		return BandLow
	case score < 60:
		return BandModerate
	case score < 80:
		return BandElevated
	default:
		return BandSevere
	}
}

// ColorUnknownGrade is the neutral rendering for values outside the
// closed grade set.
const ColorUnknownGrade = "neutral"

// GradeColorKey is total over the grade set; unknown values render
// neutrally instead of failing.
func GradeColorKey(g hazard.Grade) string {
	switch g {
	case hazard.GradeA:
		return "green"
	case hazard.GradeB:
		return "lightgreen"
	case hazard.GradeC:
		return "yellow"
	case hazard.GradeD:
		return "orange"
	case hazard.GradeF:
		return "red"
	default:
		return ColorUnknownGrade
	}
}

// SeverityWeight orders severities for display emphasis and priority
// tie-breaks. Higher is more severe.
func SeverityWeight(s hazard.Severity) int {
	switch s {
	case hazard.SeverityCritical:
		return 4
	case hazard.SeverityHigh:
		return 3
	case hazard.SeverityMedium:
		return 2
	case hazard.SeverityLow:
		return 1
	default:
		return 0
	}
}
