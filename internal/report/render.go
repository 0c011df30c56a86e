package report

import (
	"fmt"
	"strings"

	"github.com/epicabdou/hse-inspector/internal/hazard"
)

// RenderText formats an analysis result for terminal output.
func RenderText(result *hazard.AnalysisResult) string {
	if result == nil {
		return "no analysis available\n"
	}

	var b strings.Builder

	assessment := result.OverallAssessment
	fmt.Fprintf(&b, "Overall: grade %s (%s), risk score %d (%s band)\n",
		assessment.SafetyGrade,
		GradeColorKey(assessment.SafetyGrade),
		assessment.RiskScore,
		RiskBand(assessment.RiskScore))

	if len(assessment.TopPriorities) > 0 {
		b.WriteString("Top priorities:\n")
		for i, p := range assessment.TopPriorities {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, p)
		}
	}
	if len(assessment.ComplianceStandards) > 0 {
		fmt.Fprintf(&b, "Compliance: %s\n", strings.Join(assessment.ComplianceStandards, ", "))
	}

	for _, section := range Group(result.Hazards) {
		fmt.Fprintf(&b, "\n[%s] %d hazard(s)\n", section.Category, len(section.Hazards))
		for _, h := range section.Hazards {
			fmt.Fprintf(&b, "  - (%s, priority %d) %s", h.Severity, h.Priority, h.Description)
			if h.Location != "" {
				fmt.Fprintf(&b, " @ %s", h.Location)
			}
			b.WriteByte('\n')
			for _, s := range h.ImmediateSolutions {
				fmt.Fprintf(&b, "      now: %s\n", s)
			}
			for _, s := range h.LongTermSolutions {
				fmt.Fprintf(&b, "      later: %s\n", s)
			}
			if h.EstimatedCost != "" {
				fmt.Fprintf(&b, "      cost: %s\n", h.EstimatedCost)
			}
			if h.TimeToImplement != "" {
				fmt.Fprintf(&b, "      timeline: %s\n", h.TimeToImplement)
			}
		}
	}

	if result.Metadata != nil && result.Metadata.Confidence > 0 {
		fmt.Fprintf(&b, "\nConfidence: %d%%\n", result.Metadata.Confidence)
	}

	return b.String()
}
