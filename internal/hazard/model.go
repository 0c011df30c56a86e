package hazard

import "time"

// ProcessingStatus tracks server-side analysis progress. Transitions are
// one-directional: pending -> processing -> completed or failed.
type ProcessingStatus string

const (
	StatusPending    ProcessingStatus = "pending"
	StatusProcessing ProcessingStatus = "processing"
	StatusCompleted  ProcessingStatus = "completed"
	StatusFailed     ProcessingStatus = "failed"
)

// StatusRank orders statuses along the lifecycle so callers can reject
// regressions. Unknown statuses rank lowest.
func StatusRank(s ProcessingStatus) int {
	switch s {
	case StatusPending:
		return 1
	case StatusProcessing:
		return 2
	case StatusCompleted, StatusFailed:
		return 3
	default:
		return 0
	}
}

// Severity of a detected hazard.
type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityHigh     Severity = "High"
	SeverityMedium   Severity = "Medium"
	SeverityLow      Severity = "Low"
)

// Category is the closed set of hazard categories the service emits.
type Category string

const (
	CategoryPPE           Category = "PPE"
	CategoryFall          Category = "Fall"
	CategoryFire          Category = "Fire"
	CategoryElectrical    Category = "Electrical"
	CategoryChemical      Category = "Chemical"
	CategoryMachinery     Category = "Machinery"
	CategoryEnvironmental Category = "Environmental"
	CategoryOther         Category = "Other"
)

// Hazard is one detected safety issue.
type Hazard struct {
	ID                 string   `json:"id"`
	Description        string   `json:"description"`
	Location           string   `json:"location"`
	Category           Category `json:"category"`
	Severity           Severity `json:"severity"`
	ImmediateSolutions []string `json:"immediateSolutions"`
	LongTermSolutions  []string `json:"longTermSolutions"`
	Priority           int      `json:"priority"`
	EstimatedCost      string   `json:"estimatedCost,omitempty"`
	TimeToImplement    string   `json:"timeToImplement,omitempty"`
}

// Grade is the letter safety grade assigned by the service.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// OverallAssessment summarizes one completed inspection.
type OverallAssessment struct {
	RiskScore           int      `json:"riskScore"`
	SafetyGrade         Grade    `json:"safetyGrade"`
	TopPriorities       []string `json:"topPriorities"`
	ComplianceStandards []string `json:"complianceStandards,omitempty"`
}

// AnalysisMetadata is informational only.
type AnalysisMetadata struct {
	AnalysisTime string `json:"analysisTime,omitempty"`
	TokensUsed   int    `json:"tokensUsed,omitempty"`
	Confidence   int    `json:"confidence,omitempty"`
}

// AnalysisResult is the structured payload attached to a completed
// inspection.
type AnalysisResult struct {
	Hazards           []Hazard          `json:"hazards"`
	OverallAssessment OverallAssessment `json:"overallAssessment"`
	Metadata          *AnalysisMetadata `json:"metadata,omitempty"`
}

// Inspection is one submitted-and-tracked analysis request.
// HazardCount, RiskScore, SafetyGrade and AnalysisResults are populated
// only once ProcessingStatus is completed.
type Inspection struct {
	ID               string           `json:"id"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
	ImageURL         string           `json:"imageUrl,omitempty"`
	HazardCount      *int             `json:"hazardCount,omitempty"`
	RiskScore        *int             `json:"riskScore,omitempty"`
	SafetyGrade      *Grade           `json:"safetyGrade,omitempty"`
	AnalysisResults  *AnalysisResult  `json:"analysisResults,omitempty"`
	ProcessingStatus ProcessingStatus `json:"processingStatus"`
}

// Completed reports whether the inspection carries final results.
func (i *Inspection) Completed() bool {
	return i.ProcessingStatus == StatusCompleted
}

// Supersedes reports whether other may replace the receiver without
// regressing the status lifecycle.
func (i *Inspection) Supersedes(other *Inspection) bool {
	return StatusRank(i.ProcessingStatus) >= StatusRank(other.ProcessingStatus)
}
