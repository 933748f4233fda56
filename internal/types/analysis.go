//nolint:revive // types is a standard Go package name pattern
package types

// AIAnalysisResult is the structured match analysis produced for a job description and resume.
// It is stored as a JSON blob on the job application.
type AIAnalysisResult struct {
	JobSummary      string   `json:"job_summary"`
	RequiredSkills  []string `json:"required_skills"`
	ResumeSkills    []string `json:"resume_skills"`
	SkillGap        []string `json:"skill_gap"`
	MatchScore      int      `json:"match_score"`
	PreparationTips []string `json:"preparation_tips"`
}

// Job application statuses. The set is open-ended; these are the values the service writes.
const (
	StatusPending  = "pending"
	StatusAnalyzed = "analyzed"
	StatusApplied  = "applied"
	StatusRejected = "rejected"
)
