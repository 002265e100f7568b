package matching

// Package matching holds the deterministic candidate-evaluation core:
// value types for job requirements and resume signals, the risk rules,
// the six-dimension scorer, the explainer and the ranker. Everything in
// this package is pure; no I/O, no globals beyond rule tables.

// YearsOfExperience is the experience band stated (or implied) by a job
// description. Min drives scoring; Max and Total are informational.
type YearsOfExperience struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Total float64 `json:"total"`
}

// JobRequirements is the structured form of a job description.
type JobRequirements struct {
	MustHaveSkills    []string          `json:"must_have_skills"`
	NiceToHaveSkills  []string          `json:"nice_to_have_skills"`
	YearsOfExperience YearsOfExperience `json:"years_of_experience"`
	DomainKeywords    []string          `json:"domain_keywords"`
	RoleSeniority     string            `json:"role_seniority"`
	Education         string            `json:"education"`
	Certifications    []string          `json:"certifications"`
}

// SkillClaim is a skill the resume claims, with the surrounding evidence
// text the extractor captured for it.
type SkillClaim struct {
	Skill   string `json:"skill"`
	Context string `json:"context"`
}

// Position is one role in the candidate's work history, most recent first.
type Position struct {
	Role     string  `json:"role"`
	Company  string  `json:"company"`
	Duration string  `json:"duration"`
	Years    float64 `json:"years"`
}

// ExperienceDuration summarizes the candidate's work history length.
type ExperienceDuration struct {
	TotalYears  float64    `json:"total_years"`
	RecentYears float64    `json:"recent_years"`
	Positions   []Position `json:"positions"`
}

// Project is a named piece of work with a stated impact.
type Project struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
}

// RecencyIndicators describe how current the candidate's experience is.
type RecencyIndicators struct {
	HasRecentExperience bool `json:"has_recent_experience"`
	MostRecentRoleYear  int  `json:"most_recent_role_year"`
}

// ResumeSignals is the structured form of a resume.
type ResumeSignals struct {
	Skills             []SkillClaim       `json:"skills"`
	ExperienceDuration ExperienceDuration `json:"experience_duration"`
	Projects           []Project          `json:"projects"`
	MeasurableOutcomes []string           `json:"measurable_outcomes"`
	RecencyIndicators  RecencyIndicators  `json:"recency_indicators"`
	DomainExperience   []string           `json:"domain_experience"`
	Education          string             `json:"education"`
	Certifications     []string           `json:"certifications"`
}

// RiskFlag is one detected credibility or fit concern.
type RiskFlag struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Penalty     int    `json:"penalty"`
}

// RiskReport is the immutable result of running all risk rules once.
// TotalPenalty is the capped aggregate, not the sum of the flags.
type RiskReport struct {
	Flags        []RiskFlag `json:"flags"`
	TotalPenalty int        `json:"total_penalty"`
}

// SkillCoverageScore grades must-have skill coverage (max 30).
type SkillCoverageScore struct {
	Score         float64  `json:"score"`
	MaxScore      int      `json:"max_score"`
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
	MatchRate     string   `json:"match_rate"`
	Details       string   `json:"details"`
}

// ExperienceDepthScore grades years of experience against the requirement (max 20).
type ExperienceDepthScore struct {
	Score         float64 `json:"score"`
	MaxScore      int     `json:"max_score"`
	ResumeYears   float64 `json:"resume_years"`
	RequiredYears float64 `json:"required_years"`
	Details       string  `json:"details"`
}

// DomainRelevanceScore grades domain keyword overlap (max 15).
type DomainRelevanceScore struct {
	Score           float64  `json:"score"`
	MaxScore        int      `json:"max_score"`
	MatchedDomains  []string `json:"matched_domains"`
	RequiredDomains []string `json:"required_domains"`
	Details         string   `json:"details"`
}

// EvidenceQualityScore grades how well claims are backed up (max 15).
type EvidenceQualityScore struct {
	Score             float64 `json:"score"`
	MaxScore          int     `json:"max_score"`
	ProjectsCount     int     `json:"projects_count"`
	SkillsWithContext int     `json:"skills_with_context"`
	Details           string  `json:"details"`
}

// QuantificationScore grades measurable outcomes (max 10).
type QuantificationScore struct {
	Score          float64  `json:"score"`
	MaxScore       int      `json:"max_score"`
	OutcomesCount  int      `json:"outcomes_count"`
	SampleOutcomes []string `json:"sample_outcomes"`
	Details        string   `json:"details"`
}

// RecencyScore grades how current the experience is (max 10).
type RecencyScore struct {
	Score          float64 `json:"score"`
	MaxScore       int     `json:"max_score"`
	MostRecentYear int     `json:"most_recent_year"`
	Details        string  `json:"details"`
}

// ScoreBreakdown holds all six dimension scores.
type ScoreBreakdown struct {
	SkillCoverage   SkillCoverageScore   `json:"skill_coverage"`
	ExperienceDepth ExperienceDepthScore `json:"experience_depth"`
	DomainRelevance DomainRelevanceScore `json:"domain_relevance"`
	EvidenceQuality EvidenceQualityScore `json:"evidence_quality"`
	Quantification  QuantificationScore  `json:"quantification"`
	Recency         RecencyScore         `json:"recency"`
}

// ScoreResult is the full evaluation of one resume against one job.
type ScoreResult struct {
	FinalScore float64        `json:"final_score"`
	BaseScore  float64        `json:"base_score"`
	Penalty    int            `json:"penalty"`
	Breakdown  ScoreBreakdown `json:"breakdown"`
	RiskFlags  RiskReport     `json:"risk_flags"`
}

// Candidate is one ranked entry in a run result.
type Candidate struct {
	CandidateID    string        `json:"candidate_id"`
	ResumeText     string        `json:"resume_text,omitempty"`
	Signals        ResumeSignals `json:"resume_signals"`
	Score          ScoreResult   `json:"score_result"`
	FinalScore     float64       `json:"final_score"`
	Recommendation string        `json:"recommendation"`
	Explanation    string        `json:"explanation"`
	Summary        string        `json:"summary"`
	Rank           int           `json:"rank"`
}
