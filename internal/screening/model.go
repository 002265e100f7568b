package screening

import (
	"time"

	"screening-backend/internal/matching"
)

// Run statuses.
const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// ResumeRef points a run at one resume: either a stored resume by ID or
// inline text supplied with the request.
type ResumeRef struct {
	ResumeID    string `json:"resume_id,omitempty"`
	CandidateID string `json:"candidate_id,omitempty"`
	Text        string `json:"text,omitempty"`
}

// RunResult is the outcome of a completed run.
type RunResult struct {
	Requirements    matching.JobRequirements `json:"job_requirements"`
	Candidates      []matching.Candidate     `json:"ranked_candidates"`
	TotalCandidates int                      `json:"total_candidates"`
	CacheHits       int                      `json:"cache_hits"`
}

// Run is one screening job: a job description matched against a batch of
// resumes, with a queued→processing→completed/failed lifecycle.
type Run struct {
	ID             string      `json:"id"`
	JobDescription string      `json:"jobDescription"`
	Resumes        []ResumeRef `json:"resumes"`
	Provider       string      `json:"provider"`
	Model          string      `json:"model"`
	Status         string      `json:"status"`
	Result         *RunResult  `json:"result,omitempty"`
	ErrorCode      string      `json:"errorCode,omitempty"`
	ErrorMessage   *string     `json:"errorMessage,omitempty"`
	ErrorRetryable bool        `json:"errorRetryable,omitempty"`
	StartedAt      *time.Time  `json:"startedAt,omitempty"`
	CompletedAt    *time.Time  `json:"completedAt,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}
