// Package extraction turns free-form job descriptions and resumes into the
// structured requirement and signal types the matching core consumes. All
// structure comes from an LLM; malformed model output is an error here, never
// a silently empty result.
package extraction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"screening-backend/internal/llm"
	"screening-backend/internal/matching"
)

const maxMustHaveSkills = 10

var (
	// ErrEmptyInput is returned for blank job descriptions or resumes.
	ErrEmptyInput = errors.New("empty input text")
	// ErrNotConfigured is returned when no LLM provider is wired.
	ErrNotConfigured = llm.ErrNotConfigured
)

// Service extracts structured data via the configured LLM client.
type Service struct {
	client llm.Client
}

// NewService constructs an extraction service over the given client.
func NewService(client llm.Client) *Service {
	return &Service{client: client}
}

// Configured reports whether a real LLM provider backs this service.
// Callers use it to fail fast before starting per-resume work.
func (s *Service) Configured() bool {
	return llm.Configured(s.client)
}

// ParseJobDescription extracts structured requirements from a job description.
func (s *Service) ParseJobDescription(ctx context.Context, jdText string) (matching.JobRequirements, error) {
	if strings.TrimSpace(jdText) == "" {
		return matching.JobRequirements{}, fmt.Errorf("parse job description: %w", ErrEmptyInput)
	}

	raw, err := s.client.CompleteJSON(ctx, jdPrompt(jdText))
	if err != nil {
		return matching.JobRequirements{}, fmt.Errorf("parse job description: %w", err)
	}

	var req matching.JobRequirements
	if err := json.Unmarshal(raw, &req); err != nil {
		return matching.JobRequirements{}, fmt.Errorf("parse job description: decode requirements: %w", err)
	}

	normalizeRequirements(&req)
	return req, nil
}

// ExtractResumeSignals extracts structured signals from a resume.
func (s *Service) ExtractResumeSignals(ctx context.Context, resumeText string) (matching.ResumeSignals, error) {
	if strings.TrimSpace(resumeText) == "" {
		return matching.ResumeSignals{}, fmt.Errorf("extract resume signals: %w", ErrEmptyInput)
	}

	raw, err := s.client.CompleteJSON(ctx, resumePrompt(resumeText))
	if err != nil {
		return matching.ResumeSignals{}, fmt.Errorf("extract resume signals: %w", err)
	}

	var signals matching.ResumeSignals
	if err := json.Unmarshal(raw, &signals); err != nil {
		return matching.ResumeSignals{}, fmt.Errorf("extract resume signals: decode signals: %w", err)
	}

	normalizeSignals(&signals)
	return signals, nil
}

func normalizeRequirements(req *matching.JobRequirements) {
	req.MustHaveSkills = cleanStrings(req.MustHaveSkills)
	if len(req.MustHaveSkills) > maxMustHaveSkills {
		req.MustHaveSkills = req.MustHaveSkills[:maxMustHaveSkills]
	}
	req.NiceToHaveSkills = cleanStrings(req.NiceToHaveSkills)
	req.DomainKeywords = cleanStrings(req.DomainKeywords)
	req.Certifications = cleanStrings(req.Certifications)
	req.RoleSeniority = strings.TrimSpace(req.RoleSeniority)
	req.Education = strings.TrimSpace(req.Education)
	if req.YearsOfExperience.Min < 0 {
		req.YearsOfExperience.Min = 0
	}
}

func normalizeSignals(signals *matching.ResumeSignals) {
	kept := signals.Skills[:0]
	for _, claim := range signals.Skills {
		claim.Skill = strings.TrimSpace(claim.Skill)
		if claim.Skill == "" {
			continue
		}
		kept = append(kept, claim)
	}
	signals.Skills = kept
	signals.MeasurableOutcomes = cleanStrings(signals.MeasurableOutcomes)
	signals.DomainExperience = cleanStrings(signals.DomainExperience)
	signals.Certifications = cleanStrings(signals.Certifications)
	if signals.ExperienceDuration.TotalYears < 0 {
		signals.ExperienceDuration.TotalYears = 0
	}
}

func cleanStrings(in []string) []string {
	out := in[:0]
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
