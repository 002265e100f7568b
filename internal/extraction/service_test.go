package extraction

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"screening-backend/internal/llm"
)

type fakeClient struct {
	response string
	err      error
	lastMsgs []llm.Message
}

func (f *fakeClient) CompleteJSON(ctx context.Context, messages []llm.Message) (json.RawMessage, error) {
	f.lastMsgs = messages
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(f.response), nil
}

func TestParseJobDescription(t *testing.T) {
	client := &fakeClient{response: `{
		"must_have_skills": ["Go", " Postgres ", ""],
		"nice_to_have_skills": ["Kafka"],
		"years_of_experience": {"min": 5, "max": 8, "total": 5},
		"domain_keywords": ["fintech", "payments"],
		"role_seniority": "Senior",
		"education": "BS Computer Science",
		"certifications": []
	}`}
	svc := NewService(client)

	req, err := svc.ParseJobDescription(context.Background(), "We need a senior Go engineer.")
	if err != nil {
		t.Fatalf("ParseJobDescription: %v", err)
	}
	if len(req.MustHaveSkills) != 2 || req.MustHaveSkills[1] != "Postgres" {
		t.Fatalf("must-have skills = %v", req.MustHaveSkills)
	}
	if req.YearsOfExperience.Min != 5 {
		t.Fatalf("min years = %v", req.YearsOfExperience.Min)
	}
	if req.RoleSeniority != "Senior" {
		t.Fatalf("seniority = %q", req.RoleSeniority)
	}
	if len(client.lastMsgs) != 2 || !strings.Contains(client.lastMsgs[1].Content, "senior Go engineer") {
		t.Fatalf("job description not in prompt: %+v", client.lastMsgs)
	}
}

func TestParseJobDescriptionCapsMustHaves(t *testing.T) {
	skills := make([]string, 14)
	for i := range skills {
		skills[i] = strings.Repeat("s", i+1)
	}
	raw, _ := json.Marshal(map[string]any{"must_have_skills": skills})
	svc := NewService(&fakeClient{response: string(raw)})

	req, err := svc.ParseJobDescription(context.Background(), "jd")
	if err != nil {
		t.Fatalf("ParseJobDescription: %v", err)
	}
	if len(req.MustHaveSkills) != 10 {
		t.Fatalf("must-have skills = %d, want capped at 10", len(req.MustHaveSkills))
	}
}

func TestParseJobDescriptionRejectsMalformedJSON(t *testing.T) {
	svc := NewService(&fakeClient{response: `{"must_have_skills": [`})
	if _, err := svc.ParseJobDescription(context.Background(), "jd"); err == nil {
		t.Fatal("expected decode error for malformed output")
	}
}

func TestParseJobDescriptionEmptyInput(t *testing.T) {
	svc := NewService(&fakeClient{})
	if _, err := svc.ParseJobDescription(context.Background(), "   "); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("err = %v, want ErrEmptyInput", err)
	}
}

func TestExtractResumeSignals(t *testing.T) {
	client := &fakeClient{response: `{
		"skills": [{"skill": "Go", "context": "Built services"}, {"skill": "  ", "context": "x"}],
		"experience_duration": {"total_years": 6, "recent_years": 3, "positions": [{"role": "Senior Engineer", "company": "Acme", "duration": "2020-2024", "years": 4}]},
		"projects": [{"name": "Billing", "description": "d", "impact": "i"}],
		"measurable_outcomes": ["Cut latency 40%"],
		"recency_indicators": {"has_recent_experience": true, "most_recent_role_year": 2024},
		"domain_experience": ["payments"],
		"education": "MSc",
		"certifications": ["CKA"]
	}`}
	svc := NewService(client)

	signals, err := svc.ExtractResumeSignals(context.Background(), "resume text")
	if err != nil {
		t.Fatalf("ExtractResumeSignals: %v", err)
	}
	if len(signals.Skills) != 1 || signals.Skills[0].Skill != "Go" {
		t.Fatalf("skills = %+v, want blank entries dropped", signals.Skills)
	}
	if signals.ExperienceDuration.TotalYears != 6 {
		t.Fatalf("total years = %v", signals.ExperienceDuration.TotalYears)
	}
	if !signals.RecencyIndicators.HasRecentExperience {
		t.Fatal("recency indicator lost")
	}
}

func TestExtractResumeSignalsFailsLoudly(t *testing.T) {
	svc := NewService(&fakeClient{response: `not json at all`})
	if _, err := svc.ExtractResumeSignals(context.Background(), "resume"); err == nil {
		t.Fatal("expected error for non-JSON output")
	}

	svc = NewService(llm.PlaceholderClient{})
	if _, err := svc.ExtractResumeSignals(context.Background(), "resume"); !errors.Is(err, llm.ErrNotConfigured) {
		t.Fatalf("err = %v, want ErrNotConfigured", err)
	}
}

func TestConfigured(t *testing.T) {
	if NewService(llm.PlaceholderClient{}).Configured() {
		t.Fatal("placeholder client should not count as configured")
	}
	if !NewService(&fakeClient{}).Configured() {
		t.Fatal("real client should count as configured")
	}
}
