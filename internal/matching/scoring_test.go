package matching

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func skillsWithContext(context string, names ...string) []SkillClaim {
	claims := make([]SkillClaim, len(names))
	for i, n := range names {
		claims[i] = SkillClaim{Skill: n, Context: context}
	}
	return claims
}

func TestScoreSkillCoverage(t *testing.T) {
	longContext := "Built and deployed production services using this"
	shortContext := "Used it"

	tests := []struct {
		name      string
		signals   ResumeSignals
		req       JobRequirements
		wantScore float64
		wantRate  string
	}{
		{
			name:      "no skills on either side",
			signals:   ResumeSignals{},
			req:       JobRequirements{},
			wantScore: 0,
			wantRate:  "0/0",
		},
		{
			name:      "empty resume against real requirements",
			signals:   ResumeSignals{},
			req:       JobRequirements{MustHaveSkills: []string{"go", "postgres"}},
			wantScore: 0,
			wantRate:  "0/2",
		},
		{
			name:      "all matched without context bonus",
			signals:   ResumeSignals{Skills: skillsWithContext(shortContext, "go", "postgres")},
			req:       JobRequirements{MustHaveSkills: []string{"go", "postgres"}},
			wantScore: 6,
			wantRate:  "2/2",
		},
		{
			name:      "substring match counts",
			signals:   ResumeSignals{Skills: skillsWithContext(shortContext, "PostgreSQL replication")},
			req:       JobRequirements{MustHaveSkills: []string{"postgres"}},
			wantScore: 3,
			wantRate:  "1/1",
		},
		{
			name:      "context bonus adds half point per evidenced skill",
			signals:   ResumeSignals{Skills: skillsWithContext(longContext, "go", "postgres")},
			req:       JobRequirements{MustHaveSkills: []string{"go", "postgres"}},
			wantScore: 7,
			wantRate:  "2/2",
		},
		{
			name:      "context bonus follows the match direction for substring matches",
			signals:   ResumeSignals{Skills: skillsWithContext(longContext, "aws ec2")},
			req:       JobRequirements{MustHaveSkills: []string{"aws"}},
			wantScore: 3.5,
			wantRate:  "1/1",
		},
		{
			name: "saturates at max with ten evidenced matches",
			signals: ResumeSignals{Skills: skillsWithContext(longContext,
				"s1", "s2", "s3", "s4", "s5", "s6", "s7", "s8", "s9", "s10")},
			req: JobRequirements{MustHaveSkills: []string{
				"s1", "s2", "s3", "s4", "s5", "s6", "s7", "s8", "s9", "s10"}},
			wantScore: 30,
			wantRate:  "10/10",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ScoreSkillCoverage(tc.signals, tc.req)
			if got.Score != tc.wantScore {
				t.Fatalf("score = %v, want %v", got.Score, tc.wantScore)
			}
			if got.MatchRate != tc.wantRate {
				t.Fatalf("match rate = %q, want %q", got.MatchRate, tc.wantRate)
			}
			if got.Score < 0 || got.Score > MaxSkillCoverage {
				t.Fatalf("score %v outside [0,%d]", got.Score, MaxSkillCoverage)
			}
		})
	}
}

func TestScoreSkillCoverageMonotonic(t *testing.T) {
	req := JobRequirements{MustHaveSkills: []string{"go", "postgres", "kafka"}}
	prev := -1.0
	for n := 0; n <= 3; n++ {
		signals := ResumeSignals{Skills: skillsWithContext("Short", req.MustHaveSkills[:n]...)}
		got := ScoreSkillCoverage(signals, req).Score
		if got < prev {
			t.Fatalf("score dropped from %v to %v when matching %d skills", prev, got, n)
		}
		prev = got
	}
}

func TestScoreExperienceDepth(t *testing.T) {
	tests := []struct {
		name    string
		signals ResumeSignals
		req     JobRequirements
		want    float64
	}{
		{
			name:    "meets minimum exactly",
			signals: ResumeSignals{ExperienceDuration: ExperienceDuration{TotalYears: 5}},
			req:     JobRequirements{YearsOfExperience: YearsOfExperience{Min: 5}},
			want:    10,
		},
		{
			name:    "extra years add two points each",
			signals: ResumeSignals{ExperienceDuration: ExperienceDuration{TotalYears: 8}},
			req:     JobRequirements{YearsOfExperience: YearsOfExperience{Min: 5}},
			want:    16,
		},
		{
			name:    "extra year credit capped at five years",
			signals: ResumeSignals{ExperienceDuration: ExperienceDuration{TotalYears: 20}},
			req:     JobRequirements{YearsOfExperience: YearsOfExperience{Min: 5}},
			want:    20,
		},
		{
			name:    "below minimum earns proportional credit",
			signals: ResumeSignals{ExperienceDuration: ExperienceDuration{TotalYears: 2}},
			req:     JobRequirements{YearsOfExperience: YearsOfExperience{Min: 4}},
			want:    5,
		},
		{
			name:    "zero years with a minimum scores zero",
			signals: ResumeSignals{},
			req:     JobRequirements{YearsOfExperience: YearsOfExperience{Min: 4}},
			want:    0,
		},
		{
			name:    "zero minimum counts as met",
			signals: ResumeSignals{ExperienceDuration: ExperienceDuration{TotalYears: 3}},
			req:     JobRequirements{},
			want:    16,
		},
		{
			name: "seniority bonus for matching title",
			signals: ResumeSignals{ExperienceDuration: ExperienceDuration{
				TotalYears: 5,
				Positions:  []Position{{Role: "Senior Platform Engineer"}},
			}},
			req: JobRequirements{
				YearsOfExperience: YearsOfExperience{Min: 5},
				RoleSeniority:     "Senior",
			},
			want: 12,
		},
		{
			name: "no bonus when title does not match tier",
			signals: ResumeSignals{ExperienceDuration: ExperienceDuration{
				TotalYears: 5,
				Positions:  []Position{{Role: "Marketing Manager"}},
			}},
			req: JobRequirements{
				YearsOfExperience: YearsOfExperience{Min: 5},
				RoleSeniority:     "Senior",
			},
			want: 10,
		},
		{
			name: "bonus never pushes past the cap",
			signals: ResumeSignals{ExperienceDuration: ExperienceDuration{
				TotalYears: 12,
				Positions:  []Position{{Role: "Staff Engineer"}},
			}},
			req: JobRequirements{
				YearsOfExperience: YearsOfExperience{Min: 5},
				RoleSeniority:     "Lead",
			},
			want: 20,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ScoreExperienceDepth(tc.signals, tc.req)
			if got.Score != tc.want {
				t.Fatalf("score = %v, want %v", got.Score, tc.want)
			}
		})
	}
}

func TestScoreDomainRelevance(t *testing.T) {
	req := JobRequirements{DomainKeywords: []string{"fintech", "payments", "banking", "compliance"}}
	tests := []struct {
		name    string
		domains []string
		want    float64
	}{
		{"no overlap", []string{"gaming"}, 0},
		{"one keyword", []string{"consumer fintech"}, 5},
		{"two keywords", []string{"fintech", "payments infrastructure"}, 10},
		{"three keywords", []string{"fintech", "payments", "retail banking"}, 15},
		{"four matches still capped", []string{"fintech", "payments", "banking", "compliance"}, 15},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ScoreDomainRelevance(ResumeSignals{DomainExperience: tc.domains}, req)
			if got.Score != tc.want {
				t.Fatalf("score = %v, want %v", got.Score, tc.want)
			}
		})
	}

	t.Run("required domains lists at most three", func(t *testing.T) {
		got := ScoreDomainRelevance(ResumeSignals{}, req)
		if len(got.RequiredDomains) != 3 {
			t.Fatalf("required domains = %v, want first 3", got.RequiredDomains)
		}
	})
}

func TestScoreEvidenceQuality(t *testing.T) {
	long := strings.Repeat("x", 31)
	short := "short"
	projects := func(n int) []Project {
		out := make([]Project, n)
		for i := range out {
			out[i] = Project{Name: fmt.Sprintf("p%d", i)}
		}
		return out
	}

	tests := []struct {
		name    string
		signals ResumeSignals
		want    float64
	}{
		{"nothing at all", ResumeSignals{}, 0},
		{"one project", ResumeSignals{Projects: projects(1)}, 5},
		{"two projects", ResumeSignals{Projects: projects(2)}, 5},
		{"three projects", ResumeSignals{Projects: projects(3)}, 8},
		{
			"full context rate",
			ResumeSignals{Skills: skillsWithContext(long, "a", "b", "c", "d", "e")},
			7,
		},
		{
			"context rate at 0.8 boundary",
			ResumeSignals{Skills: append(skillsWithContext(long, "a", "b", "c", "d"), SkillClaim{Skill: "e", Context: short})},
			7,
		},
		{
			"context rate at 0.5 boundary",
			ResumeSignals{Skills: append(skillsWithContext(long, "a", "b"), skillsWithContext(short, "c", "d")...)},
			4,
		},
		{
			"context rate below 0.3",
			ResumeSignals{Skills: append(skillsWithContext(long, "a"), skillsWithContext(short, "b", "c", "d", "e")...)},
			0,
		},
		{
			"projects and context combine",
			ResumeSignals{
				Projects: projects(3),
				Skills:   skillsWithContext(long, "a", "b", "c"),
			},
			15,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ScoreEvidenceQuality(tc.signals)
			if got.Score != tc.want {
				t.Fatalf("score = %v, want %v", got.Score, tc.want)
			}
		})
	}
}

func TestScoreQuantification(t *testing.T) {
	wantByCount := []float64{0, 5, 5, 8, 8, 10, 10}
	for count, want := range wantByCount {
		outcomes := make([]string, count)
		for i := range outcomes {
			outcomes[i] = fmt.Sprintf("Reduced latency by %d%%", i+1)
		}
		got := ScoreQuantification(ResumeSignals{MeasurableOutcomes: outcomes})
		if got.Score != want {
			t.Fatalf("count %d: score = %v, want %v", count, got.Score, want)
		}
		if got.OutcomesCount != count {
			t.Fatalf("count %d: outcomes count = %d", count, got.OutcomesCount)
		}
	}
}

func TestScoreRecency(t *testing.T) {
	current := time.Now().UTC().Year()
	tests := []struct {
		offset int
		want   float64
	}{
		{0, 10},
		{1, 10},
		{2, 7},
		{3, 4},
		{4, 4},
		{5, 0},
	}
	for _, tc := range tests {
		signals := ResumeSignals{RecencyIndicators: RecencyIndicators{MostRecentRoleYear: current - tc.offset}}
		got := ScoreRecency(signals)
		if got.Score != tc.want {
			t.Fatalf("offset %d: score = %v, want %v", tc.offset, got.Score, tc.want)
		}
	}

	t.Run("zero year scores zero", func(t *testing.T) {
		if got := ScoreRecency(ResumeSignals{}); got.Score != 0 {
			t.Fatalf("score = %v, want 0", got.Score)
		}
	})
}

func TestCalculateScoreAppliesPenaltyAndClamps(t *testing.T) {
	signals := ResumeSignals{}
	req := JobRequirements{
		MustHaveSkills:    []string{"go"},
		YearsOfExperience: YearsOfExperience{Min: 5},
	}

	got := CalculateScore(signals, req, RiskReport{TotalPenalty: 10})
	if got.BaseScore != 0 {
		t.Fatalf("base = %v, want 0", got.BaseScore)
	}
	if got.FinalScore != 0 {
		t.Fatalf("final = %v, want clamp to 0", got.FinalScore)
	}
	if got.Penalty != 10 {
		t.Fatalf("penalty = %d, want 10", got.Penalty)
	}
}

// Strong infrastructure candidate against a matching job: every dimension
// near its maximum and no risk flags, so the final score lands high.
func TestScoreCandidateStrongMatch(t *testing.T) {
	current := time.Now().UTC().Year()
	req := JobRequirements{
		MustHaveSkills: []string{
			"kubernetes", "docker", "terraform", "aws", "ci/cd",
			"python", "ansible", "prometheus", "linux", "networking",
		},
		YearsOfExperience: YearsOfExperience{Min: 5},
		DomainKeywords:    []string{"saas", "cloud infrastructure", "microservices"},
		RoleSeniority:     "Senior",
	}
	signals := ResumeSignals{
		Skills: skillsWithContext("Built and operated production infrastructure",
			"kubernetes", "docker", "terraform", "aws", "ci/cd",
			"python", "ansible", "prometheus", "linux", "networking"),
		ExperienceDuration: ExperienceDuration{
			TotalYears: 8,
			Positions:  []Position{{Role: "Senior DevOps Engineer", Years: 4}},
		},
		Projects: []Project{
			{Name: "Cluster migration", Impact: "Moved 40 services with zero downtime"},
			{Name: "Deploy pipeline", Impact: "Release cadence went daily"},
			{Name: "Cost program", Impact: "Cut compute spend by a third"},
			{Name: "On-call overhaul", Impact: "Halved page volume"},
		},
		MeasurableOutcomes: []string{
			"Reduced deploy time by 80%",
			"Cut infrastructure cost 30%",
			"Scaled platform to 2M requests/day",
			"Reduced incident count by 60%",
			"Automated 90% of provisioning",
		},
		RecencyIndicators: RecencyIndicators{HasRecentExperience: true, MostRecentRoleYear: current},
		DomainExperience:  []string{"SaaS platforms", "cloud infrastructure", "microservices architecture"},
	}

	got := ScoreCandidate(signals, req)
	if len(got.RiskFlags.Flags) != 0 {
		t.Fatalf("unexpected risk flags: %+v", got.RiskFlags.Flags)
	}
	if got.FinalScore < 90 {
		t.Fatalf("final = %v, want >= 90", got.FinalScore)
	}
	if Recommendation(got.FinalScore) != RecommendationShortlist {
		t.Fatalf("recommendation = %q, want Shortlist", Recommendation(got.FinalScore))
	}
}

func TestScoreCandidateEmptyResume(t *testing.T) {
	req := JobRequirements{
		MustHaveSkills:    []string{"go", "postgres"},
		YearsOfExperience: YearsOfExperience{Min: 5},
		DomainKeywords:    []string{"fintech"},
	}
	got := ScoreCandidate(ResumeSignals{}, req)
	if got.FinalScore != 0 {
		t.Fatalf("final = %v, want 0", got.FinalScore)
	}
	if got.BaseScore != 0 {
		t.Fatalf("base = %v, want 0", got.BaseScore)
	}
}
