package matching

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Dimension maxima. The six together define the 100-point base scale.
const (
	MaxSkillCoverage   = 30
	MaxExperienceDepth = 20
	MaxDomainRelevance = 15
	MaxEvidenceQuality = 15
	MaxQuantification  = 10
	MaxRecency         = 10
)

// Skill contexts longer than this count as substantive evidence.
const substantiveContextLen = 30

// ScoreSkillCoverage grades must-have skill coverage. A required skill is
// matched when it appears, case-insensitively, as a substring of any skill
// the resume claims. Matched skills with substantive context earn a small
// bonus on top of the 3-points-per-skill base.
func ScoreSkillCoverage(signals ResumeSignals, req JobRequirements) SkillCoverageScore {
	matched := make([]string, 0, len(req.MustHaveSkills))
	missing := make([]string, 0)

	resumeSkills := make([]string, len(signals.Skills))
	for i, s := range signals.Skills {
		resumeSkills[i] = strings.ToLower(s.Skill)
	}

	for _, want := range req.MustHaveSkills {
		wantLower := strings.ToLower(want)
		found := false
		for _, have := range resumeSkills {
			if strings.Contains(have, wantLower) {
				found = true
				break
			}
		}
		if found {
			matched = append(matched, wantLower)
		} else {
			missing = append(missing, want)
		}
	}

	base := 3.0 * float64(len(matched))

	bonus := 0.0
	for _, claim := range signals.Skills {
		if len(claim.Context) <= substantiveContextLen {
			continue
		}
		name := strings.ToLower(claim.Skill)
		for _, m := range matched {
			// Same containment direction as the match loop above.
			if strings.Contains(name, m) {
				bonus += 0.5
				break
			}
		}
	}

	score := round1(math.Min(base+bonus, MaxSkillCoverage))
	return SkillCoverageScore{
		Score:         score,
		MaxScore:      MaxSkillCoverage,
		MatchedSkills: matched,
		MissingSkills: missing,
		MatchRate:     fmt.Sprintf("%d/%d", len(matched), len(req.MustHaveSkills)),
		Details:       fmt.Sprintf("Matched %d of %d required skills", len(matched), len(req.MustHaveSkills)),
	}
}

// ScoreExperienceDepth grades total years against the job's minimum, with a
// small bonus when the most recent title matches the requested seniority.
// A zero minimum counts as met.
func ScoreExperienceDepth(signals ResumeSignals, req JobRequirements) ExperienceDepthScore {
	years := signals.ExperienceDuration.TotalYears
	minYears := req.YearsOfExperience.Min

	score := 0.0
	switch {
	case years >= minYears:
		score = 10 + 2*math.Min(years-minYears, 5)
	case years > 0 && minYears > 0:
		score = years / minYears * 10
	}

	if len(signals.ExperienceDuration.Positions) > 0 {
		score += seniorityBonus(signals.ExperienceDuration.Positions[0].Role, req.RoleSeniority)
	}

	score = round1(math.Min(score, MaxExperienceDepth))
	return ExperienceDepthScore{
		Score:         score,
		MaxScore:      MaxExperienceDepth,
		ResumeYears:   years,
		RequiredYears: minYears,
		Details:       fmt.Sprintf("%s years vs %s required", formatYears(years), formatYears(minYears)),
	}
}

func seniorityBonus(recentRole, wantSeniority string) float64 {
	role := strings.ToLower(recentRole)
	switch strings.ToLower(wantSeniority) {
	case "senior", "lead", "principal":
		if strings.Contains(role, "senior") || strings.Contains(role, "lead") ||
			strings.Contains(role, "principal") || strings.Contains(role, "staff") {
			return 2
		}
	case "mid", "intermediate":
		if strings.Contains(role, "engineer") {
			return 2
		}
	case "junior", "entry":
		if strings.Contains(role, "junior") || strings.Contains(role, "associate") ||
			strings.Contains(role, "engineer") {
			return 2
		}
	}
	return 0
}

// ScoreDomainRelevance grades overlap between the job's domain keywords and
// the resume's stated domains, 5 points per matched keyword.
func ScoreDomainRelevance(signals ResumeSignals, req JobRequirements) DomainRelevanceScore {
	matched := make([]string, 0, len(req.DomainKeywords))
	for _, keyword := range req.DomainKeywords {
		if domainMatches(keyword, signals.DomainExperience) {
			matched = append(matched, strings.ToLower(keyword))
		}
	}

	required := req.DomainKeywords
	if len(required) > 3 {
		required = required[:3]
	}

	score := math.Min(5*float64(len(matched)), MaxDomainRelevance)
	return DomainRelevanceScore{
		Score:           round1(score),
		MaxScore:        MaxDomainRelevance,
		MatchedDomains:  matched,
		RequiredDomains: required,
		Details:         fmt.Sprintf("Matched %d domain areas", len(matched)),
	}
}

// domainMatches reports whether the job keyword is contained, case-insensitively,
// in any of the resume's domain labels.
func domainMatches(keyword string, resumeDomains []string) bool {
	kw := strings.ToLower(keyword)
	for _, d := range resumeDomains {
		if strings.Contains(strings.ToLower(d), kw) {
			return true
		}
	}
	return false
}

// ScoreEvidenceQuality grades how well the resume backs up its claims:
// projects listed plus the share of skills carrying substantive context.
func ScoreEvidenceQuality(signals ResumeSignals) EvidenceQualityScore {
	score := 0.0

	projects := len(signals.Projects)
	switch {
	case projects >= 3:
		score += 8
	case projects >= 1:
		score += 5
	}

	withContext := 0
	for _, claim := range signals.Skills {
		if len(claim.Context) > substantiveContextLen {
			withContext++
		}
	}
	if len(signals.Skills) > 0 {
		rate := float64(withContext) / float64(len(signals.Skills))
		switch {
		case rate >= 0.8:
			score += 7
		case rate >= 0.5:
			score += 4
		case rate >= 0.3:
			score += 2
		}
	}

	return EvidenceQualityScore{
		Score:             round1(score),
		MaxScore:          MaxEvidenceQuality,
		ProjectsCount:     projects,
		SkillsWithContext: withContext,
		Details:           fmt.Sprintf("%d projects, %d skills with context", projects, withContext),
	}
}

// ScoreQuantification grades measurable outcomes as a step function of count.
func ScoreQuantification(signals ResumeSignals) QuantificationScore {
	count := len(signals.MeasurableOutcomes)

	var score float64
	switch {
	case count == 0:
		score = 0
	case count <= 2:
		score = 5
	case count <= 4:
		score = 8
	default:
		score = 10
	}

	sample := signals.MeasurableOutcomes
	if len(sample) > 3 {
		sample = sample[:3]
	}

	return QuantificationScore{
		Score:          score,
		MaxScore:       MaxQuantification,
		OutcomesCount:  count,
		SampleOutcomes: sample,
		Details:        fmt.Sprintf("%d measurable outcomes found", count),
	}
}

// ScoreRecency grades the most recent role year against the wall clock.
func ScoreRecency(signals ResumeSignals) RecencyScore {
	year := signals.RecencyIndicators.MostRecentRoleYear
	current := currentYear()

	var score float64
	switch {
	case year >= current-1:
		score = 10
	case year >= current-2:
		score = 7
	case year >= current-4:
		score = 4
	}

	return RecencyScore{
		Score:          score,
		MaxScore:       MaxRecency,
		MostRecentYear: year,
		Details:        fmt.Sprintf("Most recent role: %d", year),
	}
}

// CalculateScore combines the six dimension scores with the risk penalty.
// The final score is the penalized base, clamped to [0, 100].
func CalculateScore(signals ResumeSignals, req JobRequirements, risks RiskReport) ScoreResult {
	breakdown := ScoreBreakdown{
		SkillCoverage:   ScoreSkillCoverage(signals, req),
		ExperienceDepth: ScoreExperienceDepth(signals, req),
		DomainRelevance: ScoreDomainRelevance(signals, req),
		EvidenceQuality: ScoreEvidenceQuality(signals),
		Quantification:  ScoreQuantification(signals),
		Recency:         ScoreRecency(signals),
	}

	base := round1(breakdown.SkillCoverage.Score +
		breakdown.ExperienceDepth.Score +
		breakdown.DomainRelevance.Score +
		breakdown.EvidenceQuality.Score +
		breakdown.Quantification.Score +
		breakdown.Recency.Score)

	final := round1(base - float64(risks.TotalPenalty))
	final = math.Max(0, math.Min(100, final))

	return ScoreResult{
		FinalScore: final,
		BaseScore:  base,
		Penalty:    risks.TotalPenalty,
		Breakdown:  breakdown,
		RiskFlags:  risks,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func currentYear() int {
	return time.Now().UTC().Year()
}

// formatYears renders 8 as "8" and 7.5 as "7.5".
func formatYears(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}
