package matching

import (
	"fmt"
	"strings"
)

// Recommendation labels.
const (
	RecommendationShortlist = "Shortlist"
	RecommendationReview    = "Review"
	RecommendationReject    = "Reject"
)

// Recommendation maps a final score to a hiring recommendation.
// Both boundaries are inclusive: 75.0 shortlists, 60.0 reviews.
func Recommendation(finalScore float64) string {
	switch {
	case finalScore >= 75:
		return RecommendationShortlist
	case finalScore >= 60:
		return RecommendationReview
	default:
		return RecommendationReject
	}
}

// Summary produces the one-line digest shown in ranked listings.
func Summary(result ScoreResult) string {
	sc := result.Breakdown.SkillCoverage
	total := len(sc.MatchedSkills) + len(sc.MissingSkills)
	years := result.Breakdown.ExperienceDepth.ResumeYears
	return fmt.Sprintf("%d/%d skills matched, %s years experience",
		len(sc.MatchedSkills), total, formatYears(years))
}

// Explain renders a markdown report walking through every score dimension
// and each risk flag, ending with the recommendation.
func Explain(result ScoreResult) string {
	var b strings.Builder

	b.WriteString("## Candidate Evaluation\n\n")
	fmt.Fprintf(&b, "**Final Score: %s/100** - %s\n\n", formatYears(result.FinalScore), Recommendation(result.FinalScore))
	fmt.Fprintf(&b, "Base score %s, risk penalty -%d.\n\n", formatYears(result.BaseScore), result.Penalty)

	b.WriteString("### Score Breakdown\n\n")
	writeSkillCoverage(&b, result.Breakdown.SkillCoverage)
	writeExperienceDepth(&b, result.Breakdown.ExperienceDepth)
	writeDomainRelevance(&b, result.Breakdown.DomainRelevance)
	writeEvidenceQuality(&b, result.Breakdown.EvidenceQuality)
	writeQuantification(&b, result.Breakdown.Quantification)
	writeRecency(&b, result.Breakdown.Recency)

	writeRiskFlags(&b, result.RiskFlags)

	b.WriteString("### Summary\n\n")
	b.WriteString(Summary(result))
	b.WriteString(".\n")

	return b.String()
}

func writeDimensionHeader(b *strings.Builder, name string, score float64, max int) {
	fmt.Fprintf(b, "**%s: %s/%d**\n", name, formatYears(score), max)
}

func writeSkillCoverage(b *strings.Builder, s SkillCoverageScore) {
	writeDimensionHeader(b, "Skill Coverage", s.Score, s.MaxScore)
	fmt.Fprintf(b, "- Match rate: %s\n", s.MatchRate)
	if len(s.MatchedSkills) > 0 {
		fmt.Fprintf(b, "- Matched: %s\n", strings.Join(s.MatchedSkills, ", "))
	}
	if len(s.MissingSkills) > 0 {
		fmt.Fprintf(b, "- Missing: %s\n", strings.Join(s.MissingSkills, ", "))
	}
	b.WriteString("\n")
}

func writeExperienceDepth(b *strings.Builder, s ExperienceDepthScore) {
	writeDimensionHeader(b, "Experience Depth", s.Score, s.MaxScore)
	fmt.Fprintf(b, "- %s\n\n", s.Details)
}

func writeDomainRelevance(b *strings.Builder, s DomainRelevanceScore) {
	writeDimensionHeader(b, "Domain Relevance", s.Score, s.MaxScore)
	if len(s.MatchedDomains) > 0 {
		fmt.Fprintf(b, "- Matched domains: %s\n", strings.Join(s.MatchedDomains, ", "))
	} else {
		b.WriteString("- No domain overlap found\n")
	}
	if len(s.RequiredDomains) > 0 {
		fmt.Fprintf(b, "- Key job domains: %s\n", strings.Join(s.RequiredDomains, ", "))
	}
	b.WriteString("\n")
}

func writeEvidenceQuality(b *strings.Builder, s EvidenceQualityScore) {
	writeDimensionHeader(b, "Evidence Quality", s.Score, s.MaxScore)
	fmt.Fprintf(b, "- %s\n\n", s.Details)
}

func writeQuantification(b *strings.Builder, s QuantificationScore) {
	writeDimensionHeader(b, "Quantification", s.Score, s.MaxScore)
	fmt.Fprintf(b, "- %s\n", s.Details)
	for _, outcome := range s.SampleOutcomes {
		fmt.Fprintf(b, "  - %s\n", outcome)
	}
	b.WriteString("\n")
}

func writeRecency(b *strings.Builder, s RecencyScore) {
	writeDimensionHeader(b, "Recency", s.Score, s.MaxScore)
	fmt.Fprintf(b, "- %s\n\n", s.Details)
}

func writeRiskFlags(b *strings.Builder, report RiskReport) {
	if len(report.Flags) == 0 {
		b.WriteString("### Risk Flags\n\nNo risk flags detected.\n\n")
		return
	}
	fmt.Fprintf(b, "### Risk Flags (penalty -%d)\n\n", report.TotalPenalty)
	for _, f := range report.Flags {
		fmt.Fprintf(b, "- **%s** (-%d): %s\n", f.Category, f.Penalty, f.Description)
	}
	b.WriteString("\n")
}
