package matching

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Risk flag categories.
const (
	FlagWeakEvidence        = "WEAK_EVIDENCE"
	FlagNoQuantification    = "NO_QUANTIFICATION"
	FlagLowQuantification   = "LOW_QUANTIFICATION"
	FlagBuzzwordHeavy       = "BUZZWORD_HEAVY"
	FlagBuzzwordModerate    = "BUZZWORD_MODERATE"
	FlagOutdatedExperience  = "OUTDATED_EXPERIENCE"
	FlagNoProjects          = "NO_PROJECTS"
	FlagDomainMismatch      = "DOMAIN_MISMATCH"
	FlagExperienceGap       = "EXPERIENCE_GAP"
	FlagExtractionFailed    = "EXTRACTION_FAILED"
	maxAggregateRiskPenalty = 20
)

// Filler phrases that signal padding rather than substance.
var buzzwords = []string{
	"synergy", "leverage", "disrupt", "innovative", "strategic",
	"dynamic", "results-oriented", "team player", "hard worker",
	"detail-oriented", "self-starter", "go-getter", "thought leader",
	"rockstar", "ninja", "guru", "passionate", "motivated",
	"dedicated", "proven track record",
}

// Action verbs that mark a skill context as concrete evidence.
var evidenceIndicators = []string{
	"built", "developed", "deployed", "designed", "implemented",
	"created", "architected", "migrated", "optimized", "scaled",
	"reduced", "increased", "automated", "integrated", "led",
	"managed", "shipped", "launched",
}

// DetectRisks runs every risk rule against the extracted signals and
// returns a fresh report. The aggregate penalty is capped; individual
// flags keep their full penalty so reviewers can see each rule's weight.
func DetectRisks(signals ResumeSignals, req JobRequirements) RiskReport {
	var flags []RiskFlag

	if f, ok := weakEvidenceFlag(signals); ok {
		flags = append(flags, f)
	}
	if f, ok := quantificationFlag(signals); ok {
		flags = append(flags, f)
	}
	if f, ok := buzzwordFlag(signals); ok {
		flags = append(flags, f)
	}
	if f, ok := outdatedExperienceFlag(signals); ok {
		flags = append(flags, f)
	}
	if len(signals.Projects) == 0 {
		flags = append(flags, RiskFlag{
			Category:    FlagNoProjects,
			Description: "No projects listed in resume",
			Penalty:     3,
		})
	}
	if f, ok := domainMismatchFlag(signals, req); ok {
		flags = append(flags, f)
	}
	if f, ok := experienceGapFlag(signals, req); ok {
		flags = append(flags, f)
	}

	total := 0
	for _, f := range flags {
		total += f.Penalty
	}
	if total > maxAggregateRiskPenalty {
		total = maxAggregateRiskPenalty
	}

	return RiskReport{Flags: flags, TotalPenalty: total}
}

// weakEvidenceFlag fires when three or more skills have contexts that are
// too short or carry no action verb.
func weakEvidenceFlag(signals ResumeSignals) (RiskFlag, bool) {
	var weak []string
	for _, claim := range signals.Skills {
		ctx := strings.ToLower(claim.Context)
		hasIndicator := false
		for _, verb := range evidenceIndicators {
			if strings.Contains(ctx, verb) {
				hasIndicator = true
				break
			}
		}
		if !hasIndicator || len(claim.Context) < 20 {
			weak = append(weak, claim.Skill)
		}
	}
	if len(weak) < 3 {
		return RiskFlag{}, false
	}
	sample := weak
	if len(sample) > 3 {
		sample = sample[:3]
	}
	return RiskFlag{
		Category:    FlagWeakEvidence,
		Description: fmt.Sprintf("%d skills listed without supporting evidence: %s", len(weak), strings.Join(sample, ", ")),
		Penalty:     5,
	}, true
}

func quantificationFlag(signals ResumeSignals) (RiskFlag, bool) {
	switch len(signals.MeasurableOutcomes) {
	case 0:
		return RiskFlag{
			Category:    FlagNoQuantification,
			Description: "No measurable outcomes or metrics found in resume",
			Penalty:     5,
		}, true
	case 1:
		return RiskFlag{
			Category:    FlagLowQuantification,
			Description: "Only one measurable outcome found",
			Penalty:     3,
		}, true
	}
	return RiskFlag{}, false
}

// buzzwordFlag counts distinct buzzwords over the serialized signals so
// every extracted field is scanned, not just skill names. Repeating one
// buzzword does not escalate the flag.
func buzzwordFlag(signals ResumeSignals) (RiskFlag, bool) {
	serialized, err := json.Marshal(signals)
	if err != nil {
		return RiskFlag{}, false
	}
	text := strings.ToLower(string(serialized))

	count := 0
	for _, word := range buzzwords {
		if strings.Contains(text, word) {
			count++
		}
	}

	switch {
	case count >= 5:
		return RiskFlag{
			Category:    FlagBuzzwordHeavy,
			Description: fmt.Sprintf("Excessive buzzword usage (%d distinct terms)", count),
			Penalty:     4,
		}, true
	case count >= 3:
		return RiskFlag{
			Category:    FlagBuzzwordModerate,
			Description: fmt.Sprintf("Notable buzzword usage (%d distinct terms)", count),
			Penalty:     2,
		}, true
	}
	return RiskFlag{}, false
}

func outdatedExperienceFlag(signals ResumeSignals) (RiskFlag, bool) {
	ind := signals.RecencyIndicators
	if ind.HasRecentExperience || ind.MostRecentRoleYear <= 0 {
		return RiskFlag{}, false
	}
	if ind.MostRecentRoleYear >= currentYear()-2 {
		return RiskFlag{}, false
	}
	return RiskFlag{
		Category:    FlagOutdatedExperience,
		Description: fmt.Sprintf("Most recent role appears to be from %d", ind.MostRecentRoleYear),
		Penalty:     4,
	}, true
}

func domainMismatchFlag(signals ResumeSignals, req JobRequirements) (RiskFlag, bool) {
	if len(req.DomainKeywords) == 0 || len(signals.DomainExperience) == 0 {
		return RiskFlag{}, false
	}
	for _, keyword := range req.DomainKeywords {
		if domainMatches(keyword, signals.DomainExperience) {
			return RiskFlag{}, false
		}
	}
	return RiskFlag{
		Category:    FlagDomainMismatch,
		Description: "Resume domain experience does not overlap the job's domain",
		Penalty:     3,
	}, true
}

func experienceGapFlag(signals ResumeSignals, req JobRequirements) (RiskFlag, bool) {
	minYears := req.YearsOfExperience.Min
	years := signals.ExperienceDuration.TotalYears
	if minYears <= 0 || years >= minYears {
		return RiskFlag{}, false
	}
	return RiskFlag{
		Category:    FlagExperienceGap,
		Description: fmt.Sprintf("Resume shows %s years vs %s required", formatYears(years), formatYears(minYears)),
		Penalty:     2,
	}, true
}
