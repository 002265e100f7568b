package matching

import (
	"fmt"
	"sort"
)

// CandidateInput is one resume entering the ranking step. When signal
// extraction failed upstream, ExtractionFailed is set and Signals is empty;
// the candidate still appears in the result as a zero-score placeholder so
// one bad resume never hides the rest of the batch.
type CandidateInput struct {
	CandidateID      string
	ResumeText       string
	Signals          ResumeSignals
	ExtractionFailed bool
	FailureReason    string
}

// ScoreCandidate runs risk detection and scoring for a single resume.
func ScoreCandidate(signals ResumeSignals, req JobRequirements) ScoreResult {
	risks := DetectRisks(signals, req)
	return CalculateScore(signals, req, risks)
}

// RankCandidates scores every input and returns them ordered by final score
// descending. Ties keep input order, and ranks are assigned 1-based by
// position after the sort.
func RankCandidates(req JobRequirements, inputs []CandidateInput) []Candidate {
	candidates := make([]Candidate, 0, len(inputs))
	for i, in := range inputs {
		id := in.CandidateID
		if id == "" {
			id = fmt.Sprintf("Candidate_%d", i+1)
		}
		if in.ExtractionFailed {
			candidates = append(candidates, failedCandidate(id, in.ResumeText, in.FailureReason))
			continue
		}
		result := ScoreCandidate(in.Signals, req)
		candidates = append(candidates, Candidate{
			CandidateID:    id,
			ResumeText:     in.ResumeText,
			Signals:        in.Signals,
			Score:          result,
			FinalScore:     result.FinalScore,
			Recommendation: Recommendation(result.FinalScore),
			Explanation:    Explain(result),
			Summary:        Summary(result),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].FinalScore > candidates[j].FinalScore
	})
	for i := range candidates {
		candidates[i].Rank = i + 1
	}
	return candidates
}

// failedCandidate is the zero-score placeholder for a resume whose signal
// extraction errored. It carries a single non-penalizing flag so the
// failure is visible in the report.
func failedCandidate(id, resumeText, reason string) Candidate {
	if reason == "" {
		reason = "signal extraction failed"
	}
	result := ScoreResult{
		RiskFlags: RiskReport{
			Flags: []RiskFlag{{
				Category:    FlagExtractionFailed,
				Description: reason,
			}},
		},
	}
	return Candidate{
		CandidateID:    id,
		ResumeText:     resumeText,
		Score:          result,
		FinalScore:     0,
		Recommendation: RecommendationReject,
		Explanation:    fmt.Sprintf("## Candidate Evaluation\n\nScoring skipped: %s.\n", reason),
		Summary:        "scoring skipped: " + reason,
	}
}
