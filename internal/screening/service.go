package screening

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"screening-backend/internal/extraction"
	"screening-backend/internal/matching"
	"screening-backend/internal/queue"
	"screening-backend/internal/resumes"
	"screening-backend/internal/shared/metrics"
	"screening-backend/internal/shared/telemetry"
	"screening-backend/internal/shared/util"
	"screening-backend/internal/signalcache"
)

const maxResumesPerRun = 50

// Service contains business logic for screening runs.
type Service struct {
	Repo      Repo
	Resumes   *resumes.Service
	Extractor *extraction.Service
	Cache     signalcache.Repo
	Jobs      queue.Client
	Provider  string
	Model     string
}

// Create validates the request, persists a queued run, and hands it off
// for processing: to the job queue when one is configured, otherwise to
// an in-process goroutine.
func (s *Service) Create(ctx context.Context, jobDescription string, refs []ResumeRef) (Run, error) {
	jobDescription = strings.TrimSpace(jobDescription)
	if jobDescription == "" {
		return Run{}, fmt.Errorf("%w: job description is required", ErrInvalidInput)
	}
	if len(refs) == 0 {
		return Run{}, fmt.Errorf("%w: at least one resume is required", ErrInvalidInput)
	}
	if len(refs) > maxResumesPerRun {
		return Run{}, fmt.Errorf("%w: at most %d resumes per run", ErrInvalidInput, maxResumesPerRun)
	}
	for i, ref := range refs {
		if strings.TrimSpace(ref.ResumeID) == "" && strings.TrimSpace(ref.Text) == "" {
			return Run{}, fmt.Errorf("%w: resume %d has neither resume_id nor text", ErrInvalidInput, i+1)
		}
	}
	if s.Extractor == nil || !s.Extractor.Configured() {
		return Run{}, ErrExtractionNotConfigured
	}

	now := time.Now().UTC()
	run := Run{
		ID:             uuid.NewString(),
		JobDescription: jobDescription,
		Resumes:        refs,
		Provider:       s.Provider,
		Model:          s.Model,
		Status:         StatusQueued,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Repo.Create(ctx, run); err != nil {
		return Run{}, err
	}

	if s.Jobs != nil {
		msg := queue.Message{
			RunID:      run.ID,
			RequestID:  requestIDFromContext(ctx),
			EnqueuedAt: now.Format(time.RFC3339),
			Version:    1,
		}
		if err := s.Jobs.Send(ctx, msg); err != nil {
			s.failRun(ctx, run.ID, fmt.Errorf("enqueue run: %w", err), nil)
			return Run{}, err
		}
		return run, nil
	}

	go s.processAsync(backgroundWithRequestID(ctx), run.ID)
	return run, nil
}

// Get returns a run by ID.
func (s *Service) Get(ctx context.Context, runID string) (Run, error) {
	if runID == "" {
		return Run{}, fmt.Errorf("%w: runID is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, runID)
}

// List returns runs ordered newest-first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Run, error) {
	return s.Repo.List(ctx, limit, offset)
}

// Process drives a queued run to completion. Queue consumers call this
// directly; the API server reaches it through processAsync.
func (s *Service) Process(ctx context.Context, runID string) error {
	return s.process(ctx, runID)
}

func (s *Service) processAsync(ctx context.Context, runID string) {
	defer func() {
		if r := recover(); r != nil {
			s.failRun(ctx, runID, fmt.Errorf("panic: %v", r), nil)
		}
	}()
	_ = s.process(ctx, runID)
}

func (s *Service) process(ctx context.Context, runID string) error {
	startedAt := time.Now().UTC()
	if err := s.Repo.SetProcessing(ctx, runID, startedAt); err != nil {
		err = fmt.Errorf("set processing failed: %w", err)
		s.failRun(ctx, runID, err, &startedAt)
		return err
	}

	run, err := s.Repo.GetByID(ctx, runID)
	if err != nil {
		err = fmt.Errorf("run lookup: %w", err)
		s.failRun(ctx, runID, err, &startedAt)
		return err
	}
	metrics.IncRunStarted()
	telemetry.Info("run.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"run_id":            run.ID,
		"status":            StatusProcessing,
		"status_transition": "queued->processing",
		"resume_count":      len(run.Resumes),
	})
	if s.Extractor == nil || !s.Extractor.Configured() {
		s.failRun(ctx, runID, ErrExtractionNotConfigured, &startedAt)
		return ErrExtractionNotConfigured
	}

	requirements, err := s.Extractor.ParseJobDescription(ctx, run.JobDescription)
	if err != nil {
		// A job description we cannot parse fails the whole run.
		err = fmt.Errorf("parse job description: %w", err)
		s.failRun(ctx, runID, err, &startedAt)
		return err
	}

	inputs := make([]matching.CandidateInput, 0, len(run.Resumes))
	cacheHits := 0
	for i, ref := range run.Resumes {
		input, hit := s.buildCandidateInput(ctx, run.ID, i, ref)
		if hit {
			cacheHits++
		}
		inputs = append(inputs, input)
	}

	result := RunResult{
		Requirements:    requirements,
		Candidates:      matching.RankCandidates(requirements, inputs),
		TotalCandidates: len(inputs),
		CacheHits:       cacheHits,
	}

	completedAt := time.Now().UTC()
	if err := s.Repo.SetResult(ctx, runID, result, completedAt); err != nil {
		err = fmt.Errorf("set run result failed: %w", err)
		s.failRun(ctx, runID, err, &startedAt)
		return err
	}
	metrics.IncRunCompleted()
	metrics.ObserveRunDurationMs(durationMs(&startedAt, &completedAt))
	telemetry.Info("run.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"run_id":            run.ID,
		"status":            StatusCompleted,
		"status_transition": "processing->completed",
		"duration_ms":       durationMs(&startedAt, &completedAt),
		"resume_count":      len(inputs),
		"cache_hits":        cacheHits,
	})
	return nil
}

// buildCandidateInput resolves one resume ref to scoring signals. Failures
// are isolated to the candidate so one bad resume cannot sink the batch.
func (s *Service) buildCandidateInput(ctx context.Context, runID string, index int, ref ResumeRef) (matching.CandidateInput, bool) {
	candidateID := strings.TrimSpace(ref.CandidateID)
	if candidateID == "" {
		candidateID = strings.TrimSpace(ref.ResumeID)
	}

	text, err := s.resumeText(ctx, ref)
	if err != nil {
		s.logCandidateFailure(ctx, runID, index, candidateID, err)
		return matching.CandidateInput{
			CandidateID:      candidateID,
			ExtractionFailed: true,
			FailureReason:    sanitizeError(err),
		}, false
	}

	fingerprint := util.Fingerprint(text)
	if s.Cache != nil {
		if signals, err := s.Cache.Get(ctx, fingerprint); err == nil {
			return matching.CandidateInput{
				CandidateID: candidateID,
				ResumeText:  text,
				Signals:     signals,
			}, true
		} else if !errors.Is(err, signalcache.ErrNotFound) {
			telemetry.Error("run.cache_lookup_failed", map[string]any{
				"run_id":      runID,
				"fingerprint": fingerprint,
				"error":       sanitizeError(err),
			})
		}
	}

	signals, err := s.Extractor.ExtractResumeSignals(ctx, text)
	if err != nil {
		s.logCandidateFailure(ctx, runID, index, candidateID, err)
		return matching.CandidateInput{
			CandidateID:      candidateID,
			ResumeText:       text,
			ExtractionFailed: true,
			FailureReason:    sanitizeError(err),
		}, false
	}
	if s.Cache != nil {
		if err := s.Cache.Put(ctx, fingerprint, signals); err != nil {
			telemetry.Error("run.cache_store_failed", map[string]any{
				"run_id":      runID,
				"fingerprint": fingerprint,
				"error":       sanitizeError(err),
			})
		}
	}

	return matching.CandidateInput{
		CandidateID: candidateID,
		ResumeText:  text,
		Signals:     signals,
	}, false
}

func (s *Service) resumeText(ctx context.Context, ref ResumeRef) (string, error) {
	if strings.TrimSpace(ref.Text) != "" {
		return ref.Text, nil
	}
	if strings.TrimSpace(ref.ResumeID) == "" {
		return "", errors.New("resume reference has no text")
	}
	if s.Resumes == nil {
		return "", errors.New("resume store not configured")
	}
	text, err := s.Resumes.Text(ctx, ref.ResumeID)
	if err != nil {
		return "", fmt.Errorf("resume %s: %w", ref.ResumeID, err)
	}
	return text, nil
}

func (s *Service) logCandidateFailure(ctx context.Context, runID string, index int, candidateID string, err error) {
	metrics.IncCandidateExtractionFailed()
	telemetry.Error("run.candidate_failed", map[string]any{
		"request_id":   requestIDFromContext(ctx),
		"run_id":       runID,
		"index":        index,
		"candidate_id": candidateID,
		"error":        sanitizeError(err),
	})
}

func (s *Service) failRun(ctx context.Context, runID string, err error, startedAt *time.Time) {
	code, retryable := classifyFailure(err)
	msg := sanitizeError(err)
	completedAt := time.Now().UTC()
	if updateErr := s.Repo.SetFailed(context.Background(), runID, code, msg, retryable, completedAt); updateErr != nil {
		telemetry.Error("run.fail_update_failed", map[string]any{
			"run_id": runID,
			"error":  sanitizeError(updateErr),
			"cause":  msg,
		})
	}
	metrics.IncRunFailed()
	if startedAt != nil {
		metrics.ObserveRunDurationMs(durationMs(startedAt, &completedAt))
	}
	telemetry.Info("run.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"run_id":            runID,
		"status":            StatusFailed,
		"status_transition": "processing->failed",
		"error_code":        code,
		"duration_ms":       durationMs(startedAt, &completedAt),
	})
}

func durationMs(startedAt, completedAt *time.Time) float64 {
	if startedAt == nil || completedAt == nil {
		return 0
	}
	return float64(completedAt.Sub(*startedAt).Microseconds()) / 1000.0
}

func classifyFailure(err error) (string, bool) {
	if err == nil {
		return ErrorCodeInternal, false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorCodeLLMTimeout, true
	}
	if errors.Is(err, ErrInvalidInput) || errors.Is(err, extraction.ErrEmptyInput) {
		return ErrorCodeValidation, false
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "openai request timeout") {
		return ErrorCodeLLMTimeout, true
	}
	if strings.Contains(msg, "timeout") && strings.Contains(msg, "llm") {
		return ErrorCodeLLMTimeout, true
	}
	if strings.Contains(msg, "schema") || strings.Contains(msg, "decode requirements") || strings.Contains(msg, "decode signals") || strings.Contains(msg, "llm output") {
		return ErrorCodeLLMSchemaMismatch, false
	}
	if strings.Contains(msg, "validation") && !strings.Contains(msg, "llm") {
		return ErrorCodeValidation, false
	}
	if strings.Contains(msg, "resume") || strings.Contains(msg, "storage") || strings.Contains(msg, "run result") || strings.Contains(msg, "run lookup") || strings.Contains(msg, "set processing") || strings.Contains(msg, "enqueue") {
		return ErrorCodeStorage, true
	}
	return ErrorCodeInternal, false
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}
