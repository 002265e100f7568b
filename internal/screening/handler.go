package screening

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"screening-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the screening service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches run routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/runs", h.createRun)
	rg.GET("/runs", h.listRuns)
	rg.GET("/runs/:id", h.getRun)
}

type createRunRequest struct {
	JobDescription string   `json:"jobDescription"`
	ResumeIDs      []string `json:"resumeIds"`
	Resumes        []struct {
		CandidateID string `json:"candidateId"`
		Text        string `json:"text"`
	} `json:"resumes"`
}

func (h *Handler) createRun(c *gin.Context) {
	var req createRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	refs := make([]ResumeRef, 0, len(req.ResumeIDs)+len(req.Resumes))
	for _, id := range req.ResumeIDs {
		refs = append(refs, ResumeRef{ResumeID: id})
	}
	for _, inline := range req.Resumes {
		refs = append(refs, ResumeRef{CandidateID: inline.CandidateID, Text: inline.Text})
	}

	run, err := h.Svc.Create(c.Request.Context(), req.JobDescription, refs)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrExtractionNotConfigured):
			respond.Error(c, http.StatusServiceUnavailable, "llm_not_configured", "no extraction backend configured", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to start run", nil)
		}
		return
	}

	respond.JSON(c, http.StatusAccepted, gin.H{
		"runId":  run.ID,
		"status": run.Status,
	})
}

func (h *Handler) getRun(c *gin.Context) {
	runID := c.Param("id")
	if runID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "run id is required", nil)
		return
	}

	run, err := h.Svc.Get(c.Request.Context(), runID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "run not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch run", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, runResponse(run))
}

func (h *Handler) listRuns(c *gin.Context) {
	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	runs, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list runs", nil)
		return
	}

	resp := make([]gin.H, 0, len(runs))
	for _, run := range runs {
		item := gin.H{
			"runId":     run.ID,
			"status":    run.Status,
			"createdAt": run.CreatedAt,
		}
		if run.Status == StatusCompleted && run.Result != nil {
			item["totalCandidates"] = run.Result.TotalCandidates
			if len(run.Result.Candidates) > 0 {
				top := run.Result.Candidates[0]
				item["topCandidate"] = gin.H{
					"candidateId": top.CandidateID,
					"finalScore":  top.FinalScore,
				}
			}
		}
		resp = append(resp, item)
	}

	respond.JSON(c, http.StatusOK, resp)
}

func runResponse(run Run) gin.H {
	resp := gin.H{
		"runId":     run.ID,
		"status":    run.Status,
		"createdAt": run.CreatedAt,
	}
	if run.StartedAt != nil {
		resp["startedAt"] = run.StartedAt
	}
	if run.CompletedAt != nil {
		resp["completedAt"] = run.CompletedAt
	}
	if run.Status == StatusCompleted && run.Result != nil {
		resp["result"] = run.Result
	}
	if run.Status == StatusFailed {
		errInfo := gin.H{
			"code":      run.ErrorCode,
			"retryable": run.ErrorRetryable,
		}
		if run.ErrorMessage != nil {
			errInfo["message"] = *run.ErrorMessage
		}
		resp["error"] = errInfo
	}
	return resp
}
