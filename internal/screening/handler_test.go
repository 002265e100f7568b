package screening

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, _, _ := newTestService(&fakeLLM{})
	r := gin.New()
	api := r.Group("/api/v1")
	NewHandler(svc).RegisterRoutes(api)
	return r, svc
}

func postRun(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/runs", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateRunAccepted(t *testing.T) {
	r, _ := newTestRouter(t)

	w := postRun(t, r, `{"jobDescription":"Need a senior Go engineer","resumes":[{"candidateId":"alice","text":"Alice resume"}]}`)
	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		RunID  string `json:"runId"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.RunID == "" || resp.Status != StatusQueued {
		t.Fatalf("response = %+v", resp)
	}
}

func TestCreateRunValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	for name, body := range map[string]string{
		"bad json":   `{not json`,
		"no jd":      `{"resumes":[{"text":"x"}]}`,
		"no resumes": `{"jobDescription":"Need a Go engineer"}`,
	} {
		t.Run(name, func(t *testing.T) {
			if w := postRun(t, r, body); w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestGetRunLifecycle(t *testing.T) {
	r, svc := newTestRouter(t)
	ctx := context.Background()

	run, err := svc.Create(ctx, "Need a senior Go engineer", []ResumeRef{{CandidateID: "alice", Text: "Alice resume"}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/runs/"+run.ID, nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"queued"`) {
		t.Fatalf("queued get: %d %s", w.Code, w.Body.String())
	}

	if err := svc.Process(ctx, run.ID); err != nil {
		t.Fatalf("Process: %v", err)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/runs/"+run.ID, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("completed get: %d %s", w.Code, w.Body.String())
	}
	var resp struct {
		Status string `json:"status"`
		Result *struct {
			RankedCandidates []struct {
				CandidateID string  `json:"candidate_id"`
				FinalScore  float64 `json:"final_score"`
				Rank        int     `json:"rank"`
			} `json:"ranked_candidates"`
			TotalCandidates int `json:"total_candidates"`
		} `json:"result"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != StatusCompleted || resp.Result == nil || resp.Result.TotalCandidates != 1 {
		t.Fatalf("response = %s", w.Body.String())
	}
	if len(resp.Result.RankedCandidates) != 1 || resp.Result.RankedCandidates[0].Rank != 1 {
		t.Fatalf("candidates = %+v", resp.Result.RankedCandidates)
	}
}

func TestGetRunNotFound(t *testing.T) {
	r, _ := newTestRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/runs/missing", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestListRuns(t *testing.T) {
	r, svc := newTestRouter(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := svc.Create(ctx, "Need a Go engineer", []ResumeRef{{Text: "resume"}}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/runs?limit=10", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var listed []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("listed %d runs, want 2", len(listed))
	}
}

func TestFailedRunExposesError(t *testing.T) {
	r, svc := newTestRouter(t)
	svc.Extractor = nil

	run := Run{ID: "run-1", JobDescription: "jd", Status: StatusQueued}
	if err := svc.Repo.Create(context.Background(), run); err != nil {
		t.Fatalf("seed run: %v", err)
	}
	_ = svc.Process(context.Background(), run.ID)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/runs/run-1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Status string `json:"status"`
		Error  *struct {
			Code      string `json:"code"`
			Retryable bool   `json:"retryable"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != StatusFailed || resp.Error == nil || resp.Error.Code == "" {
		t.Fatalf("response = %s", w.Body.String())
	}
}
