package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	runStartedTotal                atomic.Uint64
	runCompletedTotal              atomic.Uint64
	runFailedTotal                 atomic.Uint64
	candidateExtractionFailedTotal atomic.Uint64

	runJobsReceivedTotal             atomic.Uint64
	runJobsCompletedTotal            atomic.Uint64
	runJobsFailedTotal               atomic.Uint64
	runJobsDeletedUnrecoverableTotal atomic.Uint64

	runDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncRunJobsReceived counts queue messages received by workers.
func IncRunJobsReceived() {
	runJobsReceivedTotal.Add(1)
}

// IncRunJobsCompleted counts queue messages processed and deleted.
func IncRunJobsCompleted() {
	runJobsCompletedTotal.Add(1)
}

// IncRunJobsFailed counts queue messages whose processing failed.
func IncRunJobsFailed() {
	runJobsFailedTotal.Add(1)
}

// IncRunJobsDeletedUnrecoverable counts malformed messages deleted without
// processing.
func IncRunJobsDeletedUnrecoverable() {
	runJobsDeletedUnrecoverableTotal.Add(1)
}

// IncRunStarted increments the started counter.
func IncRunStarted() {
	runStartedTotal.Add(1)
}

// IncRunCompleted increments the completed counter.
func IncRunCompleted() {
	runCompletedTotal.Add(1)
}

// IncRunFailed increments the failed counter.
func IncRunFailed() {
	runFailedTotal.Add(1)
}

// IncCandidateExtractionFailed counts candidates whose signal extraction
// failed and were scored as placeholders.
func IncCandidateExtractionFailed() {
	candidateExtractionFailedTotal.Add(1)
}

// ObserveRunDurationMs records a run duration in milliseconds.
func ObserveRunDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	runDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "screening_run_started_total", "Total screening runs started", runStartedTotal.Load())
	writeCounter(&buf, "screening_run_completed_total", "Total screening runs completed", runCompletedTotal.Load())
	writeCounter(&buf, "screening_run_failed_total", "Total screening runs failed", runFailedTotal.Load())
	writeCounter(&buf, "candidate_extraction_failed_total", "Total candidates with failed signal extraction", candidateExtractionFailedTotal.Load())
	writeCounter(&buf, "run_jobs_received_total", "Total run jobs received from the queue", runJobsReceivedTotal.Load())
	writeCounter(&buf, "run_jobs_completed_total", "Total run jobs completed and deleted", runJobsCompletedTotal.Load())
	writeCounter(&buf, "run_jobs_failed_total", "Total run jobs that failed processing", runJobsFailedTotal.Load())
	writeCounter(&buf, "run_jobs_deleted_unrecoverable_total", "Total malformed run jobs deleted", runJobsDeletedUnrecoverableTotal.Load())
	writeHistogram(&buf, "screening_run_duration_ms", "Screening run duration in milliseconds", runDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// NowMillis returns current time in milliseconds, useful for callers without time utilities.
func NowMillis() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}
