package filings

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"edgar_sections/pkg/core/edgar"
	"edgar_sections/pkg/core/pipeline"
)

// ProgressEvent is one SSE progress update.
type ProgressEvent struct {
	RequestID string `json:"request_id"`
	Step      string `json:"step"`   // "locate", "fetch", "extract", "complete", "error"
	Status    string `json:"status"` // "started", "done", "error"
	Detail    string `json:"detail"`
	TimingMs  int64  `json:"timing_ms"`
	Data      any    `json:"data,omitempty"` // final Result on "complete"
}

// HandleSectionStream runs one extraction while streaming per-step progress
// as server-sent events. Query params: ticker, year, section.
func (h *Handler) HandleSectionStream(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	requestID := uuid.NewString()
	started := time.Now()

	send := func(ev ProgressEvent) {
		ev.RequestID = requestID
		ev.TimingMs = time.Since(started).Milliseconds()
		payload, err := json.Marshal(ev)
		if err != nil {
			return
		}
		fmt.Fprintf(w, "data: %s\n\n", payload)
		flusher.Flush()
	}

	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	q := edgar.Query{
		Ticker:     r.URL.Query().Get("ticker"),
		FiscalYear: year,
		Section:    r.URL.Query().Get("section"),
	}

	if q.Ticker == "" || q.FiscalYear == 0 {
		send(ProgressEvent{Step: "error", Status: "error", Detail: "ticker and year query params are required"})
		return
	}

	h.log.Info("stream extraction started", "request_id", requestID, "ticker", q.Ticker, "year", q.FiscalYear)

	res := h.pipe.RunWithProgress(q, func(step, detail string) {
		send(ProgressEvent{Step: step, Status: "started", Detail: detail})
	})

	switch res.Status {
	case pipeline.StatusSuccess:
		send(ProgressEvent{Step: "complete", Status: "done", Detail: res.CompanyName, Data: res})
	default:
		send(ProgressEvent{Step: "error", Status: "error", Detail: res.Reason})
	}
}
