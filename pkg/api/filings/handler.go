// Package filings provides the HTTP API over the section extraction pipeline.
package filings

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"edgar_sections/pkg/core/compare"
	"edgar_sections/pkg/core/edgar"
	"edgar_sections/pkg/core/extract"
	"edgar_sections/pkg/core/pipeline"
)

// Handler serves the filings endpoints. It holds no per-request state; the
// pipeline itself is stateless, so the handler is safe for concurrent use.
type Handler struct {
	pipe *pipeline.Pipeline
	log  *slog.Logger
}

// NewHandler wires a handler to a pipeline.
func NewHandler(pipe *pipeline.Pipeline, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{pipe: pipe, log: log}
}

// Routes returns the chi subrouter for /api/filings.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/section", h.HandleSection)
	r.Get("/sections", h.HandleSectionCatalog)
	r.Post("/compare", h.HandleCompare)
	r.Get("/section-stream", h.HandleSectionStream)
	return r
}

// SectionRequest is the body for POST /api/filings/section.
type SectionRequest struct {
	Ticker     string `json:"ticker"`
	FiscalYear int    `json:"fiscal_year"`
	Section    string `json:"section"` // item number, heading, or empty for Item 1
}

// ErrorResponse carries a human-readable failure explanation.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HandleSection runs one extraction and maps the result variant onto HTTP:
// success -> 200, soft not-found -> 404, hard failure -> 502.
func (h *Handler) HandleSection(w http.ResponseWriter, r *http.Request) {
	var req SectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if req.Ticker == "" || req.FiscalYear == 0 {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "ticker and fiscal_year are required"})
		return
	}

	res := h.pipe.Run(edgar.Query{Ticker: req.Ticker, FiscalYear: req.FiscalYear, Section: req.Section})
	switch res.Status {
	case pipeline.StatusSuccess:
		writeJSON(w, http.StatusOK, res)
	case pipeline.StatusNotFound:
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: res.Reason})
	default:
		writeJSON(w, http.StatusBadGateway, ErrorResponse{Error: res.Reason})
	}
}

// HandleSectionCatalog lists the standard 10-K sections callers can request.
func (h *Handler) HandleSectionCatalog(w http.ResponseWriter, r *http.Request) {
	type entry struct {
		Item    string `json:"item"`
		Title   string `json:"title"`
		Heading string `json:"heading"`
	}
	out := make([]entry, 0, len(extract.Catalog))
	for _, def := range extract.Catalog {
		out = append(out, entry{Item: def.Item, Title: def.Title, Heading: def.Heading()})
	}
	writeJSON(w, http.StatusOK, out)
}

// CompareRequest is the body for POST /api/filings/compare.
type CompareRequest struct {
	Ticker  string `json:"ticker"`
	YearA   int    `json:"year_a"`
	YearB   int    `json:"year_b"`
	Section string `json:"section"`
}

// HandleCompare diffs the same section across two filing years.
func (h *Handler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if req.Ticker == "" || req.YearA == 0 || req.YearB == 0 {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "ticker, year_a and year_b are required"})
		return
	}

	cmp, err := compare.Sections(h.pipe, req.Ticker, req.YearA, req.YearB, req.Section)
	if err != nil {
		status := http.StatusBadGateway
		var runErr *compare.RunError
		if errors.As(err, &runErr) && runErr.Status == pipeline.StatusNotFound {
			status = http.StatusNotFound
		}
		writeJSON(w, status, ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, cmp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
