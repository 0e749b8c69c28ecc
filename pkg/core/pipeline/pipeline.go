// Package pipeline runs the filing extraction end to end and presents the
// outcome as a plain result variant.
//
// The pipeline is a stateless function of its query: locate the filing,
// fetch the document, extract the section. There is no shared mutable state
// and no coordination; each invocation stands alone, so callers may run as
// many as they like concurrently.
package pipeline

import (
	"errors"
	"io"
	"log/slog"

	"edgar_sections/pkg/core/edgar"
	"edgar_sections/pkg/core/extract"
)

// Status discriminates the result variant.
type Status string

const (
	// StatusSuccess carries a fully extracted section.
	StatusSuccess Status = "success"
	// StatusNotFound covers the soft outcomes: no filing for the year, the
	// section heading absent, or the section empty after cleaning.
	StatusNotFound Status = "not_found"
	// StatusError covers hard failures: network, HTTP status, bad input.
	StatusError Status = "error"
)

// Result is the presenter output. Either Text is a complete cleaned section
// or Reason explains why there is none; there are no partial results.
type Result struct {
	Status      Status                 `json:"status"`
	CompanyName string                 `json:"company_name,omitempty"`
	Section     string                 `json:"section,omitempty"`
	Text        string                 `json:"text,omitempty"`
	Reason      string                 `json:"reason,omitempty"`
	Reference   *edgar.FilingReference `json:"reference,omitempty"`
}

// ProgressFunc receives step notifications while a run is in flight.
// Steps: "locate", "fetch", "extract".
type ProgressFunc func(step string, detail string)

// Pipeline wires the EDGAR client to the extractor.
type Pipeline struct {
	client *edgar.Client
	log    *slog.Logger
}

// New creates a pipeline. A nil logger disables logging.
func New(client *edgar.Client, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Pipeline{client: client, log: log}
}

// Run executes one query and maps every outcome into a Result. Failures are
// converted to descriptive strings here, at the outermost boundary, so no
// caller has to unwrap anything.
func (p *Pipeline) Run(q edgar.Query) Result {
	return p.RunWithProgress(q, nil)
}

// RunWithProgress is Run with per-step notifications for streaming callers.
func (p *Pipeline) RunWithProgress(q edgar.Query, progress ProgressFunc) Result {
	notify := func(step, detail string) {
		if progress != nil {
			progress(step, detail)
		}
	}

	if q.Ticker == "" {
		return Result{Status: StatusError, Reason: "ticker must not be empty"}
	}
	if q.FiscalYear == 0 {
		return Result{Status: StatusError, Reason: "fiscal year must be set"}
	}
	section := extract.NormalizeSection(q.Section)

	notify("locate", "scanning EDGAR filings listing for "+q.Ticker)
	ref, err := p.client.LocateFiling(q.Ticker, q.FiscalYear)
	if err != nil {
		var nf *edgar.NotFoundError
		if errors.As(err, &nf) {
			p.log.Info("filing not found", "ticker", q.Ticker, "year", q.FiscalYear)
			return Result{Status: StatusNotFound, Section: section, Reason: err.Error()}
		}
		p.log.Error("locate failed", "ticker", q.Ticker, "year", q.FiscalYear, "err", err)
		return Result{Status: StatusError, Section: section, Reason: err.Error()}
	}
	p.log.Info("filing located", "ticker", q.Ticker, "company", ref.CompanyName, "filed", ref.FilingDate, "url", ref.DocumentURL)

	notify("fetch", "downloading "+ref.DocumentURL)
	markup, err := p.client.FetchDocument(ref.DocumentURL)
	if err != nil {
		p.log.Error("fetch failed", "url", ref.DocumentURL, "err", err)
		return Result{Status: StatusError, CompanyName: ref.CompanyName, Section: section, Reason: err.Error(), Reference: ref}
	}

	notify("extract", "extracting "+section)
	text, err := extract.Section(markup, section)
	if err != nil {
		var notFound *extract.SectionNotFoundError
		var empty *extract.EmptySectionError
		if errors.As(err, &notFound) || errors.As(err, &empty) {
			return Result{Status: StatusNotFound, CompanyName: ref.CompanyName, Section: section, Reason: err.Error(), Reference: ref}
		}
		return Result{Status: StatusError, CompanyName: ref.CompanyName, Section: section, Reason: err.Error(), Reference: ref}
	}

	return Result{
		Status:      StatusSuccess,
		CompanyName: ref.CompanyName,
		Section:     section,
		Text:        text,
		Reference:   ref,
	}
}
