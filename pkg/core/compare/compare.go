// Package compare diffs the same 10-K section across two fiscal years.
package compare

import (
	"fmt"

	"github.com/sergi/go-diff/diffmatchpatch"

	"edgar_sections/pkg/core/edgar"
	"edgar_sections/pkg/core/pipeline"
)

// Comparison holds both section texts and their rendered difference.
type Comparison struct {
	CompanyName string `json:"company_name"`
	Section     string `json:"section"`
	YearA       int    `json:"year_a"`
	YearB       int    `json:"year_b"`
	TextA       string `json:"text_a"`
	TextB       string `json:"text_b"`
	DiffText    string `json:"diff_text"` // +/- annotated plain text
	DiffHTML    string `json:"diff_html"` // ins/del markup for dashboards
}

// RunError reports the year whose pipeline run produced no section, keeping
// the run's status so callers can tell a soft miss from a hard failure.
type RunError struct {
	Year   int
	Status pipeline.Status
	Reason string
}

func (e *RunError) Error() string {
	return fmt.Sprintf("year %d: %s", e.Year, e.Reason)
}

// Sections runs the pipeline once per year and diffs the two results. Both
// runs must succeed; either year failing yields a *RunError since there is
// no partial comparison.
func Sections(p *pipeline.Pipeline, ticker string, yearA, yearB int, section string) (*Comparison, error) {
	resA := p.Run(edgar.Query{Ticker: ticker, FiscalYear: yearA, Section: section})
	if resA.Status != pipeline.StatusSuccess {
		return nil, &RunError{Year: yearA, Status: resA.Status, Reason: resA.Reason}
	}
	resB := p.Run(edgar.Query{Ticker: ticker, FiscalYear: yearB, Section: section})
	if resB.Status != pipeline.StatusSuccess {
		return nil, &RunError{Year: yearB, Status: resB.Status, Reason: resB.Reason}
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(resA.Text, resB.Text, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	return &Comparison{
		CompanyName: resA.CompanyName,
		Section:     resA.Section,
		YearA:       yearA,
		YearB:       yearB,
		TextA:       resA.Text,
		TextB:       resB.Text,
		DiffText:    renderText(diffs),
		DiffHTML:    dmp.DiffPrettyHtml(diffs),
	}, nil
}

// renderText produces a +/- annotated rendering, one hunk per changed span.
func renderText(diffs []diffmatchpatch.Diff) string {
	var out string
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			out += "[+" + d.Text + "+]"
		case diffmatchpatch.DiffDelete:
			out += "[-" + d.Text + "-]"
		default:
			out += d.Text
		}
	}
	return out
}
