// Package edgar locates and fetches SEC EDGAR 10-K filing documents.
package edgar

import (
	"fmt"
	"time"
)

// Query identifies one extraction request. Created per request; immutable.
type Query struct {
	Ticker     string `json:"ticker"`
	FiscalYear int    `json:"fiscal_year"`
	Section    string `json:"section"`
}

// FilingReference points at a resolved filing document. Derived from the
// filings listing and discarded once the document is fetched.
type FilingReference struct {
	CompanyName string    `json:"company_name"`
	CIK         string    `json:"cik"`
	FormType    string    `json:"form_type"`
	FilingDate  string    `json:"filing_date"` // "2006-01-02"
	IndexURL    string    `json:"index_url"`   // filing index page linked from the listing row
	DocumentURL string    `json:"document_url"`
	LocatedAt   time.Time `json:"located_at"`
}

// NotFoundError marks a "no matching filing" outcome. It is distinct from a
// hard network or HTTP failure: the listing was fetched and scanned, but no
// row satisfied both the form-type and filing-year conditions.
type NotFoundError struct {
	Ticker     string
	FiscalYear int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no 10-K filing found for %s filed in %d; EDGAR lists filings by submission date, so the 10-K covering fiscal %d may have been filed the following year",
		e.Ticker, e.FiscalYear, e.FiscalYear)
}
