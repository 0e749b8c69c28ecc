package edgar

import (
	"bytes"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// LocateFiling finds the 10-K filing a company submitted in the given year.
//
// It fetches the EDGAR filings listing for the ticker filtered to form type
// 10-K, scans the returned table rows for one whose form type equals "10-K"
// and whose filing date falls in fiscalYear, and resolves that row's document
// link down to the primary filing document.
//
// The first row satisfying both conditions wins; row order is whatever EDGAR
// returns. Rows missing cells or links are skipped. When no row matches, a
// *NotFoundError is returned rather than a hard error.
func (c *Client) LocateFiling(ticker string, fiscalYear int) (*FilingReference, error) {
	if strings.TrimSpace(ticker) == "" {
		return nil, fmt.Errorf("ticker must not be empty")
	}
	if fiscalYear < 1994 || fiscalYear > time.Now().Year()+1 {
		return nil, fmt.Errorf("fiscal year %d outside EDGAR full-text coverage (1994-present)", fiscalYear)
	}

	cik, companyName, err := c.LookupCIK(ticker)
	if err != nil {
		return nil, err
	}

	listingURL := fmt.Sprintf(c.listingURL, padCIK(cik), "10-K")
	body, err := c.fetchURL(listingURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch filings listing: %w", err)
	}

	indexHref, filingDate, err := scanListingRows(body, "10-K", fiscalYear)
	if err != nil {
		if _, ok := err.(*NotFoundError); ok {
			return nil, &NotFoundError{Ticker: ticker, FiscalYear: fiscalYear}
		}
		return nil, err
	}

	indexURL, err := resolveURL(listingURL, indexHref)
	if err != nil {
		return nil, fmt.Errorf("bad document link in listing row: %w", err)
	}

	ref := &FilingReference{
		CompanyName: companyName,
		CIK:         cik,
		FormType:    "10-K",
		FilingDate:  filingDate,
		IndexURL:    indexURL,
		LocatedAt:   time.Now(),
	}

	if err := c.ResolveDocument(ref); err != nil {
		return nil, err
	}
	return ref, nil
}

// scanListingRows walks the listing table and returns the documents href and
// filing date of the first row matching formType and year. Ambiguous or
// malformed rows are skipped without comment.
func scanListingRows(listingHTML []byte, formType string, year int) (href string, filingDate string, err error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(listingHTML))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse filings listing: %w", err)
	}

	yearPrefix := strconv.Itoa(year) + "-"

	doc.Find("tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() < 4 {
			return true
		}

		rowForm := strings.TrimSpace(cells.Eq(0).Text())
		if rowForm != formType {
			return true
		}

		// The listing puts the filing date in the fourth cell, but older
		// layouts shift columns, so accept any cell that looks like a date.
		var rowDate string
		cells.Each(func(_ int, cell *goquery.Selection) {
			text := strings.TrimSpace(cell.Text())
			if len(text) == 10 && text[4] == '-' && text[7] == '-' {
				rowDate = text
			}
		})
		if !strings.HasPrefix(rowDate, yearPrefix) {
			return true
		}

		link, ok := cells.Eq(1).Find("a").First().Attr("href")
		if !ok || link == "" {
			return true
		}

		href = link
		filingDate = rowDate
		return false
	})

	if href == "" {
		return "", "", &NotFoundError{FiscalYear: year}
	}
	return href, filingDate, nil
}

// ResolveDocument follows the filing index page referenced by the listing row
// and picks the first .htm/.html archive document as the primary filing text.
// The index page lists all files in the filing directory; the main document
// sits ahead of exhibits and graphics in that listing.
func (c *Client) ResolveDocument(ref *FilingReference) error {
	body, err := c.fetchURL(ref.IndexURL)
	if err != nil {
		return fmt.Errorf("failed to fetch filing index page: %w", err)
	}

	docHref := findArchiveDocumentLink(body)
	if docHref == "" {
		return fmt.Errorf("no document link found on filing index page %s", ref.IndexURL)
	}

	// iXBRL viewer links wrap the real path behind /ix?doc=.
	if idx := strings.Index(docHref, "/ix?doc="); idx >= 0 {
		docHref = docHref[idx+len("/ix?doc="):]
	}

	docURL, err := resolveURL(ref.IndexURL, docHref)
	if err != nil {
		return fmt.Errorf("bad document link on index page: %w", err)
	}

	ref.DocumentURL = docURL
	return nil
}

// findArchiveDocumentLink tokenizes the index page and returns the href of
// the first anchor pointing at an Archives .htm/.html document.
func findArchiveDocumentLink(indexHTML []byte) string {
	tokenizer := html.NewTokenizer(bytes.NewReader(indexHTML))

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken:
			token := tokenizer.Token()
			if token.Data != "a" {
				continue
			}
			for _, attr := range token.Attr {
				if attr.Key != "href" {
					continue
				}
				href := attr.Val
				lower := strings.ToLower(href)
				if !strings.HasSuffix(lower, ".htm") && !strings.HasSuffix(lower, ".html") {
					continue
				}
				// Index pages link back to themselves and to the listing;
				// only the filing directory contents qualify.
				if strings.Contains(lower, "-index") || strings.Contains(lower, "cgi-bin") {
					continue
				}
				return href
			}
		}
	}
}

// resolveURL turns a relative href from a listing or index page into an
// absolute SEC URL.
func resolveURL(pageURL, href string) (string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		base, err = url.Parse(secBaseURL)
		if err != nil {
			return "", err
		}
	}
	rel, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", err
	}
	return base.ResolveReference(rel).String(), nil
}
