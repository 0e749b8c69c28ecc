// Package extract pulls a named section out of raw 10-K filing markup.
//
// Extraction is best effort by design: 10-K filings have no standardized
// heading grammar, so heading capitalization, numbering style, and sub-item
// interruptions (1A, 1B, ...) vary by filer. The boundary heuristics here can
// both under- and over-extract depending on filer formatting.
package extract

import (
	"fmt"
	"strings"
)

// DefaultSection is used when a caller does not name a section.
const DefaultSection = "Item 1. Business"

// Definition describes one standard Form 10-K section.
type Definition struct {
	Item  string `json:"item"`  // "1", "1A", "7", ...
	Title string `json:"title"` // "Business", "Risk Factors", ...
}

// Heading returns the conventional heading text, e.g. "Item 1A. Risk Factors".
func (d Definition) Heading() string {
	return fmt.Sprintf("Item %s. %s", d.Item, d.Title)
}

// Catalog lists the standard Form 10-K sections in filing order.
var Catalog = []Definition{
	{"1", "Business"},
	{"1A", "Risk Factors"},
	{"1B", "Unresolved Staff Comments"},
	{"1C", "Cybersecurity"},
	{"2", "Properties"},
	{"3", "Legal Proceedings"},
	{"4", "Mine Safety Disclosures"},
	{"5", "Market for Registrant's Common Equity"},
	{"6", "Selected Financial Data"}, // discontinued Feb 2021, still present in older filings
	{"7", "Management's Discussion and Analysis"},
	{"7A", "Quantitative and Qualitative Disclosures About Market Risk"},
	{"8", "Financial Statements and Supplementary Data"},
	{"9", "Changes in and Disagreements with Accountants"},
	{"9A", "Controls and Procedures"},
	{"9B", "Other Information"},
	{"10", "Directors, Executive Officers and Corporate Governance"},
	{"11", "Executive Compensation"},
	{"12", "Security Ownership of Certain Beneficial Owners"},
	{"13", "Certain Relationships and Related Transactions"},
	{"14", "Principal Accountant Fees and Services"},
	{"15", "Exhibits and Financial Statement Schedules"},
}

// NormalizeSection maps caller input to a heading string to search for.
// Accepts a bare item number ("1A"), an "Item 1A" prefix, a full heading, or
// free text. Empty input falls back to DefaultSection.
func NormalizeSection(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return DefaultSection
	}

	key := strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(s, "Item"), "item")))
	key = strings.TrimSuffix(key, ".")
	for _, def := range Catalog {
		if strings.EqualFold(def.Item, key) {
			return def.Heading()
		}
	}

	// Free text: use as-is so filer-specific headings still work.
	return s
}
