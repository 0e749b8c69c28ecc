package extract

import (
	"fmt"
	"regexp"
	"strings"
)

// SectionNotFoundError reports that the requested heading never occurs in the
// document. Distinct from a hard error: the document was fetched and scanned.
type SectionNotFoundError struct {
	Section string
}

func (e *SectionNotFoundError) Error() string {
	return fmt.Sprintf("section %q not found in filing; filers vary heading text, so try the item number or a shorter heading fragment", e.Section)
}

// EmptySectionError reports that the located section contained nothing but
// markup and noise after cleaning.
type EmptySectionError struct {
	Section string
}

func (e *EmptySectionError) Error() string {
	return fmt.Sprintf("section %q was located but empty after cleaning", e.Section)
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)

	// Filers often encode heading spaces as non-breaking entities; those must
	// read as whitespace or heading text is never contiguous.
	nbspReplacer = strings.NewReplacer("&nbsp;", " ", "&#160;", " ", "&#xa0;", " ", " ", " ")

	// Next top-level item heading: "Item <number><optional letter>. <Capitalized word>".
	// The trailing capital requirement keeps cross-references like "see item 1a. above"
	// from terminating the slice early.
	itemBoundaryRe = regexp.MustCompile(`(?:ITEM|Item)\s+\d{1,2}[A-Ca-c]?\s*\.\s*(?:<[^>]*>\s*)*["']?[A-Z]`)

	// Leaked headers inside the slice, e.g. page-top repeats of "Item 1A. Risk
	// Factors". The capitalized-word run keeps the match from swallowing prose
	// that merely references an item.
	leakedHeaderRe = regexp.MustCompile(`(?:ITEM|Item)\s+\d{1,2}[A-Ca-c]?\s*\.\s*(?:[A-Z][A-Za-z'&-]*(?:\s+(?:and|of|the|for|with|in|on|about)?\s*[A-Z][A-Za-z'&-]*){0,7})?\s*(?:\((?:continued|Continued)\))?`)

	tagRe = regexp.MustCompile(`<[^>]*>`)

	// Page-number artifacts: bare numbers in their own markup block ("<p>24</p>"),
	// dash-wrapped page markers ("- 24 -"), and "Page 24" footers.
	pageBlockRe  = regexp.MustCompile(`>\s*-?\s*\d{1,3}\s*-?\s*<`)
	pageDashRe   = regexp.MustCompile(`(?:^|\s)-\s*\d{1,3}\s*-(?:\s|$)`)
	pageFooterRe = regexp.MustCompile(`(?i)\bpage\s+\d{1,3}\b`)

	tocRe = regexp.MustCompile(`(?i)table\s+of\s+contents`)

	// Catch-all for entities the replacer does not cover.
	entityRe = regexp.MustCompile(`&#?[a-zA-Z0-9]{1,8};`)
)

var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&#160;", " ",
	"&#xa0;", " ",
	"&amp;", "&",
	"&#38;", "&",
	"&quot;", `"`,
	"&#34;", `"`,
	"&apos;", "'",
	"&#39;", "'",
	"&#8217;", "'",
	"&#8220;", `"`,
	"&#8221;", `"`,
	"&ldquo;", `"`,
	"&rdquo;", `"`,
	"&rsquo;", "'",
	"&lsquo;", "'",
	"&mdash;", "-",
	"&ndash;", "-",
	"&#8212;", "-",
	"&#8211;", "-",
)

// Section extracts the named section from raw filing markup and returns the
// cleaned text. It is a pure function of its inputs.
//
// The algorithm follows the document's textual structure rather than its tag
// structure, since item headings are textual, not structural, in most filings:
//
//  1. Collapse whitespace runs so heading text is contiguous regardless of
//     the filer's original line breaks.
//  2. The section starts just after the first case-insensitive occurrence of
//     sectionName.
//  3. The section ends at the next "Item N. <Capitalized words>" heading, or
//     end of document when no later heading exists.
//  4. The slice is stripped of tags, entities, page numbers, table-of-contents
//     noise, and leaked item headers.
func Section(markup string, sectionName string) (string, error) {
	if sectionName == "" {
		sectionName = DefaultSection
	}

	normalized := whitespaceRe.ReplaceAllString(nbspReplacer.Replace(markup), " ")
	target := whitespaceRe.ReplaceAllString(nbspReplacer.Replace(sectionName), " ")

	// Case-insensitive search that keeps byte offsets in the original string;
	// lowercasing first would shift offsets when case mappings change rune width.
	headingRe := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(target))
	loc := headingRe.FindStringIndex(normalized)
	if loc == nil {
		return "", &SectionNotFoundError{Section: sectionName}
	}

	rest := normalized[loc[1]:]
	end := len(rest)
	if loc := itemBoundaryRe.FindStringIndex(rest); loc != nil {
		end = loc[0]
	}

	text := clean(rest[:end])
	if text == "" {
		return "", &EmptySectionError{Section: sectionName}
	}
	return text, nil
}

// clean strips markup and filing noise from a section slice.
func clean(slice string) string {
	// Page-number blocks must go while tags still delimit them.
	slice = pageBlockRe.ReplaceAllString(slice, "><")

	slice = tagRe.ReplaceAllString(slice, " ")

	slice = entityReplacer.Replace(slice)
	slice = entityRe.ReplaceAllString(slice, " ")

	slice = tocRe.ReplaceAllString(slice, " ")
	slice = leakedHeaderRe.ReplaceAllString(slice, " ")
	slice = pageFooterRe.ReplaceAllString(slice, " ")
	slice = pageDashRe.ReplaceAllString(slice, " ")

	slice = whitespaceRe.ReplaceAllString(slice, " ")
	return strings.TrimSpace(slice)
}
