package discovery

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/nayeemjb/intelgrid/internal/intel"
)

// Acceptance thresholds for anchor text. Visible length must exceed
// headlineMinLength (strict), and the text must contain at least
// headlineMinSpaces single spaces, a cheap proxy for "is a sentence, not a
// button label".
const (
	headlineMinLength = 35
	headlineMinSpaces = 4
)

// headlineCandidates runs the generic heuristic over a fetched page. It is a
// pure function of the document so it can be tested against fixed fixtures.
//
// Non-content elements are stripped first, then every remaining anchor is
// scored by its visible text. Relative hrefs resolve against the page
// origin; candidates deduplicate by resolved link with the first occurrence
// winning, and collection stops at intel.DiscoveryCap.
func headlineCandidates(pageURL string, body []byte) ([]intel.Candidate, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	doc.Find("script, style, nav, footer, header").Remove()

	var found []intel.Candidate
	seen := make(map[string]bool)

	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		title := strings.TrimSpace(sel.Text())
		if isHeadline(title) {
			href, _ := sel.Attr("href")
			link, err := intel.ResolveLink(pageURL, href)
			if err == nil && !seen[link] {
				seen[link] = true
				found = append(found, intel.Candidate{Title: title, Link: link})
			}
		}
		return len(found) < intel.DiscoveryCap
	})
	return found, nil
}

func isHeadline(title string) bool {
	return utf8.RuneCountInString(title) > headlineMinLength &&
		strings.Count(title, " ") >= headlineMinSpaces
}
