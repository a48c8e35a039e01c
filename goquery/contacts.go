package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/emailscout"
)

// Ensure ContactLocator implements emailscout.ContactLocator at compile time.
var _ emailscout.ContactLocator = (*ContactLocator)(nil)

// ContactLocator finds links to contact and about pages by matching
// emailscout.ContactKeywords against link text and href.
type ContactLocator struct{}

// NewContactLocator creates a new ContactLocator.
func NewContactLocator() *ContactLocator {
	return &ContactLocator{}
}

// FindContactPages returns the absolute URLs of qualifying links in
// document order. Links are deduplicated by URL with fragments stripped,
// and links back to the page itself are dropped.
func (l *ContactLocator) FindContactPages(html string, baseURL string) []string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var pages []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href := strings.TrimSpace(sel.AttrOr("href", ""))
		if href == "" || strings.HasPrefix(href, "#") || isNonHTTPLink(href) {
			return
		}

		if !emailscout.MatchesContactKeyword(sel.Text()) && !emailscout.MatchesContactKeyword(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true
		pages = append(pages, resolved)
	})

	return pages
}

// resolveURL resolves a relative URL against a base URL.
// Returns empty string if the href cannot be parsed, is not http(s), or
// points back at the base page once fragments are stripped.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}

	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(href)
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
