package emailscout

import "strings"

// ContactKeywords are the fragments that mark a link as leading to a
// contact or about page. They are matched case-insensitively against
// both the link text and its href.
var ContactKeywords = []string{
	"contact",
	"kontakt",
	"contacto",
	"about",
	"connect",
	"get in touch",
	"email us",
}

// MatchesContactKeyword reports whether s contains any of ContactKeywords,
// ignoring case.
func MatchesContactKeyword(s string) bool {
	s = strings.ToLower(s)
	for _, kw := range ContactKeywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// EmailExtractor finds email addresses in an HTML document.
type EmailExtractor interface {
	// ExtractEmails returns every plausible address in the page text,
	// mailto links, and obfuscated script literals.
	// Malformed input yields an empty set; extraction never fails.
	ExtractEmails(html string) EmailSet
}

// ContactLocator finds links to contact pages.
type ContactLocator interface {
	// FindContactPages returns absolute URLs of likely contact pages linked
	// from the page, resolved against baseURL and deduplicated.
	FindContactPages(html string, baseURL string) []string
}
