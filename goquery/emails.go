// Package goquery implements HTML analysis for emailscout using goquery:
// email extraction and contact page discovery.
package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/emailscout"
	"golang.org/x/net/html"
)

// Ensure EmailExtractor implements emailscout.EmailExtractor at compile time.
var _ emailscout.EmailExtractor = (*EmailExtractor)(nil)

// literalChain matches two or more quoted string literals joined by '+',
// e.g. 'info' + '@' + 'example.com'.
var literalChain = regexp.MustCompile(`(?:'[^'\n]*'|"[^"\n]*")(?:\s*\+\s*(?:'[^'\n]*'|"[^"\n]*"))+`)

var quotedLiteral = regexp.MustCompile(`'([^'\n]*)'|"([^"\n]*)"`)

// EmailExtractor finds email addresses in page text, mailto links and
// split-string script literals.
type EmailExtractor struct{}

// NewEmailExtractor creates a new EmailExtractor.
func NewEmailExtractor() *EmailExtractor {
	return &EmailExtractor{}
}

// ExtractEmails returns every address found in the document.
func (e *EmailExtractor) ExtractEmails(rawHTML string) emailscout.EmailSet {
	emails := emailscout.NewEmailSet()
	if strings.TrimSpace(rawHTML) == "" {
		return emails
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return emails
	}

	for _, m := range emailscout.EmailPattern.FindAllString(visibleText(doc), -1) {
		emails.Add(m)
	}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if addr, ok := mailtoAddress(href); ok {
			emails.Add(addr)
		}
	})

	doc.Find("script").Each(func(_ int, sel *goquery.Selection) {
		for _, addr := range scriptEmails(sel.Text()) {
			emails.Add(addr)
		}
	})

	return emails
}

// blockElements break the flow of text. Text on either side of one is
// separated by a space; inline markup joins directly, so an address split
// across spans reads the way a browser displays it.
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"body": true, "br": true, "dd": true, "div": true, "dl": true,
	"dt": true, "fieldset": true, "figcaption": true, "figure": true,
	"footer": true, "form": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "header": true, "hr": true,
	"li": true, "main": true, "nav": true, "ol": true, "p": true,
	"pre": true, "section": true, "table": true, "td": true, "th": true,
	"tr": true, "ul": true, "option": true, "title": true,
}

// visibleText returns the document's displayed text, skipping content a
// browser never shows.
func visibleText(doc *goquery.Document) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		block := false
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "template":
				return
			}
			block = blockElements[n.Data]
		}
		if block {
			sb.WriteByte(' ')
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			sb.WriteByte(' ')
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return sb.String()
}

// mailtoAddress extracts the address from a mailto: href.
// mailto:info@site.com?subject=hi → info@site.com
func mailtoAddress(href string) (string, bool) {
	href = strings.TrimSpace(href)
	if len(href) < len("mailto:") || !strings.EqualFold(href[:len("mailto:")], "mailto:") {
		return "", false
	}
	addr := href[len("mailto:"):]
	if i := strings.IndexByte(addr, '?'); i != -1 {
		addr = addr[:i]
	}
	if unescaped, err := url.PathUnescape(addr); err == nil {
		addr = unescaped
	}
	addr = strings.TrimSpace(addr)
	return addr, emailscout.IsEmail(addr)
}

// scriptEmails reassembles addresses split across concatenated string
// literals, the common trick for hiding an address from scrapers:
//
//	var e = 'info' + '@example.com';
//	var e = 'info' + '@' + 'example.com';
//
// For every literal that starts with '@', the preceding literal is the
// local part and the longest run of following literals that forms a valid
// address is the domain.
func scriptEmails(script string) []string {
	var out []string
	for _, chain := range literalChain.FindAllString(script, -1) {
		parts := literals(chain)
		for i := 1; i < len(parts); i++ {
			if !strings.HasPrefix(parts[i], "@") {
				continue
			}
			candidate := parts[i-1]
			var best string
			for j := i; j < len(parts); j++ {
				candidate += parts[j]
				if emailscout.IsEmail(candidate) {
					best = candidate
				}
			}
			if best != "" {
				out = append(out, best)
			}
		}
	}
	return out
}

// literals returns the contents of the quoted literals in a chain, in order.
func literals(chain string) []string {
	matches := quotedLiteral.FindAllStringSubmatch(chain, -1)
	parts := make([]string, 0, len(matches))
	for _, m := range matches {
		if strings.HasPrefix(m[0], "'") {
			parts = append(parts, m[1])
		} else {
			parts = append(parts, m[2])
		}
	}
	return parts
}
