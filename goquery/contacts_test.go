package goquery_test

import (
	"testing"

	"github.com/fwojciec/emailscout/goquery"
	"github.com/stretchr/testify/assert"
)

func TestContactLocator_FindContactPages(t *testing.T) {
	t.Parallel()

	t.Run("resolves relative href against base URL", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><a href="/contact-us">Reach us</a></body></html>`

		pages := goquery.NewContactLocator().FindContactPages(html, "https://example.com/home")

		assert.Equal(t, []string{"https://example.com/contact-us"}, pages)
	})

	t.Run("matches keywords in link text case-insensitively", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<a href="/p/1">Get In Touch</a>
<a href="/p/2">EMAIL US</a>
<a href="/p/3">About</a>
<a href="/p/4">Pricing</a>
</body></html>`

		pages := goquery.NewContactLocator().FindContactPages(html, "https://example.com/")

		assert.Equal(t, []string{
			"https://example.com/p/1",
			"https://example.com/p/2",
			"https://example.com/p/3",
		}, pages)
	})

	t.Run("matches keywords in href", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<a href="kontakt.html">Schreiben</a>
<a href="/es/Contacto">Escribir</a>
</body></html>`

		pages := goquery.NewContactLocator().FindContactPages(html, "https://example.de/de/")

		assert.Equal(t, []string{
			"https://example.de/de/kontakt.html",
			"https://example.de/es/Contacto",
		}, pages)
	})

	t.Run("skips fragment, javascript, tel and mailto links", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<a href="#contact">Contact</a>
<a href="javascript:openContact()">Contact</a>
<a href="tel:+123">Contact</a>
<a href="mailto:info@example.com">Email us</a>
<a href="">Contact</a>
<a>Contact</a>
</body></html>`

		pages := goquery.NewContactLocator().FindContactPages(html, "https://example.com/")

		assert.Empty(t, pages)
	})

	t.Run("deduplicates by absolute URL", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<a href="/contact">Contact</a>
<a href="https://example.com/contact">Contact us</a>
<a href="/contact#form">Contact form</a>
</body></html>`

		pages := goquery.NewContactLocator().FindContactPages(html, "https://example.com/")

		assert.Equal(t, []string{"https://example.com/contact"}, pages)
	})

	t.Run("keeps external contact links", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><a href="https://partner.example.org/about">Partner</a></body></html>`

		pages := goquery.NewContactLocator().FindContactPages(html, "https://example.com/")

		assert.Equal(t, []string{"https://partner.example.org/about"}, pages)
	})

	t.Run("returns nothing when no link qualifies", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><a href="/blog">Blog</a></body></html>`

		assert.Empty(t, goquery.NewContactLocator().FindContactPages(html, "https://example.com/"))
	})

	t.Run("returns nothing for unparseable base URL", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><a href="/contact">Contact</a></body></html>`

		assert.Empty(t, goquery.NewContactLocator().FindContactPages(html, "://bad"))
	})
}
